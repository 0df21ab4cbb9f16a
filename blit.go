package blit

import (
	"image"

	"github.com/gogpu/blit/surface"
)

// Source is something that can be blitted onto a Surface: an *Image or
// another *Surface.
type Source interface {
	// drawable returns the pixels to composite, or nil when there is
	// nothing to draw yet.
	drawable() image.Image
}

// Dest says where a blit lands. Build one with At or Into.
type Dest struct {
	rect   Rect
	scaled bool
}

// At places the source at (x, y) at its native size.
func At(x, y float64) Dest {
	return Dest{rect: Rect{X: x, Y: y}}
}

// Into scales an image source into r. Surface sources are never scaled;
// they land unscaled at r's top-left corner.
func Into(r Rect) Dest {
	return Dest{rect: r, scaled: true}
}

// Blit composites src onto s at dst.
//
// An *Image that has not finished decoding is skipped without error; the
// frame loop is expected to blit again next frame. Compositing happens
// immediately against the current contents.
func (s *Surface) Blit(src Source, dst Dest) {
	switch src := src.(type) {
	case *Image:
		if src == nil {
			return
		}
		img := src.drawable()
		if img == nil {
			Logger().Debug("blit skipped: image not ready", "path", src.path)
			return
		}
		if dst.scaled {
			r := dst.rect.Bounds()
			s.raster.DrawImage(img, surface.Point{}, &surface.DrawImageOptions{
				DstRect: &r,
				Alpha:   1,
				Filter:  surface.FilterBilinear,
			})
			return
		}
		s.raster.DrawImage(img, surface.Pt(dst.rect.X, dst.rect.Y), nil)

	case *Surface:
		if src == nil {
			return
		}
		img := src.drawable()
		if img == nil {
			return
		}
		s.raster.DrawImage(img, surface.Pt(dst.rect.X, dst.rect.Y), nil)
	}
}

func (s *Surface) drawable() image.Image {
	if pix := s.Pixels(); pix != nil {
		return pix
	}
	return nil
}

// DrawImage composites an arbitrary image over s with its top-left corner
// at (x, y). It is the escape hatch for pixels produced outside this
// package, such as rasterized text.
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	s.raster.DrawImage(img, surface.Pt(x, y), nil)
}
