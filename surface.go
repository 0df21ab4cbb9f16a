package blit

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/blit/surface"
)

// Surface is an addressable raster of fixed size. It can be filled, have
// images and other surfaces blitted onto it, and be drawn on by Draw.
//
// A Surface attached to a Window at construction is presented by that
// window continuously; there is no explicit present call. Surfaces are
// not safe for concurrent use: draw from the frame goroutine only.
type Surface struct {
	raster surface.Surface
	width  int
	height int
	alpha  bool
}

// NewSurface creates a surface of the given size.
//
// Without options the surface is an opaque offscreen buffer that starts
// black. WithAlpha makes it start fully transparent instead, and
// WithWindow attaches it to a window exactly once.
//
// Example:
//
//	screen, err := blit.NewSurface(800, 600, blit.WithWindow(win))
//	label, err := blit.NewSurface(200, 40, blit.WithAlpha())
func NewSurface(width, height int, opts ...SurfaceOption) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	o := defaultSurfaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var bg color.Color = color.Black
	if o.alpha {
		bg = color.Transparent
	}
	ropts := surface.Options{
		Width:           width,
		Height:          height,
		BackgroundColor: bg,
	}
	var r surface.Surface
	var err error
	if o.backend != "" {
		r, err = surface.Open(o.backend, ropts)
	} else {
		r, err = surface.New(ropts)
	}
	if err != nil {
		return nil, fmt.Errorf("blit: create surface: %w", err)
	}

	s := &Surface{
		raster: r,
		width:  width,
		height: height,
		alpha:  o.alpha,
	}
	if o.window != nil {
		o.window.Attach(s)
		Logger().Info("surface attached", "width", width, "height", height)
	}
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// GetRect returns a Rect of the surface size at the origin.
func (s *Surface) GetRect() Rect {
	return NewRect(0, 0, float64(s.width), float64(s.height))
}

// Alpha reports whether the surface was created WithAlpha.
func (s *Surface) Alpha() bool {
	return s.alpha
}

// Fill paints the entire surface with c. Prior content is replaced, not
// blended, so a translucent fill leaves translucent pixels behind.
func (s *Surface) Fill(c Color) {
	s.raster.Clear(c)
}

// At returns the color of the pixel at (x, y). A closed surface reads as
// transparent.
func (s *Surface) At(x, y int) color.Color {
	pix := s.Pixels()
	if pix == nil {
		return color.Transparent
	}
	return pix.At(x, y)
}

// Pixels returns the current contents. When the raster backend exposes
// its backing image the result aliases the surface and must be treated as
// read-only; otherwise it is a copy.
func (s *Surface) Pixels() *image.RGBA {
	if im, ok := s.raster.(surface.Imager); ok {
		return im.Image()
	}
	return s.raster.Snapshot()
}

// Snapshot returns a copy of the current contents.
func (s *Surface) Snapshot() *image.RGBA {
	return s.raster.Snapshot()
}

// SavePNG writes the current contents to a PNG file.
func (s *Surface) SavePNG(path string) error {
	img := s.Snapshot()
	if img == nil {
		return ErrClosed
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, img)
}

// Close releases the raster. The surface must not be used afterwards.
func (s *Surface) Close() error {
	return s.raster.Close()
}
