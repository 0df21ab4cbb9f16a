package blit

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/blit/surface"
)

func mustSurface(t *testing.T, w, h int, opts ...SurfaceOption) *Surface {
	t.Helper()
	s, err := NewSurface(w, h, opts...)
	if err != nil {
		t.Fatalf("NewSurface(%d, %d) = %v", w, h, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func rgbaAt(s *Surface, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(s.At(x, y)).(color.NRGBA)
}

func TestNewSurface(t *testing.T) {
	s := mustSurface(t, 64, 32)

	if w, h := s.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
	if s.GetRect() != NewRect(0, 0, 64, 32) {
		t.Errorf("GetRect() = %v", s.GetRect())
	}
	if s.Alpha() {
		t.Error("Alpha() = true for a surface created without WithAlpha")
	}
	if got := rgbaAt(s, 10, 10); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("initial pixel = %v, want opaque black", got)
	}
}

func TestNewSurface_InvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := NewSurface(size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewSurface(%d, %d) = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewSurface_UnknownBackend(t *testing.T) {
	_, err := NewSurface(10, 10, WithBackend("no-such-backend"))
	if !errors.Is(err, surface.ErrUnknownBackend) {
		t.Fatalf("NewSurface(WithBackend(no-such-backend)) = %v, want ErrUnknownBackend", err)
	}
}

// countingBackend wraps the image backend and counts the rasters it builds.
type countingBackend struct {
	built int
}

func (c *countingBackend) new(opts surface.Options) (surface.Surface, error) {
	c.built++
	s := surface.NewImageSurface(opts.Width, opts.Height)
	if opts.BackgroundColor != nil {
		s.Clear(opts.BackgroundColor)
	}
	return s, nil
}

func TestNewSurface_BestBackend(t *testing.T) {
	var fast countingBackend
	remove := surface.Register(surface.Backend{Name: "fast", Priority: 90, New: fast.new})
	t.Cleanup(remove)

	s := mustSurface(t, 4, 4)
	if fast.built != 1 {
		t.Fatalf("higher priority backend built %d rasters, want 1", fast.built)
	}
	if got := rgbaAt(s, 1, 1); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("initial pixel = %v, want opaque black", got)
	}

	mustSurface(t, 4, 4, WithBackend(surface.DefaultBackend))
	if fast.built != 1 {
		t.Errorf("WithBackend(%s) used the fast backend", surface.DefaultBackend)
	}
}

func TestNewSurface_SkipsUnusableBackend(t *testing.T) {
	var off countingBackend
	remove := surface.Register(surface.Backend{
		Name:     "off",
		Priority: 90,
		New:      off.new,
		Usable:   func() bool { return false },
	})
	t.Cleanup(remove)

	mustSurface(t, 4, 4)
	if off.built != 0 {
		t.Errorf("unusable backend built %d rasters, want 0", off.built)
	}

	_, err := NewSurface(4, 4, WithBackend("off"))
	if !errors.Is(err, surface.ErrBackendUnusable) {
		t.Errorf("NewSurface(WithBackend(off)) = %v, want ErrBackendUnusable", err)
	}
}

func TestNewSurface_AlphaStartsTransparent(t *testing.T) {
	s := mustSurface(t, 8, 8, WithAlpha())

	if !s.Alpha() {
		t.Error("Alpha() = false, want true")
	}
	if got := rgbaAt(s, 3, 3); got.A != 0 {
		t.Errorf("initial pixel = %v, want fully transparent", got)
	}
}

func TestSurface_FillWhite(t *testing.T) {
	s := mustSurface(t, 800, 600, WithWindow(NewHeadlessWindow()))
	s.Fill(MustColor(ColorName("WHITE")))

	for y := 0; y < 600; y += 37 {
		for x := 0; x < 800; x += 41 {
			if got := rgbaAt(s, x, y); got != (color.NRGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel (%d,%d) = %v, want opaque white", x, y, got)
			}
		}
	}
	if got := rgbaAt(s, 799, 599); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want opaque white", got)
	}
}

func TestSurface_FillReplaces(t *testing.T) {
	s := mustSurface(t, 10, 10, WithAlpha())
	s.Fill(Red)
	if err := DrawRect(s, Green, Box{0, 0, 5, 5}); err != nil {
		t.Fatal(err)
	}
	s.Fill(MustColor(ColorRGBA(0, 0, 255, 128)))

	// Fill overwrites instead of blending with what was there.
	for _, p := range []image.Point{{1, 1}, {8, 8}} {
		got := rgbaAt(s, p.X, p.Y)
		if got.R != 0 || got.G != 0 || got.A != 128 {
			t.Errorf("pixel %v = %v, want translucent blue only", p, got)
		}
	}
}

func TestSurface_BlitSurface(t *testing.T) {
	dst := mustSurface(t, 20, 20)
	dst.Fill(White)

	src := mustSurface(t, 4, 4)
	src.Fill(Navy)

	dst.Blit(src, At(10, 5))

	if got := rgbaAt(dst, 10, 5); got != (color.NRGBA{0, 0, 128, 255}) {
		t.Errorf("pixel (10,5) = %v, want navy", got)
	}
	if got := rgbaAt(dst, 13, 8); got != (color.NRGBA{0, 0, 128, 255}) {
		t.Errorf("pixel (13,8) = %v, want navy", got)
	}
	if got := rgbaAt(dst, 14, 8); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel (14,8) = %v, want white", got)
	}

	// Surfaces are never scaled; Into only supplies the position.
	dst.Fill(White)
	dst.Blit(src, Into(NewRect(0, 0, 20, 20)))
	if got := rgbaAt(dst, 5, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel (5,5) = %v, want white (no scaling)", got)
	}
	if got := rgbaAt(dst, 3, 3); got != (color.NRGBA{0, 0, 128, 255}) {
		t.Errorf("pixel (3,3) = %v, want navy", got)
	}
}

func TestSurface_BlitAlphaSurfaceKeepsBackground(t *testing.T) {
	dst := mustSurface(t, 10, 10)
	dst.Fill(White)

	overlay := mustSurface(t, 10, 10, WithAlpha())
	if err := DrawRect(overlay, Red, Box{0, 0, 2, 2}); err != nil {
		t.Fatal(err)
	}
	dst.Blit(overlay, At(0, 0))

	if got := rgbaAt(dst, 1, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (1,1) = %v, want red", got)
	}
	if got := rgbaAt(dst, 5, 5); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel (5,5) = %v, want white to show through", got)
	}
}

func TestSurface_BlitImage(t *testing.T) {
	loader := newTestLoader(t, map[string]color.NRGBA{"images/red.png": {255, 0, 0, 255}})
	img, err := loader.Load("images/red.png")
	if err != nil {
		t.Fatal(err)
	}
	loader.Wait()
	if !img.Ready() {
		t.Fatalf("image not ready after Wait, err = %v", img.Err())
	}

	t.Run("native size", func(t *testing.T) {
		dst := mustSurface(t, 20, 20)
		dst.Fill(White)
		dst.Blit(img, At(2, 3))

		if got := rgbaAt(dst, 2, 3); got != (color.NRGBA{255, 0, 0, 255}) {
			t.Errorf("pixel (2,3) = %v, want red", got)
		}
		if got := rgbaAt(dst, 5, 4); got != (color.NRGBA{255, 0, 0, 255}) {
			t.Errorf("pixel (5,4) = %v, want red", got)
		}
		if got := rgbaAt(dst, 6, 3); got != (color.NRGBA{255, 255, 255, 255}) {
			t.Errorf("pixel (6,3) = %v, want white", got)
		}
	})

	t.Run("scaled into rect", func(t *testing.T) {
		dst := mustSurface(t, 20, 20)
		dst.Fill(White)
		dst.Blit(img, Into(NewRect(0, 0, 16, 8)))

		if got := rgbaAt(dst, 15, 7); got != (color.NRGBA{255, 0, 0, 255}) {
			t.Errorf("pixel (15,7) = %v, want red", got)
		}
		if got := rgbaAt(dst, 16, 8); got != (color.NRGBA{255, 255, 255, 255}) {
			t.Errorf("pixel (16,8) = %v, want white", got)
		}
	})
}

func TestSurface_BlitNotReadyIsNoop(t *testing.T) {
	dst := mustSurface(t, 4, 4)
	dst.Fill(White)
	before := dst.Snapshot()

	dst.Blit(&Image{path: "images/pending.png"}, At(0, 0))
	dst.Blit(Placeholder(), Into(NewRect(0, 0, 4, 4)))
	dst.Blit((*Image)(nil), At(0, 0))
	dst.Blit((*Surface)(nil), At(0, 0))

	after := dst.Snapshot()
	for i := range before.Pix {
		if before.Pix[i] != after.Pix[i] {
			t.Fatal("blit of a not-ready image changed the surface")
		}
	}
}

func TestSurface_SavePNG(t *testing.T) {
	s := mustSurface(t, 3, 3)
	s.Fill(Green)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}

	img, err := NewFSDecoder(os.DirFS(filepath.Dir(path))).Decode("out.png")
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("saved pixel = %v, want green", got)
	}
}

func TestSurface_SavePNGClosed(t *testing.T) {
	s, err := NewSurface(2, 2)
	if err != nil {
		t.Fatalf("NewSurface() = %v", err)
	}
	_ = s.Close()

	path := filepath.Join(t.TempDir(), "closed.png")
	if err := s.SavePNG(path); !errors.Is(err, ErrClosed) {
		t.Errorf("SavePNG() on closed surface = %v, want %v", err, ErrClosed)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("SavePNG() on closed surface created a file: %v", err)
	}
}

func TestSurface_AtClosed(t *testing.T) {
	s, err := NewSurface(2, 2)
	if err != nil {
		t.Fatalf("NewSurface() = %v", err)
	}
	_ = s.Close()

	if got := s.At(1, 1); got != color.Transparent {
		t.Errorf("At() on closed surface = %v, want transparent", got)
	}
}

func TestSurface_DrawImage(t *testing.T) {
	s := mustSurface(t, 4, 4)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	s.DrawImage(src, 2, 1)
	s.DrawImage(nil, 0, 0)

	if got := rgbaAt(s, 2, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("At(2, 1) = %v, want white", got)
	}
	if got := rgbaAt(s, 1, 1); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("At(1, 1) = %v, want black", got)
	}
}
