package blit

import (
	"errors"
	"image/color"
	"testing"
)

func TestDrawRect(t *testing.T) {
	tests := []struct {
		name  string
		paint Paint
		shape Shape
		in    [2]int
		out   [2]int
		want  color.NRGBA
	}{
		{"color and rect", Red, NewRect(2, 2, 4, 4), [2]int{5, 5}, [2]int{6, 6}, color.NRGBA{255, 0, 0, 255}},
		{"name and box", ColorName("NAVY"), Box{0, 0, 3, 1}, [2]int{2, 0}, [2]int{3, 0}, color.NRGBA{0, 0, 128, 255}},
		{"array and box", ColorArray([4]uint8{0, 255, 0, 255}), Box{8, 8, 2, 2}, [2]int{9, 9}, [2]int{7, 7}, color.NRGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSurface(t, 10, 10)
			s.Fill(White)

			if err := DrawRect(s, tt.paint, tt.shape); err != nil {
				t.Fatalf("DrawRect() = %v", err)
			}
			if got := rgbaAt(s, tt.in[0], tt.in[1]); got != tt.want {
				t.Errorf("pixel inside %v = %v, want %v", tt.in, got, tt.want)
			}
			if got := rgbaAt(s, tt.out[0], tt.out[1]); got != (color.NRGBA{255, 255, 255, 255}) {
				t.Errorf("pixel outside %v = %v, want white", tt.out, got)
			}
		})
	}
}

func TestDrawRect_UnknownColor(t *testing.T) {
	s := mustSurface(t, 4, 4)
	s.Fill(White)

	err := DrawRect(s, ColorName("NOT_A_COLOR"), Box{0, 0, 4, 4})
	if !errors.Is(err, ErrLookup) {
		t.Fatalf("DrawRect() = %v, want lookup error", err)
	}
	if got := rgbaAt(s, 1, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel = %v, want untouched white", got)
	}
}

func TestDrawRect_Blends(t *testing.T) {
	s := mustSurface(t, 4, 4)
	s.Fill(White)

	if err := DrawRect(s, ColorRGBA(0, 0, 0, 128), Box{0, 0, 4, 4}); err != nil {
		t.Fatal(err)
	}
	got := rgbaAt(s, 2, 2)
	if got.A != 255 || got.R < 120 || got.R > 135 {
		t.Errorf("pixel = %v, want opaque mid gray", got)
	}
}

func TestDrawRect_Clipped(t *testing.T) {
	s := mustSurface(t, 4, 4)
	if err := DrawRect(s, Red, NewRect(-10, -10, 100, 100)); err != nil {
		t.Fatalf("DrawRect() = %v", err)
	}
	if got := rgbaAt(s, 3, 3); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want red", got)
	}
}
