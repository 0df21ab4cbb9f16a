package blit

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle given by its top-left corner and its
// extent. W and H are expected to be non-negative; negative extents are
// neither normalized nor rejected.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Colliderect reports whether r and other overlap. Edges are inclusive:
// two rectangles that only share a boundary line collide, and so do
// zero-sized rectangles lying on each other's edge.
func (r Rect) Colliderect(other Rect) bool {
	if other.X+other.W < r.X {
		return false
	}
	if other.Y+other.H < r.Y {
		return false
	}
	if other.X > r.X+r.W {
		return false
	}
	if other.Y > r.Y+r.H {
		return false
	}
	return true
}

// SetTopLeft moves the rectangle so that its top-left corner is (x, y).
// The size is unchanged.
func (r *Rect) SetTopLeft(x, y float64) {
	r.X = x
	r.Y = y
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() (x, y float64) {
	return r.X, r.Y
}

// Move returns r translated by (dx, dy).
func (r Rect) Move(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Bounds returns the pixel rectangle covered by r, rounding each edge to
// the nearest pixel boundary.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)),
		int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)),
		int(math.Round(r.Y+r.H)),
	)
}
