package blit

import (
	"image"
	"testing"
)

func TestRect_Colliderect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", NewRect(0, 0, 50, 50), NewRect(25, 25, 50, 50), true},
		{"separated diagonally", NewRect(0, 0, 50, 50), NewRect(51, 51, 10, 10), false},
		{"shared vertical edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), true},
		{"shared horizontal edge", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), true},
		{"touching corner", NewRect(0, 0, 10, 10), NewRect(10, 10, 5, 5), true},
		{"one pixel gap", NewRect(0, 0, 10, 10), NewRect(11, 0, 10, 10), false},
		{"gap above", NewRect(0, 20, 10, 10), NewRect(0, 0, 10, 9), false},
		{"contained", NewRect(0, 0, 100, 100), NewRect(10, 10, 5, 5), true},
		{"zero size inside", NewRect(0, 0, 10, 10), NewRect(5, 5, 0, 0), true},
		{"zero size on edge", NewRect(0, 0, 10, 10), NewRect(10, 10, 0, 0), true},
		{"zero size outside", NewRect(0, 0, 10, 10), NewRect(10.5, 0, 0, 0), false},
		{"fractional overlap", NewRect(0.5, 0.5, 1, 1), NewRect(1.25, 1.25, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Colliderect(tt.b); got != tt.want {
				t.Errorf("Colliderect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Colliderect(tt.a); got != tt.want {
				t.Errorf("Colliderect(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRect_ColliderectSelf(t *testing.T) {
	rects := []Rect{
		NewRect(0, 0, 10, 10),
		NewRect(-5, -5, 3, 7),
		NewRect(100, 200, 0, 0),
		{},
	}
	for _, r := range rects {
		if !r.Colliderect(r) {
			t.Errorf("Colliderect(%v, %v) = false, want true", r, r)
		}
	}
}

func TestRect_SetTopLeft(t *testing.T) {
	r := NewRect(1, 2, 30, 40)
	r.SetTopLeft(7, 9)

	want := NewRect(7, 9, 30, 40)
	if r != want {
		t.Errorf("SetTopLeft(7, 9) = %v, want %v", r, want)
	}
	if x, y := r.TopLeft(); x != 7 || y != 9 {
		t.Errorf("TopLeft() = (%v, %v), want (7, 9)", x, y)
	}
}

func TestRect_Move(t *testing.T) {
	r := NewRect(10, 10, 5, 5)
	got := r.Move(-3, 4)

	if got != NewRect(7, 14, 5, 5) {
		t.Errorf("Move(-3, 4) = %v, want {7 14 5 5}", got)
	}
	if r != NewRect(10, 10, 5, 5) {
		t.Error("Move should not modify the receiver")
	}
}

func TestRect_Bounds(t *testing.T) {
	tests := []struct {
		r    Rect
		want image.Rectangle
	}{
		{NewRect(0, 0, 10, 20), image.Rect(0, 0, 10, 20)},
		{NewRect(0.4, 0.6, 10, 10), image.Rect(0, 1, 10, 11)},
		{NewRect(5, 5, 0, 0), image.Rect(5, 5, 5, 5)},
	}
	for _, tt := range tests {
		if got := tt.r.Bounds(); got != tt.want {
			t.Errorf("Bounds(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
