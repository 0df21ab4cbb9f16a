package ebitenhost

import (
	"image/color"

	"github.com/gogpu/blit"
)

// Button is an on-screen control: a named rectangle in window layout
// coordinates that presses while touched or clicked.
type Button struct {
	name  string
	rect  blit.Rect
	touch bool

	onTouchStart, onTouchEnd func()
	onMouseDown, onMouseUp   func()

	held bool
}

// Name returns the control name.
func (b *Button) Name() string { return b.name }

// Rect returns the button area.
func (b *Button) Rect() blit.Rect { return b.rect }

// Touchable implements input.Control.
func (b *Button) Touchable() bool { return b.touch }

// OnTouch implements input.Control.
func (b *Button) OnTouch(start, end func()) {
	b.onTouchStart, b.onTouchEnd = start, end
}

// OnMouse implements input.Control.
func (b *Button) OnMouse(down, up func()) {
	b.onMouseDown, b.onMouseUp = down, up
}

func (b *Button) contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.rect.X && fx < b.rect.X+b.rect.W &&
		fy >= b.rect.Y && fy < b.rect.Y+b.rect.H
}

func (b *Button) press(touch bool) {
	b.held = true
	call(b.handler(touch, true))
}

func (b *Button) release(touch bool) {
	b.held = false
	call(b.handler(touch, false))
}

func (b *Button) handler(touch, down bool) func() {
	switch {
	case touch && down:
		return b.onTouchStart
	case touch:
		return b.onTouchEnd
	case down:
		return b.onMouseDown
	default:
		return b.onMouseUp
	}
}

func (b *Button) fill() color.Color {
	if b.held {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	}
	return color.NRGBA{R: 0xbe, G: 0xbe, B: 0xbe, A: 0x50}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
