package blit

// Shape is the area argument of DrawRect: a Rect or a Box.
type Shape interface {
	shapeRect() Rect
}

// Box is a raw {x, y, w, h} rectangle.
type Box [4]float64

func (b Box) shapeRect() Rect { return Rect{X: b[0], Y: b[1], W: b[2], H: b[3]} }
func (r Rect) shapeRect() Rect { return r }

// DrawRect fills shape on dst with p, compositing over the existing
// pixels. p may be a resolved Color or a ColorSpec; a spec naming an
// unknown color returns a *LookupError and draws nothing.
//
// Example:
//
//	blit.DrawRect(screen, blit.Red, player)
//	blit.DrawRect(screen, blit.ColorName("NAVY"), blit.Box{0, 0, 800, 40})
func DrawRect(dst *Surface, p Paint, shape Shape) error {
	c, err := p.resolve()
	if err != nil {
		return err
	}
	dst.raster.FillRect(shape.shapeRect().Bounds(), c)
	return nil
}
