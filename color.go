package blit

import (
	"image/color"
	"strconv"
)

// namedColors is the fixed name table consulted by ColorName.
// Values follow the pygame color list.
var namedColors = map[string][4]uint8{
	"WHITE":  {255, 255, 255, 255},
	"BLACK":  {0, 0, 0, 255},
	"NAVY":   {0, 0, 128, 255},
	"RED":    {255, 0, 0, 255},
	"GREEN":  {0, 255, 0, 255},
	"BLUE":   {0, 0, 255, 255},
	"YELLOW": {255, 255, 0, 255},
	"GRAY":   {190, 190, 190, 255},
}

// ColorSpec describes a color before it is resolved: either a name from
// the named color table or a literal RGBA quadruple.
//
// Construct one with ColorName, ColorRGBA or ColorArray.
type ColorSpec struct {
	name    string
	rgba    [4]uint8
	literal bool
}

// ColorName returns a spec that resolves name against the named color
// table. Matching is exact and case-sensitive.
func ColorName(name string) ColorSpec {
	return ColorSpec{name: name}
}

// ColorRGBA returns a spec for a literal color. Alpha is in [0, 255].
func ColorRGBA(r, g, b, a uint8) ColorSpec {
	return ColorSpec{rgba: [4]uint8{r, g, b, a}, literal: true}
}

// ColorArray returns a spec for a literal [r, g, b, a] array.
func ColorArray(a [4]uint8) ColorSpec {
	return ColorSpec{rgba: a, literal: true}
}

// Color is a resolved, immutable color. Its paint descriptor is computed
// once at construction.
//
// Color implements color.Color, so it can be passed directly to
// image/draw and to the surface package.
type Color struct {
	rgba  [4]uint8
	paint string
}

// NewColor resolves spec. An unknown color name yields a *LookupError.
func NewColor(spec ColorSpec) (Color, error) {
	if spec.literal {
		return newColor(spec.rgba), nil
	}
	rgba, ok := namedColors[spec.name]
	if !ok {
		return Color{}, &LookupError{Kind: "color", Name: spec.name}
	}
	return newColor(rgba), nil
}

// MustColor is like NewColor but panics on lookup failure. It is meant for
// package-level color variables.
func MustColor(spec ColorSpec) Color {
	c, err := NewColor(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func newColor(rgba [4]uint8) Color {
	return Color{rgba: rgba, paint: paintString(rgba)}
}

// paintString formats rgba as a CSS-style paint value. The rasterizer
// expects alpha in [0, 1], hence the division by 255.
func paintString(c [4]uint8) string {
	alpha := float64(c[3]) / 255
	return "rgba(" +
		strconv.Itoa(int(c[0])) + "," +
		strconv.Itoa(int(c[1])) + "," +
		strconv.Itoa(int(c[2])) + "," +
		strconv.FormatFloat(alpha, 'f', -1, 64) + ")"
}

// Paint returns the paint descriptor, e.g. "rgba(255,0,0,1)".
func (c Color) Paint() string {
	return c.paint
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.paint
}

// Components returns the straight (non-premultiplied) components.
func (c Color) Components() (r, g, b, a uint8) {
	return c.rgba[0], c.rgba[1], c.rgba[2], c.rgba[3]
}

// Alpha returns the alpha component scaled to [0, 1].
func (c Color) Alpha() float64 {
	return float64(c.rgba[3]) / 255
}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.rgba[0], G: c.rgba[1], B: c.rgba[2], A: c.rgba[3]}.RGBA()
}

// NRGBA returns c as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.rgba[0], G: c.rgba[1], B: c.rgba[2], A: c.rgba[3]}
}

// Paint is a color argument accepted by the drawing functions: either an
// already resolved Color or a ColorSpec that is resolved on use.
type Paint interface {
	resolve() (Color, error)
}

func (c Color) resolve() (Color, error)      { return c, nil }
func (s ColorSpec) resolve() (Color, error) { return NewColor(s) }

// Common colors
var (
	White = MustColor(ColorName("WHITE"))
	Black = MustColor(ColorName("BLACK"))
	Navy  = MustColor(ColorName("NAVY"))
	Red   = MustColor(ColorName("RED"))
	Green = MustColor(ColorName("GREEN"))
)
