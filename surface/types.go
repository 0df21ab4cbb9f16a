// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Op is the compositing operator used when drawing an image.
type Op uint8

const (
	// OpOver composites the source over the destination (Porter-Duff over).
	OpOver Op = iota

	// OpSrc replaces the destination with the source.
	OpSrc
)

func (o Op) drawOp() draw.Op {
	if o == OpSrc {
		return draw.Src
	}
	return draw.Over
}

// Filter specifies the interpolation mode for image scaling.
type Filter uint8

const (
	// FilterBilinear uses bilinear interpolation.
	// It matches the default smoothing of canvas-style rasterizers.
	FilterBilinear Filter = iota

	// FilterNearest uses nearest-neighbor interpolation.
	FilterNearest

	// FilterCatmullRom uses the Catmull-Rom cubic kernel.
	// Highest quality but slowest.
	FilterCatmullRom
)

func (f Filter) scaler() xdraw.Scaler {
	switch f {
	case FilterNearest:
		return xdraw.NearestNeighbor
	case FilterCatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}

// DrawImageOptions defines options for drawing images.
type DrawImageOptions struct {
	// SrcRect is the source rectangle within the image.
	// If nil, the entire image is used.
	SrcRect *image.Rectangle

	// DstRect is the destination rectangle on the surface.
	// If nil, the image is drawn at its original size.
	DstRect *image.Rectangle

	// Alpha is the opacity (0.0 = transparent, 1.0 = opaque).
	// Default: 1.0
	Alpha float64

	// Filter is the interpolation mode for scaling.
	Filter Filter

	// Op is the compositing operator. Default: OpOver.
	Op Op
}

// DefaultDrawImageOptions returns DrawImageOptions with default values.
func DefaultDrawImageOptions() *DrawImageOptions {
	return &DrawImageOptions{
		Alpha:  1.0,
		Filter: FilterBilinear,
		Op:     OpOver,
	}
}

// mask returns the mask image that applies the opacity, or nil when the
// draw is fully opaque.
func (o *DrawImageOptions) mask() image.Image {
	if o.Alpha >= 1 {
		return nil
	}
	a := o.Alpha
	if a < 0 {
		a = 0
	}
	return image.NewUniform(color.Alpha{A: uint8(a*255 + 0.5)})
}

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int

	// BackgroundColor is the initial contents of every pixel.
	// Default: transparent
	BackgroundColor color.Color

	// Custom options for specific backends.
	Custom map[string]any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:  width,
		Height: height,
	}
}
