// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Rectangles are filled with image/draw; scaled image draws go through
// golang.org/x/image/draw. This is the default surface implementation.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.FillRect(image.Rect(0, 0, 100, 50), color.RGBA{0, 0, 128, 255})
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Every pixel starts transparent black.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	bounds := img.Bounds()
	return &ImageSurface{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		img:    img,
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear replaces the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect composites c over the pixels inside r.
func (s *ImageSurface) FillRect(r image.Rectangle, c color.Color) {
	if s.closed || c == nil {
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	_, _, _, a := c.RGBA()
	op := draw.Over
	if a == 0xffff {
		// Opaque fills need no blending.
		op = draw.Src
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, op)
}

// DrawImage draws an image at the specified position, or scaled into
// opts.DstRect when it is set.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	if opts == nil {
		opts = DefaultDrawImageOptions()
	}

	srcBounds := img.Bounds()
	if opts.SrcRect != nil {
		srcBounds = opts.SrcRect.Intersect(srcBounds)
	}
	if srcBounds.Empty() {
		return
	}

	mask := opts.mask()
	op := opts.Op.drawOp()

	if opts.DstRect != nil {
		dst := *opts.DstRect
		if dst.Empty() {
			return
		}
		var xopts *xdraw.Options
		if mask != nil {
			xopts = &xdraw.Options{SrcMask: mask}
		}
		opts.Filter.scaler().Scale(s.img, dst, img, srcBounds, op, xopts)
		return
	}

	x := int(math.Floor(at.X))
	y := int(math.Floor(at.Y))
	dst := image.Rect(x, y, x+srcBounds.Dx(), y+srcBounds.Dy())
	if mask != nil {
		draw.DrawMask(s.img, dst, img, srcBounds.Min, mask, image.Point{}, op)
		return
	}
	draw.Draw(s.img, dst, img, srcBounds.Min, op)
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}

	result := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(result, result.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return result
}

// Close releases resources associated with the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = nil
	return nil
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Capabilities returns the surface capabilities.
func (s *ImageSurface) Capabilities() Capabilities {
	return Capabilities{
		SupportsScaling: true,
		SupportsAlpha:   true,
	}
}
