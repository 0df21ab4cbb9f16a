// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Surface is a raster context: a fixed-size pixel buffer that can be
// cleared, filled and drawn onto.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear replaces every pixel with c. No blending takes place.
	Clear(c color.Color)

	// FillRect composites c over the pixels inside r.
	// r is clipped to the surface bounds.
	FillRect(r image.Rectangle, c color.Color)

	// DrawImage draws img with its top-left corner at the given position.
	// If opts is nil, default options are used. When opts.DstRect is set
	// the image is scaled into that rectangle and at is ignored.
	DrawImage(img image.Image, at Point, opts *DrawImageOptions)

	// Snapshot returns a copy of the current surface contents.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// Close is idempotent.
	Close() error
}

// Imager is implemented by surfaces whose pixels live in an *image.RGBA
// that may be read without copying. Presentation hosts use it to upload
// frames without a Snapshot per frame.
type Imager interface {
	Surface

	// Image returns the backing image. It is a direct reference.
	Image() *image.RGBA
}

// Capabilities describes the optional features a surface supports.
type Capabilities struct {
	// SupportsScaling indicates DrawImage honors DstRect.
	SupportsScaling bool

	// SupportsAlpha indicates per-pixel alpha is preserved.
	SupportsAlpha bool

	// MaxWidth is the maximum supported width (0 = unlimited).
	MaxWidth int

	// MaxHeight is the maximum supported height (0 = unlimited).
	MaxHeight int
}

// CapableSurface is an optional interface for querying surface capabilities.
type CapableSurface interface {
	Surface

	// Capabilities returns the surface's capabilities.
	Capabilities() Capabilities
}
