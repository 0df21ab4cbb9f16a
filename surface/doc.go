// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the raster context behind blit surfaces.
//
// A Surface is a fixed-size pixel buffer with the handful of operations a
// 2D rasterizer context offers: clearing, filling axis-aligned rectangles
// and drawing images, optionally scaled into a destination rectangle.
// The blit package builds its compositing model on top of this interface,
// so a different raster implementation can be swapped in without touching
// drawing code.
//
// # Surface Types
//
//   - ImageSurface: CPU rendering into an *image.RGBA using image/draw and
//     golang.org/x/image/draw for scaling
//
// # Registry
//
// Backends are registered with a priority and picked by name or, with
// New, best usable first:
//
//	remove := surface.Register(surface.Backend{Name: "fast", Priority: 50, New: newFast})
//	defer remove()
//
//	s, err := surface.Open(surface.DefaultBackend, surface.Options{Width: 800, Height: 600})
//	s, err = surface.New(surface.Options{Width: 800, Height: 600})
//
// # Usage
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	s.FillRect(image.Rect(10, 10, 60, 40), color.RGBA{255, 0, 0, 255})
//	s.DrawImage(sprite, surface.Pt(100, 100), nil)
//
//	img := s.Snapshot()
package surface
