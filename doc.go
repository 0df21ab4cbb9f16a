// Package blit provides a small immediate-mode 2D presentation layer for Go.
//
// # Overview
//
// blit treats drawing as compositing onto addressable rectangular surfaces:
// images and other surfaces are blitted at a position or scaled into a
// rectangle, rectangles are filled with colors, and rectangles can be
// tested for overlap. Input is sampled as state (see package input) rather
// than consumed as events, which suits a per-frame game loop.
//
// # Quick Start
//
//	display := blit.NewDisplay(win) // win comes from a host, e.g. ebitenhost
//	display.SetCaption("Demo")
//	screen, err := display.SetMode(800, 600)
//
//	loader := blit.NewLoader()
//	loader.Init(blit.Dimensions{"ship.png": {Width: 32, Height: 16}})
//	ship, err := loader.Load("images/ship.png")
//
//	// every frame:
//	screen.Fill(blit.Navy)
//	screen.Blit(ship, blit.At(x, y))
//	blit.DrawRect(screen, blit.ColorName("RED"), blit.Box{10, 10, 50, 20})
//	display.Update()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Rect, Color, Surface, Image, DrawRect, Display
//   - surface: the raster context behind each Surface (CPU backend, registry)
//   - input: polled key/touch/mouse state table
//   - font: text rendering into alpha surfaces
//   - mixer: sound effects and the looping music slot
//   - host/ebitenhost, host/termhost: desktop window and terminal hosts
//
// # Readiness
//
// Images decode in the background. Load returns at once with the
// registered dimensions; blitting before the pixels arrive silently does
// nothing, so the next frame picks the image up. Image.Ready and
// Image.Done expose the same state for callers that want to wait.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
// Rect edges are inclusive for collision tests.
package blit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
