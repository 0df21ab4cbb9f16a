// Package ebitenhost presents blit surfaces in a desktop or mobile window
// driven by Ebitengine.
//
// A Host is both the blit.Window that surfaces attach to and the
// input.Binder that key and on-screen button signals come from:
//
//	h := ebitenhost.New(ebitenhost.WithScale(2))
//	display := blit.NewDisplay(h)
//	screen, _ := display.SetMode(320, 240)
//	keys := input.New(h)
//
//	err := h.Run(func() error {
//	    // poll keys, draw onto screen
//	    return nil
//	})
//
// Attached surfaces are stacked top to bottom with blit.FlowLayout and
// copied to the window on every draw.
package ebitenhost
