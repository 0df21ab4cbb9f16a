// Package termhost presents blit surfaces in a terminal with tcell.
//
// Every character cell shows two vertically stacked pixels using the
// upper half block glyph, foreground on top and background below. Frames
// larger than the terminal are scaled down to fit. The bottom row is a
// status line holding the window title.
//
// Terminals report key presses but not key releases, so the host
// synthesizes a release when a key has not repeated for a short while
// (see WithReleaseAfter). Ctrl-C ends Run.
package termhost
