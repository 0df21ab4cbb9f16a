package blit

import (
	"image"
	"sync"
)

// Window is the host side of the display: it receives every surface
// created WithWindow and presents them, and it owns the title.
type Window interface {
	// Attach registers s for presentation. It is called once per surface,
	// from NewSurface.
	Attach(s *Surface)

	// SetTitle sets the window title.
	SetTitle(title string)
}

// Display creates the on-screen surface and forwards window metadata.
type Display struct {
	window Window
}

// NewDisplay returns a Display presenting through w. A nil w uses a new
// HeadlessWindow.
func NewDisplay(w Window) *Display {
	if w == nil {
		w = NewHeadlessWindow()
	}
	return &Display{window: w}
}

// Window returns the window the display presents through.
func (d *Display) Window() Window {
	return d.window
}

// SetMode creates a window-attached surface of the given size. Every call
// creates and attaches a new surface; applications call it once.
func (d *Display) SetMode(width, height int) (*Surface, error) {
	return NewSurface(width, height, WithWindow(d.window))
}

// SetCaption sets the window title.
func (d *Display) SetCaption(title string) {
	d.window.SetTitle(title)
}

// Update does nothing. Attached surfaces are presented continuously by the
// host; Update exists so that poll-and-present loops read naturally.
func (d *Display) Update() {}

// HeadlessWindow is a Window that presents nothing. It records attached
// surfaces and the title, for tests and offscreen rendering.
type HeadlessWindow struct {
	mu       sync.Mutex
	title    string
	surfaces []*Surface
}

// NewHeadlessWindow creates an empty HeadlessWindow.
func NewHeadlessWindow() *HeadlessWindow {
	return &HeadlessWindow{}
}

// Attach implements Window.
func (w *HeadlessWindow) Attach(s *Surface) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surfaces = append(w.surfaces, s)
}

// SetTitle implements Window.
func (w *HeadlessWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = title
}

// Title returns the last title set.
func (w *HeadlessWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Surfaces returns the attached surfaces in attachment order.
func (w *HeadlessWindow) Surfaces() []*Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*Surface(nil), w.surfaces...)
}

// FlowLayout stacks surfaces top to bottom, left aligned, the way block
// elements flow in a document. It returns the total extent and the
// top-left offset of each surface.
func FlowLayout(surfaces []*Surface) (width, height int, offsets []image.Point) {
	offsets = make([]image.Point, len(surfaces))
	for i, s := range surfaces {
		offsets[i] = image.Pt(0, height)
		height += s.Height()
		if s.Width() > width {
			width = s.Width()
		}
	}
	return width, height, offsets
}
