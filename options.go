package blit

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	// Offscreen buffer for transparent content
//	s, err := blit.NewSurface(200, 50, blit.WithAlpha())
//
//	// On-screen surface
//	s, err := blit.NewSurface(800, 600, blit.WithWindow(win))
type SurfaceOption func(*surfaceOptions)

// surfaceOptions holds optional configuration for Surface creation.
type surfaceOptions struct {
	window  Window
	alpha   bool
	backend string
}

func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{}
}

// WithWindow attaches the surface to w. The window is told about the
// surface exactly once, during construction.
func WithWindow(w Window) SurfaceOption {
	return func(o *surfaceOptions) {
		o.window = w
	}
}

// WithAlpha creates a surface intended for transparent content such as
// rendered text. It starts fully transparent and keeps per-pixel alpha
// when blitted.
func WithAlpha() SurfaceOption {
	return func(o *surfaceOptions) {
		o.alpha = true
	}
}

// WithBackend selects the raster backend by its registry name. Without
// it the best usable backend is taken; see surface.Register.
func WithBackend(name string) SurfaceOption {
	return func(o *surfaceOptions) {
		o.backend = name
	}
}
