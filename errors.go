package blit

import "errors"

// Sentinel errors for blit.
var (
	// ErrLookup is matched by every *LookupError via errors.Is.
	ErrLookup = errors.New("blit: lookup failed")

	// ErrInvalidSize is returned when a surface is created with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("blit: invalid surface size")

	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("blit: surface closed")

	// ErrQuit is returned by a frame function to end a host's run loop
	// normally. Hosts report it as a nil error.
	ErrQuit = errors.New("blit: quit")
)

// LookupError reports a name that has no entry in a fixed table: a color
// name missing from the named color table, or an asset name missing from
// the image dimension registry. It is a programming error and is never
// retried.
type LookupError struct {
	// Kind is the table that was searched ("color" or "image").
	Kind string

	// Name is the name that could not be resolved.
	Name string
}

func (e *LookupError) Error() string {
	return "blit: unknown " + e.Kind + " " + `"` + e.Name + `"`
}

// Is reports whether target is ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
