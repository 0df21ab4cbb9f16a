// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"sync"
)

// Factory builds a raster for the given options.
type Factory func(opts Options) (Surface, error)

// Backend is a named raster implementation known to a Registry.
type Backend struct {
	Name string

	// Priority orders automatic selection, highest first. The built-in
	// image backend uses 10.
	Priority int

	New Factory

	// Usable reports whether the backend can run here. Nil means always.
	Usable func() bool
}

func (b Backend) usable() bool {
	return b.Usable == nil || b.Usable()
}

// Registry holds the raster backends a surface can be built on. The zero
// value is empty and ready to use.
//
// Hosts that own a faster raster path register it on the default
// registry; blit surfaces take a backend by name (blit.WithBackend) or
// the best usable one.
//
//	remove := surface.Register(surface.Backend{Name: "shm", Priority: 50, New: newSHM})
//	defer remove()
type Registry struct {
	mu       sync.RWMutex
	backends []Backend
}

var defaultRegistry Registry

// Register adds b to the default registry and returns a func removing it.
func Register(b Backend) (remove func()) {
	return defaultRegistry.Register(b)
}

// New builds a raster on the best usable backend of the default registry.
func New(opts Options) (Surface, error) {
	return defaultRegistry.New(opts)
}

// Open builds a raster on the named backend of the default registry.
func Open(name string, opts Options) (Surface, error) {
	return defaultRegistry.Open(name, opts)
}

// Register adds b, replacing any backend of the same name, and returns a
// func that removes it again.
func (r *Registry) Register(b Backend) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends = slices.DeleteFunc(r.backends, func(e Backend) bool { return e.Name == b.Name })
	r.backends = append(r.backends, b)
	slices.SortStableFunc(r.backends, func(x, y Backend) int {
		return cmp.Compare(y.Priority, x.Priority)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.backends = slices.DeleteFunc(r.backends, func(e Backend) bool { return e.Name == b.Name })
		})
	}
}

// Names lists the usable backends, best first.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for _, b := range r.backends {
		if b.usable() {
			names = append(names, b.Name)
		}
	}
	return names
}

// New tries the usable backends in priority order and returns the first
// raster built. With every backend failing, the last error is returned.
func (r *Registry) New(opts Options) (Surface, error) {
	r.mu.RLock()
	backends := slices.Clone(r.backends)
	r.mu.RUnlock()

	err := ErrNoBackend
	for _, b := range backends {
		if !b.usable() {
			continue
		}
		var s Surface
		if s, err = b.New(opts); err == nil {
			return s, nil
		}
	}
	return nil, err
}

// Open builds a raster on the named backend.
func (r *Registry) Open(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	i := slices.IndexFunc(r.backends, func(b Backend) bool { return b.Name == name })
	var b Backend
	if i >= 0 {
		b = r.backends[i]
	}
	r.mu.RUnlock()

	switch {
	case i < 0:
		return nil, &BackendError{Name: name, Err: ErrUnknownBackend}
	case !b.usable():
		return nil, &BackendError{Name: name, Err: ErrBackendUnusable}
	}
	return b.New(opts)
}

var (
	ErrNoBackend       = errors.New("surface: no usable backend")
	ErrUnknownBackend  = errors.New("surface: unknown backend")
	ErrBackendUnusable = errors.New("surface: backend not usable")
)

// BackendError names the backend a lookup failed on.
type BackendError struct {
	Name string
	Err  error
}

func (e *BackendError) Error() string { return e.Err.Error() + ": " + e.Name }

func (e *BackendError) Unwrap() error { return e.Err }

// DefaultBackend is the name of the built-in CPU backend.
const DefaultBackend = "image"

func newImageBackend(opts Options) (Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, &InvalidSizeError{Width: opts.Width, Height: opts.Height}
	}
	s := NewImageSurface(opts.Width, opts.Height)
	if opts.BackgroundColor != nil {
		s.Clear(opts.BackgroundColor)
	}
	return s, nil
}

// InvalidSizeError is returned by the built-in backend for non-positive
// dimensions.
type InvalidSizeError struct {
	Width, Height int
}

func (e *InvalidSizeError) Error() string {
	return "surface: invalid size " + strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height)
}

func init() {
	Register(Backend{Name: DefaultBackend, Priority: 10, New: newImageBackend})
}
