package blit

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultImagePrefix is stripped from load paths before the dimension
// registry is consulted.
const DefaultImagePrefix = "images/"

// Size is the pixel size of a registered image.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Dimensions maps a short asset name (the load path without its prefix)
// to its pixel size.
type Dimensions map[string]Size

// Image is a drawable bound to the rectangle of its registered size.
//
// The rectangle is known as soon as Load returns; the pixels arrive later
// from a background decode. Blitting an image that is not ready yet is a
// no-op.
type Image struct {
	path string
	rect Rect

	pix  atomic.Pointer[image.RGBA]
	done chan struct{}
	err  error // written before done is closed
}

// Placeholder returns an image with an all-zero rect and no drawable.
// It never becomes ready.
func Placeholder() *Image {
	return &Image{}
}

// Path returns the path the image was loaded from.
func (img *Image) Path() string {
	return img.path
}

// GetRect returns the registered dimensions at the origin. It is valid
// before decoding completes.
func (img *Image) GetRect() Rect {
	return img.rect
}

// Ready reports whether the pixels have been decoded.
func (img *Image) Ready() bool {
	return img.pix.Load() != nil
}

// settled is the Done channel of images that never decode.
var settled = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Done returns a channel that is closed once decoding has settled, either
// successfully or not. For a placeholder it is already closed.
func (img *Image) Done() <-chan struct{} {
	if img.done == nil {
		return settled
	}
	return img.done
}

// Err returns the decode error once Done is closed. A failed image never
// becomes ready.
func (img *Image) Err() error {
	if img.done == nil {
		return nil
	}
	select {
	case <-img.done:
		return img.err
	default:
		return nil
	}
}

func (img *Image) drawable() image.Image {
	if pix := img.pix.Load(); pix != nil {
		return pix
	}
	return nil
}

// Loader resolves asset paths against a dimension registry and decodes
// them in the background.
//
// A Loader replaces the process-wide image table: create one per
// application (or per test) and Init it before the first Load.
type Loader struct {
	mu      sync.RWMutex
	dims    Dimensions
	decoder Decoder
	prefix  string

	ctx      context.Context
	decodes  *semaphore.Weighted
	inflight sync.WaitGroup
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDecoder sets the decoding service. The default decodes files
// relative to the working directory.
func WithDecoder(d Decoder) LoaderOption {
	return func(l *Loader) {
		l.decoder = d
	}
}

// WithMaxDecodes bounds how many images decode at once. The default is
// GOMAXPROCS. Loads beyond the bound wait their turn in the background.
func WithMaxDecodes(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.decodes = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithContext ties pending decodes to ctx. Loads still waiting for a
// decode slot when ctx is done settle with ctx's error; decodes already
// running are not interrupted.
func WithContext(ctx context.Context) LoaderOption {
	return func(l *Loader) {
		l.ctx = ctx
	}
}

// WithPrefix replaces DefaultImagePrefix.
func WithPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// NewLoader creates a Loader with an empty registry.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		dims:    Dimensions{},
		decoder: NewFSDecoder(nil),
		prefix:  DefaultImagePrefix,
		ctx:     context.Background(),
		decodes: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Init installs the dimension registry. It copies dims.
func (l *Loader) Init(dims Dimensions) {
	table := make(Dimensions, len(dims))
	for name, size := range dims {
		table[name] = size
	}

	l.mu.Lock()
	l.dims = table
	l.mu.Unlock()
}

// Load returns an Image for path. The rect comes from the registry and is
// available immediately; decoding starts on a new goroutine. A path whose
// short name is not registered yields a *LookupError.
func (l *Loader) Load(path string) (*Image, error) {
	name := strings.TrimPrefix(path, l.prefix)

	l.mu.RLock()
	size, ok := l.dims[name]
	l.mu.RUnlock()
	if !ok {
		return nil, &LookupError{Kind: "image", Name: name}
	}

	img := &Image{
		path: path,
		rect: NewRect(0, 0, float64(size.Width), float64(size.Height)),
		done: make(chan struct{}),
	}

	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		defer close(img.done)

		if err := l.decodes.Acquire(l.ctx, 1); err != nil {
			img.err = fmt.Errorf("blit: decode %s: %w", path, err)
			Logger().Debug("image decode abandoned", "path", path, "err", err)
			return
		}
		defer l.decodes.Release(1)

		src, err := l.decoder.Decode(path)
		if err != nil {
			img.err = fmt.Errorf("blit: decode %s: %w", path, err)
			Logger().Warn("image decode failed", "path", path, "err", err)
			return
		}
		img.pix.Store(toRGBA(src))
	}()

	return img, nil
}

// Wait blocks until every decode started by l has settled.
func (l *Loader) Wait() {
	l.inflight.Wait()
}

// toRGBA returns src as an *image.RGBA anchored at the origin.
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
