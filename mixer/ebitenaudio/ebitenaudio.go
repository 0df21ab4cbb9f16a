// Package ebitenaudio is a mixer.Backend built on Ebitengine's audio
// package. It shares the process-wide audio.Context with an ebiten window
// host.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/mixer"
)

// DefaultSampleRate is used when no audio.Context exists yet.
const DefaultSampleRate = 48000

// bytesPerFrame of the decoded 16-bit stereo streams.
const bytesPerFrame = 4

// Backend opens tracks as ebiten audio players. Files are read into memory
// once and decoded per player.
type Backend struct {
	fsys fs.FS
	rate int

	mu  sync.Mutex
	ctx *audio.Context
}

// Option configures a Backend.
type Option func(*Backend)

// WithFS sets the file system tracks are opened from. The default is the
// working directory.
func WithFS(fsys fs.FS) Option {
	return func(b *Backend) {
		b.fsys = fsys
	}
}

// WithSampleRate sets the rate of a context created by the Backend. An
// existing context keeps its own rate.
func WithSampleRate(rate int) Option {
	return func(b *Backend) {
		b.rate = rate
	}
}

// New returns a Backend.
func New(opts ...Option) *Backend {
	b := &Backend{rate: DefaultSampleRate}
	for _, opt := range opts {
		opt(b)
	}
	if b.fsys == nil {
		b.fsys = os.DirFS(".")
	}
	if ctx := audio.CurrentContext(); ctx != nil {
		b.rate = ctx.SampleRate()
	}
	return b
}

func (b *Backend) context() *audio.Context {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		return b.ctx
	}
	b.ctx = audio.CurrentContext()
	if b.ctx == nil {
		b.ctx = audio.NewContext(b.rate)
		blit.Logger().Info("ebitenaudio: context created", "rate", b.rate)
	}
	return b.ctx
}

type stream interface {
	io.ReadSeeker
	Length() int64
}

type decodeFunc func(rate int, r io.Reader) (stream, error)

func decoderFor(name string) (decodeFunc, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return func(rate int, r io.Reader) (stream, error) {
			return wav.DecodeWithSampleRate(rate, r)
		}, true
	case ".mp3":
		return func(rate int, r io.Reader) (stream, error) {
			return mp3.DecodeWithSampleRate(rate, r)
		}, true
	case ".ogg", ".oga":
		return func(rate int, r io.Reader) (stream, error) {
			return vorbis.DecodeWithSampleRate(rate, r)
		}, true
	}
	return nil, false
}

// Open reads and decodes the file at name.
func (b *Backend) Open(name string) (mixer.Track, error) {
	decode, ok := decoderFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mixer.ErrUnsupportedFormat, path.Ext(name))
	}

	data, err := fs.ReadFile(b.fsys, name)
	if err != nil {
		return nil, err
	}
	s, err := decode(b.rate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: decode: %w", err)
	}

	t := &track{
		backend: b,
		data:    data,
		decode:  decode,
		length:  streamDuration(s.Length(), b.rate),
	}
	if t.player, err = t.newPlayer(s, false); err != nil {
		return nil, err
	}
	return t, nil
}

func streamDuration(length int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	frames := length / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

type track struct {
	backend *Backend
	data    []byte
	decode  decodeFunc
	length  time.Duration

	mu     sync.Mutex
	player *audio.Player
	loop   bool
}

func (t *track) newPlayer(s stream, loop bool) (*audio.Player, error) {
	if s == nil {
		var err error
		if s, err = t.decode(t.backend.rate, bytes.NewReader(t.data)); err != nil {
			return nil, fmt.Errorf("ebitenaudio: decode: %w", err)
		}
	}
	var src io.Reader = s
	if loop {
		src = audio.NewInfiniteLoop(s, s.Length())
	}
	p, err := t.backend.context().NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: player: %w", err)
	}
	return p, nil
}

func (t *track) Play() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.loop && !t.player.IsPlaying() && t.player.Position() >= t.length {
		_ = t.player.Rewind()
	}
	t.player.Play()
}

func (t *track) Pause() {
	t.mu.Lock()
	t.player.Pause()
	t.mu.Unlock()
}

func (t *track) Rewind() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.player.Rewind()
}

// SetLoop swaps the player for one reading the same data with or without
// an infinite loop, keeping the position and play state.
func (t *track) SetLoop(loop bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loop == loop {
		return
	}
	p, err := t.newPlayer(nil, loop)
	if err != nil {
		blit.Logger().Warn("ebitenaudio: set loop", "error", err)
		return
	}

	pos, playing := t.player.Position(), t.player.IsPlaying()
	_ = t.player.Close()
	if err := p.SetPosition(pos); err != nil {
		blit.Logger().Warn("ebitenaudio: restore position", "error", err)
	}
	if playing {
		p.Play()
	}
	t.player = p
	t.loop = loop
}

func (t *track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.player.Close()
}

var _ mixer.Backend = (*Backend)(nil)
