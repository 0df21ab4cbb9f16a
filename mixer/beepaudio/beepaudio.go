// Package beepaudio is a mixer.Backend that plays through the system
// speaker with github.com/gopxl/beep.
//
// WAV, MP3 and Ogg Vorbis files are decoded as they play. Every track
// feeds one beep.Mixer that is handed to the speaker the first time a
// track is opened.
package beepaudio

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/mixer"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(48000)

// Backend opens tracks on the system speaker.
type Backend struct {
	fsys    fs.FS
	rate    beep.SampleRate
	buffer  time.Duration
	quality int

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
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

// WithSampleRate sets the speaker sample rate. Files recorded at another
// rate are resampled.
func WithSampleRate(rate beep.SampleRate) Option {
	return func(b *Backend) {
		b.rate = rate
	}
}

// WithBuffer sets the speaker buffer length.
func WithBuffer(d time.Duration) Option {
	return func(b *Backend) {
		b.buffer = d
	}
}

// New returns a Backend. The speaker is initialized lazily by the first
// Open.
func New(opts ...Option) *Backend {
	b := &Backend{
		rate:    DefaultSampleRate,
		buffer:  100 * time.Millisecond,
		quality: 4,
		mixer:   &beep.Mixer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fsys == nil {
		b.fsys = os.DirFS(".")
	}
	return b
}

func (b *Backend) init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(b.buffer)); err != nil {
		return fmt.Errorf("beepaudio: speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	blit.Logger().Info("beepaudio: speaker initialized", "rate", int(b.rate))
	return nil
}

type decodeFunc func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

func decoderFor(name string) (decodeFunc, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(rc)
		}, true
	case ".mp3":
		return mp3.Decode, true
	case ".ogg", ".oga":
		return vorbis.Decode, true
	}
	return nil, false
}

// Open decodes the file at name and adds it to the speaker paused.
func (b *Backend) Open(name string) (mixer.Track, error) {
	decode, ok := decoderFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mixer.ErrUnsupportedFormat, path.Ext(name))
	}

	f, err := b.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	stream, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("beepaudio: decode: %w", err)
	}

	if err := b.init(); err != nil {
		stream.Close()
		return nil, err
	}

	t := newTrack(stream)
	var s beep.Streamer = t.loop
	if format.SampleRate != b.rate {
		s = beep.Resample(b.quality, format.SampleRate, b.rate, s)
	}
	t.ctrl.Streamer = s

	b.mixer.Add(t.ctrl)
	return t, nil
}

type track struct {
	loop *loopStreamer
	ctrl *beep.Ctrl
}

func newTrack(s beep.StreamSeekCloser) *track {
	return &track{
		loop: &loopStreamer{s: s},
		ctrl: &beep.Ctrl{Paused: true},
	}
}

func (t *track) Play() {
	speaker.Lock()
	defer speaker.Unlock()

	if t.loop.ended {
		if err := t.loop.s.Seek(0); err == nil {
			t.loop.ended = false
		}
	}
	t.ctrl.Paused = false
}

func (t *track) Pause() {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *track) Rewind() error {
	speaker.Lock()
	defer speaker.Unlock()

	if err := t.loop.s.Seek(0); err != nil {
		return err
	}
	t.loop.ended = false
	return nil
}

func (t *track) SetLoop(loop bool) {
	speaker.Lock()
	t.loop.loop = loop
	speaker.Unlock()
}

func (t *track) Close() error {
	speaker.Lock()
	t.loop.closed = true
	t.ctrl.Paused = true
	speaker.Unlock()
	return t.loop.s.Close()
}

// loopStreamer never ends while the track is open: past the end of the
// file it either seeks back to the start or streams silence, so the
// speaker mixer keeps it and a later Play can restart it. Fields are
// guarded by the speaker lock.
type loopStreamer struct {
	s      beep.StreamSeekCloser
	loop   bool
	ended  bool
	closed bool
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	if l.closed {
		return 0, false
	}

	n := 0
	for n < len(samples) && !l.ended {
		sn, ok := l.s.Stream(samples[n:])
		n += sn
		if ok && sn > 0 {
			continue
		}
		if !l.loop || l.s.Len() == 0 {
			l.ended = true
			break
		}
		if err := l.s.Seek(0); err != nil {
			l.ended = true
		}
	}

	clear(samples[n:])
	return len(samples), true
}

func (l *loopStreamer) Err() error {
	return l.s.Err()
}

var _ mixer.Backend = (*Backend)(nil)
