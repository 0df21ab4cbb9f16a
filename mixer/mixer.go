// Package mixer plays sound effects and background music through a
// pluggable audio Backend.
//
// A Mixer owns the "current music" slot: playing a Music with loops == -1
// makes it the current track, and StopMusic pauses and rewinds whatever
// track holds the slot.
//
//	m := mixer.New(beepaudio.New(beepaudio.WithFS(assets)))
//	defer m.Close()
//
//	bgm, err := m.LoadMusic("sounds/bgm.mp3")
//	if err != nil {
//	    return err
//	}
//	bgm.Play(-1)
package mixer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/blit"
)

// Loop is the loops argument of Music.Play that repeats the track forever.
const Loop = -1

// Errors returned by the mixer.
var (
	// ErrClosed is returned when loading through a closed Mixer.
	ErrClosed = errors.New("mixer: closed")

	// ErrNoBackend is returned by a Mixer created without a Backend.
	ErrNoBackend = errors.New("mixer: no backend")

	// ErrUnsupportedFormat is returned by backends for files they cannot
	// decode.
	ErrUnsupportedFormat = errors.New("mixer: unsupported format")
)

// Backend opens audio files as playable tracks.
type Backend interface {
	Open(path string) (Track, error)
}

// Track is one opened audio file.
//
// A Track that reached its end and is played again starts over from the
// beginning.
type Track interface {
	// Play starts or resumes playback.
	Play()

	// Pause stops playback, keeping the position.
	Pause()

	// Rewind moves the position to the beginning.
	Rewind() error

	// SetLoop makes the track repeat when it reaches its end.
	SetLoop(loop bool)

	// Close releases the track.
	Close() error
}

// Mixer is the audio context: it opens tracks and holds the current music.
type Mixer struct {
	backend Backend

	mu      sync.Mutex
	tracks  []Track
	current *Music
	closed  bool
}

// New returns a Mixer that opens tracks through b.
func New(b Backend) *Mixer {
	return &Mixer{backend: b}
}

func (m *Mixer) open(path string) (Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.backend == nil {
		return nil, ErrNoBackend
	}

	t, err := m.backend.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mixer: open %s: %w", path, err)
	}
	m.tracks = append(m.tracks, t)
	blit.Logger().Debug("mixer: track opened", "path", path)
	return t, nil
}

// LoadSound opens a sound effect.
func (m *Mixer) LoadSound(path string) (*Sound, error) {
	t, err := m.open(path)
	if err != nil {
		return nil, err
	}
	return &Sound{path: path, track: t}, nil
}

// LoadMusic opens a music track.
func (m *Mixer) LoadMusic(path string) (*Music, error) {
	t, err := m.open(path)
	if err != nil {
		return nil, err
	}
	return &Music{mixer: m, path: path, track: t}, nil
}

// Current returns the music holding the current slot, or nil.
func (m *Mixer) Current() *Music {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// StopMusic pauses the current music and rewinds it to the beginning.
// It does nothing when no music is current.
func (m *Mixer) StopMusic() error {
	cur := m.Current()
	if cur == nil {
		return nil
	}
	cur.track.Pause()
	if err := cur.track.Rewind(); err != nil {
		return fmt.Errorf("mixer: rewind %s: %w", cur.path, err)
	}
	return nil
}

// Close closes every track opened through m. Loading after Close fails
// with ErrClosed. Close is idempotent.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.current = nil

	var errs []error
	for _, t := range m.tracks {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.tracks = nil
	return errors.Join(errs...)
}

// Sound is a short effect.
type Sound struct {
	path  string
	track Track
}

// Path returns the file the sound was loaded from.
func (s *Sound) Path() string { return s.path }

// Play plays the sound from the beginning.
func (s *Sound) Play() error {
	if err := s.track.Rewind(); err != nil {
		return fmt.Errorf("mixer: rewind %s: %w", s.path, err)
	}
	s.track.Play()
	return nil
}

// Music is a background track.
type Music struct {
	mixer *Mixer
	path  string
	track Track
}

// Path returns the file the music was loaded from.
func (mu *Music) Path() string { return mu.path }

// Play starts the music. With loops == Loop the track repeats forever and
// becomes the mixer's current music; any other value plays it once.
func (mu *Music) Play(loops int) {
	if loops == Loop {
		mu.mixer.mu.Lock()
		mu.mixer.current = mu
		mu.mixer.mu.Unlock()
		mu.track.SetLoop(true)
	}
	mu.track.Play()
}

// Stop stops the mixer's current music, which is not necessarily mu.
func (mu *Music) Stop() error {
	return mu.mixer.StopMusic()
}
