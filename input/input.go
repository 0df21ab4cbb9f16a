package input

import (
	"maps"
	"sync"

	"github.com/gogpu/blit"
)

// Binder is the host UI layer.
type Binder interface {
	// OnKey subscribes fn to keyboard signals. down is true for a press
	// and false for a release.
	OnKey(fn func(code string, down bool))

	// Control returns the named on-screen control element, if the host
	// has one.
	Control(name string) (Control, bool)
}

// Control is an on-screen control element such as a touch button.
type Control interface {
	// Touchable reports whether the control delivers touch signals.
	// Controls that do not are driven by the mouse.
	Touchable() bool

	// OnTouch subscribes to touch start and touch end.
	OnTouch(start, end func())

	// OnMouse subscribes to mouse button down and up.
	OnMouse(down, up func())
}

// State is the polled key state table.
//
// Hosts may deliver signals from any goroutine; reads and writes are
// synchronized.
type State struct {
	mu   sync.RWMutex
	keys map[string]bool
}

// Option configures New.
type Option func(*options)

type options struct {
	controls map[string]string
}

// WithControls replaces DefaultControls.
func WithControls(controls map[string]string) Option {
	return func(o *options) {
		o.controls = controls
	}
}

// NewState returns an empty table that is not subscribed to anything.
// Signals are fed with Press and Release.
func NewState() *State {
	return &State{keys: make(map[string]bool)}
}

// New returns a table subscribed to b's keyboard signals and to every
// control of the control table that b provides. Controls b does not have
// are skipped.
func New(b Binder, opts ...Option) *State {
	o := options{controls: DefaultControls()}
	for _, opt := range opts {
		opt(&o)
	}

	s := NewState()
	s.Bind(b, o.controls)
	return s
}

// Bind subscribes s to b. controls maps control names to key codes.
func (s *State) Bind(b Binder, controls map[string]string) {
	b.OnKey(s.set)

	for name, code := range controls {
		c, ok := b.Control(name)
		if !ok {
			blit.Logger().Debug("input: control not present", "name", name)
			continue
		}
		press := func() { s.Press(code) }
		release := func() { s.Release(code) }
		if c.Touchable() {
			c.OnTouch(press, release)
		} else {
			c.OnMouse(press, release)
		}
	}
}

func (s *State) set(code string, down bool) {
	s.mu.Lock()
	s.keys[code] = down
	s.mu.Unlock()
}

// Press records code as pressed.
func (s *State) Press(code string) {
	s.set(code, true)
}

// Release records code as released.
func (s *State) Release(code string) {
	s.set(code, false)
}

// IsPressed reports the current state of code.
func (s *State) IsPressed(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[code]
}

// GetPressed returns a live view of the table.
func (s *State) GetPressed() Pressed {
	return Pressed{s: s}
}

// Pressed is a live view of a State: every Get reads the state as of that
// call, so a view obtained once keeps reflecting later signals.
type Pressed struct {
	s *State
}

// Get reports whether code is currently pressed. Unknown codes are not.
func (p Pressed) Get(code string) bool {
	return p.s.IsPressed(code)
}

// Known reports whether code has ever received a signal, and its state.
func (p Pressed) Known(code string) (pressed, ok bool) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	pressed, ok = p.s.keys[code]
	return pressed, ok
}

// Map returns a copy of the table as of this call.
func (p Pressed) Map() map[string]bool {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	return maps.Clone(p.s.keys)
}
