package input

import (
	"sync"
	"testing"
)

type fakeControl struct {
	touch         bool
	start, end    func()
	down, up      func()
	touchBindings int
	mouseBindings int
}

func (c *fakeControl) Touchable() bool { return c.touch }

func (c *fakeControl) OnTouch(start, end func()) {
	c.start, c.end = start, end
	c.touchBindings++
}

func (c *fakeControl) OnMouse(down, up func()) {
	c.down, c.up = down, up
	c.mouseBindings++
}

type fakeBinder struct {
	key      func(code string, down bool)
	controls map[string]*fakeControl
}

func (b *fakeBinder) OnKey(fn func(code string, down bool)) { b.key = fn }

func (b *fakeBinder) Control(name string) (Control, bool) {
	c, ok := b.controls[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func TestKeySignals(t *testing.T) {
	b := &fakeBinder{}
	s := New(b)
	pressed := s.GetPressed()

	if pressed.Get(KeyRight) {
		t.Fatal("Get(ArrowRight) = true before any signal")
	}

	b.key("ArrowRight", true)
	if !pressed.Get(KeyRight) {
		t.Error("Get(ArrowRight) = false after press")
	}

	b.key("ArrowRight", false)
	if pressed.Get(KeyRight) {
		t.Error("Get(ArrowRight) = true after release")
	}
}

func TestUnknownCode(t *testing.T) {
	s := NewState()
	pressed := s.GetPressed()
	if pressed.Get("NoSuchKey") {
		t.Error("Get(NoSuchKey) = true")
	}
	if _, ok := pressed.Known("NoSuchKey"); ok {
		t.Error("Known(NoSuchKey) ok = true")
	}

	s.Release("KeyA")
	p, ok := pressed.Known("KeyA")
	if !ok || p {
		t.Errorf("Known(KeyA) = %v, %v, want false, true", p, ok)
	}
}

func TestControls(t *testing.T) {
	right := &fakeControl{touch: true}
	space := &fakeControl{}
	b := &fakeBinder{controls: map[string]*fakeControl{
		"btnright": right,
		"btnspc":   space,
	}}
	s := New(b)
	pressed := s.GetPressed()

	if right.touchBindings != 1 || right.mouseBindings != 0 {
		t.Errorf("btnright bindings = touch %d mouse %d, want 1 0", right.touchBindings, right.mouseBindings)
	}
	if space.touchBindings != 0 || space.mouseBindings != 1 {
		t.Errorf("btnspc bindings = touch %d mouse %d, want 0 1", space.touchBindings, space.mouseBindings)
	}

	right.start()
	if !pressed.Get(KeyRight) {
		t.Error("touch start did not press ArrowRight")
	}
	right.end()
	if pressed.Get(KeyRight) {
		t.Error("touch end did not release ArrowRight")
	}

	space.down()
	if !pressed.Get(KeySpace) {
		t.Error("mouse down did not press Space")
	}
	space.up()
	if pressed.Get(KeySpace) {
		t.Error("mouse up did not release Space")
	}
}

func TestMissingControlsSkipped(t *testing.T) {
	b := &fakeBinder{}
	s := New(b)
	if got := len(s.GetPressed().Map()); got != 0 {
		t.Errorf("len(Map()) = %d, want 0", got)
	}
	if b.key == nil {
		t.Error("keyboard not subscribed")
	}
}

func TestWithControls(t *testing.T) {
	fire := &fakeControl{}
	b := &fakeBinder{controls: map[string]*fakeControl{
		"fire":     fire,
		"btnright": {touch: true},
	}}
	s := New(b, WithControls(map[string]string{"fire": KeyEnter}))

	fire.down()
	if !s.IsPressed(KeyEnter) {
		t.Error("custom control did not press Enter")
	}
	if b.controls["btnright"].touchBindings != 0 {
		t.Error("default control bound despite WithControls")
	}
}

func TestMapIsCopy(t *testing.T) {
	s := NewState()
	s.Press(KeyA)
	m := s.GetPressed().Map()
	m[KeyA] = false
	m[KeyUp] = true

	if !s.IsPressed(KeyA) {
		t.Error("mutating Map() changed the state")
	}
	if s.IsPressed(KeyUp) {
		t.Error("mutating Map() added a key")
	}
}

func TestDefaultControls(t *testing.T) {
	want := map[string]string{
		"btnright": "ArrowRight",
		"btnleft":  "ArrowLeft",
		"btnspc":   "Space",
		"btna":     "KeyA",
	}
	got := DefaultControls()
	if len(got) != len(want) {
		t.Fatalf("len(DefaultControls()) = %d, want %d", len(got), len(want))
	}
	for name, code := range want {
		if got[name] != code {
			t.Errorf("DefaultControls()[%q] = %q, want %q", name, got[name], code)
		}
	}

	got["btna"] = "x"
	if DefaultControls()["btna"] != "KeyA" {
		t.Error("DefaultControls() shares its table")
	}
}

func TestConcurrentSignals(t *testing.T) {
	s := NewState()
	pressed := s.GetPressed()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Press(KeyLeft)
				s.Release(KeyLeft)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = pressed.Get(KeyLeft)
				_ = pressed.Map()
			}
		}()
	}
	wg.Wait()

	if pressed.Get(KeyLeft) {
		t.Error("Get(ArrowLeft) = true after balanced signals")
	}
}
