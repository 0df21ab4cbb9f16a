package ebitenhost

import (
	"errors"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/input"
)

// Host is an Ebitengine window. It implements blit.Window and
// input.Binder.
type Host struct {
	scale int
	tps   int
	touch bool

	mu       sync.Mutex
	title    string
	surfaces []*blit.Surface
	keyFns   []func(code string, down bool)
	buttons  []*Button

	// Frame-goroutine state.
	frame   func() error
	active  map[pointer]*Button
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

// pointer identifies the mouse (touch == false) or one touch.
type pointer struct {
	touch bool
	id    ebiten.TouchID
}

// Option configures a Host.
type Option func(*Host)

// WithScale sets the window size as a multiple of the layout size.
func WithScale(scale int) Option {
	return func(h *Host) {
		if scale > 0 {
			h.scale = scale
		}
	}
}

// WithTPS sets the number of frame function calls per second.
func WithTPS(tps int) Option {
	return func(h *Host) {
		if tps > 0 {
			h.tps = tps
		}
	}
}

// WithTouch marks the on-screen buttons as touch controls. Without it they
// report mouse signals.
func WithTouch(touch bool) Option {
	return func(h *Host) {
		h.touch = touch
	}
}

// WithButton adds an on-screen button named name covering r, in layout
// coordinates.
func WithButton(name string, r blit.Rect) Option {
	return func(h *Host) {
		h.buttons = append(h.buttons, &Button{name: name, rect: r})
	}
}

// New returns a Host. The window opens in Run.
func New(opts ...Option) *Host {
	h := &Host{
		scale:  1,
		tps:    ebiten.DefaultTPS,
		title:  "blit",
		active: make(map[pointer]*Button),
	}
	for _, opt := range opts {
		opt(h)
	}
	for _, b := range h.buttons {
		b.touch = h.touch
	}
	return h
}

// Attach implements blit.Window.
func (h *Host) Attach(s *blit.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = append(h.surfaces, s)
}

// SetTitle implements blit.Window.
func (h *Host) SetTitle(title string) {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()
	ebiten.SetWindowTitle(title)
}

// Title returns the window title.
func (h *Host) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// OnKey implements input.Binder.
func (h *Host) OnKey(fn func(code string, down bool)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keyFns = append(h.keyFns, fn)
}

// Control implements input.Binder.
func (h *Host) Control(name string) (input.Control, bool) {
	for _, b := range h.buttons {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

func (h *Host) attached() []*blit.Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*blit.Surface(nil), h.surfaces...)
}

func (h *Host) emitKey(code string, down bool) {
	h.mu.Lock()
	fns := slices.Clone(h.keyFns)
	h.mu.Unlock()

	for _, fn := range fns {
		fn(code, down)
	}
}

func (h *Host) pointerDown(p pointer, x, y int) {
	for _, b := range h.buttons {
		if b.contains(x, y) {
			h.active[p] = b
			b.press(p.touch)
			return
		}
	}
}

func (h *Host) pointerUp(p pointer) {
	b, ok := h.active[p]
	if !ok {
		return
	}
	delete(h.active, p)
	b.release(p.touch)
}

func (h *Host) pollKeys() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.emitKey(keyCode(k), true)
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.emitKey(keyCode(k), false)
	}
}

func (h *Host) pollPointers() {
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		x, y := ebiten.TouchPosition(id)
		h.pointerDown(pointer{touch: true, id: id}, x, y)
	}
	for p := range h.active {
		if p.touch && inpututil.IsTouchJustReleased(p.id) {
			h.pointerUp(p)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		h.pointerDown(pointer{}, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.pointerUp(pointer{})
	}
}

// Run opens the window and calls frame once per tick until frame returns
// an error or the window is closed. Returning blit.ErrQuit ends the loop
// with a nil error. Run must be called from the main goroutine.
func (h *Host) Run(frame func() error) error {
	h.frame = frame

	if w, ht, _ := blit.FlowLayout(h.attached()); w > 0 && ht > 0 {
		ebiten.SetWindowSize(w*h.scale, ht*h.scale)
	}
	ebiten.SetWindowTitle(h.Title())
	ebiten.SetTPS(h.tps)

	blit.Logger().Info("ebitenhost: running", "tps", h.tps, "scale", h.scale)
	return ebiten.RunGame(&game{host: h})
}

// game adapts a Host to ebiten.Game.
type game struct {
	host   *Host
	images []*ebiten.Image
}

func (g *game) Update() error {
	h := g.host
	h.pollKeys()
	h.pollPointers()

	if h.frame == nil {
		return nil
	}
	if err := h.frame(); err != nil {
		if errors.Is(err, blit.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	surfaces := g.host.attached()
	_, _, offsets := blit.FlowLayout(surfaces)

	for i, s := range surfaces {
		pix := s.Pixels()
		if pix == nil {
			continue
		}
		img := g.image(i, s.Width(), s.Height())
		img.WritePixels(pix.Pix)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(offsets[i].X), float64(offsets[i].Y))
		screen.DrawImage(img, op)
	}

	for _, b := range g.host.buttons {
		r := b.rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), b.fill(), false)
		ebitenutil.DebugPrintAt(screen, b.name, int(r.X)+2, int(r.Y)+2)
	}
}

// image returns the cached ebiten image for the i-th surface.
func (g *game) image(i, w, h int) *ebiten.Image {
	for len(g.images) <= i {
		g.images = append(g.images, nil)
	}
	img := g.images[i]
	if img != nil {
		if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
			return img
		}
		img.Deallocate()
	}
	img = ebiten.NewImage(w, h)
	g.images[i] = img
	return img
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h, _ := blit.FlowLayout(g.host.attached())
	if w == 0 || h == 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}

var (
	_ blit.Window  = (*Host)(nil)
	_ input.Binder = (*Host)(nil)
)
