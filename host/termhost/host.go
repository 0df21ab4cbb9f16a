package termhost

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/input"
)

const (
	// DefaultReleaseAfter is how long a key stays pressed after its last
	// press or repeat.
	DefaultReleaseAfter = 150 * time.Millisecond

	// DefaultTick is the frame interval.
	DefaultTick = time.Second / 30

	halfBlock = '▀'
)

// Host is a terminal window. It implements blit.Window and input.Binder.
type Host struct {
	screen       tcell.Screen
	releaseAfter time.Duration
	tick         time.Duration

	mu       sync.Mutex
	title    string
	surfaces []*blit.Surface
	keyFns   []func(code string, down bool)

	// Frame-goroutine state.
	held  map[string]time.Time
	frame *image.RGBA
	cells *image.RGBA

	finiOnce sync.Once
}

// Option configures a Host.
type Option func(*Host)

// WithScreen uses s instead of the terminal.
func WithScreen(s tcell.Screen) Option {
	return func(h *Host) {
		h.screen = s
	}
}

// WithReleaseAfter sets the synthetic key release delay.
func WithReleaseAfter(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.releaseAfter = d
		}
	}
}

// WithTick sets the frame interval.
func WithTick(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.tick = d
		}
	}
}

// New returns a Host. The terminal is taken over in Run.
func New(opts ...Option) *Host {
	h := &Host{
		releaseAfter: DefaultReleaseAfter,
		tick:         DefaultTick,
		title:        "blit",
		held:         make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach implements blit.Window.
func (h *Host) Attach(s *blit.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = append(h.surfaces, s)
}

// SetTitle implements blit.Window. The title is shown on the status line.
func (h *Host) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
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

// Control implements input.Binder. A terminal has no on-screen controls.
func (h *Host) Control(string) (input.Control, bool) {
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

// keyPressed records a press or repeat of code at now.
func (h *Host) keyPressed(code string, now time.Time) {
	if _, ok := h.held[code]; !ok {
		h.emitKey(code, true)
	}
	h.held[code] = now.Add(h.releaseAfter)
}

// releaseExpired releases every held key whose deadline passed.
func (h *Host) releaseExpired(now time.Time) {
	for code, deadline := range h.held {
		if !now.Before(deadline) {
			delete(h.held, code)
			h.emitKey(code, false)
		}
	}
}

// releaseAll releases every held key.
func (h *Host) releaseAll() {
	for code := range h.held {
		delete(h.held, code)
		h.emitKey(code, false)
	}
}

// handle processes one terminal event. It reports false when the run loop
// should stop.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if code := keyCode(ev); code != "" {
			h.keyPressed(code, ev.When())
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) fini() {
	h.finiOnce.Do(h.screen.Fini)
}

// Run takes over the terminal and calls frame every tick until frame
// returns an error, Ctrl-C is pressed or ctx is done. Returning
// blit.ErrQuit from frame ends the loop with a nil error.
func (h *Host) Run(ctx context.Context, frame func() error) error {
	if h.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("termhost: %w", err)
		}
		h.screen = s
	}
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("termhost: %w", err)
	}
	blit.Logger().Info("termhost: running", "tick", h.tick)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	g.Go(func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer h.fini()
		defer cancel()
		return h.loop(ctx, events, frame)
	})

	err := g.Wait()
	if errors.Is(err, blit.ErrQuit) {
		return nil
	}
	return err
}

func (h *Host) loop(ctx context.Context, events <-chan tcell.Event, frame func() error) error {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	defer h.releaseAll()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			h.releaseExpired(now)
			if frame != nil {
				if err := frame(); err != nil {
					return err
				}
			}
			h.present()
		}
	}
}

// present draws the attached surfaces onto the screen.
func (h *Host) present() {
	cols, rows := h.screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	h.screen.Clear()

	cells := h.render(cols, (rows-1)*2)
	b := cells.Bounds()
	for y := 0; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			top := cells.RGBAAt(x, y)
			bottom := cells.RGBAAt(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			h.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}

	status := tcell.StyleDefault.Reverse(true)
	for x, r := range []rune(h.Title()) {
		if x >= cols {
			break
		}
		h.screen.SetContent(x, rows-1, r, nil, status)
	}
	h.screen.Show()
}

// render composes the attached surfaces over black and fits the result
// into maxW x maxH pixels, keeping the aspect ratio.
func (h *Host) render(maxW, maxH int) *image.RGBA {
	surfaces := h.attached()
	w, ht, offsets := blit.FlowLayout(surfaces)
	if w == 0 || ht == 0 {
		return image.NewRGBA(image.Rectangle{})
	}

	if h.frame == nil || h.frame.Bounds().Dx() != w || h.frame.Bounds().Dy() != ht {
		h.frame = image.NewRGBA(image.Rect(0, 0, w, ht))
	}
	draw.Draw(h.frame, h.frame.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for i, s := range surfaces {
		pix := s.Pixels()
		if pix == nil {
			continue
		}
		r := pix.Bounds().Sub(pix.Bounds().Min).Add(offsets[i])
		draw.Draw(h.frame, r, pix, pix.Bounds().Min, draw.Over)
	}

	if w <= maxW && ht <= maxH {
		return h.frame
	}

	fw, fh := fit(w, ht, maxW, maxH)
	if h.cells == nil || h.cells.Bounds().Dx() != fw || h.cells.Bounds().Dy() != fh {
		h.cells = image.NewRGBA(image.Rect(0, 0, fw, fh))
	}
	xdraw.ApproxBiLinear.Scale(h.cells, h.cells.Bounds(), h.frame, h.frame.Bounds(), draw.Src, nil)
	return h.cells
}

// fit scales w x h down to fit in maxW x maxH, keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}

var (
	_ blit.Window  = (*Host)(nil)
	_ input.Binder = (*Host)(nil)
)
