package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kataras/golog"

	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
)

var logger = golog.Child("[terminal]")

// Handler receives translated input. *input.Resolver implements it.
type Handler interface {
	HandleEvent(ev input.DeviceEvent) (binding.Entry, bool)
	KeyPressed(k key.Key, mods key.Modifier)
	KeyReleased(k key.Key)
}

var _ Handler = (*input.Resolver)(nil)

// Option configures a Terminal.
type Option func(*Terminal)

// WithCellSize sets the pixel size of one character cell. Default: 8x16
func WithCellSize(w, h int) Option {
	return func(t *Terminal) {
		t.tr = NewTranslator(w, h)
	}
}

// WithResizeFunc sets a function told the screen size in pixels at start
// and after every resize.
func WithResizeFunc(fn func(width, height int)) Option {
	return func(t *Terminal) {
		t.onResize = fn
	}
}

// WithRuneFunc sets a function given every character key before the
// handler sees it. Returning false ends Run.
func WithRuneFunc(fn func(r rune, mods key.Modifier) bool) Option {
	return func(t *Terminal) {
		t.onRune = fn
	}
}

// WithKeyReleaseDelay sets how long a navigation key may go without a
// repeat before it counts as released. Terminals report no key releases.
// Default: 600ms
func WithKeyReleaseDelay(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.releaseDelay = d
		}
	}
}

// releaseTag marks the interrupt posted when a held key times out.
type releaseTag struct {
	gen uint64
}

// Terminal drives a resolver from a tcell screen and draws text on it.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	tr     *Translator

	onResize     func(width, height int)
	onRune       func(r rune, mods key.Modifier) bool
	releaseDelay time.Duration

	// held is the navigation key awaiting its synthesized release.
	held      key.Key
	heldGen   uint64
	heldTimer *time.Timer
	shutdown  bool
}

// New creates a terminal on the process's controlling terminal.
func New(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a terminal on an existing screen, such as a
// simulation screen in tests.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Terminal {
	t := &Terminal{
		screen:       screen,
		tr:           NewTranslator(8, 16),
		releaseDelay: 600 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shutdown {
		return
	}
	t.shutdown = true
	if t.heldTimer != nil {
		t.heldTimer.Stop()
	}
	t.screen.Fini()
}

// Size returns the screen size in pixels.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tr.Pixels(t.screen.Size())
}

// Draw clears the screen and writes lines from the top-left corner.
func (t *Terminal) Draw(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	style := tcell.StyleDefault
	for y, line := range lines {
		if y >= h {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	t.screen.Show()
}

// Run feeds screen events to h until ctx is done, Ctrl-C is typed, the rune
// function declines a key or the screen is shut down.
func (t *Terminal) Run(ctx context.Context, h Handler) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	if t.onResize != nil {
		t.onResize(t.Size())
	}

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !t.dispatch(ev, h) {
			t.releaseHeld(h)
			return nil
		}
	}
}

// dispatch handles one event and reports whether Run should go on.
func (t *Terminal) dispatch(ev tcell.Event, h Handler) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		if t.onResize != nil {
			t.onResize(t.tr.Pixels(e.Size()))
		}

	case *tcell.EventMouse:
		for _, de := range t.tr.Pointer(e) {
			h.HandleEvent(de)
		}

	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			return false
		}
		k, r, mods := t.tr.Key(e)
		if k == key.KeyNone {
			return true
		}
		if k == key.KeyRune && t.onRune != nil && !t.onRune(r, mods) {
			return false
		}
		t.pressKey(k, mods, h)

	case *tcell.EventInterrupt:
		if tag, ok := e.Data().(releaseTag); ok {
			t.mu.Lock()
			current := tag.gen == t.heldGen
			t.mu.Unlock()
			if current {
				t.releaseHeld(h)
			}
		}
	}
	return true
}

// pressKey delivers a key press. Navigation keys stay held until another
// key arrives or they stop repeating; other keys are released at once.
func (t *Terminal) pressKey(k key.Key, mods key.Modifier, h Handler) {
	if t.held != key.KeyNone && t.held != k {
		t.releaseHeld(h)
	}
	h.KeyPressed(k, mods)
	if !k.IsNavigationKey() {
		h.KeyReleased(k)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = k
	t.heldGen++
	gen := t.heldGen
	if t.heldTimer != nil {
		t.heldTimer.Stop()
	}
	t.heldTimer = time.AfterFunc(t.releaseDelay, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(releaseTag{gen: gen}))
	})
}

func (t *Terminal) releaseHeld(h Handler) {
	t.mu.Lock()
	k := t.held
	t.held = key.KeyNone
	t.heldGen++
	if t.heldTimer != nil {
		t.heldTimer.Stop()
	}
	t.mu.Unlock()
	if k != key.KeyNone {
		logger.Debugf("key %s released", k)
		h.KeyReleased(k)
	}
}
