package terminal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
)

type keyCall struct {
	k       key.Key
	pressed bool
}

type recorder struct {
	mu     sync.Mutex
	events []input.DeviceEvent
	keys   []keyCall
}

func (r *recorder) HandleEvent(ev input.DeviceEvent) (binding.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return binding.Entry{}, false
}

func (r *recorder) KeyPressed(k key.Key, _ key.Modifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keyCall{k, true})
}

func (r *recorder) KeyReleased(k key.Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keyCall{k, false})
}

func (r *recorder) keyCalls() []keyCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]keyCall(nil), r.keys...)
}

func newSimTerminal(t *testing.T, opts ...Option) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(s, opts...)
	require.NoError(t, term.Init())
	s.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, s
}

func runTerminal(term *Terminal, h Handler) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- term.Run(context.Background(), h)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestTerminalMouseClick(t *testing.T) {
	term, s := newSimTerminal(t)
	rec := &recorder{}
	done := runTerminal(term, rec)

	s.InjectMouse(2, 3, tcell.ButtonPrimary, tcell.ModNone)
	s.InjectMouse(2, 3, tcell.ButtonNone, tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	require.NoError(t, waitDone(t, done))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 3)
	assert.Equal(t, []input.EventKind{input.EventPress, input.EventRelease, input.EventClick}, kinds(rec.events))
	assert.Equal(t, 16, rec.events[0].X)
	assert.Equal(t, 48, rec.events[0].Y)
}

func TestTerminalRuneFuncStops(t *testing.T) {
	var got []rune
	term, s := newSimTerminal(t, WithRuneFunc(func(r rune, _ key.Modifier) bool {
		got = append(got, r)
		return r != 'q'
	}))
	rec := &recorder{}
	done := runTerminal(term, rec)

	s.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, []rune{'a', 'q'}, got)
	assert.Equal(t, []keyCall{{key.KeyRune, true}, {key.KeyRune, false}}, rec.keyCalls())
}

func TestTerminalNavigationKeyHeld(t *testing.T) {
	term, s := newSimTerminal(t, WithKeyReleaseDelay(30*time.Millisecond))
	rec := &recorder{}
	done := runTerminal(term, rec)

	s.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	require.Eventually(t, func() bool { return len(rec.keyCalls()) == 3 }, time.Second, 5*time.Millisecond)

	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, []keyCall{{key.KeyUp, true}, {key.KeyUp, true}, {key.KeyUp, false}}, rec.keyCalls())
}

func TestTerminalKeySwitchReleases(t *testing.T) {
	term, s := newSimTerminal(t, WithKeyReleaseDelay(time.Hour))
	rec := &recorder{}
	done := runTerminal(term, rec)

	s.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, []keyCall{
		{key.KeyUp, true},
		{key.KeyUp, false},
		{key.KeyLeft, true},
		{key.KeyLeft, false},
	}, rec.keyCalls())
}

func TestTerminalContextCancel(t *testing.T) {
	term, _ := newSimTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- term.Run(ctx, &recorder{})
	}()
	cancel()
	assert.ErrorIs(t, waitDone(t, done), context.Canceled)
}

func TestTerminalResize(t *testing.T) {
	var mu sync.Mutex
	var sizes [][2]int
	term, s := newSimTerminal(t, WithCellSize(10, 20), WithResizeFunc(func(w, h int) {
		mu.Lock()
		defer mu.Unlock()
		sizes = append(sizes, [2]int{w, h})
	}))
	done := runTerminal(term, &recorder{})

	s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	require.NoError(t, waitDone(t, done))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, sizes)
	assert.Equal(t, [2]int{400, 200}, sizes[0])
}

func TestTerminalDraw(t *testing.T) {
	term, _ := newSimTerminal(t)
	term.Draw([]string{"zoom 100%", "moveto 1.0"})

	s := term.screen
	r, _, _, _ := s.GetContent(0, 1) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, 'm', r)
	r, _, _, _ = s.GetContent(5, 0) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, '1', r)
}
