package input

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/molnav/internal/input/binding"
)

// HoverWatcher periodically checks whether the pointer has come to rest
// over an atom.
//
// Each Start begins a new generation and a new goroutine bound to it.
// Stop, or a later Start, bumps the generation and cancels the goroutine's
// context; a goroutine that wakes up to find its generation stale exits
// without acting.
type HoverWatcher struct {
	mu     sync.Mutex
	delay  time.Duration
	probe  func(valid func() bool)
	gen    uint64
	cancel context.CancelFunc
}

// NewHoverWatcher creates a watcher that calls probe every delay. probe is
// given a function that reports whether its generation is still current.
func NewHoverWatcher(delay time.Duration, probe func(valid func() bool)) *HoverWatcher {
	return &HoverWatcher{delay: delay, probe: probe}
}

// Start launches a new watcher generation. A zero delay leaves the watcher
// stopped.
func (h *HoverWatcher) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stop()
	if h.delay <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	go h.run(ctx, h.gen)
}

// Stop ends the current generation.
func (h *HoverWatcher) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stop()
}

func (h *HoverWatcher) stop() {
	h.gen++
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// Running reports whether a generation is active.
func (h *HoverWatcher) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}

// Generation returns the current generation number.
func (h *HoverWatcher) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gen
}

// Delay returns the probe interval.
func (h *HoverWatcher) Delay() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delay
}

// SetDelay changes the probe interval from the next wake-up on.
func (h *HoverWatcher) SetDelay(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.delay = d
}

func (h *HoverWatcher) current(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gen == gen
}

func (h *HoverWatcher) run(ctx context.Context, gen uint64) {
	valid := func() bool {
		return ctx.Err() == nil && h.current(gen)
	}
	for {
		d := h.Delay()
		if d <= 0 {
			return
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			logger.Debugf("hover watcher %d interrupted", gen)
			return
		case <-t.C:
		}
		if !valid() {
			return
		}
		h.probe(valid)
	}
}

// hoverProbe fires a hover when the last event was a move, the pointer
// has rested longer than the hover delay and nothing else is going on.
func (r *Resolver) hoverProbe(valid func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	cur, moved := r.mouse.Current(), r.mouse.Moved()
	if cur.X != moved.X || cur.Y != moved.Y || cur.Time != moved.Time || moved.Time < 0 {
		return
	}
	if r.now()-moved.Time <= r.hover.Delay().Milliseconds() {
		return
	}
	if r.viewer.InMotion() || r.viewer.IsSpinning() || r.camera.IsNavigating() ||
		r.viewer.ObjectHovered(cur.X, cur.Y) {
		return
	}
	atom := r.viewer.FindNearestAtom(cur.X, cur.Y)
	if atom < 0 || !valid() {
		return
	}
	r.viewer.HoverOn(atom, binding.NewCode(r.mouse.ClickCount(), moved.Mods))
}
