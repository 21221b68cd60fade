package input

import (
	"time"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
)

// KeyPressed handles a key press. Modifier keys update the modifiers the
// next click is resolved with; in navigation mode the arrows, Space and
// Period steer the camera. A key that arrives while another key or a
// script binding is being handled is dropped.
func (r *Resolver) KeyPressed(k key.Key, mods key.Modifier) {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.metrics.RecordRejectedKey()
		logger.Debugf("key %s dropped: input already in flight", k)
		return
	}
	defer r.inFlight.Store(false)

	start := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.viewer.HoverOff()
	moved := r.mouse.Moved().Mods | binding.Code(k.Modifier())
	r.mouse.SetMovedModifiers(moved)

	code := binding.NewCode(1, binding.Left|moved)
	if !r.profiles.IsUserAction(code) && !r.isSelectAction(code) {
		r.motionRotateZoom(code, 0, 0, false)
	}
	if k.IsNavigationKey() && r.camera.InNavigationMode() {
		r.camera.NavigateKey(k, mods)
	}
	r.metrics.RecordKeyEvent(time.Since(start))
}

// KeyReleased handles a key release. Releasing an arrow in navigation mode
// stops the key-driven motion.
func (r *Resolver) KeyReleased(k key.Key) {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.metrics.RecordRejectedKey()
		return
	}
	defer r.inFlight.Store(false)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	if m := k.Modifier(); m != key.ModNone {
		r.mouse.ClearModifier(binding.Code(m))
	}
	if r.mouse.Moved().Mods == 0 {
		r.viewer.SetCursor(CursorDefault)
	}
	if k.IsArrowKey() && r.camera.InNavigationMode() {
		r.camera.NavigateKey(key.KeyNone, key.ModNone)
	}
}
