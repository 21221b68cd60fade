package mouse

import (
	"sync"

	"github.com/dshills/molnav/internal/input/binding"
)

// Debouncer turns raw pointer events into click counts and tells clicks
// from drags.
//
// It keeps the last sample of each kind of event. A click or press
// continues the previous sequence when it lands within the tolerance of the
// previous one, with the same modifiers, before MaxClickDelay has passed.
type Debouncer struct {
	mu     sync.Mutex
	config Config

	current Sample
	moved   Sample
	clicked Sample
	pressed Sample
	dragged Sample

	clickCount int
	pressCount int
}

// NewDebouncer creates a debouncer with the given configuration.
func NewDebouncer(config Config) *Debouncer {
	return &Debouncer{
		config:  config,
		current: unset,
		moved:   unset,
		clicked: unset,
		pressed: unset,
		dragged: unset,
	}
}

func (d *Debouncer) maxDelay() int64 {
	return d.config.MaxClickDelay.Milliseconds()
}

func (d *Debouncer) setCurrent(x, y int, mods binding.Code, t int64) Sample {
	d.current = Sample{Position: Position{X: x, Y: y}, Mods: mods, Time: t}
	return d.current
}

// Move records pointer motion with no button held.
func (d *Debouncer) Move(x, y int, mods binding.Code, t int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moved = d.setCurrent(x, y, mods, t)
}

// Touch records a position without classifying it, as when the pointer
// enters or leaves the window or the wheel turns.
func (d *Debouncer) Touch(x, y int, mods binding.Code, t int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setCurrent(x, y, mods, t)
}

// Press records a button press and returns the press count.
func (d *Debouncer) Press(x, y int, mods binding.Code, t int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	pos := Position{X: x, Y: y}
	if d.pressed.matches(pos, mods, t, d.config.Tolerance, d.maxDelay()) {
		d.pressCount++
	} else {
		d.pressCount = 1
	}
	s := d.setCurrent(x, y, mods, t)
	d.pressed = s
	d.dragged = s
	return d.pressCount
}

// Drag records motion with a button held and returns the offset from the
// previous drag sample (or from the press).
func (d *Debouncer) Drag(x, y int, mods binding.Code, t int64) (dx, dy int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dx = x - d.dragged.X
	dy = y - d.dragged.Y
	d.dragged = d.setCurrent(x, y, mods, t)
	return dx, dy
}

// Release records a button release and classifies it. The release is a
// drag when the pointer is no longer at the press spot.
func (d *Debouncer) Release(x, y int, mods binding.Code, t int64) Release {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setCurrent(x, y, mods, t)
	if d.pressed.matches(Position{X: x, Y: y}, mods, t, d.config.Tolerance, noDelayLimit) {
		return ReleaseClick
	}
	return ReleaseDrag
}

// Click records a click and returns the click count. A platform count
// above one is trusted as is.
func (d *Debouncer) Click(x, y int, mods binding.Code, t int64, platformCount int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	pos := Position{X: x, Y: y}
	switch {
	case platformCount > 1:
		d.clickCount = platformCount
	case d.clicked.matches(pos, mods, t, d.config.Tolerance, d.maxDelay()):
		d.clickCount++
	default:
		d.clickCount = 1
	}
	d.clicked = d.setCurrent(x, y, mods, t)
	return d.clickCount
}

// ClearModifier removes mask from the modifiers of the last move, as when
// a modifier key is released.
func (d *Debouncer) ClearModifier(mask binding.Code) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moved.Mods &^= mask
}

// SetMovedModifiers replaces the modifiers of the last move.
func (d *Debouncer) SetMovedModifiers(mods binding.Code) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.moved.Mods = mods
}

// Current returns the most recent sample of any kind.
func (d *Debouncer) Current() Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Moved returns the last move sample.
func (d *Debouncer) Moved() Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.moved
}

// Pressed returns the last press sample.
func (d *Debouncer) Pressed() Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressed
}

// ClickCount returns the last click count.
func (d *Debouncer) ClickCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clickCount
}

// PressCount returns the last press count.
func (d *Debouncer) PressCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressCount
}

// ResetCurrentTime marks the current sample stale so a hover probe started
// now never mistakes it for a fresh stop.
func (d *Debouncer) ResetCurrentTime() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current.Time = -1
}
