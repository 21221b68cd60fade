package input

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/mouse"
)

// Context is a snapshot of a resolver's state, for status displays and
// tests.
type Context struct {
	// ID identifies the resolver.
	ID uuid.UUID

	// Profile is the name of the active binding table.
	Profile      string
	PickingStyle binding.PickingStyle
	PickingMode  binding.PickingMode

	// Pointer is the most recent pointer sample.
	Pointer    mouse.Sample
	ClickCount int
	PressCount int

	// Measuring holds the atoms of a measurement in progress.
	Measuring []int

	// Navigation is true when the camera is in navigation mode.
	Navigation bool

	// Hovering is true while the hover watcher runs.
	Hovering bool
}

// Context returns a snapshot of the resolver's state.
func (r *Resolver) Context() *Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Context{
		ID:           r.id,
		Profile:      r.profiles.Name(),
		PickingStyle: r.profiles.PickingStyle(),
		PickingMode:  r.profiles.PickingMode(),
		Pointer:      r.mouse.Current(),
		ClickCount:   r.mouse.ClickCount(),
		PressCount:   r.mouse.PressCount(),
		Measuring:    slices.Clone(r.measuring),
		Navigation:   r.camera.InNavigationMode(),
		Hovering:     r.hover.Running(),
	}
}

// Clone returns a deep copy of the context.
func (c *Context) Clone() *Context {
	clone := *c
	clone.Measuring = slices.Clone(c.Measuring)
	return &clone
}

// IsMeasuring reports whether a measurement is in progress.
func (c *Context) IsMeasuring() bool {
	return len(c.Measuring) > 0
}
