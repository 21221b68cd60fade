package input

import (
	"context"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
	"github.com/dshills/molnav/internal/navigation"
)

// EventKind identifies a pointer event. The numeric values are what the
// _MODE script placeholder expands to.
type EventKind uint8

const (
	// EventMove is pointer motion with no button held.
	EventMove EventKind = iota
	// EventDrag is pointer motion with a button held.
	EventDrag
	// EventClick is a completed click, reported after the release.
	EventClick
	// EventWheel is a wheel turn; WheelDelta holds the notches.
	EventWheel
	// EventPress is a button press.
	EventPress
	// EventRelease is a button release.
	EventRelease
)

// String returns a string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventDrag:
		return "drag"
	case EventClick:
		return "click"
	case EventWheel:
		return "wheel"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// DeviceEvent is one raw pointer event from a platform adapter.
type DeviceEvent struct {
	Kind EventKind
	X, Y int
	// Modifiers holds the button and modifier bits, laid out as in
	// binding.Code.
	Modifiers binding.Code
	// Count is the click count the platform reported, or 0.
	Count      int
	WheelDelta int
	// Time is in milliseconds.
	Time int64
}

// Cursor is a pointer shape hint.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorMove
	CursorZoom
	CursorCrosshair
	CursorWait
)

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorMove:
		return "move"
	case CursorZoom:
		return "zoom"
	case CursorCrosshair:
		return "crosshair"
	case CursorWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Pick describes a click or press the viewer should act on: selecting,
// identifying or starting to drag an atom.
type Pick struct {
	// Atom is the nearest atom, or -1 when the pointer is off the model.
	Atom int
	X, Y int
	Code binding.Code
	// Action is the bound action that asked for the pick.
	Action binding.Action
	Mode   binding.PickingMode
}

// Viewer is the host viewer the resolver drives. The resolver knows
// nothing about the model; everything it needs about atoms, selection and
// drawing goes through this interface.
type Viewer interface {
	// FindNearestAtom returns the atom drawn under (x, y), or -1.
	FindNearestAtom(x, y int) int
	Pick(p Pick)
	CenterAt(x, y, atom int)
	PopupMenu(x, y int)

	Cursor() Cursor
	SetCursor(c Cursor)
	InMotion() bool
	SetInMotion(on bool)
	IsSpinning() bool
	// SpinXYBy spins about the screen axes; a zero speed stops spinning.
	SpinXYBy(dx, dy int, speed float32)
	StopMotion()

	SlabEnabled() bool
	SlabByPixels(dy int)
	DepthByPixels(dy int)
	SlabDepthByPixels(dy int)

	// SetPendingMeasurement shows the atoms of a measurement in progress;
	// nil clears it.
	SetPendingMeasurement(atoms []int)
	Measure(atoms []int)

	// ObjectHovered reports whether something other than an atom claims
	// the hover at (x, y).
	ObjectHovered(x, y int) bool
	HoverOn(atom int, code binding.Code)
	HoverOff()
}

// Camera is the part of the navigation camera the resolver drives.
// *navigation.Camera implements it.
type Camera interface {
	ScreenSize() (width, height int)
	RotateXYBy(dx, dy float32)
	RotateZBy(deg float32)
	TranslateXYBy(dx, dy float32)
	ZoomBy(pixels int)
	ZoomByFactor(f float32)
	Home()

	InNavigationMode() bool
	IsNavigating() bool
	NavigateKey(k key.Key, mods key.Modifier)
	NavTranslatePercent(ctx context.Context, seconds, x, y float32) navigation.Result
}

// ScriptRunner runs the text of a script binding after its placeholders
// have been substituted. Run is called on the event goroutine, so a
// runner whose scripts animate the camera should queue them and return.
// It must not call back into the resolver's HandleEvent synchronously.
//
// Cancel aborts the running script and drops queued ones. The resolver
// calls it on every button press and for _stopMotion, with its lock held,
// so it must not block.
type ScriptRunner interface {
	Run(script string) error
	Cancel()
}

var _ Camera = (*navigation.Camera)(nil)
