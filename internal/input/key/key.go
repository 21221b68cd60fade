package key

import "fmt"

// Key represents a keyboard key the viewer reacts to.
// Character keys that have no dedicated value are reported as KeyRune.
type Key uint16

const (
	// KeyNone represents no key. Passed to navigation it means "released".
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyHome

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeySpace
	KeyPeriod

	// Modifier keys reported on their own
	KeyShift
	KeyCtrl
	KeyAlt

	// KeyRune is used for any other character key.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:   "None",
	KeyEscape: "Escape",
	KeyEnter:  "Enter",
	KeyHome:   "Home",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeySpace:  "Space",
	KeyPeriod: "Period",
	KeyShift:  "Shift",
	KeyCtrl:   "Ctrl",
	KeyAlt:    "Alt",
	KeyRune:   "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true for the keys that steer the navigation
// camera: the arrows, Space and Period.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeySpace || k == KeyPeriod
}

// Modifier returns the modifier a modifier key stands for, or ModNone.
func (k Key) Modifier() Modifier {
	switch k {
	case KeyShift:
		return ModShift
	case KeyCtrl:
		return ModCtrl
	case KeyAlt:
		return ModAlt
	default:
		return ModNone
	}
}
