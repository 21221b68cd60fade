package binding

import (
	"strings"

	"github.com/dshills/molnav/internal/input/key"
)

// Code is a mouse action code: the held buttons and modifier keys in the
// low byte and the click count in the bits above it.
type Code int32

// Button and modifier bits. Alt and Middle share a bit.
const (
	Shift  = Code(key.ModShift)
	Ctrl   = Code(key.ModCtrl)
	Right  Code = 4
	Alt    = Code(key.ModAlt)
	Middle Code = 8
	Left   Code = 16
	Wheel  Code = 32

	// ButtonModifierMask selects the button and modifier bits of a code.
	ButtonModifierMask = Ctrl | Alt | Shift | Left | Middle | Right | Wheel
)

// Click count bits.
const (
	SingleClick Code = 1 << 8
	DoubleClick Code = 2 << 8
	Down        Code = 4 << 8

	countMask Code = 7 << 8
)

// CountDown is the click count that marks a press before any release.
const CountDown = -1

// NewCode builds the action code for a click count and a modifier mask.
// Counts above 2 are treated as 2; a negative count yields the Down code.
func NewCode(count int, mods Code) Code {
	c := mods & ButtonModifierMask
	switch {
	case count < 0:
		return c | Down
	case count > 2:
		count = 2
	}
	return c | Code(count)<<8
}

// Modifiers returns the button and modifier bits of c.
func (c Code) Modifiers() Code {
	return c & ButtonModifierMask
}

// ClickCount returns the count bits of c shifted down (4 for Down).
func (c Code) ClickCount() int {
	return int(c >> 8)
}

// AnyCount returns c with its count cleared. Bindings stored under the
// count-free code match any click count.
func (c Code) AnyCount() Code {
	return c &^ countMask
}

// Includes reports whether every bit of mask is set in c.
func (c Code) Includes(mask Code) bool {
	return c&mask == mask
}

// IsPureMiddle reports whether the middle bit is set without left or right.
func (c Code) IsPureMiddle() bool {
	return c.Includes(Middle) && !c.Includes(Left) && !c.Includes(Right)
}

// String renders c as a descriptor such as "CTRL+SHIFT+LEFT+double-click".
func (c Code) String() string {
	if c == 0 {
		return ""
	}
	var sb strings.Builder
	middle := c.IsPureMiddle()
	if c.Includes(Ctrl) {
		sb.WriteString("CTRL+")
	}
	if !middle && c.Includes(Alt) {
		sb.WriteString("ALT+")
	}
	if c.Includes(Shift) {
		sb.WriteString("SHIFT+")
	}
	switch {
	case c.Includes(Left):
		sb.WriteString("LEFT")
	case c.Includes(Right):
		sb.WriteString("RIGHT")
	case middle:
		sb.WriteString("MIDDLE")
	case c.Includes(Wheel):
		sb.WriteString("WHEEL")
	}
	switch {
	case c.Includes(DoubleClick):
		sb.WriteString("+double-click")
	case c.Includes(Down):
		sb.WriteString("+down")
	}
	return sb.String()
}

// ParseCode parses a case-insensitive descriptor like "CTRL+SHIFT+LEFT",
// "DOUBLE+MIDDLE" or "WHEEL". It returns false when the descriptor names
// nothing.
func ParseCode(desc string) (Code, bool) {
	d := strings.ToUpper(desc)
	var c Code

	switch {
	case strings.Contains(d, "MIDDLE"):
		c |= Middle
	case strings.Contains(d, "RIGHT"):
		c |= Right
	case strings.Contains(d, "WHEEL"):
		c |= Wheel
	case strings.Contains(d, "LEFT"):
		c |= Left
	}
	defaultButton := c == 0

	switch {
	case strings.Contains(d, "DOUBLE"):
		c |= DoubleClick
	case strings.Contains(d, "DOWN"):
		c |= Down
	case c > 0 && c&Wheel == 0, strings.Contains(d, "SINGLE"):
		c |= SingleClick
	}

	if strings.Contains(d, "CTRL") {
		c |= Ctrl
	}
	if strings.Contains(d, "ALT") {
		c |= Alt
	}
	if strings.Contains(d, "SHIFT") {
		c |= Shift
	}

	if defaultButton && c != 0 {
		c |= Left
	}
	return c, c != 0
}

// MustParseCode is like ParseCode but panics on an empty descriptor.
// It is intended for the built-in profiles.
func MustParseCode(desc string) Code {
	c, ok := ParseCode(desc)
	if !ok {
		panic("binding: bad descriptor " + desc)
	}
	return c
}
