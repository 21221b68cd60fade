package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
)

const pointerButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Translator turns tcell events into resolver events. Terminals report
// only the current button mask with each mouse event, so the translator
// remembers the previous mask to tell presses, drags and releases apart.
// A release on the cell of its press is followed by a click.
//
// Cell coordinates are scaled by the cell size so that drag distances are
// comparable to pixel-based mouse factors.
type Translator struct {
	cellW, cellH int

	held     tcell.ButtonMask
	heldMods binding.Code
	x, y     int
	pressX   int
	pressY   int
	moved    bool
}

// NewTranslator creates a translator for cells of w by h pixels.
func NewTranslator(w, h int) *Translator {
	return &Translator{cellW: max(w, 1), cellH: max(h, 1), x: -1, y: -1}
}

// Pixels converts a size in cells to pixels.
func (t *Translator) Pixels(cols, rows int) (int, int) {
	return cols * t.cellW, rows * t.cellH
}

// Pointer returns the resolver events for one mouse event, in order.
func (t *Translator) Pointer(ev *tcell.EventMouse) []input.DeviceEvent {
	cx, cy := ev.Position()
	x, y := cx*t.cellW, cy*t.cellH
	when := ev.When().UnixMilli()
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()
	movedTo := x != t.x || y != t.y
	t.x, t.y = x, y

	if delta := wheelDelta(buttons); delta != 0 {
		return []input.DeviceEvent{{
			Kind:       input.EventWheel,
			X:          x,
			Y:          y,
			Modifiers:  mods | binding.Wheel,
			WheelDelta: delta,
			Time:       when,
		}}
	}

	pressed := buttons & pointerButtons
	switch {
	case t.held == 0 && pressed != 0:
		t.held = pressed
		t.heldMods = mods | buttonBits(pressed)
		t.pressX, t.pressY = x, y
		t.moved = false
		return []input.DeviceEvent{{Kind: input.EventPress, X: x, Y: y, Modifiers: t.heldMods, Time: when}}

	case t.held != 0 && pressed != 0:
		if !movedTo {
			return nil
		}
		t.moved = t.moved || x != t.pressX || y != t.pressY
		return []input.DeviceEvent{{Kind: input.EventDrag, X: x, Y: y, Modifiers: t.heldMods, Time: when}}

	case t.held != 0:
		code := t.heldMods
		t.held, t.heldMods = 0, 0
		out := []input.DeviceEvent{{Kind: input.EventRelease, X: x, Y: y, Modifiers: code, Time: when}}
		if !t.moved && x == t.pressX && y == t.pressY {
			out = append(out, input.DeviceEvent{Kind: input.EventClick, X: x, Y: y, Modifiers: code, Time: when})
		}
		return out

	case movedTo:
		return []input.DeviceEvent{{Kind: input.EventMove, X: x, Y: y, Modifiers: mods, Time: when}}
	}
	return nil
}

// Key maps a key event to the viewer's key set. Characters without a key
// of their own come back as key.KeyRune with the character.
func (t *Translator) Key(ev *tcell.EventKey) (key.Key, rune, key.Modifier) {
	mods := key.Modifier(modifiers(ev.Modifiers()))
	switch ev.Key() {
	case tcell.KeyUp:
		return key.KeyUp, 0, mods
	case tcell.KeyDown:
		return key.KeyDown, 0, mods
	case tcell.KeyLeft:
		return key.KeyLeft, 0, mods
	case tcell.KeyRight:
		return key.KeyRight, 0, mods
	case tcell.KeyHome:
		return key.KeyHome, 0, mods
	case tcell.KeyEnter:
		return key.KeyEnter, 0, mods
	case tcell.KeyEscape:
		return key.KeyEscape, 0, mods
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case ' ':
			return key.KeySpace, r, mods
		case '.':
			return key.KeyPeriod, r, mods
		default:
			return key.KeyRune, r, mods
		}
	}
	return key.KeyNone, 0, mods
}

// modifiers maps tcell modifiers onto the shared key and button bits.
// Meta counts as Alt.
func modifiers(m tcell.ModMask) binding.Code {
	var c binding.Code
	if m&tcell.ModShift != 0 {
		c |= binding.Shift
	}
	if m&tcell.ModCtrl != 0 {
		c |= binding.Ctrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		c |= binding.Alt
	}
	return c
}

func buttonBits(b tcell.ButtonMask) binding.Code {
	var c binding.Code
	if b&tcell.ButtonPrimary != 0 {
		c |= binding.Left
	}
	if b&tcell.ButtonSecondary != 0 {
		c |= binding.Right
	}
	if b&tcell.ButtonMiddle != 0 {
		c |= binding.Middle
	}
	return c
}

// wheelDelta returns +1 for a turn towards the user, -1 away from them.
func wheelDelta(b tcell.ButtonMask) int {
	switch {
	case b&tcell.WheelDown != 0:
		return 1
	case b&tcell.WheelUp != 0:
		return -1
	}
	return 0
}
