package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
)

func mouse(x, y int, b tcell.ButtonMask, m tcell.ModMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, m)
}

func kinds(evs []input.DeviceEvent) []input.EventKind {
	out := make([]input.EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func TestTranslatorClick(t *testing.T) {
	tr := NewTranslator(8, 16)

	press := tr.Pointer(mouse(3, 2, tcell.ButtonPrimary, tcell.ModNone))
	require.Len(t, press, 1)
	assert.Equal(t, input.EventPress, press[0].Kind)
	assert.Equal(t, 24, press[0].X)
	assert.Equal(t, 32, press[0].Y)
	assert.Equal(t, binding.Left, press[0].Modifiers)

	release := tr.Pointer(mouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, []input.EventKind{input.EventRelease, input.EventClick}, kinds(release))
	for _, e := range release {
		assert.Equal(t, binding.Left, e.Modifiers)
	}
}

func TestTranslatorDrag(t *testing.T) {
	tr := NewTranslator(8, 16)

	tr.Pointer(mouse(1, 1, tcell.ButtonSecondary, tcell.ModShift))
	drag := tr.Pointer(mouse(4, 1, tcell.ButtonSecondary, tcell.ModShift))
	require.Len(t, drag, 1)
	assert.Equal(t, input.EventDrag, drag[0].Kind)
	assert.Equal(t, binding.Right|binding.Shift, drag[0].Modifiers)

	// The same cell again reports nothing.
	assert.Empty(t, tr.Pointer(mouse(4, 1, tcell.ButtonSecondary, tcell.ModShift)))

	// Dragging back onto the press cell is still a drag, not a click.
	tr.Pointer(mouse(1, 1, tcell.ButtonSecondary, tcell.ModShift))
	release := tr.Pointer(mouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, []input.EventKind{input.EventRelease}, kinds(release))
	assert.Equal(t, binding.Right|binding.Shift, release[0].Modifiers)
}

func TestTranslatorMove(t *testing.T) {
	tr := NewTranslator(1, 1)

	moves := tr.Pointer(mouse(5, 6, tcell.ButtonNone, tcell.ModCtrl))
	require.Len(t, moves, 1)
	assert.Equal(t, input.EventMove, moves[0].Kind)
	assert.Equal(t, binding.Ctrl, moves[0].Modifiers)

	assert.Empty(t, tr.Pointer(mouse(5, 6, tcell.ButtonNone, tcell.ModNone)))
}

func TestTranslatorWheel(t *testing.T) {
	tests := []struct {
		name  string
		mask  tcell.ButtonMask
		delta int
	}{
		{"down", tcell.WheelDown, 1},
		{"up", tcell.WheelUp, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(8, 16)
			evs := tr.Pointer(mouse(0, 0, tt.mask, tcell.ModAlt))
			require.Len(t, evs, 1)
			assert.Equal(t, input.EventWheel, evs[0].Kind)
			assert.Equal(t, tt.delta, evs[0].WheelDelta)
			assert.Equal(t, binding.Wheel|binding.Alt, evs[0].Modifiers)
		})
	}
}

func TestTranslatorButtons(t *testing.T) {
	tests := []struct {
		mask tcell.ButtonMask
		want binding.Code
	}{
		{tcell.ButtonPrimary, binding.Left},
		{tcell.ButtonSecondary, binding.Right},
		{tcell.ButtonMiddle, binding.Middle},
	}
	for _, tt := range tests {
		if got := buttonBits(tt.mask); got != tt.want {
			t.Errorf("buttonBits(%v) = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestTranslatorModifiers(t *testing.T) {
	assert.Equal(t, binding.Shift|binding.Ctrl, modifiers(tcell.ModShift|tcell.ModCtrl))
	assert.Equal(t, binding.Alt, modifiers(tcell.ModMeta))
	assert.Equal(t, binding.Code(0), modifiers(tcell.ModNone))
}

func TestTranslatorKey(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		wantKey  key.Key
		wantRune rune
		wantMods key.Modifier
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.KeyUp, 0, key.ModNone},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.KeyLeft, 0, key.ModShift},
		{"ctrl down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModCtrl), key.KeyDown, 0, key.ModCtrl},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.KeySpace, ' ', key.ModNone},
		{"period", tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone), key.KeyPeriod, '.', key.ModNone},
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), key.KeyRune, 'q', key.ModNone},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), key.KeyHome, 0, key.ModNone},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.KeyNone, 0, key.ModNone},
	}

	tr := NewTranslator(8, 16)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r, mods := tr.Key(tt.ev)
			if k != tt.wantKey {
				t.Errorf("key = %v, want %v", k, tt.wantKey)
			}
			if r != tt.wantRune {
				t.Errorf("rune = %q, want %q", r, tt.wantRune)
			}
			if mods != tt.wantMods {
				t.Errorf("mods = %v, want %v", mods, tt.wantMods)
			}
		})
	}
}

func TestTranslatorPixels(t *testing.T) {
	tr := NewTranslator(0, -3)
	w, h := tr.Pixels(80, 24)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}
