package mouse

import (
	"testing"
	"time"

	"github.com/dshills/molnav/internal/input/binding"
)

func TestPositionWithin(t *testing.T) {
	p := Position{X: 10, Y: 20}
	tests := []struct {
		other Position
		tol   int
		want  bool
	}{
		{Position{X: 10, Y: 20}, 0, true},
		{Position{X: 15, Y: 20}, 5, true},
		{Position{X: 16, Y: 20}, 5, false},
		{Position{X: 10, Y: 14}, 5, false},
	}

	for _, tt := range tests {
		if got := p.Within(tt.other, tt.tol); got != tt.want {
			t.Errorf("Within(%v, %d) = %v, want %v", tt.other, tt.tol, got, tt.want)
		}
	}
}

func TestReleaseString(t *testing.T) {
	if ReleaseClick.String() != "click" || ReleaseDrag.String() != "drag" {
		t.Errorf("Release strings = %q, %q", ReleaseClick, ReleaseDrag)
	}
}

func TestClickCountSequence(t *testing.T) {
	d := NewDebouncer(Config{MaxClickDelay: 700 * time.Millisecond, Tolerance: 2})
	mods := binding.Left

	tests := []struct {
		name string
		x, y int
		mods binding.Code
		t    int64
		want int
	}{
		{"first", 100, 100, mods, 0, 1},
		{"second within delay", 101, 99, mods, 300, 2},
		{"third within delay", 100, 100, mods, 900, 3},
		{"too late", 100, 100, mods, 1700, 1},
		{"too far", 110, 100, mods, 1800, 1},
		{"other modifiers", 110, 100, mods | binding.Shift, 1900, 1},
		{"continues", 110, 100, mods | binding.Shift, 2000, 2},
	}

	for _, tt := range tests {
		if got := d.Click(tt.x, tt.y, tt.mods, tt.t, 1); got != tt.want {
			t.Errorf("%s: Click() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestClickTrustsPlatformCount(t *testing.T) {
	d := NewDebouncer(DefaultConfig())
	if got := d.Click(0, 0, binding.Left, 0, 2); got != 2 {
		t.Errorf("Click(count=2) = %d, want 2", got)
	}
	if got := d.Click(0, 0, binding.Left, 100, 1); got != 3 {
		t.Errorf("Click() after platform double = %d, want 3", got)
	}
}

func TestPressCount(t *testing.T) {
	d := NewDebouncer(DefaultConfig())
	if got := d.Press(5, 5, binding.Left, 0); got != 1 {
		t.Errorf("Press() = %d, want 1", got)
	}
	if got := d.Press(5, 5, binding.Left, 699); got != 2 {
		t.Errorf("Press() = %d, want 2", got)
	}
	if got := d.Press(5, 5, binding.Left, 1399); got != 1 {
		t.Errorf("Press() at exactly the delay = %d, want 1", got)
	}
}

func TestReleaseClassification(t *testing.T) {
	tests := []struct {
		name     string
		tol      int
		rx, ry   int
		rt       int64
		expected Release
	}{
		{"same spot", 5, 100, 100, 50, ReleaseClick},
		{"inside tolerance", 5, 104, 96, 50, ReleaseClick},
		{"moved away", 5, 140, 100, 50, ReleaseDrag},
		{"long hold is still a click", 5, 100, 100, 60_000, ReleaseClick},
		{"zero tolerance", 0, 101, 100, 50, ReleaseDrag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebouncer(Config{MaxClickDelay: 700 * time.Millisecond, Tolerance: tt.tol})
			d.Press(100, 100, binding.Left, 0)
			if got := d.Release(tt.rx, tt.ry, binding.Left, tt.rt); got != tt.expected {
				t.Errorf("Release() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDragDeltas(t *testing.T) {
	d := NewDebouncer(DefaultConfig())
	d.Press(10, 10, binding.Left, 0)

	dx, dy := d.Drag(15, 8, binding.Left, 10)
	if dx != 5 || dy != -2 {
		t.Errorf("Drag() = (%d, %d), want (5, -2)", dx, dy)
	}
	dx, dy = d.Drag(20, 8, binding.Left, 20)
	if dx != 5 || dy != 0 {
		t.Errorf("Drag() = (%d, %d), want (5, 0)", dx, dy)
	}
	if c := d.Current(); c.X != 20 || c.Time != 20 {
		t.Errorf("Current() = %+v", c)
	}
}

func TestMovedModifiers(t *testing.T) {
	d := NewDebouncer(DefaultConfig())
	d.Move(1, 2, binding.Shift|binding.Ctrl, 5)
	d.ClearModifier(binding.Ctrl)
	if got := d.Moved().Mods; got != binding.Shift {
		t.Errorf("Moved().Mods = %d, want %d", got, binding.Shift)
	}
	d.ResetCurrentTime()
	if got := d.Current().Time; got != -1 {
		t.Errorf("Current().Time = %d, want -1", got)
	}
}
