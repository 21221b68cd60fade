package input

import (
	"context"
	"sync"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
	"github.com/dshills/molnav/internal/navigation"
)

type spin struct {
	dx, dy int
	speed  float32
}

type hoverCall struct {
	atom int
	code binding.Code
}

// fakeViewer places atom x/100 under every point above y = 200.
type fakeViewer struct {
	mu sync.Mutex

	cursor   Cursor
	inMotion bool
	spinning bool
	slab     bool
	hovered  bool

	picks    []Pick
	centers  [][3]int
	popups   [][2]int
	spins    []spin
	stops    int
	slabs    []int
	depths   []int
	both     []int
	pending  [][]int
	measures [][]int
	hovers   []hoverCall
	hoverOff int
}

func (v *fakeViewer) FindNearestAtom(x, y int) int {
	if y < 200 && x >= 0 {
		return x / 100
	}
	return -1
}

func (v *fakeViewer) Pick(p Pick) { v.picks = append(v.picks, p) }
func (v *fakeViewer) CenterAt(x, y, atom int) { v.centers = append(v.centers, [3]int{x, y, atom}) }
func (v *fakeViewer) PopupMenu(x, y int) { v.popups = append(v.popups, [2]int{x, y}) }
func (v *fakeViewer) Cursor() Cursor { return v.cursor }
func (v *fakeViewer) SetCursor(c Cursor) { v.cursor = c }
func (v *fakeViewer) InMotion() bool { return v.inMotion }
func (v *fakeViewer) SetInMotion(on bool) { v.inMotion = on }
func (v *fakeViewer) IsSpinning() bool { return v.spinning }
func (v *fakeViewer) StopMotion() { v.stops++ }
func (v *fakeViewer) SlabEnabled() bool { return v.slab }
func (v *fakeViewer) SlabByPixels(dy int) { v.slabs = append(v.slabs, dy) }
func (v *fakeViewer) DepthByPixels(dy int) { v.depths = append(v.depths, dy) }
func (v *fakeViewer) SlabDepthByPixels(dy int) {
	v.both = append(v.both, dy)
}
func (v *fakeViewer) SetPendingMeasurement(atoms []int) { v.pending = append(v.pending, atoms) }
func (v *fakeViewer) Measure(atoms []int) { v.measures = append(v.measures, atoms) }
func (v *fakeViewer) ObjectHovered(x, y int) bool { return v.hovered }
func (v *fakeViewer) HoverOff() { v.hoverOff++ }

func (v *fakeViewer) SpinXYBy(dx, dy int, speed float32) {
	v.spins = append(v.spins, spin{dx, dy, speed})
}

func (v *fakeViewer) HoverOn(atom int, code binding.Code) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hovers = append(v.hovers, hoverCall{atom, code})
}

func (v *fakeViewer) hoverCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.hovers)
}

type navKey struct {
	k    key.Key
	mods key.Modifier
}

type fakeCamera struct {
	width, height int
	navMode       bool
	navigating    bool

	rotXY    [][2]float32
	rotZ     []float32
	trans    [][2]float32
	zooms    []int
	factors  []float32
	homes    int
	keys     []navKey
	percents [][2]float32
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{width: 400, height: 300}
}

func (c *fakeCamera) ScreenSize() (int, int) { return c.width, c.height }
func (c *fakeCamera) RotateXYBy(dx, dy float32) { c.rotXY = append(c.rotXY, [2]float32{dx, dy}) }
func (c *fakeCamera) RotateZBy(deg float32) { c.rotZ = append(c.rotZ, deg) }
func (c *fakeCamera) TranslateXYBy(dx, dy float32) { c.trans = append(c.trans, [2]float32{dx, dy}) }
func (c *fakeCamera) ZoomBy(pixels int) { c.zooms = append(c.zooms, pixels) }
func (c *fakeCamera) ZoomByFactor(f float32) { c.factors = append(c.factors, f) }
func (c *fakeCamera) Home() { c.homes++ }
func (c *fakeCamera) InNavigationMode() bool { return c.navMode }
func (c *fakeCamera) IsNavigating() bool { return c.navigating }
func (c *fakeCamera) NavigateKey(k key.Key, m key.Modifier) { c.keys = append(c.keys, navKey{k, m}) }

func (c *fakeCamera) NavTranslatePercent(_ context.Context, _, x, y float32) navigation.Result {
	c.percents = append(c.percents, [2]float32{x, y})
	return navigation.Result{}
}

type fakeScripts struct {
	mu       sync.Mutex
	ran      []string
	err      error
	canceled int
	// onRun is called from inside Run, on the goroutine that handled the
	// event.
	onRun func()
}

func (s *fakeScripts) Run(script string) error {
	s.mu.Lock()
	s.ran = append(s.ran, script)
	onRun := s.onRun
	s.mu.Unlock()
	if onRun != nil {
		onRun()
	}
	return s.err
}

func (s *fakeScripts) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled++
}

func (s *fakeScripts) cancels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

func newTestResolver(opts ...Option) (*Resolver, *fakeViewer, *fakeCamera) {
	v := &fakeViewer{}
	c := newFakeCamera()
	cfg := DefaultConfig()
	cfg.HoverDelay = 0
	return New(cfg, v, c, opts...), v, c
}

// drag presses at (x0, y0), drags through points and returns the entry the
// last drag resolved to. Events are 10ms apart.
func drag(r *Resolver, mods binding.Code, x0, y0 int, points ...[2]int) (binding.Entry, bool) {
	r.HandleEvent(DeviceEvent{Kind: EventPress, X: x0, Y: y0, Modifiers: mods})
	var e binding.Entry
	var ok bool
	for i, p := range points {
		e, ok = r.HandleEvent(DeviceEvent{Kind: EventDrag, X: p[0], Y: p[1], Modifiers: mods, Time: int64(10 * (i + 1))})
	}
	return e, ok
}

func click(r *Resolver, mods binding.Code, x, y int, t int64) (binding.Entry, bool) {
	return r.HandleEvent(DeviceEvent{Kind: EventClick, X: x, Y: y, Modifiers: mods, Time: t})
}
