package script

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/navigation"
	"github.com/dshills/molnav/internal/navigation/animate"
)

type rotation struct {
	axis geom.Vec3
	deg  float32
}

type fakeCamera struct {
	rotations  []rotation
	translates map[rune]float32
	zoom       float32
	factors    []float32
	homes      int
	centers    []geom.Vec3
	depths     []float32
	navAxes    []rotation
	seconds    []float32
	canceled   bool
	snap       navigation.Snapshot
	restored   []navigation.Snapshot
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{
		translates: map[rune]float32{},
		snap: navigation.Snapshot{
			Rotation:    geom.Identity(),
			ZoomPercent: 100,
			Center:      geom.V(1, 2, 3),
			Radius:      10,
		},
	}
}

func (c *fakeCamera) RotateAxisAngle(axis geom.Vec3, deg float32) {
	c.rotations = append(c.rotations, rotation{axis, deg})
}
func (c *fakeCamera) TranslateToPercent(axis rune, percent float32) { c.translates[axis] = percent }
func (c *fakeCamera) ZoomToPercent(percent float32) { c.zoom = percent }
func (c *fakeCamera) ZoomByFactor(f float32) { c.factors = append(c.factors, f) }
func (c *fakeCamera) Home() { c.homes++ }
func (c *fakeCamera) Snapshot() navigation.Snapshot { return c.snap }
func (c *fakeCamera) Restore(s navigation.Snapshot) { c.restored = append(c.restored, s) }

func (c *fakeCamera) Navigate(ctx context.Context, seconds float32, target geom.Vec3) navigation.Result {
	c.seconds = append(c.seconds, seconds)
	c.centers = append(c.centers, target)
	return navigation.Result{Canceled: c.canceled}
}

func (c *fakeCamera) NavigateAxis(ctx context.Context, seconds float32, axis geom.Vec3, deg float32) navigation.Result {
	c.seconds = append(c.seconds, seconds)
	c.navAxes = append(c.navAxes, rotation{axis, deg})
	return navigation.Result{Canceled: c.canceled}
}

func (c *fakeCamera) NavigateDepth(ctx context.Context, seconds, percent float32) navigation.Result {
	c.seconds = append(c.seconds, seconds)
	c.depths = append(c.depths, percent)
	return navigation.Result{Canceled: c.canceled}
}

func newTestRunner(t *testing.T, opts ...Option) (*Runner, *fakeCamera) {
	t.Helper()
	c := newFakeCamera()
	r := NewRunner(c, opts...)
	t.Cleanup(func() { r.Close() })
	return r, c
}

func TestRunnerCameraFunctions(t *testing.T) {
	r, c := newTestRunner(t)

	require.NoError(t, r.Run(`
		rotate("y", 30)
		rotate("X", -15)
		translate("x", 10)
		translate("y", -5)
		zoom(200)
		zoomby(1.5)
		home()
	`))

	assert.Equal(t, []rotation{
		{geom.V(0, 1, 0), 30},
		{geom.V(1, 0, 0), -15},
	}, c.rotations)
	assert.Equal(t, map[rune]float32{'x': 10, 'y': -5}, c.translates)
	assert.Equal(t, float32(200), c.zoom)
	assert.Equal(t, []float32{1.5}, c.factors)
	assert.Equal(t, 1, c.homes)
}

func TestRunnerPlaceholderStyleScript(t *testing.T) {
	r, c := newTestRunner(t)

	require.NoError(t, r.Run(`rotate("z", 12 / 2)`))

	require.Len(t, c.rotations, 1)
	assert.Equal(t, float32(6), c.rotations[0].deg)
}

func TestRunnerArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad rotate axis", `rotate("w", 10)`},
		{"z translation", `translate("z", 10)`},
		{"missing angle", `rotate("x")`},
		{"non-positive factor", `zoomby(0)`},
		{"bad snapshot", `restore("{")`},
		{"syntax", `rotate(`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := newTestRunner(t)
			if err := r.Run(tt.script); err == nil {
				t.Errorf("Run(%q) error = nil, want error", tt.script)
			}
			assert.Empty(t, c.rotations)
			assert.Empty(t, c.restored)
		})
	}
}

func TestRunnerNavigation(t *testing.T) {
	r, c := newTestRunner(t)

	require.NoError(t, r.Run(`
		a = navigate(2, 1, 2, 3)
		b = navrotate(1, "y", 90)
		d = navdepth(0, 40)
	`))

	assert.Equal(t, []geom.Vec3{geom.V(1, 2, 3)}, c.centers)
	assert.Equal(t, []rotation{{geom.V(0, 1, 0), 90}}, c.navAxes)
	assert.Equal(t, []float32{40}, c.depths)
	assert.Equal(t, []float32{2, 1, 0}, c.seconds)
	for _, name := range []string{"a", "b", "d"} {
		if got := r.State().GetGlobal(name); got != lua.LTrue {
			t.Errorf("%s = %v, want true", name, got)
		}
	}
}

func TestRunnerNavigationCanceled(t *testing.T) {
	r, c := newTestRunner(t)
	c.canceled = true

	require.NoError(t, r.Run(`done = navigate(1, 0, 0, 0)`))

	assert.Equal(t, lua.LFalse, r.State().GetGlobal("done"))
}

func TestRunnerSnapshotRoundTrip(t *testing.T) {
	r, c := newTestRunner(t)

	require.NoError(t, r.Run(`restore(snapshot())`))

	require.Len(t, c.restored, 1)
	assert.Equal(t, c.snap, c.restored[0])
}

func TestRunnerOrientation(t *testing.T) {
	r, c := newTestRunner(t)

	require.NoError(t, r.Run(`o = orientation(2)`))

	got := lua.LVAsString(r.State().GetGlobal("o"))
	assert.Equal(t, c.snap.MoveToText(2), got)
}

func TestRunnerPrint(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newTestRunner(t, WithOutput(&buf))

	require.NoError(t, r.Run(`print("atom", 12, true)`))

	assert.Equal(t, "atom\t12\ttrue\n", buf.String())
}

func TestRunnerSandbox(t *testing.T) {
	r, _ := newTestRunner(t)

	err := r.Run(`assert(io == nil and os == nil and debug == nil)
		assert(dofile == nil and loadfile == nil and load == nil and require == nil)`)

	assert.NoError(t, err)
}

func TestRunnerTimeout(t *testing.T) {
	r, _ := newTestRunner(t, WithStateOptions(WithTimeout(20*time.Millisecond)))

	err := r.Run(`while true do end`)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "error = %v, want ErrTimeout", err)
}

func TestRunnerClosed(t *testing.T) {
	r, _ := newTestRunner(t)
	require.NoError(t, r.Close())

	err := r.Run(`home()`)

	assert.ErrorIs(t, err, ErrStateClosed)
}

func TestRunnerDrivesNavigationCamera(t *testing.T) {
	cam := navigation.NewCamera(navigation.DefaultConfig())
	cam.SetScreenSize(400, 400)
	cam.SetModel(geom.V(0, 0, 0), 10)
	r := NewRunner(cam)
	defer r.Close()

	require.NoError(t, r.Run(`zoom(250)`))

	assert.InDelta(t, 250, cam.ZoomSetting(), 1e-4)
}

type fakePather struct {
	seconds  []float32
	paths    [][]geom.Vec3
	spans    [][2]int
	guides   [][][2]geom.Vec3
	canceled bool
}

func (p *fakePather) NavigatePath(ctx context.Context, seconds float32, path []*geom.Vec3, start, end int) navigation.Result {
	pts := make([]geom.Vec3, len(path))
	for i, v := range path {
		pts[i] = *v
	}
	p.seconds = append(p.seconds, seconds)
	p.paths = append(p.paths, pts)
	p.spans = append(p.spans, [2]int{start, end})
	return navigation.Result{Canceled: p.canceled}
}

func (p *fakePather) NavigateGuided(ctx context.Context, seconds float32, pathGuide [][2]geom.Vec3) navigation.Result {
	p.seconds = append(p.seconds, seconds)
	p.guides = append(p.guides, pathGuide)
	return navigation.Result{Canceled: p.canceled}
}

func TestRunnerNavPath(t *testing.T) {
	p := &fakePather{}
	r, _ := newTestRunner(t, WithAnimator(p))

	require.NoError(t, r.Run(`done = navpath(3, {0, 0, 0}, {1, 0, 0}, {1, 1, 0})`))

	assert.Equal(t, []float32{3}, p.seconds)
	assert.Equal(t, [][]geom.Vec3{{geom.V(0, 0, 0), geom.V(1, 0, 0), geom.V(1, 1, 0)}}, p.paths)
	assert.Equal(t, [][2]int{{0, 2}}, p.spans)
	assert.Equal(t, lua.LTrue, r.State().GetGlobal("done"))
}

func TestRunnerNavGuided(t *testing.T) {
	p := &fakePather{canceled: true}
	r, _ := newTestRunner(t, WithAnimator(p))

	require.NoError(t, r.Run(`done = navguided(1, {{0, 0, 0}, {0, 1, 0}}, {{2, 0, 0}, {0, 0, 1}})`))

	require.Len(t, p.guides, 1)
	assert.Equal(t, [][2]geom.Vec3{
		{geom.V(0, 0, 0), geom.V(0, 1, 0)},
		{geom.V(2, 0, 0), geom.V(0, 0, 1)},
	}, p.guides[0])
	assert.Equal(t, lua.LFalse, r.State().GetGlobal("done"))
}

func TestRunnerNavPathFliesCamera(t *testing.T) {
	cam := navigation.NewCamera(navigation.DefaultConfig())
	cam.SetScreenSize(400, 400)
	cam.SetModel(geom.V(0, 0, 0), 10)
	cam.SetNavigationMode(true)
	clock := animate.NewVirtualClock()
	r := NewRunner(cam, WithAnimator(animate.New(cam, clock, animate.DefaultConfig())))
	defer r.Close()

	require.NoError(t, r.Run(`navpath(1, {0, 0, 0}, {2, 0, 0}, {2, 3, 0})`))

	got := cam.NavigationCenter()
	for i, want := range geom.V(2, 3, 0) {
		if d := got[i] - want; d > 1e-3 || d < -1e-3 {
			t.Errorf("NavigationCenter()[%d] = %v, want %v", i, got[i], want)
		}
	}
	assert.NotEmpty(t, clock.Sleeps())
}

func TestRunnerPickingMode(t *testing.T) {
	p := binding.NewProfiles()
	r, _ := newTestRunner(t, WithProfiles(p))

	require.NoError(t, r.Run(`before = pickingmode()
		after = pickingmode("NAVIGATE")`))

	assert.Equal(t, binding.PickNavigate, p.PickingMode())
	assert.Equal(t, "identify", lua.LVAsString(r.State().GetGlobal("before")))
	assert.Equal(t, "navigate", lua.LVAsString(r.State().GetGlobal("after")))
}

func TestRunnerPickingStyle(t *testing.T) {
	p := binding.NewProfiles()
	r, _ := newTestRunner(t, WithProfiles(p))

	require.NoError(t, r.Run(`s = pickingstyle("extendedSelect")`))

	assert.Equal(t, binding.StyleExtendedSelect, p.PickingStyle())
	assert.Equal(t, binding.StyleExtendedSelect.String(), p.Name())
	assert.Equal(t, binding.StyleExtendedSelect.String(), lua.LVAsString(r.State().GetGlobal("s")))
}

func TestRunnerDragSelected(t *testing.T) {
	p := binding.NewProfiles()
	p.SetPickingStyle(binding.StyleSelectOrToggle)
	r, _ := newTestRunner(t, WithProfiles(p))

	require.NoError(t, r.Run(`dragselected(true)`))
	assert.Equal(t, binding.StyleDrag.String(), p.Name())
	assert.Equal(t, binding.PickDragSelected, p.PickingMode())

	require.NoError(t, r.Run(`dragselected(false)`))
	assert.Equal(t, binding.StyleSelectOrToggle.String(), p.Name())
	assert.Equal(t, binding.PickIdentify, p.PickingMode())
}

func TestRunnerBindAndUnbind(t *testing.T) {
	p := binding.NewProfiles()
	r, _ := newTestRunner(t, WithProfiles(p))
	altRight := binding.MustParseCode("ALT+RIGHT")
	ctrlShiftRight := binding.MustParseCode("CTRL+SHIFT+RIGHT")

	require.NoError(t, r.Run(`bind("ALT+RIGHT", "_center")
		bind("CTRL+SHIFT+RIGHT", "navigate(1, _X, _Y, 0)")`))
	assert.True(t, p.IsBound(altRight, binding.ActionCenter))
	assert.Equal(t, []string{"navigate(1, _X, _Y, 0)"}, p.Scripts(ctrlShiftRight))

	require.NoError(t, r.Run(`unbind("ALT+RIGHT", "_center")`))
	assert.False(t, p.IsBound(altRight, binding.ActionCenter))
	assert.True(t, p.IsUserAction(ctrlShiftRight))

	require.NoError(t, r.Run(`unbind()`))
	assert.False(t, p.IsUserAction(ctrlShiftRight))
}

func TestRunnerBindings(t *testing.T) {
	p := binding.NewProfiles()
	r, _ := newTestRunner(t, WithProfiles(p))

	require.NoError(t, r.Run(`centers = bindings("center")
		all = bindings("all")`))

	centers := strings.Split(lua.LVAsString(r.State().GetGlobal("centers")), "\n")
	assert.Equal(t, p.Info("center"), centers)
	for _, line := range centers {
		assert.Contains(t, line, "center")
	}
	all := strings.Split(lua.LVAsString(r.State().GetGlobal("all")), "\n")
	assert.Len(t, all, len(p.Info("")))
	assert.Greater(t, len(all), len(centers))
}

func TestRunnerExportBindings(t *testing.T) {
	p := binding.NewProfiles()
	r, _ := newTestRunner(t, WithProfiles(p))

	require.NoError(t, r.Run(`bind("ALT+RIGHT", "print(_ATOM)")
		yaml = exportbindings()`))

	table, err := binding.DecodeProfile(strings.NewReader(lua.LVAsString(r.State().GetGlobal("yaml"))))
	require.NoError(t, err)
	assert.Equal(t, p.Active().Len(), table.Len())
	assert.Equal(t, []string{"print(_ATOM)"}, table.Scripts(binding.MustParseCode("ALT+RIGHT")))
	assert.Equal(t, p.Info("all"), table.Info("all"))
}

func TestRunnerBindingErrors(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		script string
	}{
		{"unknown picking mode", []Option{WithProfiles(binding.NewProfiles())}, `pickingmode("fly")`},
		{"unknown picking style", []Option{WithProfiles(binding.NewProfiles())}, `pickingstyle("drag-and-drop")`},
		{"bad descriptor", []Option{WithProfiles(binding.NewProfiles())}, `bind("nothing", "_center")`},
		{"bad unbind descriptor", []Option{WithProfiles(binding.NewProfiles())}, `unbind("nothing")`},
		{"no profiles", nil, `bindings()`},
		{"no animator", nil, `navpath(1, {0, 0, 0}, {1, 0, 0})`},
		{"short path", []Option{WithAnimator(&fakePather{})}, `navpath(1, {0, 0, 0})`},
		{"bad point", []Option{WithAnimator(&fakePather{})}, `navpath(1, {0, 0}, {1, 0, 0})`},
		{"bad guide", []Option{WithAnimator(&fakePather{})}, `navguided(1, {0, 0, 0}, {1, 0, 0})`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(t, tt.opts...)
			if err := r.Run(tt.script); err == nil {
				t.Errorf("Run(%q) error = nil, want error", tt.script)
			}
		})
	}
}
