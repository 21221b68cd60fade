package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/navigation"
	"github.com/dshills/molnav/internal/navigation/animate"
)

// Camera is the part of the navigation camera scripts can drive.
// *navigation.Camera implements it.
type Camera interface {
	RotateAxisAngle(axis geom.Vec3, deg float32)
	TranslateToPercent(axis rune, percent float32)
	ZoomToPercent(percent float32)
	ZoomByFactor(f float32)
	Home()

	Navigate(ctx context.Context, seconds float32, target geom.Vec3) navigation.Result
	NavigateAxis(ctx context.Context, seconds float32, axis geom.Vec3, deg float32) navigation.Result
	NavigateDepth(ctx context.Context, seconds, percent float32) navigation.Result

	Snapshot() navigation.Snapshot
	Restore(s navigation.Snapshot)
}

var _ Camera = (*navigation.Camera)(nil)

// Pather flies the navigation centre along splined paths.
type Pather interface {
	NavigatePath(ctx context.Context, seconds float32, path []*geom.Vec3, start, end int) navigation.Result
	NavigateGuided(ctx context.Context, seconds float32, pathGuide [][2]geom.Vec3) navigation.Result
}

var _ Pather = (*animate.Animator)(nil)

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sends print output to w instead of the logger.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithProfiles lets scripts read and change the mouse bindings, picking
// style and picking mode.
func WithProfiles(p *binding.Profiles) Option {
	return func(r *Runner) {
		r.profiles = p
	}
}

// WithAnimator enables the path flights navpath and navguided.
func WithAnimator(p Pather) Option {
	return func(r *Runner) {
		r.pather = p
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(r *Runner) {
		r.stateOpts = append(r.stateOpts, opts...)
	}
}

// Runner runs script bindings against a camera. Run executes in place
// and blocks for the length of any timed move; put a Queue in front of it
// to serve a resolver.
type Runner struct {
	state     *State
	camera    Camera
	pather    Pather
	profiles  *binding.Profiles
	out       io.Writer
	stateOpts []StateOption
}

// NewRunner creates a runner with its own sandboxed state.
func NewRunner(camera Camera, opts ...Option) *Runner {
	r := &Runner{camera: camera}
	for _, opt := range opts {
		opt(r)
	}
	r.state = NewState(r.stateOpts...)
	r.state.RegisterFuncs(map[string]lua.LGFunction{
		"print":       r.print,
		"rotate":      r.rotate,
		"translate":   r.translate,
		"zoom":        r.zoom,
		"zoomby":      r.zoomBy,
		"home":        r.home,
		"navigate":    r.navigate,
		"navrotate":   r.navRotate,
		"navdepth":    r.navDepth,
		"orientation": r.orientation,
		"snapshot":    r.snapshot,
		"restore":     r.restore,

		"navpath":        r.navPath,
		"navguided":      r.navGuided,
		"pickingmode":    r.pickingMode,
		"pickingstyle":   r.pickingStyle,
		"dragselected":   r.dragSelected,
		"bind":           r.bind,
		"unbind":         r.unbind,
		"bindings":       r.bindings,
		"exportbindings": r.exportBindings,
	})
	return r
}

// Run executes one script binding.
func (r *Runner) Run(script string) error {
	return r.RunContext(context.Background(), script)
}

// RunContext executes script, cancelling timed moves and the chunk itself
// when ctx ends.
func (r *Runner) RunContext(ctx context.Context, script string) error {
	if err := r.state.DoString(ctx, script); err != nil {
		return fmt.Errorf("run script: %w", err)
	}
	return nil
}

// State returns the runner's interpreter.
func (r *Runner) State() *State {
	return r.state
}

// Close releases the interpreter.
func (r *Runner) Close() error {
	return r.state.Close()
}

func callContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func checkAxis(L *lua.LState, n int) geom.Vec3 {
	switch strings.ToLower(L.CheckString(n)) {
	case "x":
		return geom.V(1, 0, 0)
	case "y":
		return geom.V(0, 1, 0)
	case "z":
		return geom.V(0, 0, 1)
	}
	L.ArgError(n, "axis must be x, y or z")
	return geom.Vec3{}
}

func checkFloat(L *lua.LState, n int) float32 {
	return float32(L.CheckNumber(n))
}

func (r *Runner) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	line := strings.Join(parts, "\t")
	if r.out != nil {
		fmt.Fprintln(r.out, line)
	} else {
		logger.Info(line)
	}
	return 0
}

func (r *Runner) rotate(L *lua.LState) int {
	axis := checkAxis(L, 1)
	r.camera.RotateAxisAngle(axis, checkFloat(L, 2))
	return 0
}

func (r *Runner) translate(L *lua.LState) int {
	axis := strings.ToLower(L.CheckString(1))
	if axis != "x" && axis != "y" {
		L.ArgError(1, "axis must be x or y")
	}
	r.camera.TranslateToPercent(rune(axis[0]), checkFloat(L, 2))
	return 0
}

func (r *Runner) zoom(L *lua.LState) int {
	r.camera.ZoomToPercent(checkFloat(L, 1))
	return 0
}

func (r *Runner) zoomBy(L *lua.LState) int {
	f := checkFloat(L, 1)
	if f <= 0 {
		L.ArgError(1, "factor must be positive")
	}
	r.camera.ZoomByFactor(f)
	return 0
}

func (r *Runner) home(L *lua.LState) int {
	r.camera.Home()
	return 0
}

// pushResult returns whether a timed move ran to completion.
func pushResult(L *lua.LState, res navigation.Result) int {
	L.Push(lua.LBool(!res.Canceled))
	return 1
}

func (r *Runner) navigate(L *lua.LState) int {
	seconds := checkFloat(L, 1)
	target := geom.V(checkFloat(L, 2), checkFloat(L, 3), checkFloat(L, 4))
	return pushResult(L, r.camera.Navigate(callContext(L), seconds, target))
}

func (r *Runner) navRotate(L *lua.LState) int {
	seconds := checkFloat(L, 1)
	axis := checkAxis(L, 2)
	return pushResult(L, r.camera.NavigateAxis(callContext(L), seconds, axis, checkFloat(L, 3)))
}

func (r *Runner) navDepth(L *lua.LState) int {
	seconds := checkFloat(L, 1)
	return pushResult(L, r.camera.NavigateDepth(callContext(L), seconds, checkFloat(L, 2)))
}

func (r *Runner) orientation(L *lua.LState) int {
	L.Push(lua.LString(r.camera.Snapshot().MoveToText(float32(L.OptNumber(1, 1)))))
	return 1
}

func (r *Runner) snapshot(L *lua.LState) int {
	data, err := r.camera.Snapshot().Encode()
	if err != nil {
		L.RaiseError("snapshot: %v", err)
		return 0
	}
	L.Push(lua.LString(data))
	return 1
}

func (r *Runner) restore(L *lua.LState) int {
	s, err := navigation.DecodeSnapshot([]byte(L.CheckString(1)))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	r.camera.Restore(s)
	return 0
}

// checkVec3 reads an {x, y, z} table.
func checkVec3(L *lua.LState, n int) geom.Vec3 {
	return tableVec3(L, n, L.CheckTable(n))
}

func tableVec3(L *lua.LState, n int, t *lua.LTable) geom.Vec3 {
	var v geom.Vec3
	for i := 0; i < 3; i++ {
		num, ok := t.RawGetInt(i + 1).(lua.LNumber)
		if !ok {
			L.ArgError(n, "want {x, y, z}")
			return geom.Vec3{}
		}
		v[i] = float32(num)
	}
	return v
}

func (r *Runner) checkPather(L *lua.LState) Pather {
	if r.pather == nil {
		L.RaiseError("path flights are not available")
	}
	return r.pather
}

func (r *Runner) checkProfiles(L *lua.LState) *binding.Profiles {
	if r.profiles == nil {
		L.RaiseError("bindings are not available")
	}
	return r.profiles
}

// navPath flies through the points given after seconds:
//
//	navpath(2, {0, 0, 0}, {1, 0, 0}, {1, 1, 0})
func (r *Runner) navPath(L *lua.LState) int {
	p := r.checkPather(L)
	seconds := checkFloat(L, 1)
	path := make([]*geom.Vec3, 0, L.GetTop()-1)
	for n := 2; n <= L.GetTop(); n++ {
		v := checkVec3(L, n)
		path = append(path, &v)
	}
	if len(path) < 2 {
		L.ArgError(2, "a path needs two points")
	}
	return pushResult(L, p.NavigatePath(callContext(L), seconds, path, 0, len(path)-1))
}

// navGuided flies along points that each carry a wing vector:
//
//	navguided(2, {{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {0, 1, 0}})
func (r *Runner) navGuided(L *lua.LState) int {
	p := r.checkPather(L)
	seconds := checkFloat(L, 1)
	guide := make([][2]geom.Vec3, 0, L.GetTop()-1)
	for n := 2; n <= L.GetTop(); n++ {
		t := L.CheckTable(n)
		pt, ok1 := t.RawGetInt(1).(*lua.LTable)
		wing, ok2 := t.RawGetInt(2).(*lua.LTable)
		if !ok1 || !ok2 {
			L.ArgError(n, "want {{x, y, z}, {wx, wy, wz}}")
			return 0
		}
		guide = append(guide, [2]geom.Vec3{tableVec3(L, n, pt), tableVec3(L, n, wing)})
	}
	if len(guide) < 2 {
		L.ArgError(2, "a path needs two points")
	}
	return pushResult(L, p.NavigateGuided(callContext(L), seconds, guide))
}

// pickingMode sets the picking mode when given a name and returns the
// mode in effect.
func (r *Runner) pickingMode(L *lua.LState) int {
	p := r.checkProfiles(L)
	if L.GetTop() >= 1 {
		name := L.CheckString(1)
		m := binding.PickingModeFromName(name)
		if m < 0 {
			L.ArgError(1, fmt.Sprintf("unknown picking mode %q", name))
			return 0
		}
		p.SetPickingMode(m)
	}
	L.Push(lua.LString(p.PickingMode().String()))
	return 1
}

// pickingStyle sets the picking style when given a name and returns the
// style in effect.
func (r *Runner) pickingStyle(L *lua.LState) int {
	p := r.checkProfiles(L)
	if L.GetTop() >= 1 {
		name := L.CheckString(1)
		style := binding.PickingStyleFromName(name)
		if style < 0 {
			L.ArgError(1, fmt.Sprintf("unknown picking style %q", name))
			return 0
		}
		p.SetPickingStyle(style)
	}
	L.Push(lua.LString(p.PickingStyle().String()))
	return 1
}

// dragSelected switches to dragging the selection with the left button,
// or back to the profile in use before.
func (r *Runner) dragSelected(L *lua.LState) int {
	p := r.checkProfiles(L)
	if L.CheckBool(1) {
		p.SetPickingStyle(binding.StyleDrag)
		p.SetPickingMode(binding.PickDragSelected)
	} else {
		p.RestorePredrag()
	}
	return 0
}

// bind binds an action name or script text to a mouse descriptor in the
// active profile.
func (r *Runner) bind(L *lua.LState) int {
	p := r.checkProfiles(L)
	desc, name := L.CheckString(1), L.CheckString(2)
	if !p.Bind(desc, name) {
		L.ArgError(1, fmt.Sprintf("bad mouse action %q", desc))
	}
	return 0
}

// unbind removes bindings. With no arguments every profile is reset to
// its built-in bindings.
func (r *Runner) unbind(L *lua.LState) int {
	p := r.checkProfiles(L)
	desc, name := L.OptString(1, ""), L.OptString(2, "")
	if _, ok := binding.ParseCode(desc); desc != "" && !ok {
		L.ArgError(1, fmt.Sprintf("bad mouse action %q", desc))
		return 0
	}
	p.Unbind(desc, name)
	return 0
}

// bindings lists the active bindings, one per line, optionally filtered
// by action name.
func (r *Runner) bindings(L *lua.LState) int {
	p := r.checkProfiles(L)
	L.Push(lua.LString(strings.Join(p.Info(L.OptString(1, "")), "\n")))
	return 1
}

// exportBindings returns the active profile as a YAML profile file.
func (r *Runner) exportBindings(L *lua.LState) int {
	var sb strings.Builder
	if err := r.checkProfiles(L).Export(&sb); err != nil {
		L.RaiseError("exportbindings: %v", err)
		return 0
	}
	L.Push(lua.LString(sb.String()))
	return 1
}
