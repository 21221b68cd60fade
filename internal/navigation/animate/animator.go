// Package animate runs timed camera moves and flights along splined paths.
//
// An Animator drives a camera one step at a time on the caller's goroutine,
// pacing the steps with a Clock. Each step applies its planned change to the
// camera whether or not the frame it requests gets drawn, so a slow display
// never changes where a move ends. A canceled context stops the animation
// between steps and leaves the camera where the last step put it.
package animate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/golog"

	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/navigation"
)

var logger = golog.Child("[animate]")

// Result reports how an animation ended.
type Result = navigation.Result

// Camera is the part of the navigation camera the animator drives.
type Camera interface {
	NavigateCenter(p geom.Vec3)
	NavigateRotate(axis geom.Vec3, deg float32)
	SetNavigationOffset(x, y *float32)
	SetNavigationDepthPercent(percent float32)
	NavigationCenter() geom.Vec3
	NavigationOffset() geom.Vec3
	NavigationDepthPercent() float32
	Rotation() geom.Mat3
}

// Config sets the animation frame rates.
type Config struct {
	// MoveFPS is the step rate of NavigateTo.
	MoveFPS int
	// PathFPS is the step rate of path flights.
	PathFPS int
}

// DefaultConfig returns 30 steps per second for moves and 10 for paths.
func DefaultConfig() Config {
	return Config{MoveFPS: 30, PathFPS: 10}
}

// Option configures an Animator.
type Option func(*Animator)

// WithFrameFunc sets a function called after every step, typically to
// request a repaint.
func WithFrameFunc(fn func()) Option {
	return func(a *Animator) {
		a.frame = fn
	}
}

// WithMotionFunc sets a function told when an animation starts and stops.
func WithMotionFunc(fn func(inMotion bool)) Option {
	return func(a *Animator) {
		a.motion = fn
	}
}

// Animator runs timed moves on a camera.
type Animator struct {
	cam    Camera
	clock  Clock
	cfg    Config
	frame  func()
	motion func(bool)
}

// New creates an animator for cam. A nil clock uses the wall clock.
func New(cam Camera, clock Clock, cfg Config, opts ...Option) *Animator {
	if clock == nil {
		clock = NewRealClock()
	}
	d := DefaultConfig()
	if cfg.MoveFPS <= 0 {
		cfg.MoveFPS = d.MoveFPS
	}
	if cfg.PathFPS <= 0 {
		cfg.PathFPS = d.PathFPS
	}
	a := &Animator{cam: cam, clock: clock, cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// pacer keeps steps on a fixed schedule, sleeping only when ahead of it.
type pacer struct {
	clock  Clock
	frame  time.Duration
	target time.Duration
}

func (a *Animator) newPacer(fps int) *pacer {
	return &pacer{clock: a.clock, frame: time.Second / time.Duration(fps), target: a.clock.Now()}
}

func (p *pacer) wait(ctx context.Context) error {
	p.target += p.frame
	if now := p.clock.Now(); now < p.target {
		return p.clock.Sleep(ctx, p.target-now)
	}
	return ctx.Err()
}

func (a *Animator) begin(kind string) Result {
	res := Result{RunID: uuid.New()}
	logger.Debugf("%s %s started", kind, res.RunID)
	if a.motion != nil {
		a.motion(true)
	}
	return res
}

func (a *Animator) end(kind string, res Result) Result {
	if a.motion != nil {
		a.motion(false)
	}
	if res.Canceled {
		logger.Debugf("%s %s canceled after %d steps", kind, res.RunID, res.Steps)
	}
	return res
}

func (a *Animator) stepDone(res *Result) {
	res.Steps++
	if a.frame != nil {
		a.frame()
	}
}

// NavigateTo moves the camera over seconds in int(seconds*MoveFPS) equal
// steps. Rotation and centre move by equal increments; translation and depth
// are interpolated linearly and set exactly at the end. A move too short for
// two steps is applied at once.
func (a *Animator) NavigateTo(ctx context.Context, seconds float32, m navigation.Move) Result {
	res := a.begin("move")
	a.move(ctx, seconds, m, &res)
	return a.end("move", res)
}

func (a *Animator) move(ctx context.Context, seconds float32, m navigation.Move, res *Result) {
	total := int(seconds * float32(a.cfg.MoveFPS))
	if total <= 1 {
		if m.Degrees != 0 {
			a.cam.NavigateRotate(m.Axis, m.Degrees)
		}
		if m.Center != nil {
			a.cam.NavigateCenter(*m.Center)
		}
		a.finish(m)
		a.stepDone(res)
		return
	}

	depthStart := a.cam.NavigationDepthPercent()
	offStart := a.cam.NavigationOffset()
	center := a.cam.NavigationCenter()
	var centerStep geom.Vec3
	if m.Center != nil {
		centerStep = geom.Scale(geom.Sub(*m.Center, center), 1/float32(total))
	}
	degreeStep := m.Degrees / float32(total)

	p := a.newPacer(a.cfg.MoveFPS)
	for i := 1; i <= total; i++ {
		if ctx.Err() != nil {
			res.Canceled = true
			return
		}
		f := float32(i) / float32(total)
		if m.Degrees != 0 {
			a.cam.NavigateRotate(m.Axis, degreeStep)
		}
		if m.Center != nil {
			center = geom.Add(center, centerStep)
			a.cam.NavigateCenter(center)
		}
		if m.XTrans != nil || m.YTrans != nil {
			a.cam.SetNavigationOffset(lerpPtr(offStart[0], m.XTrans, f), lerpPtr(offStart[1], m.YTrans, f))
		}
		if m.DepthPercent != nil {
			a.cam.SetNavigationDepthPercent(depthStart + (*m.DepthPercent-depthStart)*f)
		}
		a.stepDone(res)
		if err := p.wait(ctx); err != nil {
			res.Canceled = true
			return
		}
	}
	a.finish(m)
}

// finish sets the end translation and depth exactly.
func (a *Animator) finish(m navigation.Move) {
	if m.XTrans != nil || m.YTrans != nil {
		a.cam.SetNavigationOffset(m.XTrans, m.YTrans)
	}
	if m.DepthPercent != nil {
		a.cam.SetNavigationDepthPercent(*m.DepthPercent)
	}
}

func lerpPtr(start float32, end *float32, f float32) *float32 {
	if end == nil {
		return nil
	}
	v := start + (*end-start)*f
	return &v
}

// NavigatePath flies the navigation centre through path[start..end] along
// a Hermite spline, spending seconds on each segment (2 when not positive).
// Trailing nil entries are ignored; a nil entry inside the path repeats the
// point before it.
func (a *Animator) NavigatePath(ctx context.Context, seconds float32, path []*geom.Vec3, start, end int) Result {
	nSeg := min(len(path)-1, end)
	for nSeg > 0 && path[nSeg] == nil {
		nSeg--
	}
	if start < 0 || nSeg-start < 1 || path[start] == nil {
		return Result{RunID: uuid.New()}
	}
	pts := make([]geom.Vec3, 0, nSeg-start+1)
	for i := start; i <= nSeg; i++ {
		if path[i] == nil {
			pts = append(pts, pts[len(pts)-1])
			continue
		}
		pts = append(pts, *path[i])
	}
	return a.fly(ctx, seconds, pts, nil)
}

// NavigateGuided flies along pathGuide, where each entry is a point and a
// wing vector. At each step the camera looks along the path with the wing
// pointing left.
func (a *Animator) NavigateGuided(ctx context.Context, seconds float32, pathGuide [][2]geom.Vec3) Result {
	if len(pathGuide) < 2 {
		return Result{RunID: uuid.New()}
	}
	pts := make([]geom.Vec3, len(pathGuide))
	wings := make([]geom.Vec3, len(pathGuide))
	for i, pg := range pathGuide {
		pts[i], wings[i] = pg[0], pg[1]
	}
	return a.fly(ctx, seconds, pts, wings)
}

func (a *Animator) fly(ctx context.Context, seconds float32, pts, wings []geom.Vec3) Result {
	if seconds <= 0 {
		seconds = 2
	}
	per := max(int(10*seconds), 1)
	nSteps := (len(pts)-1)*per + 1
	points := spline(pts, per)
	var guides []geom.Vec3
	if wings != nil {
		guides = spline(wings, per)
	}

	res := a.begin("path")
	p := a.newPacer(a.cfg.PathFPS)
	for i := 0; i < nSteps; i++ {
		if ctx.Err() != nil {
			res.Canceled = true
			break
		}
		a.cam.NavigateCenter(points[i])
		if guides != nil {
			a.AlignZX(points[i], points[i+1], guides[i])
		}
		a.stepDone(&res)
		if err := p.wait(ctx); err != nil {
			res.Canceled = true
			break
		}
	}
	return a.end("path", res)
}

// AlignZX turns the camera so that it looks from pt0 towards pt1, then
// rolls it until wing, seen from pt0, points to the left of the screen.
func (a *Animator) AlignZX(pt0, pt1, wing geom.Vec3) {
	rot := a.cam.Rotation()
	forward := geom.Sub(geom.MulVec(rot, pt0), geom.MulVec(rot, pt1))
	z := geom.V(0, 0, 1)
	if angle := geom.Angle(forward, z); angle != 0 {
		a.cam.NavigateRotate(geom.Cross(forward, z), geom.Degrees(angle))
	}

	rot = a.cam.Rotation()
	side := geom.Sub(geom.MulVec(rot, geom.Add(wing, pt0)), geom.MulVec(rot, pt0))
	side[2] = 0
	angle := geom.Angle(side, geom.V(-1, 0, 0))
	if side[1] < 0 {
		angle = -angle
	}
	if angle != 0 {
		a.cam.NavigateRotate(z, geom.Degrees(angle))
	}
}
