package input

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/golog"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/gesture"
	"github.com/dshills/molnav/internal/input/mouse"
)

var logger = golog.Child("[input]")

// Config configures a resolver.
type Config struct {
	// MaxClickDelay is the longest gap between clicks of one multi-click.
	// Default: 700ms
	MaxClickDelay time.Duration

	// XYRange is how far, per axis, the pointer may move between clicks
	// of a multi-click and still count as the same spot.
	XYRange int

	// DragFactor scales rotation by mouse drags. Default: 1
	DragFactor float32

	// WheelFactor is the zoom factor of one wheel notch. Default: 1.15
	WheelFactor float32

	// SwipeFactor scales the spin speed of a swipe. Default: 1
	SwipeFactor float32

	// SlideZoomPercent is where the slide-zoom strip along the right edge
	// of the window starts, in percent of the width. Default: 98
	SlideZoomPercent float32

	// HoverDelay is how long the pointer must rest before a hover fires.
	// Zero disables hovering. Default: 500ms
	HoverDelay time.Duration

	// AllowGestures enables swipes. Default: true
	AllowGestures bool

	// MeasuresEnabled lets a double click start a measurement.
	// Default: true
	MeasuresEnabled bool

	// GestureCapacity is the number of drag samples kept. Default: 20
	GestureCapacity int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxClickDelay:    700 * time.Millisecond,
		DragFactor:       1,
		WheelFactor:      1.15,
		SwipeFactor:      1,
		SlideZoomPercent: 98,
		HoverDelay:       500 * time.Millisecond,
		AllowGestures:    true,
		MeasuresEnabled:  true,
		GestureCapacity:  gesture.DefaultCapacity,
	}
}

// Hook allows interception of pointer events.
type Hook interface {
	// PreEvent is called before an event is resolved.
	// Return true to consume the event.
	PreEvent(ev *DeviceEvent) bool

	// PostEvent is called with the entry the event resolved to.
	PostEvent(ev DeviceEvent, e binding.Entry, ok bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProfiles sets the binding profiles instead of a fresh set.
func WithProfiles(p *binding.Profiles) Option {
	return func(r *Resolver) {
		r.profiles = p
	}
}

// WithScriptRunner sets the runner for script bindings. Without one,
// script bindings are skipped.
func WithScriptRunner(s ScriptRunner) Option {
	return func(r *Resolver) {
		r.scripts = s
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithNow sets the millisecond clock that event times are compared
// against when deciding whether the pointer has rested.
func WithNow(now func() int64) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// Resolver turns device events into viewer actions for one viewer.
//
// It owns the viewer's binding profiles, click debouncer and gesture
// tracker. HandleEvent runs synchronously on the event goroutine; the
// resolver's state is guarded by a mutex so that the hover watcher and
// configuration reloads can read it safely.
type Resolver struct {
	mu sync.Mutex

	id       uuid.UUID
	config   Config
	viewer   Viewer
	camera   Camera
	scripts  ScriptRunner
	profiles *binding.Profiles
	mouse    *mouse.Debouncer
	gesture  *gesture.Tracker
	hover    *HoverWatcher
	metrics  *Metrics
	hooks    []Hook
	now      func() int64

	// inFlight is set while a key is handled or a script binding runs.
	inFlight atomic.Bool
	// pending holds expanded script texts waiting for dispatch.
	pending []string

	pressedAtom int
	dragAtom    int
	measuring   []int
	closed      bool
}

// New creates a resolver for one viewer.
func New(config Config, viewer Viewer, camera Camera, opts ...Option) *Resolver {
	d := DefaultConfig()
	if config.MaxClickDelay <= 0 {
		config.MaxClickDelay = d.MaxClickDelay
	}
	if config.DragFactor == 0 {
		config.DragFactor = d.DragFactor
	}
	if config.WheelFactor <= 0 {
		config.WheelFactor = d.WheelFactor
	}
	if config.SwipeFactor == 0 {
		config.SwipeFactor = d.SwipeFactor
	}
	if config.SlideZoomPercent <= 0 {
		config.SlideZoomPercent = d.SlideZoomPercent
	}

	r := &Resolver{
		id:     uuid.New(),
		config: config,
		viewer: viewer,
		camera: camera,
		mouse: mouse.NewDebouncer(mouse.Config{
			MaxClickDelay: config.MaxClickDelay,
			Tolerance:     config.XYRange,
		}),
		gesture:  gesture.NewTracker(config.GestureCapacity),
		now:      func() int64 { return time.Now().UnixMilli() },
		dragAtom: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.profiles == nil {
		r.profiles = binding.NewProfiles()
	}
	if r.metrics == nil {
		r.metrics = NewMetrics()
	}
	r.hover = NewHoverWatcher(config.HoverDelay, r.hoverProbe)
	logger.Debugf("resolver %s created with profile %s", r.id, r.profiles.Name())
	return r
}

// ID returns the resolver's unique id.
func (r *Resolver) ID() uuid.UUID {
	return r.id
}

// Profiles returns the binding profiles the resolver reads.
func (r *Resolver) Profiles() *binding.Profiles {
	return r.profiles
}

// Metrics returns the metrics collector.
func (r *Resolver) Metrics() *Metrics {
	return r.metrics
}

// HoverWatcher returns the resolver's hover watcher.
func (r *Resolver) HoverWatcher() *HoverWatcher {
	return r.hover
}

// StartHover starts watching for the pointer to rest over an atom. The
// pointer must move before the first hover can fire.
func (r *Resolver) StartHover(ctx context.Context) {
	r.mouse.ResetCurrentTime()
	r.hover.Start(ctx)
}

// Config returns the resolver's configuration.
func (r *Resolver) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

// SetConfig replaces the mouse factors, slide-zoom strip, hover delay and
// gesture switches. Click timing and the gesture ring keep the values the
// resolver was created with.
func (r *Resolver) SetConfig(config Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	config.MaxClickDelay = r.config.MaxClickDelay
	config.XYRange = r.config.XYRange
	config.GestureCapacity = r.config.GestureCapacity
	if config.DragFactor == 0 {
		config.DragFactor = r.config.DragFactor
	}
	if config.WheelFactor <= 0 {
		config.WheelFactor = r.config.WheelFactor
	}
	if config.SwipeFactor == 0 {
		config.SwipeFactor = r.config.SwipeFactor
	}
	if config.SlideZoomPercent <= 0 {
		config.SlideZoomPercent = r.config.SlideZoomPercent
	}
	r.config = config
	r.hover.SetDelay(config.HoverDelay)
}

// HandleEvent resolves ev against the active bindings, performs the
// resulting action and returns the entry the event's code resolved to.
// Events that resolve to nothing are ignored. Script bindings are handed
// to the script runner after the event is resolved, outside the
// resolver's lock.
func (r *Resolver) HandleEvent(ev DeviceEvent) (binding.Entry, bool) {
	start := time.Now()
	e, ok, scripts := r.resolve(ev)
	r.dispatch(scripts)
	r.metrics.RecordEvent(ev.Kind, time.Since(start))
	if ok {
		r.metrics.RecordAction()
	}
	return e, ok
}

func (r *Resolver) resolve(ev DeviceEvent) (binding.Entry, bool, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return binding.Entry{}, false, nil
	}
	for _, h := range r.hooks {
		if h.PreEvent(&ev) {
			r.metrics.RecordHookConsumption()
			return binding.Entry{}, false, nil
		}
	}

	var code binding.Code
	switch ev.Kind {
	case EventMove:
		code = r.handleMove(ev)
	case EventWheel:
		code = r.handleWheel(ev)
	case EventPress:
		code = r.handlePress(ev)
	case EventDrag:
		code = r.handleDrag(ev)
	case EventRelease:
		code = r.handleRelease(ev)
	case EventClick:
		code = r.handleClick(ev)
	default:
		logger.Debugf("ignoring event kind %d", ev.Kind)
	}

	e, ok := binding.Entry{}, false
	if code != 0 {
		e, ok = r.lookup(code)
	}
	for _, h := range r.hooks {
		h.PostEvent(ev, e, ok)
	}
	return e, ok, r.takePending()
}

// Lookup resolves code against the active bindings and the built-in
// defaults.
func (r *Resolver) Lookup(code binding.Code) (binding.Entry, bool) {
	return r.lookup(code)
}

func (r *Resolver) lookup(code binding.Code) (binding.Entry, bool) {
	if e, ok := r.profiles.Lookup(code); ok {
		return e, true
	}
	if a, ok := builtinAction(code); ok {
		return binding.Semantic(a), true
	}
	return binding.Entry{}, false
}

// builtinAction is the action a code gets when the active table binds
// nothing to it: a left drag rotates, a wheel zooms, and ctrl-alt-left or
// a double middle drag translates.
func builtinAction(code binding.Code) (binding.Action, bool) {
	mods := code.Modifiers()
	switch {
	case mods == binding.Wheel:
		return binding.ActionWheelZoom, true
	case mods == binding.Left:
		return binding.ActionRotate, true
	case mods == binding.Ctrl|binding.Alt|binding.Left:
		return binding.ActionTranslate, true
	case mods == binding.Middle && code.ClickCount() == 2:
		return binding.ActionTranslate, true
	}
	return 0, false
}

// isBound reports whether a is bound to code, counting a built-in default
// only when the table has nothing for code.
func (r *Resolver) isBound(code binding.Code, a binding.Action) bool {
	if r.profiles.IsBound(code, a) {
		return true
	}
	if r.profiles.Has(code) {
		return false
	}
	b, ok := builtinAction(code)
	return ok && b == a
}

func (r *Resolver) isSelectAction(code binding.Code) bool {
	_, ok := r.selectAction(code)
	return ok
}

// selectAction returns the first selection or pick action bound to code.
func (r *Resolver) selectAction(code binding.Code) (binding.Action, bool) {
	for _, a := range []binding.Action{
		binding.ActionSelect,
		binding.ActionSelectToggle,
		binding.ActionSelectAndNot,
		binding.ActionSelectOr,
		binding.ActionSelectToggleExtended,
		binding.ActionPickAtom,
		binding.ActionPickPoint,
	} {
		if r.isBound(code, a) {
			return a, true
		}
	}
	return 0, false
}

// AddHook adds an event hook.
func (r *Resolver) AddHook(hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// RemoveHook removes an event hook.
func (r *Resolver) RemoveHook(hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.hooks {
		if h == hook {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return
		}
	}
}

// Close stops the hover watcher; later events are ignored.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.hover.Stop()
}

// IsClosed returns true if the resolver has been closed.
func (r *Resolver) IsClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
