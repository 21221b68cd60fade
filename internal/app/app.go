// Package app wires the interaction pipeline into a runnable viewer: a
// navigation camera with its animator, the binding profiles and input
// resolver, the Lua script runner, the settings watcher and a terminal
// front end showing a small demo molecule.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kataras/golog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/molnav/internal/config"
	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/key"
	"github.com/dshills/molnav/internal/navigation"
	"github.com/dshills/molnav/internal/navigation/animate"
	"github.com/dshills/molnav/internal/platform/terminal"
	"github.com/dshills/molnav/internal/script"
)

var logger = golog.Child("[app]")

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the settings file. Empty uses defaults.
	ConfigPath string

	// LogLevel overrides the level from the settings file.
	LogLevel string

	// Watch reloads the settings and binding profile when they change.
	Watch bool

	// Headless runs without a terminal; only scripts and the watcher
	// drive the camera.
	Headless bool

	// Screen replaces the process's terminal, e.g. with a simulation
	// screen.
	Screen tcell.Screen

	// FrameRate is how often the screen is redrawn. Default: 30
	FrameRate int

	// Atoms is the model to show. Default: Benzene
	Atoms []Atom
}

// Application owns one viewer and its input pipeline.
type Application struct {
	mu  sync.Mutex
	cfg config.Config
	// customProfile is set while a profile file replaces the built-in
	// table of the current style.
	customProfile bool

	opts     Options
	loader   *config.Loader
	camera   *navigation.Camera
	animator *animate.Animator
	profiles *binding.Profiles
	resolver *input.Resolver
	runner   *script.Runner
	scripts  *script.Queue
	scene    *Scene
	term     *terminal.Terminal
	watcher  *config.Watcher

	running   atomic.Bool
	redraw    chan struct{}
	ready     chan struct{}
	readyOnce sync.Once
}

// New creates an application and all of its components.
func New(opts Options) (*Application, error) {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	if opts.Atoms == nil {
		opts.Atoms = Benzene()
	}
	app := &Application{
		opts:   opts,
		loader: config.NewLoader(),
		redraw: make(chan struct{}, 1),
		ready:  make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Settings
	cfg := config.Default()
	if app.opts.ConfigPath != "" {
		var err error
		cfg, err = app.loader.LoadOrDefault(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	cfg.ApplyLogLevel()
	app.cfg = cfg

	// 2. Camera, scene and animator
	app.camera = navigation.NewCamera(cfg.NavigationConfig())
	app.camera.SetScreenSize(80*8, 24*16)
	app.scene = NewScene(app.camera, app.opts.Atoms)
	app.animator = animate.New(app.camera, nil, cfg.AnimationConfig(),
		animate.WithFrameFunc(app.requestRedraw),
		animate.WithMotionFunc(app.scene.SetInMotion))
	app.camera.SetAnimator(app.animator)

	// 3. Binding profiles
	app.profiles = binding.NewProfiles()
	app.profiles.SetPickingStyle(cfg.PickingStyle())
	if cfg.Bindings.Profile != "" {
		if err := app.installProfile(cfg.Bindings.Profile); err != nil {
			return &InitError{Component: "bindings", Err: err}
		}
	}

	// 4. Scripts and resolver. Script bindings run on the queue's
	// goroutine.
	app.runner = script.NewRunner(app.camera,
		script.WithOutput(app.scene),
		script.WithProfiles(app.profiles),
		script.WithAnimator(app.animator))
	app.scripts = script.NewQueue(app.runner, 0)
	app.resolver = input.New(cfg.InputConfig(), app.scene, app.camera,
		input.WithProfiles(app.profiles),
		input.WithScriptRunner(app.scripts))

	// 5. Settings watcher
	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.applyReload, config.WithLoader(app.loader))
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		if err := w.Watch(cfg); err != nil {
			_ = w.Close()
			return &InitError{Component: "watcher", Err: err}
		}
		app.watcher = w
	}

	// 6. Terminal
	if !app.opts.Headless {
		termOpts := []terminal.Option{
			terminal.WithRuneFunc(app.handleRune),
			terminal.WithResizeFunc(app.resize),
		}
		if app.opts.Screen != nil {
			app.term = terminal.NewWithScreen(app.opts.Screen, termOpts...)
		} else {
			t, err := terminal.New(termOpts...)
			if err != nil {
				return &InitError{Component: "terminal", Err: err}
			}
			app.term = t
		}
	}
	return nil
}

func (app *Application) installProfile(path string) error {
	table, err := app.loader.LoadProfile(path)
	if err != nil {
		return err
	}
	if err := app.profiles.Replace(table); err != nil {
		return err
	}
	app.customProfile = true
	return nil
}

// applyReload installs reloaded settings. Camera constants and frame
// rates are fixed at start; everything the resolver reads takes effect at
// once.
func (app *Application) applyReload(cfg config.Config, profile *binding.Table) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	cfg.ApplyLogLevel()
	app.resolver.SetConfig(cfg.InputConfig())

	style := cfg.PickingStyle()
	if style != app.cfg.PickingStyle() {
		app.profiles.SetPickingStyle(style)
	}
	switch {
	case profile != nil:
		if err := app.profiles.Replace(profile); err != nil {
			logger.Warnf("profile %q not installed: %v", profile.Name(), err)
		} else {
			app.customProfile = true
		}
	case app.customProfile:
		// The profile file was dropped from the settings.
		if err := app.profiles.Replace(binding.NewProfile(style)); err == nil {
			app.customProfile = false
		}
	}

	if cfg.Navigation != app.cfg.Navigation || cfg.Animation != app.cfg.Animation {
		logger.Infof("camera and animation settings apply after a restart")
	}
	app.cfg = cfg
	app.requestRedraw()
}

// Settings returns the settings in effect.
func (app *Application) Settings() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// handleRune handles the character keys of the demo. It returns false
// to quit.
func (app *Application) handleRune(r rune, _ key.Modifier) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		app.camera.Home()
	case 'n':
		app.camera.SetNavigationMode(!app.camera.InNavigationMode())
	case 's':
		app.scene.SetSlabEnabled(!app.scene.SlabEnabled())
	case 'p':
		next := (app.profiles.PickingStyle() + 1) % binding.StyleMeasure
		app.profiles.SetPickingStyle(next)
		app.mu.Lock()
		app.customProfile = false
		app.mu.Unlock()
	case 'm':
		if err := app.scripts.Run("print(orientation())"); err != nil {
			logger.Warnf("orientation: %v", err)
		}
	}
	app.requestRedraw()
	return true
}

func (app *Application) resize(width, height int) {
	app.camera.SetScreenSize(width, height)
	app.requestRedraw()
}

func (app *Application) requestRedraw() {
	select {
	case app.redraw <- struct{}{}:
	default:
	}
}

// Ready is closed once the first Run has set up the terminal.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// Run starts the hover watcher, the script queue, the settings watcher,
// the frame loop and, unless headless, the terminal. It blocks until ctx is done or the user
// quits.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.term != nil {
		if err := app.term.Init(); err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		defer app.term.Shutdown()
	}

	g, ctx := errgroup.WithContext(ctx)
	app.resolver.StartHover(ctx)
	defer app.resolver.HoverWatcher().Stop()

	if app.term != nil {
		g.Go(func() error {
			if err := app.term.Run(ctx, app.resolver); err != nil {
				return err
			}
			return ErrQuit
		})
	}
	g.Go(func() error {
		return app.scripts.Serve(ctx)
	})
	if app.watcher != nil {
		g.Go(func() error {
			return app.watcher.Run(ctx)
		})
	}
	g.Go(func() error {
		return app.frameLoop(ctx)
	})
	app.readyOnce.Do(func() { close(app.ready) })

	err := g.Wait()
	app.logSummary()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frameLoop advances spins and redraws the terminal when something
// changed.
func (app *Application) frameLoop(ctx context.Context) error {
	frame := time.Second / time.Duration(app.opts.FrameRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	app.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-app.redraw:
			app.draw()
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if app.scene.IsSpinning() || app.scene.InMotion() {
				app.scene.advance(dt)
				app.draw()
			}
		}
	}
}

// slowEvent is the handling time above which input is reported as
// unhealthy.
const slowEvent = 50 * time.Millisecond

func (app *Application) logSummary() {
	m := app.resolver.Metrics()
	snap := m.Snapshot()
	logger.Debugf("input: %d events, %d keys, %d actions, %d scripts, p99 %s",
		snap.EventsTotal, snap.KeyEventsTotal, snap.ActionsTotal, snap.ScriptsTotal, snap.P99Latency)
	logger.Debugf("scripts: %d run, %d failed, %d dropped",
		app.scripts.Completed(), app.scripts.Failures(), app.scripts.Dropped())
	if health := m.HealthCheck(slowEvent); !health.Healthy {
		logger.Warnf("input: %s (%d script errors, peak %s)", health.Message, health.ScriptErrors, health.PeakLatency)
	}
	if app.watcher != nil {
		logger.Debugf("config: %d reloads, %d failures", app.watcher.Reloads(), app.watcher.Failures())
	}
}

func (app *Application) draw() {
	if app.term == nil {
		return
	}
	lines := app.scene.Lines()
	lines = append(lines, "", "profile "+app.profiles.Name()+"  [q]uit [h]ome [n]avigate [s]lab [p]rofile [m]oveto")
	app.term.Draw(lines)
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Close releases the resolver, the script queue and state, and the
// watcher.
func (app *Application) Close() {
	if app.resolver != nil {
		app.resolver.Close()
	}
	if app.scripts != nil {
		app.scripts.Close()
	}
	if app.runner != nil {
		_ = app.runner.Close()
	}
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
}

// Camera returns the navigation camera.
func (app *Application) Camera() *navigation.Camera {
	return app.camera
}

// Scene returns the viewer.
func (app *Application) Scene() *Scene {
	return app.scene
}

// Resolver returns the input resolver.
func (app *Application) Resolver() *input.Resolver {
	return app.resolver
}

// Profiles returns the binding profiles.
func (app *Application) Profiles() *binding.Profiles {
	return app.profiles
}

// Runner returns the script runner. Its Run executes in place; use
// Scripts to queue.
func (app *Application) Runner() *script.Runner {
	return app.runner
}

// Scripts returns the queue that script bindings run on.
func (app *Application) Scripts() *script.Queue {
	return app.scripts
}
