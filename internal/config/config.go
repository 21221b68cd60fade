package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kataras/golog"

	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/navigation"
	"github.com/dshills/molnav/internal/navigation/animate"
)

var logger = golog.Child("[config]")

// Config is the complete settings file.
type Config struct {
	Input      InputSection      `toml:"input"`
	Hover      HoverSection      `toml:"hover"`
	Navigation NavigationSection `toml:"navigation"`
	Animation  AnimationSection  `toml:"animation"`
	Bindings   BindingsSection   `toml:"bindings"`
	Log        LogSection        `toml:"log"`
}

// InputSection holds the mouse settings of the resolver.
type InputSection struct {
	MaxClickDelay    Duration `toml:"max_click_delay"`
	XYRange          int      `toml:"xy_range"`
	DragFactor       float32  `toml:"drag_factor"`
	WheelFactor      float32  `toml:"wheel_factor"`
	SwipeFactor      float32  `toml:"swipe_factor"`
	SlideZoomPercent float32  `toml:"slide_zoom_percent"`
	AllowGestures    bool     `toml:"allow_gestures"`
	MeasuresEnabled  bool     `toml:"measures_enabled"`
	GestureCapacity  int      `toml:"gesture_capacity"`
}

// HoverSection configures the hover watcher. A zero delay disables
// hovering.
type HoverSection struct {
	Delay Duration `toml:"delay"`
}

// NavigationSection holds the camera constants.
type NavigationSection struct {
	CameraDepth              float32 `toml:"camera_depth"`
	VisualRange              float32 `toml:"visual_range"`
	MaxZoomPercent           float32 `toml:"max_zoom_percent"`
	MaxNavigationZoomPercent float32 `toml:"max_navigation_zoom_percent"`
	MinDepthPercent          float32 `toml:"min_depth_percent"`
	MaxDepthPercent          float32 `toml:"max_depth_percent"`
	Speed                    float32 `toml:"speed"`
}

// AnimationSection sets the animator frame rates.
type AnimationSection struct {
	MoveFPS int `toml:"move_fps"`
	PathFPS int `toml:"path_fps"`
}

// BindingsSection selects the active profile and an optional YAML file
// that replaces it.
type BindingsSection struct {
	Style   string `toml:"style"`
	Profile string `toml:"profile"`
}

// LogSection sets the golog level.
type LogSection struct {
	Level string `toml:"level"`
}

var logLevels = []string{"disable", "fatal", "error", "warn", "info", "debug"}

// Default returns the built-in settings.
func Default() Config {
	in := input.DefaultConfig()
	nav := navigation.DefaultConfig()
	anim := animate.DefaultConfig()
	return Config{
		Input: InputSection{
			MaxClickDelay:    Duration(in.MaxClickDelay),
			XYRange:          in.XYRange,
			DragFactor:       in.DragFactor,
			WheelFactor:      in.WheelFactor,
			SwipeFactor:      in.SwipeFactor,
			SlideZoomPercent: in.SlideZoomPercent,
			AllowGestures:    in.AllowGestures,
			MeasuresEnabled:  in.MeasuresEnabled,
			GestureCapacity:  in.GestureCapacity,
		},
		Hover: HoverSection{Delay: Duration(in.HoverDelay)},
		Navigation: NavigationSection{
			CameraDepth:              nav.CameraDepth,
			VisualRange:              nav.VisualRange,
			MaxZoomPercent:           nav.MaxZoomPercent,
			MaxNavigationZoomPercent: nav.MaxNavigationZoomPercent,
			MinDepthPercent:          nav.MinDepthPercent,
			MaxDepthPercent:          nav.MaxDepthPercent,
			Speed:                    nav.Speed,
		},
		Animation: AnimationSection{MoveFPS: anim.MoveFPS, PathFPS: anim.PathFPS},
		Bindings:  BindingsSection{Style: binding.StyleToggle.String()},
		Log:       LogSection{Level: "info"},
	}
}

// Validate checks every setting and returns all problems found, each
// wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	check(c.Input.MaxClickDelay > 0, "input.max_click_delay", "must be positive, got %s", c.Input.MaxClickDelay)
	check(c.Input.XYRange >= 0, "input.xy_range", "must not be negative, got %d", c.Input.XYRange)
	check(c.Input.DragFactor > 0, "input.drag_factor", "must be positive, got %g", c.Input.DragFactor)
	check(c.Input.WheelFactor > 1, "input.wheel_factor", "must be greater than 1, got %g", c.Input.WheelFactor)
	check(c.Input.SwipeFactor > 0, "input.swipe_factor", "must be positive, got %g", c.Input.SwipeFactor)
	check(c.Input.SlideZoomPercent > 0 && c.Input.SlideZoomPercent <= 100,
		"input.slide_zoom_percent", "must be in (0, 100], got %g", c.Input.SlideZoomPercent)
	check(c.Input.GestureCapacity >= 2, "input.gesture_capacity", "must be at least 2, got %d", c.Input.GestureCapacity)
	check(c.Hover.Delay >= 0, "hover.delay", "must not be negative, got %s", c.Hover.Delay)

	n := c.Navigation
	check(n.CameraDepth > 0, "navigation.camera_depth", "must be positive, got %g", n.CameraDepth)
	check(n.VisualRange > 0, "navigation.visual_range", "must be positive, got %g", n.VisualRange)
	check(n.MaxZoomPercent >= navigation.MinZoomPercent, "navigation.max_zoom_percent",
		"must be at least %d, got %g", navigation.MinZoomPercent, n.MaxZoomPercent)
	check(n.MaxNavigationZoomPercent >= navigation.MinZoomPercent, "navigation.max_navigation_zoom_percent",
		"must be at least %d, got %g", navigation.MinZoomPercent, n.MaxNavigationZoomPercent)
	check(n.MinDepthPercent < n.MaxDepthPercent, "navigation.min_depth_percent",
		"must be below max_depth_percent (%g), got %g", n.MaxDepthPercent, n.MinDepthPercent)
	check(n.Speed > 0, "navigation.speed", "must be positive, got %g", n.Speed)

	check(c.Animation.MoveFPS > 0, "animation.move_fps", "must be positive, got %d", c.Animation.MoveFPS)
	check(c.Animation.PathFPS > 0, "animation.path_fps", "must be positive, got %d", c.Animation.PathFPS)

	style := binding.PickingStyleFromName(c.Bindings.Style)
	check(style >= 0 && !style.IsMeasure(), "bindings.style", "unknown profile %q", c.Bindings.Style)

	level := strings.ToLower(c.Log.Level)
	known := false
	for _, l := range logLevels {
		known = known || l == level
	}
	check(known, "log.level", "unknown level %q", c.Log.Level)

	return errors.Join(errs...)
}

// InputConfig returns the resolver settings.
func (c Config) InputConfig() input.Config {
	return input.Config{
		MaxClickDelay:    time.Duration(c.Input.MaxClickDelay),
		XYRange:          c.Input.XYRange,
		DragFactor:       c.Input.DragFactor,
		WheelFactor:      c.Input.WheelFactor,
		SwipeFactor:      c.Input.SwipeFactor,
		SlideZoomPercent: c.Input.SlideZoomPercent,
		HoverDelay:       time.Duration(c.Hover.Delay),
		AllowGestures:    c.Input.AllowGestures,
		MeasuresEnabled:  c.Input.MeasuresEnabled,
		GestureCapacity:  c.Input.GestureCapacity,
	}
}

// NavigationConfig returns the camera constants.
func (c Config) NavigationConfig() navigation.Config {
	return navigation.Config(c.Navigation)
}

// AnimationConfig returns the animator frame rates.
func (c Config) AnimationConfig() animate.Config {
	return animate.Config{MoveFPS: c.Animation.MoveFPS, PathFPS: c.Animation.PathFPS}
}

// PickingStyle returns the selected binding profile, toggle when unknown.
func (c Config) PickingStyle() binding.PickingStyle {
	s := binding.PickingStyleFromName(c.Bindings.Style)
	if s < 0 || s.IsMeasure() {
		return binding.StyleToggle
	}
	return s
}

// ApplyLogLevel sets the global golog level.
func (c Config) ApplyLogLevel() {
	if c.Log.Level == "" {
		return
	}
	golog.SetLevel(strings.ToLower(c.Log.Level))
}

// Duration is a time.Duration written as a string such as "700ms".
type Duration time.Duration

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
