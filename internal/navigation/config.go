package navigation

// Config holds the camera constants.
type Config struct {
	// CameraDepth is the camera distance in multiples of the screen size.
	CameraDepth float32
	// VisualRange is the model width, in Angstroms, that fills the screen.
	VisualRange float32
	// MaxZoomPercent caps the zoom setting.
	MaxZoomPercent float32
	// MaxNavigationZoomPercent caps the zoom when navigation mode is
	// entered.
	MaxNavigationZoomPercent float32
	// MinDepthPercent and MaxDepthPercent bound the navigation depth.
	MinDepthPercent float32
	MaxDepthPercent float32
	// Speed is the distance, in screen pixels, of one forward key step.
	Speed float32
}

// MinZoomPercent is the smallest zoom setting.
const MinZoomPercent = 5

// DefaultConfig returns the standard camera constants.
func DefaultConfig() Config {
	return Config{
		CameraDepth:              3,
		VisualRange:              5,
		MaxZoomPercent:           200000,
		MaxNavigationZoomPercent: 10000,
		MinDepthPercent:          0,
		MaxDepthPercent:          100,
		Speed:                    5,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CameraDepth <= 0 {
		c.CameraDepth = d.CameraDepth
	}
	if c.VisualRange <= 0 {
		c.VisualRange = d.VisualRange
	}
	if c.MaxZoomPercent <= 0 {
		c.MaxZoomPercent = d.MaxZoomPercent
	}
	if c.MaxNavigationZoomPercent <= 0 {
		c.MaxNavigationZoomPercent = d.MaxNavigationZoomPercent
	}
	if c.MaxDepthPercent <= c.MinDepthPercent {
		c.MinDepthPercent, c.MaxDepthPercent = d.MinDepthPercent, d.MaxDepthPercent
	}
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	return c
}
