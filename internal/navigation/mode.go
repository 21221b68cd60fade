package navigation

// Mode is the pending navigation update. A camera operation sets a mode
// and the next recompute applies it, after which the mode is None again.
type Mode int8

const (
	// ModeIgnore recentres like ModeNewXYZ; it is set by callers that have
	// already moved the navigation centre.
	ModeIgnore Mode = iota - 2
	// ModeZoomed means the zoom changed; the navigation centre is rederived.
	ModeZoomed
	// ModeNone means nothing is pending.
	ModeNone
	// ModeReset places the navigation point front and centre.
	ModeReset
	// ModeNewXY means the navigation offset moved on screen.
	ModeNewXY
	// ModeNewXYZ means the navigation centre moved in model space.
	ModeNewXYZ
	// ModeNewZ means the camera moved along its line of sight.
	ModeNewZ
)

var modeNames = map[Mode]string{
	ModeIgnore: "ignore",
	ModeZoomed: "zoomed",
	ModeNone:   "none",
	ModeReset:  "reset",
	ModeNewXY:  "newXY",
	ModeNewXYZ: "newXYZ",
	ModeNewZ:   "newZ",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Effect is a bit set of the recompute steps a mode calls for.
type Effect uint8

const (
	// EffectResetOffset puts the navigation offset at the screen centre on
	// the reference plane and restarts the zoom.
	EffectResetOffset Effect = 1 << iota
	// EffectRecalcFactors recomputes the camera factors and the transform.
	EffectRecalcFactors
	// EffectSyncRotationOffset copies the translation into the rotation
	// offset.
	EffectSyncRotationOffset
	// EffectNewCenter rederives the navigation centre from its offset.
	EffectNewCenter
	// EffectAnchorRotation moves the model so that the navigation centre
	// sits on the reference plane.
	EffectAnchorRotation
	// EffectUntransformOffset maps the offset back into model space to get
	// the navigation centre.
	EffectUntransformOffset
)

// Has reports whether e includes f.
func (e Effect) Has(f Effect) bool {
	return e&f != 0
}

// Input is what the transition needs to know about the camera.
type Input struct {
	// Navigating is true while an explicit navigation step is running; the
	// pending mode is then applied as is.
	Navigating bool
	// Depth is the current navigation depth in percent.
	Depth float32
	// TranslationUnchanged is true when the screen translation is the same
	// as at the previous recompute.
	TranslationUnchanged bool
}

// Step is the outcome of a transition.
type Step struct {
	Applied Mode
	Next    Mode
	Effects Effect
}

// Transition resolves the pending mode against in and returns the steps to
// run. Outside an explicit navigation step, a pending mode other than Reset
// is replaced: a pure rotation inside the model keeps the navigation centre
// fixed (NewXYZ), anything else rederives it (None).
func Transition(mode Mode, in Input) Step {
	if !in.Navigating && mode != ModeReset {
		if in.Depth > 0 && in.Depth < 100 && in.TranslationUnchanged && mode != ModeZoomed {
			mode = ModeNewXYZ
		} else {
			mode = ModeNone
		}
	}

	var fx Effect
	switch mode {
	case ModeReset:
		fx = EffectResetOffset | EffectRecalcFactors | EffectNewCenter
	case ModeNone, ModeZoomed:
		fx = EffectSyncRotationOffset | EffectNewCenter
	case ModeNewXY:
		fx = EffectNewCenter
	case ModeIgnore, ModeNewXYZ:
		fx = EffectAnchorRotation | EffectRecalcFactors
	case ModeNewZ:
		fx = EffectUntransformOffset
	}
	return Step{Applied: mode, Next: ModeNone, Effects: fx}
}
