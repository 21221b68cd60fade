package navigation

import (
	"context"
	"sync"

	"github.com/chewxy/math32"
	"github.com/kataras/golog"

	"github.com/dshills/molnav/internal/geom"
)

var logger = golog.Child("[navigation]")

// Factors are the derived perspective parameters, all in screen pixels
// except where noted.
type Factors struct {
	CameraDistance       float32
	ReferencePlaneOffset float32
	// ScalePixelsPerAngstrom converts model units to pixels.
	ScalePixelsPerAngstrom float32
	ModelRadiusPixels      float32
	// ModelCenterOffset is the distance from the camera to the rotation
	// centre.
	ModelCenterOffset float32
	ZoomPercent       float32
}

// Camera is the perspective camera of a viewer. It has a standard mode, in
// which the model rotates about a fixed centre in front of the camera, and a
// navigation mode, in which the camera flies through the model.
//
// Every exported method takes the camera's lock, so calls from the input
// pipeline, scripts and animations never interleave. The animator is called
// without the lock held.
type Camera struct {
	mu  sync.Mutex
	cfg Config

	width, height int
	pixelCount    float32

	modelCenter geom.Vec3
	radius      float32

	rotCenter      geom.Vec3
	rotation       geom.Mat3
	xform, inverse geom.Mat3

	translation    geom.Vec3
	rotationOffset geom.Vec3
	xFrac, yFrac   float32

	zoomSetting     float32
	zoomPercent     float32
	zoomRatio       float32
	prevZoomSetting float32
	zoomFactor      float32
	// entering marks the first recompute after the camera left standard
	// mode or was reset; the model centre offset is then derived from the
	// zoom.
	entering bool

	cameraDepth    float32
	cameraDistance float32
	rpo            float32
	sppa           float32
	mrp            float32
	mco            float32

	navOn      bool
	navMode    Mode
	navigating bool
	navCenter  geom.Vec3
	navOffset  geom.Vec3
	navShift   geom.Vec3
	navDepth   float32

	previous     [2]float32
	havePrevious bool

	nHits      int
	multiplier int

	notifiedNaN bool

	animator Animator
}

// NewCamera creates a camera in standard mode with an identity rotation
// and 100% zoom. It has no screen and no model until SetScreenSize and
// SetModel are called.
func NewCamera(cfg Config) *Camera {
	c := &Camera{
		cfg:         cfg.withDefaults(),
		rotation:    geom.Identity(),
		xFrac:       0.5,
		yFrac:       0.5,
		zoomSetting: 100,
		zoomPercent: 100,
		entering:    true,
		navMode:     ModeReset,
		multiplier:  1,
		pixelCount:  1,
	}
	c.cameraDepth = c.cfg.CameraDepth
	c.finalize()
	return c
}

// SetAnimator attaches the animator used for timed moves. Without one,
// timed moves complete instantly.
func (c *Camera) SetAnimator(a Animator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.animator = a
}

// Config returns the camera constants.
func (c *Camera) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetScreenSize sets the viewport in pixels. In navigation mode the
// navigation centre and its relative screen position are kept.
func (c *Camera) SetScreenSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keep *geom.Vec3
	var fx, fy float32
	if c.navOn && c.width > 0 && c.height > 0 {
		pt := c.navCenter
		keep = &pt
		fx = c.navOffset[0] / float32(c.width)
		fy = c.navOffset[1] / float32(c.height)
	}

	c.width, c.height = width, height
	if width <= 0 || height <= 0 {
		c.pixelCount = 1
	} else {
		c.translation = geom.V(float32(width)*c.xFrac, float32(height)*c.yFrac, 0)
		c.pixelCount = float32(max(width, height))
		if c.pixelCount > 2 {
			c.pixelCount -= 2
		}
	}
	c.finalize()

	if keep != nil {
		c.navCenter = *keep
		c.setNavigationOffset(Ptr(fx*float32(width)), Ptr(fy*float32(height)))
		c.navigateCenter(*keep)
	}
}

// ScreenSize returns the viewport size.
func (c *Camera) ScreenSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// SetModel sets the model's bounding centre and radius and makes the
// centre the rotation centre.
func (c *Camera) SetModel(center geom.Vec3, radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelCenter = center
	c.rotCenter = center
	c.radius = max(radius, 0)
	c.resetNavigationPoint()
	c.finalize()
}

// Home restores the default orientation: no rotation, 100% zoom, the model
// centred on screen. Navigation mode is kept but its point is reset.
func (c *Camera) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.home()
}

func (c *Camera) home() {
	c.rotation = geom.Identity()
	c.rotCenter = c.modelCenter
	c.zoomToPercent(100)
	c.zoomPercent = c.zoomSetting
	c.xFrac, c.yFrac = 0.5, 0.5
	c.translation = geom.V(float32(c.width)/2, float32(c.height)/2, 0)
	c.nHits, c.multiplier = 0, 1
	c.resetNavigationPoint()
	c.finalize()
}

// SetNavigationMode switches between navigation and standard mode. Either
// way the navigation point is reset.
func (c *Camera) SetNavigationMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navOn = on
	c.resetNavigationPoint()
	c.finalize()
}

// InNavigationMode reports whether the camera is in navigation mode.
func (c *Camera) InNavigationMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navOn
}

// IsNavigating reports whether a navigation key is being held.
func (c *Camera) IsNavigating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigating
}

func (c *Camera) resetNavigationPoint() {
	if c.navOn {
		c.navMode = ModeReset
	}
	c.entering = true
	c.zoomSetting = c.zoomPercent
}

// CalcCameraFactors recomputes the perspective factors from the current
// state. Calling it again without a state change leaves them unchanged.
func (c *Camera) CalcCameraFactors() Factors {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calcCameraFactors()
	return c.factors()
}

// Factors returns the current perspective factors.
func (c *Camera) Factors() Factors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.factors()
}

func (c *Camera) factors() Factors {
	return Factors{
		CameraDistance:         c.cameraDistance,
		ReferencePlaneOffset:   c.rpo,
		ScalePixelsPerAngstrom: c.sppa,
		ModelRadiusPixels:      c.mrp,
		ModelCenterOffset:      c.mco,
		ZoomPercent:            c.zoomPercent,
	}
}

func (c *Camera) calcCameraFactors() {
	spc := c.pixelCount
	c.cameraDistance = c.cameraDepth * spc
	c.rpo = c.cameraDistance + spc/2
	c.sppa = spc / c.cfg.VisualRange
	c.mrp = c.radius * c.sppa
	offset100 := 2 * c.radius / c.cfg.VisualRange * c.rpo

	if !c.navOn {
		c.entering = true
		c.mco = c.rpo
		if offset100 > 0 {
			c.sppa *= c.mco / offset100 * c.zoomPercent / 100
		}
		c.mrp = c.radius * c.sppa
		return
	}

	switch {
	case c.entering:
		if c.zoomPercent > c.cfg.MaxNavigationZoomPercent {
			c.zoomPercent = c.cfg.MaxNavigationZoomPercent
		}
		c.mco = offset100 * 100 / c.zoomPercent
		c.entering = false
	case c.prevZoomSetting != c.zoomSetting:
		if c.zoomRatio == 0 {
			c.mco = offset100 * 100 / c.zoomSetting
		} else {
			c.mco += (1 - c.zoomRatio) * c.rpo
		}
		c.navMode = ModeZoomed
	}
	c.prevZoomSetting = c.zoomSetting
	c.zoomFactor = c.mco / c.rpo
	if c.zoomFactor == 0 {
		c.zoomPercent = c.cfg.MaxNavigationZoomPercent
	} else {
		c.zoomPercent = offset100 / c.mco * 100
	}
}

// PerspectiveFactor returns the screen scale applied at depth z.
func (c *Camera) PerspectiveFactor(z float32) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.perspective(z)
}

func (c *Camera) perspective(z float32) float32 {
	if z <= 0 {
		return c.rpo
	}
	return c.rpo / z
}

// calcTransform builds the model-to-screen matrix: rotate about the
// rotation centre, scale to pixels with y and z flipped.
func (c *Camera) calcTransform() {
	s := c.sppa
	scale := geom.Mat3{s, 0, 0, 0, -s, 0, 0, 0, -s}
	c.xform = geom.Mul(scale, c.rotation)
	if s != 0 {
		inv := geom.Mat3{1 / s, 0, 0, 0, -1 / s, 0, 0, 0, -1 / s}
		c.inverse = geom.Mul(geom.Transpose(c.rotation), inv)
	}
}

// raw maps a model point to unprojected screen space.
func (c *Camera) raw(p geom.Vec3) geom.Vec3 {
	v := geom.MulVec(c.xform, geom.Sub(p, c.rotCenter))
	v[2] += c.mco
	return v
}

func (c *Camera) rawInverse(s geom.Vec3) geom.Vec3 {
	s[2] -= c.mco
	return geom.Add(c.rotCenter, geom.MulVec(c.inverse, s))
}

func (c *Camera) transform(p geom.Vec3) geom.Vec3 {
	return c.project(c.raw(p), c.navOn)
}

// project applies perspective and the screen offset to a raw point.
func (c *Camera) project(s geom.Vec3, nav bool) geom.Vec3 {
	z := s[2]
	switch {
	case math32.IsNaN(z) || math32.IsInf(z, 0):
		if !c.notifiedNaN {
			logger.Debugf("non-finite depth %v in transformed point", z)
			c.notifiedNaN = true
		}
		z = 1
	case z <= 0:
		z = 1
	}
	s[2] = z
	if nav {
		s[0] -= c.navShift[0]
		s[1] -= c.navShift[1]
	}
	f := c.perspective(z)
	s[0] *= f
	s[1] *= f
	if nav {
		s[0] += c.navOffset[0]
		s[1] += c.navOffset[1]
	} else {
		s[0] += c.rotationOffset[0]
		s[1] += c.rotationOffset[1]
	}
	return s
}

func (c *Camera) untransform(s geom.Vec3) geom.Vec3 {
	off := c.rotationOffset
	if c.navOn {
		off = c.navOffset
	}
	s[0] -= off[0]
	s[1] -= off[1]
	f := c.perspective(s[2])
	s[0] /= f
	s[1] /= f
	if c.navOn {
		s[0] += c.navShift[0]
		s[1] += c.navShift[1]
	}
	return c.rawInverse(s)
}

// TransformPoint maps a model point to screen pixels; z is the distance
// from the camera.
func (c *Camera) TransformPoint(p geom.Vec3) geom.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform(p)
}

// UnTransformPoint maps a screen point back to model coordinates.
func (c *Camera) UnTransformPoint(s geom.Vec3) geom.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.untransform(s)
}

// finalize recomputes everything derived from the camera state.
func (c *Camera) finalize() {
	c.notifiedNaN = false
	c.rotationOffset = c.translation
	c.zoomSetting = min(max(c.zoomSetting, MinZoomPercent), c.cfg.MaxZoomPercent)
	c.zoomPercent = c.zoomSetting
	c.calcCameraFactors()
	c.calcTransform()
	if c.navOn {
		c.calcNavigationPoint()
	}
}

func (c *Camera) depthPercent() float32 {
	if c.mrp == 0 {
		return 50
	}
	return 50 * (1 + (c.mco-c.rpo)/c.mrp)
}

// calcNavigationPoint applies the pending navigation mode and re-anchors
// the navigation centre, its screen offset and the rotation centre's
// screen position.
func (c *Camera) calcNavigationPoint() {
	c.calcCameraFactors()
	c.navDepth = c.depthPercent()

	step := Transition(c.navMode, Input{
		Navigating: c.navigating,
		Depth:      c.navDepth,
		TranslationUnchanged: c.havePrevious &&
			c.previous[0] == c.translation[0] && c.previous[1] == c.translation[1],
	})
	fx := step.Effects

	if fx.Has(EffectResetOffset) {
		c.navOffset = geom.V(float32(c.width)/2, float32(c.height)/2, c.rpo)
		c.entering = true
	}
	if fx.Has(EffectSyncRotationOffset) {
		c.rotationOffset = c.translation
	}
	if fx.Has(EffectAnchorRotation) {
		zNav := c.raw(c.navCenter)[2]
		zRot := c.raw(c.rotCenter)[2]
		c.mco = c.rpo + (zRot - zNav)
	}
	if fx.Has(EffectRecalcFactors) {
		c.calcCameraFactors()
		c.calcTransform()
	}
	if fx.Has(EffectNewCenter) {
		c.newNavigationCenter()
	}
	if fx.Has(EffectUntransformOffset) {
		c.navOffset[2] = c.rpo
		c.navCenter = c.untransform(c.navOffset)
	}

	c.navShift = c.raw(c.navCenter)
	c.translation = c.transform(c.rotCenter)
	c.rotationOffset = c.translation
	c.previous = [2]float32{c.translation[0], c.translation[1]}
	c.havePrevious = true
	off := c.transform(c.navCenter)
	off[2] = c.rpo
	c.navOffset = off
	c.navMode = step.Next
}

// newNavigationCenter finds the model point that, placed at the navigation
// offset on the reference plane, leaves the rotation centre where the
// standard projection puts it.
func (c *Camera) newNavigationCenter() {
	pt := c.project(c.raw(c.rotCenter), false)
	pt[0] -= c.navOffset[0]
	pt[1] -= c.navOffset[1]
	f := -c.perspective(pt[2])
	pt[0] /= f
	pt[1] /= f
	pt[2] = c.rpo
	c.navCenter = c.rawInverse(pt)
}

// Rotation returns the current rotation matrix.
func (c *Camera) Rotation() geom.Mat3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// RotationCenter returns the fixed rotation centre.
func (c *Camera) RotationCenter() geom.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotCenter
}

// SetRotationCenter moves the fixed rotation centre.
func (c *Camera) SetRotationCenter(p geom.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotCenter = p
	c.resetNavigationPoint()
	c.finalize()
}

// RotateXYBy rotates by dy degrees about the screen X axis, then dx
// degrees about the screen Y axis.
func (c *Camera) RotateXYBy(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = geom.Mul(geom.RotX(geom.Radians(dy)), c.rotation)
	c.rotation = geom.Mul(geom.RotY(geom.Radians(dx)), c.rotation)
	c.finalize()
}

// RotateZBy rotates by deg degrees about the line of sight.
func (c *Camera) RotateZBy(deg float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = geom.Mul(geom.RotZ(geom.Radians(deg)), c.rotation)
	c.finalize()
}

// RotateAxisAngle rotates by deg degrees about a screen-space axis.
func (c *Camera) RotateAxisAngle(axis geom.Vec3, deg float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = geom.Mul(geom.AxisAngle(axis, geom.Radians(deg)), c.rotation)
	c.finalize()
}

// TranslateXYBy moves the model by (dx, dy) pixels.
func (c *Camera) TranslateXYBy(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translation[0] += dx
	c.translation[1] += dy
	c.syncFractions()
	c.finalize()
}

// TranslateToPercent places the rotation centre at percent of the screen
// from the middle along axis 'x' or 'y'.
func (c *Camera) TranslateToPercent(axis rune, percent float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translateToPercent(axis, percent)
	c.finalize()
}

func (c *Camera) translateToPercent(axis rune, percent float32) {
	f := 0.5 + percent/100
	switch axis {
	case 'x', 'X':
		c.xFrac = f
		c.translation[0] = float32(c.width) * f
	case 'y', 'Y':
		c.yFrac = f
		c.translation[1] = float32(c.height) * f
	}
}

func (c *Camera) syncFractions() {
	if c.width > 0 {
		c.xFrac = c.translation[0] / float32(c.width)
	}
	if c.height > 0 {
		c.yFrac = c.translation[1] / float32(c.height)
	}
}

// TranslationPercent returns the rotation centre's screen offset from the
// middle, in percent of the screen size.
func (c *Camera) TranslationPercent() (x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translationPercent()
}

func (c *Camera) translationPercent() (x, y float32) {
	if c.width > 0 {
		x = (c.translation[0] - float32(c.width)/2) * 100 / float32(c.width)
	}
	if c.height > 0 {
		y = (c.translation[1] - float32(c.height)/2) * 100 / float32(c.height)
	}
	return x, y
}

// ZoomBy zooms by a pointer drag of pixels, clamped to ±20.
func (c *Camera) ZoomBy(pixels int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pixels = min(max(pixels, -20), 20)
	delta := float32(pixels) * c.zoomSetting / 50
	if delta == 0 {
		switch {
		case pixels > 0:
			delta = 1
		case pixels < 0:
			delta = -1
		}
	}
	c.zoomRatio = (delta + c.zoomSetting) / c.zoomSetting
	c.zoomSetting += delta
	c.finalize()
}

// ZoomToPercent sets the zoom.
func (c *Camera) ZoomToPercent(percent float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoomToPercent(percent)
	c.finalize()
}

func (c *Camera) zoomToPercent(percent float32) {
	c.zoomSetting = percent
	c.zoomRatio = 0
}

// ZoomByFactor multiplies the zoom. In navigation mode the camera moves
// along its line of sight instead of rescaling.
func (c *Camera) ZoomByFactor(f float32) {
	if f <= 0 || math32.IsNaN(f) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoomRatio = f
	c.zoomSetting *= f
	c.finalize()
}

// ZoomPercent returns the effective zoom.
func (c *Camera) ZoomPercent() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomPercent
}

// ZoomSetting returns the requested zoom.
func (c *Camera) ZoomSetting() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoomSetting
}

// Navigate moves the navigation centre to target, over seconds when
// positive.
func (c *Camera) Navigate(ctx context.Context, seconds float32, target geom.Vec3) Result {
	if a := c.timed(seconds); a != nil {
		return a.NavigateTo(ctx, seconds, Move{Center: &target})
	}
	c.NavigateCenter(target)
	return Result{}
}

// NavigateAxis turns the camera by deg degrees about a screen-space axis,
// over seconds when positive.
func (c *Camera) NavigateAxis(ctx context.Context, seconds float32, axis geom.Vec3, deg float32) Result {
	if deg == 0 {
		return Result{}
	}
	if a := c.timed(seconds); a != nil {
		return a.NavigateTo(ctx, seconds, Move{Axis: axis, Degrees: deg})
	}
	c.NavigateRotate(axis, deg)
	return Result{}
}

// NavigateDepth sets the navigation depth, over seconds when positive.
func (c *Camera) NavigateDepth(ctx context.Context, seconds, percent float32) Result {
	if a := c.timed(seconds); a != nil {
		return a.NavigateTo(ctx, seconds, Move{DepthPercent: &percent})
	}
	c.SetNavigationDepthPercent(percent)
	return Result{}
}

// NavTranslatePercent moves the navigation point to (x%, y%) of the
// screen from the middle, over seconds when positive.
func (c *Camera) NavTranslatePercent(ctx context.Context, seconds, x, y float32) Result {
	c.mu.Lock()
	c.navOffset = c.transform(c.navCenter)
	px := float32(c.width)*x/100 + float32(c.width)/2
	py := float32(c.height)*y/100 + float32(c.height)/2
	a := c.animator
	c.mu.Unlock()

	if seconds > 0 && a != nil {
		return a.NavigateTo(ctx, seconds, Move{XTrans: &px, YTrans: &py})
	}
	c.SetNavigationOffset(&px, &py)
	return Result{}
}

func (c *Camera) timed(seconds float32) Animator {
	if seconds <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animator
}

// NavigateCenter puts the navigation centre at p immediately.
func (c *Camera) NavigateCenter(p geom.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navigateCenter(p)
}

func (c *Camera) navigateCenter(p geom.Vec3) {
	c.navCenter = p
	c.navMode = ModeNewXYZ
	c.step()
}

// NavigateRotate turns the camera by deg degrees about a screen-space axis
// immediately, keeping the navigation centre in place.
func (c *Camera) NavigateRotate(axis geom.Vec3, deg float32) {
	if deg == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = geom.Mul(geom.AxisAngle(axis, geom.Radians(deg)), c.rotation)
	c.navMode = ModeNewXYZ
	c.step()
}

// SetNavigationOffset places the navigation point at screen pixel (x, y)
// immediately. A nil coordinate keeps its current value.
func (c *Camera) SetNavigationOffset(x, y *float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setNavigationOffset(x, y)
}

func (c *Camera) setNavigationOffset(x, y *float32) {
	c.navOffset = c.transform(c.navCenter)
	if x != nil {
		c.navOffset[0] = *x
	}
	if y != nil {
		c.navOffset[1] = *y
	}
	c.navMode = ModeNewXY
	c.step()
}

// step runs one explicit navigation recompute.
func (c *Camera) step() {
	c.navigating = true
	c.finalize()
	c.navigating = false
}

// SetNavigationDepthPercent places the camera at percent of the model's
// depth: 0 is the rear plane, 100 the front plane. The value is clamped to
// the configured bounds. It has no effect in standard mode.
func (c *Camera) SetNavigationDepthPercent(percent float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navOn {
		logger.Debugf("navigation depth %v ignored outside navigation mode", percent)
		return
	}
	percent = min(max(percent, c.cfg.MinDepthPercent), c.cfg.MaxDepthPercent)
	c.calcCameraFactors()
	c.mco = c.rpo - (1-percent/50)*c.mrp
	c.calcCameraFactors()
	c.navMode = ModeZoomed
	c.finalize()
}

// NavigationDepthPercent returns the navigation depth. A model with no
// radius is always at 50.
func (c *Camera) NavigationDepthPercent() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navOn {
		return c.depthPercent()
	}
	return c.navDepth
}

// NavigationCenter returns the model point the camera is navigating to.
func (c *Camera) NavigationCenter() geom.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navCenter
}

// NavigationOffset returns the navigation centre's screen position.
func (c *Camera) NavigationOffset() geom.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.navOffset = c.transform(c.navCenter)
	return c.navOffset
}

// NavigationOffsetPercent returns the navigation centre's screen offset
// from the middle in percent of the screen size.
func (c *Camera) NavigationOffsetPercent() (x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.navigationOffsetPercent()
}

func (c *Camera) navigationOffsetPercent() (x, y float32) {
	c.navOffset = c.transform(c.navCenter)
	if c.width == 0 || c.height == 0 {
		return 0, 0
	}
	w, h := float32(c.width), float32(c.height)
	return (c.navOffset[0] - w/2) * 100 / w, (c.navOffset[1] - h/2) * 100 / h
}
