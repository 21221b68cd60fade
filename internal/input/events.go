package input

import (
	"context"

	"github.com/chewxy/math32"

	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/input/mouse"
)

func (r *Resolver) handleMove(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	r.mouse.Move(ev.X, ev.Y, ev.Modifiers, ev.Time)
	switch {
	case r.measuring != nil:
		r.traceMeasurement(ev.X, ev.Y)
	case r.isZoomArea(ev.X):
		r.motionRotateZoom(binding.NewCode(1, binding.Left), 0, 0, false)
	case r.viewer.Cursor() == CursorZoom:
		r.viewer.SetCursor(CursorDefault)
	}
	return 0
}

func (r *Resolver) handleWheel(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	cur := r.mouse.Current()
	r.mouse.Touch(cur.X, cur.Y, ev.Modifiers, ev.Time)
	code := binding.NewCode(0, ev.Modifiers)
	r.dragAction(code, cur.X, cur.Y, 0, ev.WheelDelta, ev.Time, EventWheel)
	return code
}

func (r *Resolver) handlePress(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	count := r.mouse.Press(ev.X, ev.Y, ev.Modifiers, ev.Time)
	code := binding.NewCode(count, ev.Modifiers)
	r.gesture.SetViewport(r.camera.ScreenSize())
	r.gesture.SetAction(code, ev.Time)
	r.pressedAtom = unknownAtom

	r.cancelScripts()
	r.runScripts(code, ev.X, ev.Y, 0, 0, ev.Time, EventPress)

	if a, ok := r.dragPickAction(code); ok {
		r.dragAtom = r.viewer.FindNearestAtom(ev.X, ev.Y)
		r.viewer.Pick(Pick{
			Atom:   r.dragAtom,
			X:      ev.X,
			Y:      ev.Y,
			Code:   code,
			Action: a,
			Mode:   r.profiles.PickingMode(),
		})
		return code
	}
	if r.isBound(code, binding.ActionPopupMenu) {
		r.viewer.PopupMenu(ev.X, ev.Y)
		return code
	}
	r.motionRotateZoom(code, 0, 0, true)
	return code
}

// unknownAtom marks the press atom as not yet looked up.
const unknownAtom = -2

// dragPickAction returns the atom-dragging action bound to code under the
// current picking mode.
func (r *Resolver) dragPickAction(code binding.Code) (binding.Action, bool) {
	var candidates []binding.Action
	switch r.profiles.PickingMode() {
	case binding.PickAssignAtom:
		candidates = []binding.Action{binding.ActionAssignNew}
	case binding.PickDragAtom:
		candidates = []binding.Action{binding.ActionDragAtom, binding.ActionDragZ}
	case binding.PickDragSelected, binding.PickDragMolecule:
		candidates = []binding.Action{binding.ActionDragAtom, binding.ActionRotateSelected, binding.ActionDragZ}
	case binding.PickDragMinimize:
		candidates = []binding.Action{binding.ActionDragMinimize, binding.ActionDragZ}
	case binding.PickDragMinimizeMolecule:
		candidates = []binding.Action{binding.ActionDragMinimizeMolecule, binding.ActionRotateSelected, binding.ActionDragZ}
	}
	for _, a := range candidates {
		if r.isBound(code, a) {
			return a, true
		}
	}
	return 0, false
}

func (r *Resolver) handleDrag(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	dx, dy := r.mouse.Drag(ev.X, ev.Y, ev.Modifiers, ev.Time)
	if r.profiles.PickingMode() != binding.PickAssignAtom {
		r.exitMeasurement()
	}
	code := binding.NewCode(r.mouse.PressCount(), ev.Modifiers)
	r.gesture.Add(code, ev.X, ev.Y, ev.Time)
	r.dragAction(code, ev.X, ev.Y, dx, dy, ev.Time, EventDrag)
	return code
}

// dragAction performs the first drag-type action bound to code. Wheel
// turns go through here too, with the notches in dy.
func (r *Resolver) dragAction(code binding.Code, x, y, dx, dy int, t int64, kind EventKind) {
	if r.runScripts(code, x, y, dx, dy, t, kind) {
		return
	}
	if r.dragAtom >= 0 {
		return
	}

	if r.isBound(code, binding.ActionTranslate) {
		r.camera.TranslateXYBy(float32(dx), float32(dy))
		return
	}
	if r.isBound(code, binding.ActionCenter) {
		if r.pressedAtom == unknownAtom {
			p := r.mouse.Pressed()
			r.pressedAtom = r.viewer.FindNearestAtom(p.X, p.Y)
		}
		if r.pressedAtom < 0 {
			r.camera.TranslateXYBy(float32(dx), float32(dy))
		} else {
			r.viewer.CenterAt(x, y, r.pressedAtom)
		}
		return
	}

	if r.motionRotateZoom(code, dx, dy, true) {
		if r.viewer.SlabEnabled() && r.isSlideZoom(code) {
			r.viewer.SlabDepthByPixels(dy)
		} else {
			r.camera.ZoomBy(dy)
		}
		return
	}

	switch {
	case r.isBound(code, binding.ActionRotate):
		r.camera.RotateXYBy(r.degrees(dx, true), r.degrees(dy, false))
	case r.isBound(code, binding.ActionRotateZorZoom):
		switch {
		case abs(dy) > 5*abs(dx):
			r.setMotion(CursorZoom)
			r.camera.ZoomBy(dy)
		case abs(dx) > 5*abs(dy):
			r.setMotion(CursorMove)
			r.camera.RotateZBy(float32(-dx))
		}
	case r.isBound(code, binding.ActionWheelZoom):
		r.zoomByFactor(dy)
	case r.isBound(code, binding.ActionRotateZ):
		r.setMotion(CursorMove)
		r.camera.RotateZBy(float32(-dx))
	case r.viewer.SlabEnabled():
		switch {
		case r.isBound(code, binding.ActionDepth):
			r.viewer.DepthByPixels(dy)
		case r.isBound(code, binding.ActionSlab):
			r.viewer.SlabByPixels(dy)
		case r.isBound(code, binding.ActionSlabAndDepth):
			r.viewer.SlabDepthByPixels(dy)
		}
	}
}

func (r *Resolver) handleRelease(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	kind := r.mouse.Release(ev.X, ev.Y, ev.Modifiers, ev.Time)
	r.viewer.SpinXYBy(0, 0, 0)
	r.viewer.SetInMotion(false)
	r.viewer.SetCursor(CursorDefault)
	code := binding.NewCode(r.mouse.PressCount(), ev.Modifiers)
	r.gesture.Add(code, ev.X, ev.Y, ev.Time)
	r.dragAtom = -1

	if kind == mouse.ReleaseDrag && r.runScripts(code, ev.X, ev.Y, 0, 0, ev.Time, EventRelease) {
		return code
	}
	if r.config.AllowGestures && r.isBound(code, binding.ActionSwipe) {
		if speed := r.gesture.ExitRate(); speed > 0 {
			r.viewer.SpinXYBy(r.gesture.DX(4, 2), r.gesture.DY(4, 2), speed*30*r.config.SwipeFactor)
			logger.Debugf("swipe %s speed %.3f", r.gesture, speed)
		}
	}
	return code
}

func (r *Resolver) handleClick(ev DeviceEvent) binding.Code {
	r.viewer.HoverOff()
	count := r.mouse.Click(ev.X, ev.Y, ev.Modifiers, ev.Time, ev.Count)
	mode := r.profiles.PickingMode()
	if mode != binding.PickSelectAtom && r.isBound(binding.NewCode(binding.CountDown, ev.Modifiers), binding.ActionSelectAndDrag) {
		return 0
	}
	code := binding.NewCode(count, ev.Modifiers)
	r.runScripts(code, ev.X, ev.Y, 0, 0, ev.Time, EventClick)

	atom := r.viewer.FindNearestAtom(ev.X, ev.Y)
	pick := Pick{Atom: atom, X: ev.X, Y: ev.Y, Code: code, Mode: mode}

	if r.isBound(code, binding.ActionStopMotion) {
		r.cancelScripts()
		r.viewer.StopMotion()
	}
	if r.camera.InNavigationMode() && mode == binding.PickNavigate && r.isBound(code, binding.ActionPickNavigate) {
		w, h := r.camera.ScreenSize()
		if w > 0 && h > 0 {
			x := float32(ev.X)*100/float32(w) - 50
			y := float32(ev.Y)*100/float32(h) - 50
			r.camera.NavTranslatePercent(context.Background(), 0, x, y)
		}
		return code
	}
	if r.measuring != nil && mode != binding.PickAssignAtom && r.isBound(code, binding.ActionPickMeasure) {
		pick.Action = binding.ActionPickMeasure
		r.viewer.Pick(pick)
		if r.addToMeasurement(atom) == 4 {
			r.toggleMeasurement()
		}
		return code
	}
	if r.isBound(code, binding.ActionSetMeasure) {
		if r.measuring != nil {
			r.addToMeasurement(atom)
			r.toggleMeasurement()
		} else if r.config.MeasuresEnabled && atom >= 0 {
			r.enterMeasurement(atom)
		}
		pick.Action = binding.ActionSetMeasure
		r.viewer.Pick(pick)
		return code
	}
	if a, ok := r.selectAction(code); ok {
		pick.Action = a
		r.viewer.Pick(pick)
		return code
	}
	if r.isBound(code, binding.ActionReset) && atom < 0 {
		r.camera.Home()
	}
	return code
}

// motionRotateZoom sets the cursor for a rotate or zoom gesture and
// reports whether the gesture zooms.
func (r *Resolver) motionRotateZoom(code binding.Code, dx, dy int, inMotion bool) bool {
	slide := r.isSlideZoom(code)
	rotate := r.isBound(code, binding.ActionRotate)
	rotateZorZoom := r.isBound(code, binding.ActionRotateZorZoom)
	if !slide && !rotate && !rotateZorZoom {
		return false
	}
	zoom := rotateZorZoom && (dx == 0 || abs(dy) > 5*abs(dx))
	cursor := CursorDefault
	switch {
	case zoom || r.isZoomArea(r.mouse.Moved().X) || r.isBound(code, binding.ActionWheelZoom):
		cursor = CursorZoom
	case rotate || rotateZorZoom:
		cursor = CursorMove
	}
	if r.viewer.Cursor() != CursorWait {
		r.viewer.SetCursor(cursor)
	}
	if inMotion {
		r.viewer.SetInMotion(true)
	}
	return zoom || slide
}

func (r *Resolver) setMotion(c Cursor) {
	if r.viewer.Cursor() != CursorWait {
		r.viewer.SetCursor(c)
	}
	r.viewer.SetInMotion(true)
}

func (r *Resolver) isSlideZoom(code binding.Code) bool {
	return r.isBound(code, binding.ActionSlideZoom) && r.isZoomArea(r.mouse.Pressed().X)
}

// isZoomArea reports whether x lies in the slide-zoom strip.
func (r *Resolver) isZoomArea(x int) bool {
	w, _ := r.camera.ScreenSize()
	return float32(x) > float32(w)*r.config.SlideZoomPercent/100
}

// degrees converts a drag of delta pixels along the width (or height)
// into a rotation angle. Dimensions above 500 pixels count as 500.
func (r *Resolver) degrees(delta int, horizontal bool) float32 {
	w, h := r.camera.ScreenSize()
	dim := h
	if horizontal {
		dim = w
	}
	dim = min(dim, 500)
	if dim <= 0 {
		return 0
	}
	return float32(delta) / float32(dim) * 180 * r.config.DragFactor
}

func (r *Resolver) zoomByFactor(notches int) {
	if notches == 0 {
		return
	}
	r.setMotion(CursorZoom)
	r.camera.ZoomByFactor(math32.Pow(r.config.WheelFactor, float32(notches)))
	r.viewer.SetInMotion(false)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
