package binding

import "fmt"

// Action is a semantic viewer action that a mouse gesture can be bound to.
type Action uint8

const (
	ActionCenter Action = iota
	ActionTranslate
	ActionRotate
	ActionRotateZ
	ActionRotateZorZoom
	ActionWheelZoom
	ActionSlideZoom
	ActionNavTranslate
	ActionSwipe
	ActionSpinDrawObjectCW
	ActionSpinDrawObjectCCW
	ActionSlab
	ActionDepth
	ActionSlabAndDepth
	ActionPopupMenu
	ActionClickFrank
	ActionSelect
	ActionSelectNone
	ActionSelectToggle
	ActionSelectAndNot
	ActionSelectOr
	ActionSelectToggleExtended
	ActionDragSelected
	ActionSelectAndDrag
	ActionDragZ
	ActionRotateSelected
	ActionRotateBranch
	ActionDragAtom
	ActionDragMinimize
	ActionDragMinimizeMolecule
	ActionDragLabel
	ActionDragDrawPoint
	ActionDragDrawObject
	ActionPickAtom
	ActionPickPoint
	ActionPickLabel
	ActionPickMeasure
	ActionSetMeasure
	ActionPickIsosurface
	ActionPickNavigate
	ActionDeleteAtom
	ActionDeleteBond
	ActionConnectAtoms
	ActionAssignNew
	ActionReset
	ActionStopMotion
	ActionMultiTouchSimulation

	// NumActions is the number of defined actions.
	NumActions int = iota
)

type actionDef struct {
	name string
	info string
}

var actionDefs = [NumActions]actionDef{
	ActionCenter:               {"_center", "center"},
	ActionTranslate:            {"_translate", "translate"},
	ActionRotate:               {"_rotate", "rotate"},
	ActionRotateZ:              {"_rotateZ", "rotate Z"},
	ActionRotateZorZoom:        {"_rotateZorZoom", "rotate Z (horizontal motion of mouse) or zoom (vertical motion of mouse)"},
	ActionWheelZoom:            {"_wheelZoom", "zoom"},
	ActionSlideZoom:            {"_slideZoom", "zoom (along right edge of window)"},
	ActionNavTranslate:         {"_navTranslate", "translate navigation point (requires set NAVIGATIONMODE and set picking NAVIGATE)"},
	ActionSwipe:                {"_swipe", "spin model (swipe and release button and stop motion simultaneously)"},
	ActionSpinDrawObjectCW:     {"_spinDrawObjectCW", "click on two points to spin around axis clockwise (requires set picking SPIN)"},
	ActionSpinDrawObjectCCW:    {"_spinDrawObjectCCW", "click on two points to spin around axis counterclockwise (requires set picking SPIN)"},
	ActionSlab:                 {"_slab", "adjust slab (front plane; requires SLAB ON)"},
	ActionDepth:                {"_depth", "adjust depth (back plane; requires SLAB ON)"},
	ActionSlabAndDepth:         {"_slabAndDepth", "move slab/depth window (both planes; requires SLAB ON)"},
	ActionPopupMenu:            {"_popupMenu", "pop up the full context menu"},
	ActionClickFrank:           {"_clickFrank", "pop up recent context menu (click on Jmol frank)"},
	ActionSelect:               {"_select", "select an atom (requires set pickingStyle EXTENDEDSELECT)"},
	ActionSelectNone:           {"_selectNone", "select NONE (requires set pickingStyle EXTENDEDSELECT)"},
	ActionSelectToggle:         {"_selectToggle", "toggle selection (requires set pickingStyle DRAG/EXTENDEDSELECT/RASMOL)"},
	ActionSelectAndNot:         {"_selectAndNot", "unselect this group of atoms (requires set pickingStyle DRAG/EXTENDEDSELECT)"},
	ActionSelectOr:             {"_selectOr", "add this group of atoms to the set of selected atoms (requires set pickingStyle DRAG/EXTENDEDSELECT)"},
	ActionSelectToggleExtended: {"_selectToggleOr", "if all are selected, unselect all, otherwise add this group of atoms to the set of selected atoms (requires set pickingStyle DRAG)"},
	ActionDragSelected:         {"_dragSelected", "move selected atoms (requires set DRAGSELECTED)"},
	ActionSelectAndDrag:        {"_selectAndDrag", "select and drag atoms (requires set DRAGSELECTED)"},
	ActionDragZ:                {"_dragZ", "drag atoms in Z direction (requires set DRAGSELECTED)"},
	ActionRotateSelected:       {"_rotateSelected", "rotate selected atoms (requires set DRAGSELECTED)"},
	ActionRotateBranch:         {"_rotateBranch", "rotate branch around bond (requires set picking ROTATEBOND)"},
	ActionDragAtom:             {"_dragAtom", "move atom (requires set picking DRAGATOM)"},
	ActionDragMinimize:         {"_dragMinimize", "move atom and minimize molecule (requires set picking DRAGMINIMIZE)"},
	ActionDragMinimizeMolecule: {"_dragMinimizeMolecule", "move and minimize molecule (requires set picking DRAGMINIMIZEMOLECULE)"},
	ActionDragLabel:            {"_dragLabel", "move label (requires set picking LABEL)"},
	ActionDragDrawPoint:        {"_dragDrawPoint", "move specific DRAW point (requires set picking DRAW)"},
	ActionDragDrawObject:       {"_dragDrawObject", "move whole DRAW object (requires set picking DRAW)"},
	ActionPickAtom:             {"_pickAtom", "pick an atom"},
	ActionPickPoint:            {"_pickPoint", "pick a DRAW point (for measurements) (requires set DRAWPICKING)"},
	ActionPickLabel:            {"_pickLabel", "pick a label to toggle it hidden/displayed (requires set picking LABEL)"},
	ActionPickMeasure:          {"_pickMeasure", "pick an atom to include it in a measurement (after starting a measurement or after set picking DISTANCE/ANGLE/TORSION)"},
	ActionSetMeasure:           {"_setMeasure", "pick an atom to initiate or conclude a measurement"},
	ActionPickIsosurface:       {"_pickIsosurface", "pick an ISOSURFACE point (requires set DRAWPICKING)"},
	ActionPickNavigate:         {"_pickNavigate", "pick a point or atom to navigate to (requires set NAVIGATIONMODE)"},
	ActionDeleteAtom:           {"_deleteAtom", "delete atom (requires set picking DELETE ATOM)"},
	ActionDeleteBond:           {"_deleteBond", "delete bond (requires set picking DELETE BOND)"},
	ActionConnectAtoms:         {"_pickConnect", "connect atoms (requires set picking CONNECT)"},
	ActionAssignNew:            {"_assignNew", "assign/new atom or bond (requires set picking assignAtom_??/assignBond_?)"},
	ActionReset:                {"_reset", "reset (when clicked off the model)"},
	ActionStopMotion:           {"_stopMotion", "stop motion (requires set waitForMoveTo FALSE)"},
	ActionMultiTouchSimulation: {"_multiTouchSimulation", "simulate multi-touch using the mouse"},
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, NumActions)
	for i, d := range actionDefs {
		m[d.name] = Action(i)
	}
	return m
}()

// Valid reports whether a is a defined action.
func (a Action) Valid() bool {
	return int(a) < NumActions
}

// Name returns the stable action name, e.g. "_rotate".
func (a Action) Name() string {
	if !a.Valid() {
		return ""
	}
	return actionDefs[a].name
}

// Info returns the one-line description of the action.
func (a Action) Info() string {
	if !a.Valid() {
		return ""
	}
	return actionDefs[a].info
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionDefs[a].name
}

// ActionFromName returns the action with the given name.
func ActionFromName(name string) (Action, bool) {
	a, ok := actionsByName[name]
	return a, ok
}

// IsSelectAction reports whether a is one of the selection actions.
func (a Action) IsSelectAction() bool {
	switch a {
	case ActionSelect, ActionSelectNone, ActionSelectToggle, ActionSelectAndNot,
		ActionSelectOr, ActionSelectToggleExtended:
		return true
	}
	return false
}
