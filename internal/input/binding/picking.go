package binding

import "strings"

// PickingStyle selects which built-in binding profile is active, or how
// measurements react to clicks.
type PickingStyle int

const (
	StyleToggle         PickingStyle = iota // default Jmol bindings
	StyleSelectOrToggle                     // RasMol
	StyleExtendedSelect                     // PFAAT
	StyleDrag
	StyleMeasure
	StyleMeasureOff
)

var pickingStyleNames = [...]string{
	"toggle", "selectOrToggle", "extendedSelect", "drag",
	"measure", "measureoff",
}

// String returns the style name. Out-of-range styles report "toggle".
func (s PickingStyle) String() string {
	if s < 0 || int(s) >= len(pickingStyleNames) {
		return pickingStyleNames[StyleToggle]
	}
	return pickingStyleNames[s]
}

// IsMeasure reports whether s is one of the measurement styles.
func (s PickingStyle) IsMeasure() bool {
	return s >= StyleMeasure
}

// PickingStyleFromName looks up a style case-insensitively. It returns -1
// when the name is unknown.
func PickingStyleFromName(name string) PickingStyle {
	for i := len(pickingStyleNames) - 1; i >= 0; i-- {
		if strings.EqualFold(name, pickingStyleNames[i]) {
			return PickingStyle(i)
		}
	}
	return -1
}

// PickingMode is what a click on an atom does.
type PickingMode int

const (
	PickOff PickingMode = iota
	PickIdentify
	PickLabel
	PickCenter
	PickDraw
	PickSpin
	PickSymmetry
	PickDeleteAtom
	PickDeleteBond
	PickSelectAtom
	PickSelectGroup
	PickSelectChain
	PickSelectMolecule
	PickSelectPolymer
	PickSelectStructure
	PickSelectSite
	PickSelectModel
	PickSelectElement
	PickMeasure
	PickMeasureDistance
	PickMeasureAngle
	PickMeasureTorsion
	PickMeasureSequence
	PickNavigate
	PickConnect
	PickStruts
	PickDragSelected
	PickDragMolecule
	PickDragAtom
	PickDragMinimize
	PickDragMinimizeMolecule
	PickInvertStereo
	PickAssignAtom
	PickAssignBond
	PickRotateBond
	PickIdentifyBond
)

var pickingModeNames = [...]string{
	"off", "identify", "label", "center", "draw", "spin",
	"symmetry", "deleteatom", "deletebond",
	"atom", "group", "chain", "molecule", "polymer", "structure",
	"site", "model", "element",
	"measure", "distance", "angle", "torsion", "sequence",
	"navigate",
	"connect", "struts",
	"dragselected", "dragmolecule", "dragatom", "dragminimize", "dragminimizemolecule",
	"invertstereo", "assignatom", "assignbond", "rotatebond", "identifybond",
}

// String returns the mode name. Out-of-range modes report "off".
func (m PickingMode) String() string {
	if m < 0 || int(m) >= len(pickingModeNames) {
		return pickingModeNames[PickOff]
	}
	return pickingModeNames[m]
}

// IsMeasure reports whether m starts or extends a measurement.
func (m PickingMode) IsMeasure() bool {
	return m >= PickMeasure && m <= PickMeasureSequence
}

// PickingModeFromName looks up a mode case-insensitively. It returns -1
// when the name is unknown.
func PickingModeFromName(name string) PickingMode {
	for i := len(pickingModeNames) - 1; i >= 0; i-- {
		if strings.EqualFold(name, pickingModeNames[i]) {
			return PickingMode(i)
		}
	}
	return -1
}
