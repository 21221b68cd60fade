package input

import "slices"

// maxMeasureAtoms is the atom count of a torsion, the longest measurement.
const maxMeasureAtoms = 4

func (r *Resolver) enterMeasurement(atom int) {
	r.measuring = []int{atom}
	r.viewer.SetCursor(CursorCrosshair)
	r.viewer.SetPendingMeasurement(slices.Clone(r.measuring))
}

func (r *Resolver) exitMeasurement() {
	if r.measuring == nil {
		return
	}
	r.measuring = nil
	r.viewer.SetPendingMeasurement(nil)
	r.viewer.SetCursor(CursorDefault)
}

// addToMeasurement adds atom to the pending measurement and returns the
// new atom count. Clicking off the model abandons the measurement.
func (r *Resolver) addToMeasurement(atom int) int {
	if atom < 0 || r.measuring == nil {
		r.exitMeasurement()
		return 0
	}
	n := len(r.measuring)
	if n == maxMeasureAtoms || r.measuring[n-1] == atom {
		return n
	}
	r.measuring = append(r.measuring, atom)
	r.viewer.SetPendingMeasurement(slices.Clone(r.measuring))
	return len(r.measuring)
}

// toggleMeasurement completes the pending measurement when it has two to
// four atoms and leaves measurement mode either way.
func (r *Resolver) toggleMeasurement() {
	if r.measuring == nil {
		return
	}
	if n := len(r.measuring); n >= 2 && n <= maxMeasureAtoms {
		r.viewer.Measure(slices.Clone(r.measuring))
	}
	r.exitMeasurement()
}

// traceMeasurement previews the pending measurement extended to the atom
// under the pointer.
func (r *Resolver) traceMeasurement(x, y int) {
	pending := slices.Clone(r.measuring)
	atom := r.viewer.FindNearestAtom(x, y)
	if atom >= 0 && len(pending) < maxMeasureAtoms && pending[len(pending)-1] != atom {
		pending = append(pending, atom)
	}
	r.viewer.SetPendingMeasurement(pending)
}
