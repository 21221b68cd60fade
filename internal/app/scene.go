package app

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/chewxy/math32"

	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/input"
	"github.com/dshills/molnav/internal/input/binding"
	"github.com/dshills/molnav/internal/navigation"
)

// Atom is one atom of the scene's model.
type Atom struct {
	Name string
	Pos  geom.Vec3
}

// Benzene returns a flat benzene ring centred on the origin.
func Benzene() []Atom {
	atoms := make([]Atom, 0, 12)
	for i := 0; i < 6; i++ {
		a := geom.Radians(float32(60 * i))
		c, s := math32.Cos(a), math32.Sin(a)
		atoms = append(atoms, Atom{Name: fmt.Sprintf("C%d", i+1), Pos: geom.V(1.39*c, 1.39*s, 0)})
	}
	for i := 0; i < 6; i++ {
		a := geom.Radians(float32(60 * i))
		c, s := math32.Cos(a), math32.Sin(a)
		atoms = append(atoms, Atom{Name: fmt.Sprintf("H%d", i+1), Pos: geom.V(2.48*c, 2.48*s, 0)})
	}
	return atoms
}

const maxMessages = 5

// Scene is a minimal viewer: a fixed set of atoms seen through a
// navigation camera. It keeps the selection, slab and measurements the
// resolver asks for and a short log of what happened, which the terminal
// shows.
type Scene struct {
	mu     sync.Mutex
	camera *navigation.Camera
	atoms  []Atom

	// pickRadius is how close, in pixels, the pointer must be to an atom.
	pickRadius float32

	selected     map[int]bool
	cursor       input.Cursor
	inMotion     bool
	spinning     bool
	spinX, spinY float32
	spinSpeed    float32
	slabOn       bool
	slab, depth  int
	pending      []int
	measurements [][]int
	hovered      int
	messages     []string
}

// NewScene creates a scene for atoms and points the camera's model at
// them.
func NewScene(camera *navigation.Camera, atoms []Atom) *Scene {
	s := &Scene{
		camera:     camera,
		atoms:      atoms,
		pickRadius: 12,
		selected:   make(map[int]bool),
		slab:       100,
		hovered:    -1,
	}
	center, radius := s.bounds()
	camera.SetModel(center, radius)
	return s
}

func (s *Scene) bounds() (geom.Vec3, float32) {
	if len(s.atoms) == 0 {
		return geom.Vec3{}, 0
	}
	var sum geom.Vec3
	for _, a := range s.atoms {
		sum = geom.Add(sum, a.Pos)
	}
	center := geom.Scale(sum, 1/float32(len(s.atoms)))
	var radius float32
	for _, a := range s.atoms {
		radius = max(radius, geom.Dist(center, a.Pos))
	}
	// Leave room for the atoms' own size.
	return center, radius + 1
}

// Atoms returns the scene's atoms.
func (s *Scene) Atoms() []Atom {
	return s.atoms
}

// FindNearestAtom returns the frontmost atom within the pick radius of
// (x, y), or -1.
func (s *Scene) FindNearestAtom(x, y int) int {
	best, bestZ := -1, float32(0)
	for i, a := range s.atoms {
		p := s.camera.TransformPoint(a.Pos)
		dx, dy := p[0]-float32(x), p[1]-float32(y)
		if dx*dx+dy*dy > s.pickRadius*s.pickRadius {
			continue
		}
		if best < 0 || p[2] < bestZ {
			best, bestZ = i, p[2]
		}
	}
	return best
}

func (s *Scene) name(atom int) string {
	if atom < 0 || atom >= len(s.atoms) {
		return "nothing"
	}
	return s.atoms[atom].Name
}

// Pick applies a selection action, or logs any other pick.
func (s *Scene) Pick(p input.Pick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch p.Action {
	case binding.ActionSelect:
		clear(s.selected)
		if p.Atom >= 0 {
			s.selected[p.Atom] = true
		}
	case binding.ActionSelectNone:
		clear(s.selected)
	case binding.ActionSelectToggle, binding.ActionSelectToggleExtended:
		if p.Atom < 0 {
			if p.Action == binding.ActionSelectToggleExtended {
				clear(s.selected)
			}
			break
		}
		if s.selected[p.Atom] {
			delete(s.selected, p.Atom)
		} else {
			s.selected[p.Atom] = true
		}
	case binding.ActionSelectOr:
		if p.Atom >= 0 {
			s.selected[p.Atom] = true
		}
	case binding.ActionSelectAndNot:
		delete(s.selected, p.Atom)
	}
	s.logf("%s %s", p.Action.Name(), s.name(p.Atom))
}

// Selected returns the selected atoms in order.
func (s *Scene) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// CenterAt moves the rotation centre to the atom.
func (s *Scene) CenterAt(_, _ int, atom int) {
	if atom < 0 || atom >= len(s.atoms) {
		return
	}
	s.camera.SetRotationCenter(s.atoms[atom].Pos)
	s.mu.Lock()
	s.logf("centered on %s", s.atoms[atom].Name)
	s.mu.Unlock()
}

func (s *Scene) PopupMenu(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logf("menu at %d,%d", x, y)
}

func (s *Scene) Cursor() input.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Scene) SetCursor(c input.Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = c
}

func (s *Scene) InMotion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inMotion
}

func (s *Scene) SetInMotion(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inMotion = on
}

func (s *Scene) IsSpinning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spinning
}

// SpinXYBy starts spinning about the screen axis perpendicular to the
// direction (dx, dy) at speed degrees per second.
func (s *Scene) SpinXYBy(dx, dy int, speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := math32.Hypot(float32(dx), float32(dy))
	if speed <= 0 || n == 0 {
		s.spinning = false
		return
	}
	s.spinning = true
	s.spinX, s.spinY = float32(dx)/n, float32(dy)/n
	s.spinSpeed = speed
	s.logf("spin %.0f deg/s", speed)
}

func (s *Scene) StopMotion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spinning = false
}

// advance turns the camera by one frame of spin.
func (s *Scene) advance(seconds float32) {
	s.mu.Lock()
	spinning := s.spinning
	deg := s.spinSpeed * seconds
	dx, dy := s.spinX*deg, s.spinY*deg
	s.mu.Unlock()
	if spinning {
		s.camera.RotateXYBy(dx, dy)
	}
}

// SetSlabEnabled turns slab clipping on or off.
func (s *Scene) SetSlabEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slabOn = on
}

func (s *Scene) SlabEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slabOn
}

func (s *Scene) SlabByPixels(dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slab = clampPercent(s.slab + dy)
}

func (s *Scene) DepthByPixels(dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth = clampPercent(s.depth + dy)
}

func (s *Scene) SlabDepthByPixels(dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slab = clampPercent(s.slab + dy)
	s.depth = clampPercent(s.depth + dy)
}

// Slab returns the slab and depth planes in percent.
func (s *Scene) Slab() (slab, depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slab, s.depth
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

func (s *Scene) SetPendingMeasurement(atoms []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = slices.Clone(atoms)
}

// Measure records a finished measurement. Two atoms give a distance and
// three an angle.
func (s *Scene) Measure(atoms []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	for _, a := range atoms {
		if a < 0 || a >= len(s.atoms) {
			return
		}
	}
	s.measurements = append(s.measurements, slices.Clone(atoms))
	switch len(atoms) {
	case 2:
		d := geom.Dist(s.atoms[atoms[0]].Pos, s.atoms[atoms[1]].Pos)
		s.logf("%s-%s %.2f A", s.name(atoms[0]), s.name(atoms[1]), d)
	case 3:
		a, b, c := s.atoms[atoms[0]].Pos, s.atoms[atoms[1]].Pos, s.atoms[atoms[2]].Pos
		deg := s.angle(geom.Sub(a, b), geom.Sub(c, b))
		s.logf("%s-%s-%s %.1f deg", s.name(atoms[0]), s.name(atoms[1]), s.name(atoms[2]), deg)
	default:
		names := make([]string, len(atoms))
		for i, a := range atoms {
			names[i] = s.name(a)
		}
		s.logf("measured %s", strings.Join(names, "-"))
	}
}

func (s *Scene) angle(u, v geom.Vec3) float32 {
	return geom.Angle(u, v) * 180 / math32.Pi
}

// Measurements returns the finished measurements.
func (s *Scene) Measurements() [][]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.measurements)
}

func (s *Scene) ObjectHovered(_, _ int) bool { return false }

func (s *Scene) HoverOn(atom int, _ binding.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hovered != atom {
		s.hovered = atom
		s.logf("hover %s", s.name(atom))
	}
}

func (s *Scene) HoverOff() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hovered = -1
}

// Write adds script output to the message log.
func (s *Scene) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		s.logf("%s", line)
	}
	return len(p), nil
}

// logf appends to the message log. The caller holds s.mu.
func (s *Scene) logf(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// Messages returns the most recent log lines, oldest first.
func (s *Scene) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

// Lines renders the scene state as text.
func (s *Scene) Lines() []string {
	snap := s.camera.Snapshot()
	w, h := s.camera.ScreenSize()
	nav := s.camera.InNavigationMode()

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := []string{
		fmt.Sprintf("screen %dx%d  zoom %.0f%%  cursor %s", w, h, snap.ZoomPercent, s.cursor),
		snap.MoveToText(0),
	}
	if nav {
		lines = append(lines, snap.NavigationStateText())
	}
	lines = append(lines, fmt.Sprintf("selected %d  slab %d  depth %d  measurements %d",
		len(s.selected), s.slab, s.depth, len(s.measurements)))
	if s.hovered >= 0 {
		lines = append(lines, "hover "+s.name(s.hovered))
	}
	lines = append(lines, "")
	return append(lines, s.messages...)
}
