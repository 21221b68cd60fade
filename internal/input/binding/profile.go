package binding

import (
	"errors"
	"io"
	"sync"
)

// ErrUnknownProfile is returned when a profile name matches no style.
var ErrUnknownProfile = errors.New("binding: unknown profile")

func bindAll(t *Table, desc string, actions ...Action) {
	code := MustParseCode(desc)
	for _, a := range actions {
		t.BindAction(code, a)
	}
}

func bindGeneral(t *Table) {
	bindAll(t, "DOUBLE+LEFT", ActionCenter)
	bindAll(t, "CTRL+ALT+LEFT", ActionTranslate)
	bindAll(t, "CTRL+RIGHT", ActionTranslate)
	bindAll(t, "DOUBLE+SHIFT+LEFT", ActionTranslate)
	bindAll(t, "DOUBLE+MIDDLE", ActionTranslate)
	bindAll(t, "LEFT", ActionRotate)
	bindAll(t, "ALT+LEFT", ActionRotateZ)
	bindAll(t, "SHIFT+RIGHT", ActionRotateZ)
	bindAll(t, "SHIFT+LEFT", ActionRotateZorZoom)
	bindAll(t, "MIDDLE", ActionRotateZorZoom)
	bindAll(t, "WHEEL", ActionWheelZoom)
	bindAll(t, "LEFT", ActionSlideZoom, ActionNavTranslate)

	bindAll(t, "CTRL+LEFT", ActionPopupMenu)
	bindAll(t, "RIGHT", ActionPopupMenu)
	bindAll(t, "LEFT", ActionClickFrank)
	bindAll(t, "CTRL+SHIFT+LEFT", ActionSlab)
	bindAll(t, "DOUBLE+CTRL+SHIFT+LEFT", ActionDepth)
	bindAll(t, "CTRL+ALT+SHIFT+LEFT", ActionSlabAndDepth)

	bindAll(t, "LEFT", ActionSwipe, ActionSpinDrawObjectCCW)
	bindAll(t, "SHIFT+LEFT", ActionSpinDrawObjectCW)
	bindAll(t, "ALT+SHIFT+LEFT", ActionDragSelected)
	bindAll(t, "SHIFT+LEFT", ActionDragZ)
	bindAll(t, "ALT+LEFT", ActionRotateSelected)
	bindAll(t, "SHIFT+LEFT", ActionRotateBranch, ActionDragLabel)
	bindAll(t, "ALT+LEFT", ActionDragDrawPoint)
	bindAll(t, "SHIFT+LEFT", ActionDragDrawObject)

	bindAll(t, "DOUBLE+SHIFT+LEFT", ActionReset)
	bindAll(t, "DOUBLE+MIDDLE", ActionReset)

	bindAll(t, "DOUBLE+LEFT", ActionStopMotion)
}

func bindPick(t *Table) {
	bindAll(t, "LEFT", ActionDragAtom, ActionDragMinimize, ActionDragMinimizeMolecule,
		ActionPickAtom, ActionPickPoint, ActionPickLabel, ActionPickMeasure)
	bindAll(t, "DOUBLE+LEFT", ActionSetMeasure)
	bindAll(t, "LEFT", ActionPickIsosurface)
	bindAll(t, "CTRL+SHIFT+LEFT", ActionPickNavigate)
	bindAll(t, "LEFT", ActionDeleteAtom, ActionDeleteBond, ActionConnectAtoms, ActionAssignNew)
}

// NewProfile builds the built-in table for a selection style. Measurement
// styles have no table of their own and yield the toggle profile.
func NewProfile(style PickingStyle) *Table {
	switch style {
	case StyleSelectOrToggle, StyleExtendedSelect, StyleDrag:
	default:
		style = StyleToggle
	}
	t := NewTable(style.String())
	bindGeneral(t)
	bindPick(t)
	switch style {
	case StyleToggle:
		bindAll(t, "DOUBLE+LEFT", ActionSelect)
		bindAll(t, "LEFT", ActionSelectToggleExtended)
	case StyleSelectOrToggle:
		bindAll(t, "LEFT", ActionSelect)
		bindAll(t, "SHIFT+LEFT", ActionSelectToggle)
	case StyleExtendedSelect:
		bindAll(t, "LEFT", ActionSelect, ActionSelectNone)
		bindAll(t, "SHIFT+LEFT", ActionSelectToggle)
		bindAll(t, "ALT+SHIFT+LEFT", ActionSelectAndNot)
		bindAll(t, "ALT+LEFT", ActionSelectOr)
	case StyleDrag:
		bindAll(t, "LEFT", ActionSelect)
		bindAll(t, "SHIFT+LEFT", ActionSelectToggle)
		bindAll(t, "ALT+LEFT", ActionSelectOr)
		bindAll(t, "ALT+SHIFT+LEFT", ActionSelectAndNot)
		bindAll(t, "DOWN+LEFT", ActionSelectAndDrag)
		bindAll(t, "LEFT", ActionDragSelected, ActionPickAtom)
	}
	return t
}

// Profiles owns the active binding table of one viewer together with the
// picking style and mode that select it.
//
// Switching style replaces the active table wholesale. Each selection
// style keeps its own table, so bindings added while a style is active
// survive a round trip to another style. Profiles is safe for concurrent
// use.
type Profiles struct {
	mu sync.RWMutex

	active  *Table
	predrag *Table
	byStyle map[PickingStyle]*Table

	style        PickingStyle
	rootStyle    PickingStyle
	selectStyle  PickingStyle
	measureStyle PickingStyle
	pickingMode  PickingMode
}

// NewProfiles returns a set with the toggle profile active.
func NewProfiles() *Profiles {
	p := &Profiles{
		measureStyle: StyleMeasureOff,
		pickingMode:  PickIdentify,
	}
	p.reset()
	return p
}

func (p *Profiles) reset() {
	toggle := NewProfile(StyleToggle)
	p.byStyle = map[PickingStyle]*Table{StyleToggle: toggle}
	p.active = toggle
	p.predrag = toggle
}

// Active returns the active table. Callers must not mutate it; use Bind
// and Unbind instead.
func (p *Profiles) Active() *Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// Name returns the name of the active table.
func (p *Profiles) Name() string {
	return p.Active().Name()
}

// Lookup resolves code against the active table.
func (p *Profiles) Lookup(code Code) (Entry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.Lookup(code)
}

// IsBound reports whether a is bound to code in the active table.
func (p *Profiles) IsBound(code Code, a Action) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.IsBound(code, a)
}

// IsUserAction reports whether a script is bound to code.
func (p *Profiles) IsUserAction(code Code) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.IsUserAction(code)
}

// Scripts returns the scripts bound to code.
func (p *Profiles) Scripts(code Code) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.Scripts(code)
}

// Has reports whether the active table binds anything to code.
func (p *Profiles) Has(code Code) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.Has(code)
}

// Info lists the bindings of the active table; see Table.Info.
func (p *Profiles) Info(filter string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active.Info(filter)
}

// Export writes the active table as a profile file.
func (p *Profiles) Export(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return EncodeProfile(w, p.active)
}

// Bind parses desc and binds name to it in the active table. Action names
// bind semantic actions; anything else binds a script.
func (p *Profiles) Bind(desc, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active.BindDescriptor(desc, ParseEntry(name))
}

// Unbind removes bindings from the active table. With both arguments
// empty every table is rebuilt from the built-in profiles.
func (p *Profiles) Unbind(desc, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if desc == "" && name == "" {
		p.reset()
		p.style, p.selectStyle, p.rootStyle = StyleToggle, StyleToggle, StyleToggle
		return
	}
	code, _ := ParseCode(desc)
	p.active.Unbind(code, ParseEntry(name))
}

// Replace installs t as the table of its style and, when that style is the
// selected one, as the active table. The style is taken from t's name; an
// unknown name is an error.
func (p *Profiles) Replace(t *Table) error {
	style := PickingStyleFromName(t.Name())
	if style < 0 || style.IsMeasure() {
		return ErrUnknownProfile
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byStyle[style] = t
	if p.selectStyle == style {
		p.active = t
	}
	if p.predrag.Name() == t.Name() {
		p.predrag = t
	}
	logger.Infof("installed binding profile %q (%d bindings)", t.Name(), t.Len())
	return nil
}

// SetPickingStyle switches style. Measurement styles change only how
// measurements react; the others swap the active table.
func (p *Profiles) SetPickingStyle(style PickingStyle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = style
	if style.IsMeasure() {
		p.measureStyle = style
	} else {
		if style < StyleDrag {
			p.rootStyle = style
		}
		p.selectStyle = style
	}
	sel := p.selectStyle
	switch sel {
	case StyleSelectOrToggle, StyleExtendedSelect, StyleDrag:
	default:
		sel = StyleToggle
	}
	if p.active.Name() != sel.String() {
		t, ok := p.byStyle[sel]
		if !ok {
			t = NewProfile(sel)
			p.byStyle[sel] = t
		}
		p.active = t
		logger.Debugf("binding profile %s", t.Name())
	}
	if p.active.Name() != StyleDrag.String() {
		p.predrag = p.active
	}
}

// PickingStyle returns the most recently set style.
func (p *Profiles) PickingStyle() PickingStyle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.style
}

// MeasureStyle returns the current measurement style.
func (p *Profiles) MeasureStyle() PickingStyle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.measureStyle
}

// SetPickingMode sets what a click on an atom does.
func (p *Profiles) SetPickingMode(m PickingMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pickingMode = m
}

// PickingMode returns the current picking mode.
func (p *Profiles) PickingMode() PickingMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pickingMode
}

// RestorePredrag reactivates the table that was active before the drag
// profile, resets the picking mode to identify and reapplies the root
// selection style.
func (p *Profiles) RestorePredrag() {
	p.mu.Lock()
	p.active = p.predrag
	p.pickingMode = PickIdentify
	root := p.rootStyle
	p.mu.Unlock()
	p.SetPickingStyle(root)
}
