package binding

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the on-disk form of a binding profile.
//
//	name: toggle
//	base: toggle
//	bindings:
//	  - mouse: CTRL+DOUBLE+LEFT
//	    action: _center
//	  - mouse: ALT+RIGHT
//	    script: moveto 1 front
type ProfileFile struct {
	// Name selects the picking style the table is installed for.
	Name string `yaml:"name"`
	// Base names the built-in profile to start from. Empty starts from an
	// empty table.
	Base     string        `yaml:"base,omitempty"`
	Bindings []BindingSpec `yaml:"bindings"`
}

// BindingSpec is one line of a profile file.
type BindingSpec struct {
	Mouse  string `yaml:"mouse"`
	Action string `yaml:"action,omitempty"`
	Script string `yaml:"script,omitempty"`
}

// DecodeProfile reads a YAML profile and builds its table. Bindings with an
// empty descriptor are skipped; an unknown action name is an error.
func DecodeProfile(r io.Reader) (*Table, error) {
	var f ProfileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return f.Table()
}

// Table builds the table described by f.
func (f *ProfileFile) Table() (*Table, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		name = StyleToggle.String()
	}
	var t *Table
	if f.Base != "" {
		style := PickingStyleFromName(f.Base)
		if style < 0 || style.IsMeasure() {
			return nil, fmt.Errorf("base %q: %w", f.Base, ErrUnknownProfile)
		}
		t = NewProfile(style).Clone(name)
	} else {
		t = NewTable(name)
	}
	for i, b := range f.Bindings {
		var e Entry
		switch {
		case b.Action != "" && b.Script != "":
			return nil, fmt.Errorf("binding %d (%s): both action and script set", i, b.Mouse)
		case b.Action != "":
			a, ok := ActionFromName(b.Action)
			if !ok {
				return nil, fmt.Errorf("binding %d (%s): unknown action %q", i, b.Mouse, b.Action)
			}
			e = Semantic(a)
		case b.Script != "":
			e = Script(b.Script)
		default:
			continue
		}
		t.BindDescriptor(b.Mouse, e)
	}
	return t, nil
}

// EncodeProfile writes every binding of t as a YAML profile with no base.
func EncodeProfile(w io.Writer, t *Table) error {
	f := ProfileFile{Name: t.Name()}
	for _, code := range t.Codes() {
		for _, e := range t.entries[code] {
			spec := BindingSpec{Mouse: code.String()}
			if e.IsScript() {
				spec.Script = e.Script
			} else {
				spec.Action = e.Action.Name()
			}
			f.Bindings = append(f.Bindings, spec)
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return enc.Close()
}
