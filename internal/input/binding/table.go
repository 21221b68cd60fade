package binding

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/kataras/golog"
)

var logger = golog.Child("[binding]")

// Table maps action codes to bound entries.
//
// Each code has one slot holding an ordered, duplicate-free list of entries.
// Scripts are kept ahead of semantic actions; otherwise entries keep the
// order in which they were bound. Table is not safe for concurrent
// mutation; the owning Profiles serialises access.
type Table struct {
	name    string
	entries map[Code][]Entry
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		name:    name,
		entries: make(map[Code][]Entry),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of bound (code, entry) pairs.
func (t *Table) Len() int {
	n := 0
	for _, es := range t.entries {
		n += len(es)
	}
	return n
}

// Bind adds e to the slot for code. Binding a pair twice is a no-op, as is
// binding code 0 or the zero entry.
func (t *Table) Bind(code Code, e Entry) {
	if code == 0 || e.IsZero() {
		return
	}
	es := t.entries[code]
	if slices.Contains(es, e) {
		return
	}
	if e.IsScript() {
		i := 0
		for i < len(es) && es[i].IsScript() {
			i++
		}
		es = slices.Insert(es, i, e)
	} else {
		es = append(es, e)
	}
	t.entries[code] = es
}

// BindAction binds action a to code.
func (t *Table) BindAction(code Code, a Action) {
	t.Bind(code, Semantic(a))
}

// BindDescriptor parses desc and binds e to the result. Descriptors that
// name nothing are ignored and false is returned.
func (t *Table) BindDescriptor(desc string, e Entry) bool {
	code, ok := ParseCode(desc)
	if !ok {
		logger.Debugf("ignoring binding %q: empty descriptor", desc)
		return false
	}
	t.Bind(code, e)
	return true
}

// Unbind removes bindings. A zero code removes e from every code; a zero
// entry removes every entry bound to code.
func (t *Table) Unbind(code Code, e Entry) {
	switch {
	case code == 0 && e.IsZero():
		return
	case code == 0:
		for c := range t.entries {
			t.remove(c, e)
		}
	case e.IsZero():
		delete(t.entries, code)
	default:
		t.remove(code, e)
	}
}

func (t *Table) remove(code Code, e Entry) {
	es := slices.DeleteFunc(t.entries[code], func(x Entry) bool { return x == e })
	if len(es) == 0 {
		delete(t.entries, code)
		return
	}
	t.entries[code] = es
}

// slot returns the entries for code, falling back to its count-free form.
func (t *Table) slot(code Code) []Entry {
	if es, ok := t.entries[code]; ok {
		return es
	}
	if wild := code.AnyCount(); wild != code {
		return t.entries[wild]
	}
	return nil
}

// Lookup returns the first entry bound to code, or to its count-free form
// when code itself has nothing.
func (t *Table) Lookup(code Code) (Entry, bool) {
	es := t.slot(code)
	if len(es) == 0 {
		return Entry{}, false
	}
	return es[0], true
}

// Entries returns a copy of every entry that Lookup would consider for code.
func (t *Table) Entries(code Code) []Entry {
	return slices.Clone(t.slot(code))
}

// Has reports whether anything is bound to code or its count-free form.
func (t *Table) Has(code Code) bool {
	return len(t.slot(code)) > 0
}

// IsBound reports whether a is bound to code.
func (t *Table) IsBound(code Code, a Action) bool {
	return slices.Contains(t.slot(code), Semantic(a))
}

// IsUserAction reports whether a script is bound to code.
func (t *Table) IsUserAction(code Code) bool {
	es := t.slot(code)
	return len(es) > 0 && es[0].IsScript()
}

// Scripts returns the scripts bound to code in binding order.
func (t *Table) Scripts(code Code) []string {
	var out []string
	for _, e := range t.slot(code) {
		if !e.IsScript() {
			break
		}
		out = append(out, e.Script)
	}
	return out
}

// Codes returns every code with at least one binding, in ascending order.
func (t *Table) Codes() []Code {
	codes := make([]Code, 0, len(t.entries))
	for c := range t.entries {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Clone returns a deep copy of t under a new name.
func (t *Table) Clone(name string) *Table {
	c := NewTable(name)
	for code, es := range t.entries {
		c.entries[code] = slices.Clone(es)
	}
	return c
}

// Info returns one "<descriptor> <name> — <info>" line per bound action,
// sorted. A non-empty filter keeps only actions whose name contains it
// (case-insensitive); "all" disables filtering. Scripts are listed with
// their text in place of the info.
func (t *Table) Info(filter string) []string {
	f := strings.ToLower(filter)
	if f == "all" {
		f = ""
	}
	var lines []string
	for code, es := range t.entries {
		for _, e := range es {
			if f != "" && !strings.Contains(strings.ToLower(e.Name()), f) {
				continue
			}
			switch e.Kind {
			case EntryAction:
				lines = append(lines, fmt.Sprintf("%s %s — %s", code, e.Action.Name(), e.Action.Info()))
			case EntryScript:
				lines = append(lines, fmt.Sprintf("%s script — %s", code, e.Script))
			}
		}
	}
	sort.Strings(lines)
	return lines
}
