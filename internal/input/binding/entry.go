package binding

import "fmt"

// EntryKind identifies which arm of an Entry is populated.
type EntryKind uint8

const (
	// EntryNone is the zero Entry.
	EntryNone EntryKind = iota
	// EntryAction binds a semantic Action.
	EntryAction
	// EntryScript binds a user script.
	EntryScript
)

// Entry is the target of a binding: either a semantic action or a user
// script. Entries are comparable and are used as map and set keys.
type Entry struct {
	Kind   EntryKind
	Action Action
	Script string
}

// Semantic returns an Entry for a.
func Semantic(a Action) Entry {
	return Entry{Kind: EntryAction, Action: a}
}

// Script returns an Entry that runs text.
func Script(text string) Entry {
	return Entry{Kind: EntryScript, Script: text}
}

// IsZero reports whether e is the zero Entry.
func (e Entry) IsZero() bool {
	return e.Kind == EntryNone
}

// IsScript reports whether e is a user script.
func (e Entry) IsScript() bool {
	return e.Kind == EntryScript
}

// Name returns the action name or the script text.
func (e Entry) Name() string {
	switch e.Kind {
	case EntryAction:
		return e.Action.Name()
	case EntryScript:
		return e.Script
	default:
		return ""
	}
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryAction:
		return e.Action.Name()
	case EntryScript:
		return fmt.Sprintf("script(%q)", e.Script)
	default:
		return "none"
	}
}

// ParseEntry interprets s as an action name when it is one and as a script
// otherwise. An empty string yields the zero Entry.
func ParseEntry(s string) Entry {
	if s == "" {
		return Entry{}
	}
	if a, ok := ActionFromName(s); ok {
		return Semantic(a)
	}
	return Script(s)
}
