// Package binding maps mouse action codes to semantic viewer actions and
// user scripts.
//
// # Codes
//
// A Code packs the held mouse buttons, the Shift/Ctrl/Alt keys and a click
// count into one integer. Codes are usually written as descriptors:
//
//	code, ok := binding.ParseCode("CTRL+DOUBLE+LEFT")
//
// A code whose count bits are clear acts as a wildcard: it matches the same
// buttons and modifiers at any click count, but only when nothing is bound
// to the exact code.
//
// # Tables and profiles
//
// A Table holds the bindings of one profile. Four built-in profiles exist,
// one per selection picking style (toggle, selectOrToggle, extendedSelect,
// drag). Profiles owns the active table of a viewer and swaps it wholesale
// when the picking style changes. Profiles can also be loaded from YAML:
//
//	tbl, err := binding.DecodeProfile(r)
//	if err != nil {
//	    return err
//	}
//	err = profiles.Replace(tbl)
package binding
