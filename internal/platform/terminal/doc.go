// Package terminal connects a tcell screen to the input resolver.
//
// Mouse reporting in a terminal has cell resolution and no separate press,
// release or click notifications; the Translator reconstructs them from
// the button mask that comes with every mouse event. Key releases are
// not reported either, so a navigation key counts as held until another
// key is typed or it stops auto-repeating.
package terminal
