// Package script runs the user scripts bound to mouse actions.
//
// Script bindings are Lua chunks. Before a chunk runs, the resolver
// substitutes its placeholders (_X, _Y, _DELTAX, _ATOM and so on), so a
// binding such as
//
//	rotate("y", _DELTAX / 2)
//
// sees literal numbers. The chunk runs in a sandboxed gopher-lua state
// that has only the base, table, string and math libraries, plus the
// camera functions installed by Runner:
//
//	rotate(axis, degrees)            turn about the screen x, y or z axis
//	translate(axis, percent)         place the centre along x or y
//	zoom(percent)                    set the zoom
//	zoomby(factor)                   multiply the zoom
//	home()                           reset the view
//	navigate(seconds, x, y, z)       fly the navigation centre to a point
//	navrotate(seconds, axis, deg)    turn the navigation camera
//	navdepth(seconds, percent)       set the navigation depth
//	orientation()                    the current view as a moveto command
//	snapshot()                       the current view as JSON
//	restore(json)                    apply a view returned by snapshot
//
// With WithAnimator:
//
//	navpath(seconds, {x, y, z}, ...)        fly through waypoints
//	navguided(seconds, {{x, y, z}, {wing}}, ...)  fly with a wing guide
//
// With WithProfiles:
//
//	pickingmode([name])              set or read the picking mode
//	pickingstyle([name])             set or read the picking style
//	dragselected(on)                 drag the selection with the left button
//	bind(mouse, action)              bind an action name or script text
//	unbind([mouse, [action]])        remove bindings; no arguments resets
//	bindings([filter])               list the active bindings
//	exportbindings()                 the active profile as YAML
//
// Timed moves and flights return false when cancelled. A Queue runs
// scripts on its own goroutine and cancels the running one on Cancel.
//
// print writes to the package logger, or to the writer given WithOutput.
package script
