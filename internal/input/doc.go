// Package input turns raw pointer and keyboard events into viewer actions.
//
// A Resolver serves one viewer. It combines three pieces:
//
//   - a click debouncer (package mouse) that counts multi-clicks and tells
//     clicks from drags
//   - a gesture tracker (package gesture) that measures drag velocity for
//     swipes
//   - the viewer's binding profiles (package binding) that map an action
//     code to a semantic action or a user script
//
// Each DeviceEvent is turned into an action code from its buttons,
// modifier keys and click count. The code is looked up in the active
// binding table, falling back to its count-free form and then to a few
// built-in defaults, and the bound behaviour is carried out on the Viewer
// and Camera collaborators.
//
// # Usage
//
//	r := input.New(input.DefaultConfig(), viewer, camera,
//	    input.WithScriptRunner(queue))
//	r.StartHover(ctx)
//	defer r.Close()
//
//	for ev := range events {
//	    r.HandleEvent(ev)
//	}
//
// Script bindings are expanded while the event is resolved and handed to
// the ScriptRunner after the resolver's lock is released. A button press
// or a _stopMotion click cancels the script the runner is executing.
//
// # Hovering
//
// The HoverWatcher wakes up every hover delay and asks the resolver
// whether the pointer has rested over an atom since the last move. Stop
// and Start bump its generation, so a watcher goroutine that wakes late
// never fires for a pointer it no longer owns.
package input
