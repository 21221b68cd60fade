package input

import (
	"strconv"
	"strings"

	"github.com/dshills/molnav/internal/input/binding"
)

// runScripts queues every script bound to code and reports whether code
// is a script binding. The queued texts are handed to the runner by
// HandleEvent once the resolver's lock is released. Placeholders in the
// script text are replaced first:
//
//	_X, _Y          pointer position, Y measured up from the bottom
//	_DELTAX, _DELTAY  drag offset since the previous event
//	_TIME           event time in milliseconds
//	_MODE           event kind
//	_ACTION         action code
//	_ATOM           index of the atom under the pointer, or -1
func (r *Resolver) runScripts(code binding.Code, x, y, dx, dy int, t int64, kind EventKind) bool {
	if !r.profiles.IsUserAction(code) {
		return false
	}
	if r.scripts == nil {
		logger.Debugf("no script runner for %s", code)
		return true
	}
	_, h := r.camera.ScreenSize()
	for _, s := range r.profiles.Scripts(code) {
		r.pending = append(r.pending, r.expand(s, code, x, y, dx, dy, t, kind, h))
	}
	return true
}

// takePending returns the queued script texts and clears the queue.
// Callers hold r.mu.
func (r *Resolver) takePending() []string {
	p := r.pending
	r.pending = nil
	return p
}

// dispatch hands scripts to the runner. It must be called without r.mu
// held: a runner that executes in place may take as long as the script
// does.
func (r *Resolver) dispatch(scripts []string) {
	if len(scripts) == 0 {
		return
	}
	prev := r.inFlight.Swap(true)
	defer r.inFlight.Store(prev)

	for _, text := range scripts {
		r.metrics.RecordScript()
		if err := r.scripts.Run(text); err != nil {
			r.metrics.RecordScriptError()
			logger.Debugf("script %q: %v", text, err)
		}
	}
}

// cancelScripts aborts the script the runner is executing, if any, and
// drops the ones still waiting.
func (r *Resolver) cancelScripts() {
	if r.scripts != nil {
		r.scripts.Cancel()
	}
}

func (r *Resolver) expand(s string, code binding.Code, x, y, dx, dy int, t int64, kind EventKind, height int) string {
	if !strings.Contains(s, "_") {
		return s
	}
	atom := "-1"
	if strings.Contains(s, "_ATOM") {
		atom = strconv.Itoa(r.viewer.FindNearestAtom(x, y))
	}
	return strings.NewReplacer(
		"_ACTION", strconv.Itoa(int(code)),
		"_ATOM", atom,
		"_DELTAX", strconv.Itoa(dx),
		"_DELTAY", strconv.Itoa(dy),
		"_TIME", strconv.FormatInt(t, 10),
		"_MODE", strconv.Itoa(int(kind)),
		"_X", strconv.Itoa(x),
		"_Y", strconv.Itoa(height-y),
	).Replace(s)
}
