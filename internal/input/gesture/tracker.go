// Package gesture records the pointer path of the current press so that
// drag velocity and swipe flicks can be measured on release.
package gesture

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"

	"github.com/dshills/molnav/internal/input/binding"
)

// DefaultCapacity is the number of samples the ring keeps.
const DefaultCapacity = 20

// Sample is one recorded pointer position. T is relative to the press.
type Sample struct {
	X, Y int
	T    int64
	// Seq is the sample's position in the press sequence; -1 marks a slot
	// that holds nothing from the current sequence.
	Seq int
}

// Tracker is a fixed-size ring of the most recent drag samples.
//
// SetAction starts a new sequence and invalidates every slot; Add appends.
// Queries look at a window of the n newest samples, optionally skipping the
// skip newest ones. Slots that the current sequence has not filled yet
// contribute nothing. Tracker is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	nodes  []Sample
	next   int
	t0     int64
	action binding.Code

	width, height int
}

// NewTracker creates a tracker with room for capacity samples.
// A capacity below 2 uses DefaultCapacity.
func NewTracker(capacity int) *Tracker {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	t := &Tracker{nodes: make([]Sample, capacity), width: 1, height: 1}
	t.invalidate()
	return t
}

// SetViewport sets the screen size used to normalise speeds.
func (t *Tracker) SetViewport(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = max(width, 1)
	t.height = max(height, 1)
}

func (t *Tracker) invalidate() {
	for i := range t.nodes {
		t.nodes[i].Seq = -1
	}
}

// node folds any index, including negative ones, into the ring.
func (t *Tracker) node(i int) *Sample {
	n := len(t.nodes)
	return &t.nodes[(i+2*n)%n]
}

func (t *Tracker) valid(i int) bool {
	return i >= 0 && t.node(i).Seq == i
}

// SetAction starts a new sequence for code at time t0 (milliseconds).
func (t *Tracker) SetAction(code binding.Code, t0 int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.action = code
	t.next = 0
	t.t0 = t0
	t.invalidate()
}

// Add appends a sample and returns the number of samples added since
// SetAction.
func (t *Tracker) Add(code binding.Code, x, y int, ts int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.action = code
	*t.node(t.next) = Sample{X: x, Y: y, T: ts - t.t0, Seq: t.next}
	t.next++
	return t.next
}

// Action returns the code of the current sequence.
func (t *Tracker) Action() binding.Code {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.action
}

// Count returns the number of samples added since SetAction.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// PointCount returns how many of the n newest samples, after skipping the
// skip newest, are present.
func (t *Tracker) PointCount(n, skip int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pointCount(n, skip)
}

func (t *Tracker) pointCount(n, skip int) int {
	if n > len(t.nodes)-skip {
		n = len(t.nodes) - skip
	}
	for ; n > 0; n-- {
		if t.valid(t.next - n - skip) {
			return n
		}
	}
	return 0
}

// window returns the newest and oldest samples of the window, or false if
// it holds fewer than two.
func (t *Tracker) window(n, skip int) (newest, oldest Sample, ok bool) {
	n = t.pointCount(n, skip)
	if n < 2 {
		return Sample{}, Sample{}, false
	}
	return *t.node(t.next - 1 - skip), *t.node(t.next - n - skip), true
}

// Speed returns the pointer speed over the window in degrees per
// millisecond, where a full screen width or height counts as 360°.
// It is 0 with fewer than two samples or no elapsed time.
func (t *Tracker) Speed(n, skip int) float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	p1, p0, ok := t.window(n, skip)
	if !ok {
		return 0
	}
	dt := p1.T - p0.T
	if dt <= 0 {
		return 0
	}
	dx := float32(p1.X-p0.X) / float32(t.width) * 360
	dy := float32(p1.Y-p0.Y) / float32(t.height) * 360
	return math32.Sqrt(dx*dx+dy*dy) / float32(dt)
}

// DX returns the horizontal displacement over the window.
func (t *Tracker) DX(n, skip int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	p1, p0, ok := t.window(n, skip)
	if !ok {
		return 0
	}
	return p1.X - p0.X
}

// DY returns the vertical displacement over the window.
func (t *Tracker) DY(n, skip int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	p1, p0, ok := t.window(n, skip)
	if !ok {
		return 0
	}
	return p1.Y - p0.Y
}

// TimeDifference returns the time spanned by the n newest samples.
func (t *Tracker) TimeDifference(n int) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	p1, p0, ok := t.window(n, 0)
	if !ok {
		return 0
	}
	return p1.T - p0.T
}

// MinGestureDelay is the longest final interval, in milliseconds, after
// which a release still counts as a flick.
const MinGestureDelay = 5

// ExitRate returns the flick speed at release: Speed(4, 2) when the last
// two samples are at most MinGestureDelay apart, otherwise 0.
func (t *Tracker) ExitRate() float32 {
	if t.TimeDifference(2) > MinGestureDelay {
		return 0
	}
	return t.Speed(4, 2)
}

func (t *Tracker) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("%s nPoints = %d", t.action, t.next)
}
