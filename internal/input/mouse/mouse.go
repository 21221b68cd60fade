package mouse

import (
	"math"
	"time"

	"github.com/dshills/molnav/internal/input/binding"
)

// Position is a point in screen pixels.
type Position struct {
	X int
	Y int
}

// Equal returns true if both positions are the same.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Within returns true if other is no more than tol pixels away on
// each axis.
func (p Position) Within(other Position, tol int) bool {
	return abs(p.X-other.X) <= tol && abs(p.Y-other.Y) <= tol
}

// Sample is a pointer position stamped with its modifiers and time.
type Sample struct {
	Position
	Mods binding.Code
	// Time is in milliseconds on the event clock; -1 means unset.
	Time int64
}

// unset is the state of a sample nothing has been recorded into.
var unset = Sample{Position: Position{X: -1000, Y: -1000}, Time: -1}

// matches reports whether (pos, mods, t) continues s: within tol pixels,
// with identical modifiers and less than maxDelay after it.
func (s Sample) matches(pos Position, mods binding.Code, t int64, tol int, maxDelay int64) bool {
	return s.Within(pos, tol) && s.Mods == mods && t-s.Time < maxDelay
}

// Config contains debouncer configuration.
type Config struct {
	// MaxClickDelay is the longest gap between two clicks or presses that
	// still continues a sequence.
	MaxClickDelay time.Duration

	// Tolerance is how far, per axis and in pixels, the pointer may wander
	// while still counting as the same spot.
	Tolerance int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxClickDelay: 700 * time.Millisecond,
		Tolerance:     0,
	}
}

// Release classifies a button release.
type Release uint8

const (
	// ReleaseClick means the pointer did not leave the press spot.
	ReleaseClick Release = iota
	// ReleaseDrag means the pointer left the press spot before release.
	ReleaseDrag
)

// String returns a string representation of the release kind.
func (r Release) String() string {
	switch r {
	case ReleaseClick:
		return "click"
	case ReleaseDrag:
		return "drag"
	default:
		return "unknown"
	}
}

const noDelayLimit = math.MaxInt64

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
