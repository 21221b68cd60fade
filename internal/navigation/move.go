package navigation

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/molnav/internal/geom"
)

// Move is a timed camera change. Nil fields are left alone; a zero
// Degrees means no rotation.
type Move struct {
	Axis    geom.Vec3
	Degrees float32
	// Center is the navigation centre to travel to, in model coordinates.
	Center *geom.Vec3
	// DepthPercent is the final navigation depth.
	DepthPercent *float32
	// XTrans and YTrans are the final screen position, in pixels, of the
	// navigation point.
	XTrans *float32
	YTrans *float32
}

// IsZero reports whether m changes nothing.
func (m Move) IsZero() bool {
	return m.Degrees == 0 && m.Center == nil && m.DepthPercent == nil && m.XTrans == nil && m.YTrans == nil
}

// Ptr returns a pointer to v, for filling the optional fields of Move.
func Ptr[T any](v T) *T {
	return &v
}

// Result reports how a timed move ended.
type Result struct {
	RunID    uuid.UUID
	Steps    int
	Canceled bool
}

// Animator runs timed camera moves on the caller's goroutine.
type Animator interface {
	NavigateTo(ctx context.Context, seconds float32, m Move) Result
}
