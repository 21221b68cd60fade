package animate

import (
	"context"
	"sync"
	"time"
)

// Clock paces animation steps.
type Clock interface {
	// Now returns the time elapsed since an arbitrary fixed origin.
	Now() time.Duration
	// Sleep waits for d or until ctx is done, in which case it returns the
	// context's error.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is the wall clock.
type RealClock struct {
	start time.Time
}

// NewRealClock creates a wall clock with its origin at the current time.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now returns the time since the clock was created.
func (c *RealClock) Now() time.Duration {
	return time.Since(c.start)
}

// Sleep waits for d or until ctx is done.
func (c *RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// VirtualClock is a logical clock for tests. Sleep returns at once and
// moves the clock forward; Advance simulates work between sleeps.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Duration
	sleeps []time.Duration
}

// NewVirtualClock creates a virtual clock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Now returns the virtual time.
func (c *VirtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *VirtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Sleep records d and moves the clock forward by it, unless ctx is done.
func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.now += d
	}
	return nil
}

// Sleeps returns the durations passed to Sleep so far.
func (c *VirtualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}
