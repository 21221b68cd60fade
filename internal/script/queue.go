package script

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the number of scripts a Queue buffers.
const DefaultQueueSize = 32

type queued struct {
	text string
	gen  uint64
}

// Queue runs scripts one at a time on the goroutine that calls Serve, so
// that a timed camera move never holds up the caller of Run. It satisfies
// input.ScriptRunner.
//
// Usage:
//
//	q := NewQueue(runner, 0)
//	go q.Serve(ctx)
//
//	// From the event goroutine:
//	_ = q.Run(`navigate(1, 0, 0, 0)`)
//	q.Cancel() // aborts the move
type Queue struct {
	runner *Runner
	queue  chan queued
	done   chan struct{}

	mu sync.Mutex
	// gen is bumped by Cancel; scripts queued under an older generation
	// are dropped.
	gen    uint64
	cancel context.CancelFunc

	completed atomic.Uint64
	failures  atomic.Uint64
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewQueue creates a queue in front of runner. A size of zero or less
// uses DefaultQueueSize.
func NewQueue(runner *Runner, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		runner: runner,
		queue:  make(chan queued, size),
		done:   make(chan struct{}),
	}
}

// Run queues script and returns without waiting for it. It fails with
// ErrQueueFull when Serve is not keeping up.
func (q *Queue) Run(script string) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	q.mu.Lock()
	item := queued{text: script, gen: q.gen}
	q.mu.Unlock()

	select {
	case q.queue <- item:
		return nil
	default:
		q.dropped.Add(1)
		logger.Warnf("script queue full, dropping %q", script)
		return ErrQueueFull
	}
}

// Cancel aborts the running script and drops every script queued before
// the call. It does not wait.
func (q *Queue) Cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.gen++
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}

// Serve runs queued scripts until ctx is done or the queue is closed.
// Each script runs under its own context derived from ctx.
func (q *Queue) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return ErrQueueClosed
		case item := <-q.queue:
			q.execute(ctx, item)
		}
	}
}

func (q *Queue) execute(ctx context.Context, item queued) {
	q.mu.Lock()
	if item.gen != q.gen {
		q.mu.Unlock()
		q.dropped.Add(1)
		logger.Debugf("script %q cancelled before it ran", item.text)
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	q.mu.Unlock()

	err := q.runner.RunContext(runCtx, item.text)

	q.mu.Lock()
	q.cancel = nil
	q.mu.Unlock()
	canceled := runCtx.Err() != nil && ctx.Err() == nil
	cancel()

	q.completed.Add(1)
	switch {
	case err == nil:
	case canceled:
		logger.Debugf("script %q cancelled: %v", item.text, err)
	default:
		q.failures.Add(1)
		logger.Warnf("script %q: %v", item.text, err)
	}
}

// Completed returns the number of scripts that have run, including those
// cancelled part way.
func (q *Queue) Completed() uint64 {
	return q.completed.Load()
}

// Failures returns the number of scripts that ended in an error other
// than cancellation.
func (q *Queue) Failures() uint64 {
	return q.failures.Load()
}

// Dropped returns the number of scripts that never ran, because the queue
// was full or they were cancelled while waiting.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Close stops Serve and aborts the running script. Scripts still queued
// are discarded.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		q.Cancel()
		close(q.done)
	})
}
