package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("script: state is closed")

	// ErrTimeout is returned when a chunk runs longer than the state's
	// execution timeout.
	ErrTimeout = errors.New("script: execution timeout")
)

var (
	// ErrQueueFull is returned when a script is queued faster than the
	// queue runs them.
	ErrQueueFull = errors.New("script: queue full")

	// ErrQueueClosed is returned when queueing on a closed queue.
	ErrQueueClosed = errors.New("script: queue closed")
)
