package task

import "errors"

var (
	// ErrTimeout settles a task whose worker response did not arrive in time.
	ErrTimeout = errors.New("task timed out")
	// ErrWorkerCrashed settles every task that was pending when the
	// background worker died or was defensively restarted.
	ErrWorkerCrashed = errors.New("worker crashed")
	// ErrTerminated settles pending tasks when the manager shuts down, and
	// rejects submissions to a terminated manager.
	ErrTerminated = errors.New("manager terminated")
	// ErrInitTimeout reports that the worker never sent its ready
	// handshake within the bring-up window.
	ErrInitTimeout = errors.New("worker failed to become ready")
)
