package task

import (
	"context"
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a Manager's background unit.
type State int

const (
	// StateUninitialized means no worker exists yet.
	StateUninitialized State = iota
	// StateInitializing means a worker was spawned and the manager is
	// waiting for its ready handshake.
	StateInitializing
	// StateReady means the worker accepted its last handshake and tasks
	// can be dispatched.
	StateReady
	// StateTerminated is final; a terminated manager accepts no tasks.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Progress is an intermediate task status report. It never settles the
// task.
type Progress struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
}

// Handler executes one task type inside the background worker. The
// report callback forwards progress to the submitting caller. Handlers
// must be pure over their inputs; the worker recovers panics and turns
// them into per-task errors.
type Handler func(ctx context.Context, data any, report func(Progress)) (any, error)

// request and response form the message protocol between the manager
// and its worker. A response carries exactly one of: the ready
// handshake, a progress report, or a settlement.
type request struct {
	taskID   string
	taskType string
	data     any
}

type response struct {
	taskID   string
	ready    bool
	progress *Progress
	result   any
	err      error
}

type settlement struct {
	result any
	err    error
}

// pendingTask is one outstanding request. The settled channel is
// buffered and receives exactly one settlement; the timer and the map
// entry are only touched under the manager's mutex.
type pendingTask struct {
	id         string
	settled    chan settlement
	timer      *time.Timer
	onProgress func(Progress)
}

// unit is one spawned worker instance. intentional marks teardowns
// initiated by the manager so the supervisor can tell a commanded stop
// from a crash.
type unit struct {
	requests    chan request
	cancel      context.CancelFunc
	intentional atomic.Bool
}
