// Package task runs registered computations on a supervised background
// worker so heavy comparisons stay off the caller's path.
//
// Each Manager owns exactly one worker goroutine (not a pool) and talks
// to it purely over request/response channels; no task state is shared.
// The lifecycle is Uninitialized -> Initializing -> Ready, back to
// Uninitialized via restart after a crash, and Terminated on shutdown.
//
// # Settlement guarantees
//
// Every submitted task settles: with its handler's result, with a
// per-task error (including recovered panics), with ErrTimeout when no
// worker response arrives within the task's timeout, or with
// ErrWorkerCrashed / ErrTerminated when the unit dies or the manager
// shuts down. A timeout additionally triggers a defensive worker
// restart, which rejects unrelated in-flight tasks as crashed — callers
// needing isolation must sequence their submissions.
//
// There is no cancellation token: abandoning Execute's result stops the
// wait, not the work.
package task
