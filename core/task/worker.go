package task

import (
	"context"
	"fmt"
)

// runWorker is the background execution unit: a single goroutine that
// announces readiness, then serially executes requests until its context
// is cancelled. It owns no manager state; everything crosses the
// request/response channels. Closing responses is the worker's death
// notice to the supervisor.
func runWorker(ctx context.Context, handlers map[string]Handler, requests <-chan request, responses chan<- response) {
	defer close(responses)

	responses <- response{ready: true}

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			result, err := invoke(ctx, handlers, req, responses)
			select {
			case responses <- response{taskID: req.taskID, result: result, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// invoke runs one task, converting handler panics into per-task errors
// so a misbehaving computation cannot take the unit down.
func invoke(ctx context.Context, handlers map[string]Handler, req request, responses chan<- response) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("task %s panicked: %v", req.taskType, r)
		}
	}()

	h, ok := handlers[req.taskType]
	if !ok {
		return nil, fmt.Errorf("unknown task type: %s", req.taskType)
	}

	report := func(p Progress) {
		select {
		case responses <- response{taskID: req.taskID, progress: &p}:
		case <-ctx.Done():
		}
	}

	return h(ctx, req.data, report)
}
