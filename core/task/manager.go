package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns exactly one background worker and the table of tasks
// pending on it. It supervises the worker's lifecycle: bring-up with a
// ready handshake, per-task timeouts, and automatic restart after a
// crash. Multiple Manager instances are fully independent.
type Manager struct {
	cfg            Config
	logger         *zap.Logger
	globalProgress func(taskID string, p Progress)

	mu       sync.Mutex
	state    State
	handlers map[string]Handler
	pending  map[string]*pendingTask
	unit     *unit
	readyCh  chan struct{}
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithConfig overrides the default timeouts.
func WithConfig(cfg Config) ManagerOption {
	return func(m *Manager) { m.cfg = cfg }
}

// WithProgressHook installs a manager-level hook invoked for every
// progress report of every task, alongside the task's own callback.
func WithProgressHook(fn func(taskID string, p Progress)) ManagerOption {
	return func(m *Manager) { m.globalProgress = fn }
}

// NewManager creates a manager. Handlers must be registered before the
// first Initialize or Execute call.
func NewManager(logger *zap.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		logger:   logger,
		handlers: make(map[string]Handler),
		pending:  make(map[string]*pendingTask),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register binds a handler to a task type.
func (m *Manager) Register(taskType string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[taskType] = h
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Initialize spins up the background worker if needed and waits for its
// ready handshake. It is safe to call concurrently; late callers attach
// to the in-flight bring-up. Failure to hand-shake within the configured
// window tears the worker down and returns ErrInitTimeout.
func (m *Manager) Initialize(ctx context.Context) error {
	deadline := time.Now().Add(m.cfg.readyTimeout())

	for {
		m.mu.Lock()
		switch m.state {
		case StateReady:
			m.mu.Unlock()
			return nil
		case StateTerminated:
			m.mu.Unlock()
			return ErrTerminated
		case StateUninitialized:
			m.spawnLocked()
		}
		readyCh := m.readyCh
		m.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			m.failBringUp()
			return ErrInitTimeout
		}

		select {
		case <-readyCh:
			// Re-check the state: the channel also closes on teardown.
		case <-time.After(remaining):
			m.failBringUp()
			return ErrInitTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Execute submits a task and blocks until it settles. Every task
// settles: with its result, a per-task error, ErrTimeout, or a
// crash/termination rejection. Cancelling ctx stops the wait but not
// the task; the pending entry is settled by its timeout at the latest.
func (m *Manager) Execute(ctx context.Context, taskType string, data any, opts ...ExecuteOption) (any, error) {
	options := executeOptions{timeout: m.cfg.taskTimeout()}
	for _, opt := range opts {
		opt(&options)
	}

	// Await a Ready worker; a crash between Initialize and dispatch just
	// loops into the respawned unit's bring-up.
	var u *unit
	for u == nil {
		if err := m.Initialize(ctx); err != nil {
			return nil, err
		}
		m.mu.Lock()
		if m.state == StateReady {
			u = m.unit
		} else {
			m.mu.Unlock()
		}
	}

	id := uuid.NewString()
	pt := &pendingTask{
		id:         id,
		settled:    make(chan settlement, 1),
		onProgress: options.onProgress,
	}
	m.pending[id] = pt
	pt.timer = time.AfterFunc(options.timeout, func() { m.timeoutTask(id) })
	requests := u.requests
	m.mu.Unlock()

	select {
	case requests <- request{taskID: id, taskType: taskType, data: data}:
	case s := <-pt.settled:
		// Rejected before dispatch (crash or termination).
		return s.result, s.err
	case <-ctx.Done():
		m.dropPending(id)
		return nil, ctx.Err()
	}

	select {
	case s := <-pt.settled:
		return s.result, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ExecuteOption configures a single task submission.
type ExecuteOption func(*executeOptions)

type executeOptions struct {
	timeout    time.Duration
	onProgress func(Progress)
}

// WithTimeout overrides the task's timeout.
func WithTimeout(d time.Duration) ExecuteOption {
	return func(o *executeOptions) { o.timeout = d }
}

// WithProgress installs a per-task progress callback.
func WithProgress(fn func(Progress)) ExecuteOption {
	return func(o *executeOptions) { o.onProgress = fn }
}

// Restart defensively replaces the background worker. Every pending
// task is rejected with ErrWorkerCrashed.
func (m *Manager) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateTerminated {
		return
	}
	m.rejectAllLocked(ErrWorkerCrashed)
	m.teardownLocked()
	m.spawnLocked()
}

// Terminate rejects all pending tasks with ErrTerminated and shuts the
// worker down for good.
func (m *Manager) Terminate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateTerminated {
		return
	}
	m.rejectAllLocked(ErrTerminated)
	m.teardownLocked()
	m.state = StateTerminated
}

// spawnLocked starts a fresh worker/supervisor pair. Caller holds mu and
// guarantees state is Uninitialized.
func (m *Manager) spawnLocked() {
	m.state = StateInitializing
	m.readyCh = make(chan struct{})

	unitCtx, cancel := context.WithCancel(context.Background())
	u := &unit{
		requests: make(chan request, 16),
		cancel:   cancel,
	}
	m.unit = u

	handlers := make(map[string]Handler, len(m.handlers))
	for k, v := range m.handlers {
		handlers[k] = v
	}

	responses := make(chan response, 16)
	go runWorker(unitCtx, handlers, u.requests, responses)
	go m.supervise(u, responses)
}

// supervise drains worker responses until the worker exits. An exit the
// manager did not command is a crash: all pending tasks are rejected
// and a replacement worker is spawned.
func (m *Manager) supervise(u *unit, responses <-chan response) {
	for resp := range responses {
		m.handleResponse(u, resp)
	}

	if u.intentional.Load() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unit != u || m.state == StateTerminated {
		return
	}
	m.logger.Warn("background worker crashed, restarting",
		zap.Int("pending_tasks", len(m.pending)))
	m.rejectAllLocked(ErrWorkerCrashed)
	m.teardownLocked()
	m.spawnLocked()
}

func (m *Manager) handleResponse(u *unit, resp response) {
	if resp.ready {
		m.mu.Lock()
		if m.unit == u && m.state == StateInitializing {
			m.state = StateReady
			close(m.readyCh)
		}
		m.mu.Unlock()
		return
	}

	if resp.progress != nil {
		m.mu.Lock()
		pt := m.pending[resp.taskID]
		hook := m.globalProgress
		m.mu.Unlock()
		if pt != nil && pt.onProgress != nil {
			pt.onProgress(*resp.progress)
		}
		if hook != nil {
			hook(resp.taskID, *resp.progress)
		}
		return
	}

	m.mu.Lock()
	pt, ok := m.pending[resp.taskID]
	if ok {
		delete(m.pending, resp.taskID)
	}
	m.mu.Unlock()
	if !ok {
		// Already settled by timeout or rejection; drop the late response.
		return
	}
	pt.timer.Stop()
	pt.settled <- settlement{result: resp.result, err: resp.err}
}

// timeoutTask settles one task with ErrTimeout, then defensively
// restarts the worker. The restart rejects unrelated in-flight tasks as
// crashed; that collateral is accepted behavior, documented so callers
// sharing a manager can sequence long tasks if they need isolation.
func (m *Manager) timeoutTask(id string) {
	m.mu.Lock()
	pt, ok := m.pending[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	delete(m.pending, id)
	m.mu.Unlock()

	pt.settled <- settlement{err: ErrTimeout}
	m.logger.Warn("task timed out, restarting worker", zap.String("task_id", id))
	m.Restart()
}

// failBringUp aborts an initialization that exceeded the ready window.
func (m *Manager) failBringUp() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateInitializing {
		return
	}
	m.logger.Warn("worker bring-up timed out")
	m.teardownLocked()
}

// teardownLocked stops the current unit and resets to Uninitialized
// without touching pending tasks. Caller holds mu.
func (m *Manager) teardownLocked() {
	if m.unit != nil {
		m.unit.intentional.Store(true)
		m.unit.cancel()
		m.unit = nil
	}
	if m.state == StateInitializing {
		// Wake Initialize waiters so they observe the reset state.
		close(m.readyCh)
	}
	m.state = StateUninitialized
}

// rejectAllLocked settles every pending task with err. Caller holds mu.
func (m *Manager) rejectAllLocked(err error) {
	for id, pt := range m.pending {
		if pt.timer != nil {
			pt.timer.Stop()
		}
		pt.settled <- settlement{err: err}
		delete(m.pending, id)
	}
}

func (m *Manager) dropPending(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pt, ok := m.pending[id]; ok {
		if pt.timer != nil {
			pt.timer.Stop()
		}
		delete(m.pending, id)
	}
}
