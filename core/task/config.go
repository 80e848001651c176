package task

import "time"

// Config holds configuration for the background task worker.
type Config struct {
	// ReadyTimeoutMS bounds how long a worker bring-up may take before
	// initialization fails.
	ReadyTimeoutMS int `mapstructure:"ready_timeout_ms" default:"5000"`
	// TaskTimeoutMS is the default per-task timeout.
	TaskTimeoutMS int `mapstructure:"task_timeout_ms" default:"120000"`
}

func (c Config) readyTimeout() time.Duration {
	if c.ReadyTimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ReadyTimeoutMS) * time.Millisecond
}

func (c Config) taskTimeout() time.Duration {
	if c.TaskTimeoutMS <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TaskTimeoutMS) * time.Millisecond
}
