// Package config centralizes application configuration loading.
//
// Configuration is sourced from environment variables, with optional overrides
// from a .env file in the working directory. Defaults are declared as struct
// tags on the partial configuration types owned by each subsystem (server,
// logger, worker) and bound into Viper via reflection, so a new knob only
// needs a `mapstructure` and `default` tag to become configurable.
//
// Environment variables map onto nested keys by replacing dots with
// underscores, e.g. SERVER_PORT -> server.port, WORKER_TASK_TIMEOUT_MS ->
// worker.task_timeout_ms.
package config
