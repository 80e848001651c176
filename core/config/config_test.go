package config_test

import (
	"testing"

	"config-compare/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Server.ApiKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5000, cfg.Worker.ReadyTimeoutMS)
	assert.Equal(t, 120000, cfg.Worker.TaskTimeoutMS)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKER_TASK_TIMEOUT_MS", "30000")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30000, cfg.Worker.TaskTimeoutMS)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5000, cfg.Worker.ReadyTimeoutMS)
}
