package logger_test

import (
	"testing"

	"config-compare/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    logger.Config
		level  zapcore.Level
		debugs bool
	}{
		{"Defaults", logger.Config{Level: "info", Format: "json"}, zapcore.InfoLevel, false},
		{"Console debug", logger.Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, true},
		{"Warn json", logger.Config{Level: "warn", Format: "json"}, zapcore.WarnLevel, false},
		{"Unknown level falls back to info", logger.Config{Level: "loud", Format: "json"}, zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, l)

			assert.Equal(t, tt.debugs, l.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, l.Core().Enabled(tt.level))
		})
	}
}
