package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"", zap.InfoLevel},
		{"INFO", zap.InfoLevel},
		{"warning", zap.WarnLevel},
		{"error", zap.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.level)
		require.NoError(t, err, tt.level)
		assert.True(t, log.Core().Enabled(tt.want), tt.level)
		if tt.want > zap.DebugLevel {
			assert.False(t, log.Core().Enabled(tt.want-1), tt.level)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}
