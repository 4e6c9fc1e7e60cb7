package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	log, err := New(&Config{Level: "warn", Format: "json"})
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))
	assert.True(t, log.Enabled(ctx, slog.LevelError))
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		t.Run("format "+format, func(t *testing.T) {
			log, err := New(&Config{Level: "info", Format: format})
			require.NoError(t, err)
			assert.NotNil(t, log.Logger)
		})
	}
}

func TestNewDefault(t *testing.T) {
	log := NewDefault()
	require.NotNil(t, log)

	ctx := context.Background()
	assert.True(t, log.Enabled(ctx, slog.LevelInfo))
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
}

func TestWith(t *testing.T) {
	log := NewDefault()
	child := log.With(slog.String("component", "test"))

	require.NotNil(t, child)
	assert.NotSame(t, log, child)
}
