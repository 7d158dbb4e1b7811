package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"Trace", LevelTrace},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ParseLevel(tc.in), tc.in)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("info", &buf)
	l.Debug("hidden")
	l.Info("shown", "generation", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "generation=3")
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("trace", &buf)
	Trace(l, "step", "generation", 1)

	require.True(t, strings.Contains(buf.String(), "level=TRACE"), buf.String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
}
