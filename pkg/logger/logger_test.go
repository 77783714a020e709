package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(&buf, LogLevelDebug).Module("quiz").Module("runner").With(String("session_id", "abc"))

	log.Info("answered", Bool("correct", true), Duration("elapsed", 1500*time.Millisecond))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "answered", rec["msg"])
	assert.Equal(t, "quiz.runner", rec["module"])
	assert.Equal(t, "abc", rec["session_id"])
	assert.Equal(t, true, rec["correct"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, LogLevelWarn)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown", Error(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "error=boom")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Module("x").Error("dropped", Int("n", 1), Any("v", []int{1}))
	})
}
