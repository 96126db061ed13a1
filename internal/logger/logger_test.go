package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{"gemini_api_key", "abc", "model", "gemini-2.5-flash", "Access_Token", "t", "input_tokens", 12, "dangling"})
	assert.Equal(t, []any{
		"gemini_api_key", "[REDACTED]",
		"model", "gemini-2.5-flash",
		"Access_Token", "[REDACTED]",
		"input_tokens", 12,
		"dangling",
	}, got)
}

func TestLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("secret", "s3").Warn("image request failed", "part", "opening", "api_key", "k")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "[REDACTED]", fields["secret"])
		assert.Equal(t, "[REDACTED]", fields["api_key"])
		assert.Equal(t, "opening", fields["part"])
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	l, err := New(Options{Mode: "prod", Level: "warn"})
	if assert.NoError(t, err) {
		l.Info("dropped")
	}
	Nop().Error("discarded")
}
