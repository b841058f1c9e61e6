package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(int(slog.LevelInfo), &buf)

	l.Info("profile written", "user_id", "chris")

	out := buf.String()
	assert.Contains(t, out, "profile written")
	assert.Contains(t, out, "user_id=chris")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(int(slog.LevelWarn), &buf)

	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_NilWriterDefaultsToStderr(t *testing.T) {
	l := New(0, nil)
	assert.NotNil(t, l.Logger)
}
