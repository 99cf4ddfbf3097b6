package logutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, LevelTrace))
	t.Cleanup(func() { slog.SetDefault(prev) })

	Trace("hello", "k", 1)

	out := buf.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "k=1")
	assert.Contains(t, out, "source=logutil_test.go:")
}

func TestTraceDisabled(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(NewLogger(&buf, slog.LevelInfo))
	t.Cleanup(func() { slog.SetDefault(prev) })

	Trace("hidden")
	assert.Empty(t, buf.String())
}
