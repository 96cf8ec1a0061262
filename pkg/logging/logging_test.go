package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn)

	log.Info("too quiet")
	log.Warn("loud enough")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "loud enough")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelInfo)

	log.Info("hello", "answer", 42)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"answer":42`)
}

func TestAppendCtx(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelInfo)

	ctx := AppendCtx(context.Background(), slog.String("session", "abc123"))
	ctx = AppendCtx(ctx, slog.Int("frame", 7))

	log.InfoContext(ctx, "processed")

	out := buf.String()
	assert.Contains(t, out, "session=abc123")
	assert.Contains(t, out, "frame=7")

	// A bare context stays clean.
	buf.Reset()
	log.InfoContext(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "session")
}
