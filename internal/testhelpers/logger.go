package testhelpers

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/myrjola/checkpoint/internal/logging"
)

// NewLogger creates a new logger with the given log sink such as io.Discard.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}

// testWriter forwards each log line to t.Log so that output is only shown for failing or verbose tests.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// NewTestLogger creates a logger that writes through t.Log.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewLogger(testWriter{t: t})
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time {
		return now
	}
}
