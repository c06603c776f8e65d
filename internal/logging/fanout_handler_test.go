package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestTeeHandlerNilHandlers(t *testing.T) {
	if _, ok := TeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
}

func TestTeeHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := TeeHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := TeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug disabled for both handlers")
	}

	logger := slog.New(h).With("chapter", 2)
	logger.Info("info message")
	if infoBuf.Len() == 0 {
		t.Fatal("expected output at info level")
	}
	if warnBuf.Len() != 0 {
		t.Fatal("expected warn handler to filter info")
	}

	logger.Warn("warn message")
	if !bytes.Contains(warnBuf.Bytes(), []byte(`"chapter":2`)) {
		t.Fatalf("expected attrs to propagate, got %s", warnBuf.String())
	}
}
