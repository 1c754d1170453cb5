package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newBufLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{
		Level:     slog.LevelDebug,
		Component: component,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return l, &buf
}

func TestLoggerCarriesComponent(t *testing.T) {
	l, buf := newBufLogger(ComponentHTTP)
	l.Info("Request started", FieldMethod, "GET")

	line := buf.String()
	if !strings.Contains(line, "component=http") {
		t.Fatalf("missing component field: %s", line)
	}
	if !strings.Contains(line, "method=GET") {
		t.Fatalf("missing method field: %s", line)
	}
}

func TestWithComponentRebinds(t *testing.T) {
	l, buf := newBufLogger(ComponentApp)
	l.WithComponent(ComponentAMQP).ErrorContext(context.Background(), "Publish failed", FieldError, "boom")
	if !strings.Contains(buf.String(), "component=amqp") {
		t.Fatalf("component not rebound: %s", buf.String())
	}
}

func TestDefaultSharesProcessHandler(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(old)

	Default(ComponentAPI).Warn("Backend request failed", FieldStatusCode, 502)
	if !strings.Contains(buf.String(), "component=api") {
		t.Fatalf("output: %s", buf.String())
	}
}
