package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with custom options", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(
			WithOutput(&buf),
			WithLevel(slog.LevelDebug),
			WithFormat(FormatText),
		)

		logger.Debug("test message", "key", "value")
		output := buf.String()

		if !strings.Contains(output, "test message") {
			t.Errorf("expected output to contain 'test message', got: %s", output)
		}
		if !strings.Contains(output, "key=value") {
			t.Errorf("expected output to contain 'key=value', got: %s", output)
		}
	})

	t.Run("respects log level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(WithOutput(&buf), WithQuiet())

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
			t.Error("debug and info should not appear with warn level")
		}
		if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
			t.Error("warn and error should appear with warn level")
		}
	})

	t.Run("json format with component", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(WithOutput(&buf), WithFormat(FormatJSON), WithComponent("store"))
		logger.With("prefix", "SKU").Info("allocated", "last", 7)

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
		}
		if record["component"] != "store" || record["prefix"] != "SKU" || record["msg"] != "allocated" {
			t.Errorf("unexpected record: %v", record)
		}
	})
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	logger.With("a", 1).WithGroup("g").Info("test")

	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithOutput(&buf))

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Info("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("expected context logger to be used, got: %s", buf.String())
	}

	// Missing logger falls back to a no-op one
	FromContext(context.Background()).Info("dropped")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Error("ParseFormat mismatch")
	}
}
