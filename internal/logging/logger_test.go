package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scribe.log")
	logger, err := New(Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello", String("key", "value"))
	// File handlers append without buffering; content must be visible now.
	data := readFile(t, path)
	if !strings.Contains(data, `"msg":"hello"`) {
		t.Fatalf("expected message in log output, got %q", data)
	}
	if !strings.Contains(data, `"key":"value"`) {
		t.Fatalf("expected attribute in log output, got %q", data)
	}
}

func TestConsoleHandlerIncludesStageLabel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	ctx := services.WithStage(context.Background(), "transcribe")
	WithContext(ctx, logger).Info("stage started")

	out := buf.String()
	if !strings.Contains(out, "[transcribe]") {
		t.Fatalf("expected stage label in %q", out)
	}
	if !strings.Contains(out, "stage started") {
		t.Fatalf("expected message in %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for non-terminal writer: %q", out)
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := WithContext(context.Background(), nil)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("must not panic")
}

func TestNewComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&buf, lvl))
	NewComponentLogger(base, "muxer").Info("done")
	if !strings.Contains(buf.String(), "[muxer]") {
		t.Fatalf("expected component label in %q", buf.String())
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
