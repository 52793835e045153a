package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleColorOnlyOnTerminal(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(w io.Writer) bool { return w == os.Stdout }

	logPath := filepath.Join(t.TempDir(), "plain.log")
	logger, err := New(Options{
		Format:      "console",
		OutputPaths: []string{"stdout", logPath},
		Color:       "auto",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("careful", "file", "a.json")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if strings.Contains(line, "\x1b[") {
		t.Errorf("log file should not contain color codes, got %q", line)
	}
	if !strings.Contains(line, "WARN") || !strings.Contains(line, "file=a.json") {
		t.Errorf("unexpected log line %q", line)
	}
}

func TestFanoutHandler(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	info := new(slog.LevelVar)
	errLevel := new(slog.LevelVar)
	errLevel.Set(slog.LevelError)

	logger := slog.New(newFanoutHandler(
		newPrettyHandler(&infoBuf, info, false, false),
		nil,
		newPrettyHandler(&errBuf, errLevel, false, false),
	)).With("component", "batch")

	logger.Info("processed")
	logger.Error("failed")

	if got := strings.Count(infoBuf.String(), "\n"); got != 2 {
		t.Errorf("info handler wrote %d lines, want 2: %q", got, infoBuf.String())
	}
	if strings.Contains(errBuf.String(), "processed") || !strings.Contains(errBuf.String(), "failed") {
		t.Errorf("error handler output = %q", errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "batch") {
		t.Errorf("attrs should reach every handler, got %q", errBuf.String())
	}
}

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler().(NoopHandler); !ok {
		t.Error("no handlers should yield NoopHandler")
	}
	h := newPrettyHandler(io.Discard, new(slog.LevelVar), false, false)
	if got := newFanoutHandler(nil, h); got != h {
		t.Error("a single handler should be returned as is")
	}
}
