package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/etudes/internal/config"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "LEVEL(99)"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LogLevelDebug, false},
		{"DEBUG", LogLevelDebug, false},
		{"info", LogLevelInfo, false},
		{"warn", LogLevelWarn, false},
		{"Warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"", LogLevelInfo, false},
		{"loud", LogLevelInfo, true},
	}

	for _, tt := range tests {
		result, err := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel('%s') error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnknownLogLevel) {
			t.Errorf("ParseLogLevel('%s') error = %v, want ErrUnknownLogLevel", tt.input, err)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "etudes"})

	logger.Info("opened %s at %d", "doc", 4)

	line := buf.String()
	if !strings.Contains(line, "[INFO] etudes: opened doc at 4") {
		t.Errorf("unexpected line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line should end with newline")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("filtered levels were written: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("missing warn/error: %q", out)
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf}).
		WithField("zeta", 1).
		WithComponent("session").
		WithField("alpha", "a").
		WithField("zeta", 2)

	logger.Info("msg")

	if !strings.Contains(buf.String(), "{alpha=a, component=session, zeta=2}") {
		t.Errorf("fields not sorted or not replaced: %q", buf.String())
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := root.WithComponent("child")

	child.Debug("hidden")
	root.SetLevel(LogLevelDebug)
	child.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written before SetLevel")
	}
	if !strings.Contains(out, "shown") {
		t.Error("child did not see parent's level change")
	}
	if child.Level() != LogLevelDebug {
		t.Errorf("child.Level() = %v", child.Level())
	}
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "etudes.log")
	logger, err := NewLoggerFromConfig(config.LoggingConfig{
		Level:      "debug",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, nil)
	if err != nil {
		t.Fatalf("NewLoggerFromConfig() error = %v", err)
	}

	logger.Debug("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	logger.Info("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
	if strings.Contains(string(data), "after close") {
		t.Error("write after Close reached the file")
	}
}

func TestNewLoggerFromConfig_BadLevel(t *testing.T) {
	if _, err := NewLoggerFromConfig(config.LoggingConfig{Level: "loud"}, nil); !errors.Is(err, ErrUnknownLogLevel) {
		t.Errorf("error = %v, want ErrUnknownLogLevel", err)
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Info("nothing")
	NullLogger.WithField("k", "v").Error("nothing")
	NullLogger.SetLevel(LogLevelDebug)
	if err := NullLogger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
