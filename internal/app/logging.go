package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dshills/etudes/internal/config"
)

// LogLevel orders messages by severity. Messages below the logger's level
// are dropped.
type LogLevel int32

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name. Unknown names return LogLevelInfo
// and ErrUnknownLogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
	}
}

// sink is the destination shared by a logger and everything derived from it.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	level  atomic.Int32
}

// Logger is a leveled logger with printf-style messages and sorted fields.
// Loggers derived with WithField share their parent's output and level.
type Logger struct {
	sink   *sink
	prefix string
	fields []field
}

type field struct {
	key   string
	value any
}

// LoggerConfig selects the level, destination and rotation policy.
// Output is used only when File is empty.
type LoggerConfig struct {
	Level  LogLevel
	Output io.Writer
	Prefix string

	// File, when set, sends output to a rotating log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultLoggerConfig logs at info to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "etudes",
	}
}

// NewLogger opens the configured destination. With File set, output goes
// to a lumberjack rotating file which Close releases.
func NewLogger(cfg LoggerConfig) *Logger {
	s := &sink{out: cfg.Output}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		s.out, s.closer = lj, lj
	}
	if s.out == nil {
		s.out = os.Stderr
	}
	s.level.Store(int32(cfg.Level))

	return &Logger{sink: s, prefix: cfg.Prefix}
}

// NewLoggerFromConfig builds a logger from the logging config section.
// out is used when no log file is configured.
func NewLoggerFromConfig(cfg config.LoggingConfig, out io.Writer) (*Logger, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return NewLogger(LoggerConfig{
		Level:      level,
		Output:     out,
		Prefix:     "etudes",
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}), nil
}

// WithField derives a logger that also prints key=value. Setting a key
// twice keeps the latest value. Fields print in key order.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make([]field, 0, len(l.fields)+1)
	for _, f := range l.fields {
		if f.key != key {
			fields = append(fields, f)
		}
	}
	fields = append(fields, field{key: key, value: value})
	slices.SortFunc(fields, func(a, b field) int {
		return strings.Compare(a.key, b.key)
	})

	return &Logger{sink: l.sink, prefix: l.prefix, fields: fields}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level for this logger and all loggers
// sharing its output.
func (l *Logger) SetLevel(level LogLevel) {
	if l.sink != nil {
		l.sink.level.Store(int32(level))
	}
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	if l.sink == nil {
		return LogLevelError + 1
	}
	return LogLevel(l.sink.level.Load())
}

// Debug logs at debug level. msg is a format string when args are given.
func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.log(LogLevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.log(LogLevelWarn, msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args...) }

// Close closes the log file, if any. Loggers sharing the output stop
// writing to it.
func (l *Logger) Close() error {
	if l.sink == nil || l.sink.closer == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	err := l.sink.closer.Close()
	l.sink.closer = nil
	l.sink.out = io.Discard
	return err
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if l.sink == nil || level < l.Level() {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	line := fmt.Appendf(nil, "%s [%s] ", time.Now().Format("2006-01-02T15:04:05.000"), level)
	if l.prefix != "" {
		line = append(line, l.prefix...)
		line = append(line, ": "...)
	}
	line = append(line, msg...)
	for i, f := range l.fields {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		line = fmt.Appendf(line, "%s%s=%v", sep, f.key, f.value)
	}
	if len(l.fields) > 0 {
		line = append(line, '}')
	}
	line = append(line, '\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = l.sink.out.Write(line)
}

// NullLogger has no sink and drops everything.
var NullLogger = &Logger{}
