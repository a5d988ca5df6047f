package config

import (
	"fmt"
	"time"

	"github.com/dshills/etudes/internal/engine/buffer"
)

// Section accessor methods return snapshot structs. Invalid values fall
// back to the default; use the typed getters to see the error.

// BufferConfig provides type-safe access to buffer settings.
type BufferConfig struct {
	// Kind names the backing variant ("mapped", "memory", "paged", "empty").
	Kind string

	// Capacity is the fixed buffer size in bytes.
	Capacity int

	// PageSize is the paged variant's page size in bytes.
	PageSize int

	// CachePages bounds the paged variant's resident pages.
	CachePages int

	// StateFiles enables the <path>.etude.json sidecar.
	StateFiles bool
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	Level string

	// File is the log file path. Empty logs to stderr.
	File string

	// MaxSizeMB is the size at which the log file rotates.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// MaxAgeDays is the age after which rotated files are removed.
	MaxAgeDays int

	// Compress gzips rotated files.
	Compress bool
}

// ScriptConfig provides type-safe access to scripting settings.
type ScriptConfig struct {
	// Timeout bounds a single script run.
	Timeout time.Duration
}

// Buffer returns type-safe access to buffer settings.
func (c *Config) Buffer() BufferConfig {
	return BufferConfig{
		Kind:       c.getStringOr("buffer.kind", "mapped"),
		Capacity:   c.getSizeOr("buffer.capacity", 64*1024),
		PageSize:   c.getSizeOr("buffer.pageSize", buffer.DefaultPageSize),
		CachePages: c.getIntOr("buffer.cachePages", buffer.DefaultCachePages),
		StateFiles: c.getBoolOr("buffer.stateFiles", true),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level:      c.getStringOr("logging.level", "info"),
		File:       c.getStringOr("logging.file", ""),
		MaxSizeMB:  c.getIntOr("logging.maxSizeMB", 10),
		MaxBackups: c.getIntOr("logging.maxBackups", 3),
		MaxAgeDays: c.getIntOr("logging.maxAgeDays", 28),
		Compress:   c.getBoolOr("logging.compress", false),
	}
}

// Script returns type-safe access to scripting settings.
func (c *Config) Script() ScriptConfig {
	return ScriptConfig{
		Timeout: c.getDurationOr("script.timeout", 5*time.Second),
	}
}

// BufferOptions builds buffer construction options for path. Unlike
// Buffer, it reports invalid kind and size settings.
func (c *Config) BufferOptions(path string) (buffer.Options, error) {
	name, err := c.GetString("buffer.kind")
	if err != nil {
		return buffer.Options{}, fmt.Errorf("buffer.kind: %w", err)
	}
	kind, err := buffer.ParseKind(name)
	if err != nil {
		return buffer.Options{}, &ValueError{Path: "buffer.kind", Value: name, Err: err}
	}
	capacity, err := c.GetSize("buffer.capacity")
	if err != nil {
		return buffer.Options{}, err
	}

	cfg := c.Buffer()
	return buffer.Options{
		Kind:       kind,
		Path:       path,
		Capacity:   capacity,
		PageSize:   cfg.PageSize,
		CachePages: cfg.CachePages,
	}, nil
}

func (c *Config) getStringOr(path, def string) string {
	if v, err := c.GetString(path); err == nil {
		return v
	}
	return def
}

func (c *Config) getIntOr(path string, def int) int {
	if v, err := c.GetInt(path); err == nil {
		return v
	}
	return def
}

func (c *Config) getBoolOr(path string, def bool) bool {
	if v, err := c.GetBool(path); err == nil {
		return v
	}
	return def
}

func (c *Config) getDurationOr(path string, def time.Duration) time.Duration {
	if v, err := c.GetDuration(path); err == nil {
		return v
	}
	return def
}

func (c *Config) getSizeOr(path string, def int) int {
	if v, err := c.GetSize(path); err == nil {
		return v
	}
	return def
}
