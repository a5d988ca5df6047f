package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dshills/etudes/internal/config/loader"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "ETUDES_"

var errNegativeSize = errors.New("negative size")

// Config is the layered configuration. It is safe for concurrent use.
type Config struct {
	mu sync.RWMutex

	fs        loader.FileSystem
	path      string
	envPrefix string
	useEnv    bool

	defaults  map[string]any
	file      map[string]any
	env       map[string]any
	overrides map[string]any
	merged    map[string]any
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the TOML file to load. An empty path disables the file layer.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system used to read the config file.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// New creates a Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		path:      DefaultPath(),
		envPrefix: EnvPrefix,
		useEnv:    true,
		defaults:  defaultConfig(),
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.merge()
	return c
}

// DefaultPath returns the user config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "etudes", "config.toml")
}

// Path returns the config file path.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Load reads the file and environment layers. A missing file is not an error.
func (c *Config) Load(_ context.Context) error {
	var file, env map[string]any

	if c.path != "" {
		data, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
		if err != nil {
			return err
		}
		file = data
	}

	if c.useEnv {
		data, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return err
		}
		env = data
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.file = file
	c.env = env
	c.merge()
	return nil
}

// merge rebuilds the merged view. Caller must hold the write lock or be
// the sole owner.
func (c *Config) merge() {
	merged := make(map[string]any)
	for _, layer := range []map[string]any{c.defaults, c.file, c.env, c.overrides} {
		if len(layer) > 0 {
			merged = loader.DeepMerge(merged, copyMap(layer))
		}
	}
	c.merged = merged
}

// Set stores a value in the override layer.
func (c *Config) Set(path string, value any) error {
	if path == "" {
		return fmt.Errorf("set: empty path: %w", ErrSettingNotFound)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	loader.SetPath(c.overrides, path, value)
	c.merge()
	return nil
}

// Get reads the merged view. Paths are dot-separated, e.g. "buffer.kind".
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return loader.GetPath(c.merged, path)
}

// lookup fetches path and asserts its type. want names the type in errors.
func lookup[T any](c *Config, path, want string) (T, error) {
	var zero T
	v, ok := c.Get(path)
	if !ok {
		return zero, fmt.Errorf("%s: %w", path, ErrSettingNotFound)
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{Path: path, Expected: want, Actual: typeName(v)}
	}
	return t, nil
}

// GetString returns the string at path.
func (c *Config) GetString(path string) (string, error) {
	return lookup[string](c, path, "string")
}

// GetBool returns the boolean at path.
func (c *Config) GetBool(path string) (bool, error) {
	return lookup[bool](c, path, "bool")
}

// GetInt accepts any numeric value; floats are truncated.
func (c *Config) GetInt(path string) (int, error) {
	v, err := lookup[any](c, path, "int")
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

// GetDuration returns a duration at the given path. Strings are parsed
// with time.ParseDuration; bare integers are milliseconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, err := lookup[any](c, path, "duration")
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, &ValueError{Path: path, Value: val, Err: err}
		}
		return d, nil
	case int64:
		return time.Duration(val) * time.Millisecond, nil
	case int:
		return time.Duration(val) * time.Millisecond, nil
	default:
		return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
	}
}

// GetSize returns a byte count at the given path. Strings are parsed with
// humanize ("64KiB", "1 MB"); integers are taken as bytes.
func (c *Config) GetSize(path string) (int, error) {
	v, err := lookup[any](c, path, "size")
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case string:
		n, err := humanize.ParseBytes(val)
		if err != nil {
			return 0, &ValueError{Path: path, Value: val, Err: err}
		}
		if n > math.MaxInt {
			return 0, &ValueError{Path: path, Value: val, Err: errors.New("size overflows int")}
		}
		return int(n), nil
	case int64:
		if val < 0 {
			return 0, &ValueError{Path: path, Value: val, Err: errNegativeSize}
		}
		return int(val), nil
	case int:
		if val < 0 {
			return 0, &ValueError{Path: path, Value: val, Err: errNegativeSize}
		}
		return val, nil
	default:
		return 0, &TypeError{Path: path, Expected: "size", Actual: typeName(v)}
	}
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyMap(c.merged)
}

func defaultConfig() map[string]any {
	return map[string]any{
		"buffer": map[string]any{
			"kind":       "mapped",
			"capacity":   "64KiB",
			"pageSize":   "64KiB",
			"cachePages": int64(64),
			"stateFiles": true,
		},
		"logging": map[string]any{
			"level":      "info",
			"file":       "",
			"maxSizeMB":  int64(10),
			"maxBackups": int64(3),
			"maxAgeDays": int64(28),
			"compress":   false,
		},
		"script": map[string]any{
			"timeout": "5s",
		},
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			out[k] = copyMap(sub)
		} else {
			out[k] = v
		}
	}
	return out
}

// typeName names v's type the way TOML and env values are described to users.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int, int64:
		return "int"
	case time.Duration:
		return "duration"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
