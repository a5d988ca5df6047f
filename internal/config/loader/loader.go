// Package loader reads configuration sources into nested maps.
//
// Sources are a TOML file and ETUDES_* environment variables. Each loader
// returns a map[string]any keyed by section; DeepMerge layers them.
package loader

import (
	"io"
	"os"
	"strings"
)

// Source produces one configuration layer. A source that does not exist
// yields nil, nil.
type Source interface {
	Load() (map[string]any, error)
}

var (
	_ Source = (*TOMLLoader)(nil)
	_ Source = (*EnvLoader)(nil)

	_ Decoder = (*TOMLLoader)(nil)
)

// Decoder is implemented by sources that can parse an arbitrary stream.
type Decoder interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is the file access a TOMLLoader needs. Tests substitute an
// in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// DefaultFS reads from the host file system.
func DefaultFS() FileSystem { return osFS{} }

// DeepMerge layers src over dst and returns dst. Nested tables merge key
// by key; any other value in src replaces what dst holds.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if base, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMerge(base, sub)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

// GetPath returns the value at a dot-separated path in a nested map.
func GetPath(data map[string]any, path string) (any, bool) {
	node := data
	for {
		key, rest, nested := cut(path)
		val, ok := node[key]
		if !ok {
			return nil, false
		}
		if !nested {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		node, path = next, rest
	}
}

// SetPath sets a value in a nested map using a dot-separated path,
// creating intermediate maps as needed.
func SetPath(data map[string]any, path string, value any) {
	node := data
	for {
		key, rest, nested := cut(path)
		if !nested {
			node[key] = value
			return
		}
		next, ok := node[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[key] = next
		}
		node, path = next, rest
	}
}

func cut(path string) (key, rest string, nested bool) {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i], path[i+1:], true
	}
	return path, "", false
}
