package loader

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// EnvLoader builds a configuration layer from prefixed environment
// variables. PREFIX_SECTION_SOME_KEY becomes section.someKey; a few short
// aliases such as PREFIX_KIND are mapped explicitly.
type EnvLoader struct {
	prefix  string
	aliases map[string]string
}

// NewEnvLoader returns a loader for variables starting with prefix, which
// should include its trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		aliases: map[string]string{
			prefix + "KIND":      "buffer.kind",
			prefix + "CAPACITY":  "buffer.capacity",
			prefix + "LOG_LEVEL": "logging.level",
			prefix + "LOG_FILE":  "logging.file",

			// Derived paths camel-case each word, which would give maxSizeMb.
			prefix + "LOGGING_MAX_SIZE_MB": "logging.maxSizeMB",
		},
	}
}

// AddMapping routes envVar to configPath instead of the derived path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.aliases[envVar] = configPath
}

// Load scans the environment. A variable that is set but empty still
// produces an entry.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.aliases[name]
		if !ok {
			path = l.pathFor(name)
		}
		SetPath(out, path, ParseValue(value))
	}
	return out, nil
}

func (l *EnvLoader) pathFor(name string) string {
	words := strings.Split(strings.TrimPrefix(name, l.prefix), "_")

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	dotted := false
	for _, w := range words[1:] {
		if w == "" {
			continue
		}
		if !dotted {
			b.WriteByte('.')
			b.WriteString(strings.ToLower(w))
			dotted = true
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// ParseValue guesses the type of an environment string: booleans, integers,
// floats, durations and JSON arrays or objects. Anything else, including
// sizes like "64KiB", is returned unchanged for the config layer to parse.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.ContainsRune(s, '.') {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if len(s) > 0 && (s[0] == '[' || s[0] == '{') && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}
