package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// StateSuffix is appended to a document path to name its sidecar file.
const StateSuffix = ".etude.json"

// State is what the session remembers about a file-backed document.
type State struct {
	Kind     string
	Capacity int
	Used     int
	Updated  time.Time
}

// StatePath returns the sidecar path for a document.
func StatePath(docPath string) string {
	return docPath + StateSuffix
}

// LoadState reads the sidecar at path. It returns ok=false if the file does
// not exist. A malformed timestamp yields ok=true with a zero Updated and an
// error wrapping ErrCorruptState; the other fields are still usable.
func LoadState(path string) (st State, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("reading state %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return State{}, false, fmt.Errorf("%w: %s", ErrCorruptState, path)
	}

	res := gjson.GetManyBytes(data, "kind", "capacity", "used", "updated")
	st = State{
		Kind:     res[0].String(),
		Capacity: int(res[1].Int()),
		Used:     int(res[2].Int()),
	}
	if res[3].Exists() {
		updated, perr := time.Parse(time.RFC3339, res[3].String())
		if perr != nil {
			return st, true, fmt.Errorf("%w: %s: updated: %v", ErrCorruptState, path, perr)
		}
		st.Updated = updated
	}
	return st, true, nil
}

// SaveState writes the sidecar at path, replacing it atomically.
// Unknown fields in an existing sidecar are preserved.
func SaveState(path string, st State) error {
	data, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(data) {
		data = []byte("{}")
	}

	if st.Updated.IsZero() {
		st.Updated = time.Now()
	}

	fields := []struct {
		key   string
		value any
	}{
		{"kind", st.Kind},
		{"capacity", st.Capacity},
		{"used", st.Used},
		{"updated", st.Updated.UTC().Format(time.RFC3339)},
	}
	for _, f := range fields {
		data, err = sjson.SetBytes(data, f.key, f.value)
		if err != nil {
			return fmt.Errorf("encoding state %s: %w", f.key, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing state %s: %w", path, err)
	}
	return nil
}
