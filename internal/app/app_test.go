package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/etudes/internal/editor"
	"github.com/dshills/etudes/internal/engine/buffer"
)

type testApp struct {
	*Application
	dir    string
	out    *bytes.Buffer
	logOut *bytes.Buffer
}

func newTestApp(t *testing.T, opts Options) *testApp {
	t.Helper()

	dir := t.TempDir()
	out, logOut := &bytes.Buffer{}, &bytes.Buffer{}
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(dir, "missing.toml")
	}
	opts.IgnoreEnv = true
	opts.Output = out
	opts.LogOutput = logOut

	a, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return &testApp{Application: a, dir: dir, out: out, logOut: logOut}
}

func (a *testApp) exec(t *testing.T, name string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, a.Exec(context.Background(), name, args, &out))
	return out.String()
}

func TestNewAppliesOverrides(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "1KiB", LogLevel: "debug"})

	cfg := a.Config().Buffer()
	assert.Equal(t, "memory", cfg.Kind)
	assert.Equal(t, 1024, cfg.Capacity)
	assert.Equal(t, LogLevelDebug, a.Logger().Level())
	assert.False(t, a.Session().Active())
	assert.Contains(t, a.logOut.String(), "initialized [config logger session scripts]")
}

func TestNewReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etudes.toml")
	require.NoError(t, os.WriteFile(path, []byte("[buffer]\nkind = \"paged\"\ncapacity = 4096\n"), 0o644))

	a := newTestApp(t, Options{ConfigPath: path})
	assert.Equal(t, "paged", a.Config().Buffer().Kind)
	assert.Equal(t, 4096, a.Config().Buffer().Capacity)
}

func TestNewFailsOnBadConfig(t *testing.T) {
	_, err := New(Options{IgnoreEnv: true, ConfigPath: filepath.Join(t.TempDir(), "x.toml"), LogLevel: "loud"})
	require.Error(t, err)

	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "logger", ierr.Component)
	assert.ErrorIs(t, err, ErrUnknownLogLevel)
}

func TestExecEditCycle(t *testing.T) {
	for _, kind := range []string{"memory", "mapped", "paged"} {
		t.Run(kind, func(t *testing.T) {
			a := newTestApp(t, Options{Kind: kind, Capacity: "10"})
			require.NoError(t, a.Open(filepath.Join(a.dir, "doc.txt")))

			a.exec(t, "insert", "0", "hi")
			assert.Equal(t, "hi\n", a.exec(t, "slice", "0", "2"))
			a.exec(t, "delete", "0", "2")

			raw, err := a.Session().Bytes(8, 10)
			require.NoError(t, err)
			assert.Equal(t, []byte{0, 0}, raw)
			assert.Equal(t, 0, a.Session().Used())
		})
	}
}

func TestExecErrors(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "4"})

	ctx := context.Background()
	assert.ErrorIs(t, a.Exec(ctx, "insert", []string{"0", "x"}, nil), editor.ErrNoDocument)

	require.NoError(t, a.Open(""))
	assert.ErrorIs(t, a.Exec(ctx, "frobnicate", nil, nil), ErrUnknownCommand)
	assert.ErrorIs(t, a.Exec(ctx, "insert", []string{"0"}, nil), ErrUsage)
	assert.ErrorIs(t, a.Exec(ctx, "insert", []string{"zero", "x"}, nil), ErrUsage)
	assert.ErrorIs(t, a.Exec(ctx, "insert", []string{"2", "xyz"}, nil), buffer.ErrCapacityExceeded)
	assert.ErrorIs(t, a.Exec(ctx, "insert", []string{"-1", "x"}, nil), buffer.ErrOutOfBounds)
	assert.ErrorIs(t, a.Exec(ctx, "slice", []string{"3", "1"}, &bytes.Buffer{}), buffer.ErrInvalidRange)
	assert.ErrorIs(t, a.Exec(ctx, "delete", []string{"0", "5"}, nil), buffer.ErrInvalidRange)

	var operr *OperationError
	err := a.Exec(ctx, "slice", []string{"0", "9"}, &bytes.Buffer{})
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, "slice", operr.Op)
}

func TestExecInfoAndView(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "2KiB"})
	require.NoError(t, a.Open(""))
	a.exec(t, "insert", "0", "héllo")

	info := a.exec(t, "info")
	assert.Contains(t, info, "kind:     memory")
	assert.Contains(t, info, "capacity: 2.0 KiB (2048 bytes)")
	assert.Contains(t, info, "used:     6 B (6 bytes)")
	assert.Contains(t, info, a.Session().ID().String())

	// Window [2, 8) starts inside "é" and runs into padding.
	view := a.exec(t, "view", "2", "8")
	assert.Contains(t, view, "range:     [3:8)")
	assert.Contains(t, view, "graphemes: 3")
	assert.Contains(t, view, "padding:   2")
	assert.True(t, strings.HasSuffix(view, "llo\n"))
}

func TestRunScript(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "32"})
	require.NoError(t, a.Open(""))

	script := filepath.Join(a.dir, "edit.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
buf.insert(0, "hello world")
buf.delete(5, 11)
print(buf.text(), buf.used(), buf.kind(), text.graphemes(buf.text()))
`), 0o644))

	a.exec(t, "run", script)
	assert.Equal(t, "hello\t5\tmemory\t5\n", a.out.String())

	text, err := a.Session().Text()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestRunScriptError(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "4"})
	require.NoError(t, a.Open(""))

	script := filepath.Join(a.dir, "bad.lua")
	require.NoError(t, os.WriteFile(script, []byte(`buf.insert(0, "too long")`), 0o644))

	err := a.RunScript(context.Background(), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity exceeded")
	assert.Contains(t, a.logOut.String(), "script failed")
}

func TestPersistAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.txt")
	opts := Options{Kind: "mapped", Capacity: "64"}

	a := newTestApp(t, opts)
	require.NoError(t, a.Open(doc))
	a.exec(t, "insert", "0", "persisted")
	require.NoError(t, a.Close())

	b := newTestApp(t, opts)
	require.NoError(t, b.Open(doc))
	assert.Equal(t, 9, b.Session().Used())
	assert.Equal(t, "persisted\n", b.exec(t, "slice", "0", "9"))

	info, err := os.Stat(doc)
	require.NoError(t, err)
	assert.Equal(t, int64(64), info.Size())
}

func TestCloseIdempotent(t *testing.T) {
	a := newTestApp(t, Options{Kind: "memory", Capacity: "4"})
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Open(""), ErrClosed)
	assert.ErrorIs(t, a.Exec(context.Background(), "info", nil, nil), ErrClosed)
	assert.ErrorIs(t, a.RunScript(context.Background(), "x.lua"), ErrClosed)
}

func TestCommands(t *testing.T) {
	assert.Equal(t, []string{
		"delete START END",
		"info",
		"insert POS TEXT",
		"run SCRIPT",
		"slice START END",
		"view START END",
	}, Commands())
}
