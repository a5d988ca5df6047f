package mmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFileAtSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	m, err := Open(path, 128)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 128, m.Len())
	assert.Equal(t, path, m.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(128), info.Size())
}

func TestOpenTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef"), 0o644))

	m, err := Open(path, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123"), m.Bytes())
	require.NoError(t, m.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())
}

func TestOpenZeroExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0o644))

	m, err := Open(path, 6)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, []byte{'a', 'b', 0, 0, 0, 0}, m.Bytes())
}

func TestWritesReachFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")

	m, err := Open(path, 8)
	require.NoError(t, err)

	copy(m.Bytes(), "mapped")
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'m', 'a', 'p', 'p', 'e', 'd', 0, 0}, got)
}

func TestOpenNegativeSize(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "x"), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSize))
}

func TestOpenZeroSize(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "empty"), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
	assert.NoError(t, m.Sync())
	assert.NoError(t, m.Close())
}

func TestOpenFailurePropagates(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir, 16)
	require.Error(t, err)

	var merr *Error
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "open", merr.Op)
	assert.Equal(t, dir, merr.Path)
}

func TestCloseIsIdempotent(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "data.bin"), 16)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
	assert.Nil(t, m.Bytes())
	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, m.Sync(), ErrClosed)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Op: "map", Path: "/tmp/x", Err: errors.New("boom")}
	assert.Equal(t, "mmap: map /tmp/x: boom", err.Error())
	assert.Equal(t, "mmap: sync", (&Error{Op: "sync"}).Error())
}
