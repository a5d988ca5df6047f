package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/etudes/internal/engine/buffer"
)

// BufferProvider is the buffer surface scripts can reach.
// *editor.Session satisfies it.
type BufferProvider interface {
	Active() bool
	Path() string
	Kind() (buffer.Kind, error)
	Insert(pos int, text string) error
	Delete(start, end int) error
	Slice(start, end int) (string, error)
	Text() (string, error)
	Len() int
	Used() int
}

// BufferModule exposes the active document as the global table buf.
// Failed edits raise a Lua error carrying the buffer error text.
type BufferModule struct {
	buf BufferProvider
}

// NewBufferModule binds the module to buf.
func NewBufferModule(buf BufferProvider) *BufferModule {
	return &BufferModule{buf: buf}
}

// Name returns "buf".
func (m *BufferModule) Name() string { return "buf" }

// Register installs the buf table as a global.
func (m *BufferModule) Register(L *lua.LState) error {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert": m.insert,
		"delete": m.delete,
		"slice":  m.slice,
		"text":   m.text,
		"len":    m.bufLen,
		"used":   m.used,
		"kind":   m.kind,
		"path":   m.path,
		"active": m.active,
	})
	L.SetGlobal(m.Name(), mod)
	return nil
}

// insert(pos, text) -> end
// Overwrites bytes at pos and returns the offset just past the text.
func (m *BufferModule) insert(L *lua.LState) int {
	pos := L.CheckInt(1)
	text := L.CheckString(2)

	if err := m.buf.Insert(pos, text); err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}

	L.Push(lua.LNumber(pos + len(text)))
	return 1
}

// delete(start, end)
// Removes [start, end) and shifts the tail left.
func (m *BufferModule) delete(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)

	if err := m.buf.Delete(start, end); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// slice(start, end) -> string
func (m *BufferModule) slice(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)

	s, err := m.buf.Slice(start, end)
	if err != nil {
		L.RaiseError("slice: %v", err)
		return 0
	}

	L.Push(lua.LString(s))
	return 1
}

// text() -> string
// Returns the content up to the used length.
func (m *BufferModule) text(L *lua.LState) int {
	s, err := m.buf.Text()
	if err != nil {
		L.RaiseError("text: %v", err)
		return 0
	}

	L.Push(lua.LString(s))
	return 1
}

// len() -> number
// Returns the capacity, or 0 with no document.
func (m *BufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.buf.Len()))
	return 1
}

// used() -> number
func (m *BufferModule) used(L *lua.LState) int {
	L.Push(lua.LNumber(m.buf.Used()))
	return 1
}

// kind() -> string
func (m *BufferModule) kind(L *lua.LState) int {
	k, err := m.buf.Kind()
	if err != nil {
		L.RaiseError("kind: %v", err)
		return 0
	}

	L.Push(lua.LString(k.String()))
	return 1
}

// path() -> string
func (m *BufferModule) path(L *lua.LState) int {
	L.Push(lua.LString(m.buf.Path()))
	return 1
}

// active() -> boolean
func (m *BufferModule) active(L *lua.LState) int {
	L.Push(lua.LBool(m.buf.Active()))
	return 1
}
