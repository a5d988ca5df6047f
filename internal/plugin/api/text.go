package api

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	lua "github.com/yuin/gopher-lua"
)

// TextModule implements the text API module.
type TextModule struct{}

// NewTextModule creates a new text module.
func NewTextModule() *TextModule {
	return &TextModule{}
}

// Name returns the module name.
func (m *TextModule) Name() string {
	return "text"
}

// Register registers the module into the Lua state.
func (m *TextModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "graphemes", L.NewFunction(m.graphemes))
	L.SetField(mod, "width", L.NewFunction(m.width))
	L.SetField(mod, "valid", L.NewFunction(m.valid))
	L.SetField(mod, "clusters", L.NewFunction(m.clusters))

	L.SetGlobal(m.Name(), mod)
	return nil
}

// graphemes(s) -> number
func (m *TextModule) graphemes(L *lua.LState) int {
	L.Push(lua.LNumber(uniseg.GraphemeClusterCount(L.CheckString(1))))
	return 1
}

// width(s) -> number
// Monospace display width.
func (m *TextModule) width(L *lua.LState) int {
	L.Push(lua.LNumber(uniseg.StringWidth(L.CheckString(1))))
	return 1
}

// valid(s) -> boolean
func (m *TextModule) valid(L *lua.LState) int {
	L.Push(lua.LBool(utf8.ValidString(L.CheckString(1))))
	return 1
}

// clusters(s) -> {string}
func (m *TextModule) clusters(L *lua.LState) int {
	tbl := L.NewTable()
	g := uniseg.NewGraphemes(L.CheckString(1))
	for g.Next() {
		tbl.Append(lua.LString(g.Str()))
	}
	L.Push(tbl)
	return 1
}
