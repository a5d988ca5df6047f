package api

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/etudes/internal/editor"
	"github.com/dshills/etudes/internal/engine/buffer"
)

func setupBufferTest(t *testing.T, capacity int) (*lua.LState, *editor.Session) {
	t.Helper()

	session := editor.NewSession(editor.WithStateFiles(false))
	if capacity >= 0 {
		if err := session.Attach(buffer.NewMemory(capacity), "mem", 0); err != nil {
			t.Fatalf("Attach error = %v", err)
		}
	}
	t.Cleanup(func() { _ = session.Close() })

	L := lua.NewState()
	t.Cleanup(func() { L.Close() })

	if err := NewBufferModule(session).Register(L); err != nil {
		t.Fatalf("Register error = %v", err)
	}

	return L, session
}

func TestBufferModuleName(t *testing.T) {
	if got := NewBufferModule(nil).Name(); got != "buf" {
		t.Errorf("Name() = %q, want %q", got, "buf")
	}
}

func TestBufferInsertSlice(t *testing.T) {
	L, session := setupBufferTest(t, 16)

	if err := L.DoString(`
		e = buf.insert(0, "hello")
		s = buf.slice(0, 5)
		t = buf.text()
	`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if v := L.GetGlobal("e"); v != lua.LNumber(5) {
		t.Errorf("insert returned %v, want 5", v)
	}
	if v := L.GetGlobal("s"); v != lua.LString("hello") {
		t.Errorf("slice = %v, want hello", v)
	}
	if v := L.GetGlobal("t"); v != lua.LString("hello") {
		t.Errorf("text = %v, want hello", v)
	}
	if session.Used() != 5 {
		t.Errorf("Used() = %d, want 5", session.Used())
	}
}

func TestBufferDelete(t *testing.T) {
	L, session := setupBufferTest(t, 8)

	if err := L.DoString(`
		buf.insert(0, "abcdef")
		buf.delete(1, 3)
		t = buf.text()
		u = buf.used()
	`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if v := L.GetGlobal("t"); v != lua.LString("adef") {
		t.Errorf("text = %q, want adef", v)
	}
	if v := L.GetGlobal("u"); v != lua.LNumber(4) {
		t.Errorf("used = %v, want 4", v)
	}

	raw, err := session.Bytes(6, 8)
	if err != nil {
		t.Fatalf("Bytes error = %v", err)
	}
	if raw[0] != 0 || raw[1] != 0 {
		t.Errorf("tail = %v, want zeros", raw)
	}
}

func TestBufferInfo(t *testing.T) {
	L, _ := setupBufferTest(t, 32)

	if err := L.DoString(`
		n = buf.len()
		k = buf.kind()
		p = buf.path()
		a = buf.active()
	`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if v := L.GetGlobal("n"); v != lua.LNumber(32) {
		t.Errorf("len = %v, want 32", v)
	}
	if v := L.GetGlobal("k"); v != lua.LString("memory") {
		t.Errorf("kind = %v, want memory", v)
	}
	if v := L.GetGlobal("p"); v != lua.LString("mem") {
		t.Errorf("path = %v, want mem", v)
	}
	if v := L.GetGlobal("a"); v != lua.LTrue {
		t.Errorf("active = %v, want true", v)
	}
}

func TestBufferErrorsRaise(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"capacity exceeded", `buf.insert(6, "toolong")`, "capacity exceeded"},
		{"out of bounds", `buf.insert(-1, "x")`, "out of bounds"},
		{"invalid range", `buf.slice(4, 2)`, "invalid range"},
		{"slice past capacity", `buf.slice(0, 9)`, "invalid range"},
		{"delete past capacity", `buf.delete(0, 9)`, "invalid range"},
		{"invalid encoding", `buf.insert(0, "\255") buf.slice(0, 1)`, "invalid utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L, _ := setupBufferTest(t, 8)
			err := L.DoString(tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestBufferPcall(t *testing.T) {
	L, session := setupBufferTest(t, 4)

	if err := L.DoString(`
		ok, err = pcall(buf.insert, 3, "xyz")
		buf.insert(0, "ok")
	`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	if v := L.GetGlobal("ok"); v != lua.LFalse {
		t.Errorf("ok = %v, want false", v)
	}
	// The failed insert left the buffer untouched.
	if got, _ := session.Slice(0, 4); got != "ok\x00\x00" {
		t.Errorf("content = %q", got)
	}
}

func TestBufferNoDocument(t *testing.T) {
	L, _ := setupBufferTest(t, -1)

	if err := L.DoString(`n = buf.len() u = buf.used() a = buf.active()`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if v := L.GetGlobal("n"); v != lua.LNumber(0) {
		t.Errorf("len = %v, want 0", v)
	}
	if v := L.GetGlobal("a"); v != lua.LFalse {
		t.Errorf("active = %v, want false", v)
	}

	for _, code := range []string{`buf.insert(0, "x")`, `buf.delete(0, 1)`, `buf.slice(0, 1)`, `buf.text()`, `buf.kind()`} {
		err := L.DoString(code)
		if err == nil || !strings.Contains(err.Error(), "no document") {
			t.Errorf("%s: error = %v, want no document", code, err)
		}
	}
}

func TestBufferEmptyPlaceholder(t *testing.T) {
	L, session := setupBufferTest(t, -1)
	if err := session.Attach(buffer.NewEmpty(), "", 0); err != nil {
		t.Fatalf("Attach error = %v", err)
	}

	err := L.DoString(`buf.insert(0, "x")`)
	if err == nil || !strings.Contains(err.Error(), "not implemented") {
		t.Errorf("error = %v, want not implemented", err)
	}

	if err := L.DoString(`k = buf.kind()`); err != nil {
		t.Fatalf("kind error = %v", err)
	}
	if v := L.GetGlobal("k"); v != lua.LString("empty") {
		t.Errorf("kind = %v, want empty", v)
	}
}
