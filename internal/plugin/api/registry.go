package api

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrDuplicateModule is returned when two modules claim the same global.
var ErrDuplicateModule = errors.New("module already registered")

// Module installs one Lua global table.
type Module interface {
	Name() string
	Register(L *lua.LState) error
}

// Registry holds modules in the order they were added. InjectAll installs
// them in that order.
type Registry struct {
	mu    sync.RWMutex
	order []Module
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends mod. Names must be unique.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := mod.Name()
	if _, dup := r.index[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateModule, name)
	}
	r.index[name] = len(r.order)
	r.order = append(r.order, mod)
	return nil
}

// Get looks up a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.order[i], true
}

// List returns module names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, mod := range r.order {
		names[i] = mod.Name()
	}
	return names
}

// InjectAll installs every module into L, stopping at the first failure.
func (r *Registry) InjectAll(L *lua.LState) error {
	r.mu.RLock()
	mods := append([]Module(nil), r.order...)
	r.mu.RUnlock()

	for _, mod := range mods {
		if err := mod.Register(L); err != nil {
			return fmt.Errorf("install %s: %w", mod.Name(), err)
		}
	}
	return nil
}

// DefaultRegistry returns a registry with the buf and text modules.
func DefaultRegistry(buf BufferProvider) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(NewBufferModule(buf)); err != nil {
		return nil, err
	}
	if err := r.Register(NewTextModule()); err != nil {
		return nil, err
	}
	return r, nil
}
