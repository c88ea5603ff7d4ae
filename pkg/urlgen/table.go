package urlgen

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Route pairs a route name with its definition.
type Route struct {
	Name       string
	Definition Definition
}

// Table maps route names to definitions.
//
// A table is populated while the application boots and frozen before it
// starts serving. Lookups on a frozen table take no locks.
type Table struct {
	routes map[string]Definition
	mu     sync.RWMutex
	frozen atomic.Bool
}

// NewTable creates an empty, writable route table.
func NewTable() *Table {
	return &Table{routes: make(map[string]Definition)}
}

// Add parses pattern and registers it under name.
func (t *Table) Add(name, pattern string) error {
	def, err := ParsePattern(pattern)
	if err != nil {
		return fmt.Errorf("route %q: %w", name, err)
	}
	return t.AddDefinition(name, def)
}

// MustAdd is like Add but panics on error.
func (t *Table) MustAdd(name, pattern string) *Table {
	if err := t.Add(name, pattern); err != nil {
		panic(err)
	}
	return t
}

// AddDefinition registers an already built definition under name.
func (t *Table) AddDefinition(name string, def Definition) error {
	if name == "" {
		return fmt.Errorf("%w: empty route name", ErrInvalidPattern)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen.Load() {
		return ErrTableFrozen
	}
	if _, exists := t.routes[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, name)
	}
	t.routes[name] = def
	return nil
}

// Freeze makes the table read-only. Freeze is idempotent.
func (t *Table) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen.Store(true)
}

// Frozen reports whether the table no longer accepts routes.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// Resolve returns the definition registered under name.
// Returns a *RouteNotFoundError if the name is unknown.
func (t *Table) Resolve(name string) (Definition, error) {
	def, ok := t.lookup(name)
	if !ok {
		return Definition{}, &RouteNotFoundError{Name: name}
	}
	return def, nil
}

// Has reports whether a route is registered under name.
func (t *Table) Has(name string) bool {
	_, ok := t.lookup(name)
	return ok
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	if !t.frozen.Load() {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	return len(t.routes)
}

// Names returns the registered route names in sorted order.
func (t *Table) Names() []string {
	if !t.frozen.Load() {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	return slices.Sorted(maps.Keys(t.routes))
}

// Routes returns all routes sorted by name.
func (t *Table) Routes() []Route {
	if !t.frozen.Load() {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	out := make([]Route, 0, len(t.routes))
	for _, name := range slices.Sorted(maps.Keys(t.routes)) {
		out = append(out, Route{Name: name, Definition: t.routes[name]})
	}
	return out
}

func (t *Table) lookup(name string) (Definition, bool) {
	if t.frozen.Load() {
		def, ok := t.routes[name]
		return def, ok
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	def, ok := t.routes[name]
	return def, ok
}
