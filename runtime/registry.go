package runtime

import (
	"sort"
	"sync"
)

// Registry maps type names to runtime types. Several names may alias one
// type: str, string, and text all resolve to the text type. Lookups are
// case-sensitive.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]Type),
	}
}

// DefaultRegistry creates a registry seeded with the built-in scalars and
// their aliases.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	text := Text()
	r.Register("str", text)
	r.Register("string", text)
	r.Register("text", text)

	integer := Integer()
	r.Register("int", integer)
	r.Register("integer", integer)

	r.Register("float", Float())

	boolean := Boolean()
	r.Register("bool", boolean)
	r.Register("boolean", boolean)

	anyType := Any()
	r.Register("Any", anyType)
	r.Register("any", anyType)

	r.Register("datetime", DateTime())
	r.Register("timestamp", Timestamp())
	r.Register("uuid", UUID())

	return r
}

// Register binds a name to a type. Registering an existing name replaces
// the previous binding, which is how hosts override a built-in.
func (r *Registry) Register(name string, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Get retrieves a type by name.
func (r *Registry) Get(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Has reports whether a name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
