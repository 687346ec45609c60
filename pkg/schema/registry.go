// Package schema provides the record schemas the datastore works with and a
// registry that maps the schema names found in descriptor files to them.
// Host applications register their schemas before opening a store.
package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/simonemmott/datastore/pkg/types"
)

// ErrDuplicateSchema is returned when a schema name is registered twice.
var ErrDuplicateSchema = errors.New("schema already registered")

// Registry is an explicit name-to-schema lookup. It is populated at startup
// and read during store open; it is not safe for concurrent registration.
type Registry struct {
	schemas  map[string]types.Schema
	fallback func(name string) types.Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]types.Schema)}
}

// Register adds a schema under its Name.
func (r *Registry) Register(s types.Schema) error {
	name := s.Name()
	if name == "" {
		return fmt.Errorf("register schema: empty name")
	}
	if _, ok := r.schemas[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSchema, name)
	}
	r.schemas[name] = s
	return nil
}

// MustRegister registers each schema and panics on error. It returns the
// registry so setup can be chained.
func (r *Registry) MustRegister(schemas ...types.Schema) *Registry {
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// SetFallback installs a constructor used for names with no registered
// schema. The CLI uses it to serve any descriptor as raw documents.
func (r *Registry) SetFallback(fn func(name string) types.Schema) {
	r.fallback = fn
}

// Resolve returns the schema registered under name.
// Returns an error wrapping types.ErrSchemaNotFound if there is none.
func (r *Registry) Resolve(name string) (types.Schema, error) {
	if s, ok := r.schemas[name]; ok {
		return s, nil
	}
	if r.fallback != nil {
		return r.fallback(name), nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrSchemaNotFound, name)
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
