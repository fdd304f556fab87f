// Package plugins provides the name-to-builder registry shared by the
// detector, synthesizer and generator packages.
package plugins

import (
	"fmt"
	"sort"
)

// BuilderFunc creates a plugin from generic config.
// Config is a map of plugin-specific settings parsed from user config.
type BuilderFunc[T any] func(cfg map[string]any) (T, error)

// Registry maps plugin names to their builders.
// It allows dynamic construction of plugins from configuration.
type Registry[T any] struct {
	builders map[string]BuilderFunc[T]
	order    []string
}

// NewRegistry creates a new plugin registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		builders: make(map[string]BuilderFunc[T]),
	}
}

// Register adds a builder to the registry.
// Registering a name twice replaces the builder but keeps its position.
func (r *Registry[T]) Register(name string, builder BuilderFunc[T]) {
	if _, ok := r.builders[name]; !ok {
		r.order = append(r.order, name)
	}
	r.builders[name] = builder
}

// Build creates a plugin by name with the given config.
// Returns error if the name is not registered.
func (r *Registry[T]) Build(name string, cfg map[string]any) (T, error) {
	builder, ok := r.builders[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown plugin: %s", name)
	}
	return builder(cfg)
}

// BuildAll builds the named plugins in order, or every registered plugin
// in registration order when names is empty. configs is keyed by name.
func (r *Registry[T]) BuildAll(names []string, configs map[string]map[string]any) ([]T, error) {
	if len(names) == 0 {
		names = r.order
	}
	out := make([]T, 0, len(names))
	for _, name := range names {
		p, err := r.Build(name, configs[name])
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Has returns true if a plugin with the given name is registered.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered plugin names, sorted.
func (r *Registry[T]) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}
