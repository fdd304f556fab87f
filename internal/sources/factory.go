package sources

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
	"github.com/custodia-labs/foresight/internal/sources/fixture"
	"github.com/custodia-labs/foresight/internal/sources/github"
	"github.com/custodia-labs/foresight/internal/sources/notion"
	"github.com/custodia-labs/foresight/internal/sources/websearch"
)

// Config keys shared by every kind.
const (
	KeyKind  = "kind"
	KeyRPS   = "rps"
	KeyBurst = "burst"
)

// Factory creates sources from configuration.
// It maintains a registry of source kinds and their builders.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.SourceBuilder
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{builders: make(map[string]driven.SourceBuilder)}
}

// NewDefaultFactory creates a factory with every built-in kind.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(fixture.Kind, fixture.New)
	f.Register(github.Kind, github.New)
	f.Register(notion.Kind, notion.New)
	f.Register(websearch.Kind, websearch.New)
	return f
}

// Register adds a builder for the given kind.
func (f *Factory) Register(kind string, builder driven.SourceBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[kind] = builder
}

// SupportedKinds returns all registered kinds, sorted.
func (f *Factory) SupportedKinds() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	kinds := make([]string, 0, len(f.builders))
	for k := range f.builders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Create builds the named source. A positive rps wraps it in a rate limiter.
// Returns ErrUnsupportedType if the kind is unknown.
func (f *Factory) Create(name string, cfg map[string]any) (driven.Source, error) {
	kind := plugins.StringFromConfig(cfg, KeyKind, "")
	f.mu.RLock()
	builder, ok := f.builders[kind]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("source %s: %w: %q", name, domain.ErrUnsupportedType, kind)
	}

	src, err := builder(name, cfg)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", name, err)
	}
	if rps := plugins.FloatFromConfig(cfg, KeyRPS, 0); rps > 0 {
		src = NewRateLimited(src, rps, plugins.IntFromConfig(cfg, KeyBurst, 1))
	}
	return src, nil
}

// CreateAll builds every configured source, ordered by name.
func (f *Factory) CreateAll(configs map[string]map[string]any) ([]driven.Source, error) {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]driven.Source, 0, len(names))
	for _, name := range names {
		src, err := f.Create(name, configs[name])
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}
