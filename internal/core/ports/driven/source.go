package driven

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// Source supplies raw findings for one data domain.
// Implementations must tolerate concurrent calls and honour ctx deadlines.
type Source interface {
	// Name returns the source name used in objective tables (e.g. "web").
	Name() string

	// Ingest fetches findings about target for objective.
	// focusAreas may narrow what the source looks for; it may be empty.
	Ingest(ctx context.Context, target, objective string, focusAreas []string) (*domain.SourceResult, error)
}

// SourceBuilder creates a Source from its configuration.
// Config keys are source-specific and already stripped of the "sources.<name>." prefix.
type SourceBuilder func(name string, cfg map[string]any) (Source, error)
