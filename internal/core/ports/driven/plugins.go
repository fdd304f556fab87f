package driven

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// Detector inspects an ingestion bundle and returns zero or more patterns.
// Detectors are independent of each other and must be side-effect free.
type Detector interface {
	// Type returns the pattern type this detector produces (e.g. "temporal").
	Type() string

	// Detect returns patterns found in bundle. history holds prior reports
	// for the same target, oldest first, and may be empty.
	Detect(ctx context.Context, bundle *domain.IngestionBundle, history []domain.IntelligenceReport) ([]domain.Pattern, error)
}

// Synthesizer turns patterns into insights scoped to its own category.
type Synthesizer interface {
	// Category returns the insight category this synthesizer produces.
	Category() domain.InsightCategory

	// Synthesize maps ranked patterns (detector and meta) to insights.
	Synthesize(ctx context.Context, patterns []domain.Pattern, bc domain.BusinessContext) ([]domain.Insight, error)
}

// Generator domains used to route insights to action generators.
const (
	GeneratorSales      = "sales"
	GeneratorMarketing  = "marketing"
	GeneratorStrategic  = "strategic"
	GeneratorOperations = "operations"
)

// ActionGenerator maps one insight to zero or more actions.
// Generators never consult each other.
type ActionGenerator interface {
	// Domain returns the routing key (sales, marketing, strategic, operations).
	Domain() string

	// Generate returns actions for insight.
	Generate(ctx context.Context, insight domain.Insight, bc domain.BusinessContext) ([]domain.Action, error)
}
