package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Correlation implements the interface.
var _ driven.Detector = (*Correlation)(nil)

// Correlation promotes cross-source stubs into patterns.
type Correlation struct {
	minConfidence float64
}

// NewCorrelation creates a correlation detector.
func NewCorrelation(minConfidence float64) *Correlation {
	return &Correlation{minConfidence: minConfidence}
}

// Type returns the detector type.
func (d *Correlation) Type() string { return TypeCorrelation }

// Detect emits one pattern per stub. Each source past the second adds 0.05 confidence.
func (d *Correlation) Detect(
	_ context.Context,
	bundle *domain.IngestionBundle,
	_ []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	idx := topicIndex(bundle.KeyFindings)

	var patterns []domain.Pattern
	for _, stub := range bundle.CrossSourcePatterns {
		summary := idx[stub.Topic]
		p := domain.Pattern{
			Description: fmt.Sprintf("%s corroborated by %d sources (%s): %s",
				stub.Topic, stub.SourceCount, strings.Join(stub.Sources, ", "), summary.strongest.Description),
			Confidence:     domain.Clamp01(summary.confidence + 0.05*float64(stub.SourceCount-2)),
			BusinessImpact: "medium - corroborated by two sources",
			SupportingEvidence: []map[string]any{{
				"topic":        stub.Topic,
				"sources":      stub.Sources,
				"significance": stub.Significance,
			}},
		}
		if stub.Significance == domain.SignificanceHigh {
			p.BusinessImpact = "high - corroborated by independent sources"
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}
