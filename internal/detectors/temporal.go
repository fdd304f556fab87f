package detectors

import (
	"context"
	"fmt"
	"slices"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Temporal implements the interface.
var _ driven.Detector = (*Temporal)(nil)

// Temporal compares this run's cross-source topics with the target's history.
// Without history it finds nothing.
type Temporal struct {
	minConfidence float64
}

// NewTemporal creates a temporal detector.
func NewTemporal(minConfidence float64) *Temporal {
	return &Temporal{minConfidence: minConfidence}
}

// Type returns the detector type.
func (d *Temporal) Type() string { return TypeTemporal }

// Detect reports emerging, sustained and fading topics.
func (d *Temporal) Detect(
	_ context.Context,
	bundle *domain.IngestionBundle,
	history []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	if len(history) == 0 {
		return nil, nil
	}
	idx := topicIndex(bundle.KeyFindings)

	var patterns []domain.Pattern
	for _, stub := range bundle.CrossSourcePatterns {
		summary := idx[stub.Topic]
		runs := 0
		for _, r := range history {
			if slices.Contains(r.Ingestion.CrossSourceTopics, stub.Topic) {
				runs++
			}
		}

		p := domain.Pattern{
			SupportingEvidence: []map[string]any{evidence(summary.strongest)},
		}
		if runs == 0 {
			p.Description = fmt.Sprintf("Emerging %s opportunity: corroborated by %d sources for the first time",
				stub.Topic, stub.SourceCount)
			p.Confidence = summary.confidence
			p.BusinessImpact = "high - new signal"
		} else {
			p.Description = fmt.Sprintf("Sustained %s signal present in %d of the last %d runs",
				stub.Topic, runs+1, len(history)+1)
			p.Confidence = domain.Clamp01(summary.confidence + 0.05*float64(runs))
			p.BusinessImpact = "medium - sustained trend"
			if runs+1 >= 3 {
				p.BusinessImpact = "high - sustained trend"
			}
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}

	current := bundle.Topics()
	for _, topic := range history[len(history)-1].Ingestion.CrossSourceTopics {
		if slices.Contains(current, topic) {
			continue
		}
		p := domain.Pattern{
			Description:    fmt.Sprintf("Fading %s signal: no longer corroborated, a risk to plans built on it", topic),
			Confidence:     0.5,
			BusinessImpact: "medium",
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}
