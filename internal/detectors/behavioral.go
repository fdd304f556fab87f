package detectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Behavioral implements the interface.
var _ driven.Detector = (*Behavioral)(nil)

var (
	behaviourKeywords = []string{"usage", "adoption", "engagement", "churn", "retention", "conversion", "signup", "cancel"}
	declineKeywords   = []string{"churn", "decline", "drop", "cancel", "abandon", "slow"}
)

// Behavioral looks for shifts in how customers use or leave the target.
type Behavioral struct {
	minConfidence float64
}

// NewBehavioral creates a behavioral detector.
func NewBehavioral(minConfidence float64) *Behavioral {
	return &Behavioral{minConfidence: minConfidence}
}

// Type returns the detector type.
func (d *Behavioral) Type() string { return TypeBehavioral }

// Detect reports churn risks and adoption opportunities per topic.
// A topic needs two behavioral findings, or one with confidence of at least 0.7.
func (d *Behavioral) Detect(
	_ context.Context,
	bundle *domain.IngestionBundle,
	_ []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	var behavioural []domain.Finding
	for _, f := range bundle.KeyFindings {
		if f.SourceName == domain.SourceBehavioral || containsAny(f.Description, behaviourKeywords...) {
			behavioural = append(behavioural, f)
		}
	}

	var patterns []domain.Pattern
	for _, s := range summariseTopics(behavioural) {
		if s.count < 2 && s.confidence < 0.7 {
			continue
		}
		p := domain.Pattern{
			Confidence:         s.confidence,
			SupportingEvidence: []map[string]any{evidence(s.strongest)},
		}
		if containsAny(s.strongest.Description, declineKeywords...) {
			p.Description = fmt.Sprintf("Churn risk in %s: %s", s.topic, s.strongest.Description)
			p.BusinessImpact = "high - recurring revenue at risk"
		} else {
			p.Description = fmt.Sprintf("Adoption opportunity in %s: %s", s.topic, s.strongest.Description)
			p.BusinessImpact = "medium"
			if s.count >= 3 {
				p.BusinessImpact = "high - broad customer pull"
			}
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}
