package synthesizers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Operational implements the interface.
var _ driven.Synthesizer = (*Operational)(nil)

var operationalKeywords = []string{"coverage", "onboarding", "process", "slow", "ticket", "support", "conflicting"}

// Operational finds internal execution gaps.
type Operational struct {
	minConfidence float64
}

// NewOperational creates an operational synthesizer.
func NewOperational(minConfidence float64) *Operational {
	return &Operational{minConfidence: minConfidence}
}

// Category returns the insight category.
func (s *Operational) Category() domain.InsightCategory { return domain.CategoryOperational }

// Synthesize emits one insight per pattern mentioning an operational concern.
func (s *Operational) Synthesize(
	_ context.Context,
	patterns []domain.Pattern,
	_ domain.BusinessContext,
) ([]domain.Insight, error) {
	var insights []domain.Insight
	for _, p := range patterns {
		if p.Confidence < s.minConfidence || !containsAny(p.Description, operationalKeywords...) {
			continue
		}
		value := "medium - efficiency gain"
		if highImpact(p) {
			value = "high - efficiency gain"
		}
		insights = append(insights, domain.Insight{
			Category:         domain.CategoryOperational,
			Title:            fmt.Sprintf("Operational gap: %s", subject(p.Description)),
			Description:      p.Description,
			EvidenceStrength: p.Confidence,
			Confidence:       p.Confidence,
			BusinessValue:    value,
			RecommendedActions: []domain.RecommendedAction{{
				Action:   "Assign an owner to fix the process",
				Priority: string(domain.PriorityMedium),
				Timeline: "Weeks 2-4",
			}},
			TimeSensitivity:       domain.TimeShortTerm,
			SupportingPatternRefs: refs(p),
		})
	}
	return insights, nil
}
