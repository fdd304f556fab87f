package synthesizers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Tactical implements the interface.
var _ driven.Synthesizer = (*Tactical)(nil)

// Tactical turns customer and market patterns into near-term moves.
type Tactical struct {
	minConfidence float64
}

// NewTactical creates a tactical synthesizer.
func NewTactical(minConfidence float64) *Tactical {
	return &Tactical{minConfidence: minConfidence}
}

// Category returns the insight category.
func (s *Tactical) Category() domain.InsightCategory { return domain.CategoryTactical }

// Synthesize emits one insight per customer-facing opportunity or risk pattern
// that is not low impact. Operational concerns are left to Operational.
// High-impact patterns need immediate attention.
func (s *Tactical) Synthesize(
	_ context.Context,
	patterns []domain.Pattern,
	_ domain.BusinessContext,
) ([]domain.Insight, error) {
	var insights []domain.Insight
	for _, p := range patterns {
		if p.Confidence < s.minConfidence || p.ImpactLevel() == domain.ImpactLow {
			continue
		}
		if containsAny(p.Description, operationalKeywords...) {
			continue
		}

		var title, action string
		switch {
		case isRisk(p):
			title = fmt.Sprintf("Customer retention risk: %s", subject(p.Description))
			action = "Contact affected accounts"
		case isOpportunity(p):
			title = fmt.Sprintf("Customer opportunity: %s", subject(p.Description))
			action = "Target accounts showing the signal"
		default:
			continue
		}

		in := domain.Insight{
			Category:         domain.CategoryTactical,
			Title:            title,
			Description:      p.Description,
			EvidenceStrength: p.Confidence,
			Confidence:       p.Confidence,
			BusinessValue:    "medium - near-term revenue",
			RecommendedActions: []domain.RecommendedAction{{
				Action:   action,
				Priority: string(domain.PriorityMedium),
				Timeline: "Week 1",
			}},
			TimeSensitivity:       domain.TimeShortTerm,
			SupportingPatternRefs: refs(p),
		}
		if highImpact(p) {
			in.TimeSensitivity = domain.TimeImmediate
			in.BusinessValue = "high - near-term revenue"
			in.RecommendedActions[0].Priority = string(domain.PriorityHigh)
		}
		insights = append(insights, in)
	}
	return insights, nil
}
