package synthesizers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Competitive implements the interface.
var _ driven.Synthesizer = (*Competitive)(nil)

var competitiveKeywords = []string{"compet", "rival", "price", "pricing", "market share"}

// Competitive reads patterns for moves by other players.
type Competitive struct {
	minConfidence float64
}

// NewCompetitive creates a competitive synthesizer.
func NewCompetitive(minConfidence float64) *Competitive {
	return &Competitive{minConfidence: minConfidence}
}

// Category returns the insight category.
func (s *Competitive) Category() domain.InsightCategory { return domain.CategoryCompetitive }

// Synthesize emits one insight per pattern about competitors or pricing.
// High-impact pressure needs immediate attention.
func (s *Competitive) Synthesize(
	_ context.Context,
	patterns []domain.Pattern,
	_ domain.BusinessContext,
) ([]domain.Insight, error) {
	var insights []domain.Insight
	for _, p := range patterns {
		if p.Confidence < s.minConfidence || !containsAny(p.Description, competitiveKeywords...) {
			continue
		}
		in := domain.Insight{
			Category:         domain.CategoryCompetitive,
			Title:            fmt.Sprintf("Competitive pressure: %s", subject(p.Description)),
			Description:      p.Description,
			EvidenceStrength: p.Confidence,
			Confidence:       p.Confidence,
			BusinessValue:    "medium - defend share",
			RecommendedActions: []domain.RecommendedAction{{
				Action:   "Update battlecards and positioning",
				Priority: string(domain.PriorityMedium),
				Timeline: "Weeks 2-3",
			}},
			TimeSensitivity:       domain.TimeShortTerm,
			SupportingPatternRefs: refs(p),
		}
		if highImpact(p) {
			in.TimeSensitivity = domain.TimeImmediate
			in.BusinessValue = "high - defend share"
		}
		insights = append(insights, in)
	}
	return insights, nil
}
