package synthesizers

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Strategic implements the interface.
var _ driven.Synthesizer = (*Strategic)(nil)

// Strategic frames high-impact patterns as long-horizon market decisions.
type Strategic struct {
	minConfidence float64
}

// NewStrategic creates a strategic synthesizer.
func NewStrategic(minConfidence float64) *Strategic {
	return &Strategic{minConfidence: minConfidence}
}

// Category returns the insight category.
func (s *Strategic) Category() domain.InsightCategory { return domain.CategoryStrategic }

// Synthesize emits one insight per critical or high impact pattern.
// Critical patterns are short-term, the rest long-term.
func (s *Strategic) Synthesize(
	_ context.Context,
	patterns []domain.Pattern,
	_ domain.BusinessContext,
) ([]domain.Insight, error) {
	var insights []domain.Insight
	for _, p := range patterns {
		if !highImpact(p) || p.Confidence < s.minConfidence {
			continue
		}

		kind := "market signal"
		switch {
		case isRisk(p):
			kind = "market risk"
		case isOpportunity(p):
			kind = "market opportunity"
		}
		sensitivity := domain.TimeLongTerm
		if p.ImpactLevel() == domain.ImpactCritical {
			sensitivity = domain.TimeShortTerm
		}

		insights = append(insights, domain.Insight{
			Category:         domain.CategoryStrategic,
			Title:            fmt.Sprintf("Strategic %s: %s", kind, subject(p.Description)),
			Description:      fmt.Sprintf("%s. This shifts the longer-term position and merits a leadership decision.", p.Description),
			EvidenceStrength: p.Confidence,
			Confidence:       p.Confidence * 0.9,
			BusinessValue:    "high - shapes market position",
			RecommendedActions: []domain.RecommendedAction{{
				Action:   "Review positioning with the leadership team",
				Priority: string(domain.PriorityHigh),
				Timeline: "Month 2",
			}},
			TimeSensitivity:       sensitivity,
			SupportingPatternRefs: refs(p),
		})
	}
	return insights, nil
}
