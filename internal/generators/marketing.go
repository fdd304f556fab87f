package generators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Marketing implements the interface.
var _ driven.ActionGenerator = (*Marketing)(nil)

// Marketing produces content, or a competitive response for competitive insights.
type Marketing struct{}

// NewMarketing creates a marketing generator.
func NewMarketing() *Marketing { return &Marketing{} }

// Domain returns the routing key.
func (g *Marketing) Domain() string { return driven.GeneratorMarketing }

// Generate returns one marketing action.
func (g *Marketing) Generate(_ context.Context, in domain.Insight, bc domain.BusinessContext) ([]domain.Action, error) {
	if in.Category == domain.CategoryCompetitive || containsAny(in.Title, "competitive") {
		return []domain.Action{{
			Type:        domain.ActionCompetitiveResponse,
			Title:       fmt.Sprintf("Competitive response: %s", in.Title),
			Description: inIndustry("Counter the competitor move in messaging and enablement", bc),
			Steps: []string{
				"Update battlecards",
				"Publish a comparison page",
				"Brief the sales team",
			},
			Owner:           "Product Marketing Manager",
			Timeline:        timelineFor(in, true),
			Priority:        priorityFor(in),
			ExpectedOutcome: "Share defended against the competitor move",
			SuccessMetrics:  []string{"competitive win rate"},
			RiskFactors:     []string{"price-led race to the bottom"},
		}}, nil
	}

	return []domain.Action{{
		Type:        domain.ActionContentCreation,
		Title:       fmt.Sprintf("Campaign: %s", in.Title),
		Description: inIndustry("Create content that speaks to this signal", bc),
		Steps: []string{
			"Write a brief from the insight",
			"Produce one long-form piece and three social posts",
			"Measure engagement after two weeks",
		},
		Owner:           "Marketing Lead",
		Timeline:        timelineFor(in, false),
		Priority:        priorityFor(in),
		ExpectedOutcome: "Awareness among the audience showing the signal",
		SuccessMetrics:  []string{"engagement rate", "inbound leads"},
	}}, nil
}
