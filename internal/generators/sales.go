package generators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Sales implements the interface.
var _ driven.ActionGenerator = (*Sales)(nil)

// Sales turns insights into outreach and, for pricing signals, a pricing review.
type Sales struct{}

// NewSales creates a sales generator.
func NewSales() *Sales { return &Sales{} }

// Domain returns the routing key.
func (g *Sales) Domain() string { return driven.GeneratorSales }

// Generate returns an outreach action, plus a pricing change when the insight mentions pricing.
func (g *Sales) Generate(_ context.Context, in domain.Insight, bc domain.BusinessContext) ([]domain.Action, error) {
	actions := []domain.Action{{
		Type:        domain.ActionSalesOutreach,
		Title:       fmt.Sprintf("Sales outreach: %s", in.Title),
		Description: inIndustry("Reach accounts affected by this signal", bc),
		Steps: []string{
			"Build a target account list from CRM",
			"Draft talking points from the insight evidence",
			"Run outreach and log responses",
		},
		Owner:           "Sales Director",
		Timeline:        timelineFor(in, true),
		Priority:        priorityFor(in),
		ExpectedOutcome: "Pipeline created from accounts showing the signal",
		SuccessMetrics:  []string{"meetings booked", "pipeline value"},
	}}

	if containsAny(in.Title+" "+in.Description, "pric") {
		actions = append(actions, domain.Action{
			Type:        domain.ActionPricingChange,
			Title:       fmt.Sprintf("Pricing review: %s", in.Title),
			Description: "Assess whether list prices or discount policy should move",
			Steps: []string{
				"Compare win/loss against price points",
				"Model revenue impact of adjustments",
				"Propose a change for approval",
			},
			Owner:           "Revenue Operations",
			Timeline:        timelineFor(in, false),
			Priority:        priorityFor(in),
			ExpectedOutcome: "Pricing aligned with market movement",
			SuccessMetrics:  []string{"win rate", "average deal size"},
			Dependencies:    []string{"Sales outreach feedback"},
			RiskFactors:     []string{"margin erosion"},
		})
	}
	return actions, nil
}
