package generators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Operations implements the interface.
var _ driven.ActionGenerator = (*Operations)(nil)

// Operations fixes processes, or the product when the gap is in the product.
type Operations struct{}

// NewOperations creates an operations generator.
func NewOperations() *Operations { return &Operations{} }

// Domain returns the routing key.
func (g *Operations) Domain() string { return driven.GeneratorOperations }

// Generate returns one process or product action.
func (g *Operations) Generate(_ context.Context, in domain.Insight, _ domain.BusinessContext) ([]domain.Action, error) {
	if containsAny(in.Title+" "+in.Description, "product", "onboarding", "feature") {
		return []domain.Action{{
			Type:        domain.ActionProductAdjustment,
			Title:       fmt.Sprintf("Product fix: %s", in.Title),
			Description: "Change the product where the signal shows friction",
			Steps: []string{
				"Reproduce the friction with affected users",
				"Scope the smallest fix",
				"Ship behind a flag and measure",
			},
			Owner:           "Product Manager",
			Timeline:        timelineFor(in, false),
			Priority:        priorityFor(in),
			ExpectedOutcome: "Friction removed for affected users",
			SuccessMetrics:  []string{"activation rate", "support tickets"},
		}}, nil
	}

	return []domain.Action{{
		Type:        domain.ActionProcessImprovement,
		Title:       fmt.Sprintf("Process improvement: %s", in.Title),
		Description: "Close the operational gap behind this signal",
		Steps: []string{
			"Map the current process",
			"Remove the failing step",
			"Review after one cycle",
		},
		Owner:           "Engineering Manager",
		Timeline:        timelineFor(in, false),
		Priority:        priorityFor(in),
		ExpectedOutcome: "Gap closed and monitored",
		SuccessMetrics:  []string{"cycle time"},
	}}, nil
}
