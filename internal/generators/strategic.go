package generators

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Strategic implements the interface.
var _ driven.ActionGenerator = (*Strategic)(nil)

// Strategic turns strategic insights into executive-owned initiatives.
type Strategic struct{}

// NewStrategic creates a strategic generator.
func NewStrategic() *Strategic { return &Strategic{} }

// Domain returns the routing key.
func (g *Strategic) Domain() string { return driven.GeneratorStrategic }

// Generate returns one strategic initiative. Short-term insights get high priority.
func (g *Strategic) Generate(_ context.Context, in domain.Insight, bc domain.BusinessContext) ([]domain.Action, error) {
	priority := priorityFor(in)
	if in.TimeSensitivity == domain.TimeShortTerm {
		priority = domain.PriorityHigh
	}
	return []domain.Action{{
		Type:        domain.ActionStrategicInitiative,
		Title:       fmt.Sprintf("Strategic initiative: %s", in.Title),
		Description: inIndustry("Decide the company's position on this signal", bc),
		Steps: []string{
			"Frame the decision and options",
			"Size the investment for each option",
			"Take a decision at the next leadership review",
		},
		Owner:           "Executive Team",
		Timeline:        "Month 2",
		Priority:        priority,
		ExpectedOutcome: "A funded decision on the strategic direction",
		SuccessMetrics:  []string{"decision made", "budget allocated"},
		RiskFactors:     []string{"decision delayed past the window"},
	}}, nil
}
