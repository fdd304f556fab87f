package generators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/services"
)

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Insight
		want domain.Priority
	}{
		{"immediate high value", domain.Insight{TimeSensitivity: domain.TimeImmediate, BusinessValue: "high - revenue"}, domain.PriorityCritical},
		{"immediate", domain.Insight{TimeSensitivity: domain.TimeImmediate, BusinessValue: "medium"}, domain.PriorityHigh},
		{"short term", domain.Insight{TimeSensitivity: domain.TimeShortTerm}, domain.PriorityMedium},
		{"long term", domain.Insight{TimeSensitivity: domain.TimeLongTerm}, domain.PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priorityFor(tt.in))
		})
	}
}

func TestTimelines_FallInPlanPhases(t *testing.T) {
	for _, sensitivity := range []domain.TimeSensitivity{domain.TimeImmediate, domain.TimeShortTerm, domain.TimeLongTerm} {
		in := domain.Insight{TimeSensitivity: sensitivity}
		assert.NotZero(t, services.PhaseFor(timelineFor(in, true)), sensitivity)
		assert.NotZero(t, services.PhaseFor(timelineFor(in, false)), sensitivity)
	}
	assert.Equal(t, 4, services.PhaseFor("Month 2"))
}

func TestSales_PricingAddsReview(t *testing.T) {
	in := domain.Insight{
		Title:           "Customer retention risk: price sensitivity",
		TimeSensitivity: domain.TimeImmediate,
		BusinessValue:   "high - near-term revenue",
	}
	actions, err := NewSales().Generate(context.Background(), in, domain.BusinessContext{Industry: "fintech"})
	require.NoError(t, err)
	require.Len(t, actions, 2)

	assert.Equal(t, domain.ActionSalesOutreach, actions[0].Type)
	assert.Equal(t, domain.PriorityCritical, actions[0].Priority)
	assert.Equal(t, "Immediate", actions[0].Timeline)
	assert.Contains(t, actions[0].Description, "fintech")
	assert.Equal(t, domain.ActionPricingChange, actions[1].Type)
}

func TestMarketing_CompetitiveResponse(t *testing.T) {
	in := domain.Insight{Category: domain.CategoryCompetitive, Title: "Competitive pressure: rival launch", TimeSensitivity: domain.TimeShortTerm}
	actions, err := NewMarketing().Generate(context.Background(), in, domain.BusinessContext{})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionCompetitiveResponse, actions[0].Type)
	assert.Equal(t, "Week 1", actions[0].Timeline)

	in = domain.Insight{Category: domain.CategoryTactical, Title: "Customer opportunity: api", TimeSensitivity: domain.TimeShortTerm}
	actions, err = NewMarketing().Generate(context.Background(), in, domain.BusinessContext{})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionContentCreation, actions[0].Type)
	assert.Equal(t, "Weeks 2-3", actions[0].Timeline)
}

func TestStrategic_ShortTermIsHigh(t *testing.T) {
	in := domain.Insight{Title: "Compound market signal", TimeSensitivity: domain.TimeShortTerm}
	actions, err := NewStrategic().Generate(context.Background(), in, domain.BusinessContext{})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, domain.PriorityHigh, actions[0].Priority)
	assert.Equal(t, "Executive Team", actions[0].Owner)
}

func TestOperations_ProductOrProcess(t *testing.T) {
	actions, err := NewOperations().Generate(context.Background(),
		domain.Insight{Title: "Operational gap: onboarding tickets up"}, domain.BusinessContext{})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionProductAdjustment, actions[0].Type)

	actions, err = NewOperations().Generate(context.Background(),
		domain.Insight{Title: "Operational gap: coverage risk"}, domain.BusinessContext{})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionProcessImprovement, actions[0].Type)
	assert.Equal(t, domain.PriorityLow, actions[0].Priority)
}

func TestNewRegistry_Domains(t *testing.T) {
	built, err := NewRegistry().BuildAll(nil, nil)
	require.NoError(t, err)

	domains := make([]string, 0, len(built))
	for _, g := range built {
		domains = append(domains, g.Domain())
	}
	assert.Equal(t, []string{"sales", "marketing", "strategic", "operations"}, domains)
}
