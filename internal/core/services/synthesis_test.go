package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

func tactical(title string, evidence, confidence float64) domain.Insight {
	return domain.Insight{
		Category:         domain.CategoryTactical,
		Title:            title,
		EvidenceStrength: evidence,
		Confidence:       confidence,
		TimeSensitivity:  domain.TimeLongTerm,
	}
}

func TestDiscoverCompoundInsights_TwoMarketTactical(t *testing.T) {
	insights := []domain.Insight{
		tactical("Market share slipping in EMEA", 0.7, 0.8),
		tactical("New market segment emerging", 0.5, 0.9),
	}

	compound := DiscoverCompoundInsights(insights)

	require.Len(t, compound, 1)
	c := compound[0]
	assert.Equal(t, "compound-market", c.ID)
	assert.Equal(t, domain.CategoryStrategic, c.Category)
	assert.InDelta(t, 0.5, c.EvidenceStrength, 1e-9)
	assert.InDelta(t, 0.8, c.Confidence, 1e-9)
	assert.Equal(t, domain.TimeShortTerm, c.TimeSensitivity)
	assert.NotEmpty(t, c.RecommendedActions)
}

func TestDiscoverCompoundInsights_SingleMemberYieldsNone(t *testing.T) {
	insights := []domain.Insight{tactical("Market share slipping", 0.7, 0.8)}
	assert.Empty(t, DiscoverCompoundInsights(insights))
}

func TestDiscoverCompoundInsights_IgnoresOtherCategories(t *testing.T) {
	other := tactical("Market expansion", 0.7, 0.8)
	other.Category = domain.CategoryStrategic
	insights := []domain.Insight{tactical("Market share slipping", 0.7, 0.8), other}
	assert.Empty(t, DiscoverCompoundInsights(insights))
}

func TestInsightTheme(t *testing.T) {
	assert.Equal(t, "market", InsightTheme("Market timing"))
	assert.Equal(t, "customer", InsightTheme("Customer churn"))
	assert.Equal(t, "competitive", InsightTheme("Competitive pressure"))
	assert.Equal(t, "operational", InsightTheme("Operational drag"))
	assert.Equal(t, "general", InsightTheme("Something else"))
}

func TestInsightPriority_Multipliers(t *testing.T) {
	base := domain.Insight{Title: "Expansion opportunity", Confidence: 0.5, EvidenceStrength: 0.8}

	assert.InDelta(t, 0.4, InsightPriority(base, domain.BusinessContext{}), 1e-9)
	assert.InDelta(t, 0.6, InsightPriority(base, domain.BusinessContext{Focus: domain.FocusGrowth}), 1e-9)

	ops := base
	ops.Category = domain.CategoryOperational
	assert.InDelta(t, 0.52, InsightPriority(ops, domain.BusinessContext{Focus: domain.FocusEfficiency}), 1e-9)

	urgent := base
	urgent.TimeSensitivity = domain.TimeImmediate
	assert.InDelta(t, 0.4*1.5*1.4, InsightPriority(urgent, domain.BusinessContext{Focus: domain.FocusGrowth}), 1e-9)

	soon := base
	soon.TimeSensitivity = domain.TimeShortTerm
	assert.InDelta(t, 0.48, InsightPriority(soon, domain.BusinessContext{}), 1e-9)
}

func TestPrioritizeInsights_ImmediateNeverBelowLongTerm(t *testing.T) {
	for _, bc := range []domain.BusinessContext{{}, {Focus: domain.FocusGrowth}, {Focus: domain.FocusEfficiency}} {
		longTerm := domain.Insight{ID: "later", Title: "Opportunity", Confidence: 0.6, EvidenceStrength: 0.6,
			Category: domain.CategoryOperational, TimeSensitivity: domain.TimeLongTerm}
		immediate := longTerm
		immediate.ID = "now"
		immediate.TimeSensitivity = domain.TimeImmediate

		insights := []domain.Insight{longTerm, immediate}
		PrioritizeInsights(insights, bc)

		assert.Equal(t, "now", insights[0].ID, bc.Focus)
		assert.Greater(t, insights[0].PriorityScore, insights[1].PriorityScore)
	}
}

func TestSummarize(t *testing.T) {
	insights := []domain.Insight{
		{Title: "First", Description: "Demand is outpacing supply.", TimeSensitivity: domain.TimeImmediate, BusinessValue: "High revenue"},
		{Title: "Second", TimeSensitivity: domain.TimeShortTerm, BusinessValue: "medium"},
		{Title: "Third", TimeSensitivity: domain.TimeImmediate, BusinessValue: "high"},
		{Title: "Fourth", TimeSensitivity: domain.TimeImmediate},
	}

	summary := Summarize(insights)

	assert.Equal(t, 4, summary.TopInsightCount)
	assert.Equal(t, 3, summary.ImmediateCount)
	assert.Equal(t, 2, summary.HighValueCount)
	assert.Equal(t, "First", summary.TopInsightTitle)
	assert.Equal(t, "Demand is outpacing supply. 2 of the top 3 insights require immediate action.", summary.Narrative)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.TopInsightCount)
	assert.NotEmpty(t, summary.Narrative)
}

func TestSynthesize_EndToEnd(t *testing.T) {
	svc := NewSynthesisService(
		&stubSynthesizer{category: domain.CategoryTactical, insights: []domain.Insight{
			{Title: "Customer onboarding friction", Confidence: 0.8, EvidenceStrength: 0.7,
				TimeSensitivity: domain.TimeImmediate, RecommendedActions: []domain.RecommendedAction{{Action: "fix"}}},
			{Title: "Customer renewal risk", Confidence: 1.3, EvidenceStrength: 0.6, TimeSensitivity: domain.TimeLongTerm},
		}},
		&stubSynthesizer{category: domain.CategoryStrategic},
	)

	result, err := svc.Synthesize(context.Background(), &domain.PatternResult{}, domain.BusinessContext{})
	require.NoError(t, err)

	require.Len(t, result.Insights, 3)
	for i, in := range result.Insights {
		assert.NotEmpty(t, in.ID)
		assert.LessOrEqual(t, in.Confidence, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, result.Insights[i-1].PriorityScore, in.PriorityScore)
		}
	}
	assert.Equal(t, "Customer onboarding friction", result.Insights[0].Title)
	assert.Equal(t, 3, result.ExecutiveSummary.TopInsightCount)

	var compound int
	for _, in := range result.Insights {
		if in.ID == "compound-customer" {
			compound++
			assert.Equal(t, domain.CategoryStrategic, in.Category)
		}
	}
	assert.Equal(t, 1, compound)
	assert.Greater(t, result.QualityScore, 0.0)
	assert.LessOrEqual(t, result.QualityScore, 1.0)
}

func TestSynthesize_EmptyPatterns(t *testing.T) {
	svc := NewSynthesisService(&stubSynthesizer{category: domain.CategoryStrategic})

	result, err := svc.Synthesize(context.Background(), &domain.PatternResult{}, domain.BusinessContext{})
	require.NoError(t, err)
	assert.Empty(t, result.Insights)
	assert.Zero(t, result.QualityScore)
}

func TestSynthesize_Errors(t *testing.T) {
	svc := NewSynthesisService(&stubSynthesizer{category: domain.CategoryOperational, err: errors.New("boom")})

	_, err := svc.Synthesize(context.Background(), &domain.PatternResult{}, domain.BusinessContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operational")

	_, err = svc.Synthesize(context.Background(), nil, domain.BusinessContext{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
