package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Insight themes used for compound-insight discovery, in match order.
var insightThemes = []string{"market", "customer", "competitive", "operational"}

// insightThemeGeneral catches titles matching no other theme.
const insightThemeGeneral = "general"

// minCompoundMembers is how many same-theme tactical insights make a compound insight.
const minCompoundMembers = 2

// summaryTopN is how many insights the executive summary counts as top insights.
const summaryTopN = 5

// SynthesisService turns ranked patterns into prioritised insights.
type SynthesisService struct {
	synthesizers []driven.Synthesizer
}

// NewSynthesisService creates a synthesis service with the given synthesizers.
func NewSynthesisService(synthesizers ...driven.Synthesizer) *SynthesisService {
	return &SynthesisService{synthesizers: synthesizers}
}

// Synthesize runs every synthesizer over patterns and meta-patterns, adds
// compound insights, then prioritises and summarises the result.
func (s *SynthesisService) Synthesize(
	ctx context.Context,
	patterns *domain.PatternResult,
	bc domain.BusinessContext,
) (*domain.InsightResult, error) {
	if patterns == nil {
		return nil, fmt.Errorf("%w: pattern result is nil", domain.ErrInvalidInput)
	}
	all := patterns.All()

	insights := []domain.Insight{}
	for _, syn := range s.synthesizers {
		found, err := syn.Synthesize(ctx, all, bc)
		if err != nil {
			return nil, fmt.Errorf("synthesizer %s: %w", syn.Category(), err)
		}
		for _, in := range found {
			if in.ID == "" {
				in.ID = uuid.New().String()
			}
			if in.Category == "" {
				in.Category = syn.Category()
			}
			in.Confidence = domain.Clamp01(in.Confidence)
			in.EvidenceStrength = domain.Clamp01(in.EvidenceStrength)
			in.PriorityScore = 0
			insights = append(insights, in)
		}
	}

	insights = append(insights, DiscoverCompoundInsights(insights)...)
	PrioritizeInsights(insights, bc)

	logger.Debug("synthesis: %d insights", len(insights))
	return &domain.InsightResult{
		Insights:         insights,
		ExecutiveSummary: Summarize(insights),
		QualityScore:     insightQuality(insights),
	}, nil
}

// InsightTheme classifies an insight title by keyword.
func InsightTheme(title string) string {
	lower := strings.ToLower(title)
	for _, theme := range insightThemes {
		if strings.Contains(lower, theme) {
			return theme
		}
	}
	return insightThemeGeneral
}

// DiscoverCompoundInsights groups tactical insights by title theme and
// emits one strategic insight for every theme with two or more members.
func DiscoverCompoundInsights(insights []domain.Insight) []domain.Insight {
	groups := make(map[string][]domain.Insight)
	for _, in := range insights {
		if in.Category != domain.CategoryTactical {
			continue
		}
		theme := InsightTheme(in.Title)
		groups[theme] = append(groups[theme], in)
	}

	compound := []domain.Insight{}
	for _, theme := range append(append([]string{}, insightThemes...), insightThemeGeneral) {
		members := groups[theme]
		if len(members) < minCompoundMembers {
			continue
		}
		evidence, confidence := 1.0, 1.0
		titles := make([]string, 0, len(members))
		var refs []string
		for _, m := range members {
			evidence = math.Min(evidence, m.EvidenceStrength)
			confidence = math.Min(confidence, m.Confidence)
			titles = append(titles, m.Title)
			refs = append(refs, m.SupportingPatternRefs...)
		}
		compound = append(compound, domain.Insight{
			ID:       "compound-" + theme,
			Category: domain.CategoryStrategic,
			Title:    fmt.Sprintf("Compound %s signal across %d tactical insights", theme, len(members)),
			Description: fmt.Sprintf("Tactical insights converge on the %s theme: %s.",
				theme, strings.Join(titles, "; ")),
			EvidenceStrength: domain.Clamp01(evidence),
			BusinessValue:    "high - coordinated response compounds individual gains",
			RecommendedActions: []domain.RecommendedAction{{
				Action:   fmt.Sprintf("Coordinate a cross-functional plan for the %s theme", theme),
				Priority: string(domain.PriorityHigh),
				Timeline: "2-4 weeks",
			}},
			TimeSensitivity:       domain.TimeShortTerm,
			Confidence:            domain.Clamp01(confidence),
			SupportingPatternRefs: refs,
		})
	}
	return compound
}

// InsightPriority scores one insight. Multipliers compound in a fixed order:
// growth focus, efficiency focus, then time sensitivity.
func InsightPriority(in domain.Insight, bc domain.BusinessContext) float64 {
	score := in.Confidence * in.EvidenceStrength
	if bc.Focus == domain.FocusGrowth && strings.Contains(strings.ToLower(in.Title), "opportunity") {
		score *= 1.5
	}
	if bc.Focus == domain.FocusEfficiency && in.Category == domain.CategoryOperational {
		score *= 1.3
	}
	switch in.TimeSensitivity {
	case domain.TimeImmediate:
		score *= 1.4
	case domain.TimeShortTerm:
		score *= 1.2
	}
	return score
}

// PrioritizeInsights scores insights in place and sorts them by descending priority.
func PrioritizeInsights(insights []domain.Insight, bc domain.BusinessContext) {
	for i := range insights {
		insights[i].PriorityScore = InsightPriority(insights[i], bc)
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].PriorityScore > insights[j].PriorityScore
	})
}

// Summarize builds the executive summary of a prioritised insight list.
func Summarize(insights []domain.Insight) domain.ExecutiveSummary {
	summary := domain.ExecutiveSummary{
		TopInsightCount: min(len(insights), summaryTopN),
	}
	for _, in := range insights {
		if in.TimeSensitivity == domain.TimeImmediate {
			summary.ImmediateCount++
		}
		if strings.Contains(strings.ToLower(in.BusinessValue), domain.ImpactHigh) {
			summary.HighValueCount++
		}
	}
	if len(insights) == 0 {
		summary.Narrative = "No insights were synthesized from the available patterns."
		return summary
	}

	summary.TopInsightTitle = insights[0].Title
	top := insights[:min(len(insights), 3)]
	immediate := 0
	for _, in := range top {
		if in.TimeSensitivity == domain.TimeImmediate {
			immediate++
		}
	}
	summary.Narrative = fmt.Sprintf("%s %d of the top %d insights require immediate action.",
		strings.TrimSpace(insights[0].Description), immediate, len(top))
	return summary
}

// insightQuality is the mean of average confidence, average evidence
// strength and the share of insights carrying a recommended action.
func insightQuality(insights []domain.Insight) float64 {
	if len(insights) == 0 {
		return 0
	}
	confidences := make([]float64, 0, len(insights))
	evidence := make([]float64, 0, len(insights))
	actionable := 0
	for _, in := range insights {
		confidences = append(confidences, in.Confidence)
		evidence = append(evidence, in.EvidenceStrength)
		if len(in.RecommendedActions) > 0 {
			actionable++
		}
	}
	return domain.Clamp01(domain.Mean(
		domain.Mean(confidences...),
		domain.Mean(evidence...),
		float64(actionable)/float64(len(insights)),
	))
}
