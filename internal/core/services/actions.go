package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Constraint keys understood by the enforce policy.
const (
	ConstraintExcludeTypes = "exclude_types"
	ConstraintMaxActions   = "max_actions"
)

// planPhases are the four fixed execution phases.
var planPhases = []domain.Phase{
	{Number: 1, Name: "Immediate response", Window: "0-48 hours"},
	{Number: 2, Name: "Quick wins", Window: "Week 1"},
	{Number: 3, Name: "Execution", Window: "Weeks 2-4"},
	{Number: 4, Name: "Strategic follow-through", Window: "Month 2+"},
}

// ActionService turns prioritised insights into a sequenced, phased plan.
type ActionService struct {
	generators map[string]driven.ActionGenerator
	policy     domain.ConstraintPolicy
}

// NewActionService creates an action service.
// A later generator replaces an earlier one for the same domain.
func NewActionService(policy domain.ConstraintPolicy, generators ...driven.ActionGenerator) *ActionService {
	byDomain := make(map[string]driven.ActionGenerator, len(generators))
	for _, g := range generators {
		byDomain[g.Domain()] = g
	}
	return &ActionService{
		generators: byDomain,
		policy:     policy,
	}
}

// GenerateActions routes each insight to its generators, applies constraints,
// then sequences, phases and summarises the resulting actions.
func (s *ActionService) GenerateActions(
	ctx context.Context,
	insights *domain.InsightResult,
	bc domain.BusinessContext,
	constraints map[string]any,
) (*domain.ActionResult, error) {
	if insights == nil {
		return nil, fmt.Errorf("%w: insight result is nil", domain.ErrInvalidInput)
	}

	actions := []domain.Action{}
	routed := make(map[int]bool)

	for i, in := range insights.Insights {
		if in.TimeSensitivity != domain.TimeImmediate {
			continue
		}
		domains := immediateRoutes(in.Title)
		if len(domains) == 0 {
			continue
		}
		routed[i] = true
		generated, err := s.generate(ctx, in, bc, domains)
		if err != nil {
			return nil, err
		}
		actions = append(actions, generated...)
	}

	for i, in := range insights.Insights {
		if routed[i] {
			continue
		}
		generated, err := s.generate(ctx, in, bc, categoryRoutes(in.Category))
		if err != nil {
			return nil, err
		}
		actions = append(actions, generated...)
	}

	actions = s.applyConstraints(actions, constraints)
	SequenceActions(actions)
	if s.policy == domain.ConstraintEnforce {
		if limit, ok := intConstraint(constraints[ConstraintMaxActions]); ok && limit >= 0 && len(actions) > limit {
			actions = actions[:limit]
		}
	}

	logger.Debug("actions: %d generated", len(actions))
	return &domain.ActionResult{
		Actions:         actions,
		Plan:            BuildPlan(actions),
		ResourceSummary: summariseResources(actions),
		ImpactSummary:   summariseImpact(actions),
		Timeline:        buildTimeline(actions),
	}, nil
}

// generate runs the named generators for one insight.
func (s *ActionService) generate(
	ctx context.Context,
	in domain.Insight,
	bc domain.BusinessContext,
	domains []string,
) ([]domain.Action, error) {
	var out []domain.Action
	for _, name := range domains {
		gen, ok := s.generators[name]
		if !ok {
			continue
		}
		actions, err := gen.Generate(ctx, in, bc)
		if err != nil {
			return nil, fmt.Errorf("generator %s: %w", name, err)
		}
		for _, a := range actions {
			if a.ID == "" {
				a.ID = uuid.New().String()
			}
			if a.Priority == "" {
				a.Priority = domain.PriorityMedium
			}
			a.InsightID = in.ID
			out = append(out, a)
		}
	}
	return out, nil
}

// immediateRoutes picks generators for an immediate insight by title keyword.
func immediateRoutes(title string) []string {
	lower := strings.ToLower(title)
	var routes []string
	if strings.Contains(lower, "customer") || strings.Contains(lower, "buyer") {
		routes = append(routes, driven.GeneratorSales)
	}
	if strings.Contains(lower, "competitive") {
		routes = append(routes, driven.GeneratorMarketing)
	}
	return routes
}

// categoryRoutes picks generators by insight category.
func categoryRoutes(category domain.InsightCategory) []string {
	switch category {
	case domain.CategoryStrategic:
		return []string{driven.GeneratorStrategic}
	case domain.CategoryTactical:
		return []string{driven.GeneratorSales, driven.GeneratorMarketing}
	case domain.CategoryOperational:
		return []string{driven.GeneratorOperations}
	case domain.CategoryCompetitive:
		return []string{driven.GeneratorMarketing}
	default:
		return nil
	}
}

// applyConstraints annotates every action with the request constraints.
// Under the enforce policy excluded action types are also dropped.
func (s *ActionService) applyConstraints(actions []domain.Action, constraints map[string]any) []domain.Action {
	if len(constraints) == 0 {
		return actions
	}
	keys := make([]string, 0, len(constraints))
	for k := range constraints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	notes := make([]string, 0, len(keys))
	for _, k := range keys {
		notes = append(notes, fmt.Sprintf("constraint: %s=%v", k, constraints[k]))
	}

	excluded := make(map[domain.ActionType]bool)
	if s.policy == domain.ConstraintEnforce {
		for _, t := range stringsConstraint(constraints[ConstraintExcludeTypes]) {
			excluded[domain.ActionType(t)] = true
		}
	}

	out := make([]domain.Action, 0, len(actions))
	for _, a := range actions {
		if excluded[a.Type] {
			continue
		}
		a.RiskFactors = append(append([]string{}, a.RiskFactors...), notes...)
		out = append(out, a)
	}
	return out
}

// SequenceActions sorts actions by priority rank, dependency count, then timeline.
func SequenceActions(actions []domain.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if len(a.Dependencies) != len(b.Dependencies) {
			return len(a.Dependencies) < len(b.Dependencies)
		}
		return a.Timeline < b.Timeline
	})
}

// PhaseFor returns the plan phase a timeline falls in, or 0 if none.
func PhaseFor(timeline string) int {
	lower := strings.ToLower(timeline)
	week := strings.Contains(lower, "week")
	switch {
	case strings.Contains(lower, "immediate") || strings.Contains(lower, "today"):
		return 1
	case week && strings.Contains(lower, "1"):
		return 2
	case week && strings.ContainsAny(lower, "234"):
		return 3
	case strings.Contains(lower, "month"):
		return 4
	default:
		return 0
	}
}

// BuildPlan buckets sequenced actions into the four fixed phases.
// Actions with an unrecognised timeline are left out of the plan.
func BuildPlan(actions []domain.Action) domain.Plan {
	phases := make([]domain.Phase, len(planPhases))
	for i, p := range planPhases {
		p.ActionIDs = []string{}
		phases[i] = p
	}
	for _, a := range actions {
		if n := PhaseFor(a.Timeline); n > 0 {
			phases[n-1].ActionIDs = append(phases[n-1].ActionIDs, a.ID)
		}
	}
	return domain.Plan{Phases: phases}
}

// criticalResource flags, in report order.
var criticalResources = []struct {
	label    string
	keywords []string
}{
	{"executive", []string{"executive"}},
	{"engineering/product", []string{"engineering", "product"}},
	{"sales", []string{"sales"}},
}

func summariseResources(actions []domain.Action) domain.ResourceSummary {
	summary := domain.ResourceSummary{ByOwner: make(map[string]int)}
	flagged := make(map[string]bool)
	for _, a := range actions {
		summary.ByOwner[a.Owner]++
		lower := strings.ToLower(a.Owner)
		for _, r := range criticalResources {
			for _, kw := range r.keywords {
				if strings.Contains(lower, kw) {
					flagged[r.label] = true
				}
			}
		}
	}
	for _, r := range criticalResources {
		if flagged[r.label] {
			summary.CriticalResources = append(summary.CriticalResources, r.label)
		}
	}
	return summary
}

func summariseImpact(actions []domain.Action) domain.ImpactSummary {
	summary := domain.ImpactSummary{
		TotalActions: len(actions),
		ByPriority:   make(map[domain.Priority]int),
		ByType:       make(map[domain.ActionType]int),
	}
	for _, a := range actions {
		summary.ByPriority[a.Priority]++
		summary.ByType[a.Type]++
		if a.Priority.Rank() <= domain.PriorityHigh.Rank() && a.ExpectedOutcome != "" {
			summary.ExpectedOutcomes = append(summary.ExpectedOutcomes, a.ExpectedOutcome)
		}
	}
	return summary
}

// buildTimeline emits one milestone per non-empty phase.
func buildTimeline(actions []domain.Action) []domain.Milestone {
	byID := make(map[string]domain.Action, len(actions))
	for _, a := range actions {
		byID[a.ID] = a
	}
	milestones := []domain.Milestone{}
	for _, phase := range BuildPlan(actions).Phases {
		if len(phase.ActionIDs) == 0 {
			continue
		}
		critical := 0
		for _, id := range phase.ActionIDs {
			if byID[id].Priority == domain.PriorityCritical {
				critical++
			}
		}
		milestones = append(milestones, domain.Milestone{
			Phase:       phase.Name,
			Window:      phase.Window,
			Description: fmt.Sprintf("%d actions complete (%d critical)", len(phase.ActionIDs), critical),
		})
	}
	return milestones
}

// stringsConstraint reads a list constraint from a slice or comma-separated string.
func stringsConstraint(v any) []string {
	var out []string
	switch t := v.(type) {
	case []string:
		out = append(out, t...)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// intConstraint reads a numeric constraint decoded from JSON, YAML or TOML.
func intConstraint(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}
