package domain

import (
	"fmt"
	"strings"
)

// Well-known objectives. Objective is an open string; these are the ones
// the default source-selection table knows about.
const (
	ObjectiveCompetitiveAnalysis = "competitive_analysis"
	ObjectiveCustomerInsights    = "customer_insights"
	ObjectiveMarketExpansion     = "market_expansion"
	ObjectiveProductStrategy     = "product_strategy"
	ObjectiveComprehensive       = "comprehensive"
)

// Request describes one intelligence run.
// It is passed by value through every stage and never mutated.
type Request struct {
	// Target is the entity being analysed (company, domain, product).
	Target string `json:"target" yaml:"target"`

	// Objective selects which sources are consulted.
	Objective string `json:"objective" yaml:"objective"`

	// Context carries business context such as "focus" and "focus_areas".
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// Constraints are advisory limits applied by the action stage.
	Constraints map[string]any `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// Validate checks the request carries a target and an objective.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("%w: target is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Objective) == "" {
		return fmt.Errorf("%w: objective is required", ErrInvalidRequest)
	}
	return nil
}

// BusinessContext returns the typed view of the request context.
func (r Request) BusinessContext() BusinessContext {
	return NewBusinessContext(r.Context)
}

// Business focus values recognised by prioritisation.
const (
	FocusGrowth     = "growth"
	FocusEfficiency = "efficiency"
)

// BusinessContext is the subset of the request context the stages understand.
type BusinessContext struct {
	// Focus is the business priority, e.g. "growth" or "efficiency".
	Focus string `json:"focus,omitempty"`

	// FocusAreas narrows what source adapters look for.
	FocusAreas []string `json:"focus_areas,omitempty"`

	// Industry is free text used in narratives.
	Industry string `json:"industry,omitempty"`
}

// NewBusinessContext extracts known keys from a loosely-typed context map.
func NewBusinessContext(ctx map[string]any) BusinessContext {
	var bc BusinessContext
	if ctx == nil {
		return bc
	}
	if v, ok := ctx["focus"].(string); ok {
		bc.Focus = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := ctx["industry"].(string); ok {
		bc.Industry = v
	}
	switch v := ctx["focus_areas"].(type) {
	case []string:
		bc.FocusAreas = append(bc.FocusAreas, v...)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				bc.FocusAreas = append(bc.FocusAreas, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				bc.FocusAreas = append(bc.FocusAreas, s)
			}
		}
	}
	return bc
}
