package domain

// ActionType is the kind of work an action represents.
type ActionType string

const (
	ActionSalesOutreach       ActionType = "sales_outreach"
	ActionProductAdjustment   ActionType = "product_adjustment"
	ActionPricingChange       ActionType = "pricing_change"
	ActionContentCreation     ActionType = "content_creation"
	ActionCompetitiveResponse ActionType = "competitive_response"
	ActionProcessImprovement  ActionType = "process_improvement"
	ActionStrategicInitiative ActionType = "strategic_initiative"
)

// Priority of an action.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders priorities for sequencing; lower runs first.
// Unknown priorities sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Action is a concrete, owned, timelined recommendation derived from one insight.
type Action struct {
	ID              string     `json:"id"`
	Type            ActionType `json:"type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Steps           []string   `json:"steps"`
	Owner           string     `json:"owner"`
	Timeline        string     `json:"timeline"`
	Priority        Priority   `json:"priority"`
	ExpectedOutcome string     `json:"expected_outcome"`
	SuccessMetrics  []string   `json:"success_metrics,omitempty"`
	Dependencies    []string   `json:"dependencies,omitempty"`
	RiskFactors     []string   `json:"risk_factors,omitempty"`

	// InsightID links back to the insight the action was generated from.
	InsightID string `json:"insight_id,omitempty"`
}

// Phase is one bucket of the execution plan.
type Phase struct {
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	Window    string   `json:"window"`
	ActionIDs []string `json:"action_ids"`
}

// Plan buckets sequenced actions into four fixed phases.
// Actions whose timeline matches no phase are absent from the plan.
type Plan struct {
	Phases []Phase `json:"phases"`
}

// ResourceSummary groups actions by owner.
type ResourceSummary struct {
	ByOwner map[string]int `json:"by_owner"`

	// CriticalResources flags executive, engineering/product and sales involvement.
	CriticalResources []string `json:"critical_resources,omitempty"`
}

// ImpactSummary counts actions by priority and type.
type ImpactSummary struct {
	TotalActions     int                `json:"total_actions"`
	ByPriority       map[Priority]int   `json:"by_priority"`
	ByType           map[ActionType]int `json:"by_type"`
	ExpectedOutcomes []string           `json:"expected_outcomes,omitempty"`
}

// Milestone is one point on the action timeline.
type Milestone struct {
	Phase       string `json:"phase"`
	Window      string `json:"window"`
	Description string `json:"description"`
}

// ActionResult is the output of the action stage.
type ActionResult struct {
	Actions         []Action        `json:"actions"`
	Plan            Plan            `json:"plan"`
	ResourceSummary ResourceSummary `json:"resource_summary"`
	ImpactSummary   ImpactSummary   `json:"impact_summary"`
	Timeline        []Milestone     `json:"timeline"`
}
