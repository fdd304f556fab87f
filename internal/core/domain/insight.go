package domain

// InsightCategory scopes an insight to one kind of business decision.
type InsightCategory string

const (
	CategoryStrategic   InsightCategory = "strategic"
	CategoryTactical    InsightCategory = "tactical"
	CategoryOperational InsightCategory = "operational"
	CategoryCompetitive InsightCategory = "competitive"
)

// TimeSensitivity says how soon an insight should be acted on.
type TimeSensitivity string

const (
	TimeImmediate TimeSensitivity = "immediate"
	TimeShortTerm TimeSensitivity = "short_term"
	TimeLongTerm  TimeSensitivity = "long_term"
)

// RecommendedAction is a lightweight suggestion attached to an insight.
type RecommendedAction struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Timeline string `json:"timeline"`
}

// Insight is a business-framed interpretation of one or more patterns.
type Insight struct {
	ID                    string              `json:"id"`
	Category              InsightCategory     `json:"category"`
	Title                 string              `json:"title"`
	Description           string              `json:"description"`
	EvidenceStrength      float64             `json:"evidence_strength"`
	BusinessValue         string              `json:"business_value"`
	RecommendedActions    []RecommendedAction `json:"recommended_actions,omitempty"`
	TimeSensitivity       TimeSensitivity     `json:"time_sensitivity"`
	Confidence            float64             `json:"confidence"`
	SupportingPatternRefs []string            `json:"supporting_pattern_refs,omitempty"`

	// PriorityScore is set during prioritisation, after every synthesizer has run.
	PriorityScore float64 `json:"priority_score"`
}

// ExecutiveSummary condenses a prioritised insight list.
type ExecutiveSummary struct {
	TopInsightCount int    `json:"top_insight_count"`
	ImmediateCount  int    `json:"immediate_count"`
	HighValueCount  int    `json:"high_value_count"`
	TopInsightTitle string `json:"top_insight_title,omitempty"`
	Narrative       string `json:"narrative"`
}

// InsightResult is the output of the synthesis stage.
type InsightResult struct {
	Insights         []Insight        `json:"insights"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	QualityScore     float64          `json:"quality_score"`
}
