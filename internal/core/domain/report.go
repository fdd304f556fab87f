package domain

import "time"

// Depth labels, from least to most signal.
const (
	DepthSurface     = "surface"
	DepthModerate    = "moderate"
	DepthDeep        = "deep"
	DepthExceptional = "exceptional"
)

// IngestionSummary is the report's view of the ingestion bundle.
type IngestionSummary struct {
	SourcesUsed       []string `json:"sources_used"`
	TotalDataPoints   int      `json:"total_data_points"`
	KeyFindingCount   int      `json:"key_finding_count"`
	CrossSourceTopics []string `json:"cross_source_topics"`
	AnomalyCount      int      `json:"anomaly_count"`
	QualityScore      float64  `json:"quality_score"`
}

// StageQuality records each stage's self-assessed quality.
type StageQuality struct {
	Ingestion float64 `json:"ingestion"`
	Pattern   float64 `json:"pattern"`
	Insight   float64 `json:"insight"`
}

// Change kinds reported between consecutive runs for the same target.
const (
	ChangeNewTopic       = "new_topic"
	ChangeDroppedTopic   = "dropped_topic"
	ChangeDepth          = "depth_change"
	ChangeConfidence     = "confidence_change"
	ChangeCriticalAction = "new_critical_action"
)

// ReportChange is one difference between a report and its predecessor.
type ReportChange struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// IntelligenceReport is the merged output of one pipeline run.
// It is never mutated after creation.
type IntelligenceReport struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	Target      string    `json:"target"`
	Objective   string    `json:"objective"`
	GeneratedAt time.Time `json:"generated_at"`

	Ingestion    IngestionSummary `json:"ingestion"`
	Patterns     []Pattern        `json:"patterns"`
	MetaPatterns []Pattern        `json:"meta_patterns"`
	Categories   map[string]int   `json:"categories"`
	Insights     []Insight        `json:"insights"`
	Summary      ExecutiveSummary `json:"executive_summary"`
	Actions      []Action         `json:"actions"`
	Plan         Plan             `json:"plan"`
	Resources    ResourceSummary  `json:"resources"`
	Impact       ImpactSummary    `json:"impact"`
	Timeline     []Milestone      `json:"timeline"`

	Quality         StageQuality   `json:"stage_quality"`
	DepthLabel      string         `json:"depth_label"`
	ConfidenceScore float64        `json:"confidence_score"`
	Changes         []ReportChange `json:"changes,omitempty"`
}

// Baseline describes conventional manual research, for narrative comparison only.
type Baseline struct {
	Description string `json:"description"`
	DataSources int    `json:"data_sources"`
	Findings    int    `json:"findings"`
	DepthLabel  string `json:"depth_label"`
	Turnaround  string `json:"turnaround"`
}

// ComparisonReport contrasts one run with the fixed baseline.
type ComparisonReport struct {
	Target        string   `json:"target"`
	ReportID      string   `json:"report_id"`
	SourcesUsed   int      `json:"sources_used"`
	DataPoints    int      `json:"data_points"`
	PatternsFound int      `json:"patterns_found"`
	InsightsFound int      `json:"insights_found"`
	ActionsFound  int      `json:"actions_found"`
	DepthLabel    string   `json:"depth_label"`
	Confidence    float64  `json:"confidence"`
	Baseline      Baseline `json:"baseline"`
	Highlights    []string `json:"highlights"`
}
