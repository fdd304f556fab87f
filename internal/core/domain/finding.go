package domain

// Well-known source names used by the default objective table.
const (
	SourceWeb        = "web"
	SourceDocument   = "document"
	SourceBehavioral = "behavioral"
	SourceMarket     = "market"
	SourceInternal   = "internal"
)

// Finding is a single atomic observation from one data source about one topic.
type Finding struct {
	// Topic groups findings across sources.
	Topic string `json:"topic" yaml:"topic"`

	// Description is the human-readable observation.
	Description string `json:"description" yaml:"description"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// SourceName is the adapter that produced the finding.
	SourceName string `json:"source_name" yaml:"source_name"`

	// Implications is optional free text about what the finding means.
	Implications string `json:"implications,omitempty" yaml:"implications,omitempty"`
}

// SourceResult is what one source adapter returns for one request.
type SourceResult struct {
	SourceName string    `json:"source_name"`
	Findings   []Finding `json:"findings"`

	// RawCount is the number of raw records the adapter looked at.
	RawCount int `json:"raw_count"`
}

// Significance of a cross-source stub pattern.
const (
	SignificanceHigh   = "high"
	SignificanceMedium = "medium"
)

// PatternStub is a topic mentioned by two or more distinct sources.
// Stubs are raw material for the pattern stage.
type PatternStub struct {
	Topic        string   `json:"topic"`
	SourceCount  int      `json:"source_count"`
	Sources      []string `json:"sources"`
	Significance string   `json:"significance"`
}

// Anomaly keys and kinds.
const (
	AnomalyKeyType       = "type"
	AnomalyKeySource     = "source"
	AnomalyKeyTopic      = "topic"
	AnomalyKeyError      = "error"
	AnomalyKeyConfidence = "confidence"

	AnomalySourceFailure = "source_failure"
	AnomalyLowConfidence = "low_confidence"
)

// IngestionBundle is the normalised output of the ingestion stage.
// It is created once per request and read-only thereafter.
type IngestionBundle struct {
	SourcesUsed         []string         `json:"sources_used"`
	TotalDataPoints     int              `json:"total_data_points"`
	KeyFindings         []Finding        `json:"key_findings"`
	CrossSourcePatterns []PatternStub    `json:"cross_source_patterns"`
	Anomalies           []map[string]any `json:"anomalies"`
	QualityScore        float64          `json:"quality_score"`
}

// FindingsByTopic groups key findings by topic.
func (b *IngestionBundle) FindingsByTopic() map[string][]Finding {
	out := make(map[string][]Finding)
	for _, f := range b.KeyFindings {
		out[f.Topic] = append(out[f.Topic], f)
	}
	return out
}

// Topics returns the cross-source stub topics in bundle order.
func (b *IngestionBundle) Topics() []string {
	topics := make([]string, 0, len(b.CrossSourcePatterns))
	for _, stub := range b.CrossSourcePatterns {
		topics = append(topics, stub.Topic)
	}
	return topics
}
