package domain

import (
	"strings"
	"time"
)

// Impact levels derived from a pattern's free-text business impact.
const (
	ImpactCritical = "critical"
	ImpactHigh     = "high"
	ImpactMedium   = "medium"
	ImpactLow      = "low"
)

// Pattern is a structural regularity detected across one or more findings.
type Pattern struct {
	ID                 string           `json:"id"`
	PatternType        string           `json:"pattern_type"`
	Description        string           `json:"description"`
	Confidence         float64          `json:"confidence"`
	SupportingEvidence []map[string]any `json:"supporting_evidence,omitempty"`

	// BusinessImpact is free text; ImpactLevel classifies it by substring.
	BusinessImpact string    `json:"business_impact"`
	DiscoveredAt   time.Time `json:"discovered_at"`

	// Score is set by ranking, after every detector has run.
	Score float64 `json:"score"`
}

// ImpactLevel classifies BusinessImpact as critical, high, medium or low.
func (p Pattern) ImpactLevel() string {
	return ClassifyImpact(p.BusinessImpact)
}

// ClassifyImpact maps free text to an impact level by substring.
func ClassifyImpact(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, ImpactCritical):
		return ImpactCritical
	case strings.Contains(lower, ImpactHigh):
		return ImpactHigh
	case strings.Contains(lower, ImpactMedium):
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// PatternResult is the output of the pattern stage.
type PatternResult struct {
	Patterns     []Pattern      `json:"patterns"`
	MetaPatterns []Pattern      `json:"meta_patterns"`
	Categories   map[string]int `json:"categories"`
	QualityScore float64        `json:"quality_score"`
}

// All returns ranked detector patterns followed by ranked meta-patterns.
func (r *PatternResult) All() []Pattern {
	all := make([]Pattern, 0, len(r.Patterns)+len(r.MetaPatterns))
	all = append(all, r.Patterns...)
	return append(all, r.MetaPatterns...)
}
