package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Pattern themes used for meta-pattern discovery.
const (
	ThemeOpportunity = "opportunity"
	ThemeRisk        = "risk"
	ThemeCompetitive = "competitive"
	ThemeGeneral     = "general"
)

// PatternTypeMeta is the type of every meta-pattern.
const PatternTypeMeta = "meta"

// minMetaMembers is how many same-theme patterns make a meta-pattern.
const minMetaMembers = 3

// recencyWindow is the age at which the ranking recency bonus reaches zero.
const recencyWindow = 7 * 24 * time.Hour

var patternThemes = []string{ThemeOpportunity, ThemeRisk, ThemeCompetitive, ThemeGeneral}

// PatternService runs detectors over an ingestion bundle and ranks what they find.
type PatternService struct {
	detectors []driven.Detector
	now       func() time.Time
}

// NewPatternService creates a pattern service with the given detectors.
func NewPatternService(detectors ...driven.Detector) *PatternService {
	return &PatternService{
		detectors: detectors,
		now:       time.Now,
	}
}

// DetectorTypes returns the registered detector types in run order.
func (s *PatternService) DetectorTypes() []string {
	types := make([]string, 0, len(s.detectors))
	for _, d := range s.detectors {
		types = append(types, d.Type())
	}
	return types
}

// DiscoverPatterns runs every detector, derives meta-patterns, then ranks both lists.
// Scores are assigned only after every detector has run.
func (s *PatternService) DiscoverPatterns(
	ctx context.Context,
	bundle *domain.IngestionBundle,
	history []domain.IntelligenceReport,
) (*domain.PatternResult, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: bundle is nil", domain.ErrInvalidInput)
	}
	now := s.now()

	patterns := []domain.Pattern{}
	for _, d := range s.detectors {
		found, err := d.Detect(ctx, bundle, history)
		if err != nil {
			return nil, fmt.Errorf("detector %s: %w", d.Type(), err)
		}
		for _, p := range found {
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if p.PatternType == "" {
				p.PatternType = d.Type()
			}
			if p.DiscoveredAt.IsZero() {
				p.DiscoveredAt = now
			}
			p.Confidence = domain.Clamp01(p.Confidence)
			p.Score = 0
			patterns = append(patterns, p)
		}
	}

	meta := DiscoverMetaPatterns(patterns)
	RankPatterns(patterns, now)
	RankPatterns(meta, now)

	result := &domain.PatternResult{
		Patterns:     patterns,
		MetaPatterns: meta,
		Categories:   make(map[string]int),
	}
	for _, p := range result.All() {
		result.Categories[p.PatternType]++
	}
	result.QualityScore = s.quality(patterns, meta)

	logger.Debug("patterns: %d detected, %d meta", len(patterns), len(meta))
	return result, nil
}

// quality is the mean of average confidence, detector diversity and the
// share of patterns with at least high impact.
func (s *PatternService) quality(patterns, meta []domain.Pattern) float64 {
	all := append(append([]domain.Pattern{}, patterns...), meta...)
	if len(all) == 0 {
		return 0
	}

	confidences := make([]float64, 0, len(all))
	high := 0
	for _, p := range all {
		confidences = append(confidences, p.Confidence)
		if strings.Contains(strings.ToLower(p.BusinessImpact), domain.ImpactHigh) {
			high++
		}
	}

	var diversity float64
	if len(s.detectors) > 0 {
		types := make(map[string]struct{})
		for _, p := range patterns {
			types[p.PatternType] = struct{}{}
		}
		diversity = domain.Clamp01(float64(len(types)) / float64(len(s.detectors)))
	}

	return domain.Clamp01(domain.Mean(
		domain.Mean(confidences...),
		diversity,
		float64(high)/float64(len(all)),
	))
}

// PatternTheme classifies a pattern description by keyword.
func PatternTheme(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "opportunity"):
		return ThemeOpportunity
	case strings.Contains(lower, "risk"):
		return ThemeRisk
	case strings.Contains(lower, "competitor"):
		return ThemeCompetitive
	default:
		return ThemeGeneral
	}
}

// DiscoverMetaPatterns groups patterns by theme and emits one critical
// meta-pattern per theme with at least three members. The result depends
// only on the input, so repeated calls agree.
func DiscoverMetaPatterns(patterns []domain.Pattern) []domain.Pattern {
	groups := make(map[string][]domain.Pattern)
	for _, p := range patterns {
		theme := PatternTheme(p.Description)
		groups[theme] = append(groups[theme], p)
	}

	meta := []domain.Pattern{}
	for _, theme := range patternThemes {
		members := groups[theme]
		if len(members) < minMetaMembers {
			continue
		}
		confidence := 1.0
		var latest time.Time
		evidence := make([]map[string]any, 0, len(members))
		for _, m := range members {
			confidence = math.Min(confidence, m.Confidence)
			if m.DiscoveredAt.After(latest) {
				latest = m.DiscoveredAt
			}
			evidence = append(evidence, map[string]any{
				"pattern_id":   m.ID,
				"pattern_type": m.PatternType,
				"confidence":   m.Confidence,
			})
		}
		meta = append(meta, domain.Pattern{
			ID:          "meta-" + theme,
			PatternType: PatternTypeMeta,
			Description: fmt.Sprintf("Meta-pattern: %d independent signals share the %s theme",
				len(members), theme),
			Confidence:         domain.Clamp01(confidence),
			SupportingEvidence: evidence,
			BusinessImpact:     domain.ImpactCritical,
			DiscoveredAt:       latest,
		})
	}
	return meta
}

// PatternScore is confidence times impact and recency multipliers.
func PatternScore(p domain.Pattern, now time.Time) float64 {
	impact := 1.0
	lower := strings.ToLower(p.BusinessImpact)
	switch {
	case strings.Contains(lower, domain.ImpactCritical):
		impact = 1.5
	case strings.Contains(lower, domain.ImpactHigh):
		impact = 1.3
	}
	age := now.Sub(p.DiscoveredAt)
	if age < 0 {
		age = 0
	}
	recency := 1 + 0.2*math.Max(0, 1-float64(age)/float64(recencyWindow))
	return p.Confidence * impact * recency
}

// RankPatterns scores patterns in place and sorts them by descending score,
// earlier discovery first on ties.
func RankPatterns(patterns []domain.Pattern, now time.Time) {
	for i := range patterns {
		patterns[i].Score = PatternScore(patterns[i], now)
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Score != patterns[j].Score {
			return patterns[i].Score > patterns[j].Score
		}
		return patterns[i].DiscoveredAt.Before(patterns[j].DiscoveredAt)
	})
}
