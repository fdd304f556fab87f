package detectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Predictive implements the interface.
var _ driven.Detector = (*Predictive)(nil)

// forecastDiscount lowers confidence for projections.
const forecastDiscount = 0.85

// Predictive projects strong topics forward and reads the volume trend in history.
type Predictive struct {
	minConfidence float64
}

// NewPredictive creates a predictive detector.
func NewPredictive(minConfidence float64) *Predictive {
	return &Predictive{minConfidence: minConfidence}
}

// Type returns the detector type.
func (d *Predictive) Type() string { return TypePredictive }

// Detect forecasts high-significance topics and, given two prior runs,
// a rising or falling data-point trend.
func (d *Predictive) Detect(
	_ context.Context,
	bundle *domain.IngestionBundle,
	history []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	idx := topicIndex(bundle.KeyFindings)

	var patterns []domain.Pattern
	for _, stub := range bundle.CrossSourcePatterns {
		if stub.Significance != domain.SignificanceHigh {
			continue
		}
		p := domain.Pattern{
			Description:    fmt.Sprintf("Forecast: %s demand likely to keep growing, an opportunity to move early", stub.Topic),
			Confidence:     idx[stub.Topic].confidence * forecastDiscount,
			BusinessImpact: "high - projected",
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}

	if n := len(history); n >= 2 {
		older := history[n-2].Ingestion.TotalDataPoints
		newer := history[n-1].Ingestion.TotalDataPoints
		current := bundle.TotalDataPoints
		var p domain.Pattern
		switch {
		case older < newer && newer < current:
			p = domain.Pattern{
				Description:    fmt.Sprintf("Forecast: signal volume rising over 3 runs (%d, %d, %d), an opportunity window", older, newer, current),
				Confidence:     0.6,
				BusinessImpact: "medium",
			}
		case older > newer && newer > current:
			p = domain.Pattern{
				Description:    fmt.Sprintf("Forecast: signal volume falling over 3 runs (%d, %d, %d), a risk of losing visibility", older, newer, current),
				Confidence:     0.6,
				BusinessImpact: "medium",
			}
		}
		if p.Description != "" && p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}
