package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure Anomaly implements the interface.
var _ driven.Detector = (*Anomaly)(nil)

// conflictSpread is the confidence spread at which sources are said to disagree.
const conflictSpread = 0.4

// Anomaly reports coverage gaps and sources that disagree.
type Anomaly struct {
	minConfidence float64
}

// NewAnomaly creates an anomaly detector.
func NewAnomaly(minConfidence float64) *Anomaly {
	return &Anomaly{minConfidence: minConfidence}
}

// Type returns the detector type.
func (d *Anomaly) Type() string { return TypeAnomaly }

// Detect reports failed sources as a coverage risk and topics whose
// finding confidences spread by at least conflictSpread.
func (d *Anomaly) Detect(
	_ context.Context,
	bundle *domain.IngestionBundle,
	_ []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	var patterns []domain.Pattern

	var failed []string
	for _, a := range bundle.Anomalies {
		if a[domain.AnomalyKeyType] == domain.AnomalySourceFailure {
			if name, ok := a[domain.AnomalyKeySource].(string); ok {
				failed = append(failed, name)
			}
		}
	}
	if len(failed) > 0 {
		total := len(bundle.SourcesUsed) + len(failed)
		p := domain.Pattern{
			Description: fmt.Sprintf("Coverage risk: %d of %d sources unavailable (%s)",
				len(failed), total, strings.Join(failed, ", ")),
			Confidence:     float64(len(failed)) / float64(total),
			BusinessImpact: "medium - blind spots in coverage",
		}
		if len(failed)*2 >= total {
			p.BusinessImpact = "high - most coverage missing"
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}

	spread := make(map[string][2]float64)
	var order []string
	for _, f := range bundle.KeyFindings {
		r, ok := spread[f.Topic]
		if !ok {
			order = append(order, f.Topic)
			r = [2]float64{f.Confidence, f.Confidence}
		}
		r[0] = min(r[0], f.Confidence)
		r[1] = max(r[1], f.Confidence)
		spread[f.Topic] = r
	}
	for _, topic := range order {
		r := spread[topic]
		if r[1]-r[0] < conflictSpread {
			continue
		}
		p := domain.Pattern{
			Description: fmt.Sprintf("Conflicting signals on %s: confidence ranges %.2f to %.2f, a risk to decisions",
				topic, r[0], r[1]),
			Confidence:     domain.Clamp01(0.5 + (r[1]-r[0])/2),
			BusinessImpact: "medium",
		}
		if p.Confidence >= d.minConfidence {
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}
