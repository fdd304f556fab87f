package detectors

import (
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
)

// Built-in detector types.
const (
	TypeTemporal    = "temporal"
	TypeBehavioral  = "behavioral"
	TypeCorrelation = "correlation"
	TypeAnomaly     = "anomaly"
	TypePredictive  = "predictive"
)

// DefaultMinConfidence drops patterns weaker than this unless configured otherwise.
const DefaultMinConfidence = 0.2

// RegisterDefaults registers all built-in detectors with the registry.
// Supported config keys:
//   - min_confidence (float): patterns below this confidence are dropped
func RegisterDefaults(r *plugins.Registry[driven.Detector]) {
	r.Register(TypeTemporal, func(cfg map[string]any) (driven.Detector, error) {
		return NewTemporal(minConfidence(cfg)), nil
	})
	r.Register(TypeBehavioral, func(cfg map[string]any) (driven.Detector, error) {
		return NewBehavioral(minConfidence(cfg)), nil
	})
	r.Register(TypeCorrelation, func(cfg map[string]any) (driven.Detector, error) {
		return NewCorrelation(minConfidence(cfg)), nil
	})
	r.Register(TypeAnomaly, func(cfg map[string]any) (driven.Detector, error) {
		return NewAnomaly(minConfidence(cfg)), nil
	})
	r.Register(TypePredictive, func(cfg map[string]any) (driven.Detector, error) {
		return NewPredictive(minConfidence(cfg)), nil
	})
}

// NewRegistry returns a registry holding every built-in detector.
func NewRegistry() *plugins.Registry[driven.Detector] {
	r := plugins.NewRegistry[driven.Detector]()
	RegisterDefaults(r)
	return r
}

func minConfidence(cfg map[string]any) float64 {
	return plugins.FloatFromConfig(cfg, "min_confidence", DefaultMinConfidence)
}
