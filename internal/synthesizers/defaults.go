package synthesizers

import (
	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
)

// DefaultMinConfidence drops insights from patterns weaker than this.
const DefaultMinConfidence = 0.3

// RegisterDefaults registers the four built-in synthesizers under their category names.
// Supported config keys:
//   - min_confidence (float): patterns below this confidence are ignored
func RegisterDefaults(r *plugins.Registry[driven.Synthesizer]) {
	r.Register(string(domain.CategoryStrategic), func(cfg map[string]any) (driven.Synthesizer, error) {
		return NewStrategic(minConfidence(cfg)), nil
	})
	r.Register(string(domain.CategoryTactical), func(cfg map[string]any) (driven.Synthesizer, error) {
		return NewTactical(minConfidence(cfg)), nil
	})
	r.Register(string(domain.CategoryOperational), func(cfg map[string]any) (driven.Synthesizer, error) {
		return NewOperational(minConfidence(cfg)), nil
	})
	r.Register(string(domain.CategoryCompetitive), func(cfg map[string]any) (driven.Synthesizer, error) {
		return NewCompetitive(minConfidence(cfg)), nil
	})
}

// NewRegistry returns a registry holding every built-in synthesizer.
func NewRegistry() *plugins.Registry[driven.Synthesizer] {
	r := plugins.NewRegistry[driven.Synthesizer]()
	RegisterDefaults(r)
	return r
}

func minConfidence(cfg map[string]any) float64 {
	return plugins.FloatFromConfig(cfg, "min_confidence", DefaultMinConfidence)
}
