package generators

import (
	"strings"

	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
)

// RegisterDefaults registers the four built-in generators under their domain names.
// The generators take no config.
func RegisterDefaults(r *plugins.Registry[driven.ActionGenerator]) {
	r.Register(driven.GeneratorSales, func(map[string]any) (driven.ActionGenerator, error) {
		return NewSales(), nil
	})
	r.Register(driven.GeneratorMarketing, func(map[string]any) (driven.ActionGenerator, error) {
		return NewMarketing(), nil
	})
	r.Register(driven.GeneratorStrategic, func(map[string]any) (driven.ActionGenerator, error) {
		return NewStrategic(), nil
	})
	r.Register(driven.GeneratorOperations, func(map[string]any) (driven.ActionGenerator, error) {
		return NewOperations(), nil
	})
}

// NewRegistry returns a registry holding every built-in generator.
func NewRegistry() *plugins.Registry[driven.ActionGenerator] {
	r := plugins.NewRegistry[driven.ActionGenerator]()
	RegisterDefaults(r)
	return r
}

func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
