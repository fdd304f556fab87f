package domain

import "time"

// ConstraintPolicy decides what the action stage does with request constraints.
type ConstraintPolicy string

const (
	// ConstraintAnnotate records constraints on every action and drops nothing.
	ConstraintAnnotate ConstraintPolicy = "annotate"

	// ConstraintEnforce also honours exclude_types and max_actions.
	ConstraintEnforce ConstraintPolicy = "enforce"
)

// ParseConstraintPolicy returns the policy for s, defaulting to annotate.
func ParseConstraintPolicy(s string) ConstraintPolicy {
	if ConstraintPolicy(s) == ConstraintEnforce {
		return ConstraintEnforce
	}
	return ConstraintAnnotate
}

// PipelineSettings holds tunables for the intelligence pipeline.
type PipelineSettings struct {
	// SourceTimeout bounds each source adapter call.
	SourceTimeout time.Duration

	// HistoryLimit is the number of reports retained per target.
	HistoryLimit int

	// MaxConcurrentJobs caps asynchronously running pipelines.
	MaxConcurrentJobs int

	// ConstraintPolicy governs constraint application.
	ConstraintPolicy ConstraintPolicy

	// ObjectiveSources maps objectives to source names.
	// Objectives missing from the table use every registered source.
	ObjectiveSources map[string][]string
}

// DefaultObjectiveSources returns the built-in objective table.
func DefaultObjectiveSources() map[string][]string {
	return map[string][]string{
		ObjectiveCompetitiveAnalysis: {SourceWeb, SourceMarket, SourceInternal},
		ObjectiveCustomerInsights:    {SourceBehavioral, SourceInternal, SourceDocument},
		ObjectiveMarketExpansion:     {SourceMarket, SourceWeb, SourceDocument},
		ObjectiveProductStrategy:     {SourceInternal, SourceBehavioral, SourceDocument},
	}
}

// DefaultPipelineSettings returns sensible defaults.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		SourceTimeout:     30 * time.Second,
		HistoryLimit:      20,
		MaxConcurrentJobs: 4,
		ConstraintPolicy:  ConstraintAnnotate,
		ObjectiveSources:  DefaultObjectiveSources(),
	}
}

// Plugin config sections.
const (
	PluginsDetectors    = "detectors"
	PluginsSynthesizers = "synthesizers"
	PluginsGenerators   = "generators"
)

// PluginSettings selects and configures the plugins of one section.
type PluginSettings struct {
	// Enabled lists plugin names in run order. Empty means every registered plugin.
	Enabled []string

	// Configs holds per-plugin settings keyed by plugin name.
	Configs map[string]map[string]any
}
