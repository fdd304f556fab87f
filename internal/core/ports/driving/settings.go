package driving

import "github.com/custodia-labs/foresight/internal/core/domain"

// SettingsService exposes typed views of the configuration file.
type SettingsService interface {
	// Pipeline returns pipeline tunables, with defaults for unset keys.
	Pipeline() domain.PipelineSettings

	// Scheduler returns the scheduler configuration.
	Scheduler() domain.SchedulerConfig

	// SourceConfigs returns per-source configuration keyed by source name.
	// Keys inside each map have the "sources.<name>." prefix stripped.
	SourceConfigs() map[string]map[string]any

	// Plugins returns the plugin selection for a section such as "detectors".
	Plugins(section string) domain.PluginSettings

	// SetWatchTargets replaces the scheduler's watched targets.
	SetWatchTargets(targets []domain.WatchTarget) error
}
