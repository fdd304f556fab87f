package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySourceTimeout    = "pipeline.source_timeout_seconds"
	keyHistoryLimit     = "pipeline.history_limit"
	keyMaxJobs          = "pipeline.max_concurrent_jobs"
	keyConstraintPolicy = "actions.constraint_policy"
	keySchedulerEnabled = "scheduler.enabled"
	keySchedulerMinutes = "scheduler.interval_minutes"
	keySchedulerTargets = "scheduler.targets"

	prefixObjectives = "objectives."
	prefixSources    = "sources."
)

// SettingsService reads typed settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Pipeline returns pipeline settings. Objective tables from config
// override the built-in entry for the same objective.
func (s *SettingsService) Pipeline() domain.PipelineSettings {
	settings := domain.DefaultPipelineSettings()

	if secs := s.getInt(keySourceTimeout, 0); secs > 0 {
		settings.SourceTimeout = time.Duration(secs) * time.Second
	}
	settings.HistoryLimit = s.getInt(keyHistoryLimit, settings.HistoryLimit)
	settings.MaxConcurrentJobs = s.getInt(keyMaxJobs, settings.MaxConcurrentJobs)
	settings.ConstraintPolicy = domain.ParseConstraintPolicy(s.configStore.GetString(keyConstraintPolicy))

	for _, key := range s.configStore.Keys(prefixObjectives) {
		objective := strings.TrimPrefix(key, prefixObjectives)
		if names := s.configStore.GetStringSlice(key); len(names) > 0 {
			settings.ObjectiveSources[objective] = names
		}
	}

	return settings
}

// Scheduler returns the scheduler configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) Scheduler() domain.SchedulerConfig {
	config := domain.DefaultSchedulerConfig()

	// Master switch
	if _, exists := s.configStore.Get(keySchedulerEnabled); exists {
		config.Enabled = s.configStore.GetBool(keySchedulerEnabled)
	}

	taskCfg := config.TaskConfigs[domain.TaskIDTargetMonitor]
	if minutes := s.getInt(keySchedulerMinutes, 0); minutes > 0 {
		taskCfg.Interval = time.Duration(minutes) * time.Minute
	}
	config.TaskConfigs[domain.TaskIDTargetMonitor] = taskCfg

	for _, raw := range s.configStore.GetStringSlice(keySchedulerTargets) {
		if target, ok := domain.ParseWatchTarget(raw); ok {
			config.Targets = append(config.Targets, target)
		}
	}

	return config
}

// SourceConfigs groups "sources.<name>.<key>" entries by source name.
func (s *SettingsService) SourceConfigs() map[string]map[string]any {
	return s.sectionConfigs(prefixSources)
}

// Plugins reads "<section>.enabled" and "<section>.<name>.<key>" entries.
func (s *SettingsService) Plugins(section string) domain.PluginSettings {
	return domain.PluginSettings{
		Enabled: s.configStore.GetStringSlice(section + ".enabled"),
		Configs: s.sectionConfigs(section + "."),
	}
}

// sectionConfigs groups "<prefix><name>.<key>" entries by name.
// Keys directly under the prefix are not plugin configs and are skipped.
func (s *SettingsService) sectionConfigs(prefix string) map[string]map[string]any {
	configs := make(map[string]map[string]any)
	for _, key := range s.configStore.Keys(prefix) {
		name, field, ok := strings.Cut(strings.TrimPrefix(key, prefix), ".")
		if !ok || name == "" || field == "" {
			continue
		}
		val, exists := s.configStore.Get(key)
		if !exists {
			continue
		}
		if configs[name] == nil {
			configs[name] = make(map[string]any)
		}
		configs[name][field] = val
	}
	return configs
}

// SetWatchTargets persists the monitored targets as "target:objective" strings.
func (s *SettingsService) SetWatchTargets(targets []domain.WatchTarget) error {
	values := make([]string, 0, len(targets))
	for _, t := range targets {
		values = append(values, t.Target+":"+t.Objective)
	}
	return s.configStore.Set(keySchedulerTargets, values)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}
