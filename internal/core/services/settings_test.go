package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foresight/internal/core/domain"
)

func TestSettingsService_Pipeline_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, domain.DefaultPipelineSettings(), service.Pipeline())
}

func TestSettingsService_Pipeline_StoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("pipeline.source_timeout_seconds", 5)
	_ = store.Set("pipeline.history_limit", int64(50))
	_ = store.Set("pipeline.max_concurrent_jobs", 8)
	_ = store.Set("actions.constraint_policy", "enforce")
	_ = store.Set("objectives.competitive_analysis", []any{"web", "code"})
	_ = store.Set("objectives.hiring", []string{"jobs"})

	settings := NewSettingsService(store).Pipeline()

	assert.Equal(t, 5*time.Second, settings.SourceTimeout)
	assert.Equal(t, 50, settings.HistoryLimit)
	assert.Equal(t, 8, settings.MaxConcurrentJobs)
	assert.Equal(t, domain.ConstraintEnforce, settings.ConstraintPolicy)
	assert.Equal(t, []string{"web", "code"}, settings.ObjectiveSources[domain.ObjectiveCompetitiveAnalysis])
	assert.Equal(t, []string{"jobs"}, settings.ObjectiveSources["hiring"])
	// Untouched defaults survive.
	assert.Equal(t,
		domain.DefaultObjectiveSources()[domain.ObjectiveCustomerInsights],
		settings.ObjectiveSources[domain.ObjectiveCustomerInsights])
}

func TestSettingsService_Pipeline_UnknownPolicyAnnotates(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("actions.constraint_policy", "strict")

	assert.Equal(t, domain.ConstraintAnnotate, NewSettingsService(store).Pipeline().ConstraintPolicy)
}

func TestSettingsService_Scheduler(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("scheduler.enabled", true)
	_ = store.Set("scheduler.interval_minutes", 90)
	_ = store.Set("scheduler.targets", []any{"acme.com:competitive_analysis", "globex.com", "  "})

	config := NewSettingsService(store).Scheduler()

	assert.True(t, config.Enabled)
	assert.Equal(t, 90*time.Minute, config.GetTaskConfig(domain.TaskIDTargetMonitor).Interval)
	assert.Equal(t, []domain.WatchTarget{
		{Target: "acme.com", Objective: domain.ObjectiveCompetitiveAnalysis},
		{Target: "globex.com", Objective: domain.ObjectiveComprehensive},
	}, config.Targets)
}

func TestSettingsService_Scheduler_Defaults(t *testing.T) {
	config := NewSettingsService(memory.NewConfigStore()).Scheduler()

	assert.False(t, config.Enabled)
	assert.Equal(t, 6*time.Hour, config.GetTaskConfig(domain.TaskIDTargetMonitor).Interval)
	assert.Empty(t, config.Targets)
}

func TestSettingsService_SourceConfigs(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("sources.web.kind", "websearch")
	_ = store.Set("sources.web.api_key", "k")
	_ = store.Set("sources.code.kind", "github")
	_ = store.Set("sources.code.rps", 2.5)
	_ = store.Set("sources.broken", "no field")

	configs := NewSettingsService(store).SourceConfigs()

	assert.Equal(t, map[string]map[string]any{
		"web":  {"kind": "websearch", "api_key": "k"},
		"code": {"kind": "github", "rps": 2.5},
	}, configs)
}

func TestSettingsService_SetWatchTargets(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.SetWatchTargets([]domain.WatchTarget{{Target: "acme.com", Objective: "market_expansion"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"acme.com:market_expansion"}, store.GetStringSlice("scheduler.targets"))
	assert.Len(t, service.Scheduler().Targets, 1)
}

func TestSettingsService_Plugins(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("detectors.enabled", []any{"correlation", "anomaly"})
	_ = store.Set("detectors.correlation.min_confidence", 0.4)
	_ = store.Set("synthesizers.tactical.min_confidence", 0.5)

	detectors := NewSettingsService(store).Plugins(domain.PluginsDetectors)

	assert.Equal(t, []string{"correlation", "anomaly"}, detectors.Enabled)
	assert.Equal(t, map[string]map[string]any{
		"correlation": {"min_confidence": 0.4},
	}, detectors.Configs)

	generators := NewSettingsService(store).Plugins(domain.PluginsGenerators)
	assert.Empty(t, generators.Enabled)
	assert.Empty(t, generators.Configs)
}
