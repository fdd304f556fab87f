package domain

import (
	"strings"
	"time"
)

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// Due reports whether the task should run at now.
func (t *ScheduledTask) Due(now time.Time) bool {
	return t.Enabled && !t.NextRun.After(now)
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is the number of targets re-analysed.
	ItemsProcessed int
}

// WatchTarget is a target the monitor re-analyses on every tick.
type WatchTarget struct {
	Target    string
	Objective string
}

// ParseWatchTarget parses "target" or "target:objective".
// A missing objective means comprehensive.
func ParseWatchTarget(s string) (WatchTarget, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WatchTarget{}, false
	}
	target, objective, found := strings.Cut(s, ":")
	if !found || strings.TrimSpace(objective) == "" {
		objective = ObjectiveComprehensive
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return WatchTarget{}, false
	}
	return WatchTarget{Target: target, Objective: strings.TrimSpace(objective)}, true
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// TaskConfigs holds per-task configuration.
	TaskConfigs map[string]TaskConfig

	// Targets are re-analysed by the target monitor task.
	Targets []WatchTarget
}

// TaskConfig holds configuration for a single task.
type TaskConfig struct {
	// Enabled indicates whether this task should run.
	Enabled bool

	// Interval defines how often the task should run.
	Interval time.Duration
}

// GetTaskConfig returns the configuration for a specific task.
// Returns a zero TaskConfig if the task is not configured.
func (c *SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	if c.TaskConfigs == nil {
		return TaskConfig{}
	}
	return c.TaskConfigs[taskID]
}

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
// Monitoring is off until targets are configured.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: false,
		TaskConfigs: map[string]TaskConfig{
			TaskIDTargetMonitor: {
				Enabled:  true,
				Interval: 6 * time.Hour,
			},
		},
	}
}

// TaskIDTargetMonitor re-runs the pipeline for watched targets.
const TaskIDTargetMonitor = "target-monitor"

// TaskHistoryRetention is the number of results kept per task.
const TaskHistoryRetention = 100
