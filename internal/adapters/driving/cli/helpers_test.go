package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/foresight/internal/adapters/driven/notify"
	"github.com/custodia-labs/foresight/internal/core/domain"
)

// fakeIntelligence records what it was asked to do.
type fakeIntelligence struct {
	report     *domain.IntelligenceReport
	comparison *domain.ComparisonReport
	history    []domain.IntelligenceReport
	err        error

	lastRequest domain.Request
	lastTarget  string
}

func (f *fakeIntelligence) RunIntelligence(_ context.Context, req domain.Request) (*domain.IntelligenceReport, error) {
	f.lastRequest = req
	return f.report, f.err
}

func (f *fakeIntelligence) CompareBaseline(_ context.Context, target string) (*domain.ComparisonReport, error) {
	f.lastTarget = target
	return f.comparison, f.err
}

func (f *fakeIntelligence) History(_ context.Context, target string) ([]domain.IntelligenceReport, error) {
	f.lastTarget = target
	return f.history, f.err
}

// fakeJobs publishes a scripted sequence of events on Submit.
type fakeJobs struct {
	bus    *notify.Bus
	events []domain.ProgressEvent
	report *domain.IntelligenceReport
	err    error

	submitted domain.Request
}

func (f *fakeJobs) Submit(_ context.Context, req domain.Request) (*domain.Job, error) {
	f.submitted = req
	f.bus.Publish("other-job", domain.ProgressEvent{Status: domain.StatusIngesting, Message: "someone else"})
	for _, e := range f.events {
		f.bus.Publish("job-1", e)
	}
	return &domain.Job{ID: "job-1", Request: req, Status: domain.StatusCreated}, nil
}

func (f *fakeJobs) Status(context.Context, string) (*domain.Job, error) { return nil, nil }

func (f *fakeJobs) Wait(context.Context, string) (*domain.IntelligenceReport, error) {
	return f.report, f.err
}

func (f *fakeJobs) List(context.Context) ([]domain.Job, error) { return nil, nil }

// fakeSettings keeps watch targets in memory.
type fakeSettings struct {
	targets []domain.WatchTarget
	saved   bool
}

func (f *fakeSettings) Pipeline() domain.PipelineSettings { return domain.DefaultPipelineSettings() }

func (f *fakeSettings) Scheduler() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()
	cfg.Targets = f.targets
	return cfg
}

func (f *fakeSettings) SourceConfigs() map[string]map[string]any { return nil }

func (f *fakeSettings) Plugins(string) domain.PluginSettings { return domain.PluginSettings{} }

func (f *fakeSettings) SetWatchTargets(targets []domain.WatchTarget) error {
	f.targets = targets
	f.saved = true
	return nil
}

func sampleReport() *domain.IntelligenceReport {
	return &domain.IntelligenceReport{
		ID:          "report-1",
		JobID:       "job-1",
		Target:      "acme.com",
		Objective:   domain.ObjectiveComprehensive,
		GeneratedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Ingestion: domain.IngestionSummary{
			SourcesUsed:     []string{"web", "social"},
			TotalDataPoints: 42,
		},
		Insights: []domain.Insight{{
			Title:           "Customer opportunity: onboarding demand",
			Category:        domain.CategoryTactical,
			TimeSensitivity: domain.TimeImmediate,
			PriorityScore:   0.9,
		}},
		DepthLabel:      domain.DepthModerate,
		ConfidenceScore: 0.72,
	}
}

// runCLI runs the root command against svc and returns stdout and stderr.
func runCLI(t *testing.T, svc *Services, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	SetServices(svc)
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores flag variables, which cobra keeps between executions.
func resetFlags() {
	outputFormat = formatText
	verbose = false
	runObjective, runFocus, runIndustry, runRequestFile = "", "", "", ""
	runFocusAreas, runConstraints = nil, nil
	runTUI = true
	monitorAdd, monitorRemove, monitorList = nil, nil, false
}
