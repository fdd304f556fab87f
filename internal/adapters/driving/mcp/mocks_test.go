package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// mockIntelligence is a mock implementation of driving.IntelligenceService.
type mockIntelligence struct {
	report     *domain.IntelligenceReport
	comparison *domain.ComparisonReport
	history    []domain.IntelligenceReport
	err        error

	lastRequest domain.Request
	lastTarget  string
}

func (m *mockIntelligence) RunIntelligence(_ context.Context, req domain.Request) (*domain.IntelligenceReport, error) {
	m.lastRequest = req
	return m.report, m.err
}

func (m *mockIntelligence) CompareBaseline(_ context.Context, target string) (*domain.ComparisonReport, error) {
	m.lastTarget = target
	return m.comparison, m.err
}

func (m *mockIntelligence) History(_ context.Context, target string) ([]domain.IntelligenceReport, error) {
	m.lastTarget = target
	return m.history, m.err
}

// mockJobs is a mock implementation of driving.JobService.
type mockJobs struct {
	job    *domain.Job
	jobs   []domain.Job
	err    error
	waited bool
}

func (m *mockJobs) Submit(_ context.Context, req domain.Request) (*domain.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Job{
		ID:        "job-1",
		Request:   req,
		Status:    domain.StatusCreated,
		Message:   "Queued",
		UpdatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockJobs) Status(_ context.Context, _ string) (*domain.Job, error) {
	return m.job, m.err
}

func (m *mockJobs) Wait(_ context.Context, _ string) (*domain.IntelligenceReport, error) {
	m.waited = true
	return nil, m.err
}

func (m *mockJobs) List(_ context.Context) ([]domain.Job, error) {
	return m.jobs, m.err
}

func testReport() *domain.IntelligenceReport {
	insights := make([]domain.Insight, 7)
	for i := range insights {
		insights[i] = domain.Insight{
			Title:           "Insight",
			Category:        domain.CategoryTactical,
			TimeSensitivity: domain.TimeShortTerm,
			PriorityScore:   0.5,
		}
	}
	insights[0].Title = "Customer opportunity: onboarding demand"
	return &domain.IntelligenceReport{
		ID:          "report-1",
		Target:      "acme.com",
		Objective:   domain.ObjectiveCustomerInsights,
		GeneratedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Ingestion: domain.IngestionSummary{
			SourcesUsed:     []string{"behavioral", "internal"},
			TotalDataPoints: 12,
		},
		Patterns:        []domain.Pattern{{ID: "p1"}, {ID: "p2"}},
		MetaPatterns:    []domain.Pattern{{ID: "meta-opportunity"}},
		Insights:        insights,
		Summary:         domain.ExecutiveSummary{Narrative: "Demand for onboarding is rising."},
		Actions:         []domain.Action{{Title: "Reach out", Type: domain.ActionSalesOutreach, Owner: "Sales Director", Timeline: "Week 1", Priority: domain.PriorityHigh}},
		DepthLabel:      domain.DepthModerate,
		ConfidenceScore: 0.64,
		Changes:         []domain.ReportChange{{Kind: domain.ChangeNewTopic, Description: "New cross-source topic: onboarding"}},
	}
}
