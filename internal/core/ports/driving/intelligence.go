package driving

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// IntelligenceService runs the four-stage pipeline.
type IntelligenceService interface {
	// RunIntelligence runs one pipeline instance to completion.
	// It returns a complete report or an error, never a partial report.
	RunIntelligence(ctx context.Context, req domain.Request) (*domain.IntelligenceReport, error)

	// CompareBaseline runs one pipeline instance and contrasts it with manual research.
	CompareBaseline(ctx context.Context, target string) (*domain.ComparisonReport, error)

	// History returns prior reports for a target, oldest first.
	History(ctx context.Context, target string) ([]domain.IntelligenceReport, error)
}

// JobService runs pipelines asynchronously.
type JobService interface {
	// Submit starts a pipeline run and returns its job immediately.
	Submit(ctx context.Context, req domain.Request) (*domain.Job, error)

	// Status returns the job's current state.
	Status(ctx context.Context, jobID string) (*domain.Job, error)

	// Wait blocks until the job finishes and returns its report or error.
	Wait(ctx context.Context, jobID string) (*domain.IntelligenceReport, error)

	// List returns all known jobs, most recent first.
	List(ctx context.Context) ([]domain.Job, error)
}
