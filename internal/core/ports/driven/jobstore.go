package driven

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// JobStore persists asynchronous job state.
type JobStore interface {
	// Save creates or updates a job.
	Save(ctx context.Context, job domain.Job) error

	// Get retrieves a job by ID. Returns domain.ErrJobNotFound if unknown.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// List returns all jobs, most recently created first.
	List(ctx context.Context) ([]domain.Job, error)
}
