package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Ensure JobRunner implements the interface.
var _ driving.JobService = (*JobRunner)(nil)

// retainedJobs bounds how many finished handles Wait can still answer for.
const retainedJobs = 64

// jobHandle tracks one in-process run.
type jobHandle struct {
	done   chan struct{}
	report *domain.IntelligenceReport
	err    error
}

// JobRunner runs pipelines in the background, at most maxConcurrent at a time.
// Jobs are independent of the context they were submitted with.
type JobRunner struct {
	orch  *Orchestrator
	store driven.JobStore
	sem   chan struct{}
	now   func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	handles  map[string]*jobHandle
	finished []string
	closed   bool
	wg       sync.WaitGroup
}

// NewJobRunner creates a job runner. maxConcurrent below 1 means 1.
func NewJobRunner(orch *Orchestrator, store driven.JobStore, maxConcurrent int) *JobRunner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &JobRunner{
		orch:    orch,
		store:   store,
		sem:     make(chan struct{}, maxConcurrent),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		handles: make(map[string]*jobHandle),
	}
}

// Submit validates req, records a created job and starts it in the background.
func (r *JobRunner) Submit(ctx context.Context, req domain.Request) (*domain.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.now()
	job := domain.Job{
		ID:        uuid.New().String(),
		Request:   req,
		Status:    domain.StatusCreated,
		Message:   "Queued",
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, fmt.Errorf("job runner is closed")
	}
	if err := r.store.Save(ctx, job); err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("save job: %w", err)
	}
	handle := &jobHandle{done: make(chan struct{})}
	r.handles[job.ID] = handle
	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(job, handle)
	return &job, nil
}

// run waits for a slot, then runs the pipeline and records every transition.
func (r *JobRunner) run(job domain.Job, handle *jobHandle) {
	defer r.wg.Done()
	defer r.retire(job.ID)
	defer close(handle.done)

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-r.ctx.Done():
		handle.err = fmt.Errorf("job %s: %w", job.ID, r.ctx.Err())
		r.update(&job, domain.ProgressEvent{Status: domain.StatusFailed, Message: handle.err.Error()})
		return
	}

	handle.report, handle.err = r.orch.Run(r.ctx, job.ID, job.Request, func(event domain.ProgressEvent) {
		r.update(&job, event)
	})
}

// retire marks a job finished and drops the oldest finished handles past retainedJobs.
// The job record stays in the store.
func (r *JobRunner) retire(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finished = append(r.finished, jobID)
	for len(r.finished) > retainedJobs {
		delete(r.handles, r.finished[0])
		r.finished = r.finished[1:]
	}
}

// update applies a progress event to the stored job.
func (r *JobRunner) update(job *domain.Job, event domain.ProgressEvent) {
	job.Status = event.Status
	job.Message = event.Message
	job.UpdatedAt = r.now()
	switch event.Status {
	case domain.StatusFailed:
		job.Error = event.Message
	case domain.StatusCompleted:
		if report, ok := event.Results.(*domain.IntelligenceReport); ok {
			job.ReportID = report.ID
		}
	}
	// The job's own context may already be cancelled; the store write must still land.
	if err := r.store.Save(context.WithoutCancel(r.ctx), *job); err != nil {
		logger.Warn("job %s: saving status %s: %v", job.ID, job.Status, err)
	}
}

// Status returns the job's latest recorded state.
func (r *JobRunner) Status(ctx context.Context, jobID string) (*domain.Job, error) {
	return r.store.Get(ctx, jobID)
}

// Wait blocks until the job finishes or ctx is done.
// Only the most recent finished jobs can be waited on; older ones report ErrJobNotFound.
func (r *JobRunner) Wait(ctx context.Context, jobID string) (*domain.IntelligenceReport, error) {
	r.mu.Lock()
	handle, ok := r.handles[jobID]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	select {
	case <-handle.done:
		return handle.report, handle.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// List returns all jobs, most recent first.
func (r *JobRunner) List(ctx context.Context) ([]domain.Job, error) {
	return r.store.List(ctx)
}

// Close stops accepting jobs, cancels running ones and waits for them to finish.
func (r *JobRunner) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	return nil
}
