package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foresight/internal/core/domain"
)

func TestJobRunner_SubmitAndWait(t *testing.T) {
	f := newOrchestratorFixture()
	store := memory.NewJobStore()
	runner := NewJobRunner(f.orch, store, 2)
	defer runner.Close() //nolint:errcheck

	job, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com", Objective: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCreated, job.Status)
	assert.NotEmpty(t, job.ID)

	report, err := runner.Wait(context.Background(), job.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, job.ID, report.JobID)

	status, err := runner.Status(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.Status)
	assert.Equal(t, report.ID, status.ReportID)
	assert.Empty(t, status.Error)
}

func TestJobRunner_FailedJobRecordsError(t *testing.T) {
	f := newOrchestratorFixture(&stubDetector{kind: "broken", panics: true})
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)
	defer runner.Close() //nolint:errcheck

	job, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com", Objective: "x"})
	require.NoError(t, err)

	_, err = runner.Wait(context.Background(), job.ID)
	assert.ErrorIs(t, err, domain.ErrStageFailed)

	status, err := runner.Status(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, status.Status)
	assert.Contains(t, status.Error, "panic")
}

func TestJobRunner_SubmitValidates(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)
	defer runner.Close() //nolint:errcheck

	_, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	jobs, err := runner.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobRunner_SurvivesSubmitterCancel(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)
	defer runner.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	job, err := runner.Submit(ctx, domain.Request{Target: "acme.com", Objective: "x"})
	require.NoError(t, err)
	cancel()

	report, err := runner.Wait(context.Background(), job.ID)
	require.NoError(t, err)
	assert.NotNil(t, report)
}

func TestJobRunner_WaitUnknownJob(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)
	defer runner.Close() //nolint:errcheck

	_, err := runner.Wait(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = runner.Status(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobRunner_WaitHonoursContext(t *testing.T) {
	f := newOrchestratorFixture()
	for _, s := range f.sources {
		s.block = true
	}
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)

	job, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com", Objective: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = runner.Wait(ctx, job.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, runner.Close())
	_, err = runner.Wait(context.Background(), job.ID)
	assert.Error(t, err)
}

func TestJobRunner_ClosedRejectsSubmit(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 1)
	require.NoError(t, runner.Close())
	require.NoError(t, runner.Close())

	_, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com", Objective: "x"})
	assert.Error(t, err)
}

func TestJobRunner_ListMostRecentFirst(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 2)
	defer runner.Close() //nolint:errcheck

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	runner.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := runner.Submit(context.Background(), domain.Request{Target: "a.com", Objective: "x"})
	require.NoError(t, err)
	_, err = runner.Wait(context.Background(), first.ID)
	require.NoError(t, err)
	second, err := runner.Submit(context.Background(), domain.Request{Target: "b.com", Objective: "x"})
	require.NoError(t, err)
	_, err = runner.Wait(context.Background(), second.ID)
	require.NoError(t, err)

	jobs, err := runner.List(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
}

func TestJobRunner_FinishedHandlesAreBounded(t *testing.T) {
	f := newOrchestratorFixture()
	runner := NewJobRunner(f.orch, memory.NewJobStore(), 4)
	defer runner.Close() //nolint:errcheck

	var firstID string
	for i := 0; i <= retainedJobs; i++ {
		job, err := runner.Submit(context.Background(), domain.Request{Target: "acme.com", Objective: "x"})
		require.NoError(t, err)
		if i == 0 {
			firstID = job.ID
		}
		_, err = runner.Wait(context.Background(), job.ID)
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		runner.mu.Lock()
		defer runner.mu.Unlock()
		_, kept := runner.handles[firstID]
		return !kept && len(runner.handles) == retainedJobs
	}, time.Second, 5*time.Millisecond)

	_, err := runner.Wait(context.Background(), firstID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	status, err := runner.Status(context.Background(), firstID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, status.Status)
}
