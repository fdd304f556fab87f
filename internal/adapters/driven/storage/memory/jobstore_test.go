package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

func TestJobStore_SaveAndGet(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()

	job := domain.Job{ID: "job-1", Status: domain.StatusCreated, CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, job))

	job.Status = domain.StatusIngesting
	require.NoError(t, store.Save(ctx, job))

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIngesting, got.Status)
}

func TestJobStore_GetUnknown(t *testing.T) {
	store := NewJobStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStore_SaveRequiresID(t *testing.T) {
	store := NewJobStore()
	err := store.Save(context.Background(), domain.Job{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobStore_ListMostRecentFirst(t *testing.T) {
	store := NewJobStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, domain.Job{ID: "old", CreatedAt: base}))
	require.NoError(t, store.Save(ctx, domain.Job{ID: "new", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domain.Job{ID: "mid", CreatedAt: base.Add(time.Minute)}))

	jobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "new", jobs[0].ID)
	assert.Equal(t, "mid", jobs[1].ID)
	assert.Equal(t, "old", jobs[2].ID)
}
