package sources

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.Source = (*RateLimited)(nil)

// RateLimited throttles calls to a source with a token bucket.
type RateLimited struct {
	source  driven.Source
	limiter *rate.Limiter
}

// NewRateLimited wraps src. burst below 1 means 1.
func NewRateLimited(src driven.Source, requestsPerSecond float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		source:  src,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped source's name.
func (r *RateLimited) Name() string { return r.source.Name() }

// Ingest waits for a token, then delegates.
// A wait cut short by ctx reports ErrRateLimited alongside the context error.
// A token that cannot arrive before the deadline counts as a deadline miss.
func (r *RateLimited) Ingest(ctx context.Context, target, objective string, focusAreas []string) (*domain.SourceResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrRateLimited, r.source.Name(), ctxErr)
		}
		if _, ok := ctx.Deadline(); ok {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrRateLimited, r.source.Name(), context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrRateLimited, r.source.Name(), err)
	}
	return r.source.Ingest(ctx, target, objective, focusAreas)
}
