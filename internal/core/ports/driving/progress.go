package driving

import "github.com/custodia-labs/foresight/internal/core/domain"

// ProgressFeed lets surfaces follow jobs while they run.
type ProgressFeed interface {
	// SubscribeAll registers handler for every job's events and returns a subscription ID.
	SubscribeAll(handler func(jobID string, event domain.ProgressEvent)) string

	// Unsubscribe removes a subscription.
	Unsubscribe(id string) bool
}
