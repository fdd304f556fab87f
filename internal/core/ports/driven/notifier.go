package driven

import "github.com/custodia-labs/foresight/internal/core/domain"

// Notifier receives pipeline progress events.
// Publishing is best-effort: implementations must not block for long
// and have no way to fail the pipeline.
type Notifier interface {
	Publish(jobID string, event domain.ProgressEvent)
}
