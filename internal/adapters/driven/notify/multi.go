package notify

import (
	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Ensure Multi implements the interface.
var _ driven.Notifier = Multi(nil)

// Multi publishes to each notifier in order. One notifier panicking
// does not stop delivery to the rest.
type Multi []driven.Notifier

// Publish forwards the event to every non-nil notifier.
func (m Multi) Publish(jobID string, event domain.ProgressEvent) {
	for _, n := range m {
		if n == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("notify: dropped %s event for job %s: %v", event.Status, jobID, r)
				}
			}()
			n.Publish(jobID, event)
		}()
	}
}
