package notify

import (
	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Ensure LogNotifier implements the interface.
var _ driven.Notifier = LogNotifier{}

// LogNotifier writes each progress event to the logger.
// Failures go to Warn, everything else to Info.
type LogNotifier struct{}

// Publish logs the event.
func (LogNotifier) Publish(jobID string, event domain.ProgressEvent) {
	if event.Status == domain.StatusFailed {
		logger.Warn("job %s: %s: %s", jobID, event.Status, event.Message)
		return
	}
	logger.Info("job %s: %s: %s", jobID, event.Status, event.Message)
}
