package driven

import (
	"context"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// HistoryStore is an append-only, bounded history of reports per target.
// Retention is a property of the implementation; the oldest reports are dropped first.
type HistoryStore interface {
	// Append adds a report to the target's history.
	Append(ctx context.Context, target string, report *domain.IntelligenceReport) error

	// History returns the target's reports, oldest first.
	// The returned slice is a snapshot and safe to read while appends happen.
	History(ctx context.Context, target string) ([]domain.IntelligenceReport, error)

	// Targets returns every target with at least one report.
	Targets(ctx context.Context) ([]string, error)
}
