package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps the most recent reports per target in memory.
// Once a target holds limit reports the oldest is dropped on append.
type HistoryStore struct {
	mu      sync.RWMutex
	limit   int
	reports map[string][]domain.IntelligenceReport
}

// NewHistoryStore creates a history store retaining limit reports per target.
// A limit below 1 uses the pipeline default.
func NewHistoryStore(limit int) *HistoryStore {
	if limit < 1 {
		limit = domain.DefaultPipelineSettings().HistoryLimit
	}
	return &HistoryStore{
		limit:   limit,
		reports: make(map[string][]domain.IntelligenceReport),
	}
}

// Append adds a report to the target's history.
func (s *HistoryStore) Append(_ context.Context, target string, report *domain.IntelligenceReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.reports[target], *report)
	if over := len(list) - s.limit; over > 0 {
		// Copy so the dropped prefix is released.
		list = append([]domain.IntelligenceReport(nil), list[over:]...)
	}
	s.reports[target] = list
	return nil
}

// History returns a snapshot of the target's reports, oldest first.
func (s *HistoryStore) History(_ context.Context, target string) ([]domain.IntelligenceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.reports[target]
	out := make([]domain.IntelligenceReport, len(list))
	copy(out, list)
	return out, nil
}

// Targets returns every target with history, sorted.
func (s *HistoryStore) Targets(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	targets := make([]string, 0, len(s.reports))
	for target := range s.reports {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets, nil
}
