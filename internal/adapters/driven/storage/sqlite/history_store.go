package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
// Reports are stored as JSON; seq preserves append order.
type historyStore struct {
	store *Store
	limit int
}

var _ driven.HistoryStore = (*historyStore)(nil)

func newHistoryStore(store *Store, limit int) *historyStore {
	if limit < 1 {
		limit = domain.DefaultPipelineSettings().HistoryLimit
	}
	return &historyStore{store: store, limit: limit}
}

// Append stores the report and prunes the target's history to the limit
// in the same transaction.
func (s *historyStore) Append(ctx context.Context, target string, report *domain.IntelligenceReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, target, generated_at, body)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body
	`, report.ID, target, report.GeneratedAt.UTC().Format(time.RFC3339Nano), string(body)); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reports
		WHERE target = ? AND seq NOT IN (
			SELECT seq FROM (
				SELECT seq, ROW_NUMBER() OVER (ORDER BY seq DESC) AS rn
				FROM reports WHERE target = ?
			) WHERE rn <= ?
		)
	`, target, target, s.limit); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// History returns the target's reports, oldest first.
func (s *historyStore) History(ctx context.Context, target string) ([]domain.IntelligenceReport, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT body FROM reports WHERE target = ? ORDER BY seq ASC", target)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	reports := []domain.IntelligenceReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return reports, nil
}

// Targets returns every target with history, sorted.
func (s *historyStore) Targets(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT DISTINCT target FROM reports ORDER BY target")
	if err != nil {
		return nil, fmt.Errorf("querying targets: %w", err)
	}
	defer rows.Close()

	var targets []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("scanning target: %w", err)
		}
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating targets: %w", err)
	}
	return targets, nil
}

func scanReport(rows *sql.Rows) (*domain.IntelligenceReport, error) {
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	var report domain.IntelligenceReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &report, nil
}
