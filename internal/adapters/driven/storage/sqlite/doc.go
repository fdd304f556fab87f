// Package sqlite persists report history and scheduler state in a single
// SQLite database (modernc.org/sqlite, no CGO).
//
// Reports are stored as JSON bodies keyed by target and pruned to the
// configured per-target limit on every append. Scheduled tasks and their
// results back the target monitor.
//
// Migrations live in migrations/ as NNN_name.up.sql and are applied in
// order, each in its own transaction. The default database is
// ~/.foresight/data/foresight.db, opened in WAL mode.
package sqlite
