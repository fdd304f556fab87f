// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - Source: Supplies raw findings for one data domain
//   - Detector: Finds patterns in an ingestion bundle
//   - Synthesizer: Turns patterns into insights of one category
//   - ActionGenerator: Turns one insight into concrete actions
//   - HistoryStore: Bounded per-target report history
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Notifier: Progress events. Without it, runs are silent.
//   - JobStore: Asynchronous job tracking. Only needed by the job runner.
//   - SchedulerStore: Target monitor state. Only needed when monitoring.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, source or plugin package
package driven
