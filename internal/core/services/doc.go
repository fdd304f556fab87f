// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The intelligence pipeline lives here as four stage services
// (IngestionService, PatternService, SynthesisService, ActionService)
// run in order by the Orchestrator. JobRunner and Scheduler drive the
// Orchestrator asynchronously.
package services
