// Package domain defines the core business entities for Foresight.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Request: What to analyse and why
//   - Finding / SourceResult / IngestionBundle: Raw signals and their aggregate
//   - Pattern: A structural regularity found across findings
//   - Insight: A business-framed interpretation of patterns
//   - Action: A concrete, owned, timelined recommendation
//   - IntelligenceReport: The merged output of one pipeline run
//   - Job / ProgressEvent: Asynchronous execution and progress reporting
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
