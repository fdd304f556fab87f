package mcp

import (
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Intelligence runs analyses and serves history.
	Intelligence driving.IntelligenceService

	// Jobs runs analyses in the background. Optional.
	Jobs driving.JobService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Intelligence == nil {
		return ErrMissingIntelligenceService
	}
	return nil
}
