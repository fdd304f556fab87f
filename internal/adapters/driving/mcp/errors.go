// Package mcp provides an MCP (Model Context Protocol) server adapter for Foresight.
// It lets AI assistants run intelligence analyses, track background jobs
// and read a target's report history.
package mcp

import "errors"

// ErrMissingIntelligenceService is returned when the intelligence service is not provided.
var ErrMissingIntelligenceService = errors.New("mcp: intelligence service is required")

// ErrJobsUnavailable is returned by job tools when no job service is wired.
var ErrJobsUnavailable = errors.New("mcp: background jobs are not available")
