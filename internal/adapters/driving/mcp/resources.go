package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Foresight resources.
	uriScheme = "foresight://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for a target's report history.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{target}",
		Name:        "target-history",
		Description: "Prior intelligence reports for a target, oldest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	if s.ports.Jobs != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "jobs",
			Name:        "jobs",
			Description: "Background analysis jobs, most recent first",
			MIMEType:    "application/json",
		}, s.handleJobsResource)
	}
}

// handleHistoryResource returns summaries of a target's stored reports.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	target := extractTarget(req.Params.URI)
	if target == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	reports, err := s.ports.Intelligence.History(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	summaries := make([]ReportOutput, len(reports))
	for i := range reports {
		summaries[i] = summariseReport(&reports[i])
	}
	return jsonResource(req.Params.URI, summaries)
}

// handleJobsResource lists background jobs.
func (s *Server) handleJobsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	jobs, err := s.ports.Jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	outputs := make([]JobOutput, len(jobs))
	for i := range jobs {
		outputs[i] = jobOutput(&jobs[i])
	}
	return jsonResource(req.Params.URI, outputs)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTarget extracts the target from a URI like foresight://history/{target}.
// Targets may be URL-escaped.
func extractTarget(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	target, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return target
}
