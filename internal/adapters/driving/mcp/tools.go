package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

// topInsightLimit caps how many insights a tool result lists.
const topInsightLimit = 5

// AnalysisInput is the input schema for run_intelligence and submit_job.
type AnalysisInput struct {
	Target      string         `json:"target" jsonschema:"the company, domain or product to analyse"`
	Objective   string         `json:"objective,omitempty" jsonschema:"analysis objective such as competitive_analysis or customer_insights (default comprehensive)"`
	Focus       string         `json:"focus,omitempty" jsonschema:"business focus: growth or efficiency"`
	FocusAreas  []string       `json:"focus_areas,omitempty" jsonschema:"topics the sources should concentrate on"`
	Industry    string         `json:"industry,omitempty" jsonschema:"industry of the target, used in narratives"`
	Constraints map[string]any `json:"constraints,omitempty" jsonschema:"advisory limits such as max_actions or exclude_types"`
}

// request converts the tool input into a pipeline request.
func (in AnalysisInput) request() domain.Request {
	objective := in.Objective
	if objective == "" {
		objective = domain.ObjectiveComprehensive
	}
	bc := map[string]any{}
	if in.Focus != "" {
		bc["focus"] = in.Focus
	}
	if len(in.FocusAreas) > 0 {
		bc["focus_areas"] = in.FocusAreas
	}
	if in.Industry != "" {
		bc["industry"] = in.Industry
	}
	return domain.Request{
		Target:      in.Target,
		Objective:   objective,
		Context:     bc,
		Constraints: in.Constraints,
	}
}

// InsightOutput is one ranked insight.
type InsightOutput struct {
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	TimeSensitivity string  `json:"time_sensitivity"`
	PriorityScore   float64 `json:"priority_score"`
}

// ActionOutput is one sequenced action.
type ActionOutput struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Owner    string `json:"owner"`
	Timeline string `json:"timeline"`
	Priority string `json:"priority"`
}

// ReportOutput summarises an intelligence report.
type ReportOutput struct {
	ReportID        string          `json:"report_id"`
	Target          string          `json:"target"`
	Objective       string          `json:"objective"`
	GeneratedAt     string          `json:"generated_at"`
	SourcesUsed     []string        `json:"sources_used"`
	DataPoints      int             `json:"data_points"`
	PatternCount    int             `json:"pattern_count"`
	DepthLabel      string          `json:"depth_label"`
	ConfidenceScore float64         `json:"confidence_score"`
	Summary         string          `json:"summary"`
	TopInsights     []InsightOutput `json:"top_insights"`
	Actions         []ActionOutput  `json:"actions"`
	Changes         []string        `json:"changes,omitempty"`
}

// JobStatusInput is the input schema for job_status.
type JobStatusInput struct {
	JobID string `json:"job_id" jsonschema:"the job ID returned by submit_job"`
	Wait  bool   `json:"wait,omitempty" jsonschema:"block until the job finishes"`
}

// JobOutput describes a background job.
type JobOutput struct {
	JobID     string `json:"job_id"`
	Target    string `json:"target"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ReportID  string `json:"report_id,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// BaselineInput is the input schema for compare_baseline.
type BaselineInput struct {
	Target string `json:"target" jsonschema:"the company, domain or product to analyse"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_intelligence",
		Description: "Run the four-stage intelligence pipeline for a target and return the report summary",
	}, s.handleRunIntelligence)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_baseline",
		Description: "Run a comprehensive analysis and contrast it with manual desk research",
	}, s.handleCompareBaseline)

	if s.ports.Jobs == nil {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_job",
		Description: "Start an intelligence analysis in the background and return its job ID",
	}, s.handleSubmitJob)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "job_status",
		Description: "Report the status of a background analysis job",
	}, s.handleJobStatus)
}

func (s *Server) handleRunIntelligence(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalysisInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.ports.Intelligence.RunIntelligence(ctx, input.request())
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, summariseReport(report), nil
}

func (s *Server) handleCompareBaseline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BaselineInput,
) (*mcp.CallToolResult, domain.ComparisonReport, error) {
	if input.Target == "" {
		return nil, domain.ComparisonReport{}, fmt.Errorf("%w: target is required", domain.ErrInvalidRequest)
	}
	cmp, err := s.ports.Intelligence.CompareBaseline(ctx, input.Target)
	if err != nil {
		return nil, domain.ComparisonReport{}, err
	}
	return nil, *cmp, nil
}

func (s *Server) handleSubmitJob(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalysisInput,
) (*mcp.CallToolResult, JobOutput, error) {
	if s.ports.Jobs == nil {
		return nil, JobOutput{}, ErrJobsUnavailable
	}
	job, err := s.ports.Jobs.Submit(ctx, input.request())
	if err != nil {
		return nil, JobOutput{}, err
	}
	return nil, jobOutput(job), nil
}

func (s *Server) handleJobStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobStatusInput,
) (*mcp.CallToolResult, JobOutput, error) {
	if s.ports.Jobs == nil {
		return nil, JobOutput{}, ErrJobsUnavailable
	}
	if input.Wait {
		// The outcome is read back from the job record below.
		_, _ = s.ports.Jobs.Wait(ctx, input.JobID)
	}
	job, err := s.ports.Jobs.Status(ctx, input.JobID)
	if err != nil {
		return nil, JobOutput{}, err
	}
	return nil, jobOutput(job), nil
}

func summariseReport(r *domain.IntelligenceReport) ReportOutput {
	out := ReportOutput{
		ReportID:        r.ID,
		Target:          r.Target,
		Objective:       r.Objective,
		GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		SourcesUsed:     r.Ingestion.SourcesUsed,
		DataPoints:      r.Ingestion.TotalDataPoints,
		PatternCount:    len(r.Patterns) + len(r.MetaPatterns),
		DepthLabel:      r.DepthLabel,
		ConfidenceScore: r.ConfidenceScore,
		Summary:         r.Summary.Narrative,
		TopInsights:     []InsightOutput{},
		Actions:         make([]ActionOutput, 0, len(r.Actions)),
	}
	if out.SourcesUsed == nil {
		out.SourcesUsed = []string{}
	}
	for i, in := range r.Insights {
		if i == topInsightLimit {
			break
		}
		out.TopInsights = append(out.TopInsights, InsightOutput{
			Title:           in.Title,
			Category:        string(in.Category),
			TimeSensitivity: string(in.TimeSensitivity),
			PriorityScore:   in.PriorityScore,
		})
	}
	for _, a := range r.Actions {
		out.Actions = append(out.Actions, ActionOutput{
			Title:    a.Title,
			Type:     string(a.Type),
			Owner:    a.Owner,
			Timeline: a.Timeline,
			Priority: string(a.Priority),
		})
	}
	for _, c := range r.Changes {
		out.Changes = append(out.Changes, c.Description)
	}
	return out
}

func jobOutput(job *domain.Job) JobOutput {
	return JobOutput{
		JobID:     job.ID,
		Target:    job.Request.Target,
		Status:    string(job.Status),
		Message:   job.Message,
		Error:     job.Error,
		ReportID:  job.ReportID,
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}
}
