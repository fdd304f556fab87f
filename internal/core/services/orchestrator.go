package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/core/ports/driving"
	"github.com/custodia-labs/foresight/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.IntelligenceService = (*Orchestrator)(nil)

// Depth ratio denominators.
const (
	depthDataPoints = 100
	depthPatterns   = 20
	depthInsights   = 10
	depthActions    = 15
)

// manualBaseline is the fixed description of conventional desk research.
var manualBaseline = domain.Baseline{
	Description: "Manual desk research by a single analyst",
	DataSources: 2,
	Findings:    8,
	DepthLabel:  domain.DepthSurface,
	Turnaround:  "2-3 weeks",
}

// Observer receives every progress event of one run, after the notifier.
type Observer func(event domain.ProgressEvent)

// Orchestrator runs the four stages in order and merges their output.
type Orchestrator struct {
	ingestion *IngestionService
	patterns  *PatternService
	synthesis *SynthesisService
	actions   *ActionService
	history   driven.HistoryStore
	notifier  driven.Notifier
	now       func() time.Time
}

// NewOrchestrator creates an orchestrator. A nil notifier drops events.
func NewOrchestrator(
	ingestion *IngestionService,
	patterns *PatternService,
	synthesis *SynthesisService,
	actions *ActionService,
	history driven.HistoryStore,
	notifier driven.Notifier,
) *Orchestrator {
	return &Orchestrator{
		ingestion: ingestion,
		patterns:  patterns,
		synthesis: synthesis,
		actions:   actions,
		history:   history,
		notifier:  notifier,
		now:       time.Now,
	}
}

// RunIntelligence runs one pipeline instance under a fresh job ID.
func (o *Orchestrator) RunIntelligence(ctx context.Context, req domain.Request) (*domain.IntelligenceReport, error) {
	return o.Run(ctx, uuid.New().String(), req, nil)
}

// Run executes the pipeline for jobID, publishing progress around each stage.
// On failure a failed event is published, partial results are discarded
// and the error is returned.
func (o *Orchestrator) Run(
	ctx context.Context,
	jobID string,
	req domain.Request,
	observe Observer,
) (*domain.IntelligenceReport, error) {
	emit := func(status domain.JobStatus, message string, results any) {
		o.publish(jobID, domain.ProgressEvent{Status: status, Message: message, Results: results}, observe)
	}
	fail := func(err error) (*domain.IntelligenceReport, error) {
		logger.Warn("job %s failed: %v", jobID, err)
		emit(domain.StatusFailed, err.Error(), nil)
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return fail(err)
	}
	logger.Info("job %s: %s analysis of %s", jobID, req.Objective, req.Target)

	// Snapshot history before this run so it never sees itself.
	prior, err := o.history.History(ctx, req.Target)
	if err != nil {
		logger.Warn("job %s: reading history for %s: %v", jobID, req.Target, err)
		prior = nil
	}
	bc := req.BusinessContext()

	var bundle *domain.IngestionBundle
	emit(domain.StatusIngesting, fmt.Sprintf("Ingesting signals about %s", req.Target), nil)
	if err := runStage(ctx, domain.StatusIngesting, func() (err error) {
		bundle, err = o.ingestion.Ingest(ctx, req)
		return err
	}); err != nil {
		return fail(err)
	}

	var patterns *domain.PatternResult
	emit(domain.StatusPatternAnalysis,
		fmt.Sprintf("Discovering patterns across %d findings", len(bundle.KeyFindings)), nil)
	if err := runStage(ctx, domain.StatusPatternAnalysis, func() (err error) {
		patterns, err = o.patterns.DiscoverPatterns(ctx, bundle, prior)
		return err
	}); err != nil {
		return fail(err)
	}

	var insights *domain.InsightResult
	emit(domain.StatusSynthesizing,
		fmt.Sprintf("Synthesizing insights from %d patterns", len(patterns.All())), nil)
	if err := runStage(ctx, domain.StatusSynthesizing, func() (err error) {
		insights, err = o.synthesis.Synthesize(ctx, patterns, bc)
		return err
	}); err != nil {
		return fail(err)
	}

	var actions *domain.ActionResult
	emit(domain.StatusActionPlanning,
		fmt.Sprintf("Planning actions for %d insights", len(insights.Insights)), nil)
	if err := runStage(ctx, domain.StatusActionPlanning, func() (err error) {
		actions, err = o.actions.GenerateActions(ctx, insights, bc, req.Constraints)
		return err
	}); err != nil {
		return fail(err)
	}

	report := o.merge(jobID, req, bundle, patterns, insights, actions)
	if len(prior) > 0 {
		report.Changes = DetectChanges(&prior[len(prior)-1], report)
	}

	if err := o.history.Append(ctx, req.Target, report); err != nil {
		logger.Warn("job %s: appending history for %s: %v", jobID, req.Target, err)
	}
	logger.Info("job %s: completed with depth %s, confidence %.2f", jobID, report.DepthLabel, report.ConfidenceScore)
	emit(domain.StatusCompleted, "Intelligence report ready", report)
	return report, nil
}

// runStage runs fn, turning a panic into ErrStageFailed.
// Errors are wrapped so both ErrStageFailed and the cause match errors.Is.
func runStage(ctx context.Context, stage domain.JobStatus, fn func() error) (err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStageFailed, stage, ctxErr)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", domain.ErrStageFailed, stage, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStageFailed, stage, err)
	}
	return nil
}

// publish delivers an event to the notifier and observer.
// A panicking notifier is logged and ignored.
func (o *Orchestrator) publish(jobID string, event domain.ProgressEvent, observe Observer) {
	if o.notifier != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("job %s: notifier panic: %v", jobID, r)
				}
			}()
			o.notifier.Publish(jobID, event)
		}()
	}
	if observe != nil {
		observe(event)
	}
}

// merge assembles the report from the four stage outputs.
func (o *Orchestrator) merge(
	jobID string,
	req domain.Request,
	bundle *domain.IngestionBundle,
	patterns *domain.PatternResult,
	insights *domain.InsightResult,
	actions *domain.ActionResult,
) *domain.IntelligenceReport {
	quality := domain.StageQuality{
		Ingestion: bundle.QualityScore,
		Pattern:   patterns.QualityScore,
		Insight:   insights.QualityScore,
	}
	return &domain.IntelligenceReport{
		ID:          uuid.New().String(),
		JobID:       jobID,
		Target:      req.Target,
		Objective:   req.Objective,
		GeneratedAt: o.now().UTC(),
		Ingestion: domain.IngestionSummary{
			SourcesUsed:       bundle.SourcesUsed,
			TotalDataPoints:   bundle.TotalDataPoints,
			KeyFindingCount:   len(bundle.KeyFindings),
			CrossSourceTopics: bundle.Topics(),
			AnomalyCount:      len(bundle.Anomalies),
			QualityScore:      bundle.QualityScore,
		},
		Patterns:     patterns.Patterns,
		MetaPatterns: patterns.MetaPatterns,
		Categories:   patterns.Categories,
		Insights:     insights.Insights,
		Summary:      insights.ExecutiveSummary,
		Actions:      actions.Actions,
		Plan:         actions.Plan,
		Resources:    actions.ResourceSummary,
		Impact:       actions.ImpactSummary,
		Timeline:     actions.Timeline,
		Quality:      quality,
		DepthLabel: DepthLabel(
			bundle.TotalDataPoints,
			len(patterns.All()),
			len(insights.Insights),
			len(actions.Actions),
		),
		ConfidenceScore: ConfidenceScore(quality),
	}
}

// DepthLabel averages four capped ratios and maps the mean to a label.
func DepthLabel(dataPoints, patterns, insights, actions int) string {
	ratio := func(n, denominator int) float64 {
		return math.Min(float64(n)/float64(denominator), 1)
	}
	depth := domain.Mean(
		ratio(dataPoints, depthDataPoints),
		ratio(patterns, depthPatterns),
		ratio(insights, depthInsights),
		ratio(actions, depthActions),
	)
	switch {
	case depth > 0.8:
		return domain.DepthExceptional
	case depth > 0.6:
		return domain.DepthDeep
	case depth > 0.4:
		return domain.DepthModerate
	default:
		return domain.DepthSurface
	}
}

// ConfidenceScore weights stage qualities 0.3/0.4/0.3, rounded to two decimals.
func ConfidenceScore(q domain.StageQuality) float64 {
	return domain.Round2(0.3*q.Ingestion + 0.4*q.Pattern + 0.3*q.Insight)
}

// CompareBaseline runs a comprehensive analysis and contrasts it with manual research.
func (o *Orchestrator) CompareBaseline(ctx context.Context, target string) (*domain.ComparisonReport, error) {
	report, err := o.RunIntelligence(ctx, domain.Request{
		Target:    target,
		Objective: domain.ObjectiveComprehensive,
	})
	if err != nil {
		return nil, err
	}

	patterns := len(report.Patterns) + len(report.MetaPatterns)
	return &domain.ComparisonReport{
		Target:        target,
		ReportID:      report.ID,
		SourcesUsed:   len(report.Ingestion.SourcesUsed),
		DataPoints:    report.Ingestion.TotalDataPoints,
		PatternsFound: patterns,
		InsightsFound: len(report.Insights),
		ActionsFound:  len(report.Actions),
		DepthLabel:    report.DepthLabel,
		Confidence:    report.ConfidenceScore,
		Baseline:      manualBaseline,
		Highlights: []string{
			fmt.Sprintf("%d sources consulted versus %d for manual research",
				len(report.Ingestion.SourcesUsed), manualBaseline.DataSources),
			fmt.Sprintf("%d data points and %d key findings versus %d manual findings",
				report.Ingestion.TotalDataPoints, report.Ingestion.KeyFindingCount, manualBaseline.Findings),
			fmt.Sprintf("%d patterns, %d insights and %d actions in one run",
				patterns, len(report.Insights), len(report.Actions)),
			fmt.Sprintf("Depth %s versus %s, turnaround minutes versus %s",
				report.DepthLabel, manualBaseline.DepthLabel, manualBaseline.Turnaround),
		},
	}, nil
}

// History returns prior reports for target, oldest first.
func (o *Orchestrator) History(ctx context.Context, target string) ([]domain.IntelligenceReport, error) {
	reports, err := o.history.History(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", target, err)
	}
	return reports, nil
}
