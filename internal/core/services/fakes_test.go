package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

// fakeSource returns canned findings, an error, or blocks until ctx is done.
type fakeSource struct {
	name     string
	findings []domain.Finding
	rawCount int
	err      error
	block    bool
	panics   bool

	mu    sync.Mutex
	calls int
	areas []string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Ingest(ctx context.Context, _, _ string, focusAreas []string) (*domain.SourceResult, error) {
	f.mu.Lock()
	f.calls++
	f.areas = focusAreas
	f.mu.Unlock()

	if f.panics {
		panic("source exploded")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SourceResult{SourceName: f.name, Findings: f.findings, RawCount: f.rawCount}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// stubDetector returns fixed patterns.
type stubDetector struct {
	kind     string
	patterns []domain.Pattern
	err      error
	panics   bool
}

func (d *stubDetector) Type() string { return d.kind }

func (d *stubDetector) Detect(
	_ context.Context,
	_ *domain.IngestionBundle,
	_ []domain.IntelligenceReport,
) ([]domain.Pattern, error) {
	if d.panics {
		panic("detector exploded")
	}
	return append([]domain.Pattern(nil), d.patterns...), d.err
}

// stubSynthesizer returns fixed insights.
type stubSynthesizer struct {
	category domain.InsightCategory
	insights []domain.Insight
	err      error
}

func (s *stubSynthesizer) Category() domain.InsightCategory { return s.category }

func (s *stubSynthesizer) Synthesize(
	_ context.Context,
	_ []domain.Pattern,
	_ domain.BusinessContext,
) ([]domain.Insight, error) {
	return append([]domain.Insight(nil), s.insights...), s.err
}

// stubGenerator emits one action per insight and records what it saw.
type stubGenerator struct {
	domainName string
	priority   domain.Priority
	timeline   string
	actionType domain.ActionType
	owner      string

	seen []string
}

func (g *stubGenerator) Domain() string { return g.domainName }

func (g *stubGenerator) Generate(
	_ context.Context,
	in domain.Insight,
	_ domain.BusinessContext,
) ([]domain.Action, error) {
	g.seen = append(g.seen, in.Title)
	return []domain.Action{{
		Type:            g.actionType,
		Title:           g.domainName + ": " + in.Title,
		Owner:           g.owner,
		Timeline:        g.timeline,
		Priority:        g.priority,
		ExpectedOutcome: "outcome for " + in.Title,
	}}, nil
}

// recordingNotifier captures published events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.ProgressEvent
	panics bool
}

func (n *recordingNotifier) Publish(_ string, event domain.ProgressEvent) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
	if n.panics {
		panic("notifier exploded")
	}
}

func (n *recordingNotifier) statuses() []domain.JobStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.JobStatus, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Status)
	}
	return out
}

var (
	_ driven.Source          = (*fakeSource)(nil)
	_ driven.Detector        = (*stubDetector)(nil)
	_ driven.Synthesizer     = (*stubSynthesizer)(nil)
	_ driven.ActionGenerator = (*stubGenerator)(nil)
	_ driven.Notifier        = (*recordingNotifier)(nil)
)

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testSettings() domain.PipelineSettings {
	settings := domain.DefaultPipelineSettings()
	settings.SourceTimeout = 200 * time.Millisecond
	return settings
}
