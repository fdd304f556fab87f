package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/logger"
)

// lowConfidenceThreshold marks findings recorded as anomalies.
const lowConfidenceThreshold = 0.3

// minDiverseSources is how many distinct sources count as a diverse bundle.
const minDiverseSources = 3

// IngestionService fans a request out to source adapters and merges
// their findings into a single bundle.
type IngestionService struct {
	sources []driven.Source
	byName  map[string]driven.Source
	table   map[string][]string
	timeout time.Duration
}

// NewIngestionService creates an ingestion service over the given sources.
// Sources are consulted in registration order when an objective is unknown.
func NewIngestionService(sources []driven.Source, settings domain.PipelineSettings) *IngestionService {
	byName := make(map[string]driven.Source, len(sources))
	for _, src := range sources {
		byName[src.Name()] = src
	}
	table := settings.ObjectiveSources
	if table == nil {
		table = domain.DefaultObjectiveSources()
	}
	timeout := settings.SourceTimeout
	if timeout <= 0 {
		timeout = domain.DefaultPipelineSettings().SourceTimeout
	}
	return &IngestionService{
		sources: sources,
		byName:  byName,
		table:   table,
		timeout: timeout,
	}
}

// SelectSources returns the sources consulted for an objective.
// Unknown objectives, and objectives whose listed sources are all
// unregistered, use every registered source.
func (s *IngestionService) SelectSources(objective string) []driven.Source {
	names, ok := s.table[objective]
	if !ok {
		return s.sources
	}
	selected := make([]driven.Source, 0, len(names))
	for _, name := range names {
		if src, ok := s.byName[name]; ok {
			selected = append(selected, src)
		}
	}
	if len(selected) == 0 {
		return s.sources
	}
	return selected
}

// sourceOutcome is one adapter's answer.
type sourceOutcome struct {
	result *domain.SourceResult
	err    error
}

// Ingest queries the selected sources concurrently and aggregates their findings.
// A failing source contributes nothing; the bundle is never partial because of it.
// Cancelling ctx, or every selected source timing out, fails ingestion.
func (s *IngestionService) Ingest(ctx context.Context, req domain.Request) (*domain.IngestionBundle, error) {
	selected := s.SelectSources(req.Objective)
	focusAreas := req.BusinessContext().FocusAreas
	outcomes := make([]sourceOutcome, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range selected {
		g.Go(func() error {
			res, err := s.query(gctx, src, req.Target, req.Objective, focusAreas)
			outcomes[i] = sourceOutcome{result: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", req.Target, err)
	}

	timedOut := 0
	for _, o := range outcomes {
		if errors.Is(o.err, context.DeadlineExceeded) {
			timedOut++
		}
	}
	if len(selected) > 0 && timedOut == len(selected) {
		return nil, fmt.Errorf("%w: %d sources", domain.ErrIngestionTimeout, timedOut)
	}

	return s.aggregate(selected, outcomes), nil
}

// query calls one source under its own deadline.
// The call is abandoned when the deadline passes even if the adapter ignores ctx.
func (s *IngestionService) query(
	ctx context.Context,
	src driven.Source,
	target, objective string,
	focusAreas []string,
) (*domain.SourceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan sourceOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- sourceOutcome{err: fmt.Errorf("%w: panic: %v", domain.ErrSourceUnavailable, r)}
			}
		}()
		res, err := src.Ingest(ctx, target, objective, focusAreas)
		done <- sourceOutcome{result: res, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// aggregate merges outcomes into a bundle and scores it.
func (s *IngestionService) aggregate(selected []driven.Source, outcomes []sourceOutcome) *domain.IngestionBundle {
	bundle := &domain.IngestionBundle{
		SourcesUsed:         []string{},
		KeyFindings:         []domain.Finding{},
		CrossSourcePatterns: []domain.PatternStub{},
		Anomalies:           []map[string]any{},
	}

	for i, o := range outcomes {
		name := selected[i].Name()
		if o.err != nil {
			logger.Warn("ingestion: source %s failed: %v", name, o.err)
			bundle.Anomalies = append(bundle.Anomalies, map[string]any{
				domain.AnomalyKeyType:   domain.AnomalySourceFailure,
				domain.AnomalyKeySource: name,
				domain.AnomalyKeyError:  o.err.Error(),
			})
			continue
		}
		bundle.SourcesUsed = append(bundle.SourcesUsed, name)
		if o.result == nil {
			continue
		}
		bundle.TotalDataPoints += max(o.result.RawCount, len(o.result.Findings))
		for _, f := range o.result.Findings {
			f.Topic = normaliseTopic(f.Topic)
			f.Confidence = domain.Clamp01(f.Confidence)
			if f.SourceName == "" {
				f.SourceName = name
			}
			if f.Confidence < lowConfidenceThreshold {
				bundle.Anomalies = append(bundle.Anomalies, map[string]any{
					domain.AnomalyKeyType:       domain.AnomalyLowConfidence,
					domain.AnomalyKeySource:     f.SourceName,
					domain.AnomalyKeyTopic:      f.Topic,
					domain.AnomalyKeyConfidence: f.Confidence,
				})
			}
			bundle.KeyFindings = append(bundle.KeyFindings, f)
		}
	}

	bundle.CrossSourcePatterns = CrossSourceStubs(bundle.KeyFindings)
	bundle.QualityScore = IngestionQuality(bundle)
	logger.Debug("ingestion: %d findings from %d sources, %d stubs",
		len(bundle.KeyFindings), len(bundle.SourcesUsed), len(bundle.CrossSourcePatterns))
	return bundle
}

// CrossSourceStubs returns one stub per topic mentioned by two or more
// distinct sources, most-mentioned first then by topic.
func CrossSourceStubs(findings []domain.Finding) []domain.PatternStub {
	sourcesByTopic := make(map[string]map[string]struct{})
	for _, f := range findings {
		if f.Topic == "" {
			continue
		}
		if sourcesByTopic[f.Topic] == nil {
			sourcesByTopic[f.Topic] = make(map[string]struct{})
		}
		sourcesByTopic[f.Topic][f.SourceName] = struct{}{}
	}

	stubs := []domain.PatternStub{}
	for topic, set := range sourcesByTopic {
		if len(set) < 2 {
			continue
		}
		sources := make([]string, 0, len(set))
		for name := range set {
			sources = append(sources, name)
		}
		sort.Strings(sources)
		significance := domain.SignificanceMedium
		if len(set) >= 3 {
			significance = domain.SignificanceHigh
		}
		stubs = append(stubs, domain.PatternStub{
			Topic:        topic,
			SourceCount:  len(set),
			Sources:      sources,
			Significance: significance,
		})
	}
	sort.Slice(stubs, func(i, j int) bool {
		if stubs[i].SourceCount != stubs[j].SourceCount {
			return stubs[i].SourceCount > stubs[j].SourceCount
		}
		return stubs[i].Topic < stubs[j].Topic
	})
	return stubs
}

// IngestionQuality averages four equally weighted factors: findings present,
// findings from at least three sources, recency (always true) and at least
// one cross-source stub. A bundle without findings scores zero.
func IngestionQuality(bundle *domain.IngestionBundle) float64 {
	if len(bundle.KeyFindings) == 0 {
		return 0
	}
	sources := make(map[string]struct{})
	for _, f := range bundle.KeyFindings {
		sources[f.SourceName] = struct{}{}
	}
	factors := []bool{
		true,
		len(sources) >= minDiverseSources,
		true,
		len(bundle.CrossSourcePatterns) > 0,
	}
	var score float64
	for _, ok := range factors {
		if ok {
			score += 0.25
		}
	}
	return domain.Clamp01(score)
}

func normaliseTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
