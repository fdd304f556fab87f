// Package websearch provides a source backed by Google Programmable Search.
// Each result becomes a finding whose topic is detected from its snippet.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
	"github.com/custodia-labs/foresight/internal/sources/topic"
)

// Kind is the source kind name used in configuration.
const Kind = "websearch"

// DefaultMaxResults is the API's per-request maximum.
const DefaultMaxResults = 10

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source queries the Custom Search JSON API.
type Source struct {
	name       string
	service    *customsearch.Service
	engineID   string
	maxResults int
}

// New builds a web search source. Config keys:
//   - api_key (string, required)
//   - engine_id (string, required): programmable search engine ID
//   - max_results (int): results per query, 1-10, default 10
//   - base_url (string): API endpoint override
func New(name string, cfg map[string]any) (driven.Source, error) {
	apiKey := plugins.StringFromConfig(cfg, "api_key", "")
	engineID := plugins.StringFromConfig(cfg, "engine_id", "")
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("%w: websearch needs api_key and engine_id", domain.ErrInvalidInput)
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if base := plugins.StringFromConfig(cfg, "base_url", ""); base != "" {
		opts = append(opts, option.WithEndpoint(base))
	}
	service, err := customsearch.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create customsearch service: %w", err)
	}

	maxResults := plugins.IntFromConfig(cfg, "max_results", DefaultMaxResults)
	if maxResults < 1 || maxResults > DefaultMaxResults {
		maxResults = DefaultMaxResults
	}
	return &Source{
		name:       name,
		service:    service,
		engineID:   engineID,
		maxResults: maxResults,
	}, nil
}

// Name returns the configured source name.
func (s *Source) Name() string { return s.name }

// Ingest searches for "<target> <objective words> <focus areas>".
// Higher-ranked results get higher confidence.
func (s *Source) Ingest(ctx context.Context, target, objective string, focusAreas []string) (*domain.SourceResult, error) {
	terms := []string{target, strings.ReplaceAll(objective, "_", " ")}
	terms = append(terms, focusAreas...)
	query := strings.Join(strings.Fields(strings.Join(terms, " ")), " ")

	search, err := s.service.Cse.List().
		Q(query).
		Cx(s.engineID).
		Num(int64(s.maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError(err)
	}

	out := &domain.SourceResult{
		SourceName: s.name,
		Findings:   make([]domain.Finding, 0, len(search.Items)),
	}
	if search.SearchInformation != nil {
		out.RawCount, _ = strconv.Atoi(search.SearchInformation.TotalResults)
	}
	for i, item := range search.Items {
		out.Findings = append(out.Findings, domain.Finding{
			Topic:        topic.Detect(item.Title + " " + item.Snippet),
			Description:  fmt.Sprintf("%s: %s", item.Title, strings.TrimSpace(item.Snippet)),
			Confidence:   rankConfidence(i),
			SourceName:   s.name,
			Implications: item.Link,
		})
	}
	return out, nil
}

// rankConfidence starts at 0.9 and drops 0.05 per rank, floored at 0.4.
func rankConfidence(rank int) float64 {
	return max(0.9-0.05*float64(rank), 0.4)
}

func wrapError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: websearch: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: websearch: %w", domain.ErrSourceUnavailable, err)
}
