// Package notion provides a document source backed by a Notion workspace.
// Pages and databases matching the target become findings whose confidence
// reflects how recently they were edited.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
	"github.com/custodia-labs/foresight/internal/sources/topic"
)

// Kind is the source kind name used in configuration.
const Kind = "notion"

// DefaultMaxResults is how many objects are requested per search.
// The API caps a page at 100.
const DefaultMaxResults = 25

// Recency bands for edited documents.
const (
	freshWindow = 30 * 24 * time.Hour
	staleWindow = 180 * 24 * time.Hour
)

// searcher is the part of the Notion client the source uses.
type searcher interface {
	Do(ctx context.Context, req *notionapi.SearchRequest) (*notionapi.SearchResponse, error)
}

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source searches a Notion workspace shared with an integration token.
type Source struct {
	name       string
	search     searcher
	maxResults int
	now        func() time.Time
}

// New builds a Notion source. Config keys:
//   - token (string): integration token, falls back to $NOTION_TOKEN
//   - max_results (int): objects per search, 1-100, default 25
func New(name string, cfg map[string]any) (driven.Source, error) {
	token := plugins.StringFromConfig(cfg, "token", os.Getenv("NOTION_TOKEN"))
	if token == "" {
		return nil, fmt.Errorf("%w: notion needs a token", domain.ErrInvalidInput)
	}
	maxResults := plugins.IntFromConfig(cfg, "max_results", DefaultMaxResults)
	if maxResults < 1 || maxResults > 100 {
		maxResults = DefaultMaxResults
	}
	client := notionapi.NewClient(notionapi.Token(token))
	return &Source{
		name:       name,
		search:     client.Search,
		maxResults: maxResults,
		now:        time.Now,
	}, nil
}

// Name returns the configured source name.
func (s *Source) Name() string { return s.name }

// Ingest searches titles for the target. Focus areas are not sent to the
// API, which matches titles only; they raise confidence when a title
// mentions one.
func (s *Source) Ingest(ctx context.Context, target, _ string, focusAreas []string) (*domain.SourceResult, error) {
	resp, err := s.search.Do(ctx, &notionapi.SearchRequest{
		Query:    target,
		PageSize: s.maxResults,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	out := &domain.SourceResult{
		SourceName: s.name,
		Findings:   []domain.Finding{},
		RawCount:   len(resp.Results),
	}
	now := s.now()
	for _, obj := range resp.Results {
		doc, ok := describe(obj)
		if !ok || doc.title == "" {
			continue
		}
		confidence := recencyConfidence(now.Sub(doc.edited))
		if mentionsAny(doc.title, focusAreas) {
			confidence = domain.Clamp01(confidence + 0.1)
		}
		out.Findings = append(out.Findings, domain.Finding{
			Topic:        topic.Detect(doc.title),
			Description:  fmt.Sprintf("Notion %s: %s", doc.kind, doc.title),
			Confidence:   confidence,
			SourceName:   s.name,
			Implications: doc.url,
		})
	}
	return out, nil
}

type document struct {
	kind   string
	title  string
	url    string
	edited time.Time
}

// describe extracts the title of a page or database. Archived pages are skipped.
func describe(obj notionapi.Object) (document, bool) {
	switch o := obj.(type) {
	case *notionapi.Page:
		if o.Archived {
			return document{}, false
		}
		for _, prop := range o.Properties {
			if title, ok := prop.(*notionapi.TitleProperty); ok {
				return document{kind: "page", title: plainText(title.Title), url: o.URL, edited: o.LastEditedTime}, true
			}
		}
		return document{}, false
	case *notionapi.Database:
		return document{kind: "database", title: plainText(o.Title), url: o.URL, edited: o.LastEditedTime}, true
	default:
		return document{}, false
	}
}

func plainText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// recencyConfidence is 0.8 within a month, 0.6 within six months, else 0.4.
func recencyConfidence(age time.Duration) float64 {
	switch {
	case age <= freshWindow:
		return 0.8
	case age <= staleWindow:
		return 0.6
	default:
		return 0.4
	}
}

func mentionsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func wrapError(err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: notion: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: notion: %w", domain.ErrSourceUnavailable, err)
}
