// Package github provides a source that searches public GitHub repositories
// for the target and turns each hit into a finding.
package github

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/plugins"
)

// Kind is the source kind name used in configuration.
const Kind = "github"

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResults is how many repositories are requested per search.
	DefaultMaxResults = 20

	// activeWindow is how recently a repository must have been pushed to count as active.
	activeWindow = 90 * 24 * time.Hour
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

// Source searches repositories with the GitHub search API.
type Source struct {
	name       string
	client     *gh.Client
	maxResults int
	now        func() time.Time
}

// New builds a GitHub source. Config keys:
//   - token (string): personal access token, falls back to $GITHUB_TOKEN
//   - max_results (int): repositories per search, default 20
//   - base_url (string): API endpoint, for GitHub Enterprise
func New(name string, cfg map[string]any) (driven.Source, error) {
	token := plugins.StringFromConfig(cfg, "token", os.Getenv("GITHUB_TOKEN"))

	httpClient := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}
	client := gh.NewClient(httpClient)

	if base := plugins.StringFromConfig(cfg, "base_url", ""); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("%w: base_url: %w", domain.ErrInvalidInput, err)
		}
		client.BaseURL = u
	}

	return &Source{
		name:       name,
		client:     client,
		maxResults: plugins.IntFromConfig(cfg, "max_results", DefaultMaxResults),
		now:        time.Now,
	}, nil
}

// Name returns the configured source name.
func (s *Source) Name() string { return s.name }

// Ingest searches repositories mentioning the target, most starred first.
func (s *Source) Ingest(ctx context.Context, target, _ string, focusAreas []string) (*domain.SourceResult, error) {
	query := strings.TrimSpace(target + " " + strings.Join(focusAreas, " "))
	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: s.maxResults},
	}

	result, _, err := s.client.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &domain.SourceResult{
		SourceName: s.name,
		Findings:   make([]domain.Finding, 0, len(result.Repositories)),
		RawCount:   result.GetTotal(),
	}
	for _, repo := range result.Repositories {
		out.Findings = append(out.Findings, s.finding(repo))
	}
	return out, nil
}

// finding maps a repository to a finding. Confidence grows with the log of
// stars and gets a bonus for recent pushes.
func (s *Source) finding(repo *gh.Repository) domain.Finding {
	stars := repo.GetStargazersCount()
	confidence := math.Min(math.Log10(float64(stars)+1)/5, 0.9)
	active := s.now().Sub(repo.GetPushedAt().Time) < activeWindow
	implications := "Dormant project"
	if active {
		confidence += 0.1
		implications = "Active development"
	}

	description := fmt.Sprintf("%s (%d stars)", repo.GetFullName(), stars)
	if d := repo.GetDescription(); d != "" {
		description += ": " + d
	}
	return domain.Finding{
		Topic:        repoTopic(repo),
		Description:  description,
		Confidence:   domain.Clamp01(confidence),
		SourceName:   s.name,
		Implications: implications,
	}
}

// repoTopic prefers the first repository topic, then the language.
func repoTopic(repo *gh.Repository) string {
	if len(repo.Topics) > 0 {
		return strings.ToLower(repo.Topics[0])
	}
	if lang := repo.GetLanguage(); lang != "" {
		return strings.ToLower(lang)
	}
	return "open source"
}

func wrapError(err error) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: github: %w", domain.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: github search: %w", domain.ErrSourceUnavailable, err)
}
