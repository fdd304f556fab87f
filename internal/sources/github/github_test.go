package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/core/domain"
)

const searchResponse = `{
  "total_count": 120,
  "incomplete_results": false,
  "items": [
    {"full_name": "acme/widgets", "description": "Widget SDK", "stargazers_count": 9999,
     "language": "Go", "topics": ["Payments"], "pushed_at": "2026-10-01T00:00:00Z"},
    {"full_name": "acme/old", "stargazers_count": 0, "pushed_at": "2015-01-01T00:00:00Z"}
  ]
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := New("code", map[string]any{"base_url": server.URL, "token": "t", "max_results": 5})
	require.NoError(t, err)
	s := src.(*Source)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestIngest_MapsRepositories(t *testing.T) {
	var gotQuery, gotPerPage, gotAuth string
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotPerPage = r.URL.Query().Get("per_page")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	})

	res, err := src.Ingest(context.Background(), "acme", domain.ObjectiveProductStrategy, []string{"payments"})
	require.NoError(t, err)

	assert.Equal(t, "acme payments", gotQuery)
	assert.Equal(t, "5", gotPerPage)
	assert.Equal(t, "Bearer t", gotAuth)
	assert.Equal(t, 120, res.RawCount)
	require.Len(t, res.Findings, 2)

	first := res.Findings[0]
	assert.Equal(t, "payments", first.Topic)
	assert.Equal(t, "acme/widgets (9999 stars): Widget SDK", first.Description)
	assert.InDelta(t, 0.9, first.Confidence, 1e-9)
	assert.Equal(t, "code", first.SourceName)
	assert.Equal(t, "Active development", first.Implications)

	second := res.Findings[1]
	assert.Equal(t, "open source", second.Topic)
	assert.InDelta(t, 0.0, second.Confidence, 1e-9)
	assert.Equal(t, "Dormant project", second.Implications)
}

func TestIngest_ServerErrorIsUnavailable(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := src.Ingest(context.Background(), "acme", "x", nil)
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestIngest_RateLimited(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "30")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1893456000")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})

	_, err := src.Ingest(context.Background(), "acme", "x", nil)
	require.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("code", map[string]any{"base_url": "://bad"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
