package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
)

type staticSource struct {
	name  string
	calls int
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Ingest(context.Context, string, string, []string) (*domain.SourceResult, error) {
	s.calls++
	return &domain.SourceResult{SourceName: s.name}, nil
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: {}\n"), 0o600))
	return path
}

func TestNewDefaultFactory_Kinds(t *testing.T) {
	assert.Equal(t, []string{"fixture", "github", "notion", "websearch"}, NewDefaultFactory().SupportedKinds())
}

func TestFactory_CreateUnknownKind(t *testing.T) {
	_, err := NewDefaultFactory().Create("web", map[string]any{"kind": "ftp"})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "web")
}

func TestFactory_CreateAllOrderedByName(t *testing.T) {
	path := writeFixture(t)
	sources, err := NewDefaultFactory().CreateAll(map[string]map[string]any{
		"web":      {"kind": "fixture", "path": path},
		"internal": {"kind": "fixture", "path": path, "rps": 5.0, "burst": 2},
	})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "internal", sources[0].Name())
	assert.IsType(t, &RateLimited{}, sources[0])
	assert.Equal(t, "web", sources[1].Name())
}

func TestFactory_CreateAllStopsOnError(t *testing.T) {
	_, err := NewDefaultFactory().CreateAll(map[string]map[string]any{
		"web": {"kind": "fixture"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFactory_RegisterCustomKind(t *testing.T) {
	f := NewFactory()
	f.Register("static", func(name string, _ map[string]any) (driven.Source, error) {
		return &staticSource{name: name}, nil
	})

	src, err := f.Create("behavioral", map[string]any{"kind": "static"})
	require.NoError(t, err)
	assert.Equal(t, "behavioral", src.Name())
}

func TestRateLimited_Delegates(t *testing.T) {
	inner := &staticSource{name: "web"}
	limited := NewRateLimited(inner, 1000, 0)

	res, err := limited.Ingest(context.Background(), "acme", "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "web", res.SourceName)
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimited_WaitHonoursContext(t *testing.T) {
	inner := &staticSource{name: "web"}
	limited := NewRateLimited(inner, 0.001, 1)

	_, err := limited.Ingest(context.Background(), "acme", "x", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.Ingest(ctx, "acme", "x", nil)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, 1, inner.calls)
}
