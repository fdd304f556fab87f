package plugins

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedPlugin struct {
	name      string
	threshold float64
}

func builderFor(name string) BuilderFunc[*namedPlugin] {
	return func(cfg map[string]any) (*namedPlugin, error) {
		return &namedPlugin{name: name, threshold: FloatFromConfig(cfg, "min_confidence", 0.2)}, nil
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry[*namedPlugin]()
	r.Register("temporal", builderFor("temporal"))

	assert.True(t, r.Has("temporal"))
	assert.False(t, r.Has("missing"))

	p, err := r.Build("temporal", map[string]any{"min_confidence": 0.5})
	require.NoError(t, err)
	assert.Equal(t, "temporal", p.name)
	assert.InDelta(t, 0.5, p.threshold, 1e-9)
}

func TestRegistry_BuildUnknown(t *testing.T) {
	r := NewRegistry[*namedPlugin]()
	_, err := r.Build("missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestRegistry_BuildAll(t *testing.T) {
	r := NewRegistry[*namedPlugin]()
	r.Register("b", builderFor("b"))
	r.Register("a", builderFor("a"))
	r.Register("b", builderFor("b2"))

	all, err := r.BuildAll(nil, map[string]map[string]any{"a": {"min_confidence": 1}})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b2", all[0].name)
	assert.Equal(t, "a", all[1].name)
	assert.InDelta(t, 1.0, all[1].threshold, 1e-9)

	some, err := r.BuildAll([]string{"a"}, nil)
	require.NoError(t, err)
	require.Len(t, some, 1)

	_, err = r.BuildAll([]string{"a", "zzz"}, nil)
	assert.Error(t, err)

	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistry_BuilderError(t *testing.T) {
	r := NewRegistry[*namedPlugin]()
	r.Register("bad", func(map[string]any) (*namedPlugin, error) { return nil, errors.New("bad config") })

	_, err := r.BuildAll(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}
