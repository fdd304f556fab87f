package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), []byte(content), 0600))
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	_, err := NewConfigStore(nestedPath)
	require.NoError(t, err)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[pipeline]
history_limit = 7
source_timeout = "45s"
min_confidence = 0.4

[sources.news]
kind = "fixture"
path = "news.yaml"
rps = 2

[detectors]
enabled = ["temporal", "correlation"]
`)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 7, store.GetInt("pipeline.history_limit"))
	assert.Equal(t, "45s", store.GetString("pipeline.source_timeout"))
	assert.InDelta(t, 0.4, store.GetFloat("pipeline.min_confidence"), 1e-9)
	assert.InDelta(t, 2.0, store.GetFloat("sources.news.rps"), 1e-9)
	assert.Equal(t, []string{"temporal", "correlation"}, store.GetStringSlice("detectors.enabled"))
	assert.Equal(t, []string{"sources.news.kind", "sources.news.path", "sources.news.rps"}, store.Keys("sources."))
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "this is [not valid toml")

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "# Just a comment\n\n")

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Empty(t, store.Keys(""))
}

func TestConfigStore_TypedGettersWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("str", "hello"))

	assert.Equal(t, 0, store.GetInt("str"))
	assert.Zero(t, store.GetFloat("str"))
	assert.False(t, store.GetBool("str"))
	assert.Nil(t, store.GetStringSlice("str"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("pipeline.history_limit", 5))
	require.NoError(t, store.Set("scheduler.enabled", true))
	require.NoError(t, store.Set("objectives.pricing", []string{"news", "reviews"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[pipeline]")
	assert.Contains(t, string(raw), "[scheduler]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.GetInt("pipeline.history_limit"))
	assert.True(t, reloaded.GetBool("scheduler.enabled"))
	assert.Equal(t, []string{"news", "reviews"}, reloaded.GetStringSlice("objectives.pricing"))
}

func TestConfigStore_SetScalarAndChildKeys(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("a", "scalar"))
	require.NoError(t, store.Set("a.b", "child"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "scalar", reloaded.GetString("a"))
	assert.Equal(t, "child", reloaded.GetString("a.b"))
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))
	assert.Error(t, err)

	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("pipeline.history_limit", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("pipeline.history_limit")
			_ = store.Keys("pipeline.")
		}()
	}
	wg.Wait()
}

func TestFlattenAndNestMap(t *testing.T) {
	nested := map[string]any{
		"pipeline": map[string]any{"history_limit": int64(5)},
		"sources":  map[string]any{"news": map[string]any{"kind": "fixture"}},
		"top":      "level",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"pipeline.history_limit": int64(5),
		"sources.news.kind":      "fixture",
		"top":                    "level",
	}, flat)
	assert.Equal(t, nested, nestMap(flat))
}

func TestConfigStore_WatchReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "[pipeline]\nhistory_limit = 3\n")

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	changed := make(chan struct{}, 1)
	store.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	writeConfig(t, tmpDir, "[pipeline]\nhistory_limit = 9\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("config reload not observed")
	}
	assert.Equal(t, 9, store.GetInt("pipeline.history_limit"))
}

func TestConfigStore_WatchIgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	changed := make(chan struct{}, 1)
	store.OnChange(func() { changed <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0600))

	select {
	case <-changed:
		t.Fatal("unexpected reload")
	case <-time.After(300 * time.Millisecond):
	}
}
