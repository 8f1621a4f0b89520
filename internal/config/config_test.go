package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.CatalogPath, cfg.CatalogPath)
	assert.Equal(t, def.Graph.AdjacentLessonWeight, cfg.Graph.AdjacentLessonWeight)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Graph.IncludeLessonEncompassing,
		"lesson encompassing should default on")
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itqan.yaml")
	raw := `
db_path: /tmp/custom.db
catalog_path: lessons/catalog.json
graph:
  include_lesson_encompassing: false
  adjacent_lesson_weight: 0.7
  min_weight: 0.2
  same_lesson_item_weight: 0.4
  cross_book_weight: 0.1
  manual_overrides:
    - from: idafa
      to: mubtada-khabar
      weight: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "lessons/catalog.json", cfg.CatalogPath)

	opts := cfg.GraphOptions()
	assert.False(t, opts.IncludeLessonEncompassing)
	assert.Equal(t, 0.7, opts.AdjacentLessonWeight)
	assert.Equal(t, 0.2, opts.MinWeight)
	require.Len(t, opts.ManualOverrides, 1)
	ov := opts.ManualOverrides[0]
	assert.Equal(t, "idafa", ov.From)
	assert.Equal(t, "mubtada-khabar", ov.To)
	assert.Equal(t, 0.9, ov.Weight)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("graph: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/other.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, Default().Graph.MinWeight, cfg.Graph.MinWeight)
}
