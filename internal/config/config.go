// Package config loads the engine's YAML configuration: graph build
// options, catalog location, and database path override.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/karim/itqan/internal/encompass"
)

// Config is the top-level configuration record.
type Config struct {
	// DBPath overrides the default database location when set.
	DBPath string `yaml:"db_path"`

	// CatalogPath is the lesson catalog consumed by graph builds.
	CatalogPath string `yaml:"catalog_path"`

	Graph GraphConfig `yaml:"graph"`
}

// GraphConfig mirrors the graph builder options in file form.
type GraphConfig struct {
	IncludeLessonEncompassing bool                   `yaml:"include_lesson_encompassing"`
	AdjacentLessonWeight      float64                `yaml:"adjacent_lesson_weight"`
	MinWeight                 float64                `yaml:"min_weight"`
	SameLessonItemWeight      float64                `yaml:"same_lesson_item_weight"`
	CrossBookWeight           float64                `yaml:"cross_book_weight"`
	ManualOverrides           []encompass.ManualEdge `yaml:"manual_overrides"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	opts := encompass.DefaultOptions()
	return Config{
		CatalogPath: "catalog.json",
		Graph: GraphConfig{
			IncludeLessonEncompassing: opts.IncludeLessonEncompassing,
			AdjacentLessonWeight:      opts.AdjacentLessonWeight,
			MinWeight:                 opts.MinWeight,
			SameLessonItemWeight:      opts.SameLessonItemWeight,
			CrossBookWeight:           opts.CrossBookWeight,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// GraphOptions converts the file form into builder options.
func (c Config) GraphOptions() encompass.Options {
	return encompass.Options{
		IncludeLessonEncompassing: c.Graph.IncludeLessonEncompassing,
		AdjacentLessonWeight:      c.Graph.AdjacentLessonWeight,
		MinWeight:                 c.Graph.MinWeight,
		SameLessonItemWeight:      c.Graph.SameLessonItemWeight,
		CrossBookWeight:           c.Graph.CrossBookWeight,
		ManualOverrides:           c.Graph.ManualOverrides,
	}
}
