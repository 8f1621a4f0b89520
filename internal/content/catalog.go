package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema is the JSON Schema every lesson catalog must satisfy
// before it is handed to the graph builder or a session.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"lessons": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":             map[string]any{"type": "string", "minLength": 1},
					"book":           map[string]any{"type": "integer", "minimum": 1},
					"lesson":         map[string]any{"type": "integer", "minimum": 1},
					"vocabulary":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"grammar_points": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"exercises": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "minLength": 1},
								"kind": map[string]any{"type": "string", "enum": []any{"translation", "vocabulary", "listening", "fill-blank", "challenge"}},
								"item_ids": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"prompt":  map[string]any{"type": "string"},
								"answer":  map[string]any{"type": "string"},
								"choices": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							},
							"required":             []any{"id", "kind", "item_ids", "answer"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "book", "lesson"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"lessons"},
	"additionalProperties": false,
}

// Catalog is the on-disk lesson catalog format.
type Catalog struct {
	Lessons []Lesson `json:"lessons"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, compileErr
}

// ParseCatalog parses and validates raw catalog JSON. Validation failures
// and malformed JSON propagate to the caller; nothing is swallowed here.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	// Stable ordering regardless of authoring order.
	sort.SliceStable(cat.Lessons, func(i, j int) bool {
		if cat.Lessons[i].Book != cat.Lessons[j].Book {
			return cat.Lessons[i].Book < cat.Lessons[j].Book
		}
		return cat.Lessons[i].Lesson < cat.Lessons[j].Lesson
	})
	return &cat, nil
}

// LoadCatalog reads and validates a lesson catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// SaveCatalog writes a catalog as indented JSON.
func SaveCatalog(path string, cat *Catalog) error {
	raw, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
