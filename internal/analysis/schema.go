package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/franckalain/healthanalyzer/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaErrorMessage is returned when strict mode rejects an extracted record
const SchemaErrorMessage = "AI response failed schema validation"

func nullable(t string) map[string]any {
	return map[string]any{"type": []any{t, "null"}}
}

// foodSchema mirrors the shape requested by the food instruction
func foodSchema() map[string]any {
	nutrition := map[string]any{
		"type":     "object",
		"required": []any{"name", "value", "unit"},
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"value": map[string]any{"type": "number"},
			"unit":  map[string]any{"type": "string"},
		},
	}
	item := map[string]any{
		"type":     "object",
		"required": []any{"name", "nutritions"},
		"properties": map[string]any{
			"name":         map[string]any{"type": "string"},
			"nutritions":   map[string]any{"type": "array", "items": nutrition},
			"serving_size": map[string]any{"type": "number"},
			"serving_unit": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"status", "message", "data"},
		"properties": map[string]any{
			"status":  map[string]any{"type": "boolean"},
			"message": map[string]any{"type": "string"},
			"data":    map[string]any{"type": "array", "items": item},
		},
	}
}

// medicalSchema mirrors the shape requested by the medical instruction.
// Test result values are left untyped since reports mix numbers and text.
func medicalSchema() map[string]any {
	result := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reference_range": nullable("string"),
			"status":          nullable("string"),
		},
	}
	test := map[string]any{
		"type":     "object",
		"required": []any{"test_name", "results"},
		"properties": map[string]any{
			"test_name":    map[string]any{"type": "string"},
			"results":      map[string]any{"type": "object", "additionalProperties": result},
			"observations": nullable("string"),
		},
	}
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"status", "message", "data"},
		"properties": map[string]any{
			"status":  map[string]any{"type": "boolean"},
			"message": map[string]any{"type": "string"},
			"data": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"patient_details": map[string]any{
						"type": []any{"object", "null"},
						"properties": map[string]any{
							"name":   nullable("string"),
							"age":    nullable("integer"),
							"gender": nullable("string"),
						},
					},
					"diagnostic_tests": map[string]any{"type": "array", "items": test},
					"doctor_notes":     nullable("string"),
				},
			},
		},
	}
}

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// compileSchemas builds one validator per category
func compileSchemas() (map[models.Category]*jsonschema.Schema, error) {
	food, err := compileSchema("food.json", foodSchema())
	if err != nil {
		return nil, fmt.Errorf("food: %w", err)
	}
	medical, err := compileSchema("medical.json", medicalSchema())
	if err != nil {
		return nil, fmt.Errorf("medical: %w", err)
	}
	return map[models.Category]*jsonschema.Schema{
		models.CategoryFood:    food,
		models.CategoryMedical: medical,
	}, nil
}
