package extract

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const foodJSON = `{
  "status": true,
  "message": "Successfully analyzed 1 food items",
  "data": [
    {
      "name": "Apple",
      "nutritions": [
        {"name": "Calories", "value": 52, "unit": "kcal"},
        {"name": "Protein", "value": 0.3, "unit": "g"}
      ],
      "serving_size": 100,
      "serving_unit": "g"
    }
  ]
}`

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestExtract(t *testing.T) {
	want := mustDecode(t, foodJSON)

	tests := []struct {
		name string
		text string
	}{
		{"plain json", foodJSON},
		{"fenced with tag", "```json\n" + foodJSON + "\n```"},
		{"fenced without tag", "```\n" + foodJSON + "\n```"},
		{"fenced with prose", "Here is the analysis:\n```json\n" + foodJSON + "\n```\nLet me know if you need more."},
		{"prose around braces", "Sure! " + foodJSON + " Hope this helps."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if !ok {
				t.Fatalf("Extract() found nothing in %q", tt.text)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractStrategyOrder(t *testing.T) {
	fencedText := "```json\n{\"a\": 1}\n```"
	if _, ok := parse(fencedText); ok {
		t.Fatalf("whole-text parse should fail for fenced input")
	}
	candidate, ok := fenced(fencedText)
	if !ok || candidate != `{"a": 1}` {
		t.Fatalf("fenced() = %q, %v", candidate, ok)
	}

	// The fence is tried before brace matching, so a fenced object wins
	// over a different object appearing earlier in prose.
	text := "ignore {\"b\": 2} then\n```json\n{\"a\": 1}\n```"
	got, ok := Extract(text)
	if !ok {
		t.Fatal("Extract() found nothing")
	}
	if diff := cmp.Diff(map[string]any{"a": float64(1)}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNestedBraces(t *testing.T) {
	text := `The report: {"data": {"patient_details": {"name": "Jane"}, "diagnostic_tests": []}, "status": true} end`
	got, ok := Extract(text)
	if !ok {
		t.Fatal("Extract() found nothing")
	}
	want := map[string]any{
		"data": map[string]any{
			"patient_details":  map[string]any{"name": "Jane"},
			"diagnostic_tests": []any{},
		},
		"status": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractNotFound(t *testing.T) {
	for _, text := range []string{
		"Sorry, I cannot process this image.",
		"",
		"null",
		"{}",
		"[]",
		"false",
		"0",
		`""`,
		"```json\n{}\n```",
		"Nothing found: {}",
		`{"status": true, "data": [1, 2,]}`,
		"```json\n{broken\n```",
		"} backwards {",
	} {
		if v, ok := Extract(text); ok {
			t.Errorf("Extract(%q) = %v, want not found", text, v)
		}
	}
}

func TestExtractKeepsNonEmptyScalars(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"true", true},
		{"42", float64(42)},
		{`"note"`, "note"},
		{`[{"name": "Tea"}]`, []any{map[string]any{"name": "Tea"}}},
	}
	for _, tt := range tests {
		got, ok := Extract(tt.text)
		if !ok {
			t.Errorf("Extract(%q) not found", tt.text)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}
