package prompts

import (
	"strings"
	"testing"

	"github.com/franckalain/healthanalyzer/internal/models"
)

func TestFor(t *testing.T) {
	if For(models.CategoryFood) != Food {
		t.Error("food category should select the food instruction")
	}
	if For(models.CategoryMedical) != Medical {
		t.Error("medical category should select the medical instruction")
	}
}

func TestInstructionsDescribeSchema(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains []string
	}{
		{"food", Food, []string{
			"expert nutritionist",
			`"nutritions"`, `"serving_size"`, `"serving_unit"`,
			`{"status": false, "message": "No food items detected in image", "data": []}`,
			"Return ONLY the JSON",
		}},
		{"medical", Medical, []string{
			`"patient_details"`, `"diagnostic_tests"`, `"reference_range"`, `"doctor_notes"`,
			`{"status": false, "message": "No valid medical report detected in image", "data": {}}`,
			"Return ONLY the JSON",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				if !strings.Contains(tt.text, s) {
					t.Errorf("instruction missing %q", s)
				}
			}
		})
	}
}
