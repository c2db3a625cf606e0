package models

import (
	"encoding/json"
	"fmt"
)

// ParseErrorMessage is returned when no structured record could be recovered
const ParseErrorMessage = "Error parsing AI response"

// ErrorResult is returned in place of a Food or Medical result when the
// model answer could not be turned into a record.
type ErrorResult struct {
	Status    bool           `json:"status"`
	Message   string         `json:"message"`
	Data      any            `json:"data"`
	DebugInfo map[string]any `json:"debug_info,omitempty"`
}

// NewErrorResult builds an ErrorResult whose empty data matches the category shape
func NewErrorResult(category Category, message string) *ErrorResult {
	var data any = []any{}
	if category == CategoryMedical {
		data = map[string]any{}
	}
	return &ErrorResult{
		Status:  false,
		Message: message,
		Data:    data,
	}
}

// Summary is the condensed outcome of one analysis
type Summary struct {
	Status    bool
	Message   string
	ItemCount int
}

// Summarize reads status, message and the number of detected items (food
// items or diagnostic tests) out of a record. Records that do not follow the
// expected shape still yield whatever could be read.
func Summarize(category Category, record any) (Summary, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return Summary{}, fmt.Errorf("encode record: %w", err)
	}

	var envelope struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Summary{}, fmt.Errorf("decode record: %w", err)
	}

	s := Summary{Status: envelope.Status, Message: envelope.Message}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return s, nil
	}

	// Items are counted without decoding them so that loosely typed model
	// output still yields a count.
	switch category {
	case CategoryFood:
		var items []json.RawMessage
		if err := json.Unmarshal(envelope.Data, &items); err != nil {
			return s, fmt.Errorf("decode food data: %w", err)
		}
		s.ItemCount = len(items)
	case CategoryMedical:
		var report struct {
			DiagnosticTests []json.RawMessage `json:"diagnostic_tests"`
		}
		if err := json.Unmarshal(envelope.Data, &report); err != nil {
			return s, fmt.Errorf("decode medical data: %w", err)
		}
		s.ItemCount = len(report.DiagnosticTests)
	}
	return s, nil
}
