// Package extract recovers a JSON record from free-text model output.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// strategy returns the candidate substring to parse, or false when it does not apply
type strategy func(text string) (string, bool)

var strategies = []strategy{
	whole,
	fenced,
	outerBraces,
}

// Extract tries each strategy in order and returns the first successfully
// parsed value. Not finding anything is a normal outcome, reported as false.
func Extract(text string) (any, bool) {
	for _, s := range strategies {
		candidate, ok := s(text)
		if !ok {
			continue
		}
		if v, ok := parse(candidate); ok {
			return v, true
		}
	}
	return nil, false
}

func whole(text string) (string, bool) {
	return text, true
}

func fenced(text string) (string, bool) {
	m := fenceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// outerBraces selects from the first '{' to the last '}' so nested objects
// are kept whole.
func outerBraces(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// parse is strict: no trailing-comma or quote repair. Empty values (null,
// false, 0, "", {} and []) carry no record and are treated as nothing found.
func parse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	if empty(v) {
		return nil, false
	}
	return v, true
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
