package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("```json\\n?|```")

// ExtractJSONArray strips markdown fences and returns the text between the first
// '[' and the last ']' when it is valid JSON.
func ExtractJSONArray(text string) (json.RawMessage, bool) {
	clean := strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))

	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start < 0 || end <= start {
		return nil, false
	}

	raw := json.RawMessage(clean[start : end+1])
	if !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// DecodeFirstArray decodes the first candidate that contains a JSON array into v.
// Candidates are tried in order; empty ones are skipped.
func DecodeFirstArray(candidates []string, v any) bool {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		raw, ok := ExtractJSONArray(c)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, v); err == nil {
			return true
		}
	}
	return false
}
