package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"wanderplan/pkg/utils"
)

var requiredTopLevel = []string{"destination", "start_date", "end_date", "days"}

// ParseCandidate turns free-form model output into a RawCandidate. It strips code fences,
// tries a direct decode and then falls back to the first balanced {...} in the text.
func ParseCandidate(text string) (RawCandidate, error) {
	cleaned := stripCodeFences(text)
	if cleaned == "" {
		return nil, utils.NewBadGatewayError("model returned empty content", nil)
	}

	var out RawCandidate
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil || out == nil {
		obj, ok := ExtractFirstObject(cleaned)
		if !ok {
			return nil, utils.NewBadGatewayError("model did not return valid JSON", err)
		}
		out = nil
		if err := json.Unmarshal([]byte(obj), &out); err != nil || out == nil {
			return nil, utils.NewBadGatewayError("model did not return valid JSON", err)
		}
	}

	var missing []string
	for _, key := range requiredTopLevel {
		if _, ok := out[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, utils.NewBadGatewayError(fmt.Sprintf("model output missing required fields: %s", strings.Join(missing, ", ")), nil)
	}
	return out, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractFirstObject returns the first balanced brace-delimited object in s.
// Braces inside JSON strings (including escaped quotes) are ignored.
func ExtractFirstObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := findMatchingBrace(s, start)
	if end == -1 {
		return "", false
	}
	return s[start : end+1], true
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// tagCorrelationID prefixes the first segment's notes with the upstream response id.
func tagCorrelationID(c RawCandidate, id string) {
	if id == "" {
		return
	}
	days, ok := c["days"].([]interface{})
	if !ok || len(days) == 0 {
		return
	}
	day, ok := days[0].(map[string]interface{})
	if !ok {
		return
	}
	segments, ok := day["segments"].([]interface{})
	if !ok || len(segments) == 0 {
		return
	}
	seg, ok := segments[0].(map[string]interface{})
	if !ok {
		return
	}
	notes, _ := seg["notes"].(string)
	seg["notes"] = fmt.Sprintf("[ref:%s] %s", id, notes)
}
