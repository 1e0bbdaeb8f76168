package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanResponse strips the markdown code fences models wrap around JSON
// output and falls back to the largest brace-delimited substring when
// the response carries explanatory text around the object.
func CleanResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return cleaned
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	if start >= 0 {
		// Truncated output: no closing brace ever arrived.
		return cleaned[start:]
	}
	return cleaned
}

// ParseObject parses model output into a JSON object, attempting repair
// of common truncation damage before giving up. It never returns a
// partial structure: either the text parses to an object or the error
// is explicit.
func ParseObject(raw string) (map[string]any, error) {
	cleaned := CleanResponse(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil {
		return obj, nil
	}

	repaired := repairTruncated(cleaned)
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, fmt.Errorf("response is not valid JSON after repair: %w", err)
	}
	return obj, nil
}

// repairTruncated closes what a truncated generation left open: an
// unterminated string, a trailing comma, and any unbalanced braces and
// brackets, in that order.
func repairTruncated(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			stack = append(stack, c)
		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	repaired := s
	if escaped {
		// Cut a dangling escape at the very end of the text.
		repaired = repaired[:len(repaired)-1]
	}
	if inString {
		repaired += `"`
	}
	trimmed := strings.TrimRight(repaired, " \t\r\n")
	if strings.HasSuffix(trimmed, ",") {
		repaired = strings.TrimSuffix(trimmed, ",")
	}
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i] {
		case '{':
			repaired += "}"
		case '[':
			repaired += "]"
		}
	}
	return repaired
}
