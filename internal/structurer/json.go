package structurer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseJSONResponse unmarshals a model response that should be a JSON
// object but may arrive wrapped in markdown code fences or surrounded by
// prose. Falls back to the first balanced JSON object in the text.
func parseJSONResponse(s string, v interface{}) error {
	s = stripCodeFences(s)
	if err := json.Unmarshal([]byte(s), v); err != nil {
		if obj := firstJSONObject(s); obj != "" {
			if err2 := json.Unmarshal([]byte(obj), v); err2 != nil {
				return fmt.Errorf("response is not valid JSON: %w", err2)
			}
			return nil
		}
		return fmt.Errorf("no JSON object found in response: %w", err)
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// firstJSONObject scans for the first balanced {...} span, skipping braces
// inside JSON strings.
func firstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
