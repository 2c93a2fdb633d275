package llm

import "strings"

// ExtractJSONBlock strips markdown code fences and surrounding prose from an
// LLM response, returning the first JSON object or array found. Models asked
// for JSON still wrap it in ```json fences or lead-in text often enough that
// unmarshalling the raw response is unreliable.
func ExtractJSONBlock(s string) string {
	s = strings.TrimSpace(s)

	// Fenced block takes priority
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		// Skip a language tag such as "json"
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		s = strings.TrimSpace(rest)
	}

	// Trim any prose before the first brace/bracket and after the last
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
	}
	if start < 0 {
		return s
	}

	var closer byte = '}'
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s[start:]
	}
	return s[start : end+1]
}
