// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSONBlock strips markdown fences, conversational preamble and trailing
// chatter from a model response, returning the first JSON object or array.
// When no balanced JSON value is found the fence-stripped text is returned.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}

	var value string
	if text[start] == '{' {
		value = extractJSONObject(text[start:])
	} else {
		value = extractJSONArray(text[start:])
	}
	if value == "" {
		return text
	}
	return value
}

// stripCodeFence removes a surrounding ``` block and its language tag.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		// A short first line without spaces or JSON is a language tag.
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

// extractBalanced returns the prefix of s that forms one balanced value
// opened by open, ignoring delimiters inside string literals.
func extractBalanced(s string, open, closing byte) string {
	if s == "" || s[0] != open {
		return ""
	}

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
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// ParseStringList decodes a model response that should be a JSON array of strings.
// Blank entries are dropped.
func ParseStringList(text string) ([]string, error) {
	cleaned := CleanJSONBlock(text)

	var raw []string
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse string list: %w (content: %s)", err, cleaned)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
