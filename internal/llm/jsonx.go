package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var reCodeFence = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// stripFence unwraps the first fenced code block, if any. Models wrap JSON in
// fences regardless of instructions often enough that this is the first step
// of every reply parse.
func stripFence(s string) string {
	if m := reCodeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// FirstJSONObject returns the first JSON object embedded in reply text,
// tolerant of surrounding prose and code fences.
func FirstJSONObject(s string) (string, bool) {
	return firstJSON(stripFence(s), '{', '}')
}

// FirstJSONArray returns the first JSON array embedded in reply text.
func FirstJSONArray(s string) (string, bool) {
	return firstJSON(stripFence(s), '[', ']')
}

func firstJSON(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end <= start {
		return "", false
	}
	candidate := s[start : end+1]
	if !json.Valid([]byte(candidate)) {
		// Trailing prose after the closing bracket; walk back to the first
		// position that yields valid JSON.
		for end = strings.LastIndexByte(candidate[:len(candidate)-1], close); end > 0; end = strings.LastIndexByte(candidate[:end], close) {
			if json.Valid([]byte(candidate[:end+1])) {
				return candidate[:end+1], true
			}
		}
		return "", false
	}
	return candidate, true
}

// DecodeObject recovers and unmarshals the first JSON object in reply text.
func DecodeObject(reply string, v any) bool {
	raw, ok := FirstJSONObject(reply)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

// DecodeArray recovers and unmarshals the first JSON array in reply text.
func DecodeArray(reply string, v any) bool {
	raw, ok := FirstJSONArray(reply)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}
