package services

import (
	"encoding/json"
	"strings"
)

const (
	JSONSeparator   = "---JSON_SEPARATOR---"
	FallbackSummary = "Sorry, I encountered an issue."
)

type SplitResult struct {
	Summary string
	JSON    json.RawMessage
}

// SplitResponse cuts a finished reply once on JSONSeparator. The JSON half is reduced to the span
// from its first '{' to its last '}' so fences and stray prose around the object are ignored.
func SplitResponse(text string) SplitResult {
	summary, rest, found := strings.Cut(text, JSONSeparator)
	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = FallbackSummary
	}
	res := SplitResult{Summary: summary}
	if !found {
		return res
	}
	res.JSON = extractObject(rest)
	return res
}

// LiveSummary is the summary half of a possibly incomplete reply. It never falls back.
func LiveSummary(text string) string {
	summary, _, _ := strings.Cut(text, JSONSeparator)
	return strings.TrimSpace(summary)
}

func extractObject(s string) json.RawMessage {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil
	}
	candidate := s[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil
	}
	return json.RawMessage(candidate)
}
