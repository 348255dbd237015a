package feedback

import (
	"fmt"
	"strings"
)

// Normalize flattens a record into a single text blob, in document order:
// NPS annotation, root text, then each question response. A response's
// voice transcription takes precedence over its structured value.
// Returns ok=false when the flattened text is empty; such records carry
// nothing analyzable and must be excluded before counting total feedback.
func Normalize(rec Record) (NormalizedItem, bool) {
	var parts []string

	if rec.NPSScore != nil {
		parts = append(parts, fmt.Sprintf("NPS Score: %d/10.", *rec.NPSScore))
	}
	if text := strings.TrimSpace(rec.RootText); text != "" {
		parts = append(parts, text)
	}
	for _, resp := range rec.Responses {
		if t := strings.TrimSpace(resp.VoiceTranscription); t != "" {
			parts = append(parts, t)
			continue
		}
		if v := strings.TrimSpace(resp.Value); v != "" {
			parts = append(parts, v)
		}
	}

	text := strings.Join(parts, " ")
	if text == "" {
		return NormalizedItem{}, false
	}
	return NormalizedItem{ID: rec.ID, Text: text}, true
}

// NormalizeAll flattens records and drops the ones with no analyzable text.
func NormalizeAll(records []Record) []NormalizedItem {
	out := make([]NormalizedItem, 0, len(records))
	for _, rec := range records {
		if item, ok := Normalize(rec); ok {
			out = append(out, item)
		}
	}
	return out
}
