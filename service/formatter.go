package service

import (
	"regexp"
	"strings"

	"flightrules-backend/models"
)

// confidenceTagPattern matches a whole line carrying the machine-readable
// confidence marker, whatever the value. Anchored to line start so a
// mid-sentence mention is left alone.
var confidenceTagPattern = regexp.MustCompile(`(?im)^[ \t]*Confidence tag:[ \t]*([^\n]*?)[ \t]*\.?[ \t]*$`)

// ExtractConfidenceTag reads the confidence marker from raw generator output
// and removes every marker line from the visible answer, so the returned text
// never carries a "Confidence tag:" line even when the model echoes the
// format instructions mid-reply. The tag value comes from the last marker
// line; only the three recognised literals map to a tag, anything else is
// Unknown. With no marker lines at all the text is returned unchanged apart
// from surrounding whitespace.
func ExtractConfidenceTag(raw string) (string, models.ConfidenceTag) {
	matches := confidenceTagPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(raw), models.ConfidenceUnknown
	}

	last := matches[len(matches)-1]
	value := strings.ToLower(strings.TrimSpace(raw[last[2]:last[3]]))

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		b.WriteString(raw[prev:m[0]])
		prev = m[1]
	}
	b.WriteString(raw[prev:])
	answer := strings.TrimSpace(b.String())

	switch value {
	case "high":
		return answer, models.ConfidenceHigh
	case "medium":
		return answer, models.ConfidenceMedium
	case "low":
		return answer, models.ConfidenceLow
	}
	return answer, models.ConfidenceUnknown
}
