package sources

import (
	"fmt"
	"strings"
)

// Fixed texts for the result-type branches that carry no summary.
const (
	// The restriction comes from Bilibili, not from this tool — say so.
	conclusionUnavailableMsg = "Bilibili has not generated an AI summary for this video. " +
		"This restriction comes from the platform, not from this tool."

	conclusionUnknownMsg = "Bilibili returned an unknown conclusion result type; " +
		"the tool cannot render it."
)

// FallbackText reports whether text is one of the fixed fallback messages
// rather than a real summary. Fallbacks reflect a momentary upstream state
// (a summary may appear later), so callers should not cache them.
func FallbackText(text string) bool {
	return text == conclusionUnavailableMsg || text == conclusionUnknownMsg
}

// formatConclusion renders a model_result into the text a caller sees.
// Type 1 passes the summary through verbatim; type 2 appends the outline,
// preserving section and sub-point order exactly as received.
func formatConclusion(mr *conclusionModelResult) string {
	switch mr.ResultType {
	case conclusionNone:
		return conclusionUnavailableMsg
	case conclusionSummary:
		return mr.Summary
	case conclusionOutline:
		return formatOutline(mr)
	default:
		return conclusionUnknownMsg
	}
}

func formatOutline(mr *conclusionModelResult) string {
	var sb strings.Builder
	sb.WriteString(mr.Summary)
	for _, sec := range mr.Outline {
		fmt.Fprintf(&sb, "\n\n## [%s] %s", formatTimestamp(sec.Timestamp), sec.Title)
		for _, p := range sec.PartOutline {
			fmt.Fprintf(&sb, "\n- [%s] %s", formatTimestamp(p.Timestamp), p.Content)
		}
	}
	return sb.String()
}

// formatTimestamp renders seconds as m:ss, or h:mm:ss past the hour mark.
func formatTimestamp(sec int) string {
	if sec < 0 {
		sec = 0
	}
	h, m, s := sec/3600, sec/60%60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
