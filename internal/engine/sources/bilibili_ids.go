package sources

import (
	"regexp"
	"strconv"
	"strings"
)

// Video identifier handling.
//
// The summary tool accepts only numeric av-format ids ("12345" or "av12345").
// BV ids and b23.tv short links must be resolved first via ResolveVideoID —
// that keeps the summary path free of redirect-following surprises.

var (
	avidRE = regexp.MustCompile(`^(?:av)?(\d+)$`)
	bvidRE = regexp.MustCompile(`^BV[1-9A-HJ-NP-Za-km-z]{10}$`)

	// Matches the av/BV token in a bilibili.com/video/... path segment.
	videoPathRE = regexp.MustCompile(`/video/(BV[1-9A-HJ-NP-Za-km-z]{10}|av\d+)`)
)

// NormalizeAvid strips an optional "av" prefix and parses the numeric core.
// Returns an *InvalidIDError for anything that is not a bare number or
// "av"+digits. Performs no I/O.
func NormalizeAvid(s string) (int64, error) {
	m := avidRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, &InvalidIDError{Input: s}
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, &InvalidIDError{Input: s}
	}
	return id, nil
}

// IsBvid reports whether s looks like a BV-format video id.
func IsBvid(s string) bool {
	return bvidRE.MatchString(s)
}

// extractVideoToken pulls a BV or av token out of a bilibili video URL path.
// Returns "" if the path carries neither.
func extractVideoToken(path string) string {
	m := videoPathRE.FindStringSubmatch(path)
	if m == nil {
		return ""
	}
	return m[1]
}
