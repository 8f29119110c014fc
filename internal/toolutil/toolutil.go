// Package toolutil provides shared helper functions for go_bili MCP tools.
package toolutil

import (
	"context"
	"errors"
	"net"

	"github.com/anatolykoptev/go_bili/internal/engine/sources"
)

// ErrText collapses an adapter error into the plain-language sentence the
// bili_summary boundary hands back to agent callers. Agents consume text,
// not fault objects, so every failure class must land here.
func ErrText(err error) string {
	var invalidID *sources.InvalidIDError
	if errors.As(err, &invalidID) {
		return "Invalid video id: " + invalidID.Error()
	}

	var pageErr *sources.PageRangeError
	if errors.As(err, &pageErr) {
		return "Cannot fetch summary: " + pageErr.Error() + "."
	}

	var apiErr *sources.APIError
	if errors.As(err, &apiErr) {
		return "Bilibili refused the request (" + apiErr.Error() + ")."
	}

	if isTimeout(err) {
		return "The request to Bilibili timed out. The service may be slow or unreachable; try again later."
	}

	if errors.Is(err, sources.ErrUpstreamShape) {
		return "Bilibili answered with an unexpected response shape: " + err.Error()
	}

	return "Bilibili request failed: " + err.Error()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
