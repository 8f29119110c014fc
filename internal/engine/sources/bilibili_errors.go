package sources

import (
	"errors"
	"fmt"
)

// Error taxonomy for the Bilibili adapter. The bili_summary tool boundary
// maps each class to a plain-language sentence; inside the package these are
// ordinary wrapped errors.

// ErrUpstreamShape marks a response that decoded but was missing fields the
// adapter needs (owner mid, pages, model_result).
var ErrUpstreamShape = errors.New("unexpected bilibili response shape")

// InvalidIDError — the input failed the av-id grammar before any network I/O.
type InvalidIDError struct {
	Input string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%q is not a valid av-format video id; resolve BV ids or b23.tv short links with the bili_resolve_id tool first", e.Input)
}

// PageRangeError — the requested part number does not exist.
// Pages < 1 means the page argument itself was not a positive integer.
type PageRangeError struct {
	Page  int
	Pages int
}

func (e *PageRangeError) Error() string {
	if e.Pages < 1 {
		return fmt.Sprintf("page %d is not a valid part number; parts are numbered from 1", e.Page)
	}
	return fmt.Sprintf("page %d is out of range: the video has %d part(s)", e.Page, e.Pages)
}

// APIError — Bilibili answered HTTP 200 with a non-zero business code.
// The platform signals most failures this way instead of HTTP status codes.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bilibili api code %d: %s", e.Code, e.Message)
}
