package toolutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_bili/internal/engine/sources"
)

func TestErrText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string // substring
	}{
		{
			name: "invalid id points at the resolver tool",
			err:  &sources.InvalidIDError{Input: "BV1xx411c7mD"},
			want: "bili_resolve_id",
		},
		{
			name: "page out of range",
			err:  &sources.PageRangeError{Page: 5, Pages: 2},
			want: "out of range",
		},
		{
			name: "non-positive page",
			err:  &sources.PageRangeError{Page: 0},
			want: "numbered from 1",
		},
		{
			name: "api refusal carries the upstream code",
			err:  fmt.Errorf("video info: %w", &sources.APIError{Code: -404, Message: "not found"}),
			want: "bilibili api code -404",
		},
		{
			name: "deadline exceeded reads as timeout",
			err:  fmt.Errorf("conclusion: %w", context.DeadlineExceeded),
			want: "timed out",
		},
		{
			name: "shape error",
			err:  fmt.Errorf("%w: missing model_result", sources.ErrUpstreamShape),
			want: "unexpected response shape",
		},
		{
			name: "anything else still produces a sentence",
			err:  errors.New("connection reset"),
			want: "Bilibili request failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrText(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ErrText() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
