package sources

import (
	"errors"
	"testing"
)

func TestNormalizeAvid(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}{
		{name: "bare digits", in: "170001", want: 170001},
		{name: "av prefix", in: "av170001", want: 170001},
		{name: "prefix and bare agree", in: "av2", want: 2},
		{name: "surrounding whitespace", in: "  av42  ", want: 42},
		{name: "uppercase prefix rejected", in: "AV170001", wantErr: true},
		{name: "bv id rejected", in: "BV1xx411c7mD", wantErr: true},
		{name: "prefix without digits", in: "av", wantErr: true},
		{name: "mixed garbage", in: "av12x3", wantErr: true},
		{name: "url rejected", in: "https://b23.tv/abcdef", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "decimal rejected", in: "12.5", wantErr: true},
		{name: "negative rejected", in: "-5", wantErr: true},
		{name: "zero rejected", in: "av0", wantErr: true},
		{name: "overflow rejected", in: "99999999999999999999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAvid(tt.in)
			if tt.wantErr {
				var idErr *InvalidIDError
				if err == nil || !errors.As(err, &idErr) {
					t.Fatalf("NormalizeAvid(%q) err = %v, want InvalidIDError", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAvid(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAvid(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsBvid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"BV1xx411c7mD", true},
		{"BV1fK4y1t7hj", true},
		{"bv1xx411c7mD", false}, // lowercase prefix
		{"BV1xx411c7m", false},  // too short
		{"BV1xx411c7mDD", false},
		{"BV1xx4O1c7mD", false}, // O excluded from the alphabet
		{"av170001", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBvid(tt.in); got != tt.want {
			t.Errorf("IsBvid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExtractVideoToken(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/video/BV1xx411c7mD", "BV1xx411c7mD"},
		{"/video/BV1xx411c7mD/", "BV1xx411c7mD"},
		{"/video/av170001", "av170001"},
		{"/video/av170001/?p=2", "av170001"},
		{"/festival/2024", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := extractVideoToken(tt.path); got != tt.want {
			t.Errorf("extractVideoToken(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
