package places

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Status
	}{
		{"OK", StatusOK},
		{"ZERO_RESULTS", StatusZeroResults},
		{"OVER_QUERY_LIMIT", StatusOverQueryLimit},
		{"REQUEST_DENIED", StatusRequestDenied},
		{"INVALID_REQUEST", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient", &TransientError{Err: errors.New("timeout")}, true},
		{"wrapped transient", fmt.Errorf("geocoding: %w", &TransientError{Err: errors.New("timeout")}), true},
		{"provider", &ProviderError{Status: "INVALID_REQUEST"}, false},
		{"quota", ErrQuotaExceeded, false},
		{"denied", ErrRequestDenied, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
