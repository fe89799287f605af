package places

import (
	"errors"
	"fmt"
)

// Status is the closed set of provider response statuses the client
// distinguishes. Anything else decodes to StatusUnknown and is handled
// as a generic provider error.
type Status int

const (
	StatusUnknown Status = iota
	StatusOK
	StatusZeroResults
	StatusOverQueryLimit
	StatusRequestDenied
)

// ParseStatus decodes a provider status string at the parsing boundary.
func ParseStatus(s string) Status {
	switch s {
	case "OK":
		return StatusOK
	case "ZERO_RESULTS":
		return StatusZeroResults
	case "OVER_QUERY_LIMIT":
		return StatusOverQueryLimit
	case "REQUEST_DENIED":
		return StatusRequestDenied
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusZeroResults:
		return "ZERO_RESULTS"
	case StatusOverQueryLimit:
		return "OVER_QUERY_LIMIT"
	case StatusRequestDenied:
		return "REQUEST_DENIED"
	default:
		return "UNKNOWN"
	}
}

// Configuration and auth failures. Retrying cannot help; they surface
// immediately.
var (
	ErrQuotaExceeded = errors.New("provider quota exceeded")
	ErrRequestDenied = errors.New("provider request denied")
)

// TransientError marks a failure eligible for retry: network errors,
// timeouts, 5xx-equivalent responses, malformed payloads.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ProviderError is any other non-OK provider outcome. Not retried.
type ProviderError struct {
	Status string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s", e.Status)
}

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
