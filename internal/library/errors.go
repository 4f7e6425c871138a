package library

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/at-ishikawa/lunaword/internal/inference"
)

// Reason tells why a word card could not be generated.
type Reason string

const (
	ReasonNotFound       Reason = "not_found"
	ReasonQuotaExhausted Reason = "quota_exhausted"
	ReasonTimeout        Reason = "timeout"
	ReasonMalformed      Reason = "malformed"
	ReasonUnavailable    Reason = "unavailable"
)

// GenerationError is returned by Fetch when no card could be produced.
// It is not fatal: callers show a notice and may try again.
type GenerationError struct {
	Query  string
	Reason Reason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generate %q: %s", e.Query, e.Reason)
	}
	return fmt.Sprintf("generate %q: %s: %v", e.Query, e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Degraded reports whether the failure comes from the generator rather than from the word itself.
func (e *GenerationError) Degraded() bool {
	return e.Reason != ReasonNotFound
}

// AsGenerationError returns the GenerationError in err's chain, if any.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}

func newGenerationError(query string, err error) *GenerationError {
	return &GenerationError{
		Query:  query,
		Reason: classify(err),
		Err:    err,
	}
}

func classify(err error) Reason {
	var netErr net.Error
	switch {
	case errors.Is(err, inference.ErrInsufficientQuota):
		return ReasonQuotaExhausted
	case errors.Is(err, inference.ErrUnknownWord):
		return ReasonNotFound
	case errors.Is(err, inference.ErrMalformedResponse):
		return ReasonMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ReasonTimeout
	default:
		return ReasonUnavailable
	}
}
