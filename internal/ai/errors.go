package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Cause categorizes an AI service failure. Transient causes are retried
// with backoff, the others are surfaced immediately.
type Cause string

const (
	CauseTimeout           Cause = "timeout"
	CauseRateLimit         Cause = "rate_limit"
	CauseAuthFailure       Cause = "auth_failure"
	CauseMalformedResponse Cause = "malformed_response"
	CauseNetwork           Cause = "network"
)

// ServiceError attributes a failure to a provider and classifies it.
type ServiceError struct {
	Provider string
	Cause    Cause
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Cause, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient.
func (e *ServiceError) Retryable() bool {
	switch e.Cause {
	case CauseTimeout, CauseRateLimit, CauseNetwork:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether err is a transient ServiceError. Errors of
// unknown shape are not retried.
func IsRetryable(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Retryable()
	}
	return false
}

// causeFromStatus maps an HTTP status code from a provider API to a Cause.
func causeFromStatus(code int) Cause {
	switch {
	case code == 401 || code == 403:
		return CauseAuthFailure
	case code == 429:
		return CauseRateLimit
	case code == 408:
		return CauseTimeout
	case code >= 500:
		return CauseNetwork
	default:
		return CauseMalformedResponse
	}
}

// wrapTransport classifies transport-level failures (timeouts, DNS,
// connection resets) that carry no HTTP status.
func wrapTransport(provider string, err error) *ServiceError {
	cause := CauseNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		cause = CauseTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		cause = CauseTimeout
	}
	return &ServiceError{Provider: provider, Cause: cause, Err: err}
}

func malformed(provider, detail string) *ServiceError {
	return &ServiceError{Provider: provider, Cause: CauseMalformedResponse, Err: errors.New(detail)}
}
