package api

import (
	"fmt"
	"time"
)

// RateLimitError indicates the service answered 429. ResetAt is taken
// from the X-RateLimit-Reset header (epoch seconds) when present and
// takes precedence over RetryAfter (Retry-After header, delta seconds).
// Either may be zero when the server omitted the header.
type RateLimitError struct {
	ResetAt    time.Time
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if !e.ResetAt.IsZero() {
		return fmt.Sprintf("rate limited until %s", e.ResetAt.Format(time.RFC3339))
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s)", e.RetryAfter)
	}
	return "rate limited"
}

// SecurityError indicates a 403 with a recognized security-failure code
// (stale or missing anti-forgery token). Terminal for the session; the
// only recovery is a fresh bootstrap.
type SecurityError struct {
	Code string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security rejection: %s", e.Code)
}

// StatusError covers any other non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// DecodeError indicates a malformed or contract-violating response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
