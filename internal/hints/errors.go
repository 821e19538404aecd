package hints

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the hint backend returned a rate limit (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("hint rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the hint backend is down or unreachable.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hint provider unavailable: %v", e.Err)
	}
	return "hint provider unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
