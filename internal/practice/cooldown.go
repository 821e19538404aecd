package practice

import (
	"time"

	"github.com/arjunv/praktis/internal/api"
)

const (
	// CooldownMargin pads every computed cooldown so the next attempt
	// cannot land exactly on the rate-limit boundary.
	CooldownMargin = 1500 * time.Millisecond

	// DefaultCooldown applies when a 429 carries neither a reset
	// timestamp nor a retry delay.
	DefaultCooldown = 10 * time.Second

	// CooldownTick is the granularity of the countdown timer.
	CooldownTick = 500 * time.Millisecond
)

// CooldownUntil computes when submissions unlock after a rate limit.
// The server's reset timestamp wins over a relative retry delay.
func CooldownUntil(now time.Time, rl *api.RateLimitError) time.Time {
	switch {
	case rl != nil && !rl.ResetAt.IsZero():
		return rl.ResetAt.Add(CooldownMargin)
	case rl != nil && rl.RetryAfter > 0:
		return now.Add(rl.RetryAfter + CooldownMargin)
	default:
		return now.Add(DefaultCooldown + CooldownMargin)
	}
}

// CooldownRemaining returns the time left before submissions unlock,
// clamped at zero.
func CooldownRemaining(now, until time.Time) time.Duration {
	if d := until.Sub(now); d > 0 {
		return d
	}
	return 0
}
