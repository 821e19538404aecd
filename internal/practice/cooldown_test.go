package practice

import (
	"testing"
	"time"

	"github.com/arjunv/praktis/internal/api"
)

func TestCooldownUntilResetHeaderWins(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	reset := now.Add(10 * time.Second)
	rl := &api.RateLimitError{ResetAt: reset, RetryAfter: 3 * time.Second}

	until := CooldownUntil(now, rl)
	if got, want := until, reset.Add(CooldownMargin); !got.Equal(want) {
		t.Errorf("CooldownUntil = %v, want %v", got, want)
	}
	if until.Before(reset.Add(1500 * time.Millisecond)) {
		t.Error("cooldown must include at least 1.5s margin past the reset")
	}
}

func TestCooldownUntilRetryAfterFallback(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	rl := &api.RateLimitError{RetryAfter: 7 * time.Second}

	until := CooldownUntil(now, rl)
	if want := now.Add(7*time.Second + CooldownMargin); !until.Equal(want) {
		t.Errorf("CooldownUntil = %v, want %v", until, want)
	}
}

func TestCooldownUntilDefaultWhenHeadersAbsent(t *testing.T) {
	now := time.Unix(1_000_000, 0)

	until := CooldownUntil(now, &api.RateLimitError{})
	if want := now.Add(DefaultCooldown + CooldownMargin); !until.Equal(want) {
		t.Errorf("CooldownUntil = %v, want %v", until, want)
	}
}

func TestCooldownRemainingClampsAtZero(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	if got := CooldownRemaining(now, now.Add(-time.Second)); got != 0 {
		t.Errorf("CooldownRemaining past expiry = %v, want 0", got)
	}
	if got := CooldownRemaining(now, now.Add(2*time.Second)); got != 2*time.Second {
		t.Errorf("CooldownRemaining = %v, want 2s", got)
	}
}
