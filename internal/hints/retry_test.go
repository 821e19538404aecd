package hints

import (
	"context"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Hint: &Hint{Text: "think about the slope"}},
	)
	p := WithRetry(mock, fastRetryConfig())

	hint, err := p.Hint(context.Background(), Request{Question: "q"})
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if hint.Text != "think about the slope" {
		t.Errorf("Text = %q", hint.Text)
	}
	if mock.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", mock.CallCount())
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
		MockResponse{Err: &ErrUnavailable{}},
	)
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Hint(context.Background(), Request{}); err == nil {
		t.Fatal("Hint should fail after exhausting attempts")
	}
	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock := NewMockProvider(MockResponse{Err: ctx.Err()})
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Hint(ctx, Request{}); err == nil {
		t.Fatal("Hint should surface the context error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("CallCount = %d, want 1 (no retry on cancellation)", mock.CallCount())
	}
}
