package utils

import (
	"errors"
	"testing"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	r := &RetryConfig{MaxAttempts: 3, Logger: NewLogger()}
	err := r.Do("ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryWrapsLastError(t *testing.T) {
	boom := errors.New("boom")
	r := &RetryConfig{MaxAttempts: 2}
	err := r.Do("ping", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	r := &RetryConfig{}
	_ = r.Do("ping", func() error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}
