package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("imagen") {
		t.Error("First call should be allowed")
	}
	if !limiter.Allow("imagen") {
		t.Error("Second call should be allowed within burst")
	}
	if limiter.Allow("imagen") {
		t.Error("Third call should be rate limited")
	}
}

func TestLimiter_ProvidersAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("imagen") {
		t.Error("imagen should be allowed")
	}
	if !limiter.Allow("openai") {
		t.Error("openai should not share imagen's bucket")
	}
}

func TestLimiter_SetProviderRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetProviderRate("imagen", 100, 10)

	for i := 0; i < 10; i++ {
		if !limiter.Allow("imagen") {
			t.Fatalf("Call %d should be allowed with burst 10", i)
		}
	}
}

func TestLimiter_WaitWithDelayHonorsContext(t *testing.T) {
	limiter := NewLimiter(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.WaitWithDelay(ctx, "imagen", time.Second)
	if err == nil {
		t.Error("Expected context deadline error")
	}
}

func TestLimiter_WaitWithDelaySleeps(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "imagen", 30*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected at least 30ms delay, got %v", elapsed)
	}
}
