package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowDrainsBurst(t *testing.T) {
	tb := NewTokenBucket(3, 1)
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("call %d should be within the burst", i+1)
		}
	}
	if tb.Allow() {
		t.Error("bucket should be empty after the burst")
	}
	if got := tb.Remaining(); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	if !tb.Allow() {
		t.Fatal("first token should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := tb.Wait(ctx); err == nil {
		t.Error("wait on an empty bucket should fail once ctx expires")
	}
}

func TestRefill(t *testing.T) {
	tb := NewTokenBucket(2, 100)
	tb.Allow()
	tb.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tb.Wait(ctx); err != nil {
		t.Fatalf("bucket never refilled: %v", err)
	}
}
