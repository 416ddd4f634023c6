package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  RateLimitConfig{Max: 3, Window: time.Minute},
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("request 4 allowed, want denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  RateLimitConfig{Max: 1, Window: time.Minute},
	}

	if !rl.Allow("ip:1.1.1.1") {
		t.Fatal("first key denied")
	}
	if rl.Allow("ip:1.1.1.1") {
		t.Error("first key not limited")
	}
	if !rl.Allow("ip:2.2.2.2") {
		t.Error("second key denied, want independent window")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  RateLimitConfig{Max: 1, Window: 10 * time.Millisecond},
	}

	if !rl.Allow("ip:1.2.3.4") {
		t.Fatal("first request denied")
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Fatal("second request allowed within window")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("request denied after window expired")
	}
}
