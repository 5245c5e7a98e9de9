package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowWithinBurst(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("user-1|UPLOAD", rule)
		if !allowed {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	allowed, retryAfter := limiter.Allow("user-1|UPLOAD", rule)
	if allowed {
		t.Fatal("third request should be throttled")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatal("first request should pass")
	}
	if allowed, _ := limiter.Allow("k", rule); allowed {
		t.Fatal("second immediate request should be throttled")
	}

	now = now.Add(1500 * time.Millisecond)
	if allowed, _ := limiter.Allow("k", rule); !allowed {
		t.Fatal("request after refill window should pass")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("user-a|CHAT", rule); !allowed {
		t.Fatal("user-a should pass")
	}
	if allowed, _ := limiter.Allow("user-b|CHAT", rule); !allowed {
		t.Fatal("user-b should not share user-a's bucket")
	}
}
