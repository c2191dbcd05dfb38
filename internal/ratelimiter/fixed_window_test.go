package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestFixedWindowLimitsSequentialRequests(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if allow, _ := rl.Allow("10.0.0.1"); !allow {
			t.Fatalf("request %d within the limit must be allowed", i+1)
		}
	}

	allow, retryAfter := rl.Allow("10.0.0.1")
	if allow {
		t.Error("request over the limit must be denied")
	}
	if retryAfter != time.Minute {
		t.Errorf("retry-after = %v, want the window %v", retryAfter, time.Minute)
	}

	// a different client has its own window
	if allow, _ := rl.Allow("10.0.0.2"); !allow {
		t.Error("other clients must not share the window")
	}
}

func TestFixedWindowNeverOvershootsUnderConcurrency(t *testing.T) {
	const limit = 5
	rl := NewFixedWindowLimiter(limit, time.Minute)

	var wg sync.WaitGroup
	results := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allow, _ := rl.Allow("10.0.0.1")
			results <- allow
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for allow := range results {
		if allow {
			allowed++
		}
	}
	if allowed != limit {
		t.Errorf("allowed %d concurrent requests, want exactly %d", allowed, limit)
	}
}
