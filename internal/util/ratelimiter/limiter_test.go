package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestKeyed_Allow(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		keys     []string
		delays   []time.Duration // delays before each Allow() call
		want     []bool          // expected Allow() results
	}{
		{
			name:     "first call always allowed",
			interval: 100 * time.Millisecond,
			keys:     []string{"a"},
			delays:   []time.Duration{0},
			want:     []bool{true},
		},
		{
			name:     "same key immediately after is blocked",
			interval: 100 * time.Millisecond,
			keys:     []string{"a", "a"},
			delays:   []time.Duration{0, 0},
			want:     []bool{true, false},
		},
		{
			name:     "different keys are independent",
			interval: 100 * time.Millisecond,
			keys:     []string{"a", "b"},
			delays:   []time.Duration{0, 0},
			want:     []bool{true, true},
		},
		{
			name:     "same key after interval is allowed",
			interval: 50 * time.Millisecond,
			keys:     []string{"a", "a"},
			delays:   []time.Duration{0, 60 * time.Millisecond},
			want:     []bool{true, true},
		},
		{
			name:     "multiple rapid calls on one key",
			interval: 100 * time.Millisecond,
			keys:     []string{"a", "a", "a", "a"},
			delays:   []time.Duration{0, 0, 0, 0},
			want:     []bool{true, false, false, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewKeyed(tt.interval)

			for i, delay := range tt.delays {
				if delay > 0 {
					time.Sleep(delay)
				}
				got, wait := limiter.Allow(tt.keys[i])
				if got != tt.want[i] {
					t.Errorf("call %d: Allow(%q) = %v, want %v", i, tt.keys[i], got, tt.want[i])
				}
				if !got && wait <= 0 {
					t.Errorf("call %d: blocked Allow should report a positive wait, got %v", i, wait)
				}
			}
		})
	}
}

func TestKeyed_Reset(t *testing.T) {
	limiter := NewKeyed(time.Hour)

	if ok, _ := limiter.Allow("a"); !ok {
		t.Fatal("first call should be allowed")
	}
	if ok, _ := limiter.Allow("a"); ok {
		t.Fatal("second call within interval should be blocked")
	}

	limiter.Reset()

	if ok, _ := limiter.Allow("a"); !ok {
		t.Error("call after Reset should be allowed")
	}
}

func TestKeyed_ConcurrentAccess(t *testing.T) {
	limiter := NewKeyed(time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 1 {
		t.Errorf("exactly one concurrent call should be allowed, got %d", allowed)
	}
}
