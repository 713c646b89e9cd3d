package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_SeparateHostBuckets(t *testing.T) {
	l := NewLimiter(1, 1) // 1 req/s, burst 1 per host

	ctx := context.Background()
	start := time.Now()

	// One request to each of two hosts spends each host's single token;
	// neither should wait on the other's bucket.
	if err := l.Wait(ctx, "https://statsapi.mlb.com/api/v1/schedule"); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if err := l.Wait(ctx, "https://stats.ncaa.org/teams/1"); err != nil {
		t.Fatalf("wait: %v", err)
	}

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("independent hosts blocked each other: %v", elapsed)
	}
}

func TestLimiter_ThrottlesSameHost(t *testing.T) {
	l := NewLimiter(10, 1) // 100ms between requests after the burst

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "https://example.com/page"); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}

	// Burst covers the first call; the next two wait roughly 100ms each.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("expected same-host throttling, finished in %v", elapsed)
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	l := NewLimiter(100, 10)
	l.SetHostRate("slow.example.com", 5, 1)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Wait(ctx, "https://slow.example.com/box"); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("expected the custom 5 req/s rate to apply, finished in %v", elapsed)
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1) // effectively frozen after the first token

	ctx := context.Background()
	if err := l.Wait(ctx, "https://example.com/"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://example.com/"); err == nil {
		t.Error("expected a context error once the bucket is exhausted")
	}
}
