package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWakeUpRetriesUntilAwake(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	res, err := WakeUp(context.Background(), WakeUpConfig{
		URL:         ts.URL,
		MaxAttempts: 5,
		InitialWait: time.Millisecond,
		Client:      ts.Client(),
	})
	if err != nil {
		t.Fatalf("wake up: %v", err)
	}
	if !res.Awake {
		t.Fatal("expected service to be awake")
	}
	if res.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", res.Attempts)
	}
}

func TestWakeUpGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	res, err := WakeUp(context.Background(), WakeUpConfig{
		URL:         ts.URL,
		MaxAttempts: 4,
		InitialWait: time.Millisecond,
		Client:      ts.Client(),
	})
	if err == nil {
		t.Fatal("expected error for a service that never wakes")
	}
	if res.Awake {
		t.Fatal("service must not be reported awake")
	}
	if got := calls.Load(); got != 4 {
		t.Fatalf("expected 4 pings, got %d", got)
	}
}

func TestWakeUpBackoffGrows(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var stamps []time.Time
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamps = append(stamps, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, _ = WakeUp(context.Background(), WakeUpConfig{
		URL:         ts.URL,
		MaxAttempts: 3,
		InitialWait: 40 * time.Millisecond,
		Multiplier:  2,
		Client:      ts.Client(),
	})

	mu.Lock()
	defer mu.Unlock()
	if len(stamps) != 3 {
		t.Fatalf("expected 3 pings, got %d", len(stamps))
	}
	first := stamps[1].Sub(stamps[0])
	second := stamps[2].Sub(stamps[1])
	if second <= first {
		t.Fatalf("expected growing delays, got %v then %v", first, second)
	}
}

func TestWakeUpHonorsContextCancel(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := WakeUp(ctx, WakeUpConfig{
		URL:         ts.URL,
		MaxAttempts: 10,
		InitialWait: time.Second,
		Client:      ts.Client(),
	})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestWakeUpRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := WakeUp(context.Background(), WakeUpConfig{}); err == nil {
		t.Fatal("expected error for missing url")
	}
}
