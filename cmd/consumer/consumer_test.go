package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iipratte/stuber/internal/events"
)

// fakeRecorder implements EventRecorder for tests
type fakeRecorder struct {
	failIncr  int // number of times to fail Incr before succeeding
	failHSet  int // number of times to fail HSet before succeeding
	incrCalls int
	hCalls    int
	lastKey   string
}

func (f *fakeRecorder) Incr(ctx context.Context, key string) error {
	f.incrCalls++
	f.lastKey = key
	if f.incrCalls <= f.failIncr {
		return errors.New("incr fail")
	}
	return nil
}

func (f *fakeRecorder) HSet(ctx context.Context, key string, values map[string]interface{}) error {
	f.hCalls++
	if f.hCalls <= f.failHSet {
		return errors.New("hset fail")
	}
	return nil
}

func TestRecordEventWithRetry_SucceedsAfterRetries(t *testing.T) {
	f := &fakeRecorder{failIncr: 1, failHSet: 1}
	ev := events.Event{Type: events.BookingConfirmed, RideID: 5, At: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
	ctx := context.Background()
	start := time.Now()
	if err := recordEventWithRetry(ctx, f, ev, 3, 10*time.Millisecond); err != nil {
		t.Fatalf("expected success, got err=%v", err)
	}
	if f.incrCalls < 2 || f.hCalls < 2 {
		t.Fatalf("expected retries, got incr=%d hset=%d", f.incrCalls, f.hCalls)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("expected at least one backoff")
	}
	if f.lastKey != "events:booking_confirmed:2026-02-10" {
		t.Fatalf("unexpected tally key %q", f.lastKey)
	}
}

func TestRecordEventWithRetry_FailsWhenExhausted(t *testing.T) {
	f := &fakeRecorder{failIncr: 5}
	ev := events.Event{Type: events.BookingRequested, RideID: 5, At: time.Now()}
	if err := recordEventWithRetry(context.Background(), f, ev, 3, 5*time.Millisecond); err == nil {
		t.Fatalf("expected error after retries")
	}
}
