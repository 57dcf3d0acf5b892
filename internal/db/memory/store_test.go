package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/lexsearch/internal/db"
)

func newTestStore(t *testing.T, size int) (*Store, *time.Time) {
	t.Helper()
	s, err := NewStore(size)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGetSet(t *testing.T) {
	s, _ := newTestStore(t, 10)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	val := []byte("value")
	if err := s.Set(ctx, "k", val); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val[0] = 'X' // caller mutation must not leak into the store

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get() = %q", got)
	}
}

func TestSetWithTTL_Expires(t *testing.T) {
	s, now := newTestStore(t, 10)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("expected live entry, got %v", err)
	}

	*now = now.Add(time.Minute)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected expired entry, got %v", err)
	}
}

func TestSetWithTTL_ZeroNeverExpires(t *testing.T) {
	s, now := newTestStore(t, 10)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Expire(ctx, "k", 0, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*now = now.Add(24 * time.Hour)
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("expected live entry, got %v", err)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	s, _ := newTestStore(t, 2)
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))
	_, _ = s.Get(ctx, "a") // a becomes most recent
	_ = s.Set(ctx, "c", []byte("3"))

	if _, err := s.Get(ctx, "b"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected b evicted, got %v", err)
	}
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Errorf("expected a kept, got %v", err)
	}
}

func TestIncrBy(t *testing.T) {
	s, _ := newTestStore(t, 10)
	ctx := context.Background()

	for _, n := range []int64{5, 7, -2} {
		if err := s.IncrBy(ctx, "counter", n); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got, _ := s.Get(ctx, "counter")
	if string(got) != "10" {
		t.Errorf("counter = %q, want 10", got)
	}

	_ = s.Set(ctx, "text", []byte("abc"))
	err := s.IncrBy(ctx, "text", 1)
	if !errors.Is(err, db.ErrNotInteger) {
		t.Errorf("expected ErrNotInteger, got %v", err)
	}
}

func TestExpire_NX(t *testing.T) {
	s, now := newTestStore(t, 10)
	ctx := context.Background()

	_ = s.IncrBy(ctx, "budget", 1)
	_ = s.Expire(ctx, "budget", time.Hour, true)
	_ = s.Expire(ctx, "budget", 48*time.Hour, true) // ignored, expiry already set
	_ = s.IncrBy(ctx, "budget", 1)                  // keeps expiry

	*now = now.Add(59 * time.Minute)
	got, err := s.Get(ctx, "budget")
	if err != nil || string(got) != "2" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	*now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "budget"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected expiry after 1h, got %v", err)
	}
}

func TestExpire_Overwrite(t *testing.T) {
	s, now := newTestStore(t, 10)
	ctx := context.Background()

	_ = s.SetWithTTL(ctx, "k", []byte("v"), time.Minute)
	_ = s.Expire(ctx, "k", time.Hour, false)

	*now = now.Add(30 * time.Minute)
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Errorf("expected extended expiry, got %v", err)
	}
	if err := s.Expire(ctx, "missing", time.Hour, false); err != nil {
		t.Errorf("Expire on missing key: %v", err)
	}
}

func TestLifecycle(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if err := s.WaitForReady(ctx, time.Second); err != nil {
		t.Errorf("WaitForReady: %v", err)
	}
	_ = s.Set(ctx, "k", []byte("v"))
	s.Close()
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected empty store after Close, got %v", err)
	}
}
