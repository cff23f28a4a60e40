package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func countingFetch(calls *atomic.Int64, value any) FetchFunc {
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestStore_GetFetchesOnce(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var calls atomic.Int64
	fetch := countingFetch(&calls, "v1")

	for i := 0; i < 3; i++ {
		got, err := store.Get(ctx, "tickets", fetch)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "v1" {
			t.Errorf("Get = %v, want v1", got)
		}
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("fetch called %d times, want 1", n)
	}
}

func TestStore_InvalidateTriggersRefetch(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var calls atomic.Int64
	if _, err := store.Get(ctx, "tickets", countingFetch(&calls, "v1")); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	store.Invalidate("tickets")

	if _, ok := store.Peek("tickets"); ok {
		t.Error("Peek should miss after Invalidate")
	}

	got, err := store.Get(ctx, "tickets", countingFetch(&calls, "v2"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v2" {
		t.Errorf("Get after invalidate = %v, want v2", got)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("fetch called %d times, want 2", n)
	}
}

func TestStore_InvalidateUnknownKey(t *testing.T) {
	store := NewStore(nil)

	// Must not panic or create an entry.
	store.Invalidate("never-cached")

	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestStore_FetchErrorNotCached(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	wantErr := errors.New("backend down")
	_, err := store.Get(ctx, "agents", func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Get error = %v, want %v", err, wantErr)
	}

	var calls atomic.Int64
	got, err := store.Get(ctx, "agents", countingFetch(&calls, "v1"))
	if err != nil {
		t.Fatalf("Get after error failed: %v", err)
	}
	if got != "v1" || calls.Load() != 1 {
		t.Errorf("expected refetch after failed fetch, got %v (calls=%d)", got, calls.Load())
	}
}

func TestStore_ConcurrentGetsShareFetch(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v1", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.Get(ctx, "tickets", fetch)
			if err != nil {
				t.Errorf("Get failed: %v", err)
			}
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("fetch called %d times, want 1", n)
	}
	for i, v := range results {
		if v != "v1" {
			t.Errorf("reader %d got %v, want v1", i, v)
		}
	}
}
