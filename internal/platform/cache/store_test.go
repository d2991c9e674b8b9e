package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGet_RoundTripWithinTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	ctx := context.Background()

	store.Set(ctx, Key("teams", "pool-1"), []string{"nacional", "penarol"})

	v, ok := store.Get(ctx, "teams_pool-1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	items, _ := v.([]string)
	if len(items) != 2 || items[0] != "nacional" {
		t.Fatalf("unexpected cached value: %#v", v)
	}
}

func TestStore_Get_EvictsExpiredEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "teams_1", "v")
	now = now.Add(5*time.Minute + time.Second)

	if _, ok := store.Get(ctx, "teams_1"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected eviction on read, %d entries remain", got)
	}
}

func TestStore_KeyIsolation(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, Key("teams", "1"), "one")
	store.Set(ctx, Key("teams", "2"), "two")

	v, ok := store.Get(ctx, "teams_1")
	if !ok || v != "one" {
		t.Fatalf("teams_1: got %v (hit=%t), want one", v, ok)
	}
	v, ok = store.Get(ctx, "teams_2")
	if !ok || v != "two" {
		t.Fatalf("teams_2: got %v (hit=%t), want two", v, ok)
	}
}

func TestStore_ClearExpired_SweepsOnlyStaleEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(5 * time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "predictions_p1_u1", "old")
	now = now.Add(4 * time.Minute)
	store.Set(ctx, "predictions_p1_u2", "fresh")
	now = now.Add(90 * time.Second)

	if evicted := store.ClearExpired(ctx); evicted != 1 {
		t.Fatalf("evicted %d entries, want 1", evicted)
	}
	if _, ok := store.Get(ctx, "predictions_p1_u2"); !ok {
		t.Fatalf("fresh entry should survive the sweep")
	}
}

func TestStore_RemoveAndClearAll(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "a_1", 1)
	store.Set(ctx, "a_2", 2)
	store.Remove(ctx, "a_1")
	if _, ok := store.Get(ctx, "a_1"); ok {
		t.Fatalf("removed entry should miss")
	}

	store.ClearAll(ctx)
	if got := store.Len(); got != 0 {
		t.Fatalf("expected empty store after ClearAll, got %d entries", got)
	}
}

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
