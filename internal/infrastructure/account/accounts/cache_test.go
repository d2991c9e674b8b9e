package accounts

import (
	"testing"
	"time"

	"github.com/penca-app/penca-api/internal/domain/identity"
)

func TestInMemoryPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newInMemoryPrincipalCache(200*time.Millisecond, 10)
	cache.Set("k1", identity.Principal{UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestInMemoryPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	cache := newInMemoryPrincipalCache(20*time.Millisecond, 10)
	cache.Set("k1", identity.Principal{UserID: "u-1"})
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
}

func TestInMemoryPrincipalCache_EvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newInMemoryPrincipalCache(time.Minute, 2)
	cache.Set("k1", identity.Principal{UserID: "u-1"})
	cache.Set("k2", identity.Principal{UserID: "u-2"})
	cache.Set("k3", identity.Principal{UserID: "u-3"})

	if _, ok := cache.Get("k3"); !ok {
		t.Fatalf("expected most recent entry to be cached")
	}
}
