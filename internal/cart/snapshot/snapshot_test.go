package snapshot

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"timeless_backend/internal/cart/domain"
)

func sampleCart() domain.Cart {
	var c domain.Cart
	c.Add(domain.Line{
		ProductID: uuid.New(),
		Name:      "Nautilus",
		Brand:     "Patek Philippe",
		PriceDZD:  1200000,
		Image:     "https://cdn.example.com/nautilus.jpg",
	})
	c.ApplyPromo("TIMELESS2025")
	return c
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	token := uuid.NewString()
	original := sampleCart()

	if err := store.Save(ctx, token, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("expected snapshot to be found")
	}
	if loaded.FinalTotal() != original.FinalTotal() {
		t.Fatalf("total drifted through snapshot: %d != %d", loaded.FinalTotal(), original.FinalTotal())
	}
	if !loaded.PromoApplied {
		t.Fatalf("promo flag lost through snapshot")
	}
}

func TestMemoryMissingSnapshot(t *testing.T) {
	store := NewMemory()

	_, found, err := store.Load(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected missing snapshot")
	}
}

func TestMemoryCorruptSnapshotErrors(t *testing.T) {
	store := NewMemory()
	token := uuid.NewString()
	store.Corrupt(token)

	_, _, err := store.Load(context.Background(), token)
	if err == nil {
		t.Fatalf("expected decode error for corrupt snapshot")
	}
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	token := uuid.NewString()

	if err := store.Save(ctx, token, sampleCart()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, found, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected snapshot gone after delete")
	}
}

func newRedisStore(t *testing.T) *Redis {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedis(client)
}

func TestRedisRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	token := uuid.NewString()
	original := sampleCart()

	if err := store.Save(ctx, token, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("expected snapshot to be found")
	}
	if loaded.Subtotal() != original.Subtotal() {
		t.Fatalf("subtotal drifted: %d != %d", loaded.Subtotal(), original.Subtotal())
	}
}

func TestRedisMissingSnapshot(t *testing.T) {
	store := newRedisStore(t)

	_, found, err := store.Load(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected missing snapshot")
	}
}

func TestRedisDelete(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	token := uuid.NewString()

	if err := store.Save(ctx, token, sampleCart()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, found, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected snapshot gone after delete")
	}
}
