package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func sampleReceipt() Receipt {
	return Receipt{
		OrderID:       uuid.New(),
		DisplayCode:   "#ORD-2026-0815",
		CustomerName:  "Amine Benali",
		Phone:         "+213555123456",
		Wilaya:        "Alger",
		Commune:       "Hydra",
		PaymentMethod: "cod",
		Items: []Item{
			{ProductID: uuid.New(), Name: "Seamaster", PriceDZD: 500000, Quantity: 2, SelectedColor: "Black"},
		},
		SubtotalDZD: 1000000,
		DiscountDZD: 100000,
		TotalDZD:    900000,
		WhatsAppURL: "https://wa.me/213562341417?text=Hello",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	want := sampleReceipt()

	if err := store.Save(ctx, "token-1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := store.Load(ctx, "token-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected receipt to be found")
	}
	if got.OrderID != want.OrderID || got.DisplayCode != want.DisplayCode {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.TotalDZD != 900000 || len(got.Items) != 1 {
		t.Fatalf("receipt body not preserved: %+v", got)
	}
}

func TestMemoryMissingToken(t *testing.T) {
	store := NewMemory()

	_, found, err := store.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatal("expected no receipt for unknown token")
	}
}

func TestMemorySaveReplacesPrevious(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	first := sampleReceipt()
	second := sampleReceipt()
	second.DisplayCode = "#ORD-2026-9999"

	if err := store.Save(ctx, "token-1", first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, "token-1", second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, found, err := store.Load(ctx, "token-1")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got.DisplayCode != "#ORD-2026-9999" {
		t.Fatalf("expected newest receipt, got %s", got.DisplayCode)
	}
}

func newRedisStore(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client, ttl), srv
}

func TestRedisRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()
	want := sampleReceipt()

	if err := store.Save(ctx, "token-1", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := store.Load(ctx, "token-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected receipt to be found")
	}
	if got.OrderID != want.OrderID || got.WhatsAppURL != want.WhatsAppURL {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRedisMissingToken(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)

	_, found, err := store.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatal("expected no receipt for unknown token")
	}
}

func TestRedisReceiptExpires(t *testing.T) {
	store, srv := newRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "token-1", sampleReceipt()); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv.FastForward(2 * time.Minute)

	_, found, err := store.Load(ctx, "token-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatal("expected receipt to expire after TTL")
	}
}

func TestRedisCorruptReceiptReturnsError(t *testing.T) {
	store, srv := newRedisStore(t, time.Hour)

	srv.Set("receipt:token-1", "{not json")

	_, found, err := store.Load(context.Background(), "token-1")
	if err == nil {
		t.Fatal("expected decode error for corrupt receipt")
	}
	if found {
		t.Fatal("corrupt receipt must not report found")
	}
}
