package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"timeless_backend/internal/cart/domain"
)

// cartKeyPrefix namespaces cart snapshots in Redis.
const cartKeyPrefix = "cart:"

// cartTTL bounds how long an abandoned cart survives.
const cartTTL = 30 * 24 * time.Hour

// Redis is the production Store backed by a Redis client.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed snapshot store.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

var _ Store = (*Redis)(nil)

// Load retrieves and decodes the snapshot for the token.
func (r *Redis) Load(ctx context.Context, token string) (domain.Cart, bool, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("load cart snapshot: %w", err)
	}

	var c domain.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Cart{}, false, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return c, true, nil
}

// Save writes the full snapshot for the token, refreshing its TTL.
func (r *Redis) Save(ctx context.Context, token string, c domain.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+token, raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Delete drops the snapshot for the token.
func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
