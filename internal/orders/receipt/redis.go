package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// receiptKeyPrefix namespaces receipts in Redis, next to cart snapshots.
const receiptKeyPrefix = "receipt:"

// Redis is the production Store backed by a Redis client.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis creates a Redis-backed receipt store. The TTL bounds how long a
// shopper can reload their confirmation page.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

var _ Store = (*Redis)(nil)

// Load retrieves and decodes the receipt for the token.
func (r *Redis) Load(ctx context.Context, token string) (Receipt, bool, error) {
	raw, err := r.client.Get(ctx, receiptKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Receipt{}, false, nil
	}
	if err != nil {
		return Receipt{}, false, fmt.Errorf("load receipt: %w", err)
	}

	var receipt Receipt
	if err := json.Unmarshal(raw, &receipt); err != nil {
		return Receipt{}, false, fmt.Errorf("decode receipt: %w", err)
	}
	return receipt, true, nil
}

// Save stores the receipt for the token with the configured TTL.
func (r *Redis) Save(ctx context.Context, token string, receipt Receipt) error {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}

	if err := r.client.Set(ctx, receiptKeyPrefix+token, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}
	return nil
}
