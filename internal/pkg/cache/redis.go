// Package cache provides the idempotency store used by order placement.
//
// A client that retries a create (network blip, double click) supplies the
// same X-Idempotency-Key; the store maps the key to the order id created on
// the first attempt so the retry returns the existing order instead of
// placing a duplicate.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps idempotency keys to created order ids.
// Implementations must treat a missing key as ("", nil), not an error.
type IdempotencyStore interface {
	// Remember records that key produced orderID, expiring after ttl.
	Remember(ctx context.Context, key, orderID string, ttl time.Duration) error

	// Lookup returns the order id previously recorded for key, or "" on miss.
	Lookup(ctx context.Context, key string) (string, error)
}

type redisStore struct {
	client      *redis.Client
	serviceName string
}

// NewRedisStore connects to redis at addr. Keys are namespaced by service
// name so several services can share one instance.
func NewRedisStore(addr, serviceName string) IdempotencyStore {
	return &redisStore{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
	}
}

func (r *redisStore) Remember(ctx context.Context, key, orderID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.storageKey(key), orderID, ttl).Err()
}

func (r *redisStore) Lookup(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.storageKey(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisStore) storageKey(key string) string {
	return fmt.Sprintf("%s:create-order:%s", r.serviceName, key)
}
