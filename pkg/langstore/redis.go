package langstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

// Redis stores values in Redis under "<prefix>:<scope>:<key>".
// It is safe for concurrent use.
type Redis struct {
	client redis.UniversalClient
	scope  string
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. Default: "i18n".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithTTL sets the expiration of written values. Zero keeps them forever. Default: zero.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis creates a store for one scope, typically a visitor or user id.
// The client should come from OpenRedis.
func NewRedis(client redis.UniversalClient, scope string, opts ...RedisOption) (*Redis, error) {
	if scope == "" {
		return nil, ErrEmptyScope
	}
	r := &Redis{
		client: client,
		scope:  scope,
		prefix: "i18n",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Get returns the stored value, i18n.ErrKeyNotFound when absent.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", i18n.ErrKeyNotFound
		}
		return "", err
	}
	return v, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, r.ttl).Err()
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return r.scope + ":" + key
	}
	return r.prefix + ":" + r.scope + ":" + key
}
