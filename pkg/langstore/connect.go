package langstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectOption configures OpenRedis.
type ConnectOption func(*connectOptions)

type connectOptions struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
}

// WithPoolSize sets the maximum number of pooled connections. Default: 10.
func WithPoolSize(n int) ConnectOption {
	return func(o *connectOptions) {
		o.poolSize = n
	}
}

// WithRetry sets the number of connection attempts and the base wait between them.
// The wait grows linearly with each attempt. Default: 3 attempts, 2 seconds.
func WithRetry(attempts int, interval time.Duration) ConnectOption {
	return func(o *connectOptions) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithDialTimeout sets the timeout for new connections. Default: 5 seconds.
func WithDialTimeout(d time.Duration) ConnectOption {
	return func(o *connectOptions) {
		o.dialTimeout = d
	}
}

// OpenRedis connects to redis:// or rediss:// url and pings it, retrying
// on failure.
func OpenRedis(ctx context.Context, url string, opts ...ConnectOption) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := &connectOptions{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	redisOpts.PoolSize = o.poolSize
	redisOpts.DialTimeout = o.dialTimeout

	var lastErr error
	for i := range max(o.retryAttempts, 1) {
		client := redis.NewClient(redisOpts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == o.retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// RedisHealthcheck returns a readiness probe pinging client.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
