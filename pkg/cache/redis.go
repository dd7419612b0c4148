package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Redis-backed cache for server deployments where layouts
// and rendered artifacts are shared across processes.
type RedisCache struct {
	client *redis.Client
}

// RedisOptions configures a Redis cache connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// backendErr marks a Redis transport failure as retryable.
func backendErr(op string, err error) error {
	return Retryable(fmt.Errorf("%w: %s: %v", ErrBackend, op, err))
}

// NewRedisCache connects to Redis and verifies the connection with a ping,
// retrying with backoff so a server starting alongside Redis does not lose
// the race.
func NewRedisCache(ctx context.Context, opts RedisOptions) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return backendErr("ping "+opts.Addr, err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis. A missing key is a miss, not an error;
// transport failures surface as retryable ErrBackend errors.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, backendErr("get", err)
	}
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return backendErr("set", err)
	}
	return nil
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return backendErr("del", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error { return c.client.Close() }

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
