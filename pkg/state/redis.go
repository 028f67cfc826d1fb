// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// KeyPrefix is the prefix for all engine keys in Redis.
const KeyPrefix = "secret_keeper:"

// RedisOptions configures InitRedisClient.
type RedisOptions struct {
	Host         string
	Port         string
	Password     string
	MaxRetries   int
	RetryDelayMs int
}

// InitRedisClient connects to Redis, retrying the initial PING with
// exponential backoff.
func InitRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	addr := opts.Host + ":" + opts.Port
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     opts.Password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	if opts.RetryDelayMs > 0 {
		b.InitialInterval = time.Duration(opts.RetryDelayMs) * time.Millisecond
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	attempt := 0
	err := backoff.Retry(
		func() error {
			attempt++
			if _, err := client.Ping(ctx).Result(); err != nil {
				logrus.Warnf("Redis connection failed (attempt %d/%d): %v, retrying...", attempt, maxRetries+1, err)
				return err
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx),
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s (attempt %d)", addr, attempt)
	return client, nil
}

// RedisStore implements Store on Redis. Each engine key is namespaced by a
// profile id so several local profiles can share one Redis.
type RedisStore struct {
	client redis.UniversalClient
	cfg    RedisStoreConfig
}

// RedisStoreConfig configures RedisStore.
type RedisStoreConfig struct {
	// Profile separates independent players sharing one Redis.
	Profile string
	// TTL applied on every write; zero keeps values until reset.
	TTL time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, cfg RedisStoreConfig) *RedisStore {
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates the Redis key for an engine key.
func (r *RedisStore) makeKey(key string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, r.cfg.Profile, key)
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.makeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// Set implements Store.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.makeKey(key), value, r.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete implements Store with a single multi-key DEL, which Redis applies
// atomically.
func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = r.makeKey(k)
	}
	if err := r.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("failed to delete %v: %w", keys, err)
	}
	return nil
}
