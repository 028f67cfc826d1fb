// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-secret-keeper/internal/config"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Storage is the persisted store selected by configuration together with
// the resources backing it.
type Storage struct {
	Store state.Store
	// Health is nil for the memory backend.
	Health *state.HealthChecker
	client *redis.Client
}

// Close releases the backend connection, if any.
func (s *Storage) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// InitStorage creates the store for cfg.StoreBackend.
//
// The memory backend keeps documents for the lifetime of the process. The
// redis backend keeps them across restarts, namespaced by cfg.ProfileID.
func InitStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logrus.Info("using in-memory store")
		return &Storage{Store: state.NewMemoryStore()}, nil

	case config.BackendRedis:
		client, err := state.InitRedisClient(ctx, state.RedisOptions{
			Host:         cfg.RedisHost,
			Port:         cfg.RedisPort,
			Password:     cfg.RedisPassword,
			MaxRetries:   cfg.RedisMaxRetries,
			RetryDelayMs: cfg.RedisRetryDelayMs,
		})
		if err != nil {
			return nil, err
		}
		store := state.NewRedisStore(client, state.RedisStoreConfig{
			Profile: cfg.ProfileID,
			TTL:     cfg.StateTTL(),
		})
		logrus.Infof("using redis store for profile %s", cfg.ProfileID)
		return &Storage{
			Store:  store,
			Health: state.NewHealthChecker(client),
			client: client,
		}, nil
	}

	return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
}
