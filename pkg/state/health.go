// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const defaultHealthTimeout = 2 * time.Second

// HealthChecker pings the Redis backing a RedisStore. Only changes between
// healthy and unhealthy are logged, so it can be polled frequently.
type HealthChecker struct {
	client  redis.UniversalClient
	timeout time.Duration

	mu      sync.Mutex
	checked bool
	healthy bool
}

// NewHealthChecker creates a health checker for client.
func NewHealthChecker(client redis.UniversalClient) *HealthChecker {
	return &HealthChecker{client: client, timeout: defaultHealthTimeout}
}

// Check pings Redis and returns an error if it does not answer in time.
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	_, err := h.client.Ping(ctx).Result()
	h.record(err)
	if err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// IsHealthy reports whether the last ping succeeded, pinging now.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}

func (h *HealthChecker) record(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	healthy := err == nil
	if h.checked && healthy == h.healthy {
		return
	}
	h.checked = true
	h.healthy = healthy
	if healthy {
		logrus.Infof("redis health check passed")
	} else {
		logrus.Errorf("redis health check failed: %v", err)
	}
}
