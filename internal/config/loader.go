// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}

	if c.LogFile == "" {
		return fmt.Errorf("LOG_FILE is required")
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required when STORE_BACKEND is redis")
		}
		if c.ProfileID == "" {
			return fmt.Errorf("PROFILE_ID is required when STORE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be %s or %s)", c.StoreBackend, BackendMemory, BackendRedis)
	}

	if c.StateTTLHours < 0 {
		return fmt.Errorf("invalid STATE_TTL_HOURS: %d (must be >= 0)", c.StateTTLHours)
	}
	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be >= 0)", c.RedisMaxRetries)
	}
	if c.RedisRetryDelayMs < 0 {
		return fmt.Errorf("invalid REDIS_RETRY_DELAY_MS: %d (must be >= 0)", c.RedisRetryDelayMs)
	}
	if c.ReplyMaxRetries < 0 {
		return fmt.Errorf("invalid REPLY_MAX_RETRIES: %d (must be >= 0)", c.ReplyMaxRetries)
	}

	if c.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}

	if c.MetricsEnabled && (c.MetricsPort < 1 || c.MetricsPort > 65535) {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}
	if c.OtelEnabled && c.ZipkinEndpoint == "" {
		return fmt.Errorf("ZIPKIN_ENDPOINT is required when OTEL_ENABLED is true")
	}

	return nil
}

// StateTTL returns the redis key lifetime, zero meaning no expiry.
func (c *Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLHours) * time.Hour
}

// RedisRetryDelay returns the delay between redis connection attempts.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
