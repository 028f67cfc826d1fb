// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
type Config struct {
	// ============================================================
	// Service configuration
	// ============================================================
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"secret-keeper"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE" envDefault:"secret-keeper.log"`

	// ============================================================
	// Storage configuration
	// ============================================================
	// StoreBackend selects where game documents live: "memory" or "redis".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	// ProfileID namespaces the documents of one player profile in redis.
	ProfileID     string `env:"PROFILE_ID" envDefault:"default"`
	StateTTLHours int    `env:"STATE_TTL_HOURS" envDefault:"0"`

	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Game configuration
	// ============================================================
	CatalogPath   string `env:"CATALOG_PATH" envDefault:"config/levels.yaml"`
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"Admin"`

	// ============================================================
	// Reply source configuration
	// ============================================================
	// GeminiAPIKey enables the Gemini reply source. Without it the game
	// runs offline with scripted replies.
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	ReplyMaxRetries int    `env:"REPLY_MAX_RETRIES" envDefault:"2"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"false"`
	MetricsPort    int    `env:"METRICS_PORT" envDefault:"8080"`
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}
