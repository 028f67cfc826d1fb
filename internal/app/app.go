// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/AccelByte/extend-secret-keeper/internal/bootstrap"
	"github.com/AccelByte/extend-secret-keeper/internal/config"
	"github.com/AccelByte/extend-secret-keeper/internal/server"
	"github.com/AccelByte/extend-secret-keeper/pkg/engine"
	"github.com/AccelByte/extend-secret-keeper/pkg/reply"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	storage           *bootstrap.Storage
	engine            *engine.Engine
	source            reply.Source
	sourceCloser      io.Closer
	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Storage (memory or redis)
// 2. Level catalog and engine
// 3. Character reply source
// 4. Metrics server
// 5. Telemetry
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize storage
	// ============================================================
	storage, err := bootstrap.InitStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	app.storage = storage

	// ============================================================
	// Step 2: Load catalog and build the engine
	// ============================================================
	eng, err := bootstrap.InitEngine(cfg, storage.Store)
	if err != nil {
		app.closeStorage()
		return nil, err
	}
	app.engine = eng

	// ============================================================
	// Step 3: Initialize the reply source
	// ============================================================
	src, closer, err := bootstrap.InitReplySource(ctx, cfg)
	if err != nil {
		app.closeStorage()
		return nil, fmt.Errorf("failed to init reply source: %w", err)
	}
	app.source = src
	app.sourceCloser = closer

	// ============================================================
	// Step 4: Setup metrics server
	// ============================================================
	if cfg.MetricsEnabled {
		var health server.HealthChecker
		if storage.Health != nil {
			health = storage.Health
		}
		app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics", health)
		if err := app.metricsServer.Setup(); err != nil {
			return nil, fmt.Errorf("failed to setup metrics server: %w", err)
		}
	}

	// ============================================================
	// Step 5: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, cfg.ZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// Engine returns the game engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

func (a *App) closeStorage() {
	if a.storage == nil {
		return
	}
	if err := a.storage.Close(); err != nil {
		logrus.Errorf("storage close error: %v", err)
	}
}
