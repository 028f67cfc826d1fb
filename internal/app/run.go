// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AccelByte/extend-secret-keeper/internal/tui"
	"github.com/sirupsen/logrus"
)

// Run starts the application and blocks until the player quits or a
// shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if a.metricsServer != nil {
		if err := a.metricsServer.Start(ctx); err != nil {
			return err
		}
	}

	logrus.Info("application started successfully")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := tui.Run(ctx, a.engine, a.source)
	if runErr != nil {
		logrus.Errorf("terminal session ended with error: %v", runErr)
	}

	// ctx may already be cancelled; shutdown gets its own
	if err := a.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return runErr
}

// Shutdown gracefully shuts down all application components.
//
// Components are shut down in reverse dependency order:
// 1. Stop the metrics server
// 2. Close external connections (reply source, Redis)
// 3. Flush telemetry data (OpenTelemetry)
//
// Shutdown errors are logged but don't stop the shutdown sequence.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Shutdown servers
	// ============================================================
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	// ============================================================
	// Step 2: Close external connections
	// ============================================================
	if a.sourceCloser != nil {
		if err := a.sourceCloser.Close(); err != nil {
			logrus.Errorf("reply source close error: %v", err)
		}
	}
	a.closeStorage()

	// ============================================================
	// Step 3: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
