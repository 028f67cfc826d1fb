// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-secret-keeper/internal/config"
	"github.com/AccelByte/extend-secret-keeper/pkg/progress"
	"github.com/alicebob/miniredis/v2"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levels.yaml")
	data := []byte(`
levels:
  - id: 1
    title: Bark
    win_keywords: [bark]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func TestNewAndShutdown(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	cfg := &config.Config{
		ServiceName:   "secret-keeper",
		StoreBackend:  config.BackendRedis,
		ProfileID:     "test",
		RedisHost:     mr.Host(),
		RedisPort:     mr.Port(),
		CatalogPath:   writeCatalog(t),
		AdminUsername: "Admin",
		MetricsPort:   0,
	}

	a, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := a.Engine().Tracker().SubmitGuess(ctx, 1, "bark")
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if out.Kind != progress.OutcomeWon {
		t.Errorf("Kind = %v, expected %v", out.Kind, progress.OutcomeWon)
	}

	if err := a.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_BadCatalog(t *testing.T) {
	cfg := &config.Config{
		StoreBackend:  config.BackendMemory,
		CatalogPath:   filepath.Join(t.TempDir(), "missing.yaml"),
		AdminUsername: "Admin",
	}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New() expected an error for a missing catalog")
	}
}
