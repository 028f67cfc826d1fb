// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-secret-keeper/internal/config"
	"github.com/AccelByte/extend-secret-keeper/pkg/engine"
	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/sirupsen/logrus"
)

// InitEngine loads the level catalog from cfg.CatalogPath and builds the
// engine over store.
func InitEngine(cfg *config.Config, store state.Store) (*engine.Engine, error) {
	catalog, err := level.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load level catalog from %s: %w", cfg.CatalogPath, err)
	}
	logrus.Infof("loaded %d levels from %s", catalog.Len(), cfg.CatalogPath)

	return engine.New(store, catalog, engine.Options{
		AdminUsername: cfg.AdminUsername,
	}), nil
}
