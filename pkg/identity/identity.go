// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package identity tracks who is playing: the active username, the stable
// per-play-through session id, and the renderer's navigation pointer.
package identity

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-secret-keeper/pkg/sanitize"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/sirupsen/logrus"
)

// DefaultAdminUsername unlocks every level for viewing.
const DefaultAdminUsername = "Admin"

// Service reads and writes the ui-session document and the session id held
// in the game-state document.
type Service struct {
	store state.Store
	cfg   Config
}

// Config configures Service.
type Config struct {
	// AdminUsername turns on developer mode when chosen as the username.
	AdminUsername string
}

// NewService creates an identity service.
func NewService(store state.Store, cfg Config) *Service {
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = DefaultAdminUsername
	}
	return &Service{
		store: store,
		cfg:   cfg,
	}
}

// GetOrCreateSessionID returns the session id, generating and persisting it
// on first use. The id stays the same until state.Reset.
func (s *Service) GetOrCreateSessionID(ctx context.Context) (string, error) {
	gs, err := state.LoadGameState(ctx, s.store)
	if err != nil {
		return "", err
	}
	if state.EnsureSessionID(gs) {
		if err := state.SaveGameState(ctx, s.store, gs); err != nil {
			return "", fmt.Errorf("failed to persist session id: %w", err)
		}
	}
	return gs.SessionID, nil
}

// SetUsername clamps and sanitizes raw, stores it and returns the stored
// name. It returns sanitize.ErrInputTooLong without touching state when raw
// is over the length limit.
func (s *Service) SetUsername(ctx context.Context, raw string) (string, error) {
	clamped, err := sanitize.ClampInput(raw)
	if err != nil {
		return "", err
	}
	name := sanitize.Username(clamped)

	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return "", err
	}
	ui.Username = name
	ui.DeveloperMode = name == s.cfg.AdminUsername
	if err := state.SaveUiSession(ctx, s.store, ui); err != nil {
		return "", err
	}

	logrus.Infof("username set to %s (developer mode: %v)", name, ui.DeveloperMode)
	return name, nil
}

// GetUsername returns the active username, "Player" when unset.
func (s *Service) GetUsername(ctx context.Context) (string, error) {
	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return "", err
	}
	return ui.Username, nil
}

// IsDeveloper reports whether the active player may view every level.
func (s *Service) IsDeveloper(ctx context.Context) (bool, error) {
	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return false, err
	}
	return ui.DeveloperMode, nil
}

// UiSession returns a copy of the stored ui-session.
func (s *Service) UiSession(ctx context.Context) (state.UiSession, error) {
	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return state.UiSession{}, err
	}
	return *ui, nil
}

// Navigate records the active screen.
func (s *Service) Navigate(ctx context.Context, screen state.Screen) error {
	if !screen.Valid() {
		return fmt.Errorf("unknown screen %q", screen)
	}
	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return err
	}
	ui.ActiveScreen = screen
	return state.SaveUiSession(ctx, s.store, ui)
}

// SelectLevel records the selected level and switches to the chat screen.
func (s *Service) SelectLevel(ctx context.Context, levelID int) error {
	ui, err := state.LoadUiSession(ctx, s.store)
	if err != nil {
		return err
	}
	ui.SelectedLevelID = &levelID
	ui.ActiveScreen = state.ScreenChat
	return state.SaveUiSession(ctx, s.store, ui)
}
