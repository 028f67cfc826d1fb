// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-secret-keeper/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Persisted document keys.
const (
	KeyUiSession   = "ui-session"
	KeyGameState   = "game-state"
	KeyLeaderboard = "leaderboard"
)

// AllKeys lists every key owned by the engine.
var AllKeys = []string{KeyUiSession, KeyGameState, KeyLeaderboard}

// ErrNotFound is returned by Store.Get when a key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a process-wide key-value store of JSON documents.
//
// Callers always read a whole document, modify a private copy and write the
// whole document back. There is no locking between separate callers: two
// writers doing read-modify-write on the same key concurrently lose one of
// the updates (last writer wins).
type Store interface {
	// Get returns the raw value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes all keys in one step; a reader never observes only some
	// of them gone.
	Delete(ctx context.Context, keys ...string) error
}

// load reads key into v. It returns false when the key is missing or holds a
// value that does not parse; in the latter case the corruption is logged and
// counted, never returned. Only backend failures produce an error.
func load(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		logrus.Debugf("no stored value for %s, using defaults", key)
		return false, nil
	}
	if err != nil {
		logrus.Errorf("failed to read %s: %v", key, err)
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		logrus.Warnf("stored value for %s is corrupt, using defaults: %v", key, err)
		metrics.PersistenceFallbacksTotal.WithLabelValues(key).Inc()
		return false, nil
	}
	return true, nil
}

func save(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.Errorf("failed to marshal %s: %v", key, err)
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		logrus.Errorf("failed to write %s: %v", key, err)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	logrus.Debugf("persisted %s (%d bytes)", key, len(data))
	return nil
}

// LoadUiSession returns the stored ui-session or its default.
func LoadUiSession(ctx context.Context, s Store) (*UiSession, error) {
	var ui UiSession
	ok, err := load(ctx, s, KeyUiSession, &ui)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewUiSession(), nil
	}
	ui.normalize()
	return &ui, nil
}

// SaveUiSession persists the whole ui-session document.
func SaveUiSession(ctx context.Context, s Store, ui *UiSession) error {
	return save(ctx, s, KeyUiSession, ui)
}

// LoadGameState returns the stored game-state or a fresh one. A fresh
// document has no session id; see EnsureSessionID.
func LoadGameState(ctx context.Context, s Store) (*GameState, error) {
	var gs GameState
	ok, err := load(ctx, s, KeyGameState, &gs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewGameState(), nil
	}
	gs.normalize()
	return &gs, nil
}

// SaveGameState persists the whole game-state document.
func SaveGameState(ctx context.Context, s Store, gs *GameState) error {
	return save(ctx, s, KeyGameState, gs)
}

// LoadLeaderboard returns the stored leaderboard or an empty one.
func LoadLeaderboard(ctx context.Context, s Store) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	ok, err := load(ctx, s, KeyLeaderboard, &entries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []LeaderboardEntry{}, nil
	}
	return normalizeLeaderboard(entries), nil
}

// SaveLeaderboard persists the whole leaderboard.
func SaveLeaderboard(ctx context.Context, s Store, entries []LeaderboardEntry) error {
	return save(ctx, s, KeyLeaderboard, entries)
}

// Reset wipes every engine key in a single Delete. It is the only operation
// that allows the session id to change.
func Reset(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, AllKeys...); err != nil {
		logrus.Errorf("failed to reset state: %v", err)
		return fmt.Errorf("failed to reset state: %w", err)
	}
	logrus.Infof("all persisted state cleared")
	return nil
}
