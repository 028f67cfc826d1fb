// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package leaderboard maintains the ranked list of players built from level
// completions.
//
// Entries are keyed by username, not by session id: a returning player who
// cleared storage and picks the same name keeps one slot, and two people who
// pick the same name share one.
package leaderboard

import (
	"context"
	"slices"

	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/sirupsen/logrus"
)

// MaxEntries is the number of entries kept after every update.
const MaxEntries = 100

// Identity resolves the active player.
type Identity interface {
	GetUsername(ctx context.Context) (string, error)
	GetOrCreateSessionID(ctx context.Context) (string, error)
}

// Aggregator updates and reads the leaderboard document.
type Aggregator struct {
	store    state.Store
	identity Identity
}

// NewAggregator creates a leaderboard aggregator.
func NewAggregator(store state.Store, identity Identity) *Aggregator {
	return &Aggregator{
		store:    store,
		identity: identity,
	}
}

// RecordCompletionForCurrentUser adds levelID to the active username's entry.
// Recording the same level twice leaves the score unchanged.
func (a *Aggregator) RecordCompletionForCurrentUser(ctx context.Context, levelID int) error {
	username, err := a.identity.GetUsername(ctx)
	if err != nil {
		return err
	}
	sessionID, err := a.identity.GetOrCreateSessionID(ctx)
	if err != nil {
		return err
	}

	entries, err := state.LoadLeaderboard(ctx, a.store)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(entries, func(e state.LeaderboardEntry) bool {
		return e.Username == username
	})
	if i < 0 {
		entries = append(entries, state.LeaderboardEntry{
			Username:        username,
			CompletedLevels: []int{},
		})
		i = len(entries) - 1
	}

	entry := &entries[i]
	if !slices.Contains(entry.CompletedLevels, levelID) {
		entry.CompletedLevels = append(entry.CompletedLevels, levelID)
	}
	entry.Score = len(entry.CompletedLevels)
	entry.SessionID = sessionID

	logrus.Infof("leaderboard: %s completed level %d (score %d)", username, levelID, entry.Score)

	state.SortLeaderboard(entries)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	return state.SaveLeaderboard(ctx, a.store, entries)
}

// GetLeaderboard returns a snapshot of the ranked entries.
func (a *Aggregator) GetLeaderboard(ctx context.Context) ([]state.LeaderboardEntry, error) {
	entries, err := state.LoadLeaderboard(ctx, a.store)
	if err != nil {
		return nil, err
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries, nil
}

// Rank returns the 1-based position of username, or false if absent.
func (a *Aggregator) Rank(ctx context.Context, username string) (int, bool, error) {
	entries, err := a.GetLeaderboard(ctx)
	if err != nil {
		return 0, false, err
	}
	i := slices.IndexFunc(entries, func(e state.LeaderboardEntry) bool {
		return e.Username == username
	})
	if i < 0 {
		return 0, false, nil
	}
	return i + 1, true, nil
}
