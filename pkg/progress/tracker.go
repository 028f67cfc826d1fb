// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package progress owns per-level conversations, attempt counts, win
// detection and the unlock ladder.
//
// Every operation loads the whole game-state document, changes a private
// copy and writes the whole document back before returning.
package progress

import (
	"context"
	"fmt"
	"slices"

	"github.com/AccelByte/extend-secret-keeper/pkg/common"
	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/AccelByte/extend-secret-keeper/pkg/metrics"
	"github.com/AccelByte/extend-secret-keeper/pkg/sanitize"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/AccelByte/extend-secret-keeper/pkg/win"
)

// EmptyGuessMessage is the rejection reason for a guess that sanitizes to nothing.
const EmptyGuessMessage = "Please type a message before sending."

// CompletionRecorder is notified after a level completion is persisted.
type CompletionRecorder interface {
	RecordCompletionForCurrentUser(ctx context.Context, levelID int) error
}

// Access reports whether the active player bypasses level locks.
type Access interface {
	IsDeveloper(ctx context.Context) (bool, error)
}

// Tracker implements the progression state machine.
type Tracker struct {
	store    state.Store
	catalog  *level.Catalog
	access   Access
	recorder CompletionRecorder
}

// NewTracker creates a tracker. recorder may be nil.
func NewTracker(store state.Store, catalog *level.Catalog, access Access, recorder CompletionRecorder) *Tracker {
	return &Tracker{
		store:    store,
		catalog:  catalog,
		access:   access,
		recorder: recorder,
	}
}

// OpenLevel returns the runtime for a level, creating it with the
// character's introductory line on first open. The new runtime is persisted
// before OpenLevel returns.
func (t *Tracker) OpenLevel(ctx context.Context, levelID int) (state.LevelRuntime, error) {
	scope := common.NewScope(ctx, "progress.OpenLevel")
	defer scope.Finish()
	scope.SetAttributes("level_id", levelID)

	_, gs, rt, created, err := t.prepare(scope.Ctx, levelID)
	if err != nil {
		scope.TraceError(err)
		return state.LevelRuntime{}, err
	}
	if created {
		if err := t.save(scope.Ctx, gs); err != nil {
			scope.TraceError(err)
			return state.LevelRuntime{}, err
		}
		scope.Log.Infof("opened level %d for the first time", levelID)
	}
	return rt.Clone(), nil
}

// AppendTurn appends one chat turn and persists it before returning.
func (t *Tracker) AppendTurn(ctx context.Context, levelID int, role state.Role, text string) error {
	if role != state.RolePlayer && role != state.RoleCharacter {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	_, gs, rt, _, err := t.prepare(ctx, levelID)
	if err != nil {
		return err
	}
	rt.ChatHistory = append(rt.ChatHistory, state.ChatTurn{Role: role, Text: text})
	return t.save(ctx, gs)
}

// SubmitGuess validates a raw guess and checks it against the win condition
// before any reply is requested.
//
// Input that is too long or empty after sanitizing yields OutcomeRejected and
// changes nothing. Otherwise the guess is stored as a player turn and the
// attempt counter increases. A guess that already contains the secret wins
// immediately; any other guess returns OutcomePending and the caller should
// obtain a reply and pass it to ApplyReply.
func (t *Tracker) SubmitGuess(ctx context.Context, levelID int, rawGuess string) (Outcome, error) {
	scope := common.NewScope(ctx, "progress.SubmitGuess")
	defer scope.Finish()
	scope.SetAttributes("level_id", levelID)

	clamped, err := sanitize.ClampInput(rawGuess)
	if err != nil {
		metrics.GuessesTotal.WithLabelValues(OutcomeRejected.String()).Inc()
		scope.Log.Debugf("guess rejected for level %d: too long", levelID)
		return Rejected(err.Error()), nil
	}
	guess := sanitize.Answer(clamped)
	if guess == "" {
		metrics.GuessesTotal.WithLabelValues(OutcomeRejected.String()).Inc()
		return Rejected(EmptyGuessMessage), nil
	}

	lvl, gs, rt, _, err := t.prepare(scope.Ctx, levelID)
	if err != nil {
		scope.TraceError(err)
		return Outcome{}, err
	}

	rt.Attempts++
	rt.ChatHistory = append(rt.ChatHistory, state.ChatTurn{Role: state.RolePlayer, Text: guess})
	alreadyCompleted := gs.IsCompleted(levelID)
	if err := t.save(scope.Ctx, gs); err != nil {
		scope.TraceError(err)
		return Outcome{}, err
	}

	if !win.CheckWin(lvl, guess) {
		metrics.GuessesTotal.WithLabelValues(OutcomePending.String()).Inc()
		return Pending(), nil
	}

	scope.TraceEvent("guess revealed the secret")
	metrics.GuessesTotal.WithLabelValues(OutcomeWon.String()).Inc()
	if !alreadyCompleted {
		if _, err := t.RecordLevelComplete(scope.Ctx, levelID); err != nil {
			scope.TraceError(err)
			return Outcome{}, err
		}
	}
	return Won(alreadyCompleted), nil
}

// ApplyReply stores the character's reply and checks it against the win
// condition. A win on a level that was not yet completed records the
// completion.
func (t *Tracker) ApplyReply(ctx context.Context, levelID int, replyText string) (Outcome, error) {
	scope := common.NewScope(ctx, "progress.ApplyReply")
	defer scope.Finish()
	scope.SetAttributes("level_id", levelID)

	lvl, gs, rt, _, err := t.prepare(scope.Ctx, levelID)
	if err != nil {
		scope.TraceError(err)
		return Outcome{}, err
	}

	rt.ChatHistory = append(rt.ChatHistory, state.ChatTurn{Role: state.RoleCharacter, Text: replyText})
	alreadyCompleted := gs.IsCompleted(levelID)
	if err := t.save(scope.Ctx, gs); err != nil {
		scope.TraceError(err)
		return Outcome{}, err
	}

	if !win.CheckWin(lvl, replyText) {
		metrics.RepliesTotal.WithLabelValues(OutcomePending.String()).Inc()
		return Pending(), nil
	}

	scope.TraceEvent("reply revealed the secret")
	metrics.RepliesTotal.WithLabelValues(OutcomeWon.String()).Inc()
	if !alreadyCompleted {
		if _, err := t.RecordLevelComplete(scope.Ctx, levelID); err != nil {
			scope.TraceError(err)
			return Outcome{}, err
		}
	}
	return Won(alreadyCompleted), nil
}

// RecordLevelComplete marks a level completed, advances the current level and
// notifies the completion recorder. It is idempotent: a second call for the
// same level changes nothing and the recorder does not count it twice.
// Returns true when the level was newly completed.
func (t *Tracker) RecordLevelComplete(ctx context.Context, levelID int) (bool, error) {
	scope := common.NewScope(ctx, "progress.RecordLevelComplete")
	defer scope.Finish()
	scope.SetAttributes("level_id", levelID)

	if _, ok := t.catalog.Get(levelID); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}

	gs, err := state.LoadGameState(scope.Ctx, t.store)
	if err != nil {
		scope.TraceError(err)
		return false, err
	}
	fresh := gs.MarkCompleted(levelID)
	if err := t.save(scope.Ctx, gs); err != nil {
		scope.TraceError(err)
		return false, err
	}

	if fresh {
		metrics.LevelCompletionsTotal.WithLabelValues(state.LevelKey(levelID)).Inc()
		scope.Log.Infof("level %d completed, current level is now %d", levelID, gs.CurrentLevel)
	}

	if t.recorder != nil {
		if err := t.recorder.RecordCompletionForCurrentUser(scope.Ctx, levelID); err != nil {
			scope.TraceError(err)
			return fresh, fmt.Errorf("failed to update leaderboard: %w", err)
		}
	}
	return fresh, nil
}

// State returns a copy of the game state. It never writes.
func (t *Tracker) State(ctx context.Context) (state.GameState, error) {
	gs, err := state.LoadGameState(ctx, t.store)
	if err != nil {
		return state.GameState{}, err
	}
	return gs.Clone(), nil
}

// History returns a copy of a level's chat history, empty if never opened.
func (t *Tracker) History(ctx context.Context, levelID int) ([]state.ChatTurn, error) {
	gs, err := state.LoadGameState(ctx, t.store)
	if err != nil {
		return nil, err
	}
	rt := gs.Runtime(levelID)
	if rt == nil {
		return []state.ChatTurn{}, nil
	}
	return slices.Clone(rt.ChatHistory), nil
}

// CanAccess reports whether the active player may open a level.
func (t *Tracker) CanAccess(ctx context.Context, levelID int) (bool, error) {
	if _, ok := t.catalog.Get(levelID); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}
	gs, err := state.LoadGameState(ctx, t.store)
	if err != nil {
		return false, err
	}
	return t.accessible(ctx, gs, levelID)
}

func (t *Tracker) accessible(ctx context.Context, gs *state.GameState, levelID int) (bool, error) {
	if levelID <= gs.CurrentLevel || gs.IsCompleted(levelID) {
		return true, nil
	}
	if t.access == nil {
		return false, nil
	}
	return t.access.IsDeveloper(ctx)
}

// prepare resolves the level, loads the game state, checks access and makes
// sure the level has a runtime. created is true if the runtime was seeded by
// this call and has not been saved yet.
func (t *Tracker) prepare(ctx context.Context, levelID int) (level.Level, *state.GameState, *state.LevelRuntime, bool, error) {
	lvl, ok := t.catalog.Get(levelID)
	if !ok {
		return level.Level{}, nil, nil, false, fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}

	gs, err := state.LoadGameState(ctx, t.store)
	if err != nil {
		return level.Level{}, nil, nil, false, err
	}

	ok, err = t.accessible(ctx, gs, levelID)
	if err != nil {
		return level.Level{}, nil, nil, false, err
	}
	if !ok {
		return level.Level{}, nil, nil, false, fmt.Errorf("%w: %d", ErrLevelLocked, levelID)
	}

	rt := gs.Runtime(levelID)
	created := false
	if rt == nil {
		rt = &state.LevelRuntime{
			ChatHistory: []state.ChatTurn{{Role: state.RoleCharacter, Text: lvl.IntroLine()}},
		}
		gs.SetRuntime(levelID, rt)
		created = true
	}
	return lvl, gs, rt, created, nil
}

// save writes the game state, assigning a session id to a fresh document.
func (t *Tracker) save(ctx context.Context, gs *state.GameState) error {
	state.EnsureSessionID(gs)
	return state.SaveGameState(ctx, t.store, gs)
}
