// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package engine wires the game components over one store and runs a single
// player turn end to end.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AccelByte/extend-secret-keeper/pkg/common"
	"github.com/AccelByte/extend-secret-keeper/pkg/identity"
	"github.com/AccelByte/extend-secret-keeper/pkg/leaderboard"
	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/AccelByte/extend-secret-keeper/pkg/metrics"
	"github.com/AccelByte/extend-secret-keeper/pkg/progress"
	"github.com/AccelByte/extend-secret-keeper/pkg/reply"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
)

// Options configures the engine.
type Options struct {
	AdminUsername string
}

// Engine is the composition root.
type Engine struct {
	store       state.Store
	catalog     *level.Catalog
	identity    *identity.Service
	leaderboard *leaderboard.Aggregator
	tracker     *progress.Tracker
}

// New creates an engine over store.
func New(store state.Store, catalog *level.Catalog, opts Options) *Engine {
	ident := identity.NewService(store, identity.Config{AdminUsername: opts.AdminUsername})
	board := leaderboard.NewAggregator(store, ident)
	return &Engine{
		store:       store,
		catalog:     catalog,
		identity:    ident,
		leaderboard: board,
		tracker:     progress.NewTracker(store, catalog, ident, board),
	}
}

// Identity returns the session identity service.
func (e *Engine) Identity() *identity.Service { return e.identity }

// Leaderboard returns the leaderboard aggregator.
func (e *Engine) Leaderboard() *leaderboard.Aggregator { return e.leaderboard }

// Tracker returns the progress tracker.
func (e *Engine) Tracker() *progress.Tracker { return e.tracker }

// Catalog returns the level catalog.
func (e *Engine) Catalog() *level.Catalog { return e.catalog }

// Result is the outcome of one Play call.
type Result struct {
	Outcome progress.Outcome
	// Reply is the character turn to display. It is nil when the guess was
	// rejected or won before a reply was needed.
	Reply *state.ChatTurn
	// ReplyFailed is set when the source failed and Reply holds the
	// fallback turn, which is not stored in the history.
	ReplyFailed bool
}

// Play submits a guess and, if the level is still pending, asks src for one
// character reply and applies it.
//
// A failed or empty reply yields the fallback turn and leaves the stored
// state as SubmitGuess left it. Play never retries; wrap src with
// reply.WithRetry for that.
func (e *Engine) Play(ctx context.Context, levelID int, rawGuess string, src reply.Source) (Result, error) {
	scope := common.NewScope(ctx, "engine.Play")
	defer scope.Finish()
	scope.SetAttributes("level_id", levelID)

	outcome, err := e.tracker.SubmitGuess(scope.Ctx, levelID, rawGuess)
	if err != nil {
		scope.TraceError(err)
		return Result{}, err
	}
	if outcome.Kind != progress.OutcomePending {
		return Result{Outcome: outcome}, nil
	}

	lvl, _ := e.catalog.Get(levelID)
	history, err := e.tracker.History(scope.Ctx, levelID)
	if err != nil {
		scope.TraceError(err)
		return Result{}, err
	}

	text, err := e.reply(scope, src, lvl.SystemPrompt, history)
	if err != nil {
		metrics.ReplyFailuresTotal.Inc()
		scope.Log.Warnf("reply for level %d failed: %v", levelID, err)
		fallback := reply.FallbackTurn()
		return Result{Outcome: outcome, Reply: &fallback, ReplyFailed: true}, nil
	}

	outcome, err = e.tracker.ApplyReply(scope.Ctx, levelID, text)
	if err != nil {
		scope.TraceError(err)
		return Result{}, err
	}
	return Result{
		Outcome: outcome,
		Reply:   &state.ChatTurn{Role: state.RoleCharacter, Text: text},
	}, nil
}

func (e *Engine) reply(scope *common.Scope, src reply.Source, systemPrompt string, history []state.ChatTurn) (string, error) {
	if src == nil {
		return "", errors.New("no reply source configured")
	}
	child := scope.NewChildScope("reply.Source")
	defer child.Finish()

	text, err := src.Reply(child.Ctx, systemPrompt, history)
	if err != nil {
		child.TraceError(err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		child.TraceError(reply.ErrEmptyReply)
		return "", reply.ErrEmptyReply
	}
	return text, nil
}

// Reset deletes every persisted document. The next session id request
// generates a new id.
func (e *Engine) Reset(ctx context.Context) error {
	if err := state.Reset(ctx, e.store); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}
	return nil
}
