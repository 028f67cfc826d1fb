// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package reply produces character replies for a level conversation.
//
// A Source is the collaborator the engine asks for the next character turn.
// The engine itself never retries; decorate a Source with WithRetry to retry
// on the collaborator side.
package reply

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// FallbackText is shown as the character's turn when no reply could be
// obtained. It is never persisted.
const FallbackText = "The connection flickers and the character falls silent. Try asking again."

// ErrEmptyReply indicates the source answered with no text.
var ErrEmptyReply = errors.New("empty reply")

// Source returns the next character reply given the level's system prompt
// and the conversation so far. The last turn of history is the player's
// newest message.
type Source interface {
	Reply(ctx context.Context, systemPrompt string, history []state.ChatTurn) (string, error)
}

// Func adapts a function to a Source.
type Func func(ctx context.Context, systemPrompt string, history []state.ChatTurn) (string, error)

// Reply calls f.
func (f Func) Reply(ctx context.Context, systemPrompt string, history []state.ChatTurn) (string, error) {
	return f(ctx, systemPrompt, history)
}

// FallbackTurn is the character turn to display when a reply fails.
func FallbackTurn() state.ChatTurn {
	return state.ChatTurn{Role: state.RoleCharacter, Text: FallbackText}
}

// RetryOptions tunes WithRetry.
type RetryOptions struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryOptions mirrors the redis connection retry policy.
func DefaultRetryOptions(maxRetries int) RetryOptions {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryOptions{
		MaxRetries:      uint64(maxRetries),
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

type retrySource struct {
	next Source
	opts RetryOptions
}

// WithRetry wraps src so that failed or empty replies are retried with
// exponential backoff. Context cancellation stops retrying.
func WithRetry(src Source, opts RetryOptions) Source {
	if opts.MaxRetries == 0 {
		return src
	}
	return &retrySource{next: src, opts: opts}
}

func (r *retrySource) Reply(ctx context.Context, systemPrompt string, history []state.ChatTurn) (string, error) {
	expBackoff := backoff.NewExponentialBackOff()
	if r.opts.InitialInterval > 0 {
		expBackoff.InitialInterval = r.opts.InitialInterval
	}
	if r.opts.MaxInterval > 0 {
		expBackoff.MaxInterval = r.opts.MaxInterval
	}
	b := backoff.WithContext(backoff.WithMaxRetries(expBackoff, r.opts.MaxRetries), ctx)

	var text string
	attempt := 0
	operation := func() error {
		attempt++
		out, err := r.next.Reply(ctx, systemPrompt, history)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			logrus.Warnf("reply attempt %d failed: %v", attempt, err)
			return err
		}
		if strings.TrimSpace(out) == "" {
			logrus.Warnf("reply attempt %d returned no text", attempt)
			return ErrEmptyReply
		}
		text = out
		return nil
	}

	if err := backoff.Retry(operation, b); err != nil {
		return "", err
	}
	return text, nil
}
