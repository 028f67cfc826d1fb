// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"io"

	"github.com/AccelByte/extend-secret-keeper/internal/config"
	"github.com/AccelByte/extend-secret-keeper/pkg/reply"
	"github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitReplySource returns the character reply source. With GEMINI_API_KEY
// set it talks to Gemini, otherwise it falls back to scripted replies.
// The returned closer must be closed on shutdown.
func InitReplySource(ctx context.Context, cfg *config.Config) (reply.Source, io.Closer, error) {
	if cfg.GeminiAPIKey == "" {
		logrus.Warn("GEMINI_API_KEY is not set, characters will answer with scripted lines")
		return reply.Scripted{}, nopCloser{}, nil
	}

	gemini, err := reply.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("using gemini model %s for character replies (max retries %d)", cfg.GeminiModel, cfg.ReplyMaxRetries)

	src := reply.WithRetry(gemini, reply.DefaultRetryOptions(cfg.ReplyMaxRetries))
	return src, gemini, nil
}
