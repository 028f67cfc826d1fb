// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors updated by the engine.
// They are registered on the metrics server registry in internal/server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "secret_keeper"

var (
	// GuessesTotal counts submitted guesses by outcome (rejected, won, pending).
	GuessesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Total number of guesses submitted, by outcome",
		},
		[]string{"outcome"},
	)

	// RepliesTotal counts character replies applied by outcome (won, pending).
	RepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "Total number of character replies applied, by outcome",
		},
		[]string{"outcome"},
	)

	// ReplyFailuresTotal counts reply-source failures that produced a fallback turn.
	ReplyFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_failures_total",
			Help:      "Total number of reply source failures",
		},
	)

	// LevelCompletionsTotal counts first-time level completions.
	LevelCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_completions_total",
			Help:      "Total number of fresh level completions",
		},
		[]string{"level_id"},
	)

	// PersistenceFallbacksTotal counts corrupt documents replaced by defaults.
	PersistenceFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_fallbacks_total",
			Help:      "Total number of stored documents that failed to parse and were replaced by defaults",
		},
		[]string{"key"},
	)
)

// Collectors returns every collector in this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		GuessesTotal,
		RepliesTotal,
		ReplyFailuresTotal,
		LevelCompletionsTotal,
		PersistenceFallbacksTotal,
	}
}
