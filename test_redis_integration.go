// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-secret-keeper/pkg/engine"
	"github.com/AccelByte/extend-secret-keeper/pkg/level"
	"github.com/AccelByte/extend-secret-keeper/pkg/progress"
	"github.com/AccelByte/extend-secret-keeper/pkg/reply"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/sirupsen/logrus"
)

// This is a manual integration test for the Redis store.
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client, err := state.InitRedisClient(ctx, state.RedisOptions{
		Host:       "localhost",
		Port:       "6379",
		MaxRetries: 3,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer client.Close()

	profile := fmt.Sprintf("test-profile-%d", time.Now().Unix())
	logrus.Infof("Testing with profile: %s", profile)

	store := state.NewRedisStore(client, state.RedisStoreConfig{Profile: profile, TTL: time.Hour})
	catalog := level.NewCatalog([]level.Level{
		{ID: 1, Title: "Bark", WinKeywords: []string{"bark"}},
		{ID: 2, Title: "Willow", WinKeywords: []string{"willow"}},
	})
	eng := engine.New(store, catalog, engine.Options{AdminUsername: "Admin"})

	logrus.Infof("=== Test 1: Fresh profile has default state ===")
	gs, err := eng.Tracker().State(ctx)
	if err != nil {
		logrus.Fatalf("State failed: %v", err)
	}
	if gs.CurrentLevel != 1 || len(gs.CompletedLevels) != 0 {
		logrus.Fatalf("unexpected fresh state: %+v", gs)
	}
	logrus.Infof("fresh state ok")

	logrus.Infof("=== Test 2: Set username and play a pending turn ===")
	if _, err := eng.Identity().SetUsername(ctx, "integration"); err != nil {
		logrus.Fatalf("SetUsername failed: %v", err)
	}
	res, err := eng.Play(ctx, 1, "hello", reply.Scripted{Lines: []string{"No."}})
	if err != nil {
		logrus.Fatalf("Play failed: %v", err)
	}
	if res.Outcome.Kind != progress.OutcomePending {
		logrus.Fatalf("expected pending, got %v", res.Outcome.Kind)
	}
	logrus.Infof("pending turn ok")

	logrus.Infof("=== Test 3: Win level 1 with a reply ===")
	res, err = eng.Play(ctx, 1, "please", reply.Scripted{Lines: []string{"Fine. It is BARK."}})
	if err != nil {
		logrus.Fatalf("Play failed: %v", err)
	}
	if !res.Outcome.Fresh() {
		logrus.Fatalf("expected a fresh win, got %+v", res.Outcome)
	}
	logrus.Infof("reply win ok")

	logrus.Infof("=== Test 4: State survives a new engine over the same profile ===")
	again := engine.New(state.NewRedisStore(client, state.RedisStoreConfig{Profile: profile}), catalog, engine.Options{})
	gs, err = again.Tracker().State(ctx)
	if err != nil {
		logrus.Fatalf("State failed: %v", err)
	}
	if !gs.IsCompleted(1) || gs.CurrentLevel != 2 {
		logrus.Fatalf("state not persisted: %+v", gs)
	}
	entries, err := again.Leaderboard().GetLeaderboard(ctx)
	if err != nil {
		logrus.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "integration" || entries[0].Score != 1 {
		logrus.Fatalf("unexpected leaderboard: %+v", entries)
	}
	logrus.Infof("persistence ok")

	logrus.Infof("=== Test 5: Clean up ===")
	if err := eng.Reset(ctx); err != nil {
		logrus.Fatalf("Reset failed: %v", err)
	}
	gs, err = eng.Tracker().State(ctx)
	if err != nil {
		logrus.Fatalf("State after reset failed: %v", err)
	}
	if len(gs.CompletedLevels) != 0 {
		logrus.Fatalf("state should be reset after deletion")
	}
	logrus.Infof("reset ok")

	logrus.Infof("All Redis integration tests passed!")
}
