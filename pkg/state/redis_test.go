// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestRedisStore_GetMissing(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{Profile: "p1"})
	_, err := store.Get(context.Background(), KeyGameState)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, expected ErrNotFound", err)
	}
}

func TestRedisStore_SetGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{Profile: "p1"})

	if err := store.Set(ctx, KeyLeaderboard, []byte(`[]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, KeyLeaderboard)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Get() = %s, expected []", got)
	}

	raw, err := mr.Get("secret_keeper:p1:leaderboard")
	if err != nil {
		t.Fatalf("raw key missing: %v", err)
	}
	if raw != "[]" {
		t.Errorf("raw value = %s, expected []", raw)
	}
}

func TestRedisStore_ProfilesAreIsolated(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	a := NewRedisStore(client, RedisStoreConfig{Profile: "a"})
	b := NewRedisStore(client, RedisStoreConfig{Profile: "b"})

	_ = a.Set(ctx, KeyGameState, []byte(`{"currentLevel":3}`))
	if _, err := b.Get(ctx, KeyGameState); !errors.Is(err, ErrNotFound) {
		t.Errorf("profile b sees profile a data: %v", err)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{Profile: "ttl", TTL: 24 * time.Hour})
	_ = store.Set(ctx, KeyGameState, []byte(`{}`))

	ttl := mr.TTL("secret_keeper:ttl:game-state")
	if ttl != 24*time.Hour {
		t.Errorf("TTL = %v, expected %v", ttl, 24*time.Hour)
	}

	persistent := NewRedisStore(client, RedisStoreConfig{Profile: "forever"})
	_ = persistent.Set(ctx, KeyGameState, []byte(`{}`))
	if ttl := mr.TTL("secret_keeper:forever:game-state"); ttl != 0 {
		t.Errorf("TTL = %v, expected none", ttl)
	}
}

func TestRedisStore_ResetAndRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{Profile: "rt"})

	gs := NewGameState()
	EnsureSessionID(gs)
	gs.MarkCompleted(1)
	if err := SaveGameState(ctx, store, gs); err != nil {
		t.Fatalf("SaveGameState() error = %v", err)
	}
	if err := SaveUiSession(ctx, store, NewUiSession()); err != nil {
		t.Fatalf("SaveUiSession() error = %v", err)
	}

	loaded, err := LoadGameState(ctx, store)
	if err != nil {
		t.Fatalf("LoadGameState() error = %v", err)
	}
	if loaded.SessionID != gs.SessionID {
		t.Errorf("SessionID = %s, expected %s", loaded.SessionID, gs.SessionID)
	}

	if err := Reset(ctx, store); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if mr.Exists("secret_keeper:rt:game-state") || mr.Exists("secret_keeper:rt:ui-session") {
		t.Error("keys should be gone after reset")
	}
}

func TestRedisStore_BackendDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, RedisStoreConfig{})
	mr.Close()

	if _, err := store.Get(context.Background(), KeyGameState); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, expected a backend error", err)
	}
}

func TestInitRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client, err := InitRedisClient(context.Background(), RedisOptions{
		Host:       mr.Host(),
		Port:       mr.Port(),
		MaxRetries: 1,
	})
	if err != nil {
		t.Fatalf("InitRedisClient() error = %v", err)
	}
	defer client.Close()

	if !NewHealthChecker(client).IsHealthy(context.Background()) {
		t.Error("expected healthy client")
	}
}

func TestHealthChecker_DetectsOutage(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	h := NewHealthChecker(client)
	if err := h.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	mr.Close()
	if h.IsHealthy(context.Background()) {
		t.Error("expected unhealthy after redis stopped")
	}
}
