// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/AccelByte/extend-secret-keeper/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error)  { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error    { return f.err }
func (f failingStore) Delete(context.Context, ...string) error      { return f.err }

func TestLoadGameState_Missing(t *testing.T) {
	gs, err := LoadGameState(context.Background(), NewMemoryStore())
	if err != nil {
		t.Fatalf("LoadGameState() error = %v", err)
	}
	if gs.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, expected 1", gs.CurrentLevel)
	}
	if len(gs.CompletedLevels) != 0 {
		t.Errorf("CompletedLevels = %v, expected empty", gs.CompletedLevels)
	}
	if gs.SessionID != "" {
		t.Errorf("SessionID = %q, expected empty", gs.SessionID)
	}
}

func TestLoad_CorruptFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, key := range AllKeys {
		_ = store.Set(ctx, key, []byte("{not json"))
	}

	before := testutil.ToFloat64(metrics.PersistenceFallbacksTotal.WithLabelValues(KeyGameState))

	gs, err := LoadGameState(ctx, store)
	if err != nil {
		t.Fatalf("LoadGameState() error = %v", err)
	}
	if !reflect.DeepEqual(gs, NewGameState()) {
		t.Errorf("LoadGameState() = %+v, expected defaults", gs)
	}

	ui, err := LoadUiSession(ctx, store)
	if err != nil {
		t.Fatalf("LoadUiSession() error = %v", err)
	}
	if !reflect.DeepEqual(ui, NewUiSession()) {
		t.Errorf("LoadUiSession() = %+v, expected defaults", ui)
	}

	lb, err := LoadLeaderboard(ctx, store)
	if err != nil {
		t.Fatalf("LoadLeaderboard() error = %v", err)
	}
	if len(lb) != 0 {
		t.Errorf("LoadLeaderboard() = %v, expected empty", lb)
	}

	after := testutil.ToFloat64(metrics.PersistenceFallbacksTotal.WithLabelValues(KeyGameState))
	if after != before+1 {
		t.Errorf("fallback counter = %v, expected %v", after, before+1)
	}
}

func TestLoad_WrongShapeFallsBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, KeyLeaderboard, []byte(`{"username":"a"}`))

	lb, err := LoadLeaderboard(ctx, store)
	if err != nil {
		t.Fatalf("LoadLeaderboard() error = %v", err)
	}
	if len(lb) != 0 {
		t.Errorf("LoadLeaderboard() = %v, expected empty", lb)
	}
}

func TestLoad_BackendErrorPropagates(t *testing.T) {
	backendErr := errors.New("connection refused")
	_, err := LoadGameState(context.Background(), failingStore{err: backendErr})
	if !errors.Is(err, backendErr) {
		t.Errorf("LoadGameState() error = %v, expected wrapped %v", err, backendErr)
	}
}

func TestGameState_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	gs := NewGameState()
	EnsureSessionID(gs)
	gs.MarkCompleted(1)
	gs.SetRuntime(2, &LevelRuntime{
		Attempts: 3,
		ChatHistory: []ChatTurn{
			{Role: RoleCharacter, Text: "Hello there."},
			{Role: RolePlayer, Text: "is it bark"},
		},
	})

	if err := SaveGameState(ctx, store, gs); err != nil {
		t.Fatalf("SaveGameState() error = %v", err)
	}
	loaded, err := LoadGameState(ctx, store)
	if err != nil {
		t.Fatalf("LoadGameState() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, gs) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, gs)
	}
}

func TestUiSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	level := 3
	ui := &UiSession{ActiveScreen: ScreenChat, SelectedLevelID: &level, Username: "Admin", DeveloperMode: true}
	if err := SaveUiSession(ctx, store, ui); err != nil {
		t.Fatalf("SaveUiSession() error = %v", err)
	}
	loaded, err := LoadUiSession(ctx, store)
	if err != nil {
		t.Fatalf("LoadUiSession() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, ui) {
		t.Errorf("LoadUiSession() = %+v, expected %+v", loaded, ui)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, key := range AllKeys {
		_ = store.Set(ctx, key, []byte("{}"))
	}
	_ = store.Set(ctx, "unrelated", []byte("1"))

	if err := Reset(ctx, store); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	for _, key := range AllKeys {
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Errorf("key %s still present after reset", key)
		}
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", store.Len())
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := []byte("abc")
	_ = store.Set(ctx, "k", in)
	in[0] = 'x'

	out, _ := store.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("Get() = %s, expected abc", out)
	}
	out[0] = 'y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Get() = %s, expected abc", again)
	}
}
