// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"slices"
	"testing"
)

func TestMarkCompleted(t *testing.T) {
	tests := []struct {
		name            string
		state           *GameState
		levelID         int
		expectFresh     bool
		expectCurrent   int
		expectCompleted []int
	}{
		{
			name:            "first completion advances",
			state:           NewGameState(),
			levelID:         1,
			expectFresh:     true,
			expectCurrent:   2,
			expectCompleted: []int{1},
		},
		{
			name: "duplicate completion is a no-op",
			state: &GameState{
				CurrentLevel:    2,
				CompletedLevels: []int{1},
			},
			levelID:         1,
			expectFresh:     false,
			expectCurrent:   2,
			expectCompleted: []int{1},
		},
		{
			name: "out of order completion jumps ahead",
			state: &GameState{
				CurrentLevel:    2,
				CompletedLevels: []int{1},
			},
			levelID:         4,
			expectFresh:     true,
			expectCurrent:   5,
			expectCompleted: []int{1, 4},
		},
		{
			name: "completing an earlier level never lowers current level",
			state: &GameState{
				CurrentLevel:    6,
				CompletedLevels: []int{5},
			},
			levelID:         2,
			expectFresh:     true,
			expectCurrent:   6,
			expectCompleted: []int{2, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh := tt.state.MarkCompleted(tt.levelID)
			if fresh != tt.expectFresh {
				t.Errorf("MarkCompleted() = %v, expected %v", fresh, tt.expectFresh)
			}
			if tt.state.CurrentLevel != tt.expectCurrent {
				t.Errorf("CurrentLevel = %d, expected %d", tt.state.CurrentLevel, tt.expectCurrent)
			}
			if !slices.Equal(tt.state.CompletedLevels, tt.expectCompleted) {
				t.Errorf("CompletedLevels = %v, expected %v", tt.state.CompletedLevels, tt.expectCompleted)
			}
		})
	}
}

func TestEnsureSessionID(t *testing.T) {
	gs := NewGameState()
	if !EnsureSessionID(gs) {
		t.Fatal("EnsureSessionID() should assign an id to a fresh state")
	}
	id := gs.SessionID
	if id == "" {
		t.Fatal("SessionID should not be empty")
	}
	if EnsureSessionID(gs) {
		t.Error("EnsureSessionID() should not change an existing id")
	}
	if gs.SessionID != id {
		t.Errorf("SessionID = %s, expected %s", gs.SessionID, id)
	}
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewSessionID()
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestNormalize(t *testing.T) {
	gs := &GameState{
		CurrentLevel:    0,
		CompletedLevels: []int{3, 1, 3},
		Levels: map[string]*LevelRuntime{
			"1": {Attempts: -2},
			"2": nil,
		},
	}
	gs.normalize()

	if !slices.Equal(gs.CompletedLevels, []int{1, 3}) {
		t.Errorf("CompletedLevels = %v, expected [1 3]", gs.CompletedLevels)
	}
	if gs.CurrentLevel != 4 {
		t.Errorf("CurrentLevel = %d, expected 4", gs.CurrentLevel)
	}
	if _, ok := gs.Levels["2"]; ok {
		t.Error("nil runtime should be dropped")
	}
	if gs.Levels["1"].Attempts != 0 {
		t.Errorf("Attempts = %d, expected 0", gs.Levels["1"].Attempts)
	}
	if gs.Levels["1"].ChatHistory == nil {
		t.Error("ChatHistory should be initialized")
	}
}

func TestClone_IsDeep(t *testing.T) {
	gs := NewGameState()
	gs.CompletedLevels = []int{1}
	gs.SetRuntime(1, &LevelRuntime{ChatHistory: []ChatTurn{{Role: RoleCharacter, Text: "hi"}}})

	c := gs.Clone()
	c.CompletedLevels[0] = 99
	c.Levels["1"].ChatHistory[0].Text = "changed"

	if gs.CompletedLevels[0] != 1 {
		t.Error("clone shares CompletedLevels with the original")
	}
	if gs.Runtime(1).ChatHistory[0].Text != "hi" {
		t.Error("clone shares ChatHistory with the original")
	}
}

func TestNormalizeLeaderboard(t *testing.T) {
	entries := []LeaderboardEntry{
		{Username: "a", CompletedLevels: []int{1}, Score: 7},
		{Username: "", CompletedLevels: []int{1, 2}},
		{Username: "b", CompletedLevels: []int{1, 2, 2}},
		{Username: "a", CompletedLevels: []int{1, 3}},
	}

	got := normalizeLeaderboard(entries)

	if len(got) != 2 {
		t.Fatalf("len = %d, expected 2", len(got))
	}
	for _, e := range got {
		if e.Score != len(e.CompletedLevels) {
			t.Errorf("entry %s score = %d, expected %d", e.Username, e.Score, len(e.CompletedLevels))
		}
	}
	// a: {1,3} score 2 and b: {1,2} score 2 tie, a was first
	if got[0].Username != "a" || got[1].Username != "b" {
		t.Errorf("order = [%s %s], expected [a b]", got[0].Username, got[1].Username)
	}
}
