// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewSessionID returns an opaque identifier made of a millisecond timestamp
// and random bits (UUIDv7).
func NewSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure: fall back to a random v4 with the clock appended
		return fmt.Sprintf("%s-%x", uuid.NewString(), time.Now().UnixNano())
	}
	return id.String()
}

// EnsureSessionID assigns a session id when the document has none.
// Returns true if the document changed.
func EnsureSessionID(gs *GameState) bool {
	if gs.SessionID != "" {
		return false
	}
	gs.SessionID = NewSessionID()
	logrus.Infof("generated session id %s", gs.SessionID)
	return true
}

// LevelKey is the map key used for a level id in GameState.Levels.
func LevelKey(levelID int) string {
	return strconv.Itoa(levelID)
}

// IsCompleted reports whether levelID is in CompletedLevels.
func (gs *GameState) IsCompleted(levelID int) bool {
	return slices.Contains(gs.CompletedLevels, levelID)
}

// MarkCompleted adds levelID to CompletedLevels if absent and advances
// CurrentLevel so that it never decreases:
//
//	CurrentLevel = max(CurrentLevel, max(CompletedLevels)+1)
//
// Returns true if levelID was newly added.
func (gs *GameState) MarkCompleted(levelID int) bool {
	fresh := !gs.IsCompleted(levelID)
	if fresh {
		gs.CompletedLevels = append(gs.CompletedLevels, levelID)
		slices.Sort(gs.CompletedLevels)
	}
	gs.advance()
	return fresh
}

func (gs *GameState) advance() {
	if gs.CurrentLevel < 1 {
		gs.CurrentLevel = 1
	}
	if len(gs.CompletedLevels) == 0 {
		return
	}
	if next := slices.Max(gs.CompletedLevels) + 1; next > gs.CurrentLevel {
		logrus.Debugf("current level advanced %d -> %d", gs.CurrentLevel, next)
		gs.CurrentLevel = next
	}
}

// Runtime returns the runtime for levelID, or nil if the level was never opened.
func (gs *GameState) Runtime(levelID int) *LevelRuntime {
	if gs.Levels == nil {
		return nil
	}
	return gs.Levels[LevelKey(levelID)]
}

// SetRuntime stores rt for levelID.
func (gs *GameState) SetRuntime(levelID int, rt *LevelRuntime) {
	if gs.Levels == nil {
		gs.Levels = make(map[string]*LevelRuntime)
	}
	gs.Levels[LevelKey(levelID)] = rt
}

// Clone returns a deep copy so callers can hand out values without sharing
// the backing slices of a document that will be written again.
func (gs *GameState) Clone() GameState {
	out := GameState{
		SessionID:       gs.SessionID,
		CurrentLevel:    gs.CurrentLevel,
		CompletedLevels: slices.Clone(gs.CompletedLevels),
		Levels:          make(map[string]*LevelRuntime, len(gs.Levels)),
	}
	for k, rt := range gs.Levels {
		if rt == nil {
			continue
		}
		c := rt.Clone()
		out.Levels[k] = &c
	}
	return out
}

// Clone returns a deep copy of the runtime.
func (rt *LevelRuntime) Clone() LevelRuntime {
	return LevelRuntime{
		Attempts:    rt.Attempts,
		ChatHistory: slices.Clone(rt.ChatHistory),
	}
}

// normalize repairs documents written by older builds or edited by hand so
// that the invariants hold after every load.
func (gs *GameState) normalize() {
	if gs.CompletedLevels == nil {
		gs.CompletedLevels = []int{}
	}
	slices.Sort(gs.CompletedLevels)
	gs.CompletedLevels = slices.Compact(gs.CompletedLevels)
	if gs.Levels == nil {
		gs.Levels = make(map[string]*LevelRuntime)
	}
	for k, rt := range gs.Levels {
		if rt == nil {
			delete(gs.Levels, k)
			continue
		}
		if rt.Attempts < 0 {
			rt.Attempts = 0
		}
		if rt.ChatHistory == nil {
			rt.ChatHistory = []ChatTurn{}
		}
	}
	gs.advance()
}

func (ui *UiSession) normalize() {
	if !ui.ActiveScreen.Valid() {
		ui.ActiveScreen = ScreenHome
	}
	if ui.Username == "" {
		ui.Username = NewUiSession().Username
	}
}

// normalizeLeaderboard drops nameless entries, merges duplicate usernames
// into the first occurrence and recomputes every score from its level set.
func normalizeLeaderboard(entries []LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.Username == "" {
			continue
		}
		if i, ok := index[e.Username]; ok {
			out[i].CompletedLevels = append(out[i].CompletedLevels, e.CompletedLevels...)
			continue
		}
		index[e.Username] = len(out)
		e.CompletedLevels = slices.Clone(e.CompletedLevels)
		out = append(out, e)
	}
	for i := range out {
		out[i].CompletedLevels = dedupe(out[i].CompletedLevels)
		out[i].Score = len(out[i].CompletedLevels)
	}
	SortLeaderboard(out)
	return out
}

// SortLeaderboard orders entries by score, highest first. Equal scores keep
// their existing relative order.
func SortLeaderboard(entries []LeaderboardEntry) {
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return b.Score - a.Score
	})
}

// dedupe removes repeated ids while keeping first-seen order.
func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
