// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import "github.com/AccelByte/extend-secret-keeper/pkg/sanitize"

// Screen identifies which screen the renderer should show.
type Screen string

const (
	ScreenHome        Screen = "home"
	ScreenLevels      Screen = "levels"
	ScreenChat        Screen = "chat"
	ScreenLeaderboard Screen = "leaderboard"
)

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	switch s {
	case ScreenHome, ScreenLevels, ScreenChat, ScreenLeaderboard:
		return true
	}
	return false
}

// Role is the author of a chat turn.
type Role string

const (
	RolePlayer    Role = "player"
	RoleCharacter Role = "character"
)

// UiSession is the renderer-facing pointer persisted under KeyUiSession.
// Username is the join key used by the leaderboard.
type UiSession struct {
	ActiveScreen    Screen `json:"activeScreen"`
	SelectedLevelID *int   `json:"selectedLevelId"`
	Username        string `json:"username"`
	DeveloperMode   bool   `json:"developerMode"`
}

// GameState is the progression document persisted under KeyGameState.
type GameState struct {
	SessionID       string                   `json:"sessionId"`
	CurrentLevel    int                      `json:"currentLevel"`
	CompletedLevels []int                    `json:"completedLevels"`
	Levels          map[string]*LevelRuntime `json:"levels"`
}

// LevelRuntime holds the conversation for one level.
type LevelRuntime struct {
	Attempts    int        `json:"attempts"`
	ChatHistory []ChatTurn `json:"chatHistory"`
}

// ChatTurn is one message in a level conversation.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// LeaderboardEntry aggregates completions for one username.
// Score always equals len(CompletedLevels).
type LeaderboardEntry struct {
	SessionID       string `json:"sessionId"`
	Username        string `json:"username"`
	CompletedLevels []int  `json:"completedLevels"`
	Score           int    `json:"score"`
}

// NewUiSession returns the default ui-session document.
func NewUiSession() *UiSession {
	return &UiSession{
		ActiveScreen: ScreenHome,
		Username:     sanitize.DefaultUsername,
	}
}

// NewGameState returns a fresh game-state document without a session id.
func NewGameState() *GameState {
	return &GameState{
		CurrentLevel:    1,
		CompletedLevels: []int{},
		Levels:          make(map[string]*LevelRuntime),
	}
}
