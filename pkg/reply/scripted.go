// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reply

import (
	"context"

	"github.com/AccelByte/extend-secret-keeper/pkg/state"
)

var deflections = []string{
	"An interesting question. I am afraid my lips are sealed.",
	"You will have to be cleverer than that.",
	"Ha! Nice try. Ask me something else.",
	"I have guarded this word for a very long time. I am not about to slip now.",
}

// Scripted is an offline Source that cycles through canned deflections.
// It never reveals anything, so levels can only be won by guessing.
type Scripted struct {
	Lines []string
}

// Reply picks a line based on how many player turns the history holds.
func (s Scripted) Reply(_ context.Context, _ string, history []state.ChatTurn) (string, error) {
	lines := s.Lines
	if len(lines) == 0 {
		lines = deflections
	}
	n := 0
	for _, turn := range history {
		if turn.Role == state.RolePlayer {
			n++
		}
	}
	if n > 0 {
		n--
	}
	return lines[n%len(lines)], nil
}
