// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tui

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-secret-keeper/pkg/progress"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	body := m.viewport.View()
	if side := m.renderSide(); side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	status := ""
	switch {
	case m.err != nil:
		status = noticeStyle.Render("Error: " + m.err.Error())
	case m.waiting:
		status = noticeStyle.Render("The character is thinking...")
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		status,
		m.textInput.View(),
		helpStyle.Render(m.help()),
	)
}

func (m model) help() string {
	switch m.screen {
	case state.ScreenHome:
		return "Type your name and press enter. /board, /reset, /quit"
	case state.ScreenLevels:
		return "Type a level number to play. /board, /name, /reset, /quit"
	case state.ScreenChat:
		return "Talk to the character. /back, /board, /quit"
	}
	return "/back, /quit"
}

func (m model) renderHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SECRET KEEPER") + "\n\n")
	b.WriteString("Every character guards a secret word. Talk them into saying it, or guess it yourself.\n\n")
	name, err := m.engine.Identity().GetUsername(m.ctx)
	if err == nil {
		fmt.Fprintf(&b, "Current name: %s\n\nWhat should we call you?", name)
	}
	return b.String()
}

func (m model) renderLevels() string {
	statuses, err := m.engine.Tracker().LevelStatuses(m.ctx)
	if err != nil {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("LEVELS") + "\n\n")
	if first, ok := m.engine.Catalog().First(); ok && len(statuses) > 0 && statuses[0].Availability != progress.Completed {
		fmt.Fprintf(&b, "New here? Start with level %d, %s.\n\n", first.ID, first.Title)
	}
	for _, st := range statuses {
		line := fmt.Sprintf("%2d. %-28s %-8s", st.Level.ID, st.Level.Title, st.Level.Difficulty)
		switch st.Availability {
		case progress.Completed:
			b.WriteString(winStyle.Render(line+" completed") + "\n")
		case progress.Unlocked:
			if st.Attempts > 0 {
				line += fmt.Sprintf(" %d attempts", st.Attempts)
			}
			b.WriteString(line + "\n")
		default:
			b.WriteString(lockedStyle.Render(line+" locked") + "\n")
		}
	}
	return b.String()
}

func (m model) renderChat() string {
	lvl, _ := m.engine.Catalog().Get(m.levelID)
	history, err := m.engine.Tracker().History(m.ctx, m.levelID)
	if err != nil {
		return "Error: " + err.Error()
	}

	width := m.viewport.Width
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("LEVEL %d: %s", lvl.ID, lvl.Title)) + "\n\n")
	for _, turn := range history {
		if turn.Role == state.RolePlayer {
			b.WriteString(playerStyle.Width(width).Render("> "+turn.Text) + "\n\n")
			continue
		}
		b.WriteString(characterStyle.Width(width).Render(turn.Text) + "\n\n")
	}
	return b.String()
}

func (m model) renderLeaderboard() string {
	entries, err := m.engine.Leaderboard().GetLeaderboard(m.ctx)
	if err != nil {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("LEADERBOARD") + "\n\n")
	if len(entries) == 0 {
		b.WriteString("Nobody has found a secret yet.\n")
	}
	for i, e := range entries {
		fmt.Fprintf(&b, "%3d. %-32s %d\n", i+1, e.Username, e.Score)
	}
	return b.String()
}

// renderSide shows the player's progress next to the main view.
func (m model) renderSide() string {
	if m.width == 0 {
		return ""
	}
	ui, err := m.engine.Identity().UiSession(m.ctx)
	if err != nil {
		return ""
	}
	gs, err := m.engine.Tracker().State(m.ctx)
	if err != nil {
		return ""
	}

	content := titleStyle.Render("PLAYER") + "\n" + ui.Username + "\n\n"
	if ui.DeveloperMode {
		content += noticeStyle.Render("developer mode") + "\n\n"
	}
	content += titleStyle.Render("PROGRESS") + "\n"
	content += fmt.Sprintf("Completed: %d/%d\n", len(gs.CompletedLevels), m.engine.Catalog().Len())
	if rank, ok, err := m.engine.Leaderboard().Rank(m.ctx, ui.Username); err == nil && ok {
		content += fmt.Sprintf("Rank: #%d\n", rank)
	}
	if m.screen == state.ScreenChat {
		if rt := gs.Runtime(m.levelID); rt != nil {
			content += fmt.Sprintf("Attempts: %d\n", rt.Attempts)
		}
	}

	width := int(float64(m.width) * 0.23)
	return sideStyle.Width(width).Height(m.viewport.Height).Render(content)
}
