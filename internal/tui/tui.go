// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package tui is the terminal renderer. It reads the ui-session to decide
// which screen to show and sends every player action to the engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AccelByte/extend-secret-keeper/pkg/engine"
	"github.com/AccelByte/extend-secret-keeper/pkg/progress"
	"github.com/AccelByte/extend-secret-keeper/pkg/reply"
	"github.com/AccelByte/extend-secret-keeper/pkg/sanitize"
	"github.com/AccelByte/extend-secret-keeper/pkg/state"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type model struct {
	ctx    context.Context
	engine *engine.Engine
	source reply.Source

	screen  state.Screen
	levelID int
	waiting bool
	notice  string
	err     error

	textInput textinput.Model
	viewport  viewport.Model
	width     int
	height    int
}

type replyMsg struct {
	result engine.Result
	err    error
}

func newModel(ctx context.Context, eng *engine.Engine, src reply.Source) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = sanitize.MaxInputLength + 1
	ti.Width = 60

	m := model{
		ctx:       ctx,
		engine:    eng,
		source:    src,
		screen:    state.ScreenHome,
		textInput: ti,
		viewport:  viewport.New(80, 20),
	}
	m.restore()
	return m
}

// restore resumes the screen recorded in the ui-session.
func (m *model) restore() {
	ui, err := m.engine.Identity().UiSession(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.screen = ui.ActiveScreen
	if m.screen == state.ScreenChat {
		if ui.SelectedLevelID == nil {
			m.screen = state.ScreenLevels
		} else if err := m.openLevel(*ui.SelectedLevelID); err != nil {
			logrus.Warnf("could not resume level %d: %v", *ui.SelectedLevelID, err)
			m.screen = state.ScreenLevels
			m.notice = ""
		}
	}
	m.refresh()
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := m.textInput.Value()
			m.textInput.Reset()
			return m.submit(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = max(msg.Height-6, 3)
		m.refresh()

	case replyMsg:
		m.waiting = false
		m.handleReply(msg)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit handles one line of input for the current screen.
func (m model) submit(input string) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.err = nil
	trimmed := strings.TrimSpace(input)

	switch trimmed {
	case "/quit":
		return m, tea.Quit
	case "/reset":
		if err := m.engine.Reset(m.ctx); err != nil {
			m.err = err
		} else {
			m.screen = state.ScreenHome
			m.notice = "Progress erased. Welcome, new player."
		}
		m.refresh()
		return m, nil
	case "/levels", "/back":
		m.navigate(state.ScreenLevels)
		return m, nil
	case "/board":
		m.navigate(state.ScreenLeaderboard)
		return m, nil
	case "/name":
		m.navigate(state.ScreenHome)
		return m, nil
	}

	switch m.screen {
	case state.ScreenHome:
		name, err := m.engine.Identity().SetUsername(m.ctx, input)
		if err != nil {
			m.notice = err.Error()
			break
		}
		m.notice = fmt.Sprintf("Welcome, %s.", name)
		m.navigate(state.ScreenLevels)

	case state.ScreenLevels:
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			m.notice = "Type a level number to play it."
			break
		}
		if err := m.openLevel(id); err != nil {
			break
		}
		if err := m.engine.Identity().SelectLevel(m.ctx, id); err != nil {
			m.err = err
		}

	case state.ScreenChat:
		m.waiting = true
		m.refresh()
		return m, m.play(input)
	}

	m.refresh()
	return m, nil
}

func (m *model) navigate(screen state.Screen) {
	if err := m.engine.Identity().Navigate(m.ctx, screen); err != nil {
		m.err = err
		return
	}
	m.screen = screen
	m.refresh()
}

func (m *model) openLevel(id int) error {
	_, err := m.engine.Tracker().OpenLevel(m.ctx, id)
	switch {
	case errors.Is(err, progress.ErrLevelLocked):
		m.notice = fmt.Sprintf("Level %d is locked. Finish the earlier levels first.", id)
		return err
	case errors.Is(err, progress.ErrUnknownLevel):
		m.notice = fmt.Sprintf("There is no level %d.", id)
		return err
	case err != nil:
		m.err = err
		return err
	}
	m.levelID = id
	m.screen = state.ScreenChat
	return nil
}

func (m model) play(input string) tea.Cmd {
	ctx, eng, src, levelID := m.ctx, m.engine, m.source, m.levelID
	return func() tea.Msg {
		res, err := eng.Play(ctx, levelID, input, src)
		return replyMsg{result: res, err: err}
	}
}

func (m *model) handleReply(msg replyMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	out := msg.result.Outcome
	switch {
	case out.Kind == progress.OutcomeRejected:
		m.notice = out.Reason
	case msg.result.ReplyFailed:
		m.notice = msg.result.Reply.Text
	case out.Fresh():
		m.notice = fmt.Sprintf("You found the secret! Level %d complete.", m.levelID)
	case out.Kind == progress.OutcomeWon:
		m.notice = "You found the secret again. This level was already complete."
	}
}

// refresh re-renders the scrollable content for the current screen.
func (m *model) refresh() {
	var content string
	switch m.screen {
	case state.ScreenChat:
		content = m.renderChat()
	case state.ScreenLevels:
		content = m.renderLevels()
	case state.ScreenLeaderboard:
		content = m.renderLeaderboard()
	default:
		content = m.renderHome()
	}
	m.viewport.SetContent(content)
	if m.screen == state.ScreenChat {
		m.viewport.GotoBottom()
	} else {
		m.viewport.GotoTop()
	}
}

// Run starts the terminal program and blocks until the player quits or ctx
// is cancelled.
func Run(ctx context.Context, eng *engine.Engine, src reply.Source) error {
	p := tea.NewProgram(newModel(ctx, eng, src), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
