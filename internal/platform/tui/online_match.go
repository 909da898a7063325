package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
)

// OnlineMatchModel shows an online match. The simulation runs on the
// server; this model forwards key presses and draws the latest snapshot.
type OnlineMatchModel struct {
	coordinator coordinatorSender
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	code        string
	opponent    string
	screen      *core.Screen
	keyMapper   *KeyMapper

	snap    bomber.Snapshot
	hasSnap bool

	ended         *multiplayer.MatchEndedEvent
	voted         bool
	opponentVoted bool
	notice        string

	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates the view for a match the lobby just started.
func NewOnlineMatchModel(lobby OnlineLobbyModel, coordinator coordinatorSender, width, height int) OnlineMatchModel {
	return OnlineMatchModel{
		coordinator: coordinator,
		sessionID:   lobby.sessionID,
		matchID:     lobby.MatchID(),
		side:        lobby.Side(),
		code:        lobby.LobbyCode(),
		opponent:    lobby.Opponent(),
		screen:      core.NewScreen(width, height),
		keyMapper:   NewKeyMapper(),
	}
}

// Init initializes the model.
func (m OnlineMatchModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and coordinator events.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)

	case multiplayer.SnapshotEvent:
		if msg.MatchID != m.matchID {
			return m, nil
		}
		if s, ok := msg.Snapshot.(bomber.Snapshot); ok {
			m.snap = s
			m.hasSnap = true
		}

	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = &msg
		}

	case multiplayer.RematchRequestedEvent:
		if msg.MatchID == m.matchID {
			m.opponentVoted = true
		}

	case multiplayer.MatchStartedEvent:
		// Rematch: same opponent, fresh arena.
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.ended = nil
		m.voted = false
		m.opponentVoted = false
		m.hasSnap = false
		m.notice = ""

	case multiplayer.LobbyErrorEvent:
		m.notice = msg.Message
	}

	return m, nil
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, _, isQuit := m.keyMapper.MapKey(msg)

	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil

	case core.ActionRestart:
		if m.canRematch() && !m.voted {
			m.voted = true
			m.coordinator.Send(multiplayer.ReadyForRematchMsg{
				SessionID: m.sessionID,
				MatchID:   m.matchID,
			})
		}
		return m, nil

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionFire:
		if m.ended != nil {
			return m, nil
		}
		in := core.NewInputFrame()
		in.Set(action)
		m.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Input:   in,
		})
	}

	return m, nil
}

// leave forfeits a running match or withdraws a rematch offer.
func (m OnlineMatchModel) leave() {
	m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
}

// canRematch reports whether both players are still around to play again.
func (m OnlineMatchModel) canRematch() bool {
	if m.ended == nil || m.notice != "" {
		return false
	}
	return m.ended.Reason == multiplayer.MatchEndReasonCompleted ||
		m.ended.Reason == multiplayer.MatchEndReasonTimeout
}

// View renders the arena and a status line.
func (m OnlineMatchModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if !m.hasSnap {
		m.screen.Clear()
		y := m.screen.Height() / 2
		m.screen.DrawTextCentered(y-1, fmt.Sprintf("MATCH %s", m.code))
		m.screen.DrawTextCentered(y+1, "Waiting for the arena...")
		return RenderScreen(m.screen)
	}

	if !bomber.Draw(m.snap, m.screen, m.side) {
		return RenderScreen(m.screen)
	}

	bottom := m.screen.Height() - 1
	if m.notice != "" {
		m.screen.DrawTextCenteredColored(bottom-1, m.notice, core.ColorYellow)
	}
	m.screen.DrawTextCenteredColored(bottom, m.statusLine(), core.ColorGray)
	return RenderScreen(m.screen)
}

// statusLine describes the match state and the keys that apply to it.
func (m OnlineMatchModel) statusLine() string {
	if m.ended == nil {
		opp := m.opponent
		if opp == "" {
			opp = "opponent"
		}
		return fmt.Sprintf("%s  vs %s  |  WASD move  SPACE bomb  Esc forfeit", m.code, opp)
	}

	result := onlineResult(*m.ended, m.side)
	switch {
	case !m.canRematch():
		return fmt.Sprintf("%s: %s  |  B menu  Q quit", m.ended.Reason.Describe(), result)
	case m.voted:
		return fmt.Sprintf("%s  |  Waiting for opponent...  B menu", result)
	case m.opponentVoted:
		return fmt.Sprintf("%s  |  Opponent wants a rematch! R accept  B menu", result)
	default:
		return fmt.Sprintf("%s  |  R rematch  B menu  Q quit", result)
	}
}

// onlineResult words the outcome from one side's point of view.
func onlineResult(evt multiplayer.MatchEndedEvent, side core.PlayerID) string {
	switch evt.Winner {
	case core.PlayerNone:
		return "DRAW"
	case side:
		return "YOU WIN!"
	default:
		return "YOU LOSE"
	}
}

// BackToMenu returns true if the player left the match for the menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match currently shown.
func (m OnlineMatchModel) MatchID() multiplayer.MatchID {
	return m.matchID
}
