package multiplayer

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// OnlineGame is the interface that games must implement to be played online.
type OnlineGame interface {
	// Reset initializes the game state.
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the current game state for broadcasting.
	Snapshot() GameSnapshot

	// State reports whether the game is over, the winner and the scores.
	State() core.GameState
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Power1  int
	Power2  int
	Ticks   uint64
}

// MatchOptions tune the match loop.
type MatchOptions struct {
	TickRate int
	MaxTicks uint64 // 0 means no limit
	Logger   *log.Logger
}

// OnlineMatch runs one authoritative game between two sessions.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	seed   int64
	game   OnlineGame
	opts   MatchOptions

	players [2]SessionHandle

	// Input handling
	inputMu   sync.Mutex
	lastInput [2]core.InputFrame
	inputChan chan playerInput

	tick     uint64
	done     chan struct{}
	doneOnce sync.Once

	disconnectChan chan SessionID
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a match. p1 plays Player1, p2 plays Player2.
func NewOnlineMatch(id MatchID, code, gameID string, seed int64, game OnlineGame, p1, p2 SessionHandle, opts MatchOptions) *OnlineMatch {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		seed:           seed,
		game:           game,
		opts:           opts,
		players:        [2]SessionHandle{p1, p2},
		lastInput:      [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()},
		inputChan:      make(chan playerInput, 64),
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// Seed returns the arena seed.
func (m *OnlineMatch) Seed() int64 {
	return m.seed
}

// Session returns the session playing side p.
func (m *OnlineMatch) Session(p PlayerID) SessionHandle {
	if p == Player2 {
		return m.players[1]
	}
	return m.players[0]
}

// SendInput queues player input for the next tick. Never blocks.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// PlayerDisconnected signals that a player has disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run drives the match until it ends or Stop is called.
// onComplete is not called after Stop.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.opts.TickRate))
	defer ticker.Stop()

	go m.monitorSessions()

	m.opts.Logger.Info("match started", "match", m.id, "code", m.code, "seed", m.seed,
		"p1", m.players[0].Name(), "p2", m.players[1].Name())

	finish := func(r MatchResult) {
		m.opts.Logger.Info("match ended", "match", m.id, "reason", r.Reason, "winner", r.Winner, "ticks", r.Ticks)
		if onComplete != nil {
			onComplete(r)
		}
	}

	for {
		select {
		case <-ticker.C:
			if result, done := m.runTick(); done {
				finish(result)
				return
			}

		case sessionID := <-m.disconnectChan:
			finish(m.handleDisconnect(sessionID))
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	m.inputMu.Lock()
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(Player1, m.lastInput[0].Clone())
	multi.SetPlayer(Player2, m.lastInput[1].Clone())
	// Inputs are consumed by this tick.
	m.lastInput[0].Clear()
	m.lastInput[1].Clear()
	m.inputMu.Unlock()

	res := m.game.StepMulti(multi)
	m.tick++

	evt := SnapshotEvent{MatchID: m.id, Tick: m.tick, Snapshot: m.game.Snapshot()}
	for _, s := range m.players {
		s.Send(evt)
	}

	st := res.State
	switch {
	case st.GameOver:
		return m.result(MatchEndReasonCompleted, st.Winner), true
	case m.opts.MaxTicks > 0 && m.tick >= m.opts.MaxTicks:
		return m.result(MatchEndReasonTimeout, core.PlayerNone), true
	}
	return MatchResult{}, false
}

func (m *OnlineMatch) result(reason MatchEndReason, winner PlayerID) MatchResult {
	st := m.game.State()
	return MatchResult{
		MatchID: m.id,
		Reason:  reason,
		Winner:  winner,
		Power1:  st.Score,
		Power2:  st.Score2,
		Ticks:   m.tick,
	}
}

// drainInputs merges every queued frame into the pending input of its side.
func (m *OnlineMatch) drainInputs() {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

	for {
		select {
		case pi := <-m.inputChan:
			side := 0
			if pi.player == Player2 {
				side = 1
			}
			for action, pressed := range pi.input.Actions {
				if pressed {
					m.lastInput[side].Set(action)
				}
			}
		default:
			return
		}
	}
}

// handleDisconnect awards the match to whoever stayed.
func (m *OnlineMatch) handleDisconnect(sessionID SessionID) MatchResult {
	winner := Player1
	if sessionID == m.players[0].ID() {
		winner = Player2
	}
	return m.result(MatchEndReasonDisconnect, winner)
}

func (m *OnlineMatch) monitorSessions() {
	var gone SessionID
	select {
	case <-m.players[0].Done():
		gone = m.players[0].ID()
	case <-m.players[1].Done():
		gone = m.players[1].ID()
	case <-m.done:
		return
	}
	m.PlayerDisconnected(gone)
}

// Stop ends the match loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
