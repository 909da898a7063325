package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// rematch collects votes from the two players of a finished match.
type rematch struct {
	code    string
	gameID  string
	players [2]SessionHandle
	votes   map[SessionID]bool
	endedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long an unanswered lobby or rematch offer lives
	TickRate      int           // Game tick rate (Hz)
	MaxTicks      uint64        // Per-match tick limit, 0 for none
	CleanupPeriod time.Duration // How often to clean up expired lobbies
}

// DefaultCoordinatorConfig returns sensible defaults: a five minute match limit at 60 Hz.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      60,
		MaxTicks:      5 * 60 * 60,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates a reset game instance for a match.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver persists finished matches.
// It keeps the coordinator independent of the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID   string
	GameID    string
	Seed      int64
	Player1   string
	Player2   string
	Winner    PlayerID
	Power1    int
	Power2    int
	Ticks     int
	EndReason string
}

// Coordinator manages lobbies, active matches and rematch offers.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	log         *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby        // code -> lobby
	matches map[MatchID]*OnlineMatch // matchID -> match
	offers  map[MatchID]*rematch     // finished matchID -> offer

	// Track which session is in which lobby/match
	sessionLobby map[SessionID]string  // sessionID -> lobby code
	sessionMatch map[SessionID]MatchID // sessionID -> matchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry) *Coordinator {
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		log:          log.New(io.Discard),
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		offers:       make(map[MatchID]*rematch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the logger used for lobby and match events.
func (c *Coordinator) SetLogger(l *log.Logger) {
	if l != nil {
		c.log = l
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator and every running match.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

// Send queues a message for the coordinator.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case ReadyForRematchMsg:
		c.handleRematch(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.log.Info("lobby created", "code", code, "host", session.Name())

	session.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	switch {
	case !exists:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	case lobby.Joiner != nil:
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	case lobby.Host.ID() == msg.SessionID:
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{Code: code, Side: Player1, Opponent: session.Name()})
	session.Send(LobbyJoinedEvent{Code: code, Side: Player2, Opponent: lobby.Host.Name()})

	c.startMatch(lobby.Code, lobby.GameID, lobby.Host, lobby.Joiner)
	delete(c.lobbies, lobby.Code)
}

// busy reports whether a session is already in a lobby or a match.
// Must be called with c.mu held.
func (c *Coordinator) busy(id SessionID) bool {
	if _, ok := c.sessionLobby[id]; ok {
		return true
	}
	_, ok := c.sessionMatch[id]
	return ok
}

// startMatch creates a game and starts its loop. Must be called with c.mu held.
func (c *Coordinator) startMatch(code, gameID string, host, joiner SessionHandle) {
	matchID := MatchID(uuid.NewString())
	seed := time.Now().UnixNano()

	game, err := c.gameFactory(gameID, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     seed,
	})
	if err != nil {
		c.log.Error("cannot create game", "game", gameID, "err", err)
		host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create game"})
		delete(c.sessionLobby, host.ID())
		delete(c.sessionLobby, joiner.ID())
		return
	}

	match := NewOnlineMatch(matchID, code, gameID, seed, game, host, joiner, MatchOptions{
		TickRate: c.config.TickRate,
		MaxTicks: c.config.MaxTicks,
		Logger:   c.log,
	})

	c.matches[matchID] = match
	for _, s := range []SessionHandle{host, joiner} {
		delete(c.sessionLobby, s.ID())
		c.sessionMatch[s.ID()] = matchID
	}

	host.Send(MatchStartedEvent{MatchID: matchID, Side: Player1, Code: code, Seed: seed})
	joiner.Send(MatchStartedEvent{MatchID: matchID, Side: Player2, Code: code, Seed: seed})

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}
	p1, p2 := match.Session(Player1), match.Session(Player2)

	if c.resultSaver != nil {
		data := MatchResultData{
			MatchID:   string(matchID),
			GameID:    match.GameID(),
			Seed:      match.Seed(),
			Player1:   p1.Name(),
			Player2:   p2.Name(),
			Winner:    result.Winner,
			Power1:    result.Power1,
			Power2:    result.Power2,
			Ticks:     int(result.Ticks), //nolint:gosec // bounded by the match tick limit
			EndReason: result.Reason.String(),
		}
		// Best effort, never block the coordinator on disk.
		go func() {
			if err := c.resultSaver.SaveMatchResult(data); err != nil {
				c.log.Warn("cannot save match", "match", data.MatchID, "err", err)
			}
		}()
	}

	delete(c.sessionMatch, p1.ID())
	delete(c.sessionMatch, p2.ID())
	delete(c.matches, matchID)

	// Only a finished game can be replayed; a disconnect leaves one player alone.
	if result.Reason == MatchEndReasonCompleted || result.Reason == MatchEndReasonTimeout {
		c.offers[matchID] = &rematch{
			code:    match.Code(),
			gameID:  match.GameID(),
			players: [2]SessionHandle{p1, p2},
			votes:   make(map[SessionID]bool),
			endedAt: time.Now(),
		}
	}

	end := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Power1:  result.Power1,
		Power2:  result.Power2,
		Ticks:   result.Ticks,
	}
	p1.Send(end)
	p2.Send(end)
}

// handleRematch records a vote and restarts the pairing once both agree.
func (c *Coordinator) handleRematch(msg ReadyForRematchMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer, ok := c.offers[msg.MatchID]
	if !ok {
		if s, found := c.sessions.Get(msg.SessionID); found {
			s.Send(LobbyErrorEvent{Message: "Rematch no longer available"})
		}
		return
	}

	var other SessionHandle
	switch msg.SessionID {
	case offer.players[0].ID():
		other = offer.players[1]
	case offer.players[1].ID():
		other = offer.players[0]
	default:
		return
	}
	offer.votes[msg.SessionID] = true

	if !offer.votes[other.ID()] {
		other.Send(RematchRequestedEvent{MatchID: msg.MatchID})
		return
	}

	delete(c.offers, msg.MatchID)
	c.log.Info("rematch", "code", offer.code)
	c.startMatch(offer.code, offer.gameID, offer.players[0], offer.players[1])
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists || lobby.Host.ID() != msg.SessionID {
		return
	}
	c.closeLobby(lobby)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists {
		return
	}

	switch {
	case lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID:
		lobby.Joiner = nil
		delete(c.sessionLobby, msg.SessionID)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: msg.Code})
	case lobby.Host.ID() == msg.SessionID:
		c.closeLobby(lobby)
	}
}

// closeLobby removes a lobby and releases the joiner. Must be called with c.mu held.
func (c *Coordinator) closeLobby(lobby *Lobby) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.lobbies, lobby.Code)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.PlayerDisconnected(msg.SessionID)
	}
	c.dropRematch(msg.SessionID)
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.SendInput(msg.Player, msg.Input)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, exists := c.lobbies[code]; exists {
			if lobby.Host.ID() == msg.SessionID {
				c.closeLobby(lobby)
			} else if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
				lobby.Joiner = nil
				lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
	c.mu.Unlock()

	c.dropRematch(msg.SessionID)
}

// dropRematch withdraws every rematch offer involving the session.
func (c *Coordinator) dropRematch(id SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for matchID, offer := range c.offers {
		for i, s := range offer.players {
			if s.ID() == id {
				offer.players[1-i].Send(LobbyErrorEvent{Message: "Opponent left"})
				delete(c.offers, matchID)
				break
			}
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired(time.Now())
		case <-c.done:
			return
		}
	}
}

// cleanupExpired drops lobbies nobody joined and stale rematch offers.
func (c *Coordinator) cleanupExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
		}
	}
	for id, offer := range c.offers {
		if now.Sub(offer.endedAt) > c.config.LobbyTimeout {
			delete(c.offers, id)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase base32 code.
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// GetLobby returns a lobby by code.
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// GetMatch returns a running match by ID.
func (c *Coordinator) GetMatch(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
