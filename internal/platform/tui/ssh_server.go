package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// sessionEventBuffer is how many coordinator events a session can queue.
// Snapshots arrive every tick, so a stalled client drops the oldest.
const sessionEventBuffer = 128

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.bomber/host_key.
	HostKeyPath string

	// DBPath is the path to the match history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Coordinator tunes lobbies and online matches.
	Coordinator multiplayer.CoordinatorConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.bomber/bomber.db",
		IdleTimeout: 30 * time.Minute,
		Coordinator: multiplayer.DefaultCoordinatorConfig(),
	}
}

// SSHServer wraps a Wish SSH server hosting local and online matches.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions *multiplayer.SessionRegistry
	coord    *multiplayer.Coordinator
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bomber-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open match database", "error", err)
		// Continue without storage
		store = nil
	}

	sessions := multiplayer.NewSessionRegistry()
	coord := multiplayer.NewCoordinator(cfg.Coordinator, onlineGameFactory, sessions)
	coord.SetLogger(logger.WithPrefix("coordinator"))
	if store != nil {
		coord.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: sessions,
		coord:    coord,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".bomber", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// onlineGameFactory builds the simulation for an online match.
func onlineGameFactory(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	if gameID != string(bomber.ModeOnline) {
		return nil, fmt.Errorf("game %q cannot be played online", gameID)
	}
	g := bomber.NewOnline()
	g.Reset(cfg)
	return g, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	session := multiplayer.NewChannelSession(
		multiplayer.SessionID(uuid.NewString()),
		sshSession.User(),
		sessionEventBuffer,
	)
	s.sessions.Register(session)

	go func() {
		<-sshSession.Context().Done()
		session.Close()
		s.coord.Send(multiplayer.SessionDisconnectedMsg{SessionID: session.ID()})
		s.sessions.Unregister(session.ID())
	}()

	model := NewSessionModel(s.store, cfg, session, s.coord, s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coord.Start()

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		//nolint:errcheck // Already failing
		s.Shutdown()
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.coord.Stop()
	err := s.server.Shutdown(ctx)

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a session is currently on.
type sessionView int

const (
	viewMenu sessionView = iota
	viewHistory
	viewGame
	viewLobby
	viewOnline
)

// SessionModel manages the full session flow for one SSH connection:
// menu, history, local matches and online matches. It owns the single
// reader of the session's coordinator events.
type SessionModel struct {
	store   *storage.Store
	log     *log.Logger
	config  core.RuntimeConfig
	session *multiplayer.ChannelSession
	coord   coordinatorSender
	view    sessionView

	menu    MenuModel
	history HistoryModel
	game    Model
	lobby   OnlineLobbyModel
	online  OnlineMatchModel

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(
	store *storage.Store,
	cfg core.RuntimeConfig,
	session *multiplayer.ChannelSession,
	coord coordinatorSender,
	logger *log.Logger,
) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:   store,
		log:     logger,
		config:  cfg,
		session: session,
		coord:   coord,
		menu:    NewMenuModel(cfg, true),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), listen(m.session))
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// Coordinator events keep the pump going whatever screen is showing.
	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		next, cmd := m.routeEvent(evt)
		return next, tea.Batch(cmd, listen(m.session))
	}

	switch m.view {
	case viewHistory:
		return m.updateHistory(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewLobby:
		return m.updateLobby(msg)
	case viewOnline:
		return m.updateOnline(msg)
	default:
		return m.updateMenu(msg)
	}
}

// routeEvent hands a coordinator event to the online screens.
func (m SessionModel) routeEvent(evt multiplayer.SessionEvent) (SessionModel, tea.Cmd) {
	switch m.view {
	case viewLobby:
		next, cmd := m.updateLobby(evt)
		return next.(SessionModel), cmd
	case viewOnline:
		next, cmd := m.updateOnline(evt)
		return next.(SessionModel), cmd
	}
	// Late events for a screen the player already left.
	return m, nil
}

// toMenu returns the session to a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.config, true)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		return m.quit()
	}

	if m.menu.WantsHistory() {
		m.view = viewHistory
		m.history = NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.history.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	if selected.Online {
		m.view = viewLobby
		m.lobby = NewOnlineLobbyModel(selected.GameID, m.session.ID(), m.coord, m.config.ScreenW, m.config.ScreenH)
		return m, m.lobby.Init()
	}

	game, err := registry.Create(selected.GameID)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		m.log.Error("cannot create game", "game", selected.GameID, "err", err)
		return m.toMenu()
	}
	m.config.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.store, m.config, m.session.Name(), m.log)
	m.view = viewGame
	return m, m.game.Init()
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHistory, cmd := m.history.Update(msg)
	if h, ok := newHistory.(HistoryModel); ok {
		m.history = h
	}

	switch {
	case m.history.IsQuitting():
		return m.quit()
	case m.history.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates for a local match.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.config = m.game.Config()
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLobby, cmd := m.lobby.Update(msg)
	if lobby, ok := newLobby.(OnlineLobbyModel); ok {
		m.lobby = lobby
	}

	switch {
	case m.lobby.IsQuitting():
		return m.quit()
	case m.lobby.BackToMenu():
		return m.toMenu()
	case m.lobby.Started():
		m.view = viewOnline
		m.online = NewOnlineMatchModel(m.lobby, m.coord, m.config.ScreenW, m.config.ScreenH)
		m.log.Info("online match started",
			"user", m.session.Name(),
			"match", m.lobby.MatchID(),
			"side", m.lobby.Side(),
		)
		return m, m.online.Init()
	}
	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (tea.Model, tea.Cmd) {
	newOnline, cmd := m.online.Update(msg)
	if online, ok := newOnline.(OnlineMatchModel); ok {
		m.online = online
	}

	switch {
	case m.online.IsQuitting():
		return m.quit()
	case m.online.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewHistory:
		return m.history.View()
	case viewGame:
		return m.game.View()
	case viewLobby:
		return m.lobby.View()
	case viewOnline:
		return m.online.View()
	default:
		return m.menu.View()
	}
}
