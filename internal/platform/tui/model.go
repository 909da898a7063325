package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// Model is the Bubble Tea model for a local match.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	log        *log.Logger
	config     core.RuntimeConfig
	user       string
	keyMapper  *KeyMapper
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	saved      bool // Whether the current match has been recorded
	standalone bool // Owns the program, so going back ends it
}

// NewModel creates a new Bubble Tea model for the given game. user names
// the local player in the match history.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, user string, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	km := NewKeyMapper()
	if game.ID() == string(bomber.ModeDuel) {
		km = NewSplitKeyMapper()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		log:        logger,
		config:     cfg,
		user:       user,
		keyMapper:  km,
		inputFrame: core.NewMultiInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena has a fixed size, so a resize only changes the canvas.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Player1().Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	var result core.StepResult
	if mg, ok := m.game.(registry.MultiGame); ok {
		result = mg.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame.Player1())
	}

	// A restart clears the game-over flag, so the next match gets saved too.
	if m.gameState.GameOver && !result.State.GameOver {
		m.saved = false
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveMatch()
		m.saved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveMatch records the finished match. Best effort: the game goes on
// without a database.
func (m *Model) saveMatch() {
	if m.store == nil {
		return
	}
	rec := matchRecord(m.game, m.gameState, m.user)
	if _, err := m.store.SaveMatch(rec); err != nil {
		m.log.Warn("cannot save match", "mode", rec.Mode, "err", err)
	}
}

// matchRecord turns a finished game into a history row.
func matchRecord(game registry.Game, st core.GameState, user string) storage.Match {
	rec := storage.Match{
		Mode:   game.ID(),
		Winner: st.Winner,
		Ticks:  st.Tick,
		Power1: st.Score,
		Power2: st.Score2,

		EndReason: multiplayer.MatchEndReasonCompleted.String(),
	}
	if s, ok := game.(interface{ Seed() int64 }); ok {
		rec.Seed = s.Seed()
	}

	switch bomber.Mode(rec.Mode) {
	case bomber.ModeVsCPU:
		rec.Player1, rec.Player2 = user, "cpu"
	case bomber.ModeCPU:
		rec.Player1, rec.Player2 = "cpu", "cpu"
	default:
		rec.Player1, rec.Player2 = user, "guest"
	}
	return rec
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".bomber", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, including any resize.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run starts the Bubble Tea program with the given game and reports
// whether the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, user string, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, user, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
