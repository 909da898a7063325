// Package bomber implements the Bomber arena game: two players drop bombs
// in a maze of pillars and bricks until one of them is caught in a blast.
// Either side can be played by a human or by the decision engine in ai.
package bomber

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

// Mode selects who controls each side.
type Mode string

const (
	ModeVsCPU  Mode = "bomber"        // human vs CPU
	ModeDuel   Mode = "bomber_duel"   // two humans on one keyboard
	ModeCPU    Mode = "bomber_cpu"    // CPU vs CPU
	ModeOnline Mode = "bomber_online" // two humans over SSH
)

// Package-level settings shared by every game instance.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file, empty for the default search.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes game and CPU decision logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements a Bomber match.
type Game struct {
	mode    Mode
	cfg     config.BomberConfig
	fixed   bool // cfg was supplied by the caller, skip loading
	rng     *rand.Rand
	seed    int64
	tick    int
	paused  bool
	over    bool
	winner  core.PlayerID
	screenW int
	screenH int

	arena       *arena
	players     [2]*player
	controllers [2]Controller
	bombs       []*bomb
	explosions  []*explosion
}

// New creates a human vs CPU game.
func New() *Game {
	return &Game{mode: ModeVsCPU}
}

// NewDuel creates a game for two humans sharing a keyboard.
func NewDuel() *Game {
	return &Game{mode: ModeDuel}
}

// NewCPU creates a CPU vs CPU game.
func NewCPU() *Game {
	return &Game{mode: ModeCPU}
}

// NewOnline creates a game for two remote humans.
func NewOnline() *Game {
	return &Game{mode: ModeOnline}
}

// NewWithConfig creates a game that uses cfg instead of loading a config file.
func NewWithConfig(mode Mode, cfg config.BomberConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixed: true}
}

func init() {
	registry.Register(string(ModeVsCPU), func() registry.Game { return New() })
	registry.Register(string(ModeDuel), func() registry.Game { return NewDuel() })
	registry.Register(string(ModeCPU), func() registry.Game { return NewCPU() })
}

var _ multiplayer.OnlineGame = (*Game)(nil)

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeDuel:
		return "Bomber (2 Players)"
	case ModeCPU:
		return "Bomber (CPU vs CPU)"
	case ModeOnline:
		return "Bomber (Online)"
	default:
		return "Bomber"
	}
}

// Mode returns who controls each side.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset builds a fresh arena from the seed and places both players.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixed {
		loaded, err := config.LoadBomber(configPath)
		if err != nil {
			logger.Warn("falling back to default config", "err", err)
			loaded = config.DefaultBomberConfig()
		}
		g.cfg = loaded
	}

	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.over = false
	g.winner = core.PlayerNone
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.bombs = nil
	g.explosions = nil

	a := g.cfg.Arena
	g.arena = generateArena(a.Width, a.Height, a.BreakableWallChance, g.rng)
	g.players = [2]*player{
		newPlayer(core.Player1, ai.P(1, 1), a.CellSize, g.cfg.Bomb.InitialPower),
		newPlayer(core.Player2, ai.P(a.Width-2, a.Height-2), a.CellSize, g.cfg.Bomb.InitialPower),
	}

	g.controllers = [2]Controller{g.controllerFor(core.Player1), g.controllerFor(core.Player2)}
}

func (g *Game) controllerFor(id core.PlayerID) Controller {
	cpu := g.mode == ModeCPU || (g.mode == ModeVsCPU && id == core.Player2)
	if cpu {
		return NewCPUController(weightsFrom(g.cfg), logger.With("player", id))
	}
	return NewHumanController(g.cfg.Arena.TicksPerCell())
}

// Step advances one tick with input for player 1 only.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	return g.StepMulti(multi)
}

// StepMulti advances one tick with input for both players.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	p1 := in.Player1()

	if g.mode != ModeOnline {
		if p1.Has(core.ActionRestart) && g.over {
			g.Reset(core.RuntimeConfig{
				Seed:    g.rng.Int63(),
				ScreenW: g.screenW,
				ScreenH: g.screenH,
			})
			return core.StepResult{State: g.State()}
		}
		if p1.Has(core.ActionPause) && !g.over {
			g.paused = !g.paused
		}
	}

	if g.over || g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advance([2]core.InputFrame{p1, in.Player2()})
	return core.StepResult{State: g.State()}
}

// advance runs one simulation tick.
func (g *Game) advance(in [2]core.InputFrame) {
	g.tick++

	// Both controllers see the same arena, built before anyone moves.
	var field *ai.Field
	for _, c := range g.controllers {
		if c.NeedsField() {
			field = ai.BuildField(g.world(), rulesFrom(g.cfg))
			break
		}
	}
	var cmds [2]Command
	for i, p := range g.players {
		if p.alive() {
			cmds[i] = g.controllers[i].Command(in[i], g.observe(i, field))
		}
	}

	for i, p := range g.players {
		if p.alive() {
			p.pushed = p.pos
			g.move(p, cmds[i].Move)
		}
	}
	g.separate()

	for _, p := range g.players {
		if !p.alive() {
			p.dead++
		}
	}
	g.arena.meltStep(g.cfg.Arena.WallMeltTicks, g.cfg.Arena.PowerUpChance, g.rng)
	g.fadeExplosions()

	for i, p := range g.players {
		if !p.alive() {
			continue
		}
		g.pickUp(p)
		if cmds[i].Fire {
			g.dropBomb(p)
		}
		if g.burning(p) {
			p.dead = 1
		}
	}

	g.tickBombs()
	g.checkOutcome()
}

func (g *Game) checkOutcome() {
	d1, d2 := !g.players[0].alive(), !g.players[1].alive()
	if !d1 && !d2 {
		return
	}
	g.over = true
	switch {
	case d1 && d2:
		g.winner = core.PlayerNone
	case d1:
		g.winner = core.Player2
	default:
		g.winner = core.Player1
	}
	logger.Info("match over", "mode", g.mode, "seed", g.seed, "winner", g.winner, "ticks", g.tick)
}

// State returns the current game state. Score and Score2 are the players'
// bomb powers.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.over,
		Paused:   g.paused,
		Winner:   g.winner,
		Tick:     g.tick,
	}
	if g.players[0] != nil {
		st.Score = g.players[0].power
		st.Score2 = g.players[1].power
	}
	return st
}

// Seed returns the seed of the current arena.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration in effect.
func (g *Game) Config() config.BomberConfig {
	return g.cfg
}
