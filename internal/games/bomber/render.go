package bomber

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomber/ai"
)

// Each cell is drawn two characters wide so the arena looks square.
const (
	cellChars = 2
	hudRows   = 2
	// deadVisibleTicks is how long a dead player stays on screen.
	deadVisibleTicks = 60
	// fuseWarnTicks is when a bomb starts flashing.
	fuseWarnTicks = 30
)

var playerColors = [2]core.Color{core.ColorBrightRed, core.ColorBrightBlue}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	viewer := core.PlayerNone
	if g.mode == ModeVsCPU {
		viewer = core.Player1
	}
	s := g.Capture()
	if !Draw(s, dst, viewer) {
		return
	}

	hint := "WASD move  SPACE bomb  P pause  Q quit"
	switch {
	case g.over:
		hint = "R restart  B menu  Q quit"
	case g.mode == ModeDuel:
		hint = "P1: WASD+SPACE  P2: ARROWS+/  P pause"
	case g.mode == ModeCPU:
		hint = "P pause  B menu  Q quit"
	}
	dst.DrawTextCenteredColored(hudRows+s.Height, hint, core.ColorGray)
}

// Draw renders a snapshot into dst and reports whether the arena fit.
// viewer is the side the local player controls, PlayerNone for spectators.
func Draw(s Snapshot, dst *core.Screen, viewer core.PlayerID) bool {
	dst.Clear()

	needW, needH := s.Width*cellChars, s.Height+hudRows+1
	if dst.Width() < needW || dst.Height() < needH {
		y := dst.Height() / 2
		dst.DrawTextCentered(y-1, "TERMINAL TOO SMALL")
		dst.DrawTextCentered(y, fmt.Sprintf("need %dx%d", needW, needH))
		return false
	}

	ox := (dst.Width() - needW) / 2
	put := func(c ai.Point, glyph string, color core.Color) {
		dst.DrawTextColored(ox+c.X*cellChars, hudRows+c.Y, glyph, color)
	}

	for y := range s.Height {
		for x := range s.Width {
			c := ai.P(x, y)
			switch s.Tile(x, y) {
			case TileWall:
				put(c, "██", core.ColorGray)
			case TileBrick:
				put(c, "▒▒", core.ColorOrange)
			case TileMelting:
				put(c, "░░", core.ColorRed)
			case TilePowerUp:
				put(c, "<>", core.ColorBrightMagenta)
			}
		}
	}
	for _, f := range s.Fire {
		put(ai.P(f.X, f.Y), "**", core.ColorBrightYellow)
	}
	for _, b := range s.Bombs {
		color := core.ColorYellow
		if b.Fuse <= fuseWarnTicks && (b.Fuse/4)%2 == 0 {
			color = core.ColorBrightRed
		}
		put(ai.P(b.X, b.Y), "()", color)
	}

	names := playerNames(s.Mode, viewer)
	for i, p := range s.Players {
		c := ai.CellOf(ai.P(p.X, p.Y), s.CellSize)
		switch {
		case p.Alive():
			put(c, fmt.Sprintf("%d%d", i+1, i+1), playerColors[i])
		case p.Dead < deadVisibleTicks:
			put(c, "xx", playerColors[i])
		}
	}

	// HUD
	left := fmt.Sprintf("%s  PWR %d", names[0], s.Players[0].Power)
	right := fmt.Sprintf("%s  PWR %d", names[1], s.Players[1].Power)
	dst.DrawTextColored(ox, 0, left, playerColors[0])
	dst.DrawTextColored(ox+needW-len([]rune(right)), 0, right, playerColors[1])
	dst.DrawTextCenteredColored(0, "BOMBER", core.ColorBrightWhite)

	switch {
	case s.Over:
		banner(dst, resultText(s.Winner, viewer, names))
	case s.Paused:
		banner(dst, "PAUSED")
	}
	return true
}

func playerNames(mode string, viewer core.PlayerID) [2]string {
	var names [2]string
	switch Mode(mode) {
	case ModeVsCPU:
		names = [2]string{"YOU", "CPU"}
	case ModeCPU:
		names = [2]string{"CPU 1", "CPU 2"}
	default:
		names = [2]string{"P1", "P2"}
	}
	if Mode(mode) == ModeOnline && viewer != core.PlayerNone {
		names[viewer-1] += " (you)"
	}
	return names
}

func resultText(winner, viewer core.PlayerID, names [2]string) string {
	switch {
	case winner == core.PlayerNone:
		return "DRAW"
	case winner == viewer:
		return "YOU WIN!"
	case viewer != core.PlayerNone:
		return "YOU LOSE"
	default:
		return strings.ToUpper(names[winner-1]) + " WINS!"
	}
}

// banner draws a boxed message over the middle of the screen.
func banner(dst *core.Screen, text string) {
	w := len([]rune(text)) + 4
	x := (dst.Width() - w) / 2
	y := dst.Height()/2 - 1
	dst.DrawRect(core.NewRect(x, y, w, 3), ' ')
	dst.DrawBox(core.NewRect(x, y, w, 3))
	dst.DrawTextCenteredColored(y+1, text, core.ColorBrightWhite)
}
