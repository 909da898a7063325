// Package multiplayer runs online matches between two remote sessions:
// lobbies with join codes, an authoritative tick loop per match, and
// snapshot broadcasting. It knows nothing about SSH or Bubble Tea.
package multiplayer

import "github.com/vovakirdan/tui-bomber/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// The lobby host always plays Player1.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies a game match.
type MatchID string

// Other returns the opposing side.
func Other(p PlayerID) PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return core.PlayerNone
	}
}
