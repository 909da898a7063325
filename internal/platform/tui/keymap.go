package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	// split gives the arrow keys and '/' to player 2 for a shared keyboard.
	split bool
}

// NewKeyMapper creates a key mapper where every key drives player 1.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// NewSplitKeyMapper creates a key mapper for two players on one keyboard:
// WASD and Space for player 1, arrows and '/' for player 2.
func NewSplitKeyMapper() *KeyMapper {
	return &KeyMapper{split: true}
}

// MapKey translates a key message to an action and the player it belongs to.
// Returns whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, player core.PlayerID, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, core.Player1, true
	}

	if km.split {
		switch key {
		case "up":
			return core.ActionUp, core.Player2, false
		case "down":
			return core.ActionDown, core.Player2, false
		case "left":
			return core.ActionLeft, core.Player2, false
		case "right":
			return core.ActionRight, core.Player2, false
		case "/", "enter":
			return core.ActionFire, core.Player2, false
		}
	}

	switch key {
	case "w", "up":
		return core.ActionUp, core.Player1, false
	case "s", "down":
		return core.ActionDown, core.Player1, false
	case "a", "left":
		return core.ActionLeft, core.Player1, false
	case "d", "right":
		return core.ActionRight, core.Player1, false
	case " ", "1", "/":
		return core.ActionFire, core.Player1, false
	case "b", "esc":
		return core.ActionBack, core.Player1, false
	case "p":
		return core.ActionPause, core.Player1, false
	case "r":
		return core.ActionRestart, core.Player1, false
	}

	return core.ActionNone, core.Player1, false
}

// MapKeyToFrame updates player 1's input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, player, isQuit := km.MapKey(msg)
	if action != core.ActionNone && player == core.Player1 {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMultiFrame updates the frame of whichever player owns the key.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	action, player, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		f := frame.Player(player)
		f.Set(action)
		frame.SetPlayer(player, f)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "h":
		return MenuActionHistory
	}

	return MenuActionNone
}
