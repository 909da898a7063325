package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		split    bool
		msg      tea.KeyMsg
		action   core.Action
		player   core.PlayerID
		expected bool // quit
	}{
		{"w moves up", false, runes("w"), core.ActionUp, core.Player1, false},
		{"arrow drives player 1", false, tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, core.Player1, false},
		{"space fires", false, tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, core.Player1, false},
		{"slash fires for player 1", false, runes("/"), core.ActionFire, core.Player1, false},
		{"esc goes back", false, tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, core.Player1, false},
		{"r restarts", false, runes("r"), core.ActionRestart, core.Player1, false},
		{"q quits", false, runes("q"), core.ActionQuit, core.Player1, true},
		{"ctrl+c quits", false, tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, core.Player1, true},
		{"unbound key", false, runes("x"), core.ActionNone, core.Player1, false},
		{"split: wasd stays with player 1", true, runes("d"), core.ActionRight, core.Player1, false},
		{"split: arrow drives player 2", true, tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, core.Player2, false},
		{"split: slash fires for player 2", true, runes("/"), core.ActionFire, core.Player2, false},
		{"split: enter fires for player 2", true, tea.KeyMsg{Type: tea.KeyEnter}, core.ActionFire, core.Player2, false},
		{"split: space fires for player 1", true, tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, core.Player1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper()
			if tt.split {
				km = NewSplitKeyMapper()
			}
			action, player, quit := km.MapKey(tt.msg)
			if action != tt.action || player != tt.player || quit != tt.expected {
				t.Errorf("MapKey(%q) = (%v, %v, %v), expected (%v, %v, %v)",
					tt.msg.String(), action, player, quit, tt.action, tt.player, tt.expected)
			}
		})
	}
}

func TestMapKeyToMultiFrame(t *testing.T) {
	km := NewSplitKeyMapper()
	frame := core.NewMultiInputFrame()

	km.MapKeyToMultiFrame(runes("d"), &frame)
	km.MapKeyToMultiFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)
	km.MapKeyToMultiFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame)

	p1, p2 := frame.Player1(), frame.Player2()
	if !p1.Has(core.ActionRight) || !p1.Has(core.ActionFire) {
		t.Errorf("player 1 frame = %+v, expected Right and Fire", p1)
	}
	if !p2.Has(core.ActionLeft) || p2.Has(core.ActionFire) {
		t.Errorf("player 2 frame = %+v, expected Left only", p2)
	}
}

func TestMapKeyToFrameIgnoresPlayer2(t *testing.T) {
	km := NewSplitKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame)
	if frame.Has(core.ActionUp) {
		t.Error("MapKeyToFrame() set a player 2 key on player 1's frame")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
