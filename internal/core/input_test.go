package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFire) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionFire)
	f.Set(ActionLeft)
	if !f.Has(ActionFire) || !f.Has(ActionLeft) {
		t.Error("Set actions should be reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionFire) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionFire) {
		t.Error("Clone should not share storage")
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()

	p2 := m.Player2()
	p2.Set(ActionDown)
	m.SetPlayer(Player2, p2)

	if m.Player1().Has(ActionDown) {
		t.Error("player 1 should not see player 2 input")
	}
	if !m.Player(Player2).Has(ActionDown) {
		t.Error("player 2 input lost")
	}

	clone := m.Clone()
	m.Clear()
	if m.Player2().Has(ActionDown) {
		t.Error("Clear should drop player input")
	}
	if !clone.Player2().Has(ActionDown) {
		t.Error("Clone should be deep")
	}
}

func TestActionAndPlayerStrings(t *testing.T) {
	tests := []struct {
		got, expected string
	}{
		{ActionFire.String(), "Fire"},
		{ActionLeft.String(), "Left"},
		{Action(99).String(), "Unknown"},
		{Player1.String(), "Player 1"},
		{PlayerNone.String(), "None"},
	}
	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("String() = %q, expected %q", tc.got, tc.expected)
		}
	}
}
