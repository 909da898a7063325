package multiplayer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// stubGame ends after a fixed number of ticks with a fixed winner.
type stubGame struct {
	ticks  int
	length int
	winner PlayerID
	fired  [2]int
}

type stubSnapshot struct{ Tick int }

func (stubSnapshot) IsGameSnapshot() {}

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.ticks++
	if in.Player1().Has(core.ActionFire) {
		g.fired[0]++
	}
	if in.Player2().Has(core.ActionFire) {
		g.fired[1]++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Snapshot() GameSnapshot {
	return stubSnapshot{Tick: g.ticks}
}

func (g *stubGame) State() core.GameState {
	st := core.GameState{Tick: g.ticks, Score: 1, Score2: 2}
	if g.length > 0 && g.ticks >= g.length {
		st.GameOver = true
		st.Winner = g.winner
	}
	return st
}

type memorySaver struct {
	mu      sync.Mutex
	results []MatchResultData
}

func (s *memorySaver) SaveMatchResult(r MatchResultData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *memorySaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// waitFor reads events until one of type T arrives.
func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-deadline:
			var zero T
			t.Fatalf("session %s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

func newTestCoordinator(t *testing.T, length int, winner PlayerID) (*Coordinator, *SessionRegistry) {
	t.Helper()
	cfg := DefaultCoordinatorConfig()
	cfg.TickRate = 500
	cfg.MaxTicks = 0
	reg := NewSessionRegistry()
	c := NewCoordinator(cfg, func(gameID string, _ core.RuntimeConfig) (OnlineGame, error) {
		if gameID != "bomber_online" {
			return nil, errors.New("unknown game")
		}
		return &stubGame{length: length, winner: winner}, nil
	}, reg)
	c.Start()
	t.Cleanup(c.Stop)
	return c, reg
}

func session(reg *SessionRegistry, id, name string) *ChannelSession {
	s := NewChannelSession(SessionID(id), name, 256)
	reg.Register(s)
	return s
}

func TestCoordinatorLobbyToMatch(t *testing.T) {
	c, reg := newTestCoordinator(t, 20, Player2)
	saver := &memorySaver{}
	c.SetResultSaver(saver)

	host := session(reg, "h", "alice")
	joiner := session(reg, "j", "bob")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "bomber_online"})
	created := waitFor[LobbyCreatedEvent](t, host)
	if len(created.Code) != 6 {
		t.Fatalf("Code = %q, expected 6 characters", created.Code)
	}

	c.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: " " + created.Code + " "})

	hostJoined := waitFor[LobbyJoinedEvent](t, host)
	if hostJoined.Side != Player1 || hostJoined.Opponent != "bob" {
		t.Errorf("host joined = %+v, expected Player1 against bob", hostJoined)
	}
	joinerJoined := waitFor[LobbyJoinedEvent](t, joiner)
	if joinerJoined.Side != Player2 || joinerJoined.Opponent != "alice" {
		t.Errorf("joiner joined = %+v, expected Player2 against alice", joinerJoined)
	}

	started := waitFor[MatchStartedEvent](t, joiner)
	if started.Side != Player2 {
		t.Errorf("Side = %v, expected %v", started.Side, Player2)
	}

	ended := waitFor[MatchEndedEvent](t, host)
	if ended.Reason != MatchEndReasonCompleted {
		t.Errorf("Reason = %v, expected %v", ended.Reason, MatchEndReasonCompleted)
	}
	if ended.Winner != Player2 {
		t.Errorf("Winner = %v, expected %v", ended.Winner, Player2)
	}
	if ended.Power1 != 1 || ended.Power2 != 2 {
		t.Errorf("powers = %d/%d, expected 1/2", ended.Power1, ended.Power2)
	}

	deadline := time.Now().Add(2 * time.Second)
	for saver.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if saver.count() != 1 {
		t.Fatalf("saved %d results, expected 1", saver.count())
	}
	r := saver.results[0]
	if r.Player1 != "alice" || r.Player2 != "bob" || r.Winner != Player2 || r.EndReason != "completed" {
		t.Errorf("saved result = %+v", r)
	}
	if r.Seed != started.Seed {
		t.Errorf("saved seed = %d, expected %d", r.Seed, started.Seed)
	}
}

func TestCoordinatorJoinErrors(t *testing.T) {
	c, reg := newTestCoordinator(t, 0, Player1)
	host := session(reg, "h", "alice")
	other := session(reg, "o", "carol")

	c.Send(JoinLobbyMsg{SessionID: other.ID(), Code: "NOPE00"})
	if e := waitFor[LobbyErrorEvent](t, other); e.Message != "Lobby not found" {
		t.Errorf("Message = %q, expected %q", e.Message, "Lobby not found")
	}

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "bomber_online"})
	created := waitFor[LobbyCreatedEvent](t, host)

	c.Send(JoinLobbyMsg{SessionID: host.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Already in a lobby" {
		t.Errorf("Message = %q, expected %q", e.Message, "Already in a lobby")
	}

	c.Send(CancelLobbyMsg{SessionID: host.ID(), Code: created.Code})
	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "bomber_online"})
	waitFor[LobbyCreatedEvent](t, host)
	if n := c.LobbyCount(); n != 1 {
		t.Errorf("LobbyCount() = %d, expected 1", n)
	}
}

func TestCoordinatorDisconnectForfeits(t *testing.T) {
	c, reg := newTestCoordinator(t, 0, Player1)
	host := session(reg, "h", "alice")
	joiner := session(reg, "j", "bob")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "bomber_online"})
	created := waitFor[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: created.Code})
	waitFor[MatchStartedEvent](t, host)

	joiner.Close()

	ended := waitFor[MatchEndedEvent](t, host)
	if ended.Reason != MatchEndReasonDisconnect {
		t.Errorf("Reason = %v, expected %v", ended.Reason, MatchEndReasonDisconnect)
	}
	if ended.Winner != Player1 {
		t.Errorf("Winner = %v, expected %v", ended.Winner, Player1)
	}
}

func TestCoordinatorRematch(t *testing.T) {
	c, reg := newTestCoordinator(t, 10, Player1)
	host := session(reg, "h", "alice")
	joiner := session(reg, "j", "bob")

	c.Send(CreateLobbyMsg{SessionID: host.ID(), GameID: "bomber_online"})
	created := waitFor[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: joiner.ID(), Code: created.Code})
	first := waitFor[MatchStartedEvent](t, host)
	waitFor[MatchEndedEvent](t, host)
	waitFor[MatchEndedEvent](t, joiner)

	c.Send(ReadyForRematchMsg{SessionID: host.ID(), MatchID: first.MatchID})
	if req := waitFor[RematchRequestedEvent](t, joiner); req.MatchID != first.MatchID {
		t.Errorf("MatchID = %v, expected %v", req.MatchID, first.MatchID)
	}

	c.Send(ReadyForRematchMsg{SessionID: joiner.ID(), MatchID: first.MatchID})
	second := waitFor[MatchStartedEvent](t, host)
	if second.MatchID == first.MatchID {
		t.Error("rematch reused the previous match ID")
	}
	if second.Side != Player1 || second.Code != created.Code {
		t.Errorf("rematch = %+v, expected Player1 with code %s", second, created.Code)
	}
}

func TestMatchMergesInputs(t *testing.T) {
	game := &stubGame{}
	p1 := NewChannelSession("a", "", 8)
	p2 := NewChannelSession("b", "", 8)
	m := NewOnlineMatch("m", "CODE12", "bomber_online", 1, game, p1, p2, MatchOptions{TickRate: 60})

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	m.SendInput(Player2, fire)
	m.SendInput(Player2, fire)

	if _, done := m.runTick(); done {
		t.Fatal("runTick() ended a game with no length")
	}
	if game.fired != [2]int{0, 1} {
		t.Errorf("fired = %v, expected [0 1]", game.fired)
	}

	m.runTick()
	if game.fired != [2]int{0, 1} {
		t.Errorf("fired = %v after an idle tick, expected inputs to be consumed", game.fired)
	}
	if p1.Name() != "a" {
		t.Errorf("Name() = %q, expected the session ID as fallback", p1.Name())
	}
}

func TestMatchTimeout(t *testing.T) {
	game := &stubGame{}
	p1 := NewChannelSession("a", "alice", 8)
	p2 := NewChannelSession("b", "bob", 8)
	m := NewOnlineMatch("m", "CODE12", "bomber_online", 1, game, p1, p2, MatchOptions{TickRate: 60, MaxTicks: 3})

	var result MatchResult
	var done bool
	for range 3 {
		result, done = m.runTick()
	}
	if !done {
		t.Fatal("runTick() did not stop at the tick limit")
	}
	if result.Reason != MatchEndReasonTimeout || result.Winner != core.PlayerNone {
		t.Errorf("result = %+v, expected a timeout draw", result)
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", "", 2)
	s.Send(LobbyErrorEvent{Message: "1"})
	s.Send(LobbyErrorEvent{Message: "2"})
	s.Send(LobbyErrorEvent{Message: "3"})

	first := (<-s.Events()).(LobbyErrorEvent)
	second := (<-s.Events()).(LobbyErrorEvent)
	if first.Message != "2" || second.Message != "3" {
		t.Errorf("events = %q, %q, expected 2, 3", first.Message, second.Message)
	}

	s.Close()
	s.Send(LobbyErrorEvent{Message: "late"})
	if len(s.Events()) != 0 {
		t.Error("Send() after Close() queued an event")
	}
}

func TestOther(t *testing.T) {
	if Other(Player1) != Player2 || Other(Player2) != Player1 || Other(core.PlayerNone) != core.PlayerNone {
		t.Error("Other() did not swap sides")
	}
}
