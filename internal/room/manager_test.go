package room

import (
	"math/rand"
	"testing"

	"parques/internal/config"
	"parques/internal/game"
	"parques/internal/store"
)

// recorder captures broadcast events so tests can assert the push side of
// each mutation.
type recorder struct {
	events []string
}

func (r *recorder) Broadcast(gameID, event string, data any) {
	r.events = append(r.events, event)
}

func (r *recorder) last(t *testing.T, want string) {
	t.Helper()
	if len(r.events) == 0 || r.events[len(r.events)-1] != want {
		t.Fatalf("events = %v, want %q last", r.events, want)
	}
}

// loopSource feeds math/rand so Intn(6) yields the queued faces in order.
type loopSource struct {
	vals []int64
	i    int
}

func (s *loopSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v << 32
}

func (s *loopSource) Seed(int64) {}

func fixedDice(faces ...int) func() *game.Dice {
	vals := make([]int64, len(faces))
	for i, f := range faces {
		vals[i] = int64(f - 1)
	}
	return func() *game.Dice {
		return game.NewDice(rand.New(&loopSource{vals: vals}))
	}
}

func testManager(t *testing.T, faces ...int) (*Manager, *recorder) {
	t.Helper()
	cfg := config.Config{ExitRollValue: 5, WallBlocks: true}
	rec := &recorder{}
	m := NewManager(store.NewMemoryStore(), cfg, rec)
	m.newDice = fixedDice(faces...)
	return m, rec
}

func TestManagerGameNotFound(t *testing.T) {
	m, _ := testManager(t, 1, 1)
	if _, err := m.State("nope"); game.KindOf(err) != game.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
	if _, err := m.Roll("nope", "u1"); game.KindOf(err) != game.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestManagerLifecycle(t *testing.T) {
	m, rec := testManager(t, 5, 2, 1, 2)

	summary, err := m.Create("u1", game.ColorRed, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if summary.ID == "" || summary.State != game.StateWaitingPlayers {
		t.Fatalf("unexpected summary %+v", summary)
	}
	id := summary.ID

	summary, err = m.Join(id, "u2", game.ColorBlue)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	rec.last(t, "player_joined")
	if summary.CurrentPlayerCount != 2 || summary.State != game.StateReadyToStart {
		t.Fatalf("unexpected summary %+v", summary)
	}

	snap, err := m.StartGame(id, "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	rec.last(t, "game_started")
	if snap.State != game.StateInProgress {
		t.Fatalf("state = %s, want %s", snap.State, game.StateInProgress)
	}

	// first roll shows the exit face, so every jailed piece can come out
	report, err := m.Roll(id, "u1")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	rec.last(t, "dice_rolled")
	if report.Dice1 != 5 || report.Dice2 != 2 {
		t.Fatalf("dice = (%d, %d), want (5, 2)", report.Dice1, report.Dice2)
	}
	if len(report.PossibleMoves) == 0 {
		t.Fatal("exit face rolled, expected jail exits")
	}

	var pieceID string
	var mv game.Move
	for pid, opts := range report.PossibleMoves {
		pieceID, mv = pid, opts[0]
		break
	}
	snap, err = m.Move(id, "u1", pieceID, mv.Dest, mv.Steps)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	rec.last(t, "piece_moved")
	if snap.CurrentTurnColor == nil || *snap.CurrentTurnColor != game.ColorBlue {
		t.Fatalf("turn should pass to BLUE, snapshot %+v", snap.CurrentTurnColor)
	}

	// second roll has no exit face and every BLUE piece is jailed
	report, err = m.Roll(id, "u2")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if len(report.PossibleMoves) != 0 {
		t.Fatalf("expected no moves, got %v", report.PossibleMoves)
	}
	snap, err = m.Pass(id, "u2")
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	rec.last(t, "turn_passed")
	if snap.CurrentTurnColor == nil || *snap.CurrentTurnColor != game.ColorRed {
		t.Fatalf("turn should return to RED, snapshot %+v", snap.CurrentTurnColor)
	}

	got, err := m.State(id)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if got.GameID != id {
		t.Fatalf("state game id = %s, want %s", got.GameID, id)
	}
}

func TestManagerEngineErrorsPassThrough(t *testing.T) {
	m, rec := testManager(t, 1, 2)
	summary, err := m.Create("u1", game.ColorRed, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.StartGame(summary.ID, "u1"); game.KindOf(err) != game.KindIllegalState {
		t.Fatalf("err = %v, want illegal_state", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("a failed mutation must not broadcast, got %v", rec.events)
	}
}
