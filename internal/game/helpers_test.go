package game

import "testing"

// newTestGame builds a started game with n players seated in color order
// (RED creator as u1, then BLUE/GREEN/YELLOW as u2..u4).
func newTestGame(t *testing.T, dice *Dice, n int) *Game {
	t.Helper()
	g, err := New("g1", n, "u1", ColorRed, DefaultRules(), dice)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	users := []string{"u1", "u2", "u3", "u4"}
	for i := 1; i < n; i++ {
		if err := g.Join(users[i], Colors[i]); err != nil {
			t.Fatalf("join %s: %v", Colors[i], err)
		}
	}
	if err := g.Start("u1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	return g
}

// placePiece drops a piece onto a square, syncing its status.
func placePiece(p *Piece, sq SquareID) {
	dest := sq
	p.Square = &dest
	switch sq.Kind {
	case SquareLane:
		p.Status = StatusInLane
	default:
		p.Status = StatusOnTrack
	}
}

// primeRoll puts the game in the awaiting-move sub-state as if the current
// player had just rolled the given dice.
func primeRoll(g *Game, d1, d2 int) {
	g.lastRoll = &[2]int{d1, d2}
	g.hasRolled = true
	g.possible = g.generateMoves(g.currentPlayer(), d1, d2)
}

func currentColor(t *testing.T, g *Game) Color {
	t.Helper()
	snap := g.Snapshot()
	if snap.CurrentTurnColor == nil {
		t.Fatal("no current turn color")
	}
	return *snap.CurrentTurnColor
}

func kindOf(t *testing.T, err error, want RejectKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s rejection, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("rejection kind = %s (%v), want %s", got, err, want)
	}
}
