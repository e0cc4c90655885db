package game

import "time"

// PieceView is the externally visible state of one piece.
type PieceView struct {
	ID     string      `json:"id"`
	Number int         `json:"number"`
	Color  Color       `json:"color"`
	Status PieceStatus `json:"status"`
	Square *SquareID   `json:"square"`
}

// PlayerView is the externally visible state of one player.
type PlayerView struct {
	UserID           string      `json:"user_id"`
	Color            Color       `json:"color"`
	IsCurrentTurn    bool        `json:"is_current_turn"`
	ConsecutivePairs int         `json:"consecutive_pairs_count"`
	Pieces           []PieceView `json:"pieces"`
}

// SquareView lists the occupants of one occupied square.
type SquareView struct {
	ID        SquareID `json:"id"`
	Safe      bool     `json:"safe"`
	Occupants []string `json:"occupants"`
}

// Summary is the short game description returned by create and join.
type Summary struct {
	ID                 string       `json:"id"`
	State              GameState    `json:"state"`
	MaxPlayers         int          `json:"max_players"`
	CurrentPlayerCount int          `json:"current_player_count"`
	Players            []PlayerView `json:"players"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Snapshot is the complete externally visible state of a game. Two snapshots
// taken without an intervening mutation are identical: every slice is built
// in a fixed order.
type Snapshot struct {
	GameID                    string       `json:"game_id"`
	State                     GameState    `json:"state"`
	MaxPlayers                int          `json:"max_players"`
	Board                     []SquareView `json:"board"`
	Players                   []PlayerView `json:"players"`
	TurnOrder                 []Color      `json:"turn_order"`
	CurrentTurnColor          *Color       `json:"current_turn_color"`
	CurrentPlayerDoublesCount int          `json:"current_player_doubles_count"`
	LastDiceRoll              []int        `json:"last_dice_roll"`
	Winner                    *Color       `json:"winner"`
	CreatedAt                 time.Time    `json:"created_at"`
}

func pieceView(p *Piece) PieceView {
	v := PieceView{ID: p.ID, Number: p.Number, Color: p.Color, Status: p.Status}
	if p.Square != nil {
		sq := *p.Square
		v.Square = &sq
	}
	return v
}

func (g *Game) playerViews() []PlayerView {
	views := make([]PlayerView, 0, len(g.turnOrder))
	for _, c := range g.turnOrder {
		pl := g.players[c]
		pv := PlayerView{
			UserID:           pl.UserID,
			Color:            pl.Color,
			IsCurrentTurn:    g.state == StateInProgress && g.turnOrder[g.turnIdx] == c,
			ConsecutivePairs: pl.ConsecutivePairs,
			Pieces:           make([]PieceView, 0, len(pl.Pieces)),
		}
		for _, p := range pl.Pieces {
			pv.Pieces = append(pv.Pieces, pieceView(p))
		}
		views = append(views, pv)
	}
	return views
}

// boardViews walks every square in a fixed order (track ascending, then each
// color's lane, then goals) and reports the occupied ones.
func (g *Game) boardViews() []SquareView {
	squares := make([]SquareID, 0, TrackLength+len(Colors)*(LaneLength+1))
	for i := 0; i < TrackLength; i++ {
		squares = append(squares, TrackSquare(i))
	}
	for _, c := range Colors {
		for k := 0; k < LaneLength; k++ {
			squares = append(squares, LaneSquare(c, k))
		}
	}
	for _, c := range Colors {
		squares = append(squares, GoalSquare(c))
	}

	views := []SquareView{}
	for _, sq := range squares {
		occ := g.occupantsAt(sq)
		if len(occ) == 0 {
			continue
		}
		v := SquareView{ID: sq, Safe: IsSafe(sq)}
		for _, p := range occ {
			v.Occupants = append(v.Occupants, p.ID)
		}
		views = append(views, v)
	}
	return views
}

// Summary returns the short description used by the lobby endpoints.
func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Summary{
		ID:                 g.id,
		State:              g.state,
		MaxPlayers:         g.maxPlayers,
		CurrentPlayerCount: len(g.players),
		Players:            g.playerViews(),
		CreatedAt:          g.createdAt,
	}
}

// Snapshot returns the full state. It takes the game mutex, so it never
// observes a half-applied move.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		GameID:     g.id,
		State:      g.state,
		MaxPlayers: g.maxPlayers,
		Board:      g.boardViews(),
		Players:    g.playerViews(),
		TurnOrder:  append([]Color(nil), g.turnOrder...),
		CreatedAt:  g.createdAt,
	}
	if g.state == StateInProgress {
		c := g.turnOrder[g.turnIdx]
		snap.CurrentTurnColor = &c
		snap.CurrentPlayerDoublesCount = g.currentPlayer().ConsecutivePairs
	}
	if g.lastRoll != nil {
		snap.LastDiceRoll = []int{g.lastRoll[0], g.lastRoll[1]}
	}
	if g.winner != nil {
		w := *g.winner
		snap.Winner = &w
	}
	return snap
}
