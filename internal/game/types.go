package game

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Color identifies a player and the board features owned by that player.
type Color string

const (
	ColorRed    Color = "RED"
	ColorGreen  Color = "GREEN"
	ColorBlue   Color = "BLUE"
	ColorYellow Color = "YELLOW"
)

// Colors lists every playable color in board order. The order matters: entry
// squares are assigned by side following this sequence.
var Colors = []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}

func (c Color) Valid() bool {
	for _, v := range Colors {
		if c == v {
			return true
		}
	}
	return false
}

// SquareKind discriminates the three variants of a square identifier.
type SquareKind int

const (
	SquareTrack SquareKind = iota // shared circular track, Index 0..TrackLength-1
	SquareLane                    // color-private lane cell, Index 0..LaneLength-1
	SquareGoal                    // terminal cell for Color
)

// SquareID is a tagged union: a plain index on the shared track, a
// (lane, color, index) cell, or the per-color goal sentinel. Values of
// different kinds never compare equal.
type SquareID struct {
	Kind  SquareKind
	Color Color // lane/goal owner, empty for track squares
	Index int
}

func TrackSquare(idx int) SquareID { return SquareID{Kind: SquareTrack, Index: idx} }

func LaneSquare(c Color, k int) SquareID {
	return SquareID{Kind: SquareLane, Color: c, Index: k}
}

func GoalSquare(c Color) SquareID { return SquareID{Kind: SquareGoal, Color: c} }

func (s SquareID) String() string {
	switch s.Kind {
	case SquareLane:
		return fmt.Sprintf("pas:%s:%d", s.Color, s.Index)
	case SquareGoal:
		return fmt.Sprintf("cielo:%s", s.Color)
	default:
		return fmt.Sprintf("%d", s.Index)
	}
}

// MarshalJSON encodes track squares as a bare integer and lane/goal squares
// as a ["pas"|"cielo", color, index] triple.
func (s SquareID) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SquareLane:
		return json.Marshal([3]any{"pas", s.Color, s.Index})
	case SquareGoal:
		return json.Marshal([3]any{"cielo", s.Color, 0})
	default:
		return json.Marshal(s.Index)
	}
}

func (s *SquareID) UnmarshalJSON(data []byte) error {
	var idx int
	if err := json.Unmarshal(data, &idx); err == nil {
		*s = TrackSquare(idx)
		return nil
	}
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("square id must be an integer or a 3-element tuple")
	}
	var tag string
	if err := json.Unmarshal(tuple[0], &tag); err != nil {
		return fmt.Errorf("square id tag: %w", err)
	}
	var color Color
	if err := json.Unmarshal(tuple[1], &color); err != nil {
		return fmt.Errorf("square id color: %w", err)
	}
	var k int
	if len(tuple[2]) > 0 && string(tuple[2]) != "null" {
		if err := json.Unmarshal(tuple[2], &k); err != nil {
			return fmt.Errorf("square id index: %w", err)
		}
	}
	switch tag {
	case "pas":
		*s = LaneSquare(color, k)
	case "cielo":
		*s = GoalSquare(color)
	default:
		return fmt.Errorf("unknown square id tag %q", tag)
	}
	return nil
}

// PieceStatus tracks where a piece is in its lifecycle.
type PieceStatus string

const (
	StatusInJail  PieceStatus = "in_jail"
	StatusOnTrack PieceStatus = "on_track"
	StatusInLane  PieceStatus = "in_lane"
	StatusAtGoal  PieceStatus = "at_goal"
)

// Piece is one of the four tokens a player moves around the board. Square is
// nil while the piece is jailed or home.
type Piece struct {
	ID     string      `json:"id"`
	Number int         `json:"number"` // 0..3 within the owning player
	Color  Color       `json:"color"`
	Status PieceStatus `json:"status"`
	Square *SquareID   `json:"square"`
}

func newPiece(number int, color Color) *Piece {
	return &Piece{
		ID:     uuid.NewString(),
		Number: number,
		Color:  color,
		Status: StatusInJail,
	}
}

func (p *Piece) sendToJail() {
	p.Status = StatusInJail
	p.Square = nil
}

// Player owns four pieces and the consecutive-pairs streak used by the
// three-pairs penalty.
type Player struct {
	UserID           string   `json:"user_id"`
	Color            Color    `json:"color"`
	Pieces           []*Piece `json:"pieces"`
	ConsecutivePairs int      `json:"consecutive_pairs_count"`
}

func newPlayer(userID string, color Color) *Player {
	pl := &Player{UserID: userID, Color: color}
	for i := 0; i < PiecesPerPlayer; i++ {
		pl.Pieces = append(pl.Pieces, newPiece(i, color))
	}
	return pl
}

func (pl *Player) pieceByID(id string) *Piece {
	for _, p := range pl.Pieces {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (pl *Player) piecesAtGoal() int {
	n := 0
	for _, p := range pl.Pieces {
		if p.Status == StatusAtGoal {
			n++
		}
	}
	return n
}

func (pl *Player) hasWon() bool { return pl.piecesAtGoal() == PiecesPerPlayer }

// MoveKind classifies the semantic outcome of a legal move.
type MoveKind string

const (
	MoveJailExit    MoveKind = "jail_exit"
	MoveOrdinary    MoveKind = "ordinary"
	MoveCapture     MoveKind = "capture"
	MoveLaneEntry   MoveKind = "lane_entry"
	MoveGoalArrival MoveKind = "goal_arrival"
)

// Move is one legal destination for a piece under the current roll.
type Move struct {
	Dest  SquareID
	Kind  MoveKind
	Steps int
}

// MarshalJSON flattens the move to the wire triple [destination, kind, steps].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{m.Dest, m.Kind, m.Steps})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var tuple [3]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &m.Dest); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[1], &m.Kind); err != nil {
		return err
	}
	return json.Unmarshal(tuple[2], &m.Steps)
}

// RollOutcome tells the roller what the dice demand next.
type RollOutcome string

const (
	RollOK             RollOutcome = "ok"
	RollThreePairsBurn RollOutcome = "three_pairs_burn"
)

// GameState is the lifecycle state of a match.
type GameState string

const (
	StateWaitingPlayers GameState = "waiting_players"
	StateReadyToStart   GameState = "ready_to_start"
	StateInProgress     GameState = "in_progress"
	StateFinished       GameState = "finished"
)

// Rules holds the variant switches for the blocking and turn-extension rules
// this game family leaves ambiguous. Defaults follow common Colombian table
// rules: pairs repeat the turn, nothing else does.
type Rules struct {
	ExitRoll            int  // die face that releases a piece from jail
	WallBlocks          bool // two stacked opponents block the destination
	ExtraTurnOnJailExit bool
	ExtraTurnOnCapture  bool
}

func DefaultRules() Rules {
	return Rules{ExitRoll: 5, WallBlocks: true}
}
