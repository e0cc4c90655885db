package http

import "parques/internal/game"

// CreateGameRequest is the payload for POST /games.
type CreateGameRequest struct {
	MaxPlayers    int        `json:"max_players"`
	CreatorUserID string     `json:"creator_user_id"`
	CreatorColor  game.Color `json:"creator_color"`
}

// JoinGameRequest is the payload for POST /games/:id/join.
type JoinGameRequest struct {
	UserID string     `json:"user_id"`
	Color  game.Color `json:"color"`
}

// MovePieceRequest is the payload for POST /games/:id/move. TargetSquare uses
// the wire form of a square id: a bare integer or a ["pas"|"cielo", color,
// index] triple.
type MovePieceRequest struct {
	PieceID      string        `json:"piece_id"`
	TargetSquare game.SquareID `json:"target_square"`
	StepsUsed    int           `json:"steps_used"`
}

// BurnPieceRequest is the payload for POST /games/:id/burn. An empty piece id
// lets the server pick the piece by its fixed tie-break.
type BurnPieceRequest struct {
	PieceID string `json:"piece_id"`
}

// RulesResponse reports the variant flags the server was started with.
type RulesResponse struct {
	ExitRollValue       int  `json:"exit_roll_value"`
	WallBlocks          bool `json:"wall_blocks"`
	ExtraTurnOnJailExit bool `json:"extra_turn_on_jail_exit"`
	ExtraTurnOnCapture  bool `json:"extra_turn_on_capture"`
}
