package game

import (
	"sync"
	"time"
)

// Game is the aggregate root for one match. It owns the players, the turn
// state machine and the legal-move set for the roll in flight. Every exported
// method takes the game mutex, so operations on a single game are serialized
// and snapshots are always consistent.
type Game struct {
	mu sync.Mutex

	id         string
	creatorID  string
	maxPlayers int
	state      GameState
	players    map[Color]*Player
	turnOrder  []Color // join order, fixed when the game starts
	turnIdx    int

	lastRoll    *[2]int
	hasRolled   bool
	pendingBurn bool
	possible    map[string][]Move

	winner    *Color
	rules     Rules
	dice      *Dice
	createdAt time.Time
}

// RollReport is what a roll returns to the acting player: the dice, the pair
// classification, the penalty signal and the legal-move mapping.
type RollReport struct {
	Dice1         int               `json:"dice1"`
	Dice2         int               `json:"dice2"`
	IsPairs       bool              `json:"is_pairs"`
	Result        RollOutcome       `json:"roll_validation_result"`
	PossibleMoves map[string][]Move `json:"possible_moves"`
}

// New creates a game in waiting_players state with the creator already
// seated. The dice may carry a seeded source for reproducible matches.
func New(id string, maxPlayers int, creatorID string, creatorColor Color, rules Rules, dice *Dice) (*Game, error) {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		return nil, reject(KindValidation, "max_players must be between %d and %d", MinPlayers, MaxPlayers)
	}
	if !creatorColor.Valid() {
		return nil, reject(KindValidation, "invalid color %q", creatorColor)
	}
	if creatorID == "" {
		return nil, reject(KindValidation, "creator_user_id is required")
	}
	if dice == nil {
		dice = NewDice(nil)
	}
	g := &Game{
		id:         id,
		creatorID:  creatorID,
		maxPlayers: maxPlayers,
		state:      StateWaitingPlayers,
		players:    map[Color]*Player{},
		rules:      rules,
		dice:       dice,
		createdAt:  time.Now().UTC(),
	}
	g.addPlayer(creatorID, creatorColor)
	return g, nil
}

func (g *Game) ID() string { return g.id }

func (g *Game) addPlayer(userID string, color Color) {
	g.players[color] = newPlayer(userID, color)
	g.turnOrder = append(g.turnOrder, color)
	if len(g.players) >= MinPlayers {
		g.state = StateReadyToStart
	}
}

// Join seats a new player. Joins are accepted until the game starts or fills
// up; color and user uniqueness are enforced here, not in the transport.
func (g *Game) Join(userID string, color Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !color.Valid() {
		return reject(KindValidation, "invalid color %q", color)
	}
	if userID == "" {
		return reject(KindValidation, "user_id is required")
	}
	if g.state != StateWaitingPlayers && g.state != StateReadyToStart {
		return reject(KindIllegalState, "game is not accepting players")
	}
	if len(g.players) >= g.maxPlayers {
		return reject(KindIllegalState, "game is full")
	}
	if _, taken := g.players[color]; taken {
		return reject(KindValidation, "color %s is already taken", color)
	}
	for _, pl := range g.players {
		if pl.UserID == userID {
			return reject(KindValidation, "user %s already joined as %s", userID, pl.Color)
		}
	}
	g.addPlayer(userID, color)
	return nil
}

// Start moves the game to in_progress. Only the creator may start, and only
// once at least two players are seated. Turn order is join order.
func (g *Game) Start(userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if userID != g.creatorID {
		return reject(KindAuthorization, "only the creator may start the game")
	}
	if g.state != StateReadyToStart {
		return reject(KindIllegalState, "game is not ready to start")
	}
	if len(g.players) < MinPlayers {
		return reject(KindIllegalState, "at least %d players are needed", MinPlayers)
	}
	g.state = StateInProgress
	g.turnIdx = 0
	g.currentPlayer().ConsecutivePairs = 0
	return nil
}

func (g *Game) currentPlayer() *Player {
	return g.players[g.turnOrder[g.turnIdx]]
}

// requireCurrent resolves the caller to the acting player, rejecting callers
// that are not seated or not on turn.
func (g *Game) requireCurrent(userID string) (*Player, error) {
	if g.state != StateInProgress {
		return nil, reject(KindIllegalState, "game is not in progress")
	}
	var member *Player
	for _, pl := range g.players {
		if pl.UserID == userID {
			member = pl
			break
		}
	}
	if member == nil {
		return nil, reject(KindAuthorization, "user %s is not a player in this game", userID)
	}
	if cur := g.currentPlayer(); cur != member {
		return nil, reject(KindAuthorization, "not your turn")
	}
	return member, nil
}

// Roll resolves the dice for the acting player. On a third consecutive pair
// it signals the burn penalty and offers no moves; otherwise it returns the
// legal-move mapping, which may be empty (the pass path).
func (g *Game) Roll(userID string) (RollReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pl, err := g.requireCurrent(userID)
	if err != nil {
		return RollReport{}, err
	}
	if g.pendingBurn {
		return RollReport{}, reject(KindIllegalState, "three pairs rolled: you must burn a piece")
	}
	if g.hasRolled {
		return RollReport{}, reject(KindIllegalState, "dice already rolled this turn")
	}

	d1, d2 := g.dice.Roll()
	g.lastRoll = &[2]int{d1, d2}
	g.hasRolled = true

	report := RollReport{Dice1: d1, Dice2: d2, IsPairs: IsPair(d1, d2), Result: RollOK}
	if report.IsPairs {
		pl.ConsecutivePairs++
		if pl.ConsecutivePairs >= 3 {
			g.pendingBurn = true
			g.possible = nil
			report.Result = RollThreePairsBurn
			report.PossibleMoves = map[string][]Move{}
			return report, nil
		}
	} else {
		pl.ConsecutivePairs = 0
	}

	g.possible = g.generateMoves(pl, d1, d2)
	report.PossibleMoves = g.possible
	return report, nil
}

// Move applies one of the legal moves produced by the last roll. The move is
// re-validated against that set, so a stale client cannot smuggle in a
// destination the generator never offered.
func (g *Game) Move(userID, pieceID string, target SquareID, steps int) (MoveKind, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	pl, err := g.requireCurrent(userID)
	if err != nil {
		return "", err
	}
	if g.pendingBurn {
		return "", reject(KindIllegalState, "three pairs rolled: you must burn a piece")
	}
	if !g.hasRolled {
		return "", reject(KindIllegalState, "roll the dice before moving")
	}
	piece := pl.pieceByID(pieceID)
	if piece == nil {
		return "", reject(KindNotFound, "piece %s not found", pieceID)
	}
	var chosen *Move
	for i, m := range g.possible[pieceID] {
		if m.Dest == target && m.Steps == steps {
			chosen = &g.possible[pieceID][i]
			break
		}
	}
	if chosen == nil {
		return "", reject(KindRuleViolation, "move to %s with %d steps is not legal for this roll", target, steps)
	}

	g.applyMove(piece, *chosen)

	if pl.hasWon() {
		g.winner = &pl.Color
		g.state = StateFinished
		return chosen.Kind, nil
	}
	g.resolveTurn(chosen.Kind)
	return chosen.Kind, nil
}

// applyMove mutates the piece and jails whatever opponents it lands on when
// the destination allows capture.
func (g *Game) applyMove(piece *Piece, mv Move) {
	if mv.Dest.Kind == SquareTrack && !IsSafe(mv.Dest) {
		for _, occ := range g.occupantsAt(mv.Dest) {
			if occ.Color != piece.Color {
				occ.sendToJail()
			}
		}
	}
	switch mv.Dest.Kind {
	case SquareGoal:
		piece.Status = StatusAtGoal
		piece.Square = nil
	case SquareLane:
		dest := mv.Dest
		piece.Status = StatusInLane
		piece.Square = &dest
	default:
		dest := mv.Dest
		piece.Status = StatusOnTrack
		piece.Square = &dest
	}
}

// Burn applies the three-pairs penalty: one piece returns to jail and the
// turn ends unconditionally. Without an explicit piece the lowest-numbered
// piece on the board is chosen, a fixed tie-break so the penalty is
// reproducible.
func (g *Game) Burn(userID, pieceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	pl, err := g.requireCurrent(userID)
	if err != nil {
		return err
	}
	if !g.pendingBurn {
		return reject(KindIllegalState, "no three-pairs penalty is pending")
	}

	var victim *Piece
	if pieceID != "" {
		victim = pl.pieceByID(pieceID)
		if victim == nil {
			return reject(KindNotFound, "piece %s not found", pieceID)
		}
		if victim.Status == StatusInJail || victim.Status == StatusAtGoal {
			return reject(KindRuleViolation, "piece %s cannot be burned", pieceID)
		}
	} else {
		for _, p := range pl.Pieces {
			if p.Status == StatusOnTrack || p.Status == StatusInLane {
				victim = p
				break
			}
		}
	}
	if victim != nil {
		victim.sendToJail()
	}
	pl.ConsecutivePairs = 0
	g.pendingBurn = false
	g.advanceTurn()
	return nil
}

// Pass gives up the turn when the roll produced no legal move. A pair roll
// with no moves re-grants the roll to the same player, like any other pair.
func (g *Game) Pass(userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, err := g.requireCurrent(userID)
	if err != nil {
		return err
	}
	if g.pendingBurn {
		return reject(KindIllegalState, "three pairs rolled: you must burn a piece")
	}
	if !g.hasRolled {
		return reject(KindIllegalState, "roll the dice before passing")
	}
	if len(g.possible) > 0 {
		return reject(KindIllegalState, "legal moves are available: you must move")
	}
	g.resolveTurn("")
	return nil
}

// resolveTurn decides whether the acting player goes again. Pairs always
// repeat the turn; jail exits and captures repeat it only when the variant
// flags say so.
func (g *Game) resolveTurn(kind MoveKind) {
	pair := g.lastRoll != nil && IsPair(g.lastRoll[0], g.lastRoll[1])
	extra := pair
	if kind == MoveJailExit && g.rules.ExtraTurnOnJailExit {
		extra = true
	}
	if kind == MoveCapture && g.rules.ExtraTurnOnCapture {
		extra = true
	}
	if extra {
		g.hasRolled = false
		g.possible = nil
		return
	}
	g.advanceTurn()
}

func (g *Game) advanceTurn() {
	g.currentPlayer().ConsecutivePairs = 0
	g.turnIdx = (g.turnIdx + 1) % len(g.turnOrder)
	g.currentPlayer().ConsecutivePairs = 0
	g.lastRoll = nil
	g.hasRolled = false
	g.pendingBurn = false
	g.possible = nil
}
