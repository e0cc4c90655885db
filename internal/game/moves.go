package game

// candidateSteps returns the distinct step sizes a roll offers (each die and
// their sum), largest first so generated move lists are deterministic.
func candidateSteps(d1, d2 int) []int {
	lo, hi := d1, d2
	if lo > hi {
		lo, hi = hi, lo
	}
	steps := []int{d1 + d2}
	if hi < d1+d2 {
		steps = append(steps, hi)
	}
	if lo < hi {
		steps = append(steps, lo)
	}
	return steps
}

// occupantsAt collects every piece standing on the square, iterating players
// in fixed color order so the result is reproducible.
func (g *Game) occupantsAt(sq SquareID) []*Piece {
	var out []*Piece
	for _, c := range Colors {
		pl, ok := g.players[c]
		if !ok {
			continue
		}
		for _, p := range pl.Pieces {
			if p.Square != nil && *p.Square == sq {
				out = append(out, p)
			}
		}
	}
	return out
}

// generateMoves enumerates every legal (destination, kind, steps) triple for
// the player's pieces under the given roll. Pieces with no legal destination
// contribute no entry.
func (g *Game) generateMoves(pl *Player, d1, d2 int) map[string][]Move {
	moves := make(map[string][]Move)
	for _, p := range pl.Pieces {
		var opts []Move
		switch p.Status {
		case StatusAtGoal:
			// finished pieces never move again
		case StatusInJail:
			if m, ok := g.jailExitMove(p, d1, d2); ok {
				opts = append(opts, m)
			}
		default:
			for _, steps := range candidateSteps(d1, d2) {
				if m, ok := g.boardMove(p, steps); ok {
					opts = append(opts, m)
				}
			}
		}
		if len(opts) > 0 {
			moves[p.ID] = opts
		}
	}
	return moves
}

// jailExitMove releases a jailed piece onto its entry square when either die
// shows the exit value. An opponent on a safe entry blocks the exit; on a
// non-safe entry it would be captured instead.
func (g *Game) jailExitMove(p *Piece, d1, d2 int) (Move, bool) {
	if d1 != g.rules.ExitRoll && d2 != g.rules.ExitRoll {
		return Move{}, false
	}
	entry := EntrySquare(p.Color)
	own, opp := g.splitOccupants(entry, p.Color)
	if own > 0 {
		return Move{}, false
	}
	if opp > 0 && IsSafe(entry) {
		return Move{}, false
	}
	if opp >= 2 && g.rules.WallBlocks {
		return Move{}, false
	}
	return Move{Dest: entry, Kind: MoveJailExit, Steps: g.rules.ExitRoll}, true
}

// boardMove evaluates a single step size for a piece on the track or in its
// lane. Lane and goal destinations are always legal: the lane is private to
// the color and the goal requires the exact landing StepsFrom enforces.
func (g *Game) boardMove(p *Piece, steps int) (Move, bool) {
	dest, ok := StepsFrom(*p.Square, steps, p.Color)
	if !ok {
		return Move{}, false
	}
	switch dest.Kind {
	case SquareGoal:
		return Move{Dest: dest, Kind: MoveGoalArrival, Steps: steps}, true
	case SquareLane:
		return Move{Dest: dest, Kind: MoveLaneEntry, Steps: steps}, true
	}
	own, opp := g.splitOccupants(dest, p.Color)
	if own > 0 {
		// landing on an own piece is never allowed
		return Move{}, false
	}
	if opp >= 2 && g.rules.WallBlocks {
		return Move{}, false
	}
	if opp > 0 && !IsSafe(dest) {
		// with walls enabled this is always a single opponent; with walls
		// disabled the whole stack is swept back to jail on apply
		return Move{Dest: dest, Kind: MoveCapture, Steps: steps}, true
	}
	return Move{Dest: dest, Kind: MoveOrdinary, Steps: steps}, true
}

func (g *Game) splitOccupants(sq SquareID, mover Color) (own, opponents int) {
	for _, p := range g.occupantsAt(sq) {
		if p.Color == mover {
			own++
		} else {
			opponents++
		}
	}
	return own, opponents
}
