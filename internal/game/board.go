package game

// Board geometry for the standard four-player layout: a 68-cell shared track
// split into four 17-cell sides, one private lane and one goal per color.
const (
	TrackLength     = 68
	SideLength      = 17
	LaneLength      = 6
	PiecesPerPlayer = 4

	MinPlayers = 2
	MaxPlayers = 4
)

// pathLength is the full distance a piece covers: the whole track starting at
// its entry square, its lane, and the final step onto the goal.
const pathLength = TrackLength + LaneLength + 1

var entryIndex = map[Color]int{
	ColorRed:    0,
	ColorGreen:  SideLength,
	ColorBlue:   SideLength * 2,
	ColorYellow: SideLength * 3,
}

// safeIndex marks the capture-free track cells: every entry square plus the
// two mid-side refuges at offsets 6 and 12.
var safeIndex = func() map[int]bool {
	m := make(map[int]bool)
	for _, base := range entryIndex {
		m[base] = true
		m[base+6] = true
		m[base+12] = true
	}
	return m
}()

// EntrySquare is where a color's pieces land when leaving jail.
func EntrySquare(c Color) SquareID { return TrackSquare(entryIndex[c]) }

// ExitIndex is the track cell just before a color's lane begins; a piece
// standing there enters the lane on its next step.
func ExitIndex(c Color) int {
	return (entryIndex[c] - 1 + TrackLength) % TrackLength
}

// IsSafe reports whether capture can never occur on the square. Lane and goal
// cells are private to their color, so they count as safe.
func IsSafe(sq SquareID) bool {
	if sq.Kind != SquareTrack {
		return true
	}
	return safeIndex[sq.Index]
}

// pathPos maps a square to its position on the given color's path, or -1 when
// the square is not on that path (another color's lane, or the goal).
func pathPos(sq SquareID, c Color) int {
	switch sq.Kind {
	case SquareTrack:
		return (sq.Index - entryIndex[c] + TrackLength) % TrackLength
	case SquareLane:
		if sq.Color != c || sq.Index < 0 || sq.Index >= LaneLength {
			return -1
		}
		return TrackLength + sq.Index
	default:
		return -1
	}
}

// StepsFrom advances a piece of the given color n squares along its path,
// crossing from the track into its lane and from the lane onto the goal.
// The goal requires an exact landing: overshooting returns ok == false.
func StepsFrom(from SquareID, n int, c Color) (SquareID, bool) {
	pos := pathPos(from, c)
	if pos < 0 || n <= 0 {
		return SquareID{}, false
	}
	target := pos + n
	switch {
	case target < TrackLength:
		return TrackSquare((entryIndex[c] + target) % TrackLength), true
	case target < TrackLength+LaneLength:
		return LaneSquare(c, target-TrackLength), true
	case target == pathLength-1:
		return GoalSquare(c), true
	default:
		return SquareID{}, false
	}
}
