package game

import (
	"math/rand"
	"time"
)

// Dice rolls two six-sided dice. The random source is injectable so tests can
// replay exact sequences.
type Dice struct {
	rng *rand.Rand
}

func NewDice(rng *rand.Rand) *Dice {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Dice{rng: rng}
}

func (d *Dice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}

func IsPair(d1, d2 int) bool { return d1 == d2 }
