package searcher

import (
	"pigo/game"
	"time"
)

// Hyperparameters for MCTS

const DefaultExploration = 1.4 // C in the UCB1 rule
const DefaultMaxMoves = 100    // Ply cap of one simulation
const DefaultDuration = 30 * time.Second

// key identifies a statistics entry: the player who moved into a position
// and the hash of that position.
type key struct {
	player game.Color
	hash   game.Hash
}

type record struct {
	plays int
	wins  int
}

// Clock is polled between simulations to enforce the time budget.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
