package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// RepetitionLength is the number of identical trailing hashes that ends a game.
const RepetitionLength = 3

type BoardOption func(b *Board)

// WithSeed fixes the seed of the hash table so that hashes are reproducible.
func WithSeed(seed uint64) BoardOption {
	return func(b *Board) {
		b.seed = seed
	}
}

// Board holds the rules of one game: grid size, komi and the hash table
// shared by every state it produces.
type Board struct {
	size   int
	komi   float64
	seed   uint64
	hasher *Hasher
}

func NewBoard(size int, komi float64, options ...BoardOption) *Board {
	if size < 1 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	b := &Board{
		size: size,
		komi: komi,
		seed: uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(b)
	}
	b.hasher = NewHasher(size, rand.NewSource(b.seed))
	return b
}

func (b *Board) Size() int       { return b.size }
func (b *Board) Komi() float64   { return b.komi }
func (b *Board) Hasher() *Hasher { return b.hasher }

// Start returns the empty starting position with Black to move.
func (b *Board) Start() *BoardState {
	return newBoardState(b.size, b.komi, b.hasher)
}

func (b *Board) CurrentPlayer(state *BoardState) Color {
	return state.player
}

// NextState returns a new state with move applied by the side to move. The
// input state is not modified. Legality is not checked.
func (b *Board) NextState(state *BoardState, move Move) *BoardState {
	next := state.Copy()
	if !move.IsPass() {
		next.Place(move.X, move.Y, next.player)
	}
	next.player = next.player.Opponent()
	next.turn++
	return next
}

// LegalPlays lists the moves available to the side to move, in board order,
// followed by Pass. Suicides and moves that recreate a position already in
// history are left out.
func (b *Board) LegalPlays(state *BoardState, history History) []Move {
	player := state.player
	legal := make([]Move, 0, len(state.cells)+1)
	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			p := state.index(x, y)
			if state.cells[p] != Empty {
				continue
			}
			effects := state.effects(p, player)
			if effects.suicide {
				continue
			}
			var hash Hash
			if len(effects.captured) == 0 {
				// A single stone changes: toggle it in and compare.
				hash = b.hasher.Combine(state.hash, x, y, player)
			} else {
				projected := state.Copy()
				projected.Place(x, y, player)
				hash = projected.hash
			}
			if history.Contains(hash) {
				continue
			}
			legal = append(legal, Move{X: x, Y: y})
		}
	}
	return append(legal, Pass)
}

// Winner returns the winner once the last RepetitionLength hashes of history
// are identical, and Empty while the game is in progress. A zero score goes
// to White.
func (b *Board) Winner(state *BoardState, history History) Color {
	if !history.Repeated(RepetitionLength) {
		return Empty
	}
	return b.ProjectedWinner(state)
}

// ProjectedWinner decides the game by the sign of the current score.
func (b *Board) ProjectedWinner(state *BoardState) Color {
	if state.CalculateScore() > 0 {
		return Black
	}
	return White
}
