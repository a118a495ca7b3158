package game

import "fmt"

// Color is the content of a board cell. Black and White double as the
// player tags; Empty doubles as "no winner yet".
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Hash is a position hash. It covers stone placement only, not the side to move.
type Hash uint64

// Move is a coordinate pair within [0, size)², or Pass.
type Move struct {
	X, Y int
}

// Pass is the reserved sentinel move that switches the side to move without
// touching the board.
var Pass = Move{X: -1, Y: -1}

func (m Move) IsPass() bool {
	return m == Pass
}

func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}
