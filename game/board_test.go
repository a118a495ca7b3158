package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// play applies moves from the start position and returns the final state
// and the history of every position, starting position included.
func play(t *testing.T, board *Board, moves []Move) (*BoardState, History) {
	t.Helper()
	state := board.Start()
	history := History{state.Hash()}
	for _, move := range moves {
		require.Contains(t, board.LegalPlays(state, history), move, "Move %v should be legal", move)
		state = board.NextState(state, move)
		history = append(history, state.Hash())
	}
	return state, history
}

func TestHasher(t *testing.T) {
	t.Run("combine is its own inverse", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(3))
		h := board.Hasher()
		hash := h.Combine(h.Initial(), 1, 2, Black)
		require.NotEqual(t, h.Initial(), hash)
		require.Equal(t, h.Initial(), h.Combine(hash, 1, 2, Black))
	})

	t.Run("colors hash differently", func(t *testing.T) {
		h := NewBoard(5, 6.5, WithSeed(3)).Hasher()
		require.NotEqual(t, h.Combine(0, 0, 0, Black), h.Combine(0, 0, 0, White))
	})

	t.Run("same seed gives the same table", func(t *testing.T) {
		a := NewBoard(5, 6.5, WithSeed(9)).Hasher()
		b := NewBoard(5, 6.5, WithSeed(9)).Hasher()
		require.Equal(t, a.Combine(0, 4, 4, White), b.Combine(0, 4, 4, White))
	})

	t.Run("hash does not depend on move order", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(11))
		stones := []struct {
			x, y  int
			color Color
		}{{0, 0, Black}, {3, 1, White}, {2, 4, Black}, {4, 4, White}}
		forward, backward := board.Start(), board.Start()
		for i := range stones {
			forward.Place(stones[i].x, stones[i].y, stones[i].color)
			j := len(stones) - 1 - i
			backward.Place(stones[j].x, stones[j].y, stones[j].color)
		}
		require.Equal(t, forward.Hash(), backward.Hash())
	})

	t.Run("hash after a capture matches the same stones placed directly", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(11))
		captured := board.Start()
		captured.Place(2, 2, White)
		direct := board.Start()
		for _, m := range []Move{{1, 2}, {2, 1}, {2, 3}, {3, 2}} {
			captured.Place(m.X, m.Y, Black)
			direct.Place(m.X, m.Y, Black)
		}
		require.Equal(t, Empty, captured.At(2, 2))
		require.Equal(t, direct.Hash(), captured.Hash())
	})
}

func TestNextState(t *testing.T) {
	board := NewBoard(5, 6.5, WithSeed(5))

	t.Run("does not modify the input state", func(t *testing.T) {
		state := board.Start()
		next := board.NextState(state, Move{2, 2})

		require.Equal(t, Empty, state.At(2, 2))
		require.Equal(t, Black, state.Player())
		require.Equal(t, 0, state.Turn())
		require.Equal(t, Black, next.At(2, 2))
		require.Equal(t, White, board.CurrentPlayer(next))
		require.Equal(t, 1, next.Turn())
	})

	t.Run("pass switches side and keeps the board", func(t *testing.T) {
		state := board.NextState(board.Start(), Move{1, 1})
		next := board.NextState(state, Pass)

		require.Equal(t, state.Hash(), next.Hash())
		require.Equal(t, Black, next.Player())
		require.Equal(t, Black, next.At(1, 1))
	})
}

func TestLegalPlays(t *testing.T) {
	t.Run("empty board offers every point and pass last", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state := board.Start()
		legal := board.LegalPlays(state, History{state.Hash()})

		require.Len(t, legal, 26)
		require.Equal(t, Move{0, 0}, legal[0])
		require.Equal(t, Pass, legal[len(legal)-1])
	})

	t.Run("single point board only allows pass", func(t *testing.T) {
		board := NewBoard(1, 0, WithSeed(5))
		state := board.Start()
		require.Equal(t, []Move{Pass}, board.LegalPlays(state, History{state.Hash()}))
	})

	t.Run("suicide is excluded", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state, history := play(t, board, []Move{
			{1, 2}, Pass, {2, 1}, Pass, {2, 3}, Pass, {3, 2},
		})
		require.Equal(t, White, state.Player())
		require.NotContains(t, board.LegalPlays(state, history), Move{2, 2})
	})

	t.Run("immediate ko recapture is excluded", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state, history := play(t, board, []Move{
			{2, 2}, {3, 2}, {3, 3}, {2, 3}, {3, 1}, {2, 1}, {4, 2}, {1, 2}, {0, 0}, {3, 2},
		})

		require.Equal(t, Black, state.Player())
		require.Equal(t, Empty, state.At(2, 2), "White should have captured at (2,2)")
		require.Equal(t, 1, state.Captures(White))
		legal := board.LegalPlays(state, history)
		require.NotContains(t, legal, Move{2, 2}, "Recapture would repeat a previous position")
		require.Contains(t, legal, Pass)
	})

	t.Run("ko recapture is legal again once the position changed", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state, history := play(t, board, []Move{
			{2, 2}, {3, 2}, {3, 3}, {2, 3}, {3, 1}, {2, 1}, {4, 2}, {1, 2}, {0, 0}, {3, 2},
			{4, 4}, {0, 4},
		})
		require.Contains(t, board.LegalPlays(state, history), Move{2, 2})
	})
}

func TestWinner(t *testing.T) {
	t.Run("no winner while the game is in progress", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state, history := play(t, board, []Move{{2, 2}, Pass})
		require.Equal(t, Empty, board.Winner(state, history))
	})

	t.Run("three identical hashes end the game", func(t *testing.T) {
		board := NewBoard(3, 5.5, WithSeed(5))
		state, history := play(t, board, []Move{{1, 0}, Pass, {1, 1}, Pass, {1, 2}, Pass, Pass})

		require.Equal(t, Black, board.Winner(state, history))
		require.Equal(t, Black, board.Winner(state, history), "Winner should be stable")
	})

	t.Run("empty board after passes goes to White", func(t *testing.T) {
		board := NewBoard(5, 6.5, WithSeed(5))
		state, history := play(t, board, []Move{Pass, Pass})
		require.Equal(t, White, board.Winner(state, history))
	})

	t.Run("zero score goes to White", func(t *testing.T) {
		board := NewBoard(5, 0, WithSeed(5))
		state := board.Start()
		require.Zero(t, state.CalculateScore())
		require.Equal(t, White, board.ProjectedWinner(state))
	})

	t.Run("projected winner needs no repetition", func(t *testing.T) {
		board := NewBoard(3, 5.5, WithSeed(5))
		state, history := play(t, board, []Move{{1, 0}, Pass, {1, 1}, Pass, {1, 2}})
		require.Equal(t, Empty, board.Winner(state, history))
		require.Equal(t, Black, board.ProjectedWinner(state))
	})
}

func TestHistory(t *testing.T) {
	h := History{1, 2, 2, 2}
	require.True(t, h.Contains(1))
	require.False(t, h.Contains(3))
	require.True(t, h.Repeated(3))
	require.False(t, h.Repeated(4))
	require.False(t, History{2, 2}.Repeated(3))

	c := h.Copy()
	c[0] = 9
	require.Equal(t, Hash(1), h[0])
}
