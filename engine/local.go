package engine

import (
	"context"
	"pigo/experiments/metrics"
	"pigo/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Agent is anything that can follow a game and pick moves for it.
// *searcher.MCTS satisfies it.
type Agent interface {
	Update(state *game.BoardState)
	GetPlay() (game.Move, bool)
	LastSearch() metrics.SearchMetric
}

type localEngine struct {
	board    *game.Board
	agents   [2]Agent // indexed by color-1
	maxTurns int
	State    *game.BoardState
}

// LocalEngine wires two agents to one board. The same agent may play both
// colors.
func LocalEngine(board *game.Board, black, white Agent, maxTurns int) *localEngine {
	if black == nil || white == nil {
		panic("need an agent for each color")
	}
	if maxTurns <= 0 || maxTurns > MaxTurns {
		maxTurns = MaxTurns
	}
	return &localEngine{
		board:    board,
		agents:   [2]Agent{black, white},
		maxTurns: maxTurns,
	}
}

func (e *localEngine) agentFor(player game.Color) Agent {
	return e.agents[player-1]
}

// Run executes the game loop until the repetition rule fires or the turn cap
// is reached, in which case the score decides. Cancelling ctx stops the game
// between moves.
func (e *localEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	state := e.board.Start()
	history := game.History{state.Hash()}
	e.State = state

	log.Info().Msgf("%s is starting on a %dx%d board", state.Player(), e.board.Size(), e.board.Size())

	winner := game.Empty
	turn := 1
	for ; winner == game.Empty && turn <= e.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return gameMetric, moveMetrics, err
		}

		e.agents[0].Update(state)
		if e.agents[1] != e.agents[0] {
			e.agents[1].Update(state)
		}

		player := e.board.CurrentPlayer(state)
		agent := e.agentFor(player)
		move, ok := agent.GetPlay()
		if !ok {
			log.Warn().Int("turn", turn).Msgf("%s has no move, passing", player)
			move = game.Pass
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         move,
			SearchMetric: agent.LastSearch(),
		})

		state = e.board.NextState(state, move)
		history = append(history, state.Hash())
		e.State = state
		log.Debug().Int("turn", turn).Str("player", player.String()).Str("move", move.String()).
			Msgf("position after move:\n%s", state)

		winner = e.board.Winner(state, history)
	}

	if winner == game.Empty {
		winner = e.board.ProjectedWinner(state)
		log.Info().Msgf("stopped after %d turns without repetition, scoring the position", e.maxTurns)
	}

	gameMetric.Winner = winner
	gameMetric.Score = state.CalculateScore()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Float64("score", gameMetric.Score).Int("moves", gameMetric.TotalMoves).
		Msgf("game over, winner: %s", winner)
	return gameMetric, moveMetrics, nil
}
