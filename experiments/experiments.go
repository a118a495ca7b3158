package experiments

import (
	"context"
	"fmt"
	"pigo/engine"
	"pigo/experiments/metrics"
	"pigo/game"
	"pigo/meta"
	"pigo/searcher"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result is what one experiment produced.
type Result struct {
	Dir   string // folder holding the CSV records
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Wins counts the games won by each color.
func (r Result) Wins() map[game.Color]int {
	wins := make(map[game.Color]int, 2)
	for _, g := range r.Games {
		wins[g.Winner]++
	}
	return wins
}

func agentConfig(id int, cfg meta.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Duration:    cfg.Duration,
		Simulations: cfg.Simulations,
		MaxMoves:    cfg.MaxMoves,
		Exploration: cfg.Exploration,
	}
}

// RunSelfPlay plays cfg.Games games of one agent configuration against itself.
func RunSelfPlay(ctx context.Context, cfg meta.Config) (Result, error) {
	config := agentConfig(1, cfg)
	return runExperiment(ctx, cfg, "selfplay", []metrics.AgentConfig{config}, [][]metrics.AgentConfig{{config, config}})
}

// RunExplorationExperiment pairs the configured agent, as Black, against
// agents that differ only in the exploration constant.
func RunExplorationExperiment(ctx context.Context, cfg meta.Config, explorations []float64) (Result, error) {
	baseline := agentConfig(0, cfg)
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, c := range explorations {
		config := baseline
		config.ID = i + 1
		config.Exploration = c
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, cfg, "exploration", configs, matchUps)
}

type scheduledGame struct {
	id     int
	black  metrics.AgentConfig
	white  metrics.AgentConfig
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

func runExperiment(ctx context.Context, cfg meta.Config, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	games := []*scheduledGame{}
	for _, matchUp := range matchUps {
		for i := 0; i < cfg.Games; i++ {
			games = append(games, &scheduledGame{id: len(games) + 1, black: matchUp[0], white: matchUp[1]})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", name, len(games))

	var mu sync.Mutex
	done := 0
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for _, gm := range games {
		g.Go(func() error {
			if err := playGame(ctx, cfg, gm); err != nil {
				return fmt.Errorf("game %d: %w", gm.id, err)
			}
			mu.Lock()
			done++
			log.Info().Msgf("completed game %d (%d of %d) with winner: %s", gm.id, done, len(games), gm.record.Winner)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Info().Msgf("completed %s experiment", name)

	result := Result{}
	for _, gm := range games {
		result.Games = append(result.Games, gm.record)
		result.Moves = append(result.Moves, gm.moves...)
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	result.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return result, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return result, nil
}

// playGame runs one game on its own board with two fresh agents, so games
// share nothing and can run side by side.
func playGame(ctx context.Context, cfg meta.Config, gm *scheduledGame) error {
	var boardOptions []game.BoardOption
	var blackSeed, whiteSeed []searcher.Option
	if cfg.Seed != 0 {
		seed := cfg.Seed + uint64(gm.id)*1000
		boardOptions = append(boardOptions, game.WithSeed(seed))
		blackSeed = append(blackSeed, searcher.WithSeed(seed+1))
		whiteSeed = append(whiteSeed, searcher.WithSeed(seed+2))
	}
	board := game.NewBoard(cfg.BoardSize, cfg.Komi, boardOptions...)
	black := createMCTS(board, gm.black, blackSeed...)
	white := createMCTS(board, gm.white, whiteSeed...)

	e := engine.LocalEngine(board, black, white, cfg.MaxTurns)
	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}

	gm.record = metrics.GameRecord{
		ID:         gm.id,
		Agent1:     gm.black.ID,
		Agent2:     gm.white.ID,
		GameMetric: gameMetric,
	}
	for _, mm := range moveMetrics {
		gm.moves = append(gm.moves, metrics.MoveRecord{
			Game:       gm.id,
			MoveMetric: mm,
		})
	}
	return nil
}

func createMCTS(board *game.Board, config metrics.AgentConfig, extra ...searcher.Option) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithExploration(config.Exploration),
		searcher.WithMetrics(),
	}

	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.MaxMoves > 0 {
		options = append(options, searcher.WithMaxMoves(config.MaxMoves))
	}

	options = append(options, extra...)
	return searcher.NewMCTS(board, options...)
}
