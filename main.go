package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"pigo/experiments"
	"pigo/game"
	"pigo/meta"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("pigo failed")
	}
}

func run(args []string) error {
	defaults := meta.Default()
	fs := flag.NewFlagSet("pigo", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	experiment := fs.String("experiment", "selfplay", "selfplay or exploration")
	explorations := fs.String("explorations", "0.5,1.4,2.8", "comma separated exploration constants for the exploration experiment")
	size := fs.Int("size", defaults.BoardSize, "board size")
	komi := fs.Float64("komi", defaults.Komi, "komi")
	seed := fs.Uint64("seed", defaults.Seed, "random seed, 0 for time based")
	duration := fs.Duration("duration", defaults.Duration, "search time per move")
	simulations := fs.Int("simulations", defaults.Simulations, "simulations per move, overrides -duration")
	maxMoves := fs.Int("max-moves", defaults.MaxMoves, "ply cap of one simulation")
	exploration := fs.Float64("c", defaults.Exploration, "UCB1 exploration constant")
	maxTurns := fs.Int("max-turns", defaults.MaxTurns, "turn cap of one game")
	games := fs.Int("games", defaults.Games, "games per match up")
	parallel := fs.Int("parallel", defaults.Parallel, "games played at the same time")
	outputDir := fs.String("out", defaults.OutputDir, "directory for CSV records")
	logLevel := fs.String("log-level", defaults.LogLevel, "zerolog level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := meta.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			cfg.BoardSize = *size
		case "komi":
			cfg.Komi = *komi
		case "seed":
			cfg.Seed = *seed
		case "duration":
			cfg.Duration = *duration
		case "simulations":
			cfg.Simulations = *simulations
		case "max-moves":
			cfg.MaxMoves = *maxMoves
		case "c":
			cfg.Exploration = *exploration
		case "max-turns":
			cfg.MaxTurns = *maxTurns
		case "games":
			cfg.Games = *games
		case "parallel":
			cfg.Parallel = *parallel
		case "out":
			cfg.OutputDir = *outputDir
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result experiments.Result
	switch *experiment {
	case "selfplay":
		result, err = experiments.RunSelfPlay(ctx, cfg)
	case "exploration":
		values, perr := parseFloats(*explorations)
		if perr != nil {
			return perr
		}
		result, err = experiments.RunExplorationExperiment(ctx, cfg, values)
	default:
		return fmt.Errorf("unknown experiment %q", *experiment)
	}
	if err != nil {
		return err
	}

	wins := result.Wins()
	log.Info().
		Int("black", wins[game.Black]).
		Int("white", wins[game.White]).
		Str("records", result.Dir).
		Msg("finished")
	return nil
}

func parseFloats(list string) ([]float64, error) {
	var values []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid exploration constant %q: %w", field, err)
		}
		values = append(values, v)
	}
	return values, nil
}
