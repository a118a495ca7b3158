package meta

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is everything the command line driver needs to set up games.
type Config struct {
	BoardSize   int           `yaml:"board_size"`
	Komi        float64       `yaml:"komi"`
	Seed        uint64        `yaml:"seed"` // 0 picks a time based seed
	Duration    time.Duration `yaml:"duration"`
	Simulations int           `yaml:"simulations"` // overrides Duration when positive
	MaxMoves    int           `yaml:"max_moves"`
	Exploration float64       `yaml:"exploration"`
	MaxTurns    int           `yaml:"max_turns"`
	Games       int           `yaml:"games"`
	Parallel    int           `yaml:"parallel"` // games played at the same time
	OutputDir   string        `yaml:"output_dir"`
	LogLevel    string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		BoardSize:   BOARD_SIZE,
		Komi:        KOMI,
		Duration:    DURATION,
		MaxMoves:    MAX_MOVES,
		Exploration: EXPLORATION,
		MaxTurns:    MAX_TURNS,
		Games:       GAMES,
		Parallel:    1,
		OutputDir:   "experiments",
		LogLevel:    "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.BoardSize < 1:
		return errors.Errorf("board_size must be positive, got %d", c.BoardSize)
	case c.Duration <= 0 && c.Simulations <= 0:
		return errors.New("either duration or simulations must be positive")
	case c.MaxMoves < 1:
		return errors.Errorf("max_moves must be positive, got %d", c.MaxMoves)
	case c.Exploration < 0:
		return errors.Errorf("exploration must not be negative, got %g", c.Exploration)
	case c.MaxTurns < 1:
		return errors.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	case c.Games < 1:
		return errors.Errorf("games must be positive, got %d", c.Games)
	case c.Parallel < 1:
		return errors.Errorf("parallel must be positive, got %d", c.Parallel)
	}
	return nil
}
