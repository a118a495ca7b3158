package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFloats(t *testing.T) {
	t.Run("parses a comma separated list", func(t *testing.T) {
		values, err := parseFloats("0.5, 1.4,,2")
		require.NoError(t, err)
		require.Equal(t, []float64{0.5, 1.4, 2}, values)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseFloats("1,x")
		require.ErrorContains(t, err, "x")
	})
}

func TestRun(t *testing.T) {
	t.Run("flags override the config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pigo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("board_size: 9\nkomi: 0.5\n"), 0644))

		err := run([]string{"-config", path, "-size", "3", "-simulations", "3", "-max-moves", "5",
			"-max-turns", "6", "-seed", "4", "-out", dir, "-log-level", "warn"})

		require.NoError(t, err)
		matches, err := filepath.Glob(filepath.Join(dir, "selfplay", "*", "game_records.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
	})

	t.Run("unknown experiment is an error", func(t *testing.T) {
		err := run([]string{"-experiment", "ladder", "-simulations", "1", "-out", t.TempDir(), "-log-level", "warn"})
		require.ErrorContains(t, err, "ladder")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		err := run([]string{"-games", "0"})
		require.Error(t, err)
	})
}
