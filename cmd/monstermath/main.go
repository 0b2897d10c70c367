// monstermath is a terminal arcade game: monsters carrying addition problems
// fall down the screen and typing the answer shoots them.
//
// Usage:
//
//	monstermath              - Play (same as "monstermath play")
//	monstermath play         - Play in this terminal
//	monstermath scores       - Show the high score and past sessions
//	monstermath serve        - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.monstermath/scores.db)
//	--config <path>  - Use a custom game config YAML
//	--log <path>     - Write a debug log to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/monster-math/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monstermath",
	Short: "Monster Math - shoot falling monsters by solving sums",
	Long: `Monster Math is a terminal arcade game for practicing addition.

Monsters carrying problems like "7 + 5" fall toward the bottom of the
screen. Type the answer to shoot the monster before it crosses the line.

Available commands:
  play     - Play in this terminal (default)
  scores   - View the high score and session history
  serve    - Start SSH server for remote play

Examples:
  monstermath
  monstermath play --tier 2
  monstermath scores
  monstermath serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.monstermath/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write a debug log to this file")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the game config named by --config, or the default search
// path when it is empty.
func loadConfig() (config.MonsterConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.MonsterConfig{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}

// newFileLogger returns a logger writing to --log, or a discarding logger.
// The returned closer must be called on exit.
func newFileLogger() (*log.Logger, io.Closer, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "monstermath",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}
