package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/platform/tui"
	"github.com/vovakirdan/monster-math/internal/storage"
)

var (
	flagMute    bool
	flagNoSound bool
	flagTier    int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Monster Math in this terminal.

Controls:
  1/2/3      - Pick a tier on the start screen
  0-9        - Type an answer (a match fires immediately)
  Esc        - Pause / resume
  Ctrl+X     - Quit the level while paused
  Enter      - Back to the start screen after game over
  Ctrl+N     - Toggle sound
  Q/Ctrl+C   - Quit

Examples:
  monstermath play
  monstermath play --tier 3
  monstermath play --mute --seed 42
  monstermath play --config ./my-monsters.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound muted")
	cmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Never open the audio device")
	cmd.Flags().IntVar(&flagTier, "tier", 0, "Start this tier (1-3) right away")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:     store,
		Device:    soundDevice(cfg.Audio),
		Muted:     flagMute,
		StartTier: flagTier,
		Logger:    logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
