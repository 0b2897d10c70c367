package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/monster-math/internal/game"
	"github.com/vovakirdan/monster-math/internal/platform/tui"
	"github.com/vovakirdan/monster-math/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and past sessions",
	Long: `Display the high score and the session history.

In a terminal this opens an interactive table (tab switches between the
best and the most recent sessions). With --plain, or when output is not a
terminal, the best sessions are printed as text.

Examples:
  monstermath scores
  monstermath scores --plain --limit 5
  monstermath scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the session history (the high score is kept)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to print with --plain")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		fmt.Println("Session history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height, termErr := term.GetSize(fd)
		if termErr != nil {
			width, height = 80, 24
		}
		return tui.RunScores(store, width, height)
	}

	return printScores(store)
}

func printScores(store *storage.Store) error {
	best, err := store.Get(game.HighScoreKey)
	if err != nil {
		return err
	}
	if best == "" {
		best = "0"
	}

	sessions, err := store.TopSessions(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	fmt.Printf("Monster Math - Best: %s\n", best)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'monstermath play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-4s  %-9s  %-6s  %s\n", "Rank", "Score", "Tier", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-9s  %-6s  %s\n", "----", "-----", "----", "-------", "----", "----")

	for i, s := range sessions {
		fmt.Printf("  %-4d  %-6d  %-4d  %-9s  %-6s  %s\n",
			i+1, s.Score, s.Tier, s.Outcome,
			fmt.Sprintf("%.0fs", s.Duration.Seconds()),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}
