package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-swiftris/internal/config"
	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris"
	"github.com/vovakirdan/tui-swiftris/internal/platform/tui"
	"github.com/vovakirdan/tui-swiftris/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores. --difficulty limits the list to one preset.

Examples:
  swiftris scores
  swiftris scores --difficulty hard
  swiftris scores --tui
  swiftris scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored scores")
}

func runScores(_ *cobra.Command, _ []string) {
	if err := showScores(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showScores handles the scores command. The store is closed before it
// returns.
func showScores(w io.Writer) error {
	difficulty := ""
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(swiftris.ID, difficulty); err != nil {
			return err
		}
		fmt.Fprintln(w, "Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = tw, th
		}
		_, err := tui.RunScoreboard(swiftris.ID, store, width, height)
		return err
	}

	return printScores(w, store, difficulty, flagScoresLimit)
}

// printScores writes the score table with grouped digits.
func printScores(w io.Writer, store *storage.Store, difficulty string, limit int) error {
	scores, err := store.TopScores(swiftris.ID, difficulty, limit)
	if err != nil {
		return err
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}
	fmt.Fprintf(w, "High Scores - Swiftris (%s)\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'swiftris play' to set the first high score!")
		return nil
	}

	p := message.NewPrinter(language.English)

	p.Fprintf(w, "  %-4s  %10s  %5s  %5s  %-6s  %s\n", "Rank", "Score", "Level", "Lines", "Mode", "Date")
	p.Fprintf(w, "  %-4s  %10s  %5s  %5s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, entry := range scores {
		p.Fprintf(w, "  %-4d  %10d  %5d  %5d  %-6s  %s\n",
			i+1, entry.Score, entry.Level, entry.Lines, entry.Difficulty,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if stats, err := store.GetGameStats(swiftris.ID, difficulty); err == nil {
		p.Fprintf(w, "Best: %d  Games: %d  Lines: %d\n", stats.HighScore, stats.GamesCount, stats.TotalLines)
	}
	return nil
}
