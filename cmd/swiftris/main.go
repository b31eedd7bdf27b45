// swiftris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	swiftris                 - Pick a difficulty and play
//	swiftris play            - Same as above
//	swiftris scores          - Show high scores
//	swiftris config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.swiftris/scores.db)
//	--config <path>       - Load a YAML or TOML config file
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-file <path>     - Write the log to a file
//	--verbose             - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-swiftris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swiftris",
	Short: "Swiftris - falling blocks in your terminal",
	Long: `Swiftris drops seven kinds of four-block shapes onto a 10x20 board.
Fill a row to clear it; the game ends when a new shape has no room.

Available commands:
  play     - Pick a difficulty and play (default)
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  swiftris
  swiftris play --difficulty hard
  swiftris scores --tui
  swiftris config --format toml`,
	Run: runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Write the log to this file")
	pf.BoolVar(&flagVerbose, "verbose", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. The game owns the terminal while it
// runs, so without --log-file output goes nowhere.
func newLogger() (*log.Logger, func(), error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "swiftris",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
