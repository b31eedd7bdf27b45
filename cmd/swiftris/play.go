package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-swiftris/internal/config"
	"github.com/vovakirdan/tui-swiftris/internal/core"
	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris"
	"github.com/vovakirdan/tui-swiftris/internal/gravity"
	"github.com/vovakirdan/tui-swiftris/internal/platform/tui"
	"github.com/vovakirdan/tui-swiftris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Swiftris",
	Long: `Start Swiftris. Without --difficulty a menu asks for one.

Controls:
  Left/Right, H/L, A/D  - Move
  Up, K, W, X, Z        - Rotate
  Down, J, S            - Soft drop
  Space                 - Hard drop
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Slow start, gentle speed-up
  normal - 600ms per row, 100ms faster each level
  hard   - Fast start, quick speed-up
  fixed  - One speed for the whole game

Examples:
  swiftris play
  swiftris play --difficulty hard
  swiftris play --config ./swiftris.toml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := startGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startGame runs the menu and the game. Resources are released before it
// returns, so the caller may exit right after.
func startGame() error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, source, err := config.LoadSwiftris(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config loaded", "source", source)

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		if preset, err = config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: cfg.Difficulty.Preset,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without scores", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if preset != "" {
		if err := play(cfg, preset, rc, store, logger); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		return nil
	}

	// Menu loop: the scoreboard returns here on "back".
	for {
		result, err := tui.RunMenu(swiftris.ID, store, rc)
		if err != nil {
			return err
		}
		rc = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(swiftris.ID, store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		default:
			if err := play(cfg, result.Difficulty, rc, store, logger); err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			return nil
		}
	}
}

// play runs one game session at the given difficulty.
func play(cfg config.SwiftrisConfig, preset config.DifficultyPreset, rc core.RuntimeConfig,
	store *storage.Store, logger *log.Logger) error {
	config.ApplySwiftrisPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return err
	}
	rc.Difficulty = string(preset)

	policy := gravity.FromConfig(cfg.Gravity, logger)
	if lp, ok := policy.(*gravity.LuaPolicy); ok {
		defer lp.Close()
	}

	game := swiftris.New(cfg, policy, logger)
	if store != nil {
		if best, err := store.HighScore(swiftris.ID, rc.Difficulty); err == nil {
			game.SetBest(best)
		} else {
			logger.Warn("high score unavailable", "err", err)
		}
	}

	logger.Info("starting", "difficulty", rc.Difficulty, "gravity", cfg.Gravity.Mode)
	return tui.Run(game, store, rc, logger)
}
