package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagLevel      int
	flagDifficulty string
	flagCharacter  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Lane Runner",
	Long: `Open the game. Without --level the main menu is shown.

Controls:
  Left/A, Right/D  - Change lane
  Enter/Space      - Select
  P                - Pause/resume
  R                - Restart level
  Esc/B            - Back (pauses a running level)
  1, 2, 3          - Easy, normal, hard
  M                - Toggle sound
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - Slower traffic, longer spawn intervals
  normal  - The intended experience
  hard    - Faster traffic, shorter spawn intervals

Examples:
  lanerunner play
  lanerunner play --level 2
  lanerunner play --difficulty hard --character rogi
  lanerunner play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start this level directly (must be unlocked)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard")
	playCmd.Flags().StringVar(&flagCharacter, "character", "", "Bus: tayo, gani, lani, rogi")
}

func runPlay(cmd *cobra.Command, args []string) {
	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var difficulty config.Difficulty
	if flagDifficulty != "" {
		difficulty, err = config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	character := catalog.CharacterID(flagCharacter)
	if flagCharacter != "" && !catalog.IsCharacter(character) {
		fmt.Fprintf(os.Stderr, "Error: unknown character %q\n", flagCharacter)
		os.Exit(1)
	}

	if flagLevel != 0 && catalog.GetLevel(flagLevel) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", flagLevel)
		fmt.Fprintln(os.Stderr, "Run 'lanerunner levels' to see available levels.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	db, store := openStores(logger)
	if db == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open database, runs will not be recorded")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := []engine.Option{
		engine.WithTuning(tuning),
		engine.WithSeed(seed),
		engine.WithLogger(logger),
	}
	if db != nil {
		opts = append(opts, engine.WithRecorder(db))
	}
	e := engine.New(store, opts...)

	if flagDifficulty != "" {
		e.SetDifficulty(difficulty)
	}
	if flagCharacter != "" {
		e.SelectCharacter(character)
	}
	if flagLevel != 0 {
		if !e.Progress().IsUnlocked(flagLevel) {
			fmt.Fprintf(os.Stderr, "Error: level %d is locked\n", flagLevel)
			closeDB(db)
			os.Exit(1)
		}
		e.StartLevel(flagLevel)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	logger.Info("session started", "seed", seed, "difficulty", e.Difficulty(), "tuning", flagConfig)
	runErr := runSession(e, db, cfg, logger)
	logger.Info("session ended")

	// Close store before potential exit
	closeDB(db)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runSession alternates between the game and the scoreboard until the
// player quits.
func runSession(e *engine.Engine, db *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		res, err := tui.Run(e, cfg, logger)
		if err != nil {
			return err
		}
		cfg = res.Config
		if !res.WantsScoreboard {
			return nil
		}

		goBack, err := tui.RunScoreboard(db, e.Levels(), e.Snapshot().LevelID, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}

func closeDB(db *storage.Store) {
	if db != nil {
		db.Close() //nolint:errcheck // best-effort
	}
}
