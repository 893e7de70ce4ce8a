package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var flagPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs",
	Long: `Display the best finished runs per level in an interactive table.
With --plain the top 10 runs of one level are printed as text.

Examples:
  lanerunner scores
  lanerunner scores 2
  lanerunner scores 2 --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text instead of opening the table")
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := 0
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil || catalog.GetLevel(id) == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'lanerunner levels' to see available levels.")
			os.Exit(1)
		}
		levelID = id
	}

	store := mustOpenDB()
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(store, catalog.Levels, levelID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if levelID == 0 {
		levelID = catalog.Levels[0].ID
	}
	if err := printScores(store, levelID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, levelID int) error {
	lvl := catalog.GetLevel(levelID)

	runs, err := store.TopRuns(levelID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %d. %s\n", lvl.ID, lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No finished runs yet.")
		fmt.Println()
		fmt.Printf("Play 'lanerunner play --level %d' to set the first record!\n", levelID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-5s  %-8s  %-7s  %-6s  %-5s  %s\n", "Rank", "Stars", "Time", "Dodged", "Mode", "Bus", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %-7s  %-6s  %-5s  %s\n", "----", "-----", "----", "------", "----", "---", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-5d  %-8s  %-7s  %-6s  %-5s  %s\n",
			i+1, r.Stars, fmt.Sprintf("%.2fs", r.TimeElapsed), fmt.Sprintf("%d/%d", r.Avoided, r.Spawned),
			r.Difficulty, r.Character, dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Printf("Runs: %d  Finished: %d  Crashed: %d\n", stats.Runs, stats.Victories, stats.Crashes)
	}

	recent, err := store.RecentRuns(levelID, 1)
	if err == nil && len(recent) == 1 {
		fmt.Printf("Last run: %s (%s)\n", recent[0].Outcome, recent[0].CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
