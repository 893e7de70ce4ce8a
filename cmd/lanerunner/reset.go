package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagResetRuns bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset saved progress",
	Long: `Resets unlocked levels, best results, achievements and settings to
their defaults. Recorded runs are kept unless --runs is given.

Examples:
  lanerunner reset
  lanerunner reset --runs`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also delete the recorded run history")
}

func runReset(cmd *cobra.Command, args []string) {
	logger := mustLogger()

	db := mustOpenDB()
	defer db.Close()

	_, store := openStoresWith(db, logger)
	store.Reset()
	fmt.Println("Progress reset.")

	if flagResetRuns {
		if err := db.ClearRuns(0); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
	}
}
