package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/catalog"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows every level of the campaign with its lock state and best results.`,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	logger := mustLogger()
	db, store := openStores(logger)
	defer closeDB(db)

	p := store.Progress()

	fmt.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range catalog.Levels {
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	// Print header
	fmt.Printf("  %-2s  %-*s  %-8s  %-7s  %-8s  %-5s  %s\n", "#", maxNameLen, "Name", "Distance", "Traffic", "Status", "Stars", "Best")
	fmt.Printf("  %-2s  %-*s  %-8s  %-7s  %-8s  %-5s  %s\n", "-", maxNameLen, "----", "--------", "-------", "------", "-----", "----")

	// Print levels
	for _, lvl := range catalog.Levels {
		status := "locked"
		if p.IsUnlocked(lvl.ID) {
			status = "open"
		}
		starsCol, bestCol := "-", "-"
		if best, ok := p.Best(lvl.ID); ok {
			starsCol = strings.Repeat("*", best.BestStars)
			bestCol = fmt.Sprintf("%.2fs, dodged %d", best.BestTime, best.BestAvoided)
		}
		fmt.Printf("  %-2d  %-*s  %-8s  %-7s  %-8s  %-5s  %s\n",
			lvl.ID, maxNameLen, lvl.Name, fmt.Sprintf("%.0fm", lvl.Distance), lvl.Frequency, status, starsCol, bestCol)
	}

	fmt.Println()
	fmt.Println("Run 'lanerunner play --level <#>' to play an unlocked level.")
}
