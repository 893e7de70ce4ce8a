package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/achievements"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements",
	Long:  `Shows every achievement and whether it has been unlocked.`,
	Run:   runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) {
	logger := mustLogger()
	db, store := openStores(logger)
	defer closeDB(db)

	p := store.Progress()
	unlocked := 0

	fmt.Println("Achievements:")
	fmt.Println()
	for _, def := range achievements.Definitions {
		mark := "[ ]"
		if p.HasAchievement(def.ID) {
			mark = "[x]"
			unlocked++
		}
		fmt.Printf("  %s %-16s %s\n", mark, def.Name, def.Description)
	}

	fmt.Println()
	fmt.Printf("Unlocked %d of %d.\n", unlocked, len(achievements.Definitions))
}
