// lanerunner is a three-lane bus runner played in the terminal.
//
// Usage:
//
//	lanerunner play            - Open the game menu
//	lanerunner play --level 3  - Jump straight into a level
//	lanerunner levels          - List levels with lock state and bests
//	lanerunner scores [level]  - Show recorded runs
//	lanerunner achievements    - List achievements
//	lanerunner reset           - Reset saved progress
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible traffic
//	--db <path>          - Set database path (default: ~/.lanerunner/lanerunner.db)
//	--config <path>      - Custom tuning YAML
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination while the game owns the terminal
//	--progress-file <p>  - Keep progress in a JSON file instead of the database
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagProgress string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanerunner",
	Short: "Lane Runner - drive a bus through traffic in your terminal",
	Long: `Lane Runner is a three-lane endless runner. Steer your bus between
lanes, dodge oncoming traffic, grab shields and reach the finish line
of each level as fast as you can.

Available commands:
  play          - Open the game
  levels        - Show the level list
  scores        - View recorded runs
  achievements  - List achievements
  reset         - Reset saved progress

Examples:
  lanerunner play
  lanerunner play --level 2 --difficulty hard --character gani
  lanerunner scores 1 --plain
  lanerunner --log-level debug play`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanerunner/lanerunner.db", "Path to progress and run database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.lanerunner/lanerunner.log", "Log file used while playing")
	rootCmd.PersistentFlags().StringVar(&flagProgress, "progress-file", "", "Keep progress in this JSON file instead of the database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(resetCmd)
}
