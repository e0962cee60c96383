// orbhop is a turn-based grid puzzle played in the terminal: hop across
// floating tiles and collect every orb.
//
// Usage:
//
//	orbhop list [pack]          - List packs, or the stages of a pack
//	orbhop play [pack] [stage]  - Pick a stage, or play one directly
//	orbhop scores <pack>        - Show best results and progress
//	orbhop replay <file>        - Play back a recorded attempt headlessly
//	orbhop check [dir]          - Validate packs and verify stage solutions
//	orbhop serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.orbhop/orbhop.yaml)
//	--fps <rate>      - Tick rate (default from config: 60)
//	--db <path>       - Database path (default: ~/.orbhop/orbhop.db)
//	--pace <preset>   - Animation pace: relaxed, normal, brisk
//	--profile <name>  - Progress profile
//	--log-file <path> - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the built-in packs
	_ "github.com/vovakirdan/orbhop/internal/levels"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagDBPath  string
	flagPace    string
	flagProfile string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbhop",
	Short: "orbhop - a grid puzzle for your terminal",
	Long: `orbhop is a turn-based grid puzzle. Move across floating tiles,
jump gaps, ride platforms and press buttons to collect every orb.

Available commands:
  list     - Show packs and stages
  play     - Play (interactive stage picker by default)
  scores   - View best results
  replay   - Verify a recorded attempt
  check    - Validate stage packs
  serve    - Start SSH server for remote play

Examples:
  orbhop play
  orbhop play tutorial
  orbhop play classic 04
  orbhop list classic
  orbhop serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (empty = from config)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: relaxed, normal, brisk")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
