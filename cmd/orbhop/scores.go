package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <pack> [stage]",
	Short: "Show best results",
	Long: `Display the best clear of every stage of a pack, and the profile's
progress. With a stage, display the top 10 clears of that stage.

Results rank by moves, then undos, then ticks.

Examples:
  orbhop scores classic
  orbhop scores classic 04
  orbhop scores classic --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded result of the pack")
}

func runScores(_ *cobra.Command, args []string) error {
	s, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer s.Close()

	packID := args[0]
	pack, err := loadPack(packID)
	if err != nil {
		return err
	}

	store, err := storage.Open(s.cfg.Platform.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open results database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearResults(packID); err != nil {
			return err
		}
		fmt.Printf("Cleared all results of %s\n", pack.Title())
		return nil
	}

	if len(args) == 2 {
		index, ok := stageIndex(pack, args[1])
		if !ok {
			return fmt.Errorf("pack %q has no stage %q", packID, args[1])
		}
		l, err := pack.Stage(index)
		if err != nil {
			return err
		}
		return showStageScores(store, packID, l.ID, l.Name)
	}

	return showPackScores(store, s.cfg.Platform.Profile, packID, pack)
}

func showPackScores(store *storage.Store, profile, packID string, pack registry.Pack) error {
	best, err := store.BestPerStage(packID, "")
	if err != nil {
		return err
	}
	unlocked, err := store.LoadProgress(profile, packID)
	if err != nil {
		return err
	}
	stats, err := store.GetPackStats(packID)
	if err != nil {
		return err
	}

	fmt.Printf("Best Results - %s\n", pack.Title())
	fmt.Println()
	fmt.Printf("  %-3s  %-24s  %-12s  %-6s  %-6s  %s\n", "#", "Stage", "Profile", "Moves", "Undos", "Date")
	fmt.Printf("  %-3s  %-24s  %-12s  %-6s  %-6s  %s\n", "-", "-----", "-------", "-----", "-----", "----")
	for i := 0; i < pack.StageCount(); i++ {
		l, err := pack.Stage(i)
		if err != nil {
			continue
		}
		r, ok := best[l.ID]
		if !ok {
			fmt.Printf("  %-3d  %-24s  %-12s  %-6s  %-6s\n", i+1, l.Name, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-3d  %-24s  %-12s  %-6d  %-6d  %s\n", i+1, l.Name, r.Profile, r.Moves, r.Undos, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats.Clears > 0 {
		fmt.Printf("%d clears of %d/%d stages, %d moves in total, last played %s\n",
			stats.Clears, stats.StagesCleared, pack.StageCount(), stats.TotalMoves,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	} else {
		fmt.Println("No clears recorded yet.")
	}
	reached := min(unlocked+1, pack.StageCount())
	fmt.Printf("Profile %q: %d of %d stages unlocked\n", profile, reached, pack.StageCount())
	return nil
}

func showStageScores(store *storage.Store, packID, stageID, name string) error {
	top, err := store.TopResults(packID, stageID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Top Results - %s\n", name)
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No clears recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-7s  %s\n", "Rank", "Profile", "Moves", "Undos", "Ticks", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-7s  %s\n", "----", "-------", "-----", "-----", "-----", "----")
	for i, r := range top {
		fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %-7d  %s\n", i+1, r.Profile, r.Moves, r.Undos, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
