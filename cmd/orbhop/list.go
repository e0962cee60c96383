package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbhop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [pack]",
	Short: "List packs, or the stages of a pack",
	Long: `Without arguments, shows every registered stage pack.
With a pack id, shows the stages of that pack.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return listStages(args[0])
	}

	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No packs available.")
		return nil
	}

	fmt.Println("Available packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, p := range packs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'orbhop list <id>' to see its stages, 'orbhop play <id>' to play.")
	return nil
}

func listStages(packID string) error {
	pack, err := loadPack(packID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d stages)\n\n", pack.Title(), pack.StageCount())
	fmt.Printf("  %-3s  %-8s  %-24s  %s\n", "#", "ID", "Name", "Size")
	fmt.Printf("  %-3s  %-8s  %-24s  %s\n", "-", "--", "----", "----")
	for i := 0; i < pack.StageCount(); i++ {
		l, err := pack.Stage(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %-3d  error: %v\n", i+1, err)
			continue
		}
		fmt.Printf("  %-3d  %-8s  %-24s  %dx%d\n", i+1, l.ID, l.Name, l.Width, l.Height)
	}
	return nil
}

// loadPack loads a registered pack.
func loadPack(packID string) (registry.Pack, error) {
	if !registry.Exists(packID) {
		return nil, fmt.Errorf("unknown pack %q (run 'orbhop list' to see available packs)", packID)
	}
	pack, err := registry.Create(packID)
	if err != nil {
		return nil, fmt.Errorf("cannot load pack %q: %w", packID, err)
	}
	return pack, nil
}
