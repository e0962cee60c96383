package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbhop/internal/replay"
	"github.com/vovakirdan/orbhop/internal/stage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>...",
	Short: "Play back recorded attempts headlessly",
	Long: `Re-run replay files written by 'orbhop play' and check that each one
ends in the recorded state.

Examples:
  orbhop replay ~/.orbhop/replays/classic_04_20260101_120000.json
  orbhop replay ~/.orbhop/replays/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	s, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer s.Close()

	failed := 0
	for _, path := range args {
		if !replayFile(s, path) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d replays failed", failed, len(args))
	}
	return nil
}

// replayFile runs one file and prints its outcome.
func replayFile(s *settings, path string) bool {
	d, err := replay.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}
	s.logger.Debug("replaying", "file", path, "pack", d.Pack, "stage", d.StageID, "entries", len(d.Entries))

	pack, err := loadPack(d.Pack)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}
	res, err := replay.Run(pack, d, stage.WithLogger(s.logger))
	switch {
	case errors.Is(err, replay.ErrDesync):
		fmt.Printf("%s: DESYNC  %s/%s  %v\n", path, d.Pack, d.StageID, err)
		return false
	case err != nil:
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	outcome := "not cleared"
	if res.Cleared {
		outcome = "cleared"
	}
	fmt.Printf("%s: OK  %s/%s  %s in %d moves, %d undos, %d ticks\n",
		path, d.Pack, res.StageID, outcome, res.Moves, res.Undos, res.Ticks)
	return true
}
