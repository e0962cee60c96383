package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/platform/tui"
	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/storage"
)

const defaultPack = "classic"

var (
	flagReplayDir string
	flagNoReplays bool
)

var playCmd = &cobra.Command{
	Use:   "play [pack] [stage]",
	Short: "Play a pack",
	Long: `Open the stage picker on a pack, or play one stage directly.
A stage is given by its id or its 1-based number.

Controls:
  Arrows/WASD/HJKL - Move
  Z/U/Backspace    - Undo
  R                - Reset stage (undoable)
  N/Enter          - Next stage (after clearing)
  P                - Pause
  Esc/B            - Back to stage picker
  Q/Ctrl+C         - Quit

Examples:
  orbhop play
  orbhop play tutorial
  orbhop play classic 04
  orbhop play classic 4 --pace relaxed`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagReplayDir, "replays", "~/.orbhop/replays", "Directory for replays of cleared stages")
	playCmd.Flags().BoolVar(&flagNoReplays, "no-replays", false, "Do not write replay files")
}

func runPlay(_ *cobra.Command, args []string) error {
	s, err := loadSettings(true)
	if err != nil {
		return err
	}
	defer s.Close()

	packID := defaultPack
	if len(args) > 0 {
		packID = args[0]
	}
	pack, err := loadPack(packID)
	if err != nil {
		return err
	}

	index := -1
	if len(args) == 2 {
		i, ok := stageIndex(pack, args[1])
		if !ok {
			return fmt.Errorf("pack %q has no stage %q", packID, args[1])
		}
		index = i
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(s.cfg.Platform.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - progress is not kept
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Store: store,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.cfg.Platform.TickRate,
		},
		Timing:  s.cfg.Engine.Timing(),
		Profile: s.cfg.Platform.Profile,
		Logger:  s.logger,
	}
	if !flagNoReplays {
		opts.ReplayDir = expandHome(flagReplayDir)
	}

	if index >= 0 {
		err = tui.RunStage(opts, tui.Selection{PackID: packID, Pack: pack, Index: index})
	} else {
		err = tui.Run(opts, packID)
	}
	if err != nil {
		return fmt.Errorf("error running orbhop: %w", err)
	}
	return nil
}

// stageIndex resolves a stage id, or a 1-based stage number.
func stageIndex(pack registry.Pack, ref string) (int, bool) {
	for i := 0; i < pack.StageCount(); i++ {
		if l, err := pack.Stage(i); err == nil && l.ID == ref {
			return i, true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= pack.StageCount() {
		return n - 1, true
	}
	return 0, false
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
