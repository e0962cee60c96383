package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbhop/internal/levels"
	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/stage"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate stage packs",
	Long: `Validate every stage of the built-in packs, or of the stage files
below dir, and play each stage's recorded solution headlessly.

A stage fails when it is malformed or when its solution does not clear
it. Stages without a solution are only validated.

Examples:
  orbhop check
  orbhop check ./my-stages`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	s, err := loadSettings(false)
	if err != nil {
		return err
	}
	defer s.Close()

	var packs []*levels.Pack
	if len(args) == 1 {
		p, err := levels.LoadPack(args[0])
		if err != nil {
			return err
		}
		packs = append(packs, p)
	} else {
		for _, info := range registry.List() {
			pack, err := loadPack(info.ID)
			if err != nil {
				return err
			}
			p, ok := pack.(*levels.Pack)
			if !ok {
				s.logger.Warn("skipping pack without stage files", "pack", info.ID)
				continue
			}
			packs = append(packs, p)
		}
	}

	failed := 0
	for _, p := range packs {
		failed += checkPack(s, p)
	}

	if failed > 0 {
		return fmt.Errorf("%d stages failed", failed)
	}
	fmt.Println("All stages OK")
	return nil
}

// checkPack validates every stage of p and returns the number of failures.
func checkPack(s *settings, p *levels.Pack) int {
	fmt.Printf("%s\n", p.Title())
	timing := s.cfg.Engine.Timing()

	failed := 0
	for i := 0; i < p.StageCount(); i++ {
		st, _ := p.Info(i)
		problems := levels.Validate(st)
		for _, e := range problems {
			fmt.Printf("  %-8s %s\n", st.ID, e.Error())
		}

		bad := len(problems) > 0
		status := "ok"
		cleared, err := p.PlaySolution(i, stage.WithTiming(timing), stage.WithLogger(s.logger))
		switch {
		case errors.Is(err, levels.ErrNoSolution):
			status = "no solution"
		case err != nil:
			status, bad = "solution error: "+err.Error(), true
		case !cleared:
			status, bad = "solution does not clear the stage", true
		}
		if bad {
			failed++
			if len(problems) > 0 {
				status = "invalid"
			}
		}
		fmt.Printf("  %-8s %-24s %s\n", st.ID, st.Name, status)
	}
	return failed
}
