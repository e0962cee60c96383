package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// SolutionKey is the metadata key holding a stage's known solution, a
// string of R, U, L and D moves.
const SolutionKey = "solution"

// ErrNoSolution is returned for stages without recorded solution.
var ErrNoSolution = errors.New("levels: stage has no solution")

// settleLimit bounds the idle ticks spent waiting for one move to play out.
const settleLimit = 10000

// ParseSolution converts a move string such as "RRUL" into directions.
// Whitespace is ignored.
func ParseSolution(s string) ([]stage.Direction, error) {
	dirs := make([]stage.Direction, 0, len(s))
	for i, r := range strings.Join(strings.Fields(s), "") {
		d, err := stage.ParseDirection(string(r))
		if err != nil {
			return nil, fmt.Errorf("levels: solution move %d: %w", i+1, err)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// PlaySolution plays the recorded solution of stage i without rendering
// and reports whether it clears the stage. Each move is given once the
// previous one has fully played out.
func (p *Pack) PlaySolution(i int, opts ...stage.Option) (bool, error) {
	st, ok := p.Info(i)
	if !ok {
		return false, fmt.Errorf("%w: %d", stage.ErrNoStage, i)
	}
	raw, ok := st.Metadata[SolutionKey]
	if !ok || raw == "" {
		return false, fmt.Errorf("%w: %s", ErrNoSolution, st.ID)
	}
	moves, err := ParseSolution(raw)
	if err != nil {
		return false, err
	}

	c, err := stage.New(p, i, opts...)
	if err != nil {
		return false, err
	}
	settle := func() {
		for n := 0; n < settleLimit && !c.IsSettled(); n++ {
			c.Update(stage.DirNone, true, 1)
		}
	}
	for _, d := range moves {
		c.Update(d, true, 1)
		settle()
	}
	return c.IsCleared(), nil
}
