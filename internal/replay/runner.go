package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// ErrDesync is returned when a replay ends in a different state than the
// one it was recorded with.
var ErrDesync = errors.New("replay: final state does not match recording")

// Result summarizes a played back attempt.
type Result struct {
	StageID string
	Cleared bool
	Failed  bool
	Moves   int
	Undos   int
	Resets  int
	Ticks   int
	Hash    uint64
}

// check rejects entries the runner could not apply.
func (d Data) check() error {
	last := 0
	for i, e := range d.Entries {
		if e.T < last {
			return fmt.Errorf("replay: entry %d goes back in time (%d < %d)", i, e.T, last)
		}
		last = e.T
		switch e.Op {
		case OpUndo, OpReset:
			if e.T > d.Ticks {
				return fmt.Errorf("replay: entry %d after the last tick", i)
			}
		case OpMove:
			if e.T >= d.Ticks {
				return fmt.Errorf("replay: entry %d after the last tick", i)
			}
			if _, err := stage.ParseDirection(e.Dir); err != nil {
				return fmt.Errorf("replay: entry %d: %w", i, err)
			}
		default:
			return fmt.Errorf("replay: entry %d: unknown op %q", i, e.Op)
		}
	}
	return nil
}

// Run plays d back against src without rendering. When d carries a hash
// and the final state differs, the result is returned along with
// ErrDesync.
func Run(src stage.TileSource, d Data, opts ...stage.Option) (Result, error) {
	if err := d.check(); err != nil {
		return Result{}, err
	}

	opts = append([]stage.Option{stage.WithTiming(d.Timing)}, opts...)
	c, err := stage.New(src, d.Stage, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	if d.StageID != "" && c.StageID() != d.StageID {
		return Result{}, fmt.Errorf("replay: recorded on stage %q, source has %q", d.StageID, c.StageID())
	}

	idx := 0
	for t := 0; ; t++ {
		dir := stage.DirNone
		for idx < len(d.Entries) && d.Entries[idx].T == t {
			e := d.Entries[idx]
			switch e.Op {
			case OpUndo:
				c.Undo()
			case OpReset:
				c.Reset()
			case OpMove:
				dir, _ = stage.ParseDirection(e.Dir)
			}
			idx++
		}
		if t >= d.Ticks {
			break
		}
		c.Update(dir, true, 1)
	}

	res := Result{
		StageID: c.StageID(),
		Cleared: c.IsCleared(),
		Failed:  c.IsFailed(),
		Moves:   c.Moves(),
		Undos:   c.Undos(),
		Resets:  c.Resets(),
		Ticks:   c.Ticks(),
		Hash:    c.Hash(),
	}
	if d.Hash != "" && d.Hash != FormatHash(res.Hash) {
		return res, fmt.Errorf("%w: got %s, want %s", ErrDesync, FormatHash(res.Hash), d.Hash)
	}
	return res, nil
}
