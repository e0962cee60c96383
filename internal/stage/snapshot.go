package stage

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Hash returns a deterministic fingerprint of the grid, the player and
// every live actor, suitable for replay verification.
func (c *Controller) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	putf := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	putb := func(v bool) {
		if v {
			put(1)
		} else {
			put(0)
		}
	}

	put(c.index)
	put(c.grid.W)
	put(c.grid.H)
	for i := range c.grid.Static {
		put(int(c.grid.Static[i]))
		put(int(c.grid.Overlay[i]))
	}

	p := &c.player
	put(p.Pos.X)
	put(p.Pos.Y)
	put(p.Target.X)
	put(p.Target.Y)
	put(int(p.State))
	putf(p.Motion.timer)
	putf(p.timer)
	put(c.orbsLeft)
	putf(c.wait)

	for _, pool := range c.pools {
		put(int(pool.Kind()))
		pool.Each(func(a *Actor) {
			put(a.Slot)
			put(a.Pos.X)
			put(a.Pos.Y)
			put(a.Target.X)
			put(a.Target.Y)
			putb(a.Moving)
			put(int(a.Dir))
			putb(a.Enabled)
			put(int(a.Phase))
			putf(a.Motion.timer)
			putf(a.timer)
		})
	}
	return h.Sum64()
}
