package stage

const waveSpeed = 0.05

func (c *Controller) updateGhost(a *Actor, step float64) {
	a.Wave += waveSpeed * step
	c.driveMover(a, step, (*Controller).checkGhost)
}

// checkGhost patrols one cell along the ghost's axis. Ghosts hover, so
// only the overlay layer and the map edge block them.
func (c *Controller) checkGhost(a *Actor) {
	free := func(to Coord) bool {
		return c.grid.InBounds(to.X, to.Y) && c.grid.At(Overlay, to) == MarkNone
	}
	dir, ok := pickHeading(a.Dir, a.Pos, free)
	if !ok {
		return
	}
	a.Dir = dir
	to := a.Pos.Step(dir, 1)
	c.grid.Put(Overlay, a.Pos, MarkNone)
	c.grid.Put(Overlay, to, GhostCode(dir))
	a.start(to, c.timing.MoveTime)
}
