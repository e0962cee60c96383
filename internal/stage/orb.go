package stage

// updateOrb removes the orb once the player has settled on its cell, which
// shows up as the orb code being gone from the overlay.
func (c *Controller) updateOrb(a *Actor, step float64) {
	a.Wave += waveSpeed * step
	if c.player.IsMoving() {
		return
	}
	if c.grid.At(Overlay, a.Pos) != MarkOrb {
		c.removeOrb(a)
	}
}

// collectOrbs removes every orb whose cell was claimed, regardless of
// whether the player is still moving.
func (c *Controller) collectOrbs() {
	c.pools[KindOrb].Each(func(a *Actor) {
		if c.grid.At(Overlay, a.Pos) != MarkOrb {
			c.removeOrb(a)
		}
	})
}

func (c *Controller) removeOrb(a *Actor) {
	c.pools[KindOrb].Kill(a.Slot)
	c.recomputeOrbs()
	c.events.Notify(EventOrb, a.Pos)
}
