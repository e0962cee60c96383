package stage

const disabledAlpha, disabledScale = 0.33, 0.5

// driveMover runs the state machine shared by every mover: a running move
// finishes when its timer ends or the player's move it answered is over,
// and each new player move gets one movement check. A button lockout needs
// no check here; the player cannot start a move while it runs.
func (c *Controller) driveMover(a *Actor, step float64, check func(*Controller, *Actor)) {
	p := &c.player
	if a.Moving && (a.advance(step) || !p.IsMoving() || a.serial != p.serial) {
		a.finish()
	}
	if a.Moving || !p.IsMoving() || a.serial == p.serial {
		return
	}
	a.serial = p.serial
	check(c, a)
}

// pickHeading returns dir when its neighbour is free, else the opposite
// heading when that one is. ok is false when both are blocked.
func pickHeading(dir Direction, from Coord, free func(Coord) bool) (Direction, bool) {
	if free(from.Step(dir, 1)) {
		return dir, true
	}
	back := dir.Opposite()
	if free(from.Step(back, 1)) {
		return back, true
	}
	return dir, false
}

func (c *Controller) updateShrinking(a *Actor, step float64) {
	standing := c.grid.At(Overlay, a.Pos) == MarkPlayer
	switch a.Phase {
	case ShrinkIdle:
		if standing {
			a.Phase = ShrinkReady
		}
	case ShrinkReady:
		if !standing {
			a.Phase = Shrinking
			a.timer = c.timing.ShrinkTime
			c.grid.Put(Static, a.Pos, CodeEmpty)
		}
	case Shrinking:
		a.timer -= step
		a.Scale = clamp01(a.timer / c.timing.ShrinkTime)
		if a.timer <= 0 {
			a.Phase = ShrinkDestroyed
			a.Scale = 0
			c.pools[KindShrinking].Kill(a.Slot)
		}
	}
}

func (c *Controller) updateMover(a *Actor, step float64) {
	c.driveMover(a, step, (*Controller).checkMover)
}

// checkMover moves a platform one cell through the void, reversing at
// walls. A platform carrying the player stays put.
func (c *Controller) checkMover(a *Actor) {
	if c.grid.At(Overlay, a.Pos) == MarkPlayer {
		return
	}
	free := func(to Coord) bool {
		return c.grid.InBounds(to.X, to.Y) &&
			c.grid.At(Static, to) == CodeEmpty &&
			c.grid.At(Overlay, to) == MarkNone
	}
	dir, ok := pickHeading(a.Dir, a.Pos, free)
	if !ok {
		return
	}
	a.Dir = dir
	to := a.Pos.Step(dir, 1)
	c.grid.Put(Static, a.Pos, CodeEmpty)
	c.grid.Put(Static, to, MoverCode(dir))
	a.start(to, c.timing.MoveTime)
}

func (c *Controller) updateToggle(a *Actor, step float64) {
	enabled := c.grid.At(Static, a.Pos) == CodeToggleOn
	if enabled != a.Enabled {
		a.Enabled = enabled
		a.timer = c.timing.FadeTime
	}
	if a.timer > 0 {
		a.timer -= step
	}
	a.Alpha, a.Scale = toggleLook(a.Enabled, 1-clamp01(a.timer/c.timing.FadeTime))
}

// toggleLook blends from the opposite look toward the current one; t=1 is
// fully settled.
func toggleLook(enabled bool, t float64) (alpha, scale float64) {
	fromA, fromS, toA, toS := disabledAlpha, disabledScale, 1.0, 1.0
	if !enabled {
		fromA, fromS, toA, toS = toA, toS, fromA, fromS
	}
	return fromA + (toA-fromA)*t, fromS + (toS-fromS)*t
}

// updateSwitch flips the platform once per player move unless the player
// is headed onto it.
func (c *Controller) updateSwitch(a *Actor, step float64) {
	if a.timer > 0 {
		a.timer -= step
	}
	p := &c.player
	if p.IsMoving() && a.serial != p.serial {
		a.serial = p.serial
		if c.grid.At(Overlay, a.Pos) != MarkPlayer {
			a.Enabled = !a.Enabled
			code := CodeSwitchOff
			if a.Enabled {
				code = CodeSwitchOn
			}
			c.grid.Put(Static, a.Pos, code)
			a.timer = c.timing.SwitchTime
		}
	}
	a.Scale = switchScale(a.Enabled, 1-clamp01(a.timer/c.timing.SwitchTime))
}

func switchScale(enabled bool, t float64) float64 {
	if enabled {
		return disabledScale + (1-disabledScale)*t
	}
	return 1 - (1-disabledScale)*t
}
