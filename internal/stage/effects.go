package stage

// EffectKind is the outcome of landing on a cell.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectButton
	EffectJumpTile
	EffectTeleport
	EffectEnd
)

// String returns the effect name.
func (k EffectKind) String() string {
	switch k {
	case EffectButton:
		return "button"
	case EffectJumpTile:
		return "jump"
	case EffectTeleport:
		return "teleport"
	case EffectEnd:
		return "end"
	default:
		return "none"
	}
}

// Effect is a resolved tile effect. Dest is set for EffectTeleport.
type Effect struct {
	Kind EffectKind
	Dest Coord
}

// ResolveEffect maps the static code under at to its effect. Automatic
// arrows resolve to EffectNone; the movement resolver queries them directly.
func ResolveEffect(g *Grid, at Coord) Effect {
	code := g.At(Static, at)
	switch {
	case code.IsButton():
		return Effect{Kind: EffectButton}
	case code == CodeJump:
		return Effect{Kind: EffectJumpTile}
	case code == CodeEnd:
		return Effect{Kind: EffectEnd}
	case code.IsTeleport():
		if dest, ok := TeleportPair(g, at); ok {
			return Effect{Kind: EffectTeleport, Dest: dest}
		}
	}
	return Effect{Kind: EffectNone}
}

// TeleportPair scans the static layer for the other cell carrying the
// teleport code found at at.
func TeleportPair(g *Grid, at Coord) (Coord, bool) {
	code := g.At(Static, at)
	if !code.IsTeleport() {
		return Coord{}, false
	}
	for i, c := range g.Static {
		if c != code {
			continue
		}
		pos := C(i%g.W, i/g.W)
		if pos != at {
			return pos, true
		}
	}
	return Coord{}, false
}

// phaseEffects dispatches the effect of the cell the player landed on
// during the previous tick.
func (c *Controller) phaseEffects(float64) {
	p := &c.player
	if !p.landed {
		return
	}
	p.landed = false

	eff := ResolveEffect(c.grid, p.Pos)
	switch eff.Kind {
	case EffectButton:
		c.pressButton(p.Pos)
	case EffectJumpTile:
		c.collectOrbs()
		if c.canJump(p.Dir) {
			c.startMove(p.Dir, p.Pos.Step(p.Dir, 2), true)
		}
	case EffectTeleport:
		if c.grid.At(Overlay, eff.Dest).Occupied() {
			c.log.Debug("teleport destination occupied", "from", p.Pos, "to", eff.Dest)
			return
		}
		c.startTeleport(eff.Dest)
	case EffectEnd:
		c.startDying()
	case EffectNone:
		if c.grid.At(Static, p.Pos).IsTeleport() {
			c.log.Debug("teleport has no pair", "cell", p.Pos, "code", c.grid.At(Static, p.Pos))
		}
	}
}

// pressButton flips the button at and applies its variant, then starts
// the waiting lockout.
func (c *Controller) pressButton(at Coord) {
	switch code := c.grid.At(Static, at); code {
	case CodeToggleButton, CodeToggleButtonPressed:
		c.grid.Put(Static, at, flipButton(code))
		c.grid.Replace(Static, CodeToggleOn, CodeToggleOff)
	case CodeRotateButton, CodeRotateButtonPressed:
		c.grid.Put(Static, at, flipButton(code))
		c.pools[KindMover].Each(func(a *Actor) {
			a.Dir = a.Dir.Rotate()
			c.grid.Put(Static, a.Target, MoverCode(a.Dir))
		})
	default:
		return
	}
	c.wait = c.timing.ButtonWait
	c.events.Notify(EventButton, at)
}

func flipButton(code Code) Code {
	switch code {
	case CodeToggleButton:
		return CodeToggleButtonPressed
	case CodeToggleButtonPressed:
		return CodeToggleButton
	case CodeRotateButton:
		return CodeRotateButtonPressed
	case CodeRotateButtonPressed:
		return CodeRotateButton
	}
	return code
}
