package stage

import "math"

// PlayerState is the player's state machine state.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerMoving
	PlayerJumping
	PlayerTeleporting
	PlayerDying
	PlayerGone
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerMoving:
		return "moving"
	case PlayerJumping:
		return "jumping"
	case PlayerTeleporting:
		return "teleporting"
	case PlayerDying:
		return "dying"
	default:
		return "gone"
	}
}

type teleportPhase int

const (
	teleportOut teleportPhase = iota
	teleportIn
)

// Player is the controllable actor.
type Player struct {
	Motion
	State  PlayerState
	Exists bool
	Dir    Direction
	Visual Handle
	Scale  float64
	Alpha  float64

	serial     int     // bumped on every move start
	landed     bool    // a move completed; tile effects are pending
	jumpHeight float64 // 2 for jumps, 1 for platform hops
	tpPhase    teleportPhase
	tpDest     Coord
	timer      float64
}

func (p *Player) spawn(c Coord) {
	p.place(c)
	p.State = PlayerIdle
	p.Exists = true
	p.Dir = DirNone
	p.Scale = 1
	p.Alpha = 1
	p.landed = false
	p.jumpHeight = 0
	p.timer = 0
}

func (p *Player) remove() {
	p.Moving = false
	p.State = PlayerGone
	p.Exists = false
	p.landed = false
}

// IsMoving reports whether the player is interpolating between cells.
func (p *Player) IsMoving() bool {
	return p.State == PlayerMoving || p.State == PlayerJumping
}

// Height returns the vertical draw offset of a jump or hop.
func (p *Player) Height() float64 {
	if !p.IsMoving() || p.jumpHeight == 0 {
		return 0
	}
	return math.Sin(p.Progress()*math.Pi) * 0.2 * p.jumpHeight
}

func (p *Player) view() ActorView {
	x, y := p.RenderPos()
	return ActorView{
		Kind:   KindPlayer,
		Exists: p.Exists,
		Cell:   p.Pos,
		X:      x,
		Y:      y,
		Height: p.Height(),
		Scale:  p.Scale,
		Alpha:  p.Alpha,
		Dir:    p.Dir,
		Visual: p.Visual,
	}
}

// bottomTileType classifies cell to for the player.
func (c *Controller) bottomTileType(to Coord) TileType {
	if !c.grid.InBounds(to.X, to.Y) {
		return TileInvalid
	}
	static := c.grid.At(Static, to)
	if !static.Solid() || c.grid.At(Overlay, to).Occupied() {
		return TileInvalid
	}
	if static.IsPlatform() {
		return TilePlatform
	}
	return TileFloor
}

func (c *Controller) phasePlayer(step float64) {
	p := &c.player
	switch p.State {
	case PlayerMoving, PlayerJumping:
		if p.advance(step) {
			p.finish()
			p.State = PlayerIdle
			p.jumpHeight = 0
			p.landed = true
		}
	case PlayerTeleporting:
		c.advanceTeleport(step)
	case PlayerDying:
		p.timer -= step
		p.Alpha = clamp01(p.timer / c.timing.DeathTime)
		if p.timer <= 0 {
			c.grid.Put(Overlay, p.Pos, MarkNone)
			p.remove()
			c.failed = true
			c.log.Debug("player died", "index", c.index, "cell", p.Pos)
		}
	case PlayerIdle:
		if c.wait > 0 {
			c.wait -= step
			return
		}
		if c.checkAutomaticMovement() {
			return
		}
		if c.input.Allow && c.input.Dir.Valid() {
			c.tryMove(c.input.Dir)
		}
	}
}

// checkAutomaticMovement starts a forced move when the player idles on an
// arrow tile whose heading is open. It reports whether a move started.
func (c *Controller) checkAutomaticMovement() bool {
	dir, ok := c.grid.At(Static, c.player.Pos).Arrow()
	if !ok {
		return false
	}
	to := c.player.Pos.Step(dir, 1)
	if c.bottomTileType(to) == TileInvalid {
		return false
	}
	c.startMove(dir, to, false)
	return true
}

// tryMove handles a player-initiated move. A blocked neighbour turns the
// move into a jump over it when the cell beyond is open.
func (c *Controller) tryMove(dir Direction) bool {
	p := &c.player
	to := p.Pos.Step(dir, 1)
	jump := false
	if c.bottomTileType(to) == TileInvalid {
		if !c.canJump(dir) {
			return false
		}
		to = p.Pos.Step(dir, 2)
		jump = true
	}
	c.history.Push(c.grid)
	c.moves++
	c.startMove(dir, to, jump)
	return true
}

// canJump reports whether a long jump in dir may land two cells away.
func (c *Controller) canJump(dir Direction) bool {
	p := &c.player
	over := p.Pos.Step(dir, 1)
	if c.grid.At(Overlay, over) != MarkNone {
		return false
	}
	return c.bottomTileType(p.Pos.Step(dir, 2)) != TileInvalid
}

func (c *Controller) startMove(dir Direction, to Coord, jump bool) {
	p := &c.player
	hop := 0.0
	if c.grid.At(Static, p.Pos).IsPlatform() || c.grid.At(Static, to).IsPlatform() {
		hop = 1
	}
	duration := c.timing.MoveTime
	p.State = PlayerMoving
	if jump {
		duration *= 2
		hop = 2
		p.State = PlayerJumping
	}

	c.grid.Put(Overlay, p.Pos, MarkNone)
	c.grid.Put(Overlay, to, MarkPlayer)
	p.Dir = dir
	p.jumpHeight = hop
	p.serial++
	p.landed = false
	p.start(to, duration)

	if jump {
		c.events.Notify(EventJump, to)
	}
}

func (c *Controller) startTeleport(dest Coord) {
	p := &c.player
	p.State = PlayerTeleporting
	p.tpPhase = teleportOut
	p.tpDest = dest
	p.timer = c.timing.TeleportTime
	c.events.Notify(EventTeleport, p.Pos)
}

func (c *Controller) advanceTeleport(step float64) {
	p := &c.player
	p.timer -= step
	switch p.tpPhase {
	case teleportOut:
		p.Scale = clamp01(p.timer / c.timing.TeleportTime)
		if p.timer > 0 {
			return
		}
		c.grid.Put(Overlay, p.Pos, MarkNone)
		c.grid.Put(Overlay, p.tpDest, MarkPlayer)
		p.place(p.tpDest)
		p.tpPhase = teleportIn
		p.timer = c.timing.TeleportTime
		p.Scale = 0
	case teleportIn:
		p.Scale = clamp01(1 - p.timer/c.timing.TeleportTime)
		if p.timer <= 0 {
			p.Scale = 1
			p.State = PlayerIdle
		}
	}
}

func (c *Controller) startDying() {
	p := &c.player
	p.State = PlayerDying
	p.timer = c.timing.DeathTime
	c.events.Notify(EventDeath, p.Pos)
}
