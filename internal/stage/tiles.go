package stage

// Layer selects one of the two grid layers.
type Layer int

const (
	// Static holds terrain, platform state and interactive tiles.
	Static Layer = iota
	// Overlay holds occupancy markers: player, orbs, ghosts.
	Overlay
)

// Code is the integer tag stored in a grid cell.
type Code int

// Static layer codes.
const (
	CodeEmpty               Code = 0
	CodeFloor               Code = 1
	CodeShrinking           Code = 2
	CodeEnd                 Code = 3
	CodeJump                Code = 4
	codeArrowBase           Code = 5 // 5..8
	CodeToggleButton        Code = 9
	CodeToggleButtonPressed Code = 10
	CodeRotateButton        Code = 11
	CodeRotateButtonPressed Code = 12
	CodeToggleOn            Code = 13
	CodeToggleOff           Code = 14
	codeMoverBase           Code = 17 // 17..20
	CodeSwitchOff           Code = 21
	CodeSwitchOn            Code = 22
	CodeTeleportFirst       Code = 30
	CodeTeleportLast        Code = 39
)

// Overlay layer codes.
const (
	MarkNone      Code = 0
	MarkPlayer    Code = 3
	MarkOrb       Code = 4
	markGhostBase Code = 25 // 25..28
)

// ArrowCode returns the automatic arrow code for heading d.
func ArrowCode(d Direction) Code { return codeArrowBase + Code(d) }

// MoverCode returns the moving platform code for heading d.
func MoverCode(d Direction) Code { return codeMoverBase + Code(d) }

// GhostCode returns the overlay ghost code for heading d.
func GhostCode(d Direction) Code { return markGhostBase + Code(d) }

// TeleportCode returns the teleport code for pair id (0..9).
func TeleportCode(id int) Code { return CodeTeleportFirst + Code(id) }

// Arrow reports the heading of an automatic arrow code.
func (c Code) Arrow() (Direction, bool) {
	if c >= codeArrowBase && c < codeArrowBase+4 {
		return Direction(c - codeArrowBase), true
	}
	return DirNone, false
}

// Mover reports the heading of a moving platform code.
func (c Code) Mover() (Direction, bool) {
	if c >= codeMoverBase && c < codeMoverBase+4 {
		return Direction(c - codeMoverBase), true
	}
	return DirNone, false
}

// Ghost reports the heading of an overlay ghost code.
func (c Code) Ghost() (Direction, bool) {
	if c >= markGhostBase && c < markGhostBase+4 {
		return Direction(c - markGhostBase), true
	}
	return DirNone, false
}

// IsTeleport reports whether c is one of the teleport pair codes.
func (c Code) IsTeleport() bool {
	return c >= CodeTeleportFirst && c <= CodeTeleportLast
}

// IsButton reports whether c is any button code, pressed or not.
func (c Code) IsButton() bool {
	return c >= CodeToggleButton && c <= CodeRotateButtonPressed
}

// Solid reports whether a static code can be stood on.
func (c Code) Solid() bool {
	switch {
	case c >= CodeFloor && c <= CodeToggleOn:
		return true
	case c >= codeMoverBase && c < codeMoverBase+4:
		return true
	case c == CodeSwitchOn, c.IsTeleport():
		return true
	}
	return false
}

// IsPlatform reports whether a static code belongs to a dynamic platform.
func (c Code) IsPlatform() bool {
	if _, ok := c.Mover(); ok {
		return true
	}
	switch c {
	case CodeShrinking, CodeToggleOn, CodeToggleOff, CodeSwitchOn, CodeSwitchOff:
		return true
	}
	return false
}

// Occupied reports whether an overlay code claims its cell for an actor.
func (c Code) Occupied() bool {
	if c == MarkPlayer {
		return true
	}
	_, ok := c.Ghost()
	return ok
}

// TileType classifies a cell from the player's point of view.
type TileType int

const (
	TileInvalid TileType = iota
	TileFloor
	TilePlatform
)

// String returns the tile type name.
func (t TileType) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TilePlatform:
		return "platform"
	default:
		return "invalid"
	}
}
