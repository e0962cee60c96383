package stage

// ActorKind tags the behaviour of a pooled actor.
type ActorKind int

const (
	KindShrinking ActorKind = iota
	KindMover
	KindToggle
	KindSwitch
	KindGhost
	KindOrb
	KindPlayer

	numPooledKinds = int(KindPlayer)
)

// String returns the actor kind name.
func (k ActorKind) String() string {
	switch k {
	case KindShrinking:
		return "shrinking"
	case KindMover:
		return "mover"
	case KindToggle:
		return "toggle"
	case KindSwitch:
		return "switch"
	case KindGhost:
		return "ghost"
	case KindOrb:
		return "orb"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ShrinkPhase is the state of a shrinking platform.
type ShrinkPhase int

const (
	ShrinkIdle ShrinkPhase = iota
	ShrinkReady
	Shrinking
	ShrinkDestroyed
)

// Actor is the shared record of every pooled object. Kind-specific data
// lives in the trailing fields and is interpreted by the behaviour table.
type Actor struct {
	Motion
	Kind   ActorKind
	Slot   int
	Exists bool
	Visual Handle
	Scale  float64
	Alpha  float64

	Dir     Direction   // mover, ghost
	Enabled bool        // toggle, switch
	Phase   ShrinkPhase // shrinking
	Wave    float64     // ghost, orb
	timer   float64     // animation countdown
	serial  int         // last player move this actor reacted to
}

func (a *Actor) spawn(c Coord) {
	a.place(c)
	a.Exists = true
	a.Scale = 1
	a.Alpha = 1
	a.Dir = DirNone
	a.Enabled = false
	a.Phase = ShrinkIdle
	a.Wave = 0
	a.timer = 0
	a.serial = 0
}

// behavior is one row of the dispatch table.
type behavior struct {
	update func(c *Controller, a *Actor, step float64)
}

// behaviors is indexed by ActorKind.
var behaviors = [numPooledKinds]behavior{
	KindShrinking: {update: (*Controller).updateShrinking},
	KindMover:     {update: (*Controller).updateMover},
	KindToggle:    {update: (*Controller).updateToggle},
	KindSwitch:    {update: (*Controller).updateSwitch},
	KindGhost:     {update: (*Controller).updateGhost},
	KindOrb:       {update: (*Controller).updateOrb},
}

// spawnInfo describes what a cell spawns on rebuild.
func spawnKind(static, overlay Code) (kinds []ActorKind) {
	switch {
	case static == CodeShrinking:
		kinds = append(kinds, KindShrinking)
	case static == CodeToggleOn || static == CodeToggleOff:
		kinds = append(kinds, KindToggle)
	case static == CodeSwitchOn || static == CodeSwitchOff:
		kinds = append(kinds, KindSwitch)
	default:
		if _, ok := static.Mover(); ok {
			kinds = append(kinds, KindMover)
		}
	}
	if overlay == MarkOrb {
		kinds = append(kinds, KindOrb)
	} else if _, ok := overlay.Ghost(); ok {
		kinds = append(kinds, KindGhost)
	}
	return kinds
}

// spawnCounts returns the number of spawn codes per pooled kind in g.
func spawnCounts(g *Grid) [numPooledKinds]int {
	var n [numPooledKinds]int
	for i := range g.Static {
		for _, k := range spawnKind(g.Static[i], g.Overlay[i]) {
			n[k]++
		}
	}
	return n
}

// ActorView is a read-only copy of an actor's draw-relevant state.
type ActorView struct {
	Kind    ActorKind
	Slot    int
	Exists  bool
	Cell    Coord
	X, Y    float64
	Height  float64
	Scale   float64
	Alpha   float64
	Dir     Direction
	Enabled bool
	Phase   ShrinkPhase
	Wave    float64
	Visual  Handle
}

func (a *Actor) view() ActorView {
	x, y := a.RenderPos()
	return ActorView{
		Kind:    a.Kind,
		Slot:    a.Slot,
		Exists:  a.Exists,
		Cell:    a.Pos,
		X:       x,
		Y:       y,
		Scale:   a.Scale,
		Alpha:   a.Alpha,
		Dir:     a.Dir,
		Enabled: a.Enabled,
		Phase:   a.Phase,
		Wave:    a.Wave,
		Visual:  a.Visual,
	}
}
