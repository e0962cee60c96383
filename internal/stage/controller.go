package stage

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNoStage is returned when a stage index is outside the tile source.
var ErrNoStage = errors.New("stage: no such stage")

// Timing holds every duration of the simulation, in ticks.
type Timing struct {
	MoveTime        float64
	HistoryCapacity int
	ButtonWait      float64
	ShrinkTime      float64
	SwitchTime      float64
	FadeTime        float64
	TeleportTime    float64
	DeathTime       float64
}

// DefaultTiming returns the stock durations.
func DefaultTiming() Timing {
	return Timing{
		MoveTime:        15,
		HistoryCapacity: 64,
		ButtonWait:      20,
		ShrinkTime:      20,
		SwitchTime:      12,
		FadeTime:        12,
		TeleportTime:    20,
		DeathTime:       30,
	}
}

// normalized replaces non-positive values with the defaults.
func (t Timing) normalized() Timing {
	d := DefaultTiming()
	fix := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fix(&t.MoveTime, d.MoveTime)
	fix(&t.ButtonWait, d.ButtonWait)
	fix(&t.ShrinkTime, d.ShrinkTime)
	fix(&t.SwitchTime, d.SwitchTime)
	fix(&t.FadeTime, d.FadeTime)
	fix(&t.TeleportTime, d.TeleportTime)
	fix(&t.DeathTime, d.DeathTime)
	if t.HistoryCapacity < 1 {
		t.HistoryCapacity = d.HistoryCapacity
	}
	return t
}

// Option configures a Controller.
type Option func(*Controller)

// WithTiming overrides the simulation durations.
func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t.normalized() }
}

// WithLogger sets the logger used for debug notes.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEvents sets the event sink.
func WithEvents(s EventSink) Option {
	return func(c *Controller) {
		if s != nil {
			c.events = s
		}
	}
}

// WithVisuals sets the visual factory.
func WithVisuals(v VisualFactory) Option {
	return func(c *Controller) {
		if v != nil {
			c.visuals = v
		}
	}
}

// Controller owns the grid, the undo history and every actor of the
// current stage, and advances them one tick at a time.
type Controller struct {
	src     TileSource
	timing  Timing
	log     *log.Logger
	events  EventSink
	visuals VisualFactory

	index   int
	layout  Layout
	base    *Grid
	grid    *Grid
	history *History
	pools   [numPooledKinds]*Pool
	player  Player

	input           Input
	wait            float64
	orbsLeft        int
	orbsTotal       int
	cleared         bool
	clearedNotified bool
	failed          bool
	moves           int
	undos           int
	resets          int
	ticks           int
}

// Input is the control intake for one tick.
type Input struct {
	Dir   Direction
	Allow bool
}

// New creates a controller positioned on stage index of src.
func New(src TileSource, index int, opts ...Option) (*Controller, error) {
	c := &Controller{
		src:     src,
		timing:  DefaultTiming(),
		log:     log.New(io.Discard),
		events:  nopSink{},
		visuals: nopVisuals{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.load(index); err != nil {
		return nil, err
	}
	return c, nil
}

// load replaces the current stage. On error nothing changes.
func (c *Controller) load(index int) error {
	if c.src == nil || index < 0 || index >= c.src.StageCount() {
		return fmt.Errorf("%w: %d", ErrNoStage, index)
	}
	layout, err := c.src.Stage(index)
	if err != nil {
		return fmt.Errorf("stage: load %d: %w", index, err)
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return fmt.Errorf("stage: load %d: invalid size %dx%d", index, layout.Width, layout.Height)
	}

	base := layout.Grid()
	counts := spawnCounts(base)
	var pools [numPooledKinds]*Pool
	for k := range pools {
		pools[k] = NewPool(ActorKind(k), counts[k], c.visuals)
	}

	c.index = index
	c.layout = layout
	c.base = base
	c.grid = base.Clone()
	c.history = NewHistory(c.timing.HistoryCapacity)
	c.pools = pools
	c.player = Player{Visual: c.visuals.NewVisual(KindPlayer)}
	c.orbsTotal = base.Count(Overlay, MarkOrb)
	c.moves, c.undos, c.resets, c.ticks = 0, 0, 0, 0
	c.rebuild()

	c.log.Debug("stage loaded", "index", index, "id", layout.ID, "size", fmt.Sprintf("%dx%d", layout.Width, layout.Height), "orbs", c.orbsTotal)
	return nil
}

// rebuild kills every actor and recreates them from the current grid.
func (c *Controller) rebuild() {
	for _, p := range c.pools {
		p.KillAll()
	}
	c.player.remove()

	found := false
	for i := range c.grid.Static {
		pos := C(i%c.grid.W, i/c.grid.W)
		static, overlay := c.grid.Static[i], c.grid.Overlay[i]
		if overlay == MarkPlayer && !found {
			c.player.spawn(pos)
			found = true
		}
		for _, k := range spawnKind(static, overlay) {
			a, ok := c.pools[k].Recreate(pos)
			if !ok {
				c.log.Debug("actor pool exhausted", "kind", k, "cell", pos)
				continue
			}
			initActor(a, static, overlay)
		}
	}

	c.wait = 0
	c.failed = false
	c.recomputeOrbs()
	c.cleared = c.clearConditionMet()
	c.clearedNotified = c.cleared
}

func initActor(a *Actor, static, overlay Code) {
	switch a.Kind {
	case KindMover:
		a.Dir, _ = static.Mover()
	case KindToggle:
		a.Enabled = static == CodeToggleOn
		a.Alpha, a.Scale = toggleLook(a.Enabled, 1)
	case KindSwitch:
		a.Enabled = static == CodeSwitchOn
		a.Scale = switchScale(a.Enabled, 1)
	case KindGhost:
		a.Dir, _ = overlay.Ghost()
	}
}

// phase is one step of a simulation tick.
type phase struct {
	name string
	run  func(c *Controller, step float64)
}

// tickPhases is the fixed order of one simulation tick. The player runs
// last, so every other actor reacts to the previous tick's player position.
var tickPhases = [...]phase{
	{"effects", (*Controller).phaseEffects},
	{"platforms", (*Controller).phasePlatforms},
	{"ghosts", (*Controller).phaseGhosts},
	{"orbs", (*Controller).phaseOrbs},
	{"player", (*Controller).phasePlayer},
	{"outcome", (*Controller).phaseOutcome},
}

// Update advances the simulation by step ticks. dir is DirNone when no
// direction is held; allowPlayerMove gates new player-initiated moves.
func (c *Controller) Update(dir Direction, allowPlayerMove bool, step float64) {
	if step <= 0 {
		return
	}
	c.input = Input{Dir: dir, Allow: allowPlayerMove}
	for _, p := range tickPhases {
		p.run(c, step)
	}
	c.ticks++
}

func (c *Controller) phasePlatforms(step float64) {
	for _, k := range [...]ActorKind{KindShrinking, KindMover, KindToggle, KindSwitch} {
		c.updatePool(k, step)
	}
}

func (c *Controller) phaseGhosts(step float64) { c.updatePool(KindGhost, step) }

func (c *Controller) phaseOrbs(step float64) { c.updatePool(KindOrb, step) }

func (c *Controller) updatePool(k ActorKind, step float64) {
	update := behaviors[k].update
	c.pools[k].Each(func(a *Actor) { update(c, a, step) })
}

func (c *Controller) phaseOutcome(float64) {
	c.cleared = c.clearConditionMet()
	if c.cleared && !c.clearedNotified {
		c.clearedNotified = true
		c.events.Notify(EventCleared, c.player.Pos)
		c.log.Debug("stage cleared", "index", c.index, "moves", c.moves, "undos", c.undos)
	}
}

func (c *Controller) clearConditionMet() bool {
	return c.orbsTotal >= 1 && c.orbsLeft == 0
}

// recomputeOrbs recounts the orb codes on the overlay layer.
func (c *Controller) recomputeOrbs() {
	c.orbsLeft = c.grid.Count(Overlay, MarkOrb)
}

// Undo restores the grid as it was before the last player-initiated move
// (or reset) and rebuilds every actor from it. It reports false when the
// history is empty.
func (c *Controller) Undo() bool {
	snap := c.history.Pop()
	if snap == nil {
		return false
	}
	c.grid.CopyFrom(snap)
	c.undos++
	c.rebuild()
	return true
}

// Reset restores the stage's initial layout. The current grid is pushed
// first, so a reset can be undone.
func (c *Controller) Reset() {
	c.history.Push(c.grid)
	c.grid.CopyFrom(c.base)
	c.resets++
	c.rebuild()
}

// AdvanceToNextStage loads the next stage of the tile source. It returns
// false with a nil error when the current stage is the last one.
func (c *Controller) AdvanceToNextStage() (bool, error) {
	next := c.index + 1
	if next >= c.src.StageCount() {
		return false, nil
	}
	if err := c.load(next); err != nil {
		return false, err
	}
	return true, nil
}

// Width returns the stage width in cells.
func (c *Controller) Width() int { return c.grid.W }

// Height returns the stage height in cells.
func (c *Controller) Height() int { return c.grid.H }

// StageIndex returns the index of the current stage.
func (c *Controller) StageIndex() int { return c.index }

// StageCount returns the number of stages of the tile source.
func (c *Controller) StageCount() int { return c.src.StageCount() }

// StageID returns the id of the current stage.
func (c *Controller) StageID() string { return c.layout.ID }

// StageName returns the display name of the current stage.
func (c *Controller) StageName() string { return c.layout.Name }

// IsCleared reports whether every orb of the stage has been collected.
func (c *Controller) IsCleared() bool { return c.cleared }

// IsDying reports whether the player is in its death sequence.
func (c *Controller) IsDying() bool { return c.player.State == PlayerDying }

// IsFailed reports whether the player has died on this stage.
func (c *Controller) IsFailed() bool { return c.failed }

// IsWaiting reports whether a button lockout is active.
func (c *Controller) IsWaiting() bool { return c.wait > 0 }

// IsSettled reports whether the stage is at rest: the player is not moving,
// no landing effect is pending and no lockout is active. Input given to a
// settled stage is never dropped.
func (c *Controller) IsSettled() bool {
	p := &c.player
	rest := p.State == PlayerIdle || p.State == PlayerGone
	return rest && !p.landed && c.wait <= 0
}

// OrbsLeft returns the number of orbs still on the overlay layer.
func (c *Controller) OrbsLeft() int { return c.orbsLeft }

// OrbsTotal returns the number of orbs the stage started with.
func (c *Controller) OrbsTotal() int { return c.orbsTotal }

// Moves returns the number of player-initiated moves on this stage.
func (c *Controller) Moves() int { return c.moves }

// Undos returns the number of successful undo calls on this stage.
func (c *Controller) Undos() int { return c.undos }

// Resets returns the number of resets on this stage.
func (c *Controller) Resets() int { return c.resets }

// Ticks returns the number of updates since the stage was loaded.
func (c *Controller) Ticks() int { return c.ticks }

// HistoryLen returns the number of stored undo snapshots.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// Tile returns the code at (layer, x, y), or CodeEmpty off the map.
func (c *Controller) Tile(l Layer, x, y int) Code {
	return c.grid.Get(l, x, y, CodeEmpty)
}

// Grid returns a copy of the current grid.
func (c *Controller) Grid() *Grid { return c.grid.Clone() }

// Player returns the player's draw state.
func (c *Controller) Player() ActorView { return c.player.view() }

// PlayerState returns the player's state machine state.
func (c *Controller) PlayerState() PlayerState { return c.player.State }

// Actors returns every pooled slot, existing or not, grouped by kind in
// update order.
func (c *Controller) Actors() []ActorView {
	var out []ActorView
	for _, p := range c.pools {
		for i := 0; i < p.Cap(); i++ {
			out = append(out, p.At(i).view())
		}
	}
	return out
}
