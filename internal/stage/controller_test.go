package stage

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMove(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t,
		"@..",
		"...",
		"...",
	)}, 0, WithEvents(rec))
	require.NoError(t, err)

	move(c, DirRight)

	assert.Equal(t, C(1, 0), c.Player().Cell)
	assert.Equal(t, MarkNone, c.Tile(Overlay, 0, 0))
	assert.Equal(t, MarkPlayer, c.Tile(Overlay, 1, 0))
	assert.Equal(t, PlayerIdle, c.PlayerState())
	assert.Empty(t, rec.events, "no tile effects on plain floor")
	assert.Equal(t, 1, c.Moves())
}

func TestMoveClaimsTargetAtStart(t *testing.T) {
	c := newTestController(t, "@..")
	c.Update(DirRight, true, 1)

	assert.Equal(t, PlayerMoving, c.PlayerState())
	assert.Equal(t, MarkPlayer, c.Tile(Overlay, 1, 0))
	assert.Equal(t, MarkNone, c.Tile(Overlay, 0, 0))
	x, _ := c.player.RenderPos()
	assert.Less(t, x, 1.0)
}

func TestMoveTakesMoveTime(t *testing.T) {
	c := newTestController(t, "@..")
	c.Update(DirRight, true, 1)
	for i := 0; i < 14; i++ {
		c.Update(DirNone, true, 1)
		require.True(t, c.player.IsMoving(), "tick %d", i)
	}
	c.Update(DirNone, true, 1)
	assert.False(t, c.player.IsMoving())
}

func TestInvalidInputIgnored(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  Direction
	}{
		{"off map", []string{"@.."}, DirLeft},
		{"void then void", []string{"@  ."}, DirRight},
		{"disabled toggle then edge", []string{"@t"}, DirRight},
		{"ghost blocks jump", []string{"@g."}, DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.rows...)
			before := c.Grid()
			c.Update(tt.dir, true, 1)
			assert.Equal(t, PlayerIdle, c.PlayerState())
			assert.Equal(t, 0, c.HistoryLen())
			assert.Equal(t, C(0, 0), c.Player().Cell)
			assert.Equal(t, before.Static, c.Grid().Static)
		})
	}
}

func TestAllowPlayerMoveGate(t *testing.T) {
	c := newTestController(t, "@..")
	c.Update(DirRight, false, 1)
	assert.Equal(t, PlayerIdle, c.PlayerState())
}

func TestBlockedThenJump(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t, "@ ..")}, 0, WithEvents(rec))
	require.NoError(t, err)

	c.Update(DirRight, true, 1)
	require.Equal(t, PlayerJumping, c.PlayerState())
	assert.Equal(t, C(2, 0), c.player.Target)

	for i := 0; i < 29; i++ {
		c.Update(DirNone, true, 1)
		require.True(t, c.player.IsMoving(), "jump lasts twice the move time, tick %d", i)
	}
	c.Update(DirNone, true, 1)
	assert.Equal(t, C(2, 0), c.Player().Cell)
	assert.Equal(t, []Event{EventJump}, rec.events)
}

func TestJumpHeightOffset(t *testing.T) {
	c := newTestController(t, "@ .")
	c.Update(DirRight, true, 1)
	for i := 0; i < 14; i++ {
		c.Update(DirNone, true, 1)
	}
	assert.Greater(t, c.Player().Height, 0.3)
}

func TestTeleportRoundTrip(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t,
		"......",
		"......",
		".@1...",
		"......",
		"......",
		".....1",
	)}, 0, WithEvents(rec))
	require.NoError(t, err)

	move(c, DirRight)

	assert.Equal(t, C(5, 5), c.Player().Cell)
	assert.Equal(t, MarkPlayer, c.Tile(Overlay, 5, 5))
	assert.Equal(t, MarkNone, c.Tile(Overlay, 2, 2))
	assert.Equal(t, 1.0, c.Player().Scale)
	assert.Contains(t, rec.events, EventTeleport)
}

func TestTeleportWithoutPair(t *testing.T) {
	c := newTestController(t, "@1.")
	move(c, DirRight)
	assert.Equal(t, C(1, 0), c.Player().Cell)
	assert.Equal(t, PlayerIdle, c.PlayerState())
}

func TestClearCondition(t *testing.T) {
	c := newTestController(t, "@o.o")
	require.Equal(t, 2, c.OrbsTotal())
	require.Equal(t, 2, c.OrbsLeft())

	move(c, DirRight)
	assert.Equal(t, 1, c.OrbsLeft())
	assert.False(t, c.IsCleared())
	move(c, DirRight)
	assert.False(t, c.IsCleared())

	c.Update(DirRight, true, 1)
	for c.player.IsMoving() {
		assert.False(t, c.IsCleared())
		c.Update(DirNone, true, 1)
	}
	assert.False(t, c.IsCleared(), "orb is removed on the tick after the player settles")
	assert.Equal(t, 1, c.OrbsLeft())

	c.Update(DirNone, true, 1)
	assert.True(t, c.IsCleared())
	assert.Equal(t, 0, c.OrbsLeft())
}

func TestNoOrbsNeverClears(t *testing.T) {
	c := newTestController(t, "@..")
	move(c, DirRight)
	assert.False(t, c.IsCleared())
}

func TestOrbCountInvariant(t *testing.T) {
	c := newTestController(t,
		"@.o.o",
		".o...",
		"..s.o",
		"o....",
	)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 40; i++ {
		move(c, Directions[rng.Intn(4)])
		assert.Equal(t, c.grid.Count(Overlay, MarkOrb), c.OrbsLeft(), "move %d", i)
		assert.Equal(t, c.OrbsTotal() >= 1 && c.OrbsLeft() == 0, c.IsCleared())
	}
}

func TestUndoInverse(t *testing.T) {
	c := newTestController(t,
		"@....",
		".....",
		".s...",
		".....",
		"G....",
	)
	initial := c.Grid()

	for _, d := range []Direction{DirRight, DirRight, DirRight, DirDown, DirDown, DirDown} {
		move(c, d)
	}
	require.Equal(t, 6, c.HistoryLen())
	require.Equal(t, C(3, 3), c.Player().Cell)
	require.False(t, c.Grid().Equal(initial))

	for i := 0; i < 6; i++ {
		require.True(t, c.Undo())
	}
	assert.True(t, c.Grid().Equal(initial))
	assert.Equal(t, C(0, 0), c.Player().Cell)
	assert.False(t, c.Undo(), "empty history is a no-op")
	assert.True(t, c.Grid().Equal(initial))
}

func TestUndoInverseRandomWalk(t *testing.T) {
	c := newTestController(t,
		"@..o..",
		". s .G",
		"~.... ",
		"..T...",
	)
	initial := c.Grid()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 30; i++ {
		move(c, Directions[rng.Intn(4)])
	}
	n := c.HistoryLen()
	require.Positive(t, n)
	for i := 0; i < n; i++ {
		require.True(t, c.Undo())
	}
	assert.True(t, c.Grid().Equal(initial))
}

func TestUndoMidMove(t *testing.T) {
	c := newTestController(t, "@..")
	initial := c.Grid()
	c.Update(DirRight, true, 1)
	c.Update(DirNone, true, 1)

	require.True(t, c.Undo())
	assert.True(t, c.Grid().Equal(initial))
	assert.Equal(t, PlayerIdle, c.PlayerState())
	assert.Equal(t, C(0, 0), c.Player().Cell)
}

func TestHistoryCapacityBound(t *testing.T) {
	timing := DefaultTiming()
	timing.HistoryCapacity = 3
	c, err := New(testSource{testLayout(t, "@.....")}, 0, WithTiming(timing))
	require.NoError(t, err)

	var states []*Grid
	states = append(states, c.Grid())
	for i := 0; i < 5; i++ {
		move(c, DirRight)
		states = append(states, c.Grid())
	}
	require.Equal(t, 3, c.HistoryLen())

	for i := 0; i < 3; i++ {
		require.True(t, c.Undo())
	}
	assert.True(t, c.Grid().Equal(states[2]))
	for i := 0; i < 3; i++ {
		assert.False(t, c.Undo())
	}
	assert.True(t, c.Grid().Equal(states[2]))
	assert.Equal(t, C(2, 0), c.Player().Cell)
}

func TestButtonToggleIdempotentUnderReset(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t, "@bTt")}, 0, WithEvents(rec))
	require.NoError(t, err)
	initial := c.Grid()

	move(c, DirRight)
	assert.Equal(t, CodeToggleButtonPressed, c.Tile(Static, 1, 0))
	assert.Equal(t, CodeToggleOff, c.Tile(Static, 2, 0))
	assert.Equal(t, CodeToggleOn, c.Tile(Static, 3, 0))
	assert.Contains(t, rec.events, EventButton)
	pressed := c.Grid()

	c.Reset()
	assert.True(t, c.Grid().Equal(initial))

	require.True(t, c.Undo(), "reset is undoable")
	assert.True(t, c.Grid().Equal(pressed))
}

func TestButtonPressTwiceRestores(t *testing.T) {
	c := newTestController(t, "@b.T")
	move(c, DirRight)
	move(c, DirRight)
	move(c, DirLeft)
	assert.Equal(t, CodeToggleButton, c.Tile(Static, 1, 0))
	assert.Equal(t, CodeToggleOn, c.Tile(Static, 3, 0))
}

func TestToggleActorsFollowGrid(t *testing.T) {
	c := newTestController(t, "@bT")
	move(c, DirRight)
	var toggle ActorView
	for _, a := range c.Actors() {
		if a.Kind == KindToggle {
			toggle = a
		}
	}
	assert.False(t, toggle.Enabled)
	assert.InDelta(t, disabledAlpha, toggle.Alpha, 1e-9)
	assert.InDelta(t, disabledScale, toggle.Scale, 1e-9)
}

func TestWaitingLockout(t *testing.T) {
	c := newTestController(t, "@b..")
	c.Update(DirRight, true, 1)
	for c.player.IsMoving() {
		c.Update(DirNone, true, 1)
	}
	c.Update(DirRight, true, 1)
	require.True(t, c.IsWaiting())
	assert.Equal(t, PlayerIdle, c.PlayerState(), "input ignored during lockout")

	for c.IsWaiting() {
		c.Update(DirRight, true, 1)
	}
	c.Update(DirRight, true, 1)
	assert.Equal(t, PlayerMoving, c.PlayerState())
}

func TestEndTileDeathAndUndo(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t, "@X")}, 0, WithEvents(rec))
	require.NoError(t, err)

	c.Update(DirRight, true, 1)
	for c.player.IsMoving() {
		c.Update(DirNone, true, 1)
	}
	c.Update(DirNone, true, 1)
	assert.True(t, c.IsDying())
	assert.Contains(t, rec.events, EventDeath)

	settle(c)
	assert.True(t, c.IsFailed())
	assert.False(t, c.Player().Exists)
	assert.Equal(t, MarkNone, c.Tile(Overlay, 1, 0))

	c.Update(DirLeft, true, 1)
	assert.Equal(t, PlayerGone, c.PlayerState(), "dead player takes no input")

	require.True(t, c.Undo())
	assert.False(t, c.IsFailed())
	assert.True(t, c.Player().Exists)
	assert.Equal(t, C(0, 0), c.Player().Cell)
}

func TestAutomaticArrowForcesMove(t *testing.T) {
	c := newTestController(t, "@>>..")
	move(c, DirRight)
	assert.Equal(t, C(3, 0), c.Player().Cell)
	assert.Equal(t, 1, c.HistoryLen(), "forced moves do not record history")
	assert.Equal(t, 1, c.Moves())

	require.True(t, c.Undo())
	assert.Equal(t, C(0, 0), c.Player().Cell)
}

func TestAutomaticArrowBlockedReturnsControl(t *testing.T) {
	c := newTestController(t, ".@>", "...")
	move(c, DirRight)
	assert.Equal(t, C(2, 0), c.Player().Cell)
	move(c, DirDown)
	assert.Equal(t, C(2, 1), c.Player().Cell)
}

func TestJumpTileChains(t *testing.T) {
	layout := testLayout(t, "@J...")
	layout.Overlay[1] = MarkOrb
	c, err := New(testSource{layout}, 0)
	require.NoError(t, err)

	move(c, DirRight)
	assert.Equal(t, C(3, 0), c.Player().Cell)
	assert.Equal(t, 0, c.OrbsLeft(), "orb on the jump tile is collected")
	assert.True(t, c.IsCleared())
	assert.Equal(t, 1, c.HistoryLen())
}

func TestJumpTileBlockedSettles(t *testing.T) {
	c := newTestController(t, "@J. ")
	move(c, DirRight)
	assert.Equal(t, C(1, 0), c.Player().Cell)
	assert.Equal(t, PlayerIdle, c.PlayerState())
}

func TestGhostPatrols(t *testing.T) {
	c := newTestController(t,
		"@...",
		"G...",
	)
	move(c, DirRight)
	assert.Equal(t, GhostCode(DirRight), c.Tile(Overlay, 1, 1))
	assert.Equal(t, MarkNone, c.Tile(Overlay, 0, 1))
}

func TestGhostReversesWhenBlocked(t *testing.T) {
	c := newTestController(t,
		"@...",
		".Go.",
	)
	move(c, DirRight)
	assert.Equal(t, GhostCode(DirLeft), c.Tile(Overlay, 0, 1))
	assert.Equal(t, MarkNone, c.Tile(Overlay, 1, 1))
}

func TestGhostStaysWhenBothBlocked(t *testing.T) {
	c := newTestController(t,
		"@..",
		"Go.",
	)
	move(c, DirRight)
	assert.Equal(t, GhostCode(DirRight), c.Tile(Overlay, 0, 1))
}

func TestGhostCannotEnterPlayerTarget(t *testing.T) {
	c := newTestController(t, "@.g")
	move(c, DirRight)
	assert.Equal(t, C(1, 0), c.Player().Cell)
	assert.Equal(t, GhostCode(DirLeft), c.Tile(Overlay, 2, 0), "claimed target and map edge block the ghost")
}

func TestMovingPlatformPingPong(t *testing.T) {
	c := newTestController(t,
		"@...",
		"M  .",
	)
	move(c, DirRight)
	assert.Equal(t, MoverCode(DirRight), c.Tile(Static, 1, 1))
	assert.Equal(t, CodeEmpty, c.Tile(Static, 0, 1))

	move(c, DirRight)
	assert.Equal(t, MoverCode(DirRight), c.Tile(Static, 2, 1))

	move(c, DirLeft)
	assert.Equal(t, MoverCode(DirLeft), c.Tile(Static, 1, 1), "reverses at the floor tile")
}

func TestMovingPlatformHoldsUnderPlayer(t *testing.T) {
	c := newTestController(t,
		".@.",
		" M ",
	)
	move(c, DirDown)
	assert.Equal(t, C(1, 1), c.Player().Cell)
	assert.Equal(t, MoverCode(DirRight), c.Tile(Static, 1, 1), "platform being boarded stays")
	assert.Equal(t, CodeEmpty, c.Tile(Static, 2, 1))
}

func TestRotateButton(t *testing.T) {
	c := newTestController(t,
		"@r.",
		"M  ",
	)
	move(c, DirRight)
	assert.Equal(t, CodeRotateButtonPressed, c.Tile(Static, 1, 0))
	assert.Equal(t, MoverCode(DirUp), c.Tile(Static, 1, 1))
	for _, a := range c.Actors() {
		if a.Kind == KindMover && a.Exists {
			assert.Equal(t, DirUp, a.Dir)
		}
	}
}

func TestShrinkingPlatformLifecycle(t *testing.T) {
	c := newTestController(t, "@~.")
	shrinker := c.pools[KindShrinking].At(0)

	move(c, DirRight)
	assert.Equal(t, ShrinkReady, shrinker.Phase)
	assert.Equal(t, CodeShrinking, c.Tile(Static, 1, 0))

	c.Update(DirRight, true, 1)
	c.Update(DirNone, true, 1)
	assert.Equal(t, Shrinking, shrinker.Phase)
	assert.Equal(t, CodeEmpty, c.Tile(Static, 1, 0), "removed from the static layer")

	settle(c)
	for i := 0; i < 30; i++ {
		c.Update(DirNone, true, 1)
	}
	assert.False(t, shrinker.Exists)
	assert.Equal(t, ShrinkDestroyed, shrinker.Phase)

	require.True(t, c.Undo())
	assert.Equal(t, CodeShrinking, c.Tile(Static, 1, 0))
	assert.True(t, c.pools[KindShrinking].At(0).Exists)
}

func TestSwitchingPlatformFlips(t *testing.T) {
	c := newTestController(t, "@.s")
	move(c, DirRight)
	assert.Equal(t, CodeSwitchOn, c.Tile(Static, 2, 0))

	move(c, DirRight)
	assert.Equal(t, CodeSwitchOn, c.Tile(Static, 2, 0), "no flip while being entered")
	assert.Equal(t, C(2, 0), c.Player().Cell)

	move(c, DirLeft)
	assert.Equal(t, CodeSwitchOff, c.Tile(Static, 2, 0), "flips when stepped off")
}

func TestResetRestoresLayout(t *testing.T) {
	c := newTestController(t, "@.o~G.")
	initial := c.Grid()
	move(c, DirRight)
	move(c, DirRight)
	c.Reset()

	assert.True(t, c.Grid().Equal(initial))
	assert.Equal(t, C(0, 0), c.Player().Cell)
	assert.Equal(t, 1, c.OrbsLeft())
	assert.Equal(t, 1, c.Resets())
}

func TestUndoKeepsSlotIdentity(t *testing.T) {
	c := newTestController(t, "@o.o")
	first := c.pools[KindOrb].At(0)
	move(c, DirRight)
	require.False(t, first.Exists)

	require.True(t, c.Undo())
	assert.True(t, first.Exists)
	assert.Equal(t, C(1, 0), first.Pos)
}

func TestPoolExhaustionOnRebuild(t *testing.T) {
	c := newTestController(t, "@o.")
	g := c.Grid()
	g.Set(Overlay, 2, 0, MarkOrb)
	c.history.Push(g)

	require.True(t, c.Undo())
	assert.Equal(t, 1, c.pools[KindOrb].Live(), "excess actors are skipped")
	assert.Equal(t, 2, c.OrbsLeft())
}

func TestAdvanceToNextStage(t *testing.T) {
	src := testSource{testLayout(t, "@o"), testLayout(t, ".@.")}
	c, err := New(src, 0)
	require.NoError(t, err)

	ok, err := c.AdvanceToNextStage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, c.StageIndex())
	assert.Equal(t, 3, c.Width())
	assert.Equal(t, 0, c.HistoryLen())

	ok, err = c.AdvanceToNextStage()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, c.StageIndex())
}

type failingSource struct{ testSource }

func (failingSource) Stage(int) (Layout, error) { return Layout{}, errors.New("broken") }

func TestNewErrors(t *testing.T) {
	_, err := New(testSource{}, 0)
	assert.ErrorIs(t, err, ErrNoStage)

	_, err = New(failingSource{testSource{testLayout(t, "@")}}, 0)
	assert.ErrorContains(t, err, "broken")
}

func TestHashDeterministic(t *testing.T) {
	rows := []string{"@.o.", ".G..", "..s."}
	a := newTestController(t, rows...)
	b := newTestController(t, rows...)
	for _, d := range []Direction{DirRight, DirDown, DirRight, DirUp} {
		move(a, d)
		move(b, d)
	}
	assert.Equal(t, a.Hash(), b.Hash())

	move(b, DirLeft)
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestHashCoversActorState(t *testing.T) {
	rows := []string{"@.~.o", "   M "}
	base := newTestController(t, rows...).Hash()

	c := newTestController(t, rows...)
	c.pools[KindShrinking].At(0).Phase = ShrinkReady
	assert.NotEqual(t, base, c.Hash(), "shrink phase")

	c = newTestController(t, rows...)
	c.pools[KindShrinking].At(0).timer = 5
	assert.NotEqual(t, base, c.Hash(), "shrink timer")

	c = newTestController(t, rows...)
	m := c.pools[KindMover].At(0)
	m.start(m.Pos.Step(DirRight, 1), 15)
	assert.NotEqual(t, base, c.Hash(), "mover target")

	c = newTestController(t, rows...)
	assert.Equal(t, base, c.Hash())
}

func TestMoversFollowMoveAfterButtonLockout(t *testing.T) {
	c := newTestController(t,
		"@r.o ",
		"     ",
		"   M ",
	)
	mover := c.pools[KindMover].At(0)
	start := mover.Pos

	move(c, DirRight)
	require.Equal(t, CodeRotateButtonPressed, c.Tile(Static, 1, 0))
	assert.False(t, c.IsWaiting(), "lockout has run out once settled")
	assert.Equal(t, DirUp, mover.Dir, "rotate button turns the mover")

	moved := mover.Pos
	move(c, DirRight)
	assert.NotEqual(t, moved, mover.Pos, "the first move after the lockout drives the mover")
	assert.NotEqual(t, start, mover.Pos)
}

func TestEventsReported(t *testing.T) {
	rec := &recorder{}
	c, err := New(testSource{testLayout(t, "@o")}, 0, WithEvents(rec))
	require.NoError(t, err)
	move(c, DirRight)
	assert.Equal(t, []Event{EventOrb, EventCleared}, rec.events)
}
