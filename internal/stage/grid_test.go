package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridBoundsSafety(t *testing.T) {
	g := NewGrid(3, 2)
	for i := range g.Static {
		g.Static[i] = CodeFloor
		g.Overlay[i] = MarkOrb
	}
	before := g.Clone()

	outside := []Coord{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}, {-5, -5}, {100, 1}}
	for _, c := range outside {
		for _, l := range []Layer{Static, Overlay} {
			assert.Equal(t, Code(-7), g.Get(l, c.X, c.Y, -7), "get %v layer %d", c, l)
			g.Set(l, c.X, c.Y, CodeJump)
		}
	}
	assert.True(t, g.Equal(before), "out-of-bounds set mutated the grid")
}

func TestGridGetSet(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(Static, 3, 2, CodeJump)
	g.Set(Overlay, 0, 1, MarkPlayer)

	assert.Equal(t, CodeJump, g.Get(Static, 3, 2, -1))
	assert.Equal(t, MarkPlayer, g.At(Overlay, C(0, 1)))
	assert.Equal(t, CodeEmpty, g.At(Static, C(0, 1)), "layers are independent")
}

func TestGridCloneIsDeep(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(Static, 1, 1, CodeFloor)
	clone := g.Clone()
	require.True(t, g.Equal(clone))

	clone.Set(Static, 1, 1, CodeEnd)
	clone.Set(Overlay, 0, 0, MarkOrb)
	assert.Equal(t, CodeFloor, g.Get(Static, 1, 1, -1))
	assert.Equal(t, MarkNone, g.Get(Overlay, 0, 0, -1))
	assert.False(t, g.Equal(clone))
}

func TestGridReplaceSwaps(t *testing.T) {
	g := NewGrid(3, 1)
	g.Static = []Code{CodeToggleOn, CodeToggleOff, CodeFloor}
	g.Replace(Static, CodeToggleOn, CodeToggleOff)
	assert.Equal(t, []Code{CodeToggleOff, CodeToggleOn, CodeFloor}, g.Static)
}

func TestGridFindAndCount(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(Overlay, 2, 0, MarkOrb)
	g.Set(Overlay, 0, 2, MarkOrb)
	assert.Equal(t, []Coord{{2, 0}, {0, 2}}, g.Find(Overlay, MarkOrb))
	assert.Equal(t, 2, g.Count(Overlay, MarkOrb))
	assert.Equal(t, 0, g.Count(Static, MarkOrb))
}

func TestCodeClassification(t *testing.T) {
	tests := []struct {
		code  Code
		solid bool
	}{
		{CodeEmpty, false},
		{CodeFloor, true},
		{CodeShrinking, true},
		{CodeEnd, true},
		{ArrowCode(DirDown), true},
		{CodeRotateButtonPressed, true},
		{CodeToggleOn, true},
		{CodeToggleOff, false},
		{MoverCode(DirLeft), true},
		{CodeSwitchOff, false},
		{CodeSwitchOn, true},
		{TeleportCode(0), true},
		{TeleportCode(9), true},
		{CodeTeleportLast + 1, false},
		{15, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.solid, tt.code.Solid(), "code %d", tt.code)
	}

	d, ok := GhostCode(DirUp).Ghost()
	assert.True(t, ok)
	assert.Equal(t, DirUp, d)
	assert.True(t, GhostCode(DirLeft).Occupied())
	assert.True(t, MarkPlayer.Occupied())
	assert.False(t, MarkOrb.Occupied())
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirLeft, DirRight.Opposite())
	assert.Equal(t, DirUp, DirDown.Opposite())
	assert.Equal(t, DirUp, DirRight.Rotate())
	assert.Equal(t, DirRight, DirDown.Rotate())
	assert.Equal(t, DirNone, DirNone.Opposite())
	assert.Equal(t, C(1, 3), C(1, 1).Step(DirDown, 2))

	d, err := ParseDirection("west")
	require.NoError(t, err)
	assert.Equal(t, DirLeft, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
