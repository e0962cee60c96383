package stage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var testLegend = map[rune][2]Code{
	' ': {CodeEmpty, MarkNone},
	'.': {CodeFloor, MarkNone},
	'@': {CodeFloor, MarkPlayer},
	'o': {CodeFloor, MarkOrb},
	'~': {CodeShrinking, MarkNone},
	'X': {CodeEnd, MarkNone},
	'J': {CodeJump, MarkNone},
	'>': {ArrowCode(DirRight), MarkNone},
	'<': {ArrowCode(DirLeft), MarkNone},
	'^': {ArrowCode(DirUp), MarkNone},
	'v': {ArrowCode(DirDown), MarkNone},
	'b': {CodeToggleButton, MarkNone},
	'r': {CodeRotateButton, MarkNone},
	'T': {CodeToggleOn, MarkNone},
	't': {CodeToggleOff, MarkNone},
	'S': {CodeSwitchOn, MarkNone},
	's': {CodeSwitchOff, MarkNone},
	'M': {MoverCode(DirRight), MarkNone},
	'W': {MoverCode(DirLeft), MarkNone},
	'G': {CodeFloor, GhostCode(DirRight)},
	'g': {CodeFloor, GhostCode(DirLeft)},
	'1': {TeleportCode(1), MarkNone},
	'2': {TeleportCode(2), MarkNone},
}

func testLayout(t *testing.T, rows ...string) Layout {
	t.Helper()
	require.NotEmpty(t, rows)
	l := Layout{ID: "test", Name: "Test", Width: len(rows[0]), Height: len(rows)}
	for y, row := range rows {
		require.Len(t, row, l.Width, "row %d", y)
		for _, r := range row {
			codes, ok := testLegend[r]
			require.True(t, ok, "unknown legend rune %q", r)
			l.Static = append(l.Static, codes[0])
			l.Overlay = append(l.Overlay, codes[1])
		}
	}
	return l
}

type testSource []Layout

func (s testSource) StageCount() int { return len(s) }

func (s testSource) Stage(i int) (Layout, error) {
	if i < 0 || i >= len(s) {
		return Layout{}, fmt.Errorf("no stage %d", i)
	}
	return s[i], nil
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(ev Event, _ Coord) { r.events = append(r.events, ev) }

func newTestController(t *testing.T, rows ...string) *Controller {
	t.Helper()
	c, err := New(testSource{testLayout(t, rows...)}, 0)
	require.NoError(t, err)
	return c
}

// settle ticks with no input until the player is at rest, every pending
// tile effect has resolved and no lockout is active.
func settle(c *Controller) {
	for i := 0; i < 1000; i++ {
		if c.IsSettled() {
			return
		}
		c.Update(DirNone, true, 1)
	}
}

// move issues one directional input and settles.
func move(c *Controller, dir Direction) {
	c.Update(dir, true, 1)
	settle(c)
}
