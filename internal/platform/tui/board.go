package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/stage"
)

// cellWidth is the number of screen columns per grid cell.
const cellWidth = 2

// liftHeight is the jump height above which the player is drawn one row up.
// Platform hops stay below it.
const liftHeight = 0.25

// glyph is the two-column look of one grid cell.
type glyph struct {
	text  string
	color core.Color
}

var staticGlyphs = map[stage.Code]glyph{
	stage.CodeFloor:                 {"░░", core.ColorFloor},
	stage.CodeShrinking:             {"▒▒", core.ColorHazard},
	stage.CodeEnd:                   {"XX", core.ColorHazard},
	stage.CodeJump:                  {"**", core.ColorJump},
	stage.ArrowCode(stage.DirRight): {"→→", core.ColorArrow},
	stage.ArrowCode(stage.DirUp):    {"↑↑", core.ColorArrow},
	stage.ArrowCode(stage.DirLeft):  {"←←", core.ColorArrow},
	stage.ArrowCode(stage.DirDown):  {"↓↓", core.ColorArrow},
	stage.CodeToggleButton:          {"[]", core.ColorButton},
	stage.CodeToggleButtonPressed:   {"[]", core.ColorFaded},
	stage.CodeRotateButton:          {"()", core.ColorButton},
	stage.CodeRotateButtonPressed:   {"()", core.ColorFaded},
	stage.CodeToggleOn:              {"▓▓", core.ColorPlatform},
	stage.CodeToggleOff:             {"··", core.ColorFaded},
	stage.CodeSwitchOn:              {"▓▓", core.ColorPlatform},
	stage.CodeSwitchOff:             {"··", core.ColorFaded},
}

// staticGlyph returns the look of a static code. Moving platforms are drawn
// from their actors instead.
func staticGlyph(c stage.Code) (glyph, bool) {
	if c.IsTeleport() {
		d := rune('0' + int(c-stage.CodeTeleportFirst))
		return glyph{string([]rune{d, d}), core.ColorTeleport}, true
	}
	g, ok := staticGlyphs[c]
	return g, ok
}

// boardView draws a stage into a screen rectangle. The view scrolls to
// keep the player visible when the stage is larger than the rectangle.
type boardView struct {
	scr  *core.Screen
	area core.Rect
	camX int
	camY int
}

func newBoardView(scr *core.Screen, area core.Rect, c *stage.Controller) boardView {
	p := c.Player()
	return boardView{
		scr:  scr,
		area: area,
		camX: core.Follow(int(math.Round(p.X*cellWidth)), area.W, c.Width()*cellWidth),
		camY: core.Follow(int(math.Round(p.Y)), area.H, c.Height()),
	}
}

// put draws g with its left column at screen-space grid position (sx, y).
func (v boardView) put(sx, y int, g glyph) {
	x := v.area.X + sx - v.camX
	y = v.area.Y + y - v.camY
	for i, r := range []rune(g.text) {
		if v.area.Contains(x+i, y) {
			v.scr.SetColor(x+i, y, r, g.color)
		}
	}
}

// putAt draws g at an interpolated cell position.
func (v boardView) putAt(x, y float64, g glyph) {
	v.put(int(math.Round(x*cellWidth)), int(math.Round(y)), g)
}

// drawBoard draws the static layer, every live actor and the player.
func drawBoard(scr *core.Screen, area core.Rect, c *stage.Controller) {
	v := newBoardView(scr, area, c)

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if g, ok := staticGlyph(c.Tile(stage.Static, x, y)); ok {
				v.put(x*cellWidth, y, g)
			}
		}
	}

	for _, a := range c.Actors() {
		if !a.Exists {
			continue
		}
		switch a.Kind {
		case stage.KindShrinking:
			if a.Phase == stage.Shrinking {
				v.putAt(a.X, a.Y, glyph{"░░", core.ColorFaded})
			}
		case stage.KindToggle, stage.KindSwitch:
			if g, ok := staticGlyph(c.Tile(stage.Static, a.Cell.X, a.Cell.Y)); ok {
				if a.Alpha < 0.5 || a.Scale < 0.75 {
					g.color = core.ColorFaded
				}
				v.putAt(a.X, a.Y, g)
			}
		default:
			v.putAt(a.X, a.Y, actorGlyph(a))
		}
	}

	if p := c.Player(); p.Exists {
		g := actorGlyph(p)
		y := p.Y
		if p.Height > 0 {
			g.color = core.ColorAccent
		}
		if p.Height >= liftHeight {
			y--
		}
		if c.IsDying() || p.Alpha < 0.5 {
			g.color = core.ColorFaded
		}
		v.putAt(p.X, y, g)
	}
}

// drawHUD draws the stage title above the board and the counters below it.
func drawHUD(scr *core.Screen, c *stage.Controller, pack string, status string) {
	title := fmt.Sprintf(" %s  %d/%d  %s ", pack, c.StageIndex()+1, c.StageCount(), c.StageName())
	scr.DrawTextCentered(0, title, core.ColorAccent)

	counters := fmt.Sprintf("Orbs %d/%d   Moves %d   Undos %d", c.OrbsTotal()-c.OrbsLeft(), c.OrbsTotal(), c.Moves(), c.Undos())
	scr.DrawTextColor(1, scr.Height()-2, counters, core.ColorHUD)
	if status != "" {
		scr.DrawTextColor(scr.Width()-len([]rune(status))-1, scr.Height()-2, status, core.ColorAccent)
	}
	scr.DrawTextColor(1, scr.Height()-1, "arrows move  z undo  r reset  n next  p pause  esc stages  q quit", core.ColorFaded)
}
