package core

// Color is a semantic foreground color of a screen cell. The platform
// layer maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorFloor
	ColorWall
	ColorPlayer
	ColorOrb
	ColorGhost
	ColorPlatform
	ColorButton
	ColorArrow
	ColorTeleport
	ColorHazard
	ColorJump
	ColorFaded
	ColorHUD
	ColorAccent
)

// Cell is one character of the screen with its color.
type Cell struct {
	Rune  rune
	Color Color
}
