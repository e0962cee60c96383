package stage

import (
	"fmt"
	"strings"
)

// Coord is a cell address on the grid.
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the coordinate n cells away in direction d.
func (c Coord) Step(d Direction, n int) Coord {
	dx, dy := d.Delta()
	return c.Add(dx*n, dy*n)
}

// Direction is one of the four grid headings.
type Direction int

// The numeric order is significant: tile codes encode headings as base+dir.
const (
	DirNone  Direction = -1
	DirRight Direction = 0
	DirUp    Direction = 1
	DirLeft  Direction = 2
	DirDown  Direction = 3
)

// Directions lists the four headings in code order.
var Directions = [4]Direction{DirRight, DirUp, DirLeft, DirDown}

var (
	dirX = [4]int{1, 0, -1, 0}
	dirY = [4]int{0, -1, 0, 1}
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirDown
}

// Delta returns the unit step for the direction; (0, 0) for DirNone.
func (d Direction) Delta() (dx, dy int) {
	if !d.Valid() {
		return 0, 0
	}
	return dirX[d], dirY[d]
}

// Opposite returns the reversed heading.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return DirNone
	}
	return (d + 2) % 4
}

// Rotate advances the heading by 90 degrees counter-clockwise
// (Right -> Up -> Left -> Down -> Right).
func (d Direction) Rotate() Direction {
	if !d.Valid() {
		return DirNone
	}
	return (d + 1) % 4
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// ParseDirection converts a name ("right", "r", ...) into a Direction.
// Case is ignored.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "right", "r", "east", "e":
		return DirRight, nil
	case "up", "u", "north", "n":
		return DirUp, nil
	case "left", "l", "west", "w":
		return DirLeft, nil
	case "down", "d", "south", "s":
		return DirDown, nil
	}
	return DirNone, fmt.Errorf("unknown direction %q", s)
}
