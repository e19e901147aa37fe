package game

import "fmt"

// Direction is one of the four grid headings a creature can move in.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every heading in clockwise order starting from Up.
var Directions = []Direction{Up, Right, Down, Left}

// Opposite returns the heading pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	default:
		return Right
	}
}

func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

func (d Direction) IsHorizontal() bool {
	return !d.IsVertical()
}

// Delta is the one-cell offset for d. Up grows y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}
