package game

import "fmt"

// Point is a cell on the grid. X grows to the right, Y grows up.
type Point struct {
	X uint16
	Y uint16
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ManhattanDistance ignores wrap-around; a seam crossing shows up as a
// distance larger than one.
func ManhattanDistance(a, b Point) int {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsNear reports whether p and q share an edge without crossing a seam.
func (p Point) IsNear(q Point) bool {
	return ManhattanDistance(p, q) == 1
}

// DirectionFrom returns the heading of p as seen from q, assuming both lie on
// the same row or column. The result is naive: across a wrap seam it points
// the wrong way and callers flip it when the points are not near.
func (p Point) DirectionFrom(q Point) (Direction, bool) {
	switch {
	case p.X == q.X:
		if p.Y < q.Y {
			return Down, true
		}
		return Up, true
	case p.Y == q.Y:
		if p.X < q.X {
			return Left, true
		}
		return Right, true
	}
	return Up, false
}

// FlipY mirrors p vertically against a grid of the given height.
func (p Point) FlipY(height uint16) Point {
	return Point{X: p.X, Y: height - p.Y}
}

// travelDirection is the heading that carries q onto p in one move, with the
// wrap seam taken into account.
func travelDirection(p, q Point) (Direction, bool) {
	d, ok := p.DirectionFrom(q)
	if !ok {
		return d, false
	}
	if !p.IsNear(q) {
		d = d.Opposite()
	}
	return d, true
}
