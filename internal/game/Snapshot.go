package game

import "slices"

// Snapshot is a read-only copy of the creature and food at one tick.
type Snapshot struct {
	Body          []Point
	Food          []Point
	HeadDirection Direction
	TailDirection Direction
}

func newSnapshot(body, food []Point, heading Direction) Snapshot {
	s := Snapshot{
		Body:          slices.Clone(body),
		Food:          slices.Clone(food),
		HeadDirection: heading,
		TailDirection: heading,
	}
	if n := len(body); n > 1 {
		s.TailDirection = tailFacing(body[n-2], body[n-1])
	}
	return s
}

// Head returns the first body point. Snapshots taken from a Controller always
// have one.
func (s Snapshot) Head() Point {
	return s.Body[0]
}

// FlipY mirrors every point against height. Directions are kept as they are.
func (s Snapshot) FlipY(height uint16) Snapshot {
	out := s
	out.Body = slices.Clone(s.Body)
	out.Food = slices.Clone(s.Food)
	for i := range out.Body {
		out.Body[i] = out.Body[i].FlipY(height)
	}
	for i := range out.Food {
		out.Food[i] = out.Food[i].FlipY(height)
	}
	return out
}
