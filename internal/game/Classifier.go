package game

import "slices"

// PartKind is the sprite family a body segment is drawn with.
type PartKind uint8

const (
	PartHead PartKind = iota
	PartTail
	PartBody
	PartCorner
)

func (k PartKind) String() string {
	switch k {
	case PartHead:
		return "head"
	case PartTail:
		return "tail"
	case PartBody:
		return "body"
	default:
		return "corner"
	}
}

type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "bottom-right"
	}
}

// FlipY is the corner seen in a vertically mirrored grid.
func (c Corner) FlipY() Corner {
	switch c {
	case TopLeft:
		return BottomLeft
	case TopRight:
		return BottomRight
	case BottomLeft:
		return TopLeft
	default:
		return TopRight
	}
}

// Part is one classified body segment. Facing is set for heads and tails,
// Vertical for straight body runs and Corner for corners.
type Part struct {
	Point    Point
	Kind     PartKind
	Facing   Direction
	Vertical bool
	Corner   Corner
}

func (p Part) FlipY(height uint16) Part {
	p.Point = p.Point.FlipY(height)
	if p.Kind == PartCorner {
		p.Corner = p.Corner.FlipY()
	}
	return p
}

// ClassifiedSnapshot is what a sprite renderer needs for one frame.
type ClassifiedSnapshot struct {
	Parts     []Part
	Food      []Point
	Direction Direction
}

// cornerTable is keyed by (incoming, outgoing): incoming is the heading that
// led from the tail-side neighbour onto the segment, outgoing the heading from
// the segment onto the head-side neighbour. Pairs missing here are straight.
var cornerTable = map[[2]Direction]Corner{
	{Up, Right}:   BottomLeft,
	{Up, Left}:    BottomRight,
	{Down, Right}: TopLeft,
	{Down, Left}:  TopRight,
	{Left, Up}:    TopLeft,
	{Left, Down}:  BottomLeft,
	{Right, Up}:   TopRight,
	{Right, Down}: BottomRight,
}

func segmentPart(incoming, outgoing Direction) Part {
	if incoming == outgoing || incoming == outgoing.Opposite() {
		return Part{Kind: PartBody, Vertical: incoming.IsVertical()}
	}
	return Part{Kind: PartCorner, Corner: cornerTable[[2]Direction{incoming, outgoing}]}
}

// tailFacing points from the second-to-last segment toward the tail, flipped
// back when the two sit on opposite sides of a wrap seam.
func tailFacing(preTail, tail Point) Direction {
	d, _ := travelDirection(tail, preTail)
	return d
}

// ClassifySegments tags every body point, head first. With flipY set the
// points are mirrored against height and corners remapped; head and tail
// facings are left alone because they already name on-screen headings once
// the grid is drawn with its top row first.
func ClassifySegments(body []Point, facing Direction, height uint16, flipY bool) []Part {
	parts := make([]Part, len(body))
	last := len(body) - 1
	for i, p := range body {
		var part Part
		switch i {
		case 0:
			part = Part{Kind: PartHead, Facing: facing}
		case last:
			part = Part{Kind: PartTail, Facing: tailFacing(body[i-1], p)}
		default:
			incoming, _ := travelDirection(p, body[i+1])
			outgoing, _ := travelDirection(body[i-1], p)
			part = segmentPart(incoming, outgoing)
		}
		part.Point = p
		if flipY {
			part = part.FlipY(height)
		}
		parts[i] = part
	}
	return parts
}

// Classify builds a full render frame from a raw body and food set.
func Classify(body, food []Point, facing Direction, height uint16, flipY bool) ClassifiedSnapshot {
	f := slices.Clone(food)
	if flipY {
		for i := range f {
			f[i] = f[i].FlipY(height)
		}
	}
	return ClassifiedSnapshot{
		Parts:     ClassifySegments(body, facing, height, flipY),
		Food:      f,
		Direction: facing,
	}
}
