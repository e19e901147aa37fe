package game

import (
	"fmt"
	"strings"
)

type Cell uint8

const (
	CellEmpty Cell = iota
	CellCreature
	CellFood
)

var cellRunes = map[Cell]rune{
	CellEmpty:    '.',
	CellCreature: '#',
	CellFood:     '*',
}

// GridView is a dense occupancy copy of a board, indexed by row (y) then
// column (x).
type GridView struct {
	Width  uint16
	Height uint16
	rows   [][]Cell
}

func newGridView(width, height uint16) *GridView {
	rows := make([][]Cell, height)
	for y := range rows {
		rows[y] = make([]Cell, width)
	}
	return &GridView{Width: width, Height: height, rows: rows}
}

func (g *GridView) set(p Point, c Cell) {
	g.rows[p.Y][p.X] = c
}

// At returns the cell under p.
func (g *GridView) At(p Point) (Cell, error) {
	if p.Y >= g.Height {
		return CellEmpty, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, p.Y, g.Height)
	}
	if p.X >= g.Width {
		return CellEmpty, fmt.Errorf("%w: column %d of %d", ErrOutOfBounds, p.X, g.Width)
	}
	return g.rows[p.Y][p.X], nil
}

// Count returns how many cells hold c.
func (g *GridView) Count(c Cell) int {
	n := 0
	for _, row := range g.rows {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// String draws the grid with the highest row first, so Up points up.
func (g *GridView) String() string {
	var sb strings.Builder
	for y := int(g.Height) - 1; y >= 0; y-- {
		for _, cell := range g.rows[y] {
			sb.WriteRune(cellRunes[cell])
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
