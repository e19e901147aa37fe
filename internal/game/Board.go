package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"
)

// Board owns the creature and the food. It is not safe for concurrent use;
// a Controller is its only writer.
type Board struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	body []Point
	food []Point
}

func NewBoard(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	b := &Board{
		cfg:    cfg,
		rng:    o.rng,
		logger: o.logger,
	}
	if err := b.Reset(); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset lays out a fresh creature and drops every food item, spawning one
// again when AutoFood is set.
func (b *Board) Reset() error {
	b.body = initialCreature(b.cfg)
	b.food = nil
	if !b.cfg.AutoFood {
		return nil
	}
	if _, err := b.SpawnFood(); err != nil {
		return fmt.Errorf("seed food: %w", err)
	}
	return nil
}

// initialCreature is a straight horizontal run with its head on the grid
// centre and its tail toward column 0. Validate guarantees it fits.
func initialCreature(cfg Config) []Point {
	center := cfg.center()
	body := make([]Point, 0, cfg.InitialLength)
	for i := uint16(0); i < cfg.InitialLength; i++ {
		body = append(body, Point{X: center.X - i, Y: center.Y})
	}
	return body
}

// Move advances the creature one cell and reports whether it ate.
//
// Every check runs before the body is touched, so on any error the board is
// exactly as it was before the call. The tail cell counts as free because it
// is vacated during the same tick.
func (b *Board) Move(direction Direction) (bool, error) {
	if len(b.body) == 0 {
		return false, ErrEmptyCreature
	}
	head, ok := b.cfg.step(b.body[0], direction)
	if !ok {
		return false, fmt.Errorf("%w: moving %s from %s", ErrWallCollision, direction, b.body[0])
	}

	last := len(b.body) - 1
	tail := b.body[last]
	if slices.Contains(b.body[:last], head) {
		return false, fmt.Errorf("%w: at %s", ErrSelfCollision, head)
	}

	copy(b.body[1:], b.body[:last])
	b.body[0] = head

	eaten := slices.Index(b.food, head)
	if eaten < 0 {
		return false, nil
	}
	b.body = append(b.body, tail)
	b.food = slices.Delete(b.food, eaten, eaten+1)

	if b.cfg.AutoFood {
		if _, err := b.SpawnFood(); err != nil {
			if !errors.Is(err, ErrBoardFull) {
				return true, err
			}
			b.logger.Debug("no room left for replacement food", "length", len(b.body))
		}
	}
	return true, nil
}

// SpawnFood places one food item on a uniformly random free cell.
//
// Sampling is rejection based and capped at spawnAttemptsPerCell draws per
// grid cell; a board with no free cell, or one so crowded that the cap runs
// out, yields ErrBoardFull.
func (b *Board) SpawnFood() (Point, error) {
	if b.cfg.cells()-len(b.body)-len(b.food) <= 0 {
		return Point{}, ErrBoardFull
	}
	attempts := b.cfg.cells() * spawnAttemptsPerCell
	for i := 0; i < attempts; i++ {
		p := Point{
			X: uint16(b.rng.Intn(int(b.cfg.Width))),
			Y: uint16(b.rng.Intn(int(b.cfg.Height))),
		}
		if !b.occupied(p) {
			b.food = append(b.food, p)
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w: no free cell after %d draws", ErrBoardFull, attempts)
}

// PlaceFood puts food on p, which must be inside the grid and free.
func (b *Board) PlaceFood(p Point) error {
	if !b.cfg.contains(int(p.X), int(p.Y)) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if b.occupied(p) {
		return fmt.Errorf("%w: %s", ErrCellOccupied, p)
	}
	b.food = append(b.food, p)
	return nil
}

func (b *Board) occupied(p Point) bool {
	return slices.Contains(b.body, p) || slices.Contains(b.food, p)
}

func (b *Board) Config() Config {
	return b.cfg
}

// Body returns a copy of the creature, head first.
func (b *Board) Body() []Point {
	return slices.Clone(b.body)
}

// Food returns a copy of the food positions.
func (b *Board) Food() []Point {
	return slices.Clone(b.food)
}

func (b *Board) Len() int {
	return len(b.body)
}

// GridView renders the current occupancy into a fresh dense grid.
func (b *Board) GridView() *GridView {
	g := newGridView(b.cfg.Width, b.cfg.Height)
	for _, p := range b.body {
		g.set(p, CellCreature)
	}
	for _, p := range b.food {
		g.set(p, CellFood)
	}
	return g
}
