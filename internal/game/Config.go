package game

import (
	"fmt"
	"time"
)

const (
	GameTickDuration = 120 * time.Millisecond
	initialDirection = Right
	// spawnAttemptsPerCell bounds food sampling at this many draws per grid cell.
	spawnAttemptsPerCell = 32
)

// Config is fixed for the lifetime of a Controller. Board and Controller each
// hold their own copy.
type Config struct {
	Width         uint16
	Height        uint16
	InitialLength uint16

	// WrapAround re-enters the grid from the opposite edge instead of
	// failing with ErrWallCollision.
	WrapAround bool

	// AutoFood keeps one food item on the board: one is spawned at start and
	// a replacement after every meal.
	AutoFood bool

	// FailOnReversal turns an attempted 180 degree turn into ErrSelfCollision
	// instead of ignoring it.
	FailOnReversal bool
}

// DefaultConfig is what the front ends start from before flags or the setup
// form override it.
func DefaultConfig() Config {
	return Config{
		Width:         40,
		Height:        20,
		InitialLength: 5,
		WrapAround:    false,
		AutoFood:      true,
	}
}

func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: grid is %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.InitialLength == 0 {
		return fmt.Errorf("%w: initial length must be at least 1", ErrInvalidConfig)
	}
	if c.InitialLength > c.center().X+1 {
		return fmt.Errorf("%w: length %d on a grid %d wide", ErrOversizedInitialCreature, c.InitialLength, c.Width)
	}
	if c.AutoFood && c.cells() <= int(c.InitialLength) {
		return fmt.Errorf("%w: no free cell for food on a %dx%d grid", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

func (c Config) center() Point {
	return Point{X: c.Width / 2, Y: c.Height / 2}
}

func (c Config) cells() int {
	return int(c.Width) * int(c.Height)
}

func (c Config) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(c.Width) && y < int(c.Height)
}

// step moves p one cell in d, wrapping when the config allows it. It reports
// false when the move would leave a walled grid.
func (c Config) step(p Point, d Direction) (Point, bool) {
	dx, dy := d.Delta()
	x, y := int(p.X)+dx, int(p.Y)+dy
	if c.contains(x, y) {
		return Point{X: uint16(x), Y: uint16(y)}, true
	}
	if !c.WrapAround {
		return p, false
	}
	w, h := int(c.Width), int(c.Height)
	return Point{X: uint16((x + w) % w), Y: uint16((y + h) % h)}, true
}
