package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Controller is the entry point for a front end: it buffers direction changes,
// advances the Board once per Tick and hands out copies of the state.
//
// A Controller is single threaded. Whoever drives Tick must also be the only
// caller of SetDirection, Restart and the food helpers.
type Controller struct {
	cfg    Config
	board  *Board
	logger *log.Logger

	// current is the heading of the last committed tick, next the one the
	// upcoming tick will use.
	current Direction
	next    Direction
}

func NewController(cfg Config, opts ...Option) (*Controller, error) {
	o := buildOptions(opts)
	board, err := NewBoard(cfg, WithRand(o.rng), WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("new board: %w", err)
	}
	return &Controller{
		cfg:     cfg,
		board:   board,
		logger:  o.logger,
		current: initialDirection,
		next:    initialDirection,
	}, nil
}

// SetDirection queues d for the next tick. A 180 degree turn against the
// current heading is dropped, or rejected with ErrSelfCollision when the
// config asks for that. Either way nothing changes.
func (c *Controller) SetDirection(d Direction) error {
	if d == c.current.Opposite() {
		if c.cfg.FailOnReversal {
			return fmt.Errorf("%w: reversing from %s to %s", ErrSelfCollision, c.current, d)
		}
		c.logger.Debug("reversal ignored", "current", c.current, "requested", d)
		return nil
	}
	c.next = d
	return nil
}

// Tick commits the queued heading and moves the creature. It reports whether
// food was eaten; collisions come back as errors and end the round.
func (c *Controller) Tick() (bool, error) {
	c.current = c.next
	return c.board.Move(c.current)
}

// Restart puts the creature and headings back to their starting state.
func (c *Controller) Restart() error {
	c.current = initialDirection
	c.next = initialDirection
	if err := c.board.Reset(); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	c.logger.Debug("restarted", "width", c.cfg.Width, "height", c.cfg.Height, "length", c.cfg.InitialLength)
	return nil
}

func (c *Controller) CurrentDirection() Direction {
	return c.current
}

func (c *Controller) NextDirection() Direction {
	return c.next
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SpawnFood adds one food item at a random free cell. It is mostly useful
// when AutoFood is off.
func (c *Controller) SpawnFood() (Point, error) {
	return c.board.SpawnFood()
}

func (c *Controller) PlaceFood(p Point) error {
	return c.board.PlaceFood(p)
}

func (c *Controller) Snapshot() Snapshot {
	return newSnapshot(c.board.body, c.board.food, c.current)
}

// SnapshotFlipped is Snapshot with every y mirrored as height - y.
func (c *Controller) SnapshotFlipped() Snapshot {
	return c.Snapshot().FlipY(c.cfg.Height)
}

func (c *Controller) ClassifiedSnapshot() ClassifiedSnapshot {
	return Classify(c.board.body, c.board.food, c.current, c.cfg.Height, false)
}

func (c *Controller) ClassifiedSnapshotFlipped() ClassifiedSnapshot {
	return Classify(c.board.body, c.board.food, c.current, c.cfg.Height, true)
}

func (c *Controller) GridView() *GridView {
	return c.board.GridView()
}
