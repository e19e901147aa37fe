package game

import "errors"

var (
	ErrOversizedInitialCreature = errors.New("initial creature does not fit on the grid")
	// ErrEmptyCreature means the body lost every segment; construction makes
	// it unreachable.
	ErrEmptyCreature = errors.New("creature has no segments")
	ErrWallCollision = errors.New("creature hit the wall")
	ErrSelfCollision = errors.New("creature ran into itself")

	ErrInvalidConfig = errors.New("invalid config")
	ErrBoardFull     = errors.New("no free cell left for food")
	ErrCellOccupied  = errors.New("cell is occupied")
	ErrOutOfBounds   = errors.New("cell is outside the grid")
)
