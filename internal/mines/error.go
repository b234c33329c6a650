package mines

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("cell out of bounds")
	ErrNotRevealed          = errors.New("cell is not revealed")
)
