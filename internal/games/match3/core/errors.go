package core

import "errors"

var (
	ErrOutOfRange    = errors.New("cell out of range")
	ErrNotAdjacent   = errors.New("cells not adjacent")
	ErrBlankCell     = errors.New("blank cell")
	ErrEmptyCell     = errors.New("empty cell")
	ErrBusy          = errors.New("board is resolving")
	ErrNoMatch       = errors.New("swap makes no match")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidLayout = errors.New("invalid layout")
)
