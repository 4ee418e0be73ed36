package model

import "errors"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrGameOver    = errors.New("game is over")

	ErrUnknownConnection = errors.New("unknown connection")
)
