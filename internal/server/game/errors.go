package game

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrWrongPhase   = errors.New("event not allowed in this phase")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrBadToken     = errors.New("unknown player token")
	ErrSeatTaken    = errors.New("seat already taken")
	ErrClosed       = errors.New("game manager closed")
)
