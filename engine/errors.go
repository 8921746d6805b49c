package engine

import (
	"errors"
	"fmt"
)

// Error categories. Every failure the engine returns wraps exactly one of
// these, so callers can map it to a stable response without inspecting text.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrIllegalState  = errors.New("illegal state")
	ErrDeckExhausted = errors.New("deck exhausted")
)

var (
	ErrUnknownSession  = fmt.Errorf("%w: unknown game code", ErrNotFound)
	ErrNoActiveCard    = fmt.Errorf("%w: no active card to resolve", ErrNotFound)
	ErrInvalidOption   = fmt.Errorf("%w: chosen option is out of range", ErrInvalidInput)
	ErrNotYourTurn     = fmt.Errorf("%w: not your turn", ErrForbidden)
	ErrNotCreator      = fmt.Errorf("%w: only the creator may restart", ErrForbidden)
	ErrNotInProgress   = fmt.Errorf("%w: game is not in progress", ErrIllegalState)
	ErrAlreadyStarted  = fmt.Errorf("%w: game is no longer accepting players", ErrIllegalState)
	ErrRoomFull        = fmt.Errorf("%w: room is full", ErrIllegalState)
	ErrNoActivePlayers = fmt.Errorf("%w: no active players in the room", ErrIllegalState)
)
