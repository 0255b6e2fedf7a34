package app

import "errors"

var (
	ErrUnknownAction   = errors.New("unknown action kind")
	ErrUnknownPlayer   = errors.New("player not found")
	ErrAlreadyJoined   = errors.New("player already joined")
	ErrMatchFull       = errors.New("match is full")
	ErrGameInactive    = errors.New("game is not active")
	ErrNotYourTurn     = errors.New("actor does not hold the turn")
	ErrNoCurrentPlayer = errors.New("no player holds the turn")
	ErrInvalidSlot     = errors.New("slot index out of range")
	ErrEmptySlot       = errors.New("slot stack is empty")
	ErrCardNotFound    = errors.New("card not found in stated container")
	ErrInvalidTarget   = errors.New("target descriptor is not resolvable")
	ErrInvalidResource = errors.New("unknown resource kind")
	ErrNotYourForfeit  = errors.New("players may only forfeit themselves")
	ErrDeckTooSmall    = errors.New("not enough cards to reset the deck")
)
