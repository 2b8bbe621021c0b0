package game

import "errors"

// Error kinds. User-facing errors from this package wrap exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrRoomNotFound      = kindError(ErrNotFound, "Room not found")
	ErrPlayerNotFound    = kindError(ErrNotFound, "Player not found")
	ErrNeedFourPlayers   = kindError(ErrInvalidState, "Need 4 players to assign roles")
	ErrRoundComplete     = kindError(ErrInvalidState, "Round already complete, reset the room first")
	ErrGuessNotSubmitted = kindError(ErrInvalidState, "Guess not submitted yet")
	ErrNotMantri         = kindError(ErrForbidden, "Only Mantri can guess")

	// ErrNoChor means the room claims a pending guess but no player holds Chor.
	ErrNoChor = errors.New("no player holds the Chor role")
)

type gameError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &gameError{kind: kind, msg: msg}
}

func (e *gameError) Error() string { return e.msg }
func (e *gameError) Unwrap() error { return e.kind }

// Kind reports the error kind wrapped by err, or nil for internal errors.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidState, ErrForbidden} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
