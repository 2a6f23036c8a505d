package sovereign

import "errors"

// Rule violations. They reach callers wrapped in a *PlayError.
var (
	ErrFirstMoveNotWhite    = errors.New("the first move of the game must move a white piece")
	ErrNotYourArmy          = errors.New("army is neither owned nor controlled by the active player")
	ErrPieceNotFound        = errors.New("piece is not on its origin square")
	ErrIllegalDestination   = errors.New("piece cannot move there")
	ErrUnsupportedPromotion = errors.New("only a pawn promoting to king is supported")
	ErrNoOwnedArmy          = errors.New("active player does not own an army yet")
	ErrKingMissing          = errors.New("active player's king is not on the board")
	ErrNotControlled        = errors.New("army is not controlled by the active player")
	ErrOwnershipResolved    = errors.New("army ownership is already decided")
	ErrInvalidChoice        = errors.New("first move choice must be accept or reject")
)

// PlayError reports a move or action rejected by the rules. The position is
// unchanged when one is returned.
type PlayError struct {
	Reason error
	Move   string // move token or action that was rejected
}

func (e *PlayError) Error() string {
	if e.Move == "" {
		return e.Reason.Error()
	}
	return e.Move + ": " + e.Reason.Error()
}

func (e *PlayError) Unwrap() error { return e.Reason }

func playErr(move string, reason error) error {
	return &PlayError{Reason: reason, Move: move}
}
