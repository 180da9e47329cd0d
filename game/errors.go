package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrTakeRejected: the position is off the border or holds an opponent piece.
	ErrTakeRejected = errors.New("take rejected")
	// ErrSlideRejected: the direction is not allowed from the position. The
	// take is rolled back before this is returned.
	ErrSlideRejected = errors.New("slide rejected")
	ErrGameOver      = errors.New("game is over")
)

// IllegalMoveError describes a rejected move. Reason is ErrTakeRejected or
// ErrSlideRejected.
type IllegalMoveError struct {
	Move   Move
	Player Player
	Reason error
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s by %s: %v", e.Move, e.Player, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return e.Reason
}
