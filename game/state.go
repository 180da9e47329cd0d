package game

import "github.com/pkg/errors"

// GameState is the board, the side to move and the number of applied moves.
// It is a value type; copies never share cells.
type GameState struct {
	Board   Board
	Current Player
	Moves   int
}

// NewGameState returns an empty board where no side has the turn yet.
func NewGameState() GameState {
	return GameState{
		Board:   NewBoard(),
		Current: NoPlayer,
	}
}

func (gs GameState) Player() Player {
	return gs.Current
}

// LegalMoves returns the legal moves of the side to move.
func (gs GameState) LegalMoves() []Move {
	return LegalMoves(gs.Board, gs.Current)
}

func (gs GameState) Winner() (Player, bool) {
	return Winner(gs.Board)
}

func (gs GameState) IsTerminal() bool {
	_, ok := Winner(gs.Board)
	return ok
}

// Execute takes the piece for p and slides it as one operation. On any
// rejection the board is left exactly as it was. On success the turn passes
// to the opponent and the move counter advances.
func (gs *GameState) Execute(m Move, p Player) error {
	if !p.Valid() {
		return errors.Wrapf(ErrInvalidPlayer, "player id %d", int8(p))
	}
	if gs.IsTerminal() {
		return ErrGameOver
	}

	pos := m.Position
	if !IsTakeable(gs.Board, pos, p) {
		return &IllegalMoveError{Move: m, Player: p, Reason: ErrTakeRejected}
	}
	prev := gs.Board.Get(pos)
	gs.Board.set(pos, Owned(p))
	if !gs.Board.slide(pos, m.Direction) {
		gs.Board.set(pos, prev)
		return &IllegalMoveError{Move: m, Player: p, Reason: ErrSlideRejected}
	}

	gs.Current = p.Other()
	gs.Moves++
	return nil
}

// Play applies m for the side to move on a copy and returns the copy. The
// receiver is never modified.
func (gs GameState) Play(m Move) (GameState, error) {
	next := gs
	if err := next.Execute(m, gs.Current); err != nil {
		return gs, err
	}
	return next, nil
}
