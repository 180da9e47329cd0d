package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	require.Equal(t, NoPlayer, gs.Player(), "No side should have the turn yet")
	require.Equal(t, 0, gs.Moves)
	empty, p0, p1 := gs.Board.Count()
	require.Equal(t, Size*Size, empty)
	require.Zero(t, p0)
	require.Zero(t, p1)
	require.Empty(t, gs.LegalMoves(), "No moves without a side to move")
}

func TestExecute(t *testing.T) {
	t.Run("corner take slid right on an empty board", func(t *testing.T) {
		gs := NewGameState()

		err := gs.Execute(NewMove(0, 0, Right), Player0)

		require.NoError(t, err)
		require.Equal(t, [Size]Cell{Empty, Empty, Empty, Empty, Owned(Player0)}, gs.Board[0],
			"Taken piece should be pushed to the right border")
		require.Equal(t, Player1, gs.Current, "Turn should pass to the opponent")
		require.Equal(t, 1, gs.Moves)
	})

	t.Run("row and column shifts", func(t *testing.T) {
		tests := []struct {
			name   string
			before []string
			move   Move
			player Player
			after  []string
		}{
			{
				name:   "left column cell pushed right",
				before: []string{"-----", "-----", "-1010", "-----", "-----"},
				move:   NewMove(2, 0, Right),
				player: Player0,
				after:  []string{"-----", "-----", "10100", "-----", "-----"},
			},
			{
				name:   "top row cell pushed down",
				before: []string{"-----", "--0--", "--0--", "--1--", "--0--"},
				move:   NewMove(0, 2, Bottom),
				player: Player1,
				after:  []string{"--0--", "--0--", "--1--", "--0--", "--1--"},
			},
			{
				name:   "bottom row cell pushed up",
				before: []string{"--0--", "-----", "--1--", "--1--", "-----"},
				move:   NewMove(4, 2, Top),
				player: Player0,
				after:  []string{"--0--", "--0--", "-----", "--1--", "--1--"},
			},
			{
				name:   "right column cell pushed left",
				before: []string{"-----", "1--0-", "-----", "-----", "-----"},
				move:   NewMove(1, 4, Left),
				player: Player1,
				after:  []string{"-----", "11--0", "-----", "-----", "-----"},
			},
			{
				name:   "own piece retaken in place",
				before: []string{"0----", "1----", "-----", "-----", "-----"},
				move:   NewMove(0, 0, Bottom),
				player: Player0,
				after:  []string{"1----", "-----", "-----", "-----", "0----"},
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gs := NewGameState()
				gs.Board = MustParseBoard(tt.before...)

				err := gs.Execute(tt.move, tt.player)

				require.NoError(t, err)
				require.Equal(t, MustParseBoard(tt.after...), gs.Board)
				require.Equal(t, tt.player.Other(), gs.Current)
			})
		}
	})

	t.Run("rejected slide restores the taken cell", func(t *testing.T) {
		for _, before := range []string{"-", "0"} {
			gs := NewGameState()
			gs.Board = MustParseBoard(
				"01"+before+"10",
				"1---0",
				"0---1",
				"-----",
				"11-00",
			)
			gs.Current = Player0
			snapshot := gs

			err := gs.Execute(NewMove(0, 2, Top), Player0)

			require.ErrorIs(t, err, ErrSlideRejected)
			var illegal *IllegalMoveError
			require.True(t, errors.As(err, &illegal))
			require.Equal(t, NewMove(0, 2, Top), illegal.Move)
			require.Equal(t, Player0, illegal.Player)
			require.Equal(t, snapshot, gs, "State should be identical to before the attempt")
		}
	})

	t.Run("rejected take leaves the state unchanged", func(t *testing.T) {
		gs := NewGameState()
		gs.Board = MustParseBoard(
			"1----",
			"-----",
			"-----",
			"-----",
			"-----",
		)
		snapshot := gs

		require.ErrorIs(t, gs.Execute(NewMove(0, 0, Right), Player0), ErrTakeRejected,
			"Opponent pieces cannot be taken")
		require.ErrorIs(t, gs.Execute(NewMove(2, 2, Top), Player0), ErrTakeRejected,
			"Interior cells cannot be taken")
		require.ErrorIs(t, gs.Execute(NewMove(7, 0, Top), Player0), ErrTakeRejected,
			"Positions off the board cannot be taken")
		require.Equal(t, snapshot, gs)
	})

	t.Run("invalid player", func(t *testing.T) {
		gs := NewGameState()

		require.ErrorIs(t, gs.Execute(NewMove(0, 0, Right), Player(2)), ErrInvalidPlayer)
		require.ErrorIs(t, gs.Execute(NewMove(0, 0, Right), NoPlayer), ErrInvalidPlayer)
		require.Equal(t, NewGameState(), gs)
	})

	t.Run("no moves after a win", func(t *testing.T) {
		gs := NewGameState()
		gs.Board = MustParseBoard(
			"00000",
			"-----",
			"-----",
			"-----",
			"-----",
		)

		require.ErrorIs(t, gs.Execute(NewMove(4, 0, Top), Player1), ErrGameOver)
	})

	t.Run("pieces are conserved", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 300; i++ {
			board := randomBoard(rng)
			for _, p := range Players {
				for _, m := range LegalMoves(board, p) {
					gs := GameState{Board: board, Current: p}
					if gs.IsTerminal() {
						continue
					}
					wasEmpty := board.Get(m.Position) == Empty
					empty, p0, p1 := board.Count()

					require.NoError(t, gs.Execute(m, p))

					gotEmpty, gotP0, gotP1 := gs.Board.Count()
					taken := 0
					if wasEmpty {
						taken = 1
					}
					require.Equal(t, empty-taken, gotEmpty, "move %s", m)
					if p == Player0 {
						require.Equal(t, p0+taken, gotP0, "move %s", m)
						require.Equal(t, p1, gotP1, "move %s", m)
					} else {
						require.Equal(t, p1+taken, gotP1, "move %s", m)
						require.Equal(t, p0, gotP0, "move %s", m)
					}
				}
			}
		}
	})
}

func TestPlay(t *testing.T) {
	gs := NewGameState()
	gs.Current = Player1

	next, err := gs.Play(NewMove(4, 4, Left))

	require.NoError(t, err)
	require.Equal(t, NewGameState().Board, gs.Board, "Receiver should not change")
	require.Equal(t, Owned(Player1), next.Board[4][0])
	require.Equal(t, Player0, next.Player())
	require.Equal(t, 1, next.Moves)

	_, err = next.Play(NewMove(4, 0, Top))
	require.ErrorIs(t, err, ErrTakeRejected)
}
