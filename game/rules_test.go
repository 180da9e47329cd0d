package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomBoard(rng *rand.Rand) Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = Cell(rng.Intn(3) - 1)
		}
	}
	return b
}

func allPositions() []Position {
	positions := make([]Position, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			positions = append(positions, Position{Row: r, Col: c})
		}
	}
	return positions
}

func TestIsSlideable(t *testing.T) {
	t.Run("corners allow exactly the two directions leading away", func(t *testing.T) {
		expected := map[Position][]Direction{
			{Row: 0, Col: 0}: {Bottom, Right},
			{Row: 0, Col: 4}: {Bottom, Left},
			{Row: 4, Col: 0}: {Top, Right},
			{Row: 4, Col: 4}: {Top, Left},
		}
		for pos, allowed := range expected {
			var got []Direction
			for _, d := range Directions {
				if IsSlideable(pos, d) {
					got = append(got, d)
				}
			}
			require.ElementsMatch(t, allowed, got, "corner %s", pos)
		}
	})

	t.Run("edges allow every direction except their own border", func(t *testing.T) {
		for _, pos := range BorderPositions() {
			if pos.IsCorner() {
				continue
			}
			count := 0
			for _, d := range Directions {
				if IsSlideable(pos, d) {
					count++
				}
			}
			require.Equal(t, 3, count, "edge %s", pos)
		}
		require.False(t, IsSlideable(Position{Row: 0, Col: 2}, Top))
		require.False(t, IsSlideable(Position{Row: 4, Col: 1}, Bottom))
		require.False(t, IsSlideable(Position{Row: 3, Col: 0}, Left))
		require.False(t, IsSlideable(Position{Row: 2, Col: 4}, Right))
	})

	t.Run("interior and out of range positions never slide", func(t *testing.T) {
		for _, pos := range allPositions() {
			if pos.OnBorder() {
				continue
			}
			for _, d := range Directions {
				require.False(t, IsSlideable(pos, d), "interior %s", pos)
			}
		}
		require.False(t, IsSlideable(Position{Row: -1, Col: 0}, Bottom))
		require.False(t, IsSlideable(Position{Row: 0, Col: 5}, Left))
		require.False(t, IsSlideable(Position{Row: 0, Col: 2}, Direction(9)))
	})
}

func TestIsTakeable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	t.Run("interior cells are never takeable", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			b := randomBoard(rng)
			before := b
			for _, pos := range allPositions() {
				if pos.OnBorder() {
					continue
				}
				for _, p := range Players {
					require.False(t, IsTakeable(b, pos, p))
				}
			}
			require.Equal(t, before, b, "Board should not change")
		}
	})

	t.Run("border cells are takeable when empty or owned", func(t *testing.T) {
		b := MustParseBoard(
			"-01--",
			"-----",
			"-----",
			"-----",
			"-----",
		)
		require.True(t, IsTakeable(b, Position{Row: 0, Col: 0}, Player0))
		require.True(t, IsTakeable(b, Position{Row: 0, Col: 1}, Player0))
		require.False(t, IsTakeable(b, Position{Row: 0, Col: 2}, Player0))
		require.True(t, IsTakeable(b, Position{Row: 0, Col: 2}, Player1))
		require.False(t, IsTakeable(b, Position{Row: 0, Col: 1}, Player1))
	})

	t.Run("invalid players cannot take", func(t *testing.T) {
		b := NewBoard()
		require.False(t, IsTakeable(b, Position{Row: 0, Col: 0}, NoPlayer))
		require.False(t, IsTakeable(b, Position{Row: 0, Col: 0}, Player(2)))
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		moves := LegalMoves(NewBoard(), Player0)

		require.Len(t, moves, 4*2+12*3, "Corners give 2 moves and edges 3")
		require.Equal(t, []Move{
			NewMove(0, 0, Bottom),
			NewMove(0, 0, Right),
			NewMove(0, 1, Bottom),
			NewMove(0, 1, Left),
			NewMove(0, 1, Right),
		}, moves[:5], "Moves should follow border scan order then direction order")
		require.Equal(t, NewMove(4, 0, Top), moves[13])
		require.Equal(t, NewMove(3, 4, Left), moves[len(moves)-1])
	})

	t.Run("sound and complete against IsLegalMove", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 300; i++ {
			b := randomBoard(rng)
			for _, p := range Players {
				moves := LegalMoves(b, p)
				listed := make(map[Move]bool, len(moves))
				for _, m := range moves {
					require.True(t, IsLegalMove(b, m, p), "listed move %s must be legal", m)
					require.False(t, listed[m], "move %s listed twice", m)
					listed[m] = true
				}
				for _, pos := range allPositions() {
					for _, d := range Directions {
						m := Move{Position: pos, Direction: d}
						require.Equal(t, IsLegalMove(b, m, p), listed[m], "move %s", m)
					}
				}
			}
		}
	})

	t.Run("no moves for an invalid player", func(t *testing.T) {
		require.Empty(t, LegalMoves(NewBoard(), NoPlayer))
	})
}

func TestBorderPositions(t *testing.T) {
	positions := BorderPositions()

	require.Len(t, positions, 16)
	require.Equal(t, Position{Row: 0, Col: 0}, positions[0])
	require.Equal(t, Position{Row: 4, Col: 4}, positions[9])
	require.Equal(t, Position{Row: 1, Col: 0}, positions[10])
	require.Equal(t, Position{Row: 3, Col: 4}, positions[15])

	positions[0] = Position{Row: 2, Col: 2}
	require.Equal(t, Position{Row: 0, Col: 0}, BorderPositions()[0], "Callers should get a copy")
}
