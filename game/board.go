package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Cell is either Empty or the id of the player owning the piece.
type Cell int8

const Empty Cell = -1

func Owned(p Player) Cell {
	return Cell(p)
}

// Owner reports the owning player of a non-empty cell.
func (c Cell) Owner() (Player, bool) {
	if c == Empty {
		return NoPlayer, false
	}
	return Player(c), true
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Owned(Player0):
		return "X"
	case Owned(Player1):
		return "O"
	default:
		return "?"
	}
}

// Position addresses a cell by row then column.
type Position struct {
	Row int
	Col int
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// OnBorder reports whether the position lies in the first or last row or column.
func (p Position) OnBorder() bool {
	return p.InBounds() && (p.Row == 0 || p.Row == Size-1 || p.Col == 0 || p.Col == Size-1)
}

func (p Position) IsCorner() bool {
	return p.InBounds() && (p.Row == 0 || p.Row == Size-1) && (p.Col == 0 || p.Col == Size-1)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is a value type: assigning or passing a Board copies every cell.
type Board [Size][Size]Cell

// NewBoard returns a board with every cell Empty.
func NewBoard() Board {
	var b Board
	for r := range b {
		for c := range b[r] {
			b[r][c] = Empty
		}
	}
	return b
}

// ParseBoard builds a board from one string per row. Cells are written as
// '.' or '-' for Empty, 'X' or '0' for Player0 and 'O' or '1' for Player1.
func ParseBoard(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, errors.Errorf("expected %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, errors.Errorf("row %d: expected %d cells, got %d", r, Size, len(row))
		}
		for c := 0; c < Size; c++ {
			cell, err := parseCell(row[c])
			if err != nil {
				return b, errors.Wrapf(err, "row %d col %d", r, c)
			}
			b[r][c] = cell
		}
	}
	return b, nil
}

// MustParseBoard is like ParseBoard but panics on malformed input.
func MustParseBoard(rows ...string) Board {
	b, err := ParseBoard(rows...)
	if err != nil {
		panic(err)
	}
	return b
}

func parseCell(ch byte) (Cell, error) {
	switch ch {
	case '.', '-':
		return Empty, nil
	case 'X', '0':
		return Owned(Player0), nil
	case 'O', '1':
		return Owned(Player1), nil
	default:
		return Empty, errors.Errorf("unknown cell %q", ch)
	}
}

func (b Board) Get(p Position) Cell {
	return b[p.Row][p.Col]
}

func (b *Board) set(p Position, c Cell) {
	b[p.Row][p.Col] = c
}

func (b Board) Clone() Board {
	return b
}

func (b Board) Equals(other Board) bool {
	return b == other
}

// Count tallies empty cells and the pieces of each player.
func (b Board) Count() (empty, player0, player1 int) {
	for r := range b {
		for _, cell := range b[r] {
			switch cell {
			case Empty:
				empty++
			case Owned(Player0):
				player0++
			case Owned(Player1):
				player1++
			}
		}
	}
	return empty, player0, player1
}

func (b Board) String() string {
	var sb strings.Builder
	for r := range b {
		for c, cell := range b[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
