package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EncodeBoard flattens the board row by row into Size*Size characters:
// '-' for Empty, '0' and '1' for the owning player.
func EncodeBoard(b Board) string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for r := range b {
		for _, cell := range b[r] {
			switch cell {
			case Empty:
				sb.WriteByte('-')
			default:
				sb.WriteByte('0' + byte(cell))
			}
		}
	}
	return sb.String()
}

func DecodeBoard(s string) (Board, error) {
	if len(s) != Size*Size {
		return Board{}, errors.Errorf("encoded board has %d cells, want %d", len(s), Size*Size)
	}
	rows := make([]string, Size)
	for r := range rows {
		rows[r] = s[r*Size : (r+1)*Size]
	}
	return ParseBoard(rows...)
}

// EncodeMove writes row, column and direction as three digits, e.g. "043"
// for (0,4)->Right.
func EncodeMove(m Move) string {
	return strconv.Itoa(m.Position.Row) + strconv.Itoa(m.Position.Col) + strconv.Itoa(int(m.Direction))
}

func DecodeMove(s string) (Move, error) {
	if len(s) != 3 {
		return Move{}, errors.Errorf("encoded move %q: want 3 digits", s)
	}
	var digits [3]int
	for i := range digits {
		if s[i] < '0' || s[i] > '9' {
			return Move{}, errors.Errorf("encoded move %q: non-digit %q", s, s[i])
		}
		digits[i] = int(s[i] - '0')
	}
	m := NewMove(digits[0], digits[1], Direction(digits[2]))
	if !m.Position.InBounds() || !m.Direction.Valid() {
		return Move{}, errors.Errorf("encoded move %q out of range", s)
	}
	return m, nil
}
