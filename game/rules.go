package game

import "fmt"

// Direction names the border the taken piece is pushed toward.
type Direction int8

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

// Directions lists every direction in enum order.
var Directions = [...]Direction{Top, Bottom, Left, Right}

func (d Direction) Valid() bool {
	return d >= Top && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// Move takes the piece at Position and pushes it toward Direction.
type Move struct {
	Position  Position
	Direction Direction
}

func NewMove(row, col int, d Direction) Move {
	return Move{Position: Position{Row: row, Col: col}, Direction: d}
}

func (m Move) String() string {
	return fmt.Sprintf("%s->%s", m.Position, m.Direction)
}

var borderPositions = scanBorder()

// scanBorder lists the first row, the last row, then the inner cells of the
// first and last columns.
func scanBorder() []Position {
	positions := make([]Position, 0, 4*(Size-1))
	for _, row := range []int{0, Size - 1} {
		for col := 0; col < Size; col++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	for _, col := range []int{0, Size - 1} {
		for row := 1; row < Size-1; row++ {
			positions = append(positions, Position{Row: row, Col: col})
		}
	}
	return positions
}

// BorderPositions returns every border cell in move enumeration order.
func BorderPositions() []Position {
	return append([]Position(nil), borderPositions...)
}

// IsTakeable reports whether p may pick up the cell at pos: it must be on the
// border and either empty or already owned by p.
func IsTakeable(b Board, pos Position, p Player) bool {
	if !p.Valid() || !pos.OnBorder() {
		return false
	}
	cell := b.Get(pos)
	return cell == Empty || cell == Owned(p)
}

// IsSlideable reports whether a piece taken at pos may be pushed toward d.
// Corners allow the two directions leading away from the corner, other
// border cells every direction except the border they sit on.
func IsSlideable(pos Position, d Direction) bool {
	if !d.Valid() || !pos.OnBorder() {
		return false
	}
	last := Size - 1
	if pos.IsCorner() {
		switch pos {
		case Position{Row: 0, Col: 0}:
			return d == Bottom || d == Right
		case Position{Row: 0, Col: last}:
			return d == Bottom || d == Left
		case Position{Row: last, Col: 0}:
			return d == Top || d == Right
		default:
			return d == Top || d == Left
		}
	}
	switch {
	case pos.Row == 0:
		return d != Top
	case pos.Row == last:
		return d != Bottom
	case pos.Col == 0:
		return d != Left
	default:
		return d != Right
	}
}

func IsLegalMove(b Board, m Move, p Player) bool {
	return IsTakeable(b, m.Position, p) && IsSlideable(m.Position, m.Direction)
}

// LegalMoves enumerates every legal move of p, by border scan order then
// direction order.
func LegalMoves(b Board, p Player) []Move {
	if !p.Valid() {
		return nil
	}
	moves := make([]Move, 0, 44)
	for _, pos := range borderPositions {
		if !IsTakeable(b, pos, p) {
			continue
		}
		for _, d := range Directions {
			if IsSlideable(pos, d) {
				moves = append(moves, Move{Position: pos, Direction: d})
			}
		}
	}
	return moves
}

// slide shifts the line between pos and the border toward pos by one cell and
// drops the piece taken at pos into the vacated border slot.
func (b *Board) slide(pos Position, d Direction) bool {
	if !IsSlideable(pos, d) {
		return false
	}
	piece := b.Get(pos)
	row, col := pos.Row, pos.Col
	switch d {
	case Left:
		for i := col; i > 0; i-- {
			b[row][i] = b[row][i-1]
		}
		b[row][0] = piece
	case Right:
		for i := col; i < Size-1; i++ {
			b[row][i] = b[row][i+1]
		}
		b[row][Size-1] = piece
	case Top:
		for i := row; i > 0; i-- {
			b[i][col] = b[i-1][col]
		}
		b[0][col] = piece
	case Bottom:
		for i := row; i < Size-1; i++ {
			b[i][col] = b[i+1][col]
		}
		b[Size-1][col] = piece
	}
	return true
}
