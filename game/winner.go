package game

import "fmt"

type LineKind int8

const (
	RowLine LineKind = iota
	ColumnLine
	MainDiagonal
	AntiDiagonal
)

func (k LineKind) String() string {
	switch k {
	case RowLine:
		return "row"
	case ColumnLine:
		return "column"
	case MainDiagonal:
		return "main diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	default:
		return fmt.Sprintf("LineKind(%d)", int8(k))
	}
}

// Line is a completed line. Index is the row or column number and is 0 for
// diagonals.
type Line struct {
	Kind  LineKind
	Index int
	Owner Player
}

// FindLine returns the first uniformly owned line, scanning rows top to
// bottom, columns left to right, the main diagonal, then the anti-diagonal.
// Only the first completed line is ever reported.
func FindLine(b Board) (Line, bool) {
	for r := 0; r < Size; r++ {
		if owner, ok := uniform(func(i int) Cell { return b[r][i] }); ok {
			return Line{Kind: RowLine, Index: r, Owner: owner}, true
		}
	}
	for c := 0; c < Size; c++ {
		if owner, ok := uniform(func(i int) Cell { return b[i][c] }); ok {
			return Line{Kind: ColumnLine, Index: c, Owner: owner}, true
		}
	}
	if owner, ok := uniform(func(i int) Cell { return b[i][i] }); ok {
		return Line{Kind: MainDiagonal, Owner: owner}, true
	}
	if owner, ok := uniform(func(i int) Cell { return b[i][Size-1-i] }); ok {
		return Line{Kind: AntiDiagonal, Owner: owner}, true
	}
	return Line{Owner: NoPlayer}, false
}

// Winner reports the owner of the first completed line, if any.
func Winner(b Board) (Player, bool) {
	line, ok := FindLine(b)
	return line.Owner, ok
}

func uniform(at func(int) Cell) (Player, bool) {
	first := at(0)
	if first == Empty {
		return NoPlayer, false
	}
	for i := 1; i < Size; i++ {
		if at(i) != first {
			return NoPlayer, false
		}
	}
	return first.Owner()
}
