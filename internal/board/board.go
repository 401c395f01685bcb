package board

import (
	"fmt"
	"strings"

	"xiangqi/internal/core"
)

const (
	StartingFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"
)

// Board is a mutable 9x10 grid indexed [file][rank]
type Board struct {
	squares [Files][Ranks]Piece
}

// New returns an empty board
func New() *Board {
	return &Board{}
}

// Initial returns the standard opening position
func Initial() *Board {
	b := New()
	back := []PieceType{Rook, Horse, Elephant, Advisor, General, Advisor, Elephant, Horse, Rook}
	for x, t := range back {
		b.squares[x][0] = Piece{Type: t, Color: core.ColorRed}
		b.squares[x][9] = Piece{Type: t, Color: core.ColorBlack}
	}
	for _, x := range []int{1, 7} {
		b.squares[x][2] = Piece{Type: Cannon, Color: core.ColorRed}
		b.squares[x][7] = Piece{Type: Cannon, Color: core.ColorBlack}
	}
	for x := 0; x < Files; x += 2 {
		b.squares[x][3] = Piece{Type: Pawn, Color: core.ColorRed}
		b.squares[x][6] = Piece{Type: Pawn, Color: core.ColorBlack}
	}
	return b
}

func (b *Board) At(p Position) Piece {
	return b.squares[p.X][p.Y]
}

func (b *Board) Set(p Position, pc Piece) {
	b.squares[p.X][p.Y] = pc
}

func (b *Board) Clear(p Position) {
	b.squares[p.X][p.Y] = Piece{}
}

func (b *Board) IsEmpty(p Position) bool {
	return b.squares[p.X][p.Y].IsZero()
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Equal compares square contents
func (b *Board) Equal(o *Board) bool {
	return b.squares == o.squares
}

// HasGeneral reports whether the General of color c is on the board
func (b *Board) HasGeneral(c core.Color) bool {
	want := Piece{Type: General, Color: c}
	for x := 0; x < Files; x++ {
		for y := 0; y < Ranks; y++ {
			if b.squares[x][y] == want {
				return true
			}
		}
	}
	return false
}

// step returns the unit direction from a to c when both lie on one rank or file
func step(a, c Position) (dx, dy int, ok bool) {
	switch {
	case a == c:
		return 0, 0, false
	case a.X == c.X:
		return 0, sign(c.Y - a.Y), true
	case a.Y == c.Y:
		return sign(c.X - a.X), 0, true
	default:
		return 0, 0, false
	}
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	if n > 0 {
		return 1
	}
	return 0
}

// FirstOccupiedBetween scans from a toward c and returns the nearest occupied
// square strictly between them. ok is false when the squares do not share a
// rank or file, or the segment is empty.
func (b *Board) FirstOccupiedBetween(a, c Position) (Position, bool) {
	dx, dy, ok := step(a, c)
	if !ok {
		return Position{}, false
	}
	for p := (Position{a.X + dx, a.Y + dy}); p != c; p = (Position{p.X + dx, p.Y + dy}) {
		if !b.IsEmpty(p) {
			return p, true
		}
	}
	return Position{}, false
}

// CountBetween counts occupied squares strictly between a and c on one line.
// It returns -1 when a and c are not on a shared rank or file.
func (b *Board) CountBetween(a, c Position) int {
	dx, dy, ok := step(a, c)
	if !ok {
		return -1
	}
	n := 0
	for p := (Position{a.X + dx, a.Y + dy}); p != c; p = (Position{p.X + dx, p.Y + dy}) {
		if !b.IsEmpty(p) {
			n++
		}
	}
	return n
}

// PathClear reports whether a and c share a rank or file with nothing between
func (b *Board) PathClear(a, c Position) bool {
	return b.CountBetween(a, c) == 0
}

// ASCII renders the board with rank 9 on top and the river marked
func (b *Board) ASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h i\n")

	for y := Ranks - 1; y >= 0; y-- {
		sb.WriteString(fmt.Sprintf("%d ", y))
		for x := 0; x < Files; x++ {
			sb.WriteString(b.squares[x][y].String())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%d\n", y))
		if y == 5 {
			sb.WriteString("  ~~~~~~~~~~~~~~~~~\n")
		}
	}
	sb.WriteString("  a b c d e f g h i")

	return sb.String()
}
