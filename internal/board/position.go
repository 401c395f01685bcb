package board

import (
	"fmt"

	"xiangqi/internal/core"
)

const (
	Files = 9
	Ranks = 10
)

// Position is a single point on the board; X is the file index (a=0),
// Y the rank index (0 is Red's back rank)
type Position struct {
	X int
	Y int
}

// ParsePosition parses two characters: file a-i, rank 0-9
func ParsePosition(text string) (Position, error) {
	if len(text) != 2 {
		return Position{}, fmt.Errorf("%w: %q must be 2 characters", core.ErrInvalidPositionFormat, text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'i' || rank < '0' || rank > '9' {
		return Position{}, fmt.Errorf("%w: %q is out of range", core.ErrInvalidPositionFormat, text)
	}
	return Position{X: int(file - 'a'), Y: int(rank - '0')}, nil
}

func (p Position) Coordinate() (int, int) {
	return p.X, p.Y
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < Files && p.Y >= 0 && p.Y < Ranks
}

func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + p.X), byte('0' + p.Y)})
}

// InPalace reports whether p lies in the 3x3 palace of the given side
func (p Position) InPalace(c core.Color) bool {
	if p.X < 3 || p.X > 5 {
		return false
	}
	if c == core.ColorRed {
		return p.Y >= 0 && p.Y <= 2
	}
	return p.Y >= 7 && p.Y <= 9
}

// OwnSide reports whether p is on c's side of the river
func (p Position) OwnSide(c core.Color) bool {
	if c == core.ColorRed {
		return p.Y <= 4
	}
	return p.Y >= 5
}
