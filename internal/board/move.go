package board

import (
	"fmt"

	"xiangqi/internal/core"
)

type Move struct {
	From Position
	To   Position
}

// ParseMove parses "<file><rank><file><rank>", e.g. "h2e2"
func ParseMove(text string) (Move, error) {
	if len(text) != 4 {
		return Move{}, fmt.Errorf("%w: %q must be 4 characters", core.ErrInvalidMoveFormat, text)
	}
	from, err := ParsePosition(text[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", core.ErrInvalidMoveFormat, text, err)
	}
	to, err := ParsePosition(text[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", core.ErrInvalidMoveFormat, text, err)
	}
	return Move{From: from, To: to}, nil
}

// MustParseMove is ParseMove for literals known to be well formed
func MustParseMove(text string) Move {
	m, err := ParseMove(text)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}
