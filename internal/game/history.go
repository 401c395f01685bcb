package game

import (
	"fmt"
	"strings"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

// MoveRecord holds what is needed to undo one move exactly
type MoveRecord struct {
	Move     board.Move
	Piece    board.Piece // the piece that moved
	Captured board.Piece // zero when nothing was taken
	Turn     core.Color  // side that moved
	Halfmove int         // clock before the move
}

// Token renders the record as a history token, e.g. "b2b9-n"
func (r MoveRecord) Token() string {
	if r.Captured.IsZero() {
		return r.Move.String()
	}
	return r.Move.String() + "-" + string(r.Captured.Type.Letter())
}

// HistoryEntry is one decoded history token. Captured is informational;
// replay derives captures from the board.
type HistoryEntry struct {
	Move     board.Move
	Captured board.PieceType
}

func EncodeHistory(records []MoveRecord) string {
	tokens := make([]string, len(records))
	for i, r := range records {
		tokens[i] = r.Token()
	}
	return strings.Join(tokens, " ")
}

// ParseHistory splits text on whitespace and decodes each token. Empty
// text is an empty history.
func ParseHistory(text string) ([]HistoryEntry, error) {
	fields := strings.Fields(text)
	entries := make([]HistoryEntry, 0, len(fields))
	for i, tok := range fields {
		e, err := parseToken(tok)
		if err != nil {
			return nil, fmt.Errorf("history token %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseToken(tok string) (HistoryEntry, error) {
	var e HistoryEntry
	switch len(tok) {
	case 4:
	case 6:
		letter := tok[5]
		t, ok := board.ParsePieceType(letter)
		if tok[4] != '-' || !ok || letter < 'a' || letter > 'z' {
			return e, fmt.Errorf("%w: bad capture suffix in %q", core.ErrInvalidMoveFormat, tok)
		}
		e.Captured = t
	default:
		return e, fmt.Errorf("%w: %q", core.ErrInvalidMoveFormat, tok)
	}

	m, err := board.ParseMove(tok[:4])
	if err != nil {
		return e, err
	}
	e.Move = m
	return e, nil
}
