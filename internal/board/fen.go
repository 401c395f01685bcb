package board

import (
	"fmt"
	"strconv"
	"strings"

	"xiangqi/internal/core"
)

// FEN is a decoded position record: board, side to move and counters
type FEN struct {
	Board    *Board
	Turn     core.Color
	Halfmove int
	Fullmove int
}

// ParseFEN decodes a FEN record into a fresh board. It never touches any
// existing state, so a failure leaves callers exactly as they were.
func ParseFEN(fen string) (*FEN, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", core.ErrInvalidFEN, len(parts))
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != Ranks {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", core.ErrInvalidFEN, Ranks, len(rows))
	}

	b := New()
	generals := map[core.Color]int{}
	for i, row := range rows {
		y := Ranks - 1 - i
		x := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '9' {
				if j > 0 && isDigit(row[j-1]) {
					return nil, fmt.Errorf("%w: adjacent empty counts in row %d", core.ErrInvalidFEN, i+1)
				}
				x += int(ch - '0')
				if x > Files {
					return nil, fmt.Errorf("%w: row %d has more than %d squares", core.ErrInvalidFEN, i+1, Files)
				}
				continue
			}
			pc, ok := ParsePiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unrecognized piece %q in row %d", core.ErrInvalidFEN, ch, i+1)
			}
			if pc.Type == General {
				generals[pc.Color]++
				if generals[pc.Color] > 1 {
					return nil, fmt.Errorf("%w: more than one %s general", core.ErrInvalidFEN, pc.Color.Name())
				}
			}
			if x >= Files {
				return nil, fmt.Errorf("%w: row %d has more than %d squares", core.ErrInvalidFEN, i+1, Files)
			}
			b.squares[x][y] = pc
			x++
		}
		if x != Files {
			return nil, fmt.Errorf("%w: row %d has %d squares", core.ErrInvalidFEN, i+1, x)
		}
	}

	f := &FEN{Board: b}
	switch parts[1] {
	case "w":
		f.Turn = core.ColorRed
	case "b":
		f.Turn = core.ColorBlack
	default:
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b'", core.ErrInvalidFEN)
	}

	// parts[2] and parts[3] are positional placeholders

	halfmove, err := parseCounter(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: halfmove clock %q", core.ErrInvalidFEN, parts[4])
	}
	fullmove, err := parseCounter(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("%w: fullmove number %q", core.ErrInvalidFEN, parts[5])
	}
	f.Halfmove = halfmove
	f.Fullmove = fullmove

	return f, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// parseCounter accepts unsigned decimal digits only
func parseCounter(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// EncodeFEN renders a board and counters as a FEN record
func EncodeFEN(b *Board, turn core.Color, halfmove, fullmove int) string {
	var sb strings.Builder
	for y := Ranks - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < Files; x++ {
			pc := b.squares[x][y]
			if pc.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if turn == core.ColorBlack {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s - - %d %d", side, halfmove, fullmove)
	return sb.String()
}

func (f *FEN) String() string {
	return EncodeFEN(f.Board, f.Turn, f.Halfmove, f.Fullmove)
}
