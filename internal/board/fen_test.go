package board

import (
	"errors"
	"testing"

	"xiangqi/internal/core"
)

func TestStartingFEN(t *testing.T) {
	f, err := ParseFEN(StartingFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !f.Board.Equal(Initial()) {
		t.Error("starting FEN does not decode to the initial board")
	}
	if f.Turn != core.ColorRed || f.Halfmove != 0 || f.Fullmove != 1 {
		t.Errorf("counters = %v %d %d", f.Turn, f.Halfmove, f.Fullmove)
	}
	if got := EncodeFEN(Initial(), core.ColorRed, 0, 1); got != StartingFEN {
		t.Errorf("EncodeFEN = %q", got)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/P8/2P1P1P1P/1C5C1/9/RNBAKABNR b - - 1 1",
		"rCbakabnr/9/1c5c1/p1p1p1p2/8p/P8/2P1P1P1P/7C1/9/RNBAKABNR b - - 0 2",
		"rnb1kabnr/4a4/1c5c1/p1p1C1p2/8p/9/P1P1P1P1P/7C1/9/RNBAKABNR w - - 1 3",
		"4k4/9/9/9/9/9/9/9/9/4K4 b - - 17 42",
	}
	for _, fen := range fens {
		f, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := f.String(); got != fen {
			t.Errorf("round trip\n got %q\nwant %q", got, fen)
		}
	}
}

func TestParseFENRejects(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few rows", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/RNBAKABNR w - - 0 1"},
		{"too many rows", "rnbakabnr/9/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"short row", "rnbakabn/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"long row", "rnbakabnr1/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"unknown letter", "rnbqkabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"bad side", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR r - - 0 1"},
		{"missing fields", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"},
		{"negative halfmove", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - -1 1"},
		{"zero fullmove", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 0"},
		{"text counter", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - x 1"},
		{"zero digit", "rnbakabnr/09/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"empty", ""},
		{"two red generals", "4k4/9/9/9/9/9/9/9/4K4/3K5 w - - 0 1"},
		{"two black generals", "3k5/4k4/9/9/9/9/9/9/9/4K4 w - - 0 1"},
		{"adjacent digits", "rnbakabnr/45/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"},
		{"signed halfmove", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - +0 1"},
		{"signed fullmove", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 +1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFEN(tt.fen); !errors.Is(err, core.ErrInvalidFEN) {
				t.Errorf("error = %v, want ErrInvalidFEN", err)
			}
		})
	}
}
