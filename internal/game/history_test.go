package game

import (
	"errors"
	"testing"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

func TestEncodeHistory(t *testing.T) {
	records := []MoveRecord{
		{Move: board.MustParseMove("a3a4")},
		{Move: board.MustParseMove("b2b9"), Captured: board.Piece{Type: board.Horse, Color: core.ColorBlack}},
		{Move: board.MustParseMove("a9b9"), Captured: board.Piece{Type: board.Cannon, Color: core.ColorRed}},
	}
	if got := EncodeHistory(records); got != "a3a4 b2b9-n a9b9-c" {
		t.Errorf("EncodeHistory = %q", got)
	}
	if got := EncodeHistory(nil); got != "" {
		t.Errorf("empty history = %q", got)
	}
}

func TestParseHistory(t *testing.T) {
	entries, err := ParseHistory("  a3a4 b2b9-n\ta9b9-c\n")
	if err != nil {
		t.Fatalf("ParseHistory: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[1].Move != board.MustParseMove("b2b9") || entries[1].Captured != board.Horse {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[0].Captured != board.None {
		t.Errorf("entry 0 captured = %v", entries[0].Captured)
	}

	if entries, err := ParseHistory(""); err != nil || len(entries) != 0 {
		t.Errorf("ParseHistory(\"\") = %v, %v", entries, err)
	}

	for _, bad := range []string{"a3a", "a3a4-", "a3a4-x", "a3a4+n", "a3a4-N", "j3a4", "a3a4n"} {
		if _, err := ParseHistory(bad); !errors.Is(err, core.ErrInvalidMoveFormat) {
			t.Errorf("ParseHistory(%q) = %v, want ErrInvalidMoveFormat", bad, err)
		}
	}
}
