package rules

import (
	"errors"
	"testing"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

func loadBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	f, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return f.Board
}

type moveCase struct {
	name   string
	fen    string
	move   string
	mover  core.Color
	reason error // nil when the move is legal
}

func runCases(t *testing.T, cases []moveCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fen := tc.fen
			if fen == "" {
				fen = board.StartingFEN
			}
			b := loadBoard(t, fen)
			before := b.Clone()
			err := Validate(b, board.MustParseMove(tc.move), tc.mover)

			if tc.reason == nil {
				if err != nil {
					t.Fatalf("Validate(%s) = %v, want legal", tc.move, err)
				}
			} else {
				if !errors.Is(err, core.ErrInvalidMove) {
					t.Fatalf("Validate(%s) = %v, want ErrInvalidMove", tc.move, err)
				}
				if !errors.Is(err, tc.reason) {
					t.Fatalf("Validate(%s) = %v, want reason %v", tc.move, err, tc.reason)
				}
			}
			if got := Legal(b, board.MustParseMove(tc.move), tc.mover); got != (tc.reason == nil) {
				t.Errorf("Legal(%s) = %v, disagrees with Validate", tc.move, got)
			}
			if !b.Equal(before) {
				t.Error("validation mutated the board")
			}
		})
	}
}

func TestPreconditions(t *testing.T) {
	runCases(t, []moveCase{
		{name: "empty source", move: "c2c9", mover: core.ColorRed, reason: ErrNoPiece},
		{name: "opponent piece", move: "i6i5", mover: core.ColorRed, reason: ErrNotYourTurn},
		{name: "own capture", move: "a0a3", mover: core.ColorRed, reason: ErrOwnCapture},
		{name: "null move", move: "a0a0", mover: core.ColorRed, reason: ErrNoDisplacement},
	})
}

const (
	// red general d0, black rook e1, black general e9
	exposedFEN = "4k4/9/9/9/9/9/9/9/4r4/3K5 w - - 0 1"
	// red elephant e2 and pawn e5, black pawn e4, generals on their home squares
	riverFEN = "4k4/9/9/9/4P4/4p4/9/4B4/9/4K4 w - - 0 1"
)

func TestGeneralAndAdvisor(t *testing.T) {
	runCases(t, []moveCase{
		{name: "general forward", move: "e0e1", mover: core.ColorRed},
		{name: "general onto own advisor", move: "e0d0", mover: core.ColorRed, reason: ErrOwnCapture},
		{name: "general diagonal", fen: exposedFEN, move: "d0e1", mover: core.ColorRed, reason: ErrGeometry},
		{name: "general leaves palace", fen: exposedFEN, move: "d0c0", mover: core.ColorRed, reason: ErrOutsidePalace},
		{name: "general two steps", fen: "4k4/9/9/9/9/9/9/9/9/4K4 w - - 0 1", move: "e0e2", mover: core.ColorRed, reason: ErrGeometry},
		{name: "black general leaves palace", fen: "3k5/9/9/9/9/9/9/9/9/4K4 b - - 0 1", move: "d9c9", mover: core.ColorBlack, reason: ErrOutsidePalace},
		{name: "advisor diagonal", move: "d0e1", mover: core.ColorRed},
		{name: "advisor straight", move: "d0d1", mover: core.ColorRed, reason: ErrGeometry},
		{name: "advisor to palace corner", fen: "4k4/9/9/9/9/9/9/9/4A4/4K4 w - - 0 1", move: "e1f2", mover: core.ColorRed, reason: nil},
		{name: "advisor out of palace corner", fen: "4k4/9/9/9/9/9/9/5A3/9/4K4 w - - 0 1", move: "f2g3", mover: core.ColorRed, reason: ErrOutsidePalace},
	})
}

// the general is allowed to step next to an attacker; there is no check rule
func TestNoCheckDetection(t *testing.T) {
	runCases(t, []moveCase{
		{name: "into rook line", fen: exposedFEN, move: "d0e0", mover: core.ColorRed},
	})
}

func TestElephant(t *testing.T) {
	runCases(t, []moveCase{
		{name: "diagonal two", move: "c0e2", mover: core.ColorRed},
		{name: "to edge", move: "c0a2", mover: core.ColorRed},
		{name: "one step", move: "c0d1", mover: core.ColorRed, reason: ErrGeometry},
		{name: "eye blocked", fen: "4k4/9/9/9/9/9/9/9/3p5/2B1K4 w - - 0 1", move: "c0e2", mover: core.ColorRed, reason: ErrBlocked},
		{name: "cross river", fen: "4k4/9/9/9/9/2B6/9/9/9/4K4 w - - 0 1", move: "c4e6", mover: core.ColorRed, reason: ErrRiver},
		{name: "stay home", fen: "4k4/9/9/9/9/2B6/9/9/9/4K4 w - - 0 1", move: "c4e2", mover: core.ColorRed},
		{name: "black cross river", fen: "4k4/9/9/9/2b6/9/9/9/9/4K4 b - - 0 1", move: "c5e3", mover: core.ColorBlack, reason: ErrRiver},
	})
}

func TestHorse(t *testing.T) {
	runCases(t, []moveCase{
		{name: "forward", move: "b0c2", mover: core.ColorRed},
		{name: "forward left", move: "b0a2", mover: core.ColorRed},
		{name: "leg blocked", move: "b0d1", mover: core.ColorRed, reason: ErrBlocked},
		{name: "straight", move: "b0b1", mover: core.ColorRed, reason: ErrGeometry},
		{name: "leg blocked with empty target", fen: "4k4/9/9/9/9/9/9/1p7/1N7/4K4 w - - 0 1", move: "b1c3", mover: core.ColorRed, reason: ErrBlocked},
		{name: "sideways leg clear", fen: "4k4/9/9/9/9/9/9/1p7/1N7/4K4 w - - 0 1", move: "b1d2", mover: core.ColorRed},
		{name: "capture", fen: "4k4/9/9/9/9/9/9/2p6/9/1N2K4 w - - 0 1", move: "b0c2", mover: core.ColorRed},
	})
}

func TestRook(t *testing.T) {
	runCases(t, []moveCase{
		{name: "up file", move: "a0a2", mover: core.ColorRed},
		{name: "blocked", move: "a0a5", mover: core.ColorRed, reason: ErrBlocked},
		{name: "diagonal", move: "a0b1", mover: core.ColorRed, reason: ErrGeometry},
		{name: "capture", fen: "4k4/9/9/9/9/p8/9/9/9/R3K4 w - - 0 1", move: "a0a4", mover: core.ColorRed},
		{name: "capture past piece", fen: "4k4/9/9/9/9/p8/9/9/9/R3K4 w - - 0 1", move: "a0a5", mover: core.ColorRed, reason: ErrBlocked},
		{name: "along rank", fen: "4k4/9/9/9/9/R8/9/9/9/4K4 w - - 0 1", move: "a4i4", mover: core.ColorRed},
	})
}

func TestCannon(t *testing.T) {
	runCases(t, []moveCase{
		{name: "sideways", move: "b2c2", mover: core.ColorRed},
		{name: "to centre", move: "h2e2", mover: core.ColorRed},
		{name: "capture over screen", move: "b2b9", mover: core.ColorRed},
		{name: "quiet move past piece", move: "b2b8", mover: core.ColorRed, reason: ErrBlocked},
		{name: "capture without screen", move: "b2b7", mover: core.ColorRed, reason: ErrScreen},
		{name: "capture over two", fen: "4k4/9/9/9/p8/p8/p8/9/9/C3K4 w - - 0 1", move: "a0a5", mover: core.ColorRed, reason: ErrScreen},
		{name: "knight shape", move: "b2c4", mover: core.ColorRed, reason: ErrGeometry},
	})
}

func TestPawn(t *testing.T) {
	runCases(t, []moveCase{
		{name: "forward", move: "a3a4", mover: core.ColorRed},
		{name: "black forward", move: "i6i5", mover: core.ColorBlack},
		{name: "sideways before river", move: "c3b3", mover: core.ColorRed, reason: ErrRiver},
		{name: "backward", move: "a3a2", mover: core.ColorRed, reason: ErrGeometry},
		{name: "two steps", move: "a3a5", mover: core.ColorRed, reason: ErrGeometry},
		{name: "diagonal", move: "a3b4", mover: core.ColorRed, reason: ErrGeometry},
		{name: "crossed sideways", fen: riverFEN, move: "e5d5", mover: core.ColorRed},
		{name: "crossed forward", fen: riverFEN, move: "e5e6", mover: core.ColorRed},
		{name: "crossed backward", fen: riverFEN, move: "e5e4", mover: core.ColorRed, reason: ErrGeometry},
		{name: "black crossed sideways", fen: riverFEN, move: "e4f4", mover: core.ColorBlack},
		{name: "black crossed backward", fen: riverFEN, move: "e4e5", mover: core.ColorBlack, reason: ErrGeometry},
	})
}
