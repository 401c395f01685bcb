package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"xiangqi/internal/cli"
	"xiangqi/internal/core"
	"xiangqi/internal/service"
)

func runSession(t *testing.T, script string) (string, *CLIHandler, *service.Service) {
	t.Helper()
	svc, err := service.New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { svc.Close() })

	var out bytes.Buffer
	view := cli.New(cli.NewScannerReader(strings.NewReader(script), &out), &out)
	h := New(svc, view)
	h.Run()
	return out.String(), h, svc
}

func TestSessionToCapture(t *testing.T) {
	script := strings.Join([]string{
		"new",
		"Alice",
		"",
		"b2e2",
		"i6i5",
		"e2e6",
		"d9e8",
		"e6e9",
		"quit",
		"a3a4", // never reached
	}, "\n")
	out, h, svc := runSession(t, script)

	if !strings.Contains(out, "Game started") {
		t.Fatalf("no start message:\n%s", out)
	}
	if !strings.Contains(out, "Red wins (general captured)") {
		t.Errorf("no game over banner:\n%s", out)
	}

	v, err := svc.View(h.GameID())
	if err != nil {
		t.Fatal(err)
	}
	if v.Red.Name != "Alice" || v.Black.Name != "Black" {
		t.Errorf("players red %q black %q", v.Red.Name, v.Black.Name)
	}
	if v.History != "b2e2 i6i5 e2e6-p d9e8 e6e9-k" {
		t.Errorf("history = %q", v.History)
	}
}

func TestSessionErrorsAndUndo(t *testing.T) {
	script := strings.Join([]string{
		"h2e2",
		"resume rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1 | a3a4 i6i5",
		"a0a5",
		"zz",
		"b2b9",
		"undo",
		"fen",
		"history",
		"resign",
		"draw",
	}, "\n")
	out, h, svc := runSession(t, script)

	for _, want := range []string{
		"No active game",
		"Game resumed",
		"Error [INVALID_MOVE]",
		"Error [INVALID_MOVE_FORMAT]",
		"Move undone",
		"rnbakabnr/9/1c5c1/p1p1p1p2/8p/P8/2P1P1P1P/1C5C1/9/RNBAKABNR w - - 2 2",
		"1. a3a4 | i6i5",
		"Black wins (resignation)",
		"Error [ILLEGAL_STATE]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	v, err := svc.View(h.GameID())
	if err != nil {
		t.Fatal(err)
	}
	if v.Outcome == nil || v.Outcome.Loser != core.ColorRed {
		t.Errorf("outcome = %+v", v.Outcome)
	}
}

func TestSessionSettings(t *testing.T) {
	out, _, _ := runSession(t, "color neon\ncolor gray\nverbose\nhelp\nresign\nrestore x\n")
	for _, want := range []string{
		"Error [ILLEGAL_ARGUMENT]",
		"Color theme set to: gray",
		"Verbose mode: true",
		"Commands:",
		"No active game",
		"Error [ILLEGAL_STATE]", // restore without storage
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionSwapTryClose(t *testing.T) {
	script := strings.Join([]string{
		"try h2e2",
		"new swap",
		"Alice",
		"Bob",
		"try a0a5",
		"try zz",
		"try",
		"try h2e2",
		"history",
		"close",
		"undo",
	}, "\n")
	out, h, svc := runSession(t, script)

	for _, want := range []string{
		"No active game",
		"Black player name [Black]: ",
		"Red player name [Red]: ",
		"Not played: a0a5",
		"Not played: zz",
		"Usage: try <move>",
		"1. h2e2 | ...",
		"Game closed: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Error [") {
		t.Errorf("try must not report rejected moves as errors:\n%s", out)
	}
	if h.GameID() != "" {
		t.Errorf("game id after close = %q", h.GameID())
	}
	if strings.Count(out, "No active game") != 2 {
		t.Errorf("undo after close should find no game:\n%s", out)
	}

	// the closed game is gone from the registry
	id := strings.TrimSpace(out[strings.Index(out, "Game closed: ")+len("Game closed: "):])
	id, _, _ = strings.Cut(id, "\n")
	if _, err := svc.View(id); !errors.Is(err, core.ErrGameNotFound) {
		t.Errorf("View(%q) after close = %v", id, err)
	}
}

func TestSessionSwapSeats(t *testing.T) {
	_, h, svc := runSession(t, "new swap\nAlice\nBob\n")
	v, err := svc.View(h.GameID())
	if err != nil {
		t.Fatal(err)
	}
	if v.Black.Name != "Alice" || v.Red.Name != "Bob" {
		t.Errorf("players red %q black %q, want Bob and Alice", v.Red.Name, v.Black.Name)
	}
	if v.Turn != core.ColorRed.String() {
		t.Errorf("turn = %s", v.Turn)
	}
}
