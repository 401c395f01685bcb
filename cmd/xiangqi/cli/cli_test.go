package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"xiangqi/internal/core"
	"xiangqi/internal/service"
	"xiangqi/internal/storage"
)

func TestDatabaseCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	var out bytes.Buffer

	if err := Run([]string{"init", "-path", path}, &out); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), "Database initialized") {
		t.Errorf("init output: %q", out.String())
	}

	out.Reset()
	if err := Run([]string{"query", "-path", path}, &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out.String(), "No games found") {
		t.Errorf("empty query output: %q", out.String())
	}

	// play a short game through the service so the rows are real
	store, err := storage.NewStore(path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := service.New(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	v, err := svc.CreateGame(core.CreateGameRequest{
		Red:   core.PlayerConfig{Name: "Alice"},
		Black: core.PlayerConfig{Name: "Bob"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"a3a4", "i6i5", "b2b9"} {
		if _, err := svc.MakeMove(v.GameID, m); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Resign(v.GameID, core.ColorBlack); err != nil {
		t.Fatal(err)
	}
	if err := store.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	svc.Close()

	out.Reset()
	if err := Run([]string{"query", "-path", path, "-gameId", "*"}, &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	for _, want := range []string{"Alice", "Bob", "1-0", "Found 1 game(s)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("query output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := Run([]string{"show", "-path", path, "-gameId", v.GameID}, &out); err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"History: a3a4 i6i5 b2b9-n",
		"FEN:     rCbakabnr/9/1c5c1/p1p1p1p2/8p/P8/2P1P1P1P/7C1/9/RNBAKABNR b - - 0 2",
		"Result:  1-0 (resignation)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := Run([]string{"delete", "-path", path, "-gameId", v.GameID, "-force"}, &out); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if !strings.Contains(out.String(), "Game deleted: "+v.GameID) {
		t.Errorf("delete game output: %q", out.String())
	}
	if err := Run([]string{"show", "-path", path, "-gameId", v.GameID}, &out); !errors.Is(err, core.ErrGameNotFound) {
		t.Errorf("show after delete = %v, want ErrGameNotFound", err)
	}
	if err := Run([]string{"delete", "-path", path, "-gameId", v.GameID, "-force"}, &out); !errors.Is(err, core.ErrGameNotFound) {
		t.Errorf("second delete = %v, want ErrGameNotFound", err)
	}

	out.Reset()
	if err := Run([]string{"delete", "-path", path, "-force"}, &out); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out.String(), "Database deleted") {
		t.Errorf("delete output: %q", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	tests := [][]string{
		nil,
		{"vacuum"},
		{"init"},
		{"show", "-path", filepath.Join(t.TempDir(), "x.db")},
	}
	for _, args := range tests {
		if err := Run(args, &out); err == nil {
			t.Errorf("Run(%v) succeeded", args)
		}
	}
}
