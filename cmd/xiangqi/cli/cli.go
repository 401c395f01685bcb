package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"xiangqi/internal/game"
	"xiangqi/internal/storage"
)

// Run is the entry point for the database maintenance commands
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, show")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "show":
		return runShow(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func openStore(fs *flag.FlagSet, args []string, path *string) (*storage.Store, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return nil, fmt.Errorf("database path required")
	}
	store, err := storage.NewStore(*path, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	store, err := openStore(fs, args, path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Delete only this game and its moves (optional)")
	force := fs.Bool("force", false, "Do not ask for confirmation")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	question := fmt.Sprintf("Delete %s and every game in it?", *path)
	if *gameID != "" {
		question = fmt.Sprintf("Delete game %s from %s?", *gameID, *path)
	}
	// only ask when someone is there to answer
	if !*force && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(out, "%s [y/N]: ", question)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	store, err := storage.NewStore(*path, false, nil)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if *gameID != "" {
		defer store.Close()
		return deleteGame(store, *gameID, out)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", *path)
	return nil
}

func deleteGame(store *storage.Store, gameID string, out io.Writer) error {
	if _, _, err := store.LoadGame(gameID); err != nil {
		return err
	}
	if err := store.DeleteGame(gameID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Sync(ctx); err != nil {
		return fmt.Errorf("failed to flush delete: %w", err)
	}
	if !store.IsHealthy() {
		return fmt.Errorf("failed to delete game %s", gameID)
	}

	fmt.Fprintf(out, "Game deleted: %s\n", gameID)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")

	store, err := openStore(fs, args, path)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tRed Player\tBlack Player\tResult\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		result := g.Result
		if result == "" {
			result = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			short(g.GameID),
			playerLabel(g.RedPlayerName, g.RedPlayerID),
			playerLabel(g.BlackPlayerName, g.BlackPlayerID),
			result,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

// runShow replays a stored game and prints where it stands
func runShow(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID (required)")

	store, err := openStore(fs, args, path)
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game id required")
	}

	rec, moves, err := store.LoadGame(*gameID)
	if err != nil {
		return err
	}

	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = m.MoveText
	}
	history := strings.Join(tokens, " ")

	g, err := game.Load(rec.InitialFEN, history)
	if err != nil {
		return fmt.Errorf("stored game does not replay: %w", err)
	}

	fmt.Fprintf(out, "Game:    %s\n", rec.GameID)
	fmt.Fprintf(out, "Red:     %s\n", playerLabel(rec.RedPlayerName, rec.RedPlayerID))
	fmt.Fprintf(out, "Black:   %s\n", playerLabel(rec.BlackPlayerName, rec.BlackPlayerID))
	fmt.Fprintf(out, "Start:   %s\n", rec.InitialFEN)
	fmt.Fprintf(out, "History: %s\n", g.History())
	fmt.Fprintf(out, "FEN:     %s\n", g.FEN())
	if rec.Result != "" {
		fmt.Fprintf(out, "Result:  %s (%s)\n", rec.Result, rec.EndReason)
	}
	fmt.Fprintln(out, g.Board().ASCII())
	return nil
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

func playerLabel(name, id string) string {
	switch {
	case name != "" && id != "":
		return fmt.Sprintf("%s (%s)", name, short(id))
	case name != "":
		return name
	case id != "":
		return short(id)
	default:
		return "-"
	}
}
