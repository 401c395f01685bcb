package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"xiangqi/internal/cli"
	"xiangqi/internal/core"
	"xiangqi/internal/service"
	"xiangqi/internal/transport"
)

var (
	_ transport.GameService = (*service.Service)(nil)
	_ transport.View        = (*cli.CLI)(nil)
)

const restoreTimeout = 5 * time.Second

type CLIHandler struct {
	svc    transport.GameService
	view   *cli.CLI
	gameID string
}

func New(svc transport.GameService, view *cli.CLI) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// GameID is the game commands currently act on
func (h *CLIHandler) GameID() string {
	return h.gameID
}

// Run reads and executes commands until quit or end of input
func (h *CLIHandler) Run() {
	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	if h.gameID == "" {
		return "> "
	}
	v, err := h.svc.View(h.gameID)
	if err != nil {
		return "> "
	}
	if v.State == core.StateFinished.String() {
		return "[over]> "
	}
	color, _ := core.ParseColor(v.Turn)
	return fmt.Sprintf("[%s]> ", color.Name())
}

// ProcessCommand executes one command and reports whether to keep going
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:

	case cli.CmdNew:
		h.handleNewGame(cmd.Args)

	case cli.CmdResume:
		h.handleResume(cmd.Raw)

	case cli.CmdRestore:
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: restore <game id>")
			return true
		}
		ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
		defer cancel()
		v, err := h.svc.RestoreGame(ctx, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.activate(v, "Game restored")

	case cli.CmdMove:
		if !h.requireGame() {
			return true
		}
		v, err := h.svc.MakeMove(h.gameID, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMove(v)
		h.view.DisplayGame(v)
		h.view.ShowGameOver(v.Outcome)

	case cli.CmdTry:
		if !h.requireGame() {
			return true
		}
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: try <move>")
			return true
		}
		ok, err := h.svc.TryMove(h.gameID, cmd.Args[0])
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		if !ok {
			h.view.ShowMessage(fmt.Sprintf("Not played: %s", cmd.Args[0]))
			return true
		}
		v, err := h.svc.View(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMove(v)
		h.view.DisplayGame(v)
		h.view.ShowGameOver(v.Outcome)

	case cli.CmdUndo:
		if !h.requireGame() {
			return true
		}
		v, err := h.svc.Retract(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage("Move undone")
		h.view.DisplayGame(v)

	case cli.CmdResign:
		if !h.requireGame() {
			return true
		}
		color, err := h.resignColor(cmd.Args)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		v, err := h.svc.Resign(h.gameID, color)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameOver(v.Outcome)

	case cli.CmdDraw:
		if !h.requireGame() {
			return true
		}
		v, err := h.svc.Draw(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowGameOver(v.Outcome)

	case cli.CmdFEN:
		if v, ok := h.current(); ok {
			h.view.ShowMessage(v.FEN)
		}

	case cli.CmdHistory:
		if v, ok := h.current(); ok {
			h.view.ShowGameHistory(v)
		}

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|red|wood|gray>")
			return true
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if h.gameID != "" {
			if v, err := h.svc.View(h.gameID); err == nil {
				h.view.DisplayGame(v)
			}
		}

	case cli.CmdClose:
		if !h.requireGame() {
			return true
		}
		if err := h.svc.DeleteGame(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Game closed: %s", h.gameID))
		h.gameID = ""

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) requireGame() bool {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new', 'resume <FEN>' or 'restore <id>'.")
		return false
	}
	return true
}

func (h *CLIHandler) current() (*core.GameView, bool) {
	if !h.requireGame() {
		return nil, false
	}
	v, err := h.svc.View(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return nil, false
	}
	return v, true
}

// resignColor defaults to the side to move
func (h *CLIHandler) resignColor(args []string) (core.Color, error) {
	text := ""
	if len(args) > 0 {
		text = args[0]
	} else {
		v, err := h.svc.View(h.gameID)
		if err != nil {
			return core.ColorNone, err
		}
		text = v.Turn
	}
	color, ok := core.ParseColor(text)
	if !ok {
		return core.ColorNone, fmt.Errorf("%w: unknown side %q (use red or black)", core.ErrIllegalArgument, text)
	}
	return color, nil
}

func (h *CLIHandler) askPlayer(side string) core.PlayerConfig {
	name := h.view.ReadLine(fmt.Sprintf("%s player name [%s]: ", side, side))
	if name == "" {
		name = side
	}
	return core.PlayerConfig{Name: name}
}

// handleNewGame accepts "new [swap] [FEN]". With swap the first player
// named takes Black.
func (h *CLIHandler) handleNewGame(args []string) {
	swap := len(args) > 0 && strings.EqualFold(args[0], "swap")
	if swap {
		args = args[1:]
	}

	req := core.CreateGameRequest{
		FEN:  strings.Join(args, " "),
		Swap: swap,
	}
	if swap {
		req.Red = h.askPlayer("Black")
		req.Black = h.askPlayer("Red")
	} else {
		req.Red = h.askPlayer("Red")
		req.Black = h.askPlayer("Black")
	}
	v, err := h.svc.CreateGame(req)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	h.activate(v, "Game started")
}

// handleResume accepts "resume <FEN> [| <history>]"
func (h *CLIHandler) handleResume(raw string) {
	_, rest, _ := strings.Cut(strings.TrimSpace(raw), " ")
	fen, history, _ := strings.Cut(rest, "|")
	fen = strings.TrimSpace(fen)
	if fen == "" {
		h.view.ShowMessage("Usage: resume <FEN> [| <history>]")
		return
	}

	req := core.ResumeGameRequest{
		FEN:     fen,
		History: strings.TrimSpace(history),
		Players: []core.PlayerConfig{{Name: "Red"}, {Name: "Black"}},
	}
	v, err := h.svc.ResumeGame(req)
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not resume the game: %w", err))
		return
	}
	h.activate(v, "Game resumed")
}

func (h *CLIHandler) activate(v *core.GameView, msg string) {
	h.gameID = v.GameID
	h.view.ShowMessage(fmt.Sprintf("%s: %s", msg, v.GameID))
	h.view.DisplayGame(v)
	h.view.ShowGameOver(v.Outcome)
}
