package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdRestore
	CmdMove
	CmdTry
	CmdUndo
	CmdResign
	CmdDraw
	CmdFEN
	CmdColor
	CmdVerbose
	CmdHistory
	CmdClose
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// LineReader is the input side of the terminal. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

type CLI struct {
	input   LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:   input,
		output:  output,
		theme:   ThemeOff,
		verbose: false,
	}
}

// GetCommand shows prompt and reads one command. End of input and Ctrl-C
// both read as quit.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	c.input.SetPrompt(prompt)
	line, err := c.input.Readline()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return &Command{Type: CmdQuit}, nil
		}
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return parseCommand(input), nil
}

func parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch strings.ToLower(cmd) {
	case "new":
		return &Command{Type: CmdNew, Args: args, Raw: input}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "restore":
		return &Command{Type: CmdRestore, Args: args}
	case "try":
		return &Command{Type: CmdTry, Args: args}
	case "undo":
		return &Command{Type: CmdUndo}
	case "resign":
		return &Command{Type: CmdResign, Args: args}
	case "draw":
		return &Command{Type: CmdDraw}
	case "fen":
		return &Command{Type: CmdFEN}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "close":
		return &Command{Type: CmdClose}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// anything else is taken as a move
		return &Command{Type: CmdMove, Args: []string{cmd}}
	}
}

// ReadLine prompts for a single free-form answer. Errors read as empty.
func (c *CLI) ReadLine(prompt string) string {
	c.input.SetPrompt(prompt)
	line, err := c.input.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error [%s]: %v", core.Code(err), err))
}

// DisplayGame renders the board of a game view, marking the last move
func (c *CLI) DisplayGame(v *core.GameView) {
	f, err := board.ParseFEN(v.FEN)
	if err != nil {
		c.ShowError(err)
		return
	}
	var last *board.Move
	if v.LastMove != nil {
		if m, err := board.ParseMove(v.LastMove.Move); err == nil {
			last = &m
		}
	}
	c.ShowMessage(c.renderBoard(f.Board, last))
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new [swap] [FEN]           - Start a new game, optionally from a position;
                               swap gives the first player Black
  resume <FEN> [| <history>] - Continue from a position, replaying moves
  restore <game id>          - Reload a saved game
  <move>                     - Make a move (e.g., h2e2, b0c2)
  try <move>                 - Make the move only if it is legal, quietly
  undo                       - Take back the last move
  resign [red|black]         - Resign, by default for the side to move
  draw                       - End the game as a draw
  fen                        - Show the current position
  history                    - Show the moves played
  color <theme>              - Set board color theme (off|red|wood|gray)
  verbose                    - Toggle detailed move information
  close                      - Put the current game away (a saved copy stays)
  quit/exit                  - Exit the program
  help/?                     - Show this help message

Squares are a file a-i and a rank 0-9; Red starts on ranks 0-4.`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Xiangqi!")
	c.ShowMessage("Commands: new, resume <FEN>, restore <id>, <move>, undo, resign, draw, history, help/?, quit/exit")
	c.ShowMessage("Example: 'resume " + board.StartingFEN + " | h2e2 h9g7' to continue an opening.")
	c.ShowMessage("")
}

// ShowGameHistory lists moves in numbered Red | Black pairs
func (c *CLI) ShowGameHistory(v *core.GameView) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", v.InitialFEN))

	moves := strings.Fields(v.History)
	if fields := strings.Fields(v.InitialFEN); len(fields) > 1 && fields[1] == "b" {
		moves = append([]string{"..."}, moves...)
	}
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		red := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, red, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, red))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", v.FEN))
	c.ShowMessage(fmt.Sprintf("Game state: %s", v.State))
}

// ShowMove reports the last move in verbose mode
func (c *CLI) ShowMove(v *core.GameView) {
	if !c.verbose || v.LastMove == nil {
		return
	}
	side := "Red"
	if v.LastMove.PlayerColor == core.ColorBlack.String() {
		side = "Black"
	}
	msg := fmt.Sprintf("%s: %s", side, v.LastMove.Move)
	if v.LastMove.Captured != "" {
		msg += fmt.Sprintf(" takes %s", v.LastMove.Captured)
	}
	c.ShowMessage(msg)
}

func (c *CLI) ShowGameOver(o *core.Outcome) {
	if o == nil {
		return
	}
	if o.Draw {
		c.ShowMessage(fmt.Sprintf("\nGame Over: %s", o.Reason))
	} else {
		c.ShowMessage(fmt.Sprintf("\nGame Over: %s wins (%s)", o.Winner.Name(), o.Reason))
	}
	c.ShowMessage("Use 'undo' to take back a capture, or start over with 'new' or 'resume'.")
}
