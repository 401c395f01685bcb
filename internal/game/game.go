package game

import (
	"fmt"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
	"xiangqi/internal/rules"
)

// Game is a single xiangqi game: board, counters, the move stack and the
// two player slots. It has no internal locking; callers sharing a Game
// across goroutines must serialize access.
type Game struct {
	board    *board.Board
	turn     core.Color
	halfmove int
	fullmove int
	records  []MoveRecord

	// position play started from; history replays on top of it
	initial *board.FEN

	players []*core.Player // in the order they were added
	redSlot int

	state   core.State
	outcome core.Outcome
}

// New returns a game waiting for players, with an empty board
func New() *Game {
	return &Game{
		board:    board.New(),
		turn:     core.ColorRed,
		fullmove: 1,
		state:    core.StatePreparing,
	}
}

// NewFromFEN returns a game waiting for players that will start from fen
// instead of the standard opening
func NewFromFEN(fen string) (*Game, error) {
	f, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if !f.Board.HasGeneral(core.ColorRed) || !f.Board.HasGeneral(core.ColorBlack) {
		return nil, fmt.Errorf("%w: both generals are required to start a game", core.ErrInvalidFEN)
	}
	g := New()
	g.initial = f
	return g, nil
}

// Load builds a game already in progress from a FEN record, then replays
// history on top of it through MovePiece. Up to two players may be given,
// Red first. Nothing is returned unless every step succeeds.
//
// A position holding a single General loads as finished, won by the side
// that still has one.
func Load(fen, history string, players ...*core.Player) (*Game, error) {
	f, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	entries, err := ParseHistory(history)
	if err != nil {
		return nil, err
	}
	if len(players) > 2 {
		return nil, fmt.Errorf("%w: at most 2 players, got %d", core.ErrIllegalArgument, len(players))
	}

	g := New()
	for _, p := range players {
		if err := g.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	g.setPosition(f)
	g.state = core.StateInProgress

	red, black := f.Board.HasGeneral(core.ColorRed), f.Board.HasGeneral(core.ColorBlack)
	switch {
	case !red && !black:
		return nil, fmt.Errorf("%w: no general on the board", core.ErrInvalidFEN)
	case !red || !black:
		if len(entries) > 0 {
			return nil, fmt.Errorf("%w: history given for a finished position", core.ErrIllegalState)
		}
		winner := core.ColorRed
		if !red {
			winner = core.ColorBlack
		}
		g.finish(core.Outcome{Winner: winner, Loser: core.OppositeColor(winner), Reason: core.EndPosition})
		return g, nil
	}

	for i, e := range entries {
		if err := g.MovePiece(e.Move); err != nil {
			return nil, fmt.Errorf("history move %d: %w", i+1, err)
		}
	}
	return g, nil
}

func (g *Game) setPosition(f *board.FEN) {
	g.initial = &board.FEN{Board: f.Board.Clone(), Turn: f.Turn, Halfmove: f.Halfmove, Fullmove: f.Fullmove}
	g.board = f.Board.Clone()
	g.turn = f.Turn
	g.halfmove = f.Halfmove
	g.fullmove = f.Fullmove
	g.records = nil
}

// AddPlayer fills the next free slot. The first player added plays Red.
func (g *Game) AddPlayer(p *core.Player) error {
	if g.state != core.StatePreparing {
		return fmt.Errorf("%w: players can only join while preparing", core.ErrIllegalState)
	}
	if p == nil {
		return fmt.Errorf("%w: nil player", core.ErrIllegalArgument)
	}
	if len(g.players) >= 2 {
		return fmt.Errorf("%w: game already has 2 players", core.ErrIllegalState)
	}
	for _, existing := range g.players {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: player %s already joined", core.ErrIllegalArgument, p.ID)
		}
	}
	g.players = append(g.players, p)
	return nil
}

// ExchangePlayers swaps the Red and Black assignment
func (g *Game) ExchangePlayers() error {
	if g.state != core.StatePreparing {
		return fmt.Errorf("%w: players can only be exchanged while preparing", core.ErrIllegalState)
	}
	g.redSlot = 1 - g.redSlot
	return nil
}

// Start sets up the opening position, or the one given to NewFromFEN, and
// begins play
func (g *Game) Start() error {
	if g.state != core.StatePreparing {
		return fmt.Errorf("%w: game already started", core.ErrIllegalState)
	}
	if len(g.players) != 2 {
		return fmt.Errorf("%w: need 2 players to start, have %d", core.ErrIllegalState, len(g.players))
	}

	f := g.initial
	if f == nil {
		f = &board.FEN{Board: board.Initial(), Turn: core.ColorRed, Halfmove: 0, Fullmove: 1}
	}
	g.setPosition(f)
	g.state = core.StateInProgress
	return nil
}

// MovePiece validates and applies m for the side to move. On error nothing
// changes.
func (g *Game) MovePiece(m board.Move) error {
	if g.state != core.StateInProgress {
		return fmt.Errorf("%w: cannot move while %s", core.ErrIllegalState, g.state)
	}
	if err := rules.Validate(g.board, m, g.turn); err != nil {
		return err
	}

	rec := MoveRecord{
		Move:     m,
		Piece:    g.board.At(m.From),
		Captured: g.board.At(m.To),
		Turn:     g.turn,
		Halfmove: g.halfmove,
	}

	g.board.Set(m.To, rec.Piece)
	g.board.Clear(m.From)

	if rec.Captured.IsZero() {
		g.halfmove++
	} else {
		g.halfmove = 0
	}
	g.turn = core.OppositeColor(g.turn)
	if g.turn == core.ColorRed {
		g.fullmove++
	}
	g.records = append(g.records, rec)

	if rec.Captured.Type == board.General {
		g.finish(core.Outcome{Winner: rec.Turn, Loser: rec.Captured.Color, Reason: core.EndCapture})
	}
	return nil
}

// TryMove applies m if it is legal and reports whether it did
func (g *Game) TryMove(m board.Move) bool {
	return g.MovePiece(m) == nil
}

// Retract takes back the last move. A game finished by capturing a General
// goes back in progress; one finished any other way cannot be retracted.
func (g *Game) Retract() error {
	if len(g.records) == 0 {
		return fmt.Errorf("%w: no move to retract", core.ErrIllegalState)
	}
	switch g.state {
	case core.StateInProgress:
	case core.StateFinished:
		if g.outcome.Reason != core.EndCapture {
			return fmt.Errorf("%w: cannot retract after %s", core.ErrIllegalState, g.outcome.Reason)
		}
	default:
		return fmt.Errorf("%w: cannot retract while %s", core.ErrIllegalState, g.state)
	}

	rec := g.records[len(g.records)-1]
	g.records = g.records[:len(g.records)-1]

	g.board.Set(rec.Move.From, rec.Piece)
	if rec.Captured.IsZero() {
		g.board.Clear(rec.Move.To)
	} else {
		g.board.Set(rec.Move.To, rec.Captured)
	}
	if rec.Turn == core.ColorBlack {
		g.fullmove--
	}
	g.turn = rec.Turn
	g.halfmove = rec.Halfmove

	if g.state == core.StateFinished {
		g.state = core.StateInProgress
		g.outcome = core.Outcome{}
	}
	return nil
}

// Resign ends the game with c as the loser
func (g *Game) Resign(c core.Color) error {
	if g.state != core.StateInProgress {
		return fmt.Errorf("%w: cannot resign while %s", core.ErrIllegalState, g.state)
	}
	if c != core.ColorRed && c != core.ColorBlack {
		return fmt.Errorf("%w: unknown color %s", core.ErrIllegalArgument, c)
	}
	g.finish(core.Outcome{Winner: core.OppositeColor(c), Loser: c, Reason: core.EndResign})
	return nil
}

// Draw ends the game without a winner
func (g *Game) Draw() error {
	if g.state != core.StateInProgress {
		return fmt.Errorf("%w: cannot draw while %s", core.ErrIllegalState, g.state)
	}
	g.finish(core.Outcome{Draw: true, Reason: core.EndDraw})
	return nil
}

func (g *Game) finish(o core.Outcome) {
	g.state = core.StateFinished
	g.outcome = o
}
