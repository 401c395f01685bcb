package game

import (
	"xiangqi/internal/board"
	"xiangqi/internal/core"
)

func (g *Game) State() core.State {
	return g.state
}

// Turn is the color to move
func (g *Game) Turn() core.Color {
	return g.turn
}

// NextPlayer is the player assigned to the color to move, nil if the slot
// is empty
func (g *Game) NextPlayer() *core.Player {
	return g.playerFor(g.turn)
}

func (g *Game) RedPlayer() *core.Player {
	return g.playerFor(core.ColorRed)
}

func (g *Game) BlackPlayer() *core.Player {
	return g.playerFor(core.ColorBlack)
}

func (g *Game) playerFor(c core.Color) *core.Player {
	var slot int
	switch c {
	case core.ColorRed:
		slot = g.redSlot
	case core.ColorBlack:
		slot = 1 - g.redSlot
	default:
		return nil
	}
	if slot >= len(g.players) {
		return nil
	}
	return g.players[slot]
}

// PlayerColor returns the color assigned to the player with the given id
func (g *Game) PlayerColor(id string) (core.Color, bool) {
	for _, c := range []core.Color{core.ColorRed, core.ColorBlack} {
		if p := g.playerFor(c); p != nil && p.ID == id {
			return c, true
		}
	}
	return core.ColorNone, false
}

func (g *Game) PlayerCount() int {
	return len(g.players)
}

// Winner is ColorNone unless the game finished with a winner
func (g *Game) Winner() core.Color {
	return g.outcome.Winner
}

func (g *Game) Loser() core.Color {
	return g.outcome.Loser
}

func (g *Game) IsDraw() bool {
	return g.outcome.Draw
}

func (g *Game) Outcome() core.Outcome {
	return g.outcome
}

// RoundCount is the number of completed move pairs
func (g *Game) RoundCount() int {
	return g.fullmove - 1
}

func (g *Game) Halfmove() int {
	return g.halfmove
}

func (g *Game) Fullmove() int {
	return g.fullmove
}

func (g *Game) FEN() string {
	return board.EncodeFEN(g.board, g.turn, g.halfmove, g.fullmove)
}

// InitialFEN is the position play started from, or will start from while
// preparing
func (g *Game) InitialFEN() string {
	if g.initial == nil {
		return board.StartingFEN
	}
	return g.initial.String()
}

func (g *Game) History() string {
	return EncodeHistory(g.records)
}

// Records returns a copy of the move stack, oldest first
func (g *Game) Records() []MoveRecord {
	out := make([]MoveRecord, len(g.records))
	copy(out, g.records)
	return out
}

func (g *Game) LastRecord() (MoveRecord, bool) {
	if len(g.records) == 0 {
		return MoveRecord{}, false
	}
	return g.records[len(g.records)-1], true
}

// Board returns a copy of the current board
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}
