package service

import (
	"xiangqi/internal/core"
	"xiangqi/internal/game"
)

// buildView snapshots g; lock held
func buildView(id string, g *game.Game) *core.GameView {
	v := &core.GameView{
		GameID:     id,
		InitialFEN: g.InitialFEN(),
		FEN:        g.FEN(),
		History:    g.History(),
		Turn:       g.Turn().String(),
		State:      g.State().String(),
		Red:        copyPlayer(g.RedPlayer()),
		Black:      copyPlayer(g.BlackPlayer()),
		RoundCount: g.RoundCount(),
	}

	if g.State() == core.StateFinished {
		o := g.Outcome()
		v.Outcome = &o
	}

	if rec, ok := g.LastRecord(); ok {
		v.LastMove = &core.MoveInfo{
			Move:        rec.Move.String(),
			PlayerColor: rec.Turn.String(),
		}
		if !rec.Captured.IsZero() {
			v.LastMove.Captured = rec.Captured.Type.String()
		}
	}
	return v
}

func copyPlayer(p *core.Player) *core.Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
