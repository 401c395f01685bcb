package service

import (
	"fmt"
	"time"

	"xiangqi/internal/core"
	"xiangqi/internal/game"
	"xiangqi/internal/storage"
)

const (
	resultRedWins   = "1-0"
	resultBlackWins = "0-1"
	resultDraw      = "1/2-1/2"
)

func resultOf(o core.Outcome) string {
	switch {
	case o.Draw:
		return resultDraw
	case o.Winner == core.ColorRed:
		return resultRedWins
	case o.Winner == core.ColorBlack:
		return resultBlackWins
	default:
		return ""
	}
}

// persistGame records the game row and any moves it was loaded with
func (s *Service) persistGame(id string, g *game.Game) {
	if s.store == nil {
		return
	}

	record := storage.GameRecord{
		GameID:       id,
		InitialFEN:   g.InitialFEN(),
		StartTimeUTC: time.Now().UTC(),
	}
	if p := g.RedPlayer(); p != nil {
		record.RedPlayerID, record.RedPlayerName = p.ID, p.Name
	}
	if p := g.BlackPlayer(); p != nil {
		record.BlackPlayerID, record.BlackPlayerName = p.ID, p.Name
	}
	s.store.RecordNewGame(record)

	records := g.Records()
	if len(records) > 0 {
		// replay to recover the FEN after each loaded move
		replay, err := game.Load(g.InitialFEN(), "")
		if err != nil {
			return
		}
		for i, rec := range records {
			if err := replay.MovePiece(rec.Move); err != nil {
				return
			}
			s.persistMove(id, i+1, rec, replay.FEN())
		}
	}

	if g.State() == core.StateFinished {
		s.persistResult(id, g.Outcome())
	}
}

func (s *Service) persistMove(id string, number int, rec game.MoveRecord, fenAfter string) {
	if s.store == nil {
		return
	}
	s.store.RecordMove(storage.MoveRecord{
		GameID:       id,
		MoveNumber:   number,
		MoveText:     rec.Token(),
		FENAfterMove: fenAfter,
		PlayerColor:  rec.Turn.String(),
		MoveTimeUTC:  time.Now().UTC(),
	})
}

func (s *Service) persistResult(id string, o core.Outcome) {
	if s.store == nil {
		return
	}
	s.store.RecordResult(id, resultOf(o), o.Reason.String())
}

// applyStoredResult re-applies a termination that replay alone cannot
// reproduce
func applyStoredResult(g *game.Game, result, reason string) error {
	if result == "" || g.State() == core.StateFinished {
		return nil
	}

	var err error
	switch {
	case reason == core.EndDraw.String() && result == resultDraw:
		err = g.Draw()
	case reason == core.EndResign.String() && result == resultRedWins:
		err = g.Resign(core.ColorBlack)
	case reason == core.EndResign.String() && result == resultBlackWins:
		err = g.Resign(core.ColorRed)
	default:
		return fmt.Errorf("%w: stored result %q (%s) does not match the replayed game", core.ErrIllegalState, result, reason)
	}
	return err
}
