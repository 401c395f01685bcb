package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"xiangqi/internal/board"
	"xiangqi/internal/core"
	"xiangqi/internal/game"
)

// CreateGame seats both players, starts the game and registers it
func (s *Service) CreateGame(req core.CreateGameRequest) (*core.GameView, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	var g *game.Game
	if req.FEN == "" {
		g = game.New()
	} else {
		var err error
		if g, err = game.NewFromFEN(req.FEN); err != nil {
			return nil, err
		}
	}

	if err := g.AddPlayer(core.NewPlayer(req.Red)); err != nil {
		return nil, err
	}
	if err := g.AddPlayer(core.NewPlayer(req.Black)); err != nil {
		return nil, err
	}
	if req.Swap {
		if err := g.ExchangePlayers(); err != nil {
			return nil, err
		}
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateGameID()
	s.games[id] = g
	s.persistGame(id, g)

	s.logger.Info("game created",
		zap.String("game_id", id),
		zap.String("red", g.RedPlayer().String()),
		zap.String("black", g.BlackPlayer().String()),
		zap.String("fen", g.FEN()))

	return buildView(id, g), nil
}

// ResumeGame registers a game loaded from a FEN position and optional
// move history
func (s *Service) ResumeGame(req core.ResumeGameRequest) (*core.GameView, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	players := make([]*core.Player, 0, len(req.Players))
	for _, pc := range req.Players {
		players = append(players, core.NewPlayer(pc))
	}

	g, err := game.Load(req.FEN, req.History, players...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.generateGameID()
	s.games[id] = g
	s.persistGame(id, g)

	s.logger.Info("game resumed",
		zap.String("game_id", id),
		zap.String("fen", g.FEN()),
		zap.Int("moves", len(g.Records())))

	return buildView(id, g), nil
}

// RestoreGame rebuilds a persisted game from its initial position and
// stored moves. A game already in memory is returned as is.
func (s *Service) RestoreGame(ctx context.Context, gameID string) (*core.GameView, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: persistence disabled", core.ErrIllegalState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.games[gameID]; ok {
		return buildView(gameID, g), nil
	}

	if err := s.store.Sync(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush storage: %w", err)
	}
	rec, moves, err := s.store.LoadGame(gameID)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = m.MoveText
	}

	var players []*core.Player
	if rec.RedPlayerID != "" {
		players = append(players, &core.Player{ID: rec.RedPlayerID, Name: rec.RedPlayerName})
		if rec.BlackPlayerID != "" {
			players = append(players, &core.Player{ID: rec.BlackPlayerID, Name: rec.BlackPlayerName})
		}
	}

	g, err := game.Load(rec.InitialFEN, strings.Join(tokens, " "), players...)
	if err != nil {
		return nil, fmt.Errorf("stored game %s does not replay: %w", gameID, err)
	}
	if err := applyStoredResult(g, rec.Result, rec.EndReason); err != nil {
		return nil, err
	}

	s.games[gameID] = g
	s.logger.Info("game restored", zap.String("game_id", gameID), zap.Int("moves", len(moves)))

	return buildView(gameID, g), nil
}

// MakeMove parses and applies a move in "<from><to>" form
func (s *Service) MakeMove(gameID, moveText string) (*core.GameView, error) {
	m, err := board.ParseMove(moveText)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	if err := g.MovePiece(m); err != nil {
		s.logger.Debug("move rejected", zap.String("game_id", gameID), zap.String("move", moveText), zap.Error(err))
		return nil, err
	}
	s.afterMove(gameID, g)

	return buildView(gameID, g), nil
}

// TryMove applies the move if it is legal. Only an unknown game is an error.
func (s *Service) TryMove(gameID, moveText string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return false, err
	}
	m, err := board.ParseMove(moveText)
	if err != nil {
		return false, nil
	}
	if !g.TryMove(m) {
		return false, nil
	}
	s.afterMove(gameID, g)
	return true, nil
}

// afterMove logs and persists the move just played; lock held
func (s *Service) afterMove(gameID string, g *game.Game) {
	rec, _ := g.LastRecord()
	s.logger.Debug("move applied",
		zap.String("game_id", gameID),
		zap.String("move", rec.Token()),
		zap.String("fen", g.FEN()))

	s.persistMove(gameID, len(g.Records()), rec, g.FEN())

	if g.State() == core.StateFinished {
		s.logger.Info("game finished",
			zap.String("game_id", gameID),
			zap.String("winner", g.Winner().Name()),
			zap.String("reason", g.Outcome().Reason.String()))
		s.persistResult(gameID, g.Outcome())
	}
}

// Retract takes back the last move
func (s *Service) Retract(gameID string) (*core.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	wasFinished := g.State() == core.StateFinished
	if err := g.Retract(); err != nil {
		return nil, err
	}

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, len(g.Records()))
		if wasFinished {
			s.store.RecordResult(gameID, "", "")
		}
	}
	s.logger.Info("move retracted", zap.String("game_id", gameID), zap.String("fen", g.FEN()))

	return buildView(gameID, g), nil
}

// Resign ends the game with color as the loser
func (s *Service) Resign(gameID string, color core.Color) (*core.GameView, error) {
	return s.finish(gameID, func(g *game.Game) error { return g.Resign(color) })
}

// Draw ends the game by agreement
func (s *Service) Draw(gameID string) (*core.GameView, error) {
	return s.finish(gameID, (*game.Game).Draw)
}

func (s *Service) finish(gameID string, end func(*game.Game) error) (*core.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	if err := end(g); err != nil {
		return nil, err
	}

	s.persistResult(gameID, g.Outcome())
	s.logger.Info("game finished",
		zap.String("game_id", gameID),
		zap.String("reason", g.Outcome().Reason.String()))

	return buildView(gameID, g), nil
}

// View returns a snapshot of a game
func (s *Service) View(gameID string) (*core.GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	return buildView(gameID, g), nil
}

// DeleteGame removes a game from memory; a persisted copy stays in storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}
	delete(s.games, gameID)
	s.logger.Info("game deleted", zap.String("game_id", gameID))
	return nil
}
