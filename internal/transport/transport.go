package transport

import (
	"context"

	"xiangqi/internal/core"
)

// GameService is the game registry a transport drives
type GameService interface {
	CreateGame(req core.CreateGameRequest) (*core.GameView, error)
	ResumeGame(req core.ResumeGameRequest) (*core.GameView, error)
	RestoreGame(ctx context.Context, gameID string) (*core.GameView, error)
	MakeMove(gameID, move string) (*core.GameView, error)
	TryMove(gameID, move string) (bool, error)
	Retract(gameID string) (*core.GameView, error)
	Resign(gameID string, color core.Color) (*core.GameView, error)
	Draw(gameID string) (*core.GameView, error)
	View(gameID string) (*core.GameView, error)
	DeleteGame(gameID string) error
}

// View abstracts display/output operations
type View interface {
	DisplayGame(v *core.GameView)
	ShowMessage(msg string)
	ShowError(err error)
	ShowGameHistory(v *core.GameView)
	ShowMove(v *core.GameView)
	ShowGameOver(o *core.Outcome)
	ShowHelp()
	ReadLine(prompt string) string
}
