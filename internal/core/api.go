package core

// Request types

type CreateGameRequest struct {
	Red   PlayerConfig `json:"red"`
	Black PlayerConfig `json:"black"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=120"`
	Swap  bool         `json:"swap,omitempty"` // exchange colors before start
}

type ResumeGameRequest struct {
	FEN     string         `json:"fen" validate:"required,max=120"`
	History string         `json:"history,omitempty" validate:"omitempty,max=8000"`
	Players []PlayerConfig `json:"players,omitempty" validate:"max=2,dive"`
}

// Response types

type GameView struct {
	GameID     string    `json:"gameId"`
	InitialFEN string    `json:"initialFen"`
	FEN        string    `json:"fen"`
	History    string    `json:"history"`
	Turn       string    `json:"turn"` // "w" or "b"
	State      string    `json:"state"`
	Red        *Player   `json:"red,omitempty"`
	Black      *Player   `json:"black,omitempty"`
	RoundCount int       `json:"roundCount"`
	Outcome    *Outcome  `json:"outcome,omitempty"`
	LastMove   *MoveInfo `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Captured    string `json:"captured,omitempty"`
}
