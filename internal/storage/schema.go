package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID          string    `db:"game_id"`
	InitialFEN      string    `db:"initial_fen"`
	RedPlayerID     string    `db:"red_player_id"`
	RedPlayerName   string    `db:"red_player_name"`
	BlackPlayerID   string    `db:"black_player_id"`
	BlackPlayerName string    `db:"black_player_name"`
	Result          string    `db:"result"`     // "", "1-0", "0-1" or "1/2-1/2"
	EndReason       string    `db:"end_reason"` // empty while the game is open
	StartTimeUTC    time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID       int64     `db:"move_id"`
	GameID       string    `db:"game_id"`
	MoveNumber   int       `db:"move_number"`
	MoveText     string    `db:"move_text"` // history token, e.g. "b2b9-n"
	FENAfterMove string    `db:"fen_after_move"`
	PlayerColor  string    `db:"player_color"` // "w" or "b"
	MoveTimeUTC  time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	red_player_id TEXT NOT NULL DEFAULT '',
	red_player_name TEXT NOT NULL DEFAULT '',
	black_player_id TEXT NOT NULL DEFAULT '',
	black_player_name TEXT NOT NULL DEFAULT '',
	result TEXT NOT NULL DEFAULT '' CHECK(result IN ('', '1-0', '0-1', '1/2-1/2')),
	end_reason TEXT NOT NULL DEFAULT '',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move_text TEXT NOT NULL,
	fen_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_red_player ON games(red_player_id);
CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_player_id);
`
