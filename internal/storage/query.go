package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"xiangqi/internal/core"
)

const gameColumns = `game_id, initial_fen,
		red_player_id, red_player_name,
		black_player_id, black_player_name,
		result, end_reason, start_time_utc`

func scanGame(row interface{ Scan(...any) error }) (GameRecord, error) {
	var g GameRecord
	err := row.Scan(
		&g.GameID, &g.InitialFEN,
		&g.RedPlayerID, &g.RedPlayerName,
		&g.BlackPlayerID, &g.BlackPlayerName,
		&g.Result, &g.EndReason, &g.StartTimeUTC,
	)
	return g, err
}

// QueryGames retrieves games with optional filtering. An empty or "*"
// filter matches everything; playerID matches either side.
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (red_player_id = ? OR black_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// LoadGame returns a game row and its moves in play order
func (s *Store) LoadGame(gameID string) (*GameRecord, []MoveRecord, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE game_id = ?`, gameID)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}

	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, move_text, fen_after_move, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.GameID, &m.MoveNumber, &m.MoveText,
			&m.FENAfterMove, &m.PlayerColor, &m.MoveTimeUTC); err != nil {
			return nil, nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return &g, moves, nil
}
