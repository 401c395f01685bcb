package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var ErrStoreClosed = errors.New("store closed")

// writeOp is either a transactional write or, when done is set, a barrier
// that the writer releases once everything queued before it has run
type writeOp struct {
	fn   func(*sql.Tx) error
	done chan struct{}
}

// Store handles SQLite database operations with async writes
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan writeOp
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
	logger       *zap.Logger
}

// NewStore creates a new storage instance with async writer
func NewStore(dataSourceName string, devMode bool, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// foreign_keys is per connection, so it goes in the DSN for the pool
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL in development for concurrent readers while the writer runs
	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan writeOp, 1000),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.Named("storage"),
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// drain what is already queued, bounded by a deadline
			deadline := time.After(2 * time.Second)
			for {
				select {
				case op := <-s.writeChan:
					s.run(op)
				case <-deadline:
					return
				default:
					return
				}
			}

		case op := <-s.writeChan:
			s.run(op)
		}
	}
}

func (s *Store) run(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}
	// once degraded, queued writes are discarded
	if !s.healthStatus.Load() {
		return
	}
	s.executeWrite(op.fn)
}

// executeWrite runs a transactional write operation
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		s.degrade("failed to begin transaction", err)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		s.degrade("write operation failed", err)
		return
	}

	if err := tx.Commit(); err != nil {
		s.degrade("failed to commit", err)
	}
}

func (s *Store) degrade(msg string, err error) {
	s.logger.Error("storage degraded", zap.String("reason", msg), zap.Error(err))
	s.healthStatus.Store(false)
}

// enqueue hands a write to the writer goroutine. Writes are dropped when the
// store is degraded or the queue is full.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() {
		return
	}
	if s.ctx.Err() != nil {
		s.logger.Warn("store closed, dropping write", zap.String("op", what))
		return
	}

	select {
	case s.writeChan <- writeOp{fn: fn}:
	default:
		s.logger.Warn("storage write queue full, dropping write", zap.String("op", what))
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) error {
	s.enqueue("new_game", func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id, initial_fen,
			red_player_id, red_player_name,
			black_player_id, black_player_name,
			result, end_reason, start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.InitialFEN,
			record.RedPlayerID, record.RedPlayerName,
			record.BlackPlayerID, record.BlackPlayerName,
			record.Result, record.EndReason, record.StartTimeUTC,
		)
		return err
	})
	return nil
}

// RecordMove asynchronously records a move
func (s *Store) RecordMove(record MoveRecord) error {
	s.enqueue("move", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, move_text, fen_after_move, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.MoveText,
			record.FENAfterMove, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
	return nil
}

// DeleteUndoneMoves asynchronously deletes moves after a retraction
func (s *Store) DeleteUndoneMoves(gameID string, afterMoveNumber int) error {
	s.enqueue("undo", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND move_number > ?`, gameID, afterMoveNumber)
		return err
	})
	return nil
}

// RecordResult asynchronously sets or clears the result of a game
func (s *Store) RecordResult(gameID, result, reason string) error {
	s.enqueue("result", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET result = ?, end_reason = ? WHERE game_id = ?`, result, reason, gameID)
		return err
	})
	return nil
}

// DeleteGame asynchronously removes a game and its moves
func (s *Store) DeleteGame(gameID string) error {
	s.enqueue("delete_game", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, gameID)
		return err
	})
	return nil
}

// Sync blocks until every write queued before the call has been handled
func (s *Store) Sync(ctx context.Context) error {
	if s.ctx.Err() != nil {
		return ErrStoreClosed
	}
	done := make(chan struct{})
	select {
	case s.writeChan <- writeOp{done: done}:
	case <-s.ctx.Done():
		return ErrStoreClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-s.ctx.Done():
		// the writer drains on shutdown; give it the chance to reach us
		select {
		case <-done:
			return nil
		case <-time.After(2 * time.Second):
			return ErrStoreClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close gracefully closes the database connection
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			s.logger.Warn("storage writer shutdown timeout, some writes may be lost")
		}

		if s.db != nil {
			err = s.db.Close()
		}
	})
	return err
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}
