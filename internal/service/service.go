package service

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"xiangqi/internal/core"
	"xiangqi/internal/game"
	"xiangqi/internal/storage"
)

// Service owns every live game and serializes access to them. Engines are
// not safe for concurrent use on their own.
type Service struct {
	games    map[string]*game.Game
	mu       sync.RWMutex
	store    *storage.Store // nil if persistence disabled
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a new service instance with optional storage
func New(store *storage.Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		games:    make(map[string]*game.Game),
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("service"),
	}, nil
}

func (s *Service) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", core.ErrIllegalArgument, err)
	}
	return nil
}

// generateGameID must be called with the lock held
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// lookup must be called with the lock held
func (s *Service) lookup(gameID string) (*game.Game, error) {
	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return g, nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close shuts down the service and its store
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
