package library

import (
	"context"
	"time"

	authdomain "gamevault/backend/internal/domain/auth"
	gamedomain "gamevault/backend/internal/domain/game"
	domain "gamevault/backend/internal/domain/library"

	"go.uber.org/zap"
)

// Service encapsulates game ownership use cases.
type Service struct {
	repo    domain.Repository
	users   authdomain.UserRepository
	games   gamedomain.Repository
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs a library service.
func NewService(repo domain.Repository, users authdomain.UserRepository, games gamedomain.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		games:   games,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Add links a game to a user's library after confirming both exist.
func (s *Service) Add(ctx context.Context, userID, gameID int64) (*domain.Entry, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		UserID:    user.ID,
		GameID:    game.ID,
		UserName:  user.Name,
		GameName:  game.Name,
		CreatedAt: s.nowFunc().UTC(),
	}
	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("game added to library",
		zap.Int64("user_id", userID),
		zap.Int64("game_id", gameID),
	)
	return entry, nil
}

// Remove deletes a library entry.
func (s *Service) Remove(ctx context.Context, userID, gameID int64) error {
	if err := s.repo.Remove(ctx, userID, gameID); err != nil {
		return err
	}
	s.logger.Info("game removed from library",
		zap.Int64("user_id", userID),
		zap.Int64("game_id", gameID),
	)
	return nil
}

// Move swaps one owned game for another in a user's library.
func (s *Service) Move(ctx context.Context, userID, gameID, newGameID int64) (*domain.Entry, error) {
	if err := s.repo.Remove(ctx, userID, gameID); err != nil {
		return nil, err
	}
	return s.Add(ctx, userID, newGameID)
}

// Get fetches a single entry.
func (s *Service) Get(ctx context.Context, userID, gameID int64) (*domain.Entry, error) {
	return s.repo.Get(ctx, userID, gameID)
}

// ListAll returns every library entry.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	return s.repo.ListAll(ctx)
}

// ListByUser returns one user's library.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByGame returns the owners of one game.
func (s *Service) ListByGame(ctx context.Context, gameID int64) ([]*domain.Entry, error) {
	return s.repo.ListByGame(ctx, gameID)
}
