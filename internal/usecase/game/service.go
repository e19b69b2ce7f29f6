package game

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "gamevault/backend/internal/domain/game"

	"go.uber.org/zap"
)

// Cache is an optional read-through cache for the catalog. A (nil, nil)
// return is a miss. Implementations must treat every entry as
// best-effort: the repository stays the source of truth.
type Cache interface {
	GetCatalog(ctx context.Context) ([]*domain.Game, error)
	SetCatalog(ctx context.Context, games []*domain.Game) error
	GetGame(ctx context.Context, id int64) (*domain.Game, error)
	SetGame(ctx context.Context, game *domain.Game) error
	Invalidate(ctx context.Context, ids ...int64) error
}

// Service encapsulates catalog use cases.
type Service struct {
	repo    domain.Repository
	cache   Cache
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs a game service. cache may be nil to run without
// one.
func NewService(repo domain.Repository, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// CreateInput contains the payload required for game creation.
type CreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateInput encapsulates partial game updates.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Create stores a new catalog entry after validation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Game, error) {
	g, err := domain.New(strings.TrimSpace(input.Name), input.Description, input.Price)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.invalidate(ctx, g.ID)
	s.logger.Info("game created", zap.Int64("game_id", g.ID), zap.String("name", g.Name))
	return g, nil
}

// List retrieves the full catalog, preferring the cache when present.
func (s *Service) List(ctx context.Context) ([]*domain.Game, error) {
	if s.cache != nil {
		if games, err := s.cache.GetCatalog(ctx); err != nil {
			s.logger.Debug("catalog cache read failed", zap.Error(err))
		} else if games != nil {
			return games, nil
		}
	}

	games, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, games); err != nil {
			s.logger.Debug("catalog cache write failed", zap.Error(err))
		}
	}
	return games, nil
}

// ListOnSale retrieves games currently on sale. Sale listings change with
// every discount mutation, so they bypass the cache.
func (s *Service) ListOnSale(ctx context.Context) ([]*domain.Game, error) {
	return s.repo.ListOnSale(ctx)
}

// Get fetches a game by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Game, error) {
	if s.cache != nil {
		if g, err := s.cache.GetGame(ctx, id); err != nil {
			s.logger.Debug("game cache read failed", zap.Int64("game_id", id), zap.Error(err))
		} else if g != nil {
			return g, nil
		}
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetGame(ctx, g); err != nil {
			s.logger.Debug("game cache write failed", zap.Int64("game_id", id), zap.Error(err))
		}
	}
	return g, nil
}

// Update applies partial updates to a game.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	g.UpdateDetails(input.Name, input.Description)
	if input.Price != nil {
		if err := g.UpdatePrice(*input.Price); err != nil {
			return nil, err
		}
	}

	return s.persist(ctx, g)
}

// ApplyDiscount sets a percentage discount on a game.
func (s *Service) ApplyDiscount(ctx context.Context, id int64, percentage int) (*domain.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.ApplyDiscount(percentage); err != nil {
		return nil, err
	}
	return s.persist(ctx, g)
}

// RemoveDiscount clears any discount and restores the original price.
func (s *Service) RemoveDiscount(ctx context.Context, id int64) (*domain.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.RemoveDiscount()
	return s.persist(ctx, g)
}

// UpdateSaleStatus toggles the on-sale flag.
func (s *Service) UpdateSaleStatus(ctx context.Context, id int64, onSale bool) (*domain.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.SetOnSale(onSale)
	return s.persist(ctx, g)
}

// Delete removes a game.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("game deleted", zap.Int64("game_id", id))
	return nil
}

func (s *Service) persist(ctx context.Context, g *domain.Game) (*domain.Game, error) {
	g.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidate(ctx, g.ID)
	return g, nil
}

func (s *Service) invalidate(ctx context.Context, ids ...int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Debug("cache invalidation failed", zap.Error(err))
	}
}
