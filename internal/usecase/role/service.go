package role

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "gamevault/backend/internal/domain/role"

	"go.uber.org/zap"
)

// Service encapsulates role management use cases.
type Service struct {
	repo    domain.Repository
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs a role service.
func NewService(repo domain.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// List retrieves all roles.
func (s *Service) List(ctx context.Context) ([]*domain.Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName fetches a role by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("role name is required")
	}
	return s.repo.GetByName(ctx, name)
}

// Create stores a new role.
func (s *Service) Create(ctx context.Context, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("role name is required")
	}

	now := s.nowFunc().UTC()
	role := &domain.Role{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role created", zap.Int64("role_id", role.ID), zap.String("name", name))
	return role, nil
}

// Update renames a role.
func (s *Service) Update(ctx context.Context, id int64, name string) (*domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("role name is required")
	}

	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role that is not assigned to any user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
