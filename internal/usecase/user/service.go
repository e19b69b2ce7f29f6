package user

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "gamevault/backend/internal/domain/auth"
	roledomain "gamevault/backend/internal/domain/role"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service provides user management use cases for registration and
// administrative workflows.
type Service struct {
	users   domain.UserRepository
	roles   roledomain.Repository
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService constructs a user service around the provided repositories.
func NewService(users domain.UserRepository, roles roledomain.Repository, logger *zap.Logger) *Service {
	return &Service{
		users:   users,
		roles:   roles,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Filter captures supported filters for listing users.
type Filter struct {
	RoleName string
}

// CreateInput defines the payload to create a new user.
type CreateInput struct {
	Email    string
	Name     string
	Password string
	RoleName string
}

// UpdateInput defines the payload to update a user.
type UpdateInput struct {
	Email    *string
	Name     *string
	RoleName *string
}

// Register creates a self-service account with the Common role.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return s.create(ctx, CreateInput{
		Email:    email,
		Name:     name,
		Password: password,
		RoleName: roledomain.Common,
	})
}

// Create persists a new user with the provided details. An empty role
// defaults to Common.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	if strings.TrimSpace(input.RoleName) == "" {
		input.RoleName = roledomain.Common
	}
	return s.create(ctx, input)
}

func (s *Service) create(ctx context.Context, input CreateInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)
	password := strings.TrimSpace(input.Password)
	if email == "" {
		return nil, errors.New("email is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters long")
	}

	role, err := s.roles.GetByName(ctx, strings.TrimSpace(input.RoleName))
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		RoleID:       role.ID,
		RoleName:     role.Name,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.Int64("user_id", user.ID),
		zap.String("role", role.Name),
	)
	return sanitizeUser(user), nil
}

// List returns users matching the supplied filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]*domain.User, error) {
	users, err := s.users.List(ctx, domain.UserFilter{
		RoleName: strings.TrimSpace(filter.RoleName),
	})
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// Get retrieves a single user by its identifier.
func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// GetByEmail retrieves a single user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Update modifies the persisted user.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return nil, errors.New("email is required")
		}
		user.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("name is required")
		}
		user.Name = name
	}
	if input.RoleName != nil {
		role, err := s.roles.GetByName(ctx, strings.TrimSpace(*input.RoleName))
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.RoleName = role.Name
	}

	user.UpdatedAt = s.nowFunc().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Delete soft-removes the target user. Tokens the user already holds stay
// valid until expiry, but lookups during future logins will miss.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id, s.nowFunc().UTC()); err != nil {
		return err
	}
	s.logger.Info("user removed", zap.Int64("user_id", id))
	return nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}

func sanitizeUsers(items []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeUser(item))
	}
	return out
}
