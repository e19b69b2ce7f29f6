package postgres

import (
	"context"
	"errors"
	"time"

	domain "gamevault/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists users in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user record and fills in the generated id.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (email, name, role_id, password_hash, removed, created_at, updated_at)
VALUES ($1, $2, $3, $4, FALSE, $5, $6)
RETURNING id
`
	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.RoleID,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by email. Soft-removed users are invisible.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
SELECT u.id, u.email, u.name, u.role_id, r.name, u.password_hash, u.removed, u.created_at, u.updated_at
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE u.email = $1 AND u.removed = FALSE
`
	row := r.pool.QueryRow(ctx, query, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
SELECT u.id, u.email, u.name, u.role_id, r.name, u.password_hash, u.removed, u.created_at, u.updated_at
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE u.id = $1 AND u.removed = FALSE
`
	row := r.pool.QueryRow(ctx, query, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns users filtered by the provided criteria.
func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	query := `
SELECT u.id, u.email, u.name, u.role_id, r.name, u.password_hash, u.removed, u.created_at, u.updated_at
FROM users u
JOIN roles r ON r.id = u.role_id
WHERE u.removed = FALSE
`
	var args []any
	if filter.RoleName != "" {
		query += "AND r.name = $1 "
		args = append(args, filter.RoleName)
	}
	query += "ORDER BY u.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Update modifies an existing user record.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
UPDATE users
SET email = $2, name = $3, role_id = $4, updated_at = $5
WHERE id = $1 AND removed = FALSE
`
	ct, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.RoleID,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete soft-removes a user so the account can be restored later.
func (r *UserRepository) Delete(ctx context.Context, id int64, removedAt time.Time) error {
	const query = `
UPDATE users
SET removed = TRUE, updated_at = $2
WHERE id = $1 AND removed = FALSE
`
	ct, err := r.pool.Exec(ctx, query, id, removedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword updates the stored password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	const query = `
UPDATE users
SET password_hash = $2, updated_at = $3
WHERE id = $1 AND removed = FALSE
`
	ct, err := r.pool.Exec(ctx, query, id, passwordHash, updatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.RoleID,
		&u.RoleName,
		&u.PasswordHash,
		&u.Removed,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
