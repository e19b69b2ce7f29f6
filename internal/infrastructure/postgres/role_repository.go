package postgres

import (
	"context"
	"errors"

	domain "gamevault/backend/internal/domain/role"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoleRepository persists roles in PostgreSQL.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository constructs a repository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// Create inserts a new role and fills in the generated id.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `
INSERT INTO roles (name, created_at, updated_at)
VALUES ($1, $2, $3)
RETURNING id
`
	err := r.pool.QueryRow(ctx, query, role.Name, role.CreatedAt, role.UpdatedAt).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameExists
		}
		return err
	}
	return nil
}

// GetByID fetches a role by id.
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`
	role, err := scanRole(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// GetByName fetches a role using its unique name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `SELECT id, name, created_at, updated_at FROM roles WHERE name = $1`
	role, err := scanRole(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// List returns all roles sorted by name.
func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	const query = `SELECT id, name, created_at, updated_at FROM roles ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Update renames an existing role.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	const query = `UPDATE roles SET name = $2, updated_at = $3 WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, role.ID, role.Name, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameExists
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a role. Roles still referenced by users are protected by
// the foreign key and reported as in use.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM roles WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}
