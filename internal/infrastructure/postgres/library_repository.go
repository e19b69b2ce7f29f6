package postgres

import (
	"context"
	"errors"

	domain "gamevault/backend/internal/domain/library"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LibraryRepository persists user game ownership in PostgreSQL.
type LibraryRepository struct {
	pool *pgxpool.Pool
}

// NewLibraryRepository constructs a repository.
func NewLibraryRepository(pool *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

const entryColumns = `
SELECT l.user_id, l.game_id, u.name, g.name, l.created_at
FROM user_game_library l
JOIN users u ON u.id = l.user_id
JOIN games g ON g.id = l.game_id
`

// Add links a game to a user's library.
func (r *LibraryRepository) Add(ctx context.Context, entry *domain.Entry) error {
	const query = `
INSERT INTO user_game_library (user_id, game_id, created_at)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, query, entry.UserID, entry.GameID, entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyOwned
		}
		return err
	}
	return nil
}

// Get fetches a single library entry.
func (r *LibraryRepository) Get(ctx context.Context, userID, gameID int64) (*domain.Entry, error) {
	query := entryColumns + `WHERE l.user_id = $1 AND l.game_id = $2`
	entry, err := scanEntry(r.pool.QueryRow(ctx, query, userID, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotOwned
		}
		return nil, err
	}
	return entry, nil
}

// ListAll returns every library entry.
func (r *LibraryRepository) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	query := entryColumns + `ORDER BY l.user_id, l.game_id`
	return r.queryEntries(ctx, query)
}

// ListByUser returns the entries owned by one user.
func (r *LibraryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Entry, error) {
	query := entryColumns + `WHERE l.user_id = $1 ORDER BY l.game_id`
	return r.queryEntries(ctx, query, userID)
}

// ListByGame returns the entries referencing one game.
func (r *LibraryRepository) ListByGame(ctx context.Context, gameID int64) ([]*domain.Entry, error) {
	query := entryColumns + `WHERE l.game_id = $1 ORDER BY l.user_id`
	return r.queryEntries(ctx, query, gameID)
}

// Remove deletes a library entry.
func (r *LibraryRepository) Remove(ctx context.Context, userID, gameID int64) error {
	const query = `DELETE FROM user_game_library WHERE user_id = $1 AND game_id = $2`
	ct, err := r.pool.Exec(ctx, query, userID, gameID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotOwned
	}
	return nil
}

func (r *LibraryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	if err := row.Scan(&e.UserID, &e.GameID, &e.UserName, &e.GameName, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
