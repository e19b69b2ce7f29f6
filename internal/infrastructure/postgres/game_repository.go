package postgres

import (
	"context"
	"errors"

	domain "gamevault/backend/internal/domain/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameRepository persists catalog entries in PostgreSQL.
type GameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository constructs a repository.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// Create inserts a new game and fills in the generated id.
func (r *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	const query = `
INSERT INTO games (name, description, price, original_price, discount, on_sale, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`
	err := r.pool.QueryRow(ctx, query,
		game.Name,
		game.Description,
		game.Price,
		game.OriginalPrice,
		game.Discount,
		game.OnSale,
		game.CreatedAt,
		game.UpdatedAt,
	).Scan(&game.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameExists
		}
		return err
	}
	return nil
}

// GetByID fetches a game by id.
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	const query = `
SELECT id, name, description, price, original_price, discount, on_sale, created_at, updated_at
FROM games WHERE id = $1
`
	game, err := scanGame(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return game, nil
}

// List returns all games sorted by name.
func (r *GameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	const query = `
SELECT id, name, description, price, original_price, discount, on_sale, created_at, updated_at
FROM games
ORDER BY name ASC
`
	return r.queryGames(ctx, query)
}

// ListOnSale returns games currently flagged as on sale.
func (r *GameRepository) ListOnSale(ctx context.Context) ([]*domain.Game, error) {
	const query = `
SELECT id, name, description, price, original_price, discount, on_sale, created_at, updated_at
FROM games
WHERE on_sale = TRUE
ORDER BY name ASC
`
	return r.queryGames(ctx, query)
}

// Update writes game updates to the database.
func (r *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	const query = `
UPDATE games
SET name = $2,
    description = $3,
    price = $4,
    original_price = $5,
    discount = $6,
    on_sale = $7,
    updated_at = $8
WHERE id = $1
`
	ct, err := r.pool.Exec(ctx, query,
		game.ID,
		game.Name,
		game.Description,
		game.Price,
		game.OriginalPrice,
		game.Discount,
		game.OnSale,
		game.UpdatedAt,
	)
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

// Delete removes a game by id.
func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM games WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string) ([]*domain.Game, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Price,
		&g.OriginalPrice,
		&g.Discount,
		&g.OnSale,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
