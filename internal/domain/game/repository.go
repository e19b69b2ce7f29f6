package game

import "context"

// Repository defines persistence behaviours for catalog entries.
type Repository interface {
	Create(ctx context.Context, game *Game) error
	GetByID(ctx context.Context, id int64) (*Game, error)
	List(ctx context.Context) ([]*Game, error)
	ListOnSale(ctx context.Context) ([]*Game, error)
	Update(ctx context.Context, game *Game) error
	Delete(ctx context.Context, id int64) error
}
