package library

import "context"

// Repository defines persistence behaviours for library entries.
type Repository interface {
	Add(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, userID, gameID int64) (*Entry, error)
	ListAll(ctx context.Context) ([]*Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]*Entry, error)
	ListByGame(ctx context.Context, gameID int64) ([]*Entry, error)
	Remove(ctx context.Context, userID, gameID int64) error
}
