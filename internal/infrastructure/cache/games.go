package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "gamevault/backend/internal/domain/game"
	usecase "gamevault/backend/internal/usecase/game"

	"github.com/redis/go-redis/v9"
)

const (
	catalogKey = "catalog"
	gameKeyFmt = "game:%d"
)

// Games caches catalog reads in Redis as JSON blobs with a fixed TTL.
// Every miss or transport failure falls back to the repository; the cache
// never becomes a source of truth.
type Games struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewGames constructs a catalog cache around an existing Redis client.
func NewGames(client *redis.Client, ttl time.Duration) *Games {
	return &Games{
		client: client,
		ttl:    ttl,
		prefix: "gamevault:",
	}
}

// Ensure Games implements the usecase cache interface.
var _ usecase.Cache = (*Games)(nil)

// GetCatalog fetches the cached catalog listing; (nil, nil) on miss.
func (c *Games) GetCatalog(ctx context.Context) ([]*domain.Game, error) {
	data, err := c.client.Get(ctx, c.prefix+catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var games []*domain.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SetCatalog stores the catalog listing.
func (c *Games) SetCatalog(ctx context.Context, games []*domain.Game) error {
	data, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+catalogKey, data, c.ttl).Err()
}

// GetGame fetches a cached game by id; (nil, nil) on miss.
func (c *Games) GetGame(ctx context.Context, id int64) (*domain.Game, error) {
	data, err := c.client.Get(ctx, c.gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var g domain.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// SetGame stores a single game.
func (c *Games) SetGame(ctx context.Context, g *domain.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.gameKey(g.ID), data, c.ttl).Err()
}

// Invalidate drops the catalog listing plus the given game entries.
func (c *Games) Invalidate(ctx context.Context, ids ...int64) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, c.prefix+catalogKey)
	for _, id := range ids {
		keys = append(keys, c.gameKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Games) gameKey(id int64) string {
	return c.prefix + fmt.Sprintf(gameKeyFmt, id)
}
