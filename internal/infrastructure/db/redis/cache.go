package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workplace-hq/workplace-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

const allPlacesKey = "places:all"

// PlaceCache is a read-through cache for place records backed by Redis.
// Values are JSON-encoded and expire after cacheTTL. A nil place with a
// nil error means the key is absent.
type PlaceCache struct {
	client *redis.Client
}

// NewPlaceCache creates a PlaceCache wrapping the given Redis client.
func NewPlaceCache(client *redis.Client) *PlaceCache {
	return &PlaceCache{client: client}
}

func (c *PlaceCache) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var place domain.Place
	if err := json.Unmarshal(raw, &place); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &place, nil
}

func (c *PlaceCache) SetPlace(ctx context.Context, place *domain.Place) error {
	raw, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(place.ID), raw, cacheTTL).Err()
}

func (c *PlaceCache) GetAll(ctx context.Context) ([]domain.Place, error) {
	raw, err := c.client.Get(ctx, allPlacesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return places, nil
}

func (c *PlaceCache) SetAll(ctx context.Context, places []domain.Place) error {
	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, allPlacesKey, raw, cacheTTL).Err()
}

// Invalidate drops both the single-place entry and the listing. Writes
// always go through here, so a stale listing never outlives a mutation.
func (c *PlaceCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id), allPlacesKey).Err()
}

func (c *PlaceCache) key(id string) string {
	return fmt.Sprintf("place:%s", id)
}
