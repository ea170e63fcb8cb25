// Package cache is a plain pass-through in front of the flights query: a
// TTL'd redis key per filter, consulted before the store and refreshed
// best-effort after. There is no eviction design beyond the TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkolev/routecatalog/config"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: time.Duration(cfg.FlightsTTLSeconds) * time.Second,
	}
}

// GetFlights returns the cached serialized payload for the filter, with
// ok=false on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, origin, destination string) (string, bool, error) {
	payload, err := c.client.Get(ctx, flightsKey(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, origin, destination, payload string) error {
	return c.client.Set(ctx, flightsKey(origin, destination), payload, c.flightsTTL).Err()
}

func flightsKey(origin, destination string) string {
	return fmt.Sprintf("cache:flights:%s-%s", origin, destination)
}
