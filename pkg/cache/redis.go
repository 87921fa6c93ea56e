package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/coaching-conflict-api/pkg/config"
)

// Addr returns the host:port pair for cfg.
func Addr(cfg config.RedisConfig) string {
	return cfg.Host + ":" + strconv.Itoa(cfg.Port)
}

// NewRedis returns a Redis client for the batch cache after a successful ping.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", Addr(cfg), err)
	}

	return client, nil
}
