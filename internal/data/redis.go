package data

import (
	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/libraryual/internal/config"
)

// NewRedisClient creates a Redis client for the configured address.
func NewRedisClient(c config.Config) *redis.Client {
	addr := c.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
