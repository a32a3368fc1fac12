package cache

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client for the given address, or nil when addr is
// empty so callers can treat caching as optional.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, quote caching disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
