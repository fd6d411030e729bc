package delegate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// defaultCacheTTL bounds how long a cached peer address is trusted before
// it expires and TCPDelegate asks the Directory again, so a peer that
// moves (restarts on a new port, fails over) is rediscovered within a
// bounded window.
const defaultCacheTTL = 30 * time.Second

// Cache is a Redis-backed cache of system name to address. TCPDelegate
// checks it before its Directory and stores what the Directory returns, so
// foreign sends to the same peer in a tight loop pay the Consul round trip
// only once per TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a Cache dialing addr. ttl <= 0 uses defaultCacheTTL.
func NewCache(addr string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func cacheKey(system string) string {
	return "fluxion:peer:" + system
}

// Lookup returns the cached address for system, if present and unexpired.
func (c *Cache) Lookup(ctx context.Context, system string) (string, bool) {
	addr, err := c.client.Get(ctx, cacheKey(system)).Result()
	if err != nil {
		return "", false
	}
	return addr, true
}

// Store caches addr for system for the configured TTL.
func (c *Cache) Store(ctx context.Context, system, addr string) error {
	if err := c.client.Set(ctx, cacheKey(system), addr, c.ttl).Err(); err != nil {
		return fmt.Errorf("delegate: cache store %q: %w", system, err)
	}
	return nil
}

// Close releases the underlying Redis client's connections.
func (c *Cache) Close() error {
	return c.client.Close()
}
