// README: Route-cost cache. The caller chooses the backing: Redis
// (RedisRouteCache) or an in-process map (NewMemoryRouteCache). There is
// no automatic fallback between them; an Engine built with a nil cache
// caches nothing.
package routing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// routeCache is the interface Engine depends on; satisfied by both
// RedisRouteCache and memoryRouteCache.
type routeCache interface {
	Get(startIdx, goalIdx int) (float64, bool)
	Put(startIdx, goalIdx int, cost float64)
	InvalidateAll()
}

type noopCache struct{}

func (noopCache) Get(int, int) (float64, bool) { return 0, false }
func (noopCache) Put(int, int, float64)        {}
func (noopCache) InvalidateAll()               {}

// memoryRouteCache is the dependency-free cache. Entries never expire and
// are only dropped by InvalidateAll.
type memoryRouteCache struct {
	mu sync.RWMutex
	m  map[[2]int]float64
}

// NewMemoryRouteCache returns a routeCache backed by a process-local map.
func NewMemoryRouteCache() routeCache {
	return &memoryRouteCache{m: make(map[[2]int]float64)}
}

func (c *memoryRouteCache) Get(startIdx, goalIdx int) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cost, ok := c.m[[2]int{startIdx, goalIdx}]
	return cost, ok
}

func (c *memoryRouteCache) Put(startIdx, goalIdx int, cost float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[[2]int{startIdx, goalIdx}] = cost
}

func (c *memoryRouteCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[[2]int]float64)
}

// RedisRouteCache caches route costs in Redis, keyed by snapped node-index
// pair, with a short TTL. Any edge update invalidates the whole generation
// by bumping a generation token rather than scanning/deleting keys.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration

	mu  sync.RWMutex
	gen int64
}

// NewRedisRouteCache wraps an existing Redis client. ttl is the per-entry
// expiry; a sensible default is a few seconds, since edge weights can
// change at any time via UpdateEdge*.
func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) key(startIdx, goalIdx int) string {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()
	return fmt.Sprintf("routing:cost:%d:%d:%d", gen, startIdx, goalIdx)
}

func (c *RedisRouteCache) Get(startIdx, goalIdx int) (float64, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	val, err := c.client.Get(ctx, c.key(startIdx, goalIdx)).Float64()
	if err != nil {
		return 0, false
	}
	return val, true
}

func (c *RedisRouteCache) Put(startIdx, goalIdx int, cost float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.key(startIdx, goalIdx), cost, c.ttl).Err()
}

// InvalidateAll bumps the generation token so every previously cached key
// becomes unreachable under the new key prefix; old keys simply expire via
// TTL rather than being scanned and deleted.
func (c *RedisRouteCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
}
