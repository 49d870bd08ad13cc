package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joshua-takyi/nearnow/internal/models"
)

// Cache remembers resolved places so repeated searches and clicks do not hit
// the provider's quota.
type Cache interface {
	Get(ctx context.Context, key string) (Place, bool, error)
	Set(ctx context.Context, key string, place Place, ttl time.Duration) error
}

func QueryCacheKey(provider, query string) string {
	return fmt.Sprintf("geocode:%s:q:%s", provider, strings.ToLower(strings.Join(strings.Fields(query), " ")))
}

func PointCacheKey(provider string, at models.Coordinates) string {
	return fmt.Sprintf("geocode:%s:pt:%.5f,%.5f", provider, at.Latitude, at.Longitude)
}

type memoryEntry struct {
	place     Place
	expiresAt time.Time
}

// DefaultMemoryCacheSize bounds the in-process cache when no Redis is configured.
const DefaultMemoryCacheSize = 10000

type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheSize(DefaultMemoryCacheSize)
}

// NewMemoryCacheSize caps the cache at maxEntries; a non-positive value means
// DefaultMemoryCacheSize.
func NewMemoryCacheSize(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (Place, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Place{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return Place{}, false, nil
	}
	return entry.place, true, nil
}

// Set stores place; a non-positive ttl keeps it until restart or eviction.
// A full cache first drops expired entries, then the one closest to expiry.
func (c *MemoryCache) Set(ctx context.Context, key string, place Place, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.sweepLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictLocked()
		}
	}

	entry := memoryEntry{place: place}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// evictLocked removes the entry that expires first; entries without expiry go
// last.
func (c *MemoryCache) evictLocked() {
	var victim string
	var soonest time.Time
	found := false
	for key, entry := range c.entries {
		if !found {
			victim, soonest, found = key, entry.expiresAt, true
			continue
		}
		if entry.expiresAt.IsZero() {
			continue
		}
		if soonest.IsZero() || entry.expiresAt.Before(soonest) {
			victim, soonest = key, entry.expiresAt
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Place, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Place{}, false, nil
	}
	if err != nil {
		return Place{}, false, fmt.Errorf("failed to read cached place: %w", err)
	}

	var place Place
	if err := json.Unmarshal(raw, &place); err != nil {
		return Place{}, false, fmt.Errorf("failed to decode cached place: %w", err)
	}
	return place, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, place Place, ttl time.Duration) error {
	raw, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("failed to encode place: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache place: %w", err)
	}
	return nil
}
