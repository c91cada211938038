package data

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"bess-dashboard/internal/model"
)

// CacheEntry is one memoized revenue table.
type CacheEntry struct {
	Table    *model.RevenueTable
	StoredAt time.Time
}

// ResultCache memoizes revenue tables for the life of a dashboard session.
// Entries never expire; the session clears the cache when its inputs change.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
}

func NewResultCache() *ResultCache {
	return &ResultCache{store: make(map[string]*CacheEntry)}
}

// Get retrieves a memoized table if available
func (c *ResultCache) Get(key string) (*model.RevenueTable, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	return entry.Table, true
}

// Set stores a table in the cache
func (c *ResultCache) Set(key string, table *model.RevenueTable) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Table:    table,
		StoredAt: time.Now(),
	}
}

// Clear removes all entries from the cache
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// GenerateCacheKey creates a cache key from the computation name and the
// identity of its inputs.
func GenerateCacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(hash[:])
}
