package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is an in-process TTL cache bounded by entry count
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]cacheItem
	maxEntries int
	defaultTTL time.Duration
	now        func() time.Time

	hits, misses, sets, deletes, evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
}

// Options configure a MemoryCache
type Options struct {
	MaxEntries      int           // 0 means unbounded
	DefaultTTL      time.Duration // used when Set is given ttl <= 0; Default: 5m
	CleanupInterval time.Duration // 0 disables the background sweep
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(opts Options) *MemoryCache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}
	mc := &MemoryCache{
		items:      make(map[string]cacheItem),
		maxEntries: opts.MaxEntries,
		defaultTTL: opts.DefaultTTL,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	if opts.CleanupInterval > 0 {
		mc.wg.Add(1)
		go mc.cleanupExpired(opts.CleanupInterval)
	}

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	if !exists || !mc.now().Before(item.expiry) {
		mc.misses.Add(1)
		return nil, false
	}

	mc.hits.Add(1)
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = mc.defaultTTL
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, replacing := mc.items[key]; !replacing && mc.maxEntries > 0 && len(mc.items) >= mc.maxEntries {
		mc.evictLocked()
	}
	mc.items[key] = cacheItem{value: value, expiry: mc.now().Add(ttl)}
	mc.sets.Add(1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	if _, exists := mc.items[key]; exists {
		delete(mc.items, key)
		mc.deletes.Add(1)
	}
	mc.mu.Unlock()
	return nil
}

// DeletePrefix removes every key starting with prefix
func (mc *MemoryCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	n := 0
	for key := range mc.items {
		if strings.HasPrefix(key, prefix) {
			delete(mc.items, key)
			n++
		}
	}
	mc.deletes.Add(int64(n))
	return n, nil
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]cacheItem)
	mc.mu.Unlock()
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	mc.mu.RLock()
	entries := len(mc.items)
	mc.mu.RUnlock()

	return Stats{
		Hits:       mc.hits.Load(),
		Misses:     mc.misses.Load(),
		Sets:       mc.sets.Load(),
		Deletes:    mc.deletes.Load(),
		Evictions:  mc.evictions.Load(),
		Entries:    entries,
		MaxEntries: mc.maxEntries,
	}
}

// Stop gracefully shuts down the cache
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpiredLocked() int {
	now := mc.now()
	n := 0
	for key, item := range mc.items {
		if !now.Before(item.expiry) {
			delete(mc.items, key)
			n++
		}
	}
	mc.evictions.Add(int64(n))
	return n
}

// evictLocked frees one slot: expired entries first, otherwise the entry
// closest to expiry
func (mc *MemoryCache) evictLocked() {
	if mc.removeExpiredLocked() > 0 {
		return
	}

	var victim string
	var soonest time.Time
	for key, item := range mc.items {
		if victim == "" || item.expiry.Before(soonest) {
			victim, soonest = key, item.expiry
		}
	}
	if victim != "" {
		delete(mc.items, victim)
		mc.evictions.Add(1)
	}
}
