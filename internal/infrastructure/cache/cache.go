// Package cache holds reference data (VAT, companies, vehicles, fuel types)
// that every invoice screen reads and that changes rarely.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	KeyCurrentVat    = "vat:current"
	KeyCompanies     = "companies:all"
	KeyFuelTypes     = "fuel_types:all"
	PrefixVehicles   = "vehicles:company:"
	PrefixFuelTypes  = "fuel_types:category:"
	PrefixFuelLookup = "fuel_types:"
)

// VehiclesKey is the key for one company's vehicle list
func VehiclesKey(companyID uuid.UUID) string {
	return PrefixVehicles + companyID.String()
}

// FuelTypesKey is the key for the fuel types of one category
func FuelTypesKey(categoryID uuid.UUID) string {
	return PrefixFuelTypes + categoryID.String()
}

// Loader produces the value to cache on a miss
type Loader func(ctx context.Context) (interface{}, error)

// ReferenceCache is a read-through cache with explicit invalidation
type ReferenceCache interface {
	Remember(ctx context.Context, key string, ttl time.Duration, load Loader) (interface{}, error)
	Invalidate(keys ...string)
	InvalidatePrefix(prefix string)
	Flush()
}

// Remember is the typed form of ReferenceCache.Remember
func Remember[T any](ctx context.Context, c ReferenceCache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Remember(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, v)
	}
	return typed, nil
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// MemoryCache is an in-process ReferenceCache with per-entry expiry
type MemoryCache struct {
	entries map[string]*entry
	mu      sync.RWMutex
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates a cache that sweeps expired entries every
// cleanupInterval. A non-positive interval disables the sweeper.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.cleanupLoop(cleanupInterval)
	}
	return c
}

// Remember returns the cached value for key, calling load on a miss.
// Errors from load are returned and not cached.
func (c *MemoryCache) Remember(ctx context.Context, key string, ttl time.Duration, load Loader) (interface{}, error) {
	if v, ok := c.get(key); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &entry{value: v, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return v, nil
}

func (c *MemoryCache) get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the given keys
func (c *MemoryCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InvalidatePrefix drops every key starting with prefix
func (c *MemoryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Flush drops everything
func (c *MemoryCache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Len reports how many entries are held, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweeper
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
