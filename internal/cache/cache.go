// Package cache provides the TTL key-value capability used for hot listing
// and suggestion payloads.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is an injectable get/set/TTL capability. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

// Memory is an in-process Cache backed by patrickmn/go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a Memory cache. defaultTTL applies when Set is called
// with a zero duration; cleanupInterval controls expired-entry sweeping.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(key string) (any, bool) {
	return m.c.Get(key)
}

func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *Memory) Delete(key string) {
	m.c.Delete(key)
}
