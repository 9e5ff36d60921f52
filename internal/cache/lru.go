package cache

import (
	"time"

	"github.com/elastic/go-freelru"
	"github.com/zeebo/xxh3"
)

func hashString(s string) uint32 {
	return uint32(xxh3.HashString(s))
}

type LRUCache[V any] struct {
	name     string
	lifetime time.Duration
	lru      *freelru.SyncedLRU[string, V]
}

func (c *LRUCache[V]) GetName() string {
	return c.name
}

func (c *LRUCache[V]) Get(key string, value *V) bool {
	v, ok := c.lru.Get(key)
	if ok {
		*value = v
	}
	return ok
}

func (c *LRUCache[V]) Add(key string, value V) error {
	c.lru.Add(key, value)
	return nil
}

func (c *LRUCache[V]) AddWithLifetime(key string, value V, lifetime time.Duration) error {
	c.lru.AddWithLifetime(key, value, lifetime)
	return nil
}

func (c *LRUCache[V]) Remove(key string) {
	c.lru.Remove(key)
}

func NewLRUCache[V any](conf *CacheConfig) *LRUCache[V] {
	conf.normalize()
	lru, err := freelru.NewSynced[string, V](conf.LocalCapacity, hashString)
	if err != nil {
		panic(err)
	}
	lru.SetLifetime(conf.Lifetime)
	return &LRUCache[V]{
		name:     conf.Name,
		lifetime: conf.Lifetime,
		lru:      lru,
	}
}
