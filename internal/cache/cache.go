package cache

import (
	"time"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/logger"
)

var log = logger.Scoped("cache")

type Cache[V any] interface {
	GetName() string
	Get(key string, value *V) bool
	Add(key string, value V) error
	AddWithLifetime(key string, value V, lifetime time.Duration) error
	Remove(key string)
}

type CacheConfig struct {
	Name          string
	Lifetime      time.Duration
	LocalCapacity uint32
}

func (conf *CacheConfig) normalize() {
	if conf.LocalCapacity == 0 {
		conf.LocalCapacity = 1024
	}
	if conf.Lifetime <= 0 {
		conf.Lifetime = 5 * time.Minute
	}
}

// NewCache returns a redis backed cache when a redis uri is configured,
// otherwise an in-memory lru cache.
func NewCache[V any](conf *CacheConfig) Cache[V] {
	if config.RedisURI != "" {
		c, err := NewRedisCache[V](config.RedisURI, conf)
		if err == nil {
			return c
		}
		log.Error("failed to initialize redis cache, using in-memory", "name", conf.Name, "error", err)
	}
	return NewLRUCache[V](conf)
}
