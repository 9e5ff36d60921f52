package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	rcache "github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

var (
	redisClientMutex sync.Mutex
	redisClientByURI = map[string]*redis.Client{}
)

func getRedisClient(uri string) (*redis.Client, error) {
	redisClientMutex.Lock()
	defer redisClientMutex.Unlock()

	if client, ok := redisClientByURI[uri]; ok {
		return client, nil
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	redisClientByURI[uri] = client
	return client, nil
}

type RedisCache[V any] struct {
	name     string
	lifetime time.Duration
	c        *rcache.Cache
}

func (c *RedisCache[V]) key(key string) string {
	return "f1c:" + c.name + ":" + key
}

func (c *RedisCache[V]) GetName() string {
	return c.name
}

func (c *RedisCache[V]) Get(key string, value *V) bool {
	err := c.c.Get(context.Background(), c.key(key), value)
	if err == nil {
		return true
	}
	if !errors.Is(err, rcache.ErrCacheMiss) {
		log.Warn("failed to read from redis cache", "name", c.name, "key", key, "error", err)
	}
	return false
}

func (c *RedisCache[V]) Add(key string, value V) error {
	return c.AddWithLifetime(key, value, c.lifetime)
}

func (c *RedisCache[V]) AddWithLifetime(key string, value V, lifetime time.Duration) error {
	return c.c.Set(&rcache.Item{
		Ctx:   context.Background(),
		Key:   c.key(key),
		Value: value,
		TTL:   lifetime,
	})
}

func (c *RedisCache[V]) Remove(key string) {
	if err := c.c.Delete(context.Background(), c.key(key)); err != nil && !errors.Is(err, rcache.ErrCacheMiss) {
		log.Warn("failed to delete from redis cache", "name", c.name, "key", key, "error", err)
	}
}

func NewRedisCache[V any](uri string, conf *CacheConfig) (*RedisCache[V], error) {
	conf.normalize()
	client, err := getRedisClient(uri)
	if err != nil {
		return nil, err
	}
	return &RedisCache[V]{
		name:     conf.Name,
		lifetime: conf.Lifetime,
		c: rcache.New(&rcache.Options{
			Redis:      client,
			LocalCache: rcache.NewTinyLFU(int(conf.LocalCapacity), time.Minute),
		}),
	}, nil
}
