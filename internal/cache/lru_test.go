package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUCache(t *testing.T) {
	c := NewLRUCache[[]byte](&CacheConfig{
		Name:          "test",
		Lifetime:      time.Minute,
		LocalCapacity: 8,
	})
	assert.Equal(t, "test", c.GetName())

	var value []byte
	assert.False(t, c.Get("a", &value))

	assert.NoError(t, c.Add("a", []byte("1")))
	assert.True(t, c.Get("a", &value))
	assert.Equal(t, []byte("1"), value)

	c.Remove("a")
	assert.False(t, c.Get("a", &value))
}

func TestLRUCacheLifetime(t *testing.T) {
	c := NewLRUCache[int](&CacheConfig{Name: "ttl", Lifetime: time.Minute})

	assert.NoError(t, c.AddWithLifetime("short", 1, 10*time.Millisecond))
	assert.NoError(t, c.Add("long", 2))

	time.Sleep(30 * time.Millisecond)

	var v int
	assert.False(t, c.Get("short", &v))
	assert.True(t, c.Get("long", &v))
	assert.Equal(t, 2, v)
}

func TestRedisCacheInvalidURI(t *testing.T) {
	_, err := NewRedisCache[int]("not-a-uri", &CacheConfig{Name: "bad"})
	assert.Error(t, err)
}
