package torbox

import (
	"strconv"
	"time"

	"github.com/f1catchup/f1catchup/internal/cache"
	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/zeebo/xxh3"
)

var clientCache = cache.NewLRUCache[*Client](&cache.CacheConfig{
	Name:          "torbox:client",
	Lifetime:      3 * time.Hour,
	LocalCapacity: 256,
})

// GetClient returns a shared client per api key.
func GetClient(apiKey string) (*Client, error) {
	key := strconv.FormatUint(xxh3.HashString(config.TorBox.SearchURL+"\x00"+apiKey), 36)

	var client *Client
	if clientCache.Get(key, &client) {
		return client, nil
	}
	client, err := NewClient(&ClientConfig{
		BaseURL:   config.TorBox.SearchURL,
		APIKey:    apiKey,
		Timeout:   config.TorBox.Timeout,
		UserAgent: config.Calendar.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	if err := clientCache.Add(key, client); err != nil {
		return nil, err
	}
	return client, nil
}
