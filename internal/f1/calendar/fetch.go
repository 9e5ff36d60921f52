package f1_calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/f1catchup/f1catchup/internal/cache"
)

type UpstreamError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}

type fetchParams struct {
	url      string
	cacheKey string
	ttl      time.Duration
	// skip the cache read, still write the fresh body
	refresh bool
}

// fetchWithCache reads through the given store. Cache failures never fail the
// fetch.
func (s *Service) fetchWithCache(ctx context.Context, store cache.Cache[[]byte], params *fetchParams) ([]byte, error) {
	if store != nil && !params.refresh {
		var body []byte
		if store.Get(params.cacheKey, &body) {
			log.Trace("cache hit", "key", params.cacheKey)
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, params.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &UpstreamError{URL: params.url, StatusCode: res.StatusCode, Status: http.StatusText(res.StatusCode)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.AddWithLifetime(params.cacheKey, body, params.ttl); err != nil {
			log.Warn("cache write failed", "key", params.cacheKey, "error", err)
		}
	}

	return body, nil
}
