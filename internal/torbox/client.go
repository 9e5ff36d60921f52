package torbox

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var errInvalidBaseURL = errors.New("missing scheme or host")

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	userAgent  string
}

func NewClient(conf *ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(conf.BaseURL, "/")
	if u, err := url.Parse(baseURL); err != nil {
		return nil, err
	} else if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: baseURL, Err: errInvalidBaseURL}
	}

	var base http.RoundTripper = http.DefaultTransport
	if conf.HTTPClient != nil && conf.HTTPClient.Transport != nil {
		base = conf.HTTPClient.Transport
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 15 * time.Second
	}

	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.APIKey, TokenType: "Bearer"}),
				Base:   base,
			},
			Timeout: conf.Timeout,
		},
		userAgent: conf.UserAgent,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrorKindUpstream, Cause: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 16<<20))
	if err != nil {
		return nil, &Error{Kind: ErrorKindUpstream, StatusCode: res.StatusCode, Cause: err}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &Error{
			Kind:       classifyStatus(res.StatusCode, string(body)),
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}

// Search runs a free-text search against one content type.
func (c *Client) Search(ctx context.Context, ct ContentType, query string) ([]Item, error) {
	body, err := c.get(ctx, "/"+ct.endpoint()+"/search/"+url.PathEscape(query), nil)
	if err != nil {
		return nil, err
	}
	return ParseItems(body, ct), nil
}

// SearchByTVDB looks up releases by canonical series, season and episode.
func (c *Client) SearchByTVDB(ctx context.Context, ct ContentType, seriesId, season, episode int) ([]Item, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))
	query.Set("episode", strconv.Itoa(episode))
	body, err := c.get(ctx, "/"+ct.endpoint()+"/tvdb:"+strconv.Itoa(seriesId), query)
	if err != nil {
		return nil, err
	}
	return ParseItems(body, ct), nil
}
