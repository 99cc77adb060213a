package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/menulink/pkg/cache"
	merrors "github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/observability"
)

// maxBodySize caps response bodies; QR rasters and logos are small.
const maxBodySize = 10 << 20

// Client provides shared HTTP functionality for the QR renderer and logo
// fetches. It handles caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
	attempts  int
	delay     time.Duration
}

// NewClient creates a Client with the given cache, key namespace, entry TTL
// and default headers. A nil cache disables caching. Pass nil for headers if
// no default headers are needed.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		attempts:  3,
		delay:     time.Second,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// WithRetry sets the attempt count and initial backoff delay.
func (c *Client) WithRetry(attempts int, delay time.Duration) *Client {
	c.attempts = max(attempts, 1)
	c.delay = delay
	return c
}

// Keyer returns the key generator used for cache entries.
func (c *Client) Keyer() cache.Keyer { return c.keyer }

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// keyType labels the entry for observability hooks ("http", "qr", "img").
func (c *Client) Cached(ctx context.Context, keyType, key string, refresh bool, fetch func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			hooks.OnCacheHit(ctx, keyType)
			return data, nil
		}
		hooks.OnCacheMiss(ctx, keyType)
	}

	var data []byte
	err := cache.Retry(ctx, c.attempts, c.delay, func() error {
		var ferr error
		data, ferr = fetch()
		return ferr
	})
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
	return data, nil
}

// GetBytes performs a cached HTTP GET and returns the response body.
func (c *Client) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	key := c.keyer.HTTPKey(c.namespace, rawURL)
	return c.Cached(ctx, "http", key, false, func() ([]byte, error) {
		return c.Fetch(ctx, rawURL)
	})
}

// Fetch performs a single uncached HTTP GET and returns the response body.
// Network failures and 5xx responses are wrapped as retryable.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := c.doRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	return data, nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := requestTarget(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func requestTarget(u *url.URL) (host, path string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &merrors.RateLimitedError{RetryAfter: retryAfter}
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// IsNotFound reports whether err came from a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
