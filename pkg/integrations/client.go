package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/loic-sharma/NuGet.Dependents/pkg/buildinfo"
	"github.com/loic-sharma/NuGet.Dependents/pkg/cache"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/httputil"
	"github.com/loic-sharma/NuGet.Dependents/pkg/observability"
)

// Client layers default headers, caching and status handling over the
// shared HTTP client. API clients embed it.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client. A nil cache disables caching. Headers are sent
// with every request; pass nil for none.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    HTTPClient(),
		cache:   c,
		ttl:     ttl,
		headers: headers,
	}
}

// Cached returns the cached value for key into v, or runs fetch with retries
// and caches what it stored in v. With refresh set, the cache is not read.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := cache.GetJSON(ctx, c.cache, key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	_ = cache.SetJSON(ctx, c.cache, key, v, c.ttl)
	return nil
}

// Get performs a GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.Open(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeParse, err, "decode %s", url)
	}
	return nil
}

// Open performs a GET request and returns the body of a 2xx response. The
// caller must close it. Non-2xx responses yield *errors.HTTPError; transport
// failures yield a retryable NETWORK_ERROR.
func (c *Client) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, httputil.Retryable(apperrors.Wrap(apperrors.ErrCodeNetwork, err, "GET %s", url))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, url); err != nil {
		drain(resp.Body)
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &apperrors.HTTPError{StatusCode: resp.StatusCode, URL: url}
}

// drain discards a small remainder of body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.CopyN(io.Discard, body, 4<<10)
	body.Close()
}
