package integrations

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Defaults for the shared HTTP client.
const (
	DefaultMaxConnsPerHost = 64
	DefaultIdleConnTimeout = 10 * time.Second
	DefaultTimeout         = 100 * time.Second
)

// HTTPConfig sizes the connection pool of the shared HTTP client.
type HTTPConfig struct {
	MaxConnsPerHost int           // concurrent connections per host (default 64)
	IdleConnTimeout time.Duration // idle connection lifetime (default 10s)
	Timeout         time.Duration // whole-request timeout (default 100s)
}

// WithDefaults returns a copy of HTTPConfig with zero values replaced by defaults.
func (c HTTPConfig) WithDefaults() HTTPConfig {
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = DefaultMaxConnsPerHost
	}
	if c.IdleConnTimeout <= 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

var (
	sharedOnce   sync.Once
	sharedClient *http.Client
)

// InitHTTPClient creates the process-wide HTTP client from cfg. Only the
// first call has any effect; later calls return the existing client.
func InitHTTPClient(cfg HTTPConfig) *http.Client {
	sharedOnce.Do(func() {
		sharedClient = NewHTTPClient(cfg)
	})
	return sharedClient
}

// HTTPClient returns the process-wide HTTP client, initializing it with
// defaults if [InitHTTPClient] has not been called.
func HTTPClient() *http.Client {
	return InitHTTPClient(HTTPConfig{})
}

// NewHTTPClient creates a standalone client with a bounded connection pool.
func NewHTTPClient(cfg HTTPConfig) *http.Client {
	cfg = cfg.WithDefaults()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		MaxIdleConns:          cfg.MaxConnsPerHost,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Transport: transport, Timeout: cfg.Timeout}
}

var cloneURLReplacer = strings.NewReplacer(
	"ssh://git@github.com/", "https://github.com/",
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
	"https://www.github.com/", "https://github.com/",
)

// NormalizeRepoURL rewrites a GitHub clone URL given in ssh, git:// or git+
// form as https, without a trailing slash or .git suffix. Blank input
// gives "".
func NormalizeRepoURL(raw string) string {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "git+")
	if s == "" {
		return ""
	}
	s = cloneURLReplacer.Replace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// EscapePath percent-encodes each slash-separated segment of p.
func EscapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// URLEncode percent-encodes a string for use in a query.
func URLEncode(s string) string { return url.QueryEscape(s) }
