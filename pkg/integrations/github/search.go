package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loic-sharma/NuGet.Dependents/pkg/cache"
	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// maxPerPage is the search API's page size limit.
const maxPerPage = 100

// SearchConfig configures a [SearchClient].
type SearchConfig struct {
	BaseURL  string        // API root (default DefaultAPIURL)
	Token    string        // optional personal access token
	Cache    cache.Cache   // response cache (nil disables caching)
	CacheTTL time.Duration // lifetime of cached responses
}

// SearchClient discovers repositories through the GitHub REST API.
type SearchClient struct {
	*integrations.Client
	baseURL string
}

// NewSearchClient creates a SearchClient.
func NewSearchClient(cfg SearchConfig) *SearchClient {
	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &SearchClient{
		Client:  integrations.NewClient(cfg.Cache, cfg.CacheTTL, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SearchOptions selects a page of search results.
type SearchOptions struct {
	Language string // primary language, e.g. "C#"
	Page     int    // 1-based (default 1)
	PerPage  int    // 1-100 (default 100)
	Refresh  bool   // bypass the response cache
}

// SearchRepositories returns one page of repositories written in
// opts.Language, most-starred first. Forks and archived repositories are
// left out of the page.
func (c *SearchClient) SearchRepositories(ctx context.Context, opts SearchOptions) (*SearchPage, error) {
	if opts.Language == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "language is required")
	}
	page := max(opts.Page, 1)
	perPage := opts.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}

	query := "language:" + opts.Language
	url := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=%d&page=%d",
		c.baseURL, integrations.URLEncode(query), perPage, page)

	var data searchResponse
	err := c.Cached(ctx, cache.HTTPKey("github:search", url), opts.Refresh, &data, func() error {
		return c.Get(ctx, url, &data)
	})
	if err != nil {
		return nil, err
	}

	result := &SearchPage{Total: data.TotalCount}
	for _, item := range data.Items {
		if item.Fork || item.Archived {
			continue
		}
		result.Repositories = append(result.Repositories, item.toRepository())
	}
	return result, nil
}

// Repository resolves owner/name to its clone URL and default branch.
// A missing repository is reported as NOT_FOUND.
func (c *SearchClient) Repository(ctx context.Context, owner, name string, refresh bool) (deps.Repository, error) {
	if err := ValidateOwner(owner); err != nil {
		return deps.Repository{}, err
	}
	if err := ValidateRepo(name); err != nil {
		return deps.Repository{}, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, name)
	var data repoResponse
	err := c.Cached(ctx, cache.HTTPKey("github:repo", url), refresh, &data, func() error {
		return c.Get(ctx, url, &data)
	})
	if apperrors.StatusCode(err) == 404 {
		return deps.Repository{}, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "repository %s/%s", owner, name)
	}
	if err != nil {
		return deps.Repository{}, err
	}
	return data.toRepository(), nil
}
