package github

import (
	"context"
	"io"
	"strings"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
)

// DefaultContentHost serves raw file content for public repositories.
const DefaultContentHost = "https://raw.githubusercontent.com"

// RawConfig configures a [RawClient].
type RawConfig struct {
	Host  string // content host root (default DefaultContentHost)
	Token string // optional token for private repositories
}

// RawClient fetches file content at a branch head.
type RawClient struct {
	*integrations.Client
	host string
}

// NewRawClient creates a RawClient over the shared HTTP client. Responses
// are never cached; a scan caches whole results instead.
func NewRawClient(cfg RawConfig) *RawClient {
	var headers map[string]string
	if cfg.Token != "" {
		headers = map[string]string{"Authorization": "token " + cfg.Token}
	}
	host := cfg.Host
	if host == "" {
		host = DefaultContentHost
	}
	return &RawClient{
		Client: integrations.NewClient(nil, 0, headers),
		host:   strings.TrimSuffix(host, "/"),
	}
}

// ContentURL builds the raw URL of path on repo's default branch.
func (c *RawClient) ContentURL(repo deps.Repository, path string) string {
	return c.host + "/" +
		integrations.EscapePath(repo.Owner) + "/" +
		integrations.EscapePath(repo.Name) + "/" +
		integrations.EscapePath(repo.DefaultBranch) + "/" +
		integrations.EscapePath(path)
}

// GetContent returns a stream over the content of path on repo's default
// branch. The caller must close it.
func (c *RawClient) GetContent(ctx context.Context, repo deps.Repository, path string) (io.ReadCloser, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	return c.Open(ctx, c.ContentURL(repo, path))
}
