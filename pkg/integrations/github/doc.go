// Package github talks to GitHub for repository discovery and raw content.
//
// # Raw content
//
// [RawClient] fetches one file at a branch head from the raw content host:
//
//	<host>/<owner>/<repo>/<branch>/<path>
//
// The default host is https://raw.githubusercontent.com. Each request goes
// through the shared HTTP client in [integrations]; a non-2xx response is an
// [errors.HTTPError] and nothing is retried.
//
//	rc, err := github.NewRawClient(github.RawConfig{}).GetContent(ctx, repo, "src/App/App.csproj")
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
// # Search
//
// [SearchClient] lists repositories by primary language, most-starred first,
// and resolves a single owner/repo to its clone URL and default branch.
// API responses are cached and transient failures (429, 5xx, network) are
// retried with backoff.
//
// # Authentication
//
// A personal access token is optional. Without one the search API allows
// 10 requests per minute, which is enough for a page or two of results.
package github
