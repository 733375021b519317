package github

import "github.com/loic-sharma/NuGet.Dependents/pkg/deps"

// repoResponse is the subset of GET /repos/{owner}/{repo} and of search
// items that a scan needs.
type repoResponse struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stargazers_count"`
	Archived      bool   `json:"archived"`
	Fork          bool   `json:"fork"`
	Owner         struct {
		Login string `json:"login"`
	} `json:"owner"`
}

func (r repoResponse) toRepository() deps.Repository {
	return deps.Repository{
		Owner:         r.Owner.Login,
		Name:          r.Name,
		CloneURL:      r.CloneURL,
		DefaultBranch: r.DefaultBranch,
		Stars:         r.Stars,
	}
}

type searchResponse struct {
	TotalCount        int            `json:"total_count"`
	IncompleteResults bool           `json:"incomplete_results"`
	Items             []repoResponse `json:"items"`
}

// SearchPage is one page of repository search results.
type SearchPage struct {
	Total        int               // total matches reported by the API
	Repositories []deps.Repository // in descending star order
}
