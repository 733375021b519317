package github

import (
	"regexp"
	"strings"

	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
)

const webPrefix = "https://github.com/"

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if !validOwner.MatchString(owner) {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if !validRepo.MatchString(repo) || repo == "." || repo == ".." {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// ParseRepoRef parses an "owner/repo" string or a GitHub clone URL
// (https, ssh or git://) and validates both parts against GitHub's naming
// rules.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	trimmed := strings.TrimSpace(ref)
	if strings.Contains(trimmed, "://") || strings.HasPrefix(trimmed, "git@") {
		path, ok := strings.CutPrefix(integrations.NormalizeRepoURL(trimmed), webPrefix)
		if !ok {
			return "", "", apperrors.New(apperrors.ErrCodeInvalidInput, "not a GitHub repository URL: %q", ref)
		}
		trimmed = path
	}
	owner, repo, err = apperrors.ValidateRepoRef(trimmed)
	if err != nil {
		return "", "", err
	}
	if err := ValidateOwner(owner); err != nil {
		return "", "", err
	}
	if err := ValidateRepo(repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}
