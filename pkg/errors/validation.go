package errors

import (
	"strings"
	"unicode"
)

// ValidateRepoRef validates an "owner/repo" reference as accepted on the
// command line. Both halves must be non-empty and free of further slashes,
// whitespace and control characters.
func ValidateRepoRef(ref string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok || owner == "" || repo == "" {
		return "", "", New(ErrCodeInvalidInput, "repository must be in owner/repo form: %q", ref)
	}
	for _, part := range []string{owner, repo} {
		if strings.ContainsAny(part, "/\\") {
			return "", "", New(ErrCodeInvalidInput, "repository must be in owner/repo form: %q", ref)
		}
		for _, r := range part {
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				return "", "", New(ErrCodeInvalidInput, "repository reference contains invalid characters: %q", ref)
			}
		}
	}
	return owner, strings.TrimSuffix(repo, ".git"), nil
}

// ValidatePath validates a file path within a repository before it is used
// to build a content URL.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters (git's PATH_MAX)
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No ".." segments
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal segments (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
