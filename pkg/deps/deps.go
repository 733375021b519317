package deps

import (
	"strings"
	"time"

	"github.com/loic-sharma/NuGet.Dependents/pkg/versioning"
)

// AnyFramework is recorded on references whose target framework is not
// resolved.
const AnyFramework = "any"

// Repository identifies a remote repository to scan.
type Repository struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stars,omitempty"` // carried from discovery for display
}

// FullName returns "owner/name".
func (r Repository) FullName() string { return r.Owner + "/" + r.Name }

// PackageReference is one dependency declaration found in a manifest.
type PackageReference struct {
	ID              string                `json:"id"`
	Version         versioning.Constraint `json:"version"`
	AllowedVersions *versioning.Range     `json:"allowed_versions,omitempty"`
	Origin          string                `json:"origin"`
	Framework       string                `json:"framework"`
	DevelopmentOnly bool                  `json:"development_only,omitempty"`
	UserDeclared    bool                  `json:"user_declared"`
}

// String renders the reference as "<id> <version-constraint-or-blank>".
func (p PackageReference) String() string {
	return p.ID + " " + p.Version.String()
}

// Failure records a candidate file that could not be fetched or parsed.
type Failure struct {
	Path  string `json:"path"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// ScanResult aggregates everything found in one repository.
type ScanResult struct {
	ID         string             `json:"id"`
	Repository Repository         `json:"repository"`
	Commit     string             `json:"commit,omitempty"`
	Candidates int                `json:"candidates"`
	Packages   []PackageReference `json:"packages"`
	Failures   []Failure          `json:"failures"`
	Duration   time.Duration      `json:"duration"`

	// Cached is set when the result was served from the scan cache.
	Cached bool `json:"-"`
}

// FailedPaths returns the paths of all failed files.
func (r *ScanResult) FailedPaths() []string {
	paths := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		paths[i] = f.Path
	}
	return paths
}

// PackagesFrom returns the references whose origin equals path, compared
// case-insensitively like listing paths.
func (r *ScanResult) PackagesFrom(path string) []PackageReference {
	var out []PackageReference
	for _, p := range r.Packages {
		if strings.EqualFold(p.Origin, path) {
			out = append(out, p)
		}
	}
	return out
}
