package deps

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// ManifestKind classifies a repository path.
type ManifestKind int

const (
	// Ignored paths are not manifests.
	Ignored ManifestKind = iota
	// ProjectManifest is an MSBuild project file declaring PackageReference items.
	ProjectManifest
	// LegacyPackagesManifest is a packages.config file.
	LegacyPackagesManifest
)

func (k ManifestKind) String() string {
	switch k {
	case ProjectManifest:
		return "project"
	case LegacyPackagesManifest:
		return "packages.config"
	default:
		return "ignored"
	}
}

// LegacyManifestName is the reserved file name of legacy package lists.
const LegacyManifestName = "packages.config"

var projectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

// Classify decides from the path alone whether it names a manifest. Extension
// and file name are compared case-insensitively since listings are
// case-insensitive.
func Classify(p string) ManifestKind {
	name := path.Base(p)
	if strings.EqualFold(name, LegacyManifestName) {
		return LegacyPackagesManifest
	}
	ext := path.Ext(name)
	if ext == name {
		// ".csproj" alone has no base name.
		return Ignored
	}
	for _, e := range projectExtensions {
		if strings.EqualFold(ext, e) {
			return ProjectManifest
		}
	}
	return Ignored
}

// FileEntry is a classified repository path.
type FileEntry struct {
	Path string
	Kind ManifestKind
}

// Candidates classifies paths and keeps only manifests, preserving order.
func Candidates(paths []string) []FileEntry {
	var out []FileEntry
	for _, p := range paths {
		if k := Classify(p); k != Ignored {
			out = append(out, FileEntry{Path: p, Kind: k})
		}
	}
	return out
}

// ManifestParser turns manifest content into package references.
type ManifestParser interface {
	// Kind returns the manifest kind this parser handles.
	Kind() ManifestKind
	// Parse reads r and returns the references it declares. origin is the
	// repository path recorded on each reference. Empty or whitespace-only
	// input yields an empty list.
	Parse(r io.Reader, origin string) ([]PackageReference, error)
}

// SelectParser returns the first parser registered for kind.
// Returns an error if no parser matches.
func SelectParser(kind ManifestKind, parsers ...ManifestParser) (ManifestParser, error) {
	for _, p := range parsers {
		if p.Kind() == kind {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no parser for %s manifests", kind)
}
