package nuget

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	"github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/versioning"
)

// PackagesConfigParser reads legacy packages.config files.
type PackagesConfigParser struct{}

func (p *PackagesConfigParser) Kind() deps.ManifestKind { return deps.LegacyPackagesManifest }

func (p *PackagesConfigParser) Parse(r io.Reader, origin string) ([]deps.PackageReference, error) {
	data, ok, err := readDocument(r)
	if err != nil || !ok {
		return nil, err
	}

	var cfg packagesConfig
	if err := newDecoder(data).Decode(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed packages.config %s", origin)
	}

	refs := make([]deps.PackageReference, 0, len(cfg.Packages))
	for i, pkg := range cfg.Packages {
		ref, err := pkg.reference(origin)
		if err != nil {
			return nil, fmt.Errorf("package #%d in %s: %w", i+1, origin, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

type packagesConfig struct {
	XMLName  xml.Name       `xml:"packages"`
	Packages []packageEntry `xml:"package"`
}

type packageEntry struct {
	ID                    string `xml:"id,attr"`
	Version               string `xml:"version,attr"`
	TargetFramework       string `xml:"targetFramework,attr"`
	AllowedVersions       string `xml:"allowedVersions,attr"`
	DevelopmentDependency string `xml:"developmentDependency,attr"`
}

func (e packageEntry) reference(origin string) (deps.PackageReference, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return deps.PackageReference{}, errors.New(errors.ErrCodeParse, "missing id attribute")
	}
	if strings.TrimSpace(e.Version) == "" {
		return deps.PackageReference{}, errors.New(errors.ErrCodeParse, "missing version attribute for %s", id)
	}
	v, err := versioning.ParseVersion(e.Version)
	if err != nil {
		return deps.PackageReference{}, err
	}

	ref := deps.PackageReference{
		ID:              id,
		Version:         versioning.ExactVersion(v),
		Origin:          origin,
		Framework:       deps.AnyFramework,
		UserDeclared:    true,
		DevelopmentOnly: strings.EqualFold(strings.TrimSpace(e.DevelopmentDependency), "true"),
	}
	if tfm := strings.TrimSpace(e.TargetFramework); tfm != "" {
		ref.Framework = tfm
	}
	if strings.TrimSpace(e.AllowedVersions) != "" {
		rng, err := versioning.ParseRange(e.AllowedVersions)
		if err != nil {
			return deps.PackageReference{}, err
		}
		ref.AllowedVersions = rng
	}
	return ref, nil
}
