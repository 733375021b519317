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

// ProjectParser reads PackageReference items from MSBuild project files.
type ProjectParser struct{}

func (p *ProjectParser) Kind() deps.ManifestKind { return deps.ProjectManifest }

func (p *ProjectParser) Parse(r io.Reader, origin string) ([]deps.PackageReference, error) {
	data, ok, err := readDocument(r)
	if err != nil || !ok {
		return nil, err
	}

	d := newDecoder(data)
	var (
		refs   []deps.PackageReference
		sawTag bool
	)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed project file %s", origin)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawTag = true
		if start.Name.Local != "PackageReference" {
			continue
		}

		var el packageReferenceElement
		if err := d.DecodeElement(&el, &start); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed PackageReference in %s", origin)
		}
		ref, ok, err := el.reference(origin)
		if err != nil {
			return nil, err
		}
		if ok {
			refs = append(refs, ref)
		}
	}
	if !sawTag {
		return nil, errors.New(errors.ErrCodeParse, "project file %s has no root element", origin)
	}
	return refs, nil
}

type packageReferenceElement struct {
	Include           string  `xml:"Include,attr"`
	VersionAttr       *string `xml:"Version,attr"`
	VersionElem       *string `xml:"Version"`
	PrivateAssetsAttr string  `xml:"PrivateAssets,attr"`
	PrivateAssetsElem string  `xml:"PrivateAssets"`
}

func (el *packageReferenceElement) reference(origin string) (deps.PackageReference, bool, error) {
	id := strings.TrimSpace(el.Include)
	if id == "" {
		return deps.PackageReference{}, false, nil
	}

	ref := deps.PackageReference{
		ID:              id,
		Origin:          origin,
		Framework:       deps.AnyFramework,
		UserDeclared:    true,
		DevelopmentOnly: privateAssetsAll(el.PrivateAssetsAttr) || privateAssetsAll(el.PrivateAssetsElem),
	}

	raw := el.VersionAttr
	if raw == nil {
		raw = el.VersionElem
	}
	if raw != nil {
		rng, err := versioning.ParseRange(*raw)
		if err != nil {
			return deps.PackageReference{}, false, fmt.Errorf("package %s in %s: %w", id, origin, err)
		}
		ref.Version = versioning.InRange(rng)
	}
	return ref, true, nil
}

func privateAssetsAll(s string) bool {
	for _, part := range strings.Split(s, ";") {
		if strings.EqualFold(strings.TrimSpace(part), "all") {
			return true
		}
	}
	return false
}
