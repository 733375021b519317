package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loic-sharma/NuGet.Dependents/pkg/cache"
	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/gittree"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations/github"
	"github.com/loic-sharma/NuGet.Dependents/pkg/versioning"
)

var testRepo = deps.Repository{
	Owner:         "contoso",
	Name:          "widgets",
	CloneURL:      "https://github.com/contoso/widgets.git",
	DefaultBranch: "main",
}

const appProject = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" />
    <PackageReference Include="Serilog" Version="2.10.0" />
  </ItemGroup>
</Project>`

const libPackages = `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="NUnit" version="3.13.2" targetFramework="net48" />
</packages>`

type staticLister struct {
	listing *gittree.Listing
	err     error
}

func (l staticLister) List(context.Context, string, string) (*gittree.Listing, error) {
	return l.listing, l.err
}

type mapFetcher struct {
	files map[string]string
	calls atomic.Int32
}

func (f *mapFetcher) GetContent(_ context.Context, _ deps.Repository, path string) (io.ReadCloser, error) {
	f.calls.Add(1)
	content, ok := f.files[path]
	if !ok {
		return nil, &apperrors.HTTPError{StatusCode: http.StatusNotFound, URL: path}
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestScan_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contoso/widgets/main/app.csproj":
			io.WriteString(w, appProject)
		case "/contoso/widgets/main/lib/packages.config":
			io.WriteString(w, libPackages)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	lister := staticLister{listing: &gittree.Listing{
		Commit: "0123456789abcdef0123456789abcdef01234567",
		Paths:  []string{"README.md", "app.csproj", "lib/packages.config", "src/Program.cs"},
	}}
	s := New(lister, github.NewRawClient(github.RawConfig{Host: server.URL}), Options{})

	result, err := s.Scan(context.Background(), testRepo)
	require.NoError(t, err)

	assert.Empty(t, result.Failures)
	assert.Equal(t, 2, result.Candidates)
	assert.Equal(t, lister.listing.Commit, result.Commit)
	assert.NotEmpty(t, result.ID)
	require.Len(t, result.Packages, 3)

	kinds := map[string]versioning.ConstraintKind{}
	for _, p := range result.Packages {
		kinds[p.ID] = p.Version.Kind
	}
	assert.Equal(t, map[string]versioning.ConstraintKind{
		"Newtonsoft.Json": versioning.Any,
		"Serilog":         versioning.Ranged,
		"NUnit":           versioning.Exact,
	}, kinds)

	nunit := result.PackagesFrom("lib/packages.config")
	require.Len(t, nunit, 1)
	assert.Equal(t, "net48", nunit[0].Framework)
}

func TestScan_MissingFileIsOnlyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/contoso/widgets/main/app.csproj" {
			io.WriteString(w, appProject)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	lister := staticLister{listing: &gittree.Listing{
		Commit: "abc",
		Paths:  []string{"app.csproj", "gone/packages.config"},
	}}
	s := New(lister, github.NewRawClient(github.RawConfig{Host: server.URL}), Options{})

	result, err := s.Scan(context.Background(), testRepo)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "gone/packages.config", result.Failures[0].Path)
	assert.Equal(t, string(apperrors.ErrCodeHTTP), result.Failures[0].Code)
	assert.Contains(t, result.Failures[0].Error, "404")
	assert.Len(t, result.Packages, 2)
	assert.Empty(t, result.PackagesFrom("gone/packages.config"))
}

func TestScan_InvalidVersionFailsOnlyThatFile(t *testing.T) {
	fetcher := &mapFetcher{files: map[string]string{
		"good.csproj": appProject,
		"bad.csproj":  `<Project><ItemGroup><PackageReference Include="X" Version="not-a-version" /></ItemGroup></Project>`,
	}}
	lister := staticLister{listing: &gittree.Listing{Commit: "c", Paths: []string{"good.csproj", "bad.csproj"}}}

	result, err := New(lister, fetcher, Options{}).Scan(context.Background(), testRepo)
	require.NoError(t, err)

	assert.Equal(t, []string{"bad.csproj"}, result.FailedPaths())
	assert.Equal(t, string(apperrors.ErrCodeParse), result.Failures[0].Code)
	assert.Empty(t, result.PackagesFrom("bad.csproj"))
	assert.Len(t, result.PackagesFrom("good.csproj"), 2)
}

func TestScan_ListingErrorAborts(t *testing.T) {
	listErr := apperrors.Wrap(apperrors.ErrCodeNetwork, errors.New("connection refused"), "fetch")
	fetcher := &mapFetcher{}
	s := New(staticLister{err: listErr}, fetcher, Options{})

	result, err := s.Scan(context.Background(), testRepo)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNetwork))
	assert.Contains(t, err.Error(), "contoso/widgets")
	assert.Zero(t, fetcher.calls.Load())
}

func TestScan_EmptyListing(t *testing.T) {
	s := New(staticLister{listing: &gittree.Listing{}}, &mapFetcher{}, Options{})

	result, err := s.Scan(context.Background(), testRepo)
	require.NoError(t, err)
	assert.Zero(t, result.Candidates)
	assert.Empty(t, result.Packages)
	assert.Empty(t, result.Failures)
}

// manyFiles builds n manifests, every fifth one missing from the fetcher and
// every seventh one malformed.
func manyFiles(n int) ([]deps.FileEntry, *mapFetcher) {
	fetcher := &mapFetcher{files: map[string]string{}}
	var entries []deps.FileEntry
	for i := range n {
		var path string
		if i%2 == 0 {
			path = fmt.Sprintf("src/P%d/P%d.csproj", i, i)
			fetcher.files[path] = fmt.Sprintf(
				`<Project><ItemGroup><PackageReference Include="Pkg%d" Version="%d.0.0" /><PackageReference Include="Shared" /></ItemGroup></Project>`, i, i+1)
		} else {
			path = fmt.Sprintf("legacy/L%d/packages.config", i)
			fetcher.files[path] = fmt.Sprintf(`<packages><package id="Legacy%d" version="1.%d.0" /></packages>`, i, i)
		}
		switch {
		case i%5 == 0:
			delete(fetcher.files, path)
		case i%7 == 0:
			fetcher.files[path] = "<Project><PackageReference"
		}
		entries = append(entries, deps.FileEntry{Path: path, Kind: deps.Classify(path)})
	}
	return entries, fetcher
}

func TestScanFiles_WidthIndependent(t *testing.T) {
	entries, fetcher := manyFiles(100)

	var baseline *deps.ScanResult
	for _, width := range []int{1, 8, 32} {
		s := New(nil, fetcher, Options{Workers: width})
		result := s.ScanFiles(context.Background(), testRepo, entries)

		assert.Equal(t, len(entries), result.Candidates)
		if baseline == nil {
			baseline = result
			require.NotEmpty(t, result.Packages)
			require.NotEmpty(t, result.Failures)
			continue
		}
		assert.ElementsMatch(t, baseline.Packages, result.Packages, "packages differ at width %d", width)
		assert.ElementsMatch(t, baseline.Failures, result.Failures, "failures differ at width %d", width)
	}
}

func TestScanFiles_OutcomeCounts(t *testing.T) {
	entries, fetcher := manyFiles(20)
	result := New(nil, fetcher, Options{Workers: 4}).ScanFiles(context.Background(), testRepo, entries)

	// i%5==0: 0,5,10,15 missing. i%7==0 and not %5: 7,14 malformed.
	assert.Len(t, result.Failures, 6)
	for _, f := range result.Failures {
		assert.Empty(t, result.PackagesFrom(f.Path), "references emitted from failed file %s", f.Path)
	}
	assert.Equal(t, int32(20), fetcher.calls.Load())
}

type panicParser struct{}

func (panicParser) Kind() deps.ManifestKind { return deps.LegacyPackagesManifest }
func (panicParser) Parse(io.Reader, string) ([]deps.PackageReference, error) {
	panic("boom")
}

func TestScanFiles_PanicBecomesFailure(t *testing.T) {
	fetcher := &mapFetcher{files: map[string]string{
		"a.csproj":        appProject,
		"packages.config": libPackages,
	}}
	entries := deps.Candidates([]string{"a.csproj", "packages.config"})
	parsers := []deps.ManifestParser{panicParser{}}
	parsers = append(parsers, New(nil, nil, Options{}).opts.Parsers...)

	result := New(nil, fetcher, Options{Parsers: parsers}).ScanFiles(context.Background(), testRepo, entries)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "packages.config", result.Failures[0].Path)
	assert.Equal(t, string(apperrors.ErrCodeInternal), result.Failures[0].Code)
	assert.Contains(t, result.Failures[0].Error, "boom")
	assert.Len(t, result.Packages, 2)
}

func TestScanFiles_CancelledContext(t *testing.T) {
	entries, fetcher := manyFiles(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := New(nil, fetcher, Options{}).ScanFiles(ctx, testRepo, entries)
	assert.Len(t, result.Failures, 10)
	assert.Empty(t, result.Packages)
	assert.Zero(t, fetcher.calls.Load())
}

func TestScan_CachesCleanResults(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	fetcher := &mapFetcher{files: map[string]string{"app.csproj": appProject}}
	lister := staticLister{listing: &gittree.Listing{Commit: "c1", Paths: []string{"app.csproj"}}}
	s := New(lister, fetcher, Options{Cache: fc})
	ctx := context.Background()

	first, err := s.Scan(ctx, testRepo)
	require.NoError(t, err)
	second, err := s.Scan(ctx, testRepo)
	require.NoError(t, err)

	assert.Equal(t, int32(1), fetcher.calls.Load(), "second scan of the same commit should not fetch")
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Packages, 2)
	assert.Equal(t, first.Packages[1].Version.String(), second.Packages[1].Version.String())

	refreshing := New(lister, fetcher, Options{Cache: fc, Refresh: true})
	_, err = refreshing.Scan(ctx, testRepo)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestScan_DoesNotCacheFailures(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	fetcher := &mapFetcher{files: map[string]string{}}
	lister := staticLister{listing: &gittree.Listing{Commit: "c1", Paths: []string{"app.csproj"}}}
	s := New(lister, fetcher, Options{Cache: fc})
	ctx := context.Background()

	for range 2 {
		result, err := s.Scan(ctx, testRepo)
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
	}
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{}.WithDefaults()
	assert.Equal(t, DefaultWorkers, opts.Workers)
	assert.Len(t, opts.Parsers, 2)
	assert.NotNil(t, opts.Logger)
	assert.NotNil(t, opts.Cache)

	opts = Options{Workers: 3}.WithDefaults()
	assert.Equal(t, 3, opts.Workers)
}
