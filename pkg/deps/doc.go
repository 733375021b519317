// Package deps defines the data model shared by the manifest scanning
// pipeline.
//
// # Overview
//
// A repository scan turns a [Repository] into a [ScanResult]:
//
//  1. The tree lister ([gittree]) produces every file path on the branch
//  2. [Classify] tags each path with a [ManifestKind]
//  3. The scan coordinator ([scan]) fetches candidates and hands their
//     content to the [ManifestParser] registered for that kind
//  4. Parsers emit [PackageReference] values, which are appended to the
//     result as-is
//
// # Classification
//
// Classification is a pure function of the path string, computed once per
// path and carried as data:
//
//	deps.Classify("src/App/App.csproj")     // ProjectManifest
//	deps.Classify("lib/packages.config")    // LegacyPackagesManifest
//	deps.Classify("README.md")              // Ignored
//
// # Package References
//
// References are never merged or deduplicated here. Two projects declaring
// the same package produce two references with different origins;
// deduplication, if desired, is a reporting concern.
//
// [gittree]: github.com/loic-sharma/NuGet.Dependents/pkg/gittree
// [scan]: github.com/loic-sharma/NuGet.Dependents/pkg/scan
package deps
