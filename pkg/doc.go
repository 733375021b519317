// Package pkg provides the libraries behind the dependents scanner.
//
// # Overview
//
// dependents reports the NuGet packages that GitHub repositories reference.
// For each repository it lists the files of the default branch without
// checking anything out, fetches the manifests by raw URL, and parses them
// concurrently. The pkg directory is organized by concern:
//
//  1. [gittree] - Fetch a branch's objects and walk its tree into a path set
//  2. [scan] - Classify candidates and run the fetch/parse worker pool
//  3. [deps] and [deps/nuget] - Result types and the csproj/packages.config parsers
//  4. [versioning] - NuGet versions, ranges and constraints
//  5. [integrations] - HTTP client plus GitHub search and raw content access
//  6. [cache], [httputil], [observability] - Caching, retries and event hooks
//  7. [io] - Text and JSON output
//
// # Architecture
//
//	Repository (owner/name, clone URL, branch)
//	         ↓
//	    [gittree] package (list every file path)
//	         ↓
//	    [scan] package (select manifests, fetch and parse in parallel)
//	         ↓
//	    [deps.ScanResult] (package references + per-file failures)
//	         ↓
//	    [io] package (text, JSON or JSON Lines)
//
// # Quick Start
//
//	import (
//	    "github.com/loic-sharma/NuGet.Dependents/pkg/deps"
//	    "github.com/loic-sharma/NuGet.Dependents/pkg/integrations/github"
//	    pkgio "github.com/loic-sharma/NuGet.Dependents/pkg/io"
//	    "github.com/loic-sharma/NuGet.Dependents/pkg/scan"
//	)
//
//	scanner := scan.New(scan.GitLister{}, github.NewRawClient(github.RawConfig{}), scan.Options{})
//	result, err := scanner.Scan(ctx, deps.Repository{
//	    Owner:         "NuGet",
//	    Name:          "NuGet.Client",
//	    CloneURL:      "https://github.com/NuGet/NuGet.Client.git",
//	    DefaultBranch: "dev",
//	})
//	if err != nil {
//	    return err
//	}
//	pkgio.WriteText(result, os.Stdout)
//
// A failed file never fails the scan: it is recorded in ScanResult.Failures
// and the other files are still parsed. Only a listing failure aborts.
//
// [gittree]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/gittree
// [scan]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/scan
// [deps]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/deps
// [deps/nuget]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/deps/nuget
// [deps.ScanResult]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/deps#ScanResult
// [versioning]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/versioning
// [integrations]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/observability
// [io]: https://pkg.go.dev/github.com/loic-sharma/NuGet.Dependents/pkg/io
package pkg
