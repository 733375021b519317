// Package scan extracts package references from every manifest in a
// repository.
//
// # Pipeline
//
// [Scanner.Scan] runs the full pipeline for one repository:
//
//  1. list the default branch's files through a [Lister] (normally go-git)
//  2. keep the paths [deps.Classify] recognizes as manifests
//  3. fetch and parse every candidate on a bounded worker pool
//  4. aggregate references and per-file failures into a [deps.ScanResult]
//
// [Scanner.ScanFiles] runs steps 3 and 4 on an already classified list.
//
// # Concurrency
//
// Candidates are queued on a pre-filled, closed channel drained by
// [Options.Workers] goroutines (default 32). Each worker sends its outcome to
// the calling goroutine, which is the only writer of the result. A fetch
// error, parse error or panic while processing one file becomes a
// [deps.Failure] and never stops the other files. The scan returns only
// after every worker has exited.
//
// # Caching
//
// With [Options.Cache] set, a result with no failures is stored under the
// clone URL and resolved commit. Scanning the same commit again returns the
// stored result without fetching any content.
package scan
