package scan

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/loic-sharma/NuGet.Dependents/pkg/cache"
	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	"github.com/loic-sharma/NuGet.Dependents/pkg/deps/nuget"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/gittree"
	"github.com/loic-sharma/NuGet.Dependents/pkg/observability"
)

// DefaultWorkers is the pool width used when Options.Workers is unset.
const DefaultWorkers = 32

// Lister produces the file listing of a branch.
type Lister interface {
	List(ctx context.Context, cloneURL, branch string) (*gittree.Listing, error)
}

// Fetcher retrieves the content of one file at the repository's default
// branch.
type Fetcher interface {
	GetContent(ctx context.Context, repo deps.Repository, path string) (io.ReadCloser, error)
}

// GitLister lists branches with go-git.
type GitLister struct {
	Options gittree.Options
}

// List implements Lister.
func (l GitLister) List(ctx context.Context, cloneURL, branch string) (*gittree.Listing, error) {
	return gittree.List(ctx, cloneURL, branch, l.Options)
}

// Options configures a Scanner.
type Options struct {
	Workers  int                   // pool width (default 32)
	Parsers  []deps.ManifestParser // default nuget.Parsers()
	Logger   *log.Logger           // default discards
	Cache    cache.Cache           // default NullCache
	CacheTTL time.Duration         // zero keeps entries until cleared
	Refresh  bool                  // ignore cached results
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if len(opts.Parsers) == 0 {
		opts.Parsers = nuget.Parsers()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	return opts
}

// Scanner scans repositories. It is safe for concurrent use.
type Scanner struct {
	lister  Lister
	fetcher Fetcher
	opts    Options
}

// New creates a Scanner.
func New(lister Lister, fetcher Fetcher, opts Options) *Scanner {
	return &Scanner{lister: lister, fetcher: fetcher, opts: opts.WithDefaults()}
}

// Scan lists repo's default branch and scans every manifest on it. A
// listing failure aborts the repository and is returned as the error; an
// unresolvable branch gives an empty result.
func (s *Scanner) Scan(ctx context.Context, repo deps.Repository) (*deps.ScanResult, error) {
	start := time.Now()
	logger := s.opts.Logger.With("repo", repo.FullName())
	hooks := observability.Scan()

	hooks.OnListStart(ctx, repo.CloneURL, repo.DefaultBranch)
	listing, err := s.lister.List(ctx, repo.CloneURL, repo.DefaultBranch)
	fileCount := 0
	if listing != nil {
		fileCount = len(listing.Paths)
	}
	hooks.OnListComplete(ctx, repo.CloneURL, fileCount, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", repo.FullName(), err)
	}
	logger.Debug("listed files", "commit", listing.Commit, "files", fileCount, "elapsed", time.Since(start).Round(time.Millisecond))

	key := cache.ScanKey(repo.CloneURL, listing.Commit)
	if listing.Commit != "" && !s.opts.Refresh {
		var cached deps.ScanResult
		if ok, err := cache.GetJSON(ctx, s.opts.Cache, key, &cached); err != nil {
			logger.Warn("cache read failed", "err", err)
		} else if ok {
			logger.Debug("cached result", "commit", listing.Commit)
			cached.Repository = repo
			cached.Cached = true
			return &cached, nil
		}
	}

	entries := deps.Candidates(listing.Paths)
	logger.Debug("classified", "candidates", len(entries))

	result := s.ScanFiles(ctx, repo, entries)
	result.Commit = listing.Commit
	result.Duration = time.Since(start)

	if listing.Commit != "" && len(result.Failures) == 0 {
		if err := cache.SetJSON(ctx, s.opts.Cache, key, result, s.opts.CacheTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}
	return result, nil
}

type outcome struct {
	path string
	refs []deps.PackageReference
	err  error
}

// ScanFiles fetches and parses entries on the worker pool. It never fails as
// a whole: per-file problems are recorded in the result's Failures.
func (s *Scanner) ScanFiles(ctx context.Context, repo deps.Repository, entries []deps.FileEntry) *deps.ScanResult {
	start := time.Now()
	result := &deps.ScanResult{
		ID:         uuid.NewString(),
		Repository: repo,
		Candidates: len(entries),
		Packages:   []deps.PackageReference{},
		Failures:   []deps.Failure{},
	}

	jobs := make(chan deps.FileEntry, len(entries))
	for _, e := range entries {
		jobs <- e
	}
	close(jobs)

	workers := min(s.opts.Workers, len(entries))
	results := make(chan outcome, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				results <- s.process(ctx, repo, e)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for o := range results {
		if o.err != nil {
			s.opts.Logger.Debug("file failed", "repo", repo.FullName(), "path", o.path, "err", o.err)
			result.Failures = append(result.Failures, failure(o.path, o.err))
			continue
		}
		result.Packages = append(result.Packages, o.refs...)
	}

	// Arrival order depends on scheduling; group by file for stable output.
	sort.SliceStable(result.Packages, func(i, j int) bool {
		return result.Packages[i].Origin < result.Packages[j].Origin
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})

	result.Duration = time.Since(start)
	observability.Scan().OnScanComplete(ctx, repo.FullName(), len(result.Packages), len(result.Failures), result.Duration)
	return result
}

func (s *Scanner) process(ctx context.Context, repo deps.Repository, e deps.FileEntry) (o outcome) {
	o.path = e.Path
	hooks := observability.Scan()
	start := time.Now()
	hooks.OnFileStart(ctx, e.Path)

	defer func() {
		if r := recover(); r != nil {
			o.err = apperrors.New(apperrors.ErrCodeInternal, "panic processing %s: %v", e.Path, r)
		}
		if o.err != nil {
			o.refs = nil
		}
		hooks.OnFileComplete(ctx, e.Path, len(o.refs), time.Since(start), o.err)
	}()

	o.refs, o.err = s.extract(ctx, repo, e)
	return o
}

func (s *Scanner) extract(ctx context.Context, repo deps.Repository, e deps.FileEntry) ([]deps.PackageReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parser, err := deps.SelectParser(e.Kind, s.opts.Parsers...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "%s", e.Path)
	}

	body, err := s.fetcher.GetContent(ctx, repo, e.Path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parser.Parse(body, e.Path)
}

func failure(path string, err error) deps.Failure {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	return deps.Failure{Path: path, Code: string(code), Error: err.Error()}
}
