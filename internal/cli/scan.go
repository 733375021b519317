package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/gittree"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations/github"
	"github.com/loic-sharma/NuGet.Dependents/pkg/scan"
)

// Output formats.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatLines = "jsonl"
)

type scanFlags struct {
	workers  int
	format   string
	output   string
	noCache  bool
	refresh  bool
	language string
	pages    int
	perPage  int
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan [owner/repo | url...]",
		Short: "Scan repositories for NuGet package references",
		Long: `Scan lists each repository's default branch without cloning it, fetches
every .csproj, .fsproj, .vbproj and packages.config file, and prints the
package references they declare.

Repositories are given as owner/repo arguments or GitHub clone URLs, or
discovered with --language, most-starred first.`,
		Example: `  dependents scan NuGet/NuGet.Client
  dependents scan https://github.com/NuGet/NuGet.Client.git
  dependents scan --language C# --pages 2 --format jsonl -o results.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.language == "" {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "give owner/repo arguments or --language")
			}
			switch flags.format {
			case formatText, formatJSON, formatLines:
			default:
				return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown format %q (want text, json or jsonl)", flags.format)
			}
			return c.runScan(cmd, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent file fetches per repository (default from config, 32)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, json or jsonl")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "rescan even when a cached result exists")
	cmd.Flags().StringVar(&flags.language, "language", "", "discover repositories by primary language (e.g. C#)")
	cmd.Flags().IntVar(&flags.pages, "pages", 1, "search result pages to scan with --language")
	cmd.Flags().IntVar(&flags.perPage, "per-page", 30, "repositories per search page")

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, args []string, flags scanFlags) error {
	ctx := cmd.Context()
	cfg, err := c.scanConfig(flags)
	if err != nil {
		return err
	}

	integrations.InitHTTPClient(integrations.HTTPConfig{MaxConnsPerHost: cfg.MaxConnections})

	store, err := openCache(ctx, cfg.Cache, flags.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	searcher := github.NewSearchClient(github.SearchConfig{
		BaseURL:  cfg.APIURL,
		Token:    cfg.Token,
		Cache:    store,
		CacheTTL: cfg.Cache.TTL,
	})

	repos, err := c.resolveRepos(ctx, searcher, args, flags)
	if err != nil {
		return err
	}

	scanner := scan.New(
		scan.GitLister{Options: gittree.Options{Token: cfg.Token, Logger: c.Logger}},
		github.NewRawClient(github.RawConfig{Host: cfg.ContentHost, Token: cfg.Token}),
		scan.Options{
			Workers:  cfg.Workers,
			Logger:   c.Logger,
			Cache:    store,
			CacheTTL: cfg.Cache.TTL,
			Refresh:  flags.refresh,
		},
	)

	sink, err := newResultSink(cmd.OutOrStdout(), flags.format, flags.output)
	if err != nil {
		return err
	}
	defer sink.Close()

	total := newProgress(c.Logger)
	var failed int
	for _, repo := range repos {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result, err := c.scanOne(ctx, scanner, repo)
		if err != nil {
			failed++
			printError("%s: %s", repo.FullName(), apperrors.UserMessage(err))
			c.Logger.Debug("scan failed", "repo", repo.FullName(), "err", err)
			continue
		}
		if err := sink.Write(result); err != nil {
			return err
		}
	}
	if err := sink.Close(); err != nil {
		return err
	}

	printSuccess("Finished %d repositories in %s", len(repos)-failed, total.elapsed())
	if failed > 0 {
		printWarning("%d repositories could not be listed", failed)
	}
	if flags.output != "" {
		printDetail("Results: %s", flags.output)
	}
	return nil
}

// scanConfig loads the config and applies --workers. A worker count above
// max_connections raises the connection limit to match.
func (c *CLI) scanConfig(flags scanFlags) (Config, error) {
	cfg, err := c.config()
	if err != nil {
		return Config{}, err
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if cfg.MaxConnections < cfg.Workers {
		c.Logger.Warn("Raising max_connections to the worker count", "max_connections", cfg.MaxConnections, "workers", cfg.Workers)
		cfg.MaxConnections = cfg.Workers
	}
	return cfg, nil
}

func (c *CLI) scanOne(ctx context.Context, scanner *scan.Scanner, repo deps.Repository) (*deps.ScanResult, error) {
	prog := newProgress(c.Logger)
	var spinner *Spinner
	if interactive() && c.Logger.GetLevel() > LogDebug {
		spinner = newSpinnerWithContext(ctx, statusOut, "Scanning "+repo.FullName()+"...")
		spinner.Start()
	}
	result, err := scanner.Scan(ctx, repo)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}

	printInfo("%s %s", StyleTitle.Render(repo.FullName()), StyleDim.Render(fmt.Sprintf("(%d stars)", repo.Stars)))
	printScanStats(result.Candidates, len(result.Packages), len(result.Failures), result.Cached)
	if len(result.Failures) > 0 {
		c.Logger.Warn("Some manifests could not be read", "repo", repo.FullName(), "paths", result.FailedPaths())
	}
	prog.done("Scanned "+repo.FullName(), "refs", len(result.Packages), "failures", len(result.Failures))
	return result, nil
}

// resolveRepos turns owner/repo arguments into repositories, or pages
// through search results when a language is given.
func (c *CLI) resolveRepos(ctx context.Context, searcher *github.SearchClient, args []string, flags scanFlags) ([]deps.Repository, error) {
	var repos []deps.Repository
	for _, arg := range args {
		owner, name, err := github.ParseRepoRef(arg)
		if err != nil {
			return nil, err
		}
		repo, err := searcher.Repository(ctx, owner, name, flags.refresh)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	if flags.language != "" {
		for page := 1; page <= max(flags.pages, 1); page++ {
			result, err := searcher.SearchRepositories(ctx, github.SearchOptions{
				Language: flags.language,
				Page:     page,
				PerPage:  flags.perPage,
				Refresh:  flags.refresh,
			})
			if err != nil {
				return nil, err
			}
			repos = append(repos, result.Repositories...)
			if len(result.Repositories) == 0 {
				break
			}
		}
		c.Logger.Info("Discovered repositories", "language", flags.language, "count", len(repos))
	}
	return repos, nil
}
