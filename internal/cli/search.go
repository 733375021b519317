package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations/github"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		language string
		page     int
		perPage  int
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the most-starred repositories of a language",
		Example: `  dependents search --language C#
  dependents search --language F# --page 2 --per-page 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			integrations.InitHTTPClient(integrations.HTTPConfig{MaxConnsPerHost: cfg.MaxConnections})

			store, err := openCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			client := github.NewSearchClient(github.SearchConfig{
				BaseURL:  cfg.APIURL,
				Token:    cfg.Token,
				Cache:    store,
				CacheTTL: cfg.Cache.TTL,
			})
			result, err := client.SearchRepositories(ctx, github.SearchOptions{
				Language: language,
				Page:     page,
				PerPage:  perPage,
				Refresh:  refresh,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range result.Repositories {
				fmt.Fprintf(out, "%s\t%d\t%s\n", r.FullName(), r.Stars, r.DefaultBranch)
			}
			printKeyValue("Matches", strconv.Itoa(result.Total))
			printKeyValue("Shown", StyleNumber.Render(strconv.Itoa(len(result.Repositories))))
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "C#", "primary repository language")
	cmd.Flags().IntVar(&page, "page", 1, "result page (1-based)")
	cmd.Flags().IntVar(&perPage, "per-page", 30, "results per page (max 100)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses")

	return cmd
}
