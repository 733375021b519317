package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/loic-sharma/NuGet.Dependents/pkg/deps"
	pkgio "github.com/loic-sharma/NuGet.Dependents/pkg/io"
)

// showCommand creates the show command, which prints saved results as text.
func (c *CLI) showCommand() *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "show <results.json>",
		Short: "Print saved scan results as text",
		Example: `  dependents show results.jsonl
  dependents show results.json --origin src/App/App.csproj`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, r := range results {
				if origin != "" {
					r = fromOrigin(r, origin)
				}
				if err := writeResult(out, r, formatText, i > 0); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "only show references and failures from this manifest path")

	return cmd
}

// fromOrigin returns a copy of r narrowed to one manifest path.
func fromOrigin(r *deps.ScanResult, path string) *deps.ScanResult {
	narrowed := *r
	narrowed.Packages = r.PackagesFrom(path)
	narrowed.Failures = nil
	for _, f := range r.Failures {
		if strings.EqualFold(f.Path, path) {
			narrowed.Failures = append(narrowed.Failures, f)
		}
	}
	return &narrowed
}
