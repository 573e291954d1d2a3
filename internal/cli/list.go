package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List available recipes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			summaries, err := deps.Recipes.List(ctx)
			if len(args) == 1 {
				summaries, err = deps.Recipes.Search(ctx, args[0])
			}
			if err != nil {
				return fmt.Errorf("listing recipes: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No recipes found")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTEPS\tTAGS")
			for _, r := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Name, r.StepCount, strings.Join(r.Tags, ", "))
			}
			return tw.Flush()
		},
	}

	return cmd
}
