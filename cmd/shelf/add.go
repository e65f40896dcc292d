package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
	"github.com/five82/shelf/internal/readinglist"
)

func (c *cli) newAddCmd() *cobra.Command {
	var (
		page int
		pick int
	)

	cmd := &cobra.Command{
		Use:   "add <query>",
		Short: "Search the catalog and add a result to the backlog",
		Long: `Runs the same search as "shelf search" and adds the result at position
--pick (default the first). New books always start in the backlog.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				result, err := env.Catalog.Search(ctx, query, page)
				if err != nil {
					return err
				}
				if pick < 1 || pick > len(result.Docs) {
					return fmt.Errorf("no result %d for %q on page %d (%d results)", pick, query, result.Number, len(result.Docs))
				}
				book := result.Docs[pick-1].Book()
				if err := env.List.Add(ctx, book); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", book.Title, readinglist.StatusBacklog.Label())
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page")
	cmd.Flags().IntVar(&pick, "pick", 1, "1-based result to add")
	return cmd
}
