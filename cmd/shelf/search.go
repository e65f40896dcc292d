package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
)

func (c *cli) newSearchCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Open Library catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				result, err := env.Catalog.Search(ctx, query, page)
				if err != nil {
					return err
				}
				printPage(cmd.OutOrStdout(), result, env.List.Contains)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page")
	return cmd
}
