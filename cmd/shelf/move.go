package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
	"github.com/five82/shelf/internal/readinglist"
)

func (c *cli) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <key> <status>",
		Short: "Move a book to backlog, reading (in progress) or done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			status, err := readinglist.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				book, ok := env.List.Snapshot().Find(key)
				if !ok {
					return fmt.Errorf("%s is not on the reading list", key)
				}
				if err := env.List.Move(ctx, key, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", book.Title, status.Label())
				return nil
			})
		},
	}
}
