package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
	"github.com/five82/shelf/internal/readinglist"
)

func (c *cli) newReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <status> <from> <to>",
		Short: "Move a book to another position within its section",
		Long: `Positions are 1-based and match the numbers printed by "shelf list".
The book at <from> is taken out and inserted at <to>; the books in between
shift by one. Other sections are not affected.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := readinglist.ParseStatus(args[0])
			if err != nil {
				return err
			}
			from, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				if err := env.List.Reorder(ctx, status, from-1, to-1); err != nil {
					return err
				}
				printSection(cmd.OutOrStdout(), status, env.List.Partition(status))
				return nil
			})
		},
	}
}

func parsePosition(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("position %q: want a number from 1", value)
	}
	return n, nil
}
