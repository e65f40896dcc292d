package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
	"github.com/five82/shelf/internal/readinglist"
)

func (c *cli) newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the reading list by section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := readinglist.Statuses()
			if status != "" {
				s, err := readinglist.ParseStatus(status)
				if err != nil {
					return err
				}
				statuses = []readinglist.Status{s}
			}

			return c.withEnv(cmd, func(_ context.Context, env *app.Env) error {
				snap := env.List.Snapshot()
				out := cmd.OutOrStdout()
				for i, s := range statuses {
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					printSection(out, s, snap.Partition(s))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "only show one section (backlog, reading, done)")
	return cmd
}
