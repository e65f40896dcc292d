package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/shelf/internal/app"
)

func (c *cli) newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a book from the reading list",
		Long:  `Asks for confirmation on stdin unless --yes is given. Anything but y or yes keeps the book.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return c.withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				book, ok := env.List.Snapshot().Find(key)
				if !ok {
					return fmt.Errorf("%s is not on the reading list", key)
				}
				if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove %q?", book.Title)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
				if _, err := env.List.Remove(ctx, key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", book.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking")
	return cmd
}

// confirm asks a y/N question. EOF or a read error counts as no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
