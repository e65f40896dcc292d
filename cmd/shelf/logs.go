package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/shelf/internal/logtail"
)

func (c *cli) newLogsCmd() *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of shelf's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			out, err := logtail.Tail(cfg.LogPath(), lines)
			if err != nil {
				return err
			}
			if level != "" {
				min, err := zapcore.ParseLevel(level)
				if err != nil {
					return fmt.Errorf("log level %q: %w", level, err)
				}
				out = logtail.Filter(out, min)
			}
			if len(out) == 0 {
				cmd.PrintErrf("no log entries in %s\n", cfg.LogPath())
				return nil
			}
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "number of lines; 0 prints the whole file")
	cmd.Flags().StringVar(&level, "level", "", "only entries at or above this level")
	return cmd
}
