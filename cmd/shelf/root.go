package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/shelf/internal/app"
	"github.com/five82/shelf/internal/config"
)

// cli carries the settings shared by every subcommand. Each root command
// gets its own viper instance so flags and SHELF_* variables never leak
// between invocations.
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "shelf",
		Short: "Personal reading list backed by the Open Library catalog",
		Long: `shelf keeps a reading list in three sections: backlog, in progress and done.
Run it without a subcommand for the interactive view, or use the subcommands
to script the list from a shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), c.options())
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ~/.config/shelf/config.toml)")
	flags.String("prefs", "", "preferences file (default ~/.config/shelf/prefs.toml)")
	flags.String("backend", "", "storage backend: file, sqlite or memory (or SHELF_BACKEND)")
	flags.String("data", "", "reading list location (or SHELF_DATA)")
	flags.String("log-level", "", "log level: debug, info, warn, error (or SHELF_LOG_LEVEL)")
	flags.Bool("ephemeral", false, "keep the list in memory; nothing is saved")

	_ = c.v.BindPFlag("config", flags.Lookup("config"))
	_ = c.v.BindPFlag("prefs", flags.Lookup("prefs"))
	_ = c.v.BindPFlag("backend", flags.Lookup("backend"))
	_ = c.v.BindPFlag("data", flags.Lookup("data"))
	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("ephemeral", flags.Lookup("ephemeral"))

	c.v.SetEnvPrefix("SHELF")
	c.v.AutomaticEnv()

	root.AddCommand(
		c.newListCmd(),
		c.newSearchCmd(),
		c.newAddCmd(),
		c.newMoveCmd(),
		c.newReorderCmd(),
		c.newRemoveCmd(),
		c.newLogsCmd(),
	)
	return root
}

func (c *cli) overrides() config.Overrides {
	return config.Overrides{
		StorageBackend: c.v.GetString("backend"),
		DataPath:       c.v.GetString("data"),
		LogLevel:       c.v.GetString("log_level"),
		CatalogURL:     c.v.GetString("catalog_url"),
	}
}

func (c *cli) options() app.Options {
	return app.Options{
		ConfigPath: c.v.GetString("config"),
		PrefsPath:  c.v.GetString("prefs"),
		Overrides:  c.overrides(),
		Ephemeral:  c.v.GetBool("ephemeral"),
	}
}

// config resolves the effective configuration without opening storage.
func (c *cli) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.v.GetString("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.Apply(c.overrides()), nil
}

// withEnv opens the reading list for the duration of fn.
func (c *cli) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *app.Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := app.Open(ctx, c.options())
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(ctx, env)
}
