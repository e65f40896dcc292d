package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/logging"
	"github.com/five82/shelf/internal/openlibrary"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/readinglist"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/storage"
	"github.com/five82/shelf/internal/ui"
)

// Options configure how shelf starts.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shelf/prefs.toml
	Overrides  config.Overrides
	Ephemeral  bool        // keep the list in memory only
	Logger     *zap.Logger // replaces the configured file logger when set
}

// Env holds the components shared by the TUI and the CLI commands.
type Env struct {
	Config  config.Config
	Backend storage.Backend
	Logger  *zap.Logger
	Store   storage.Store
	List    *readinglist.List
	Catalog *openlibrary.Client
}

// Open loads configuration, opens storage and reads the reading list. A
// corrupt or missing list starts empty; any other read failure is returned
// so nothing overwrites data shelf could not read.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(opts.Overrides)
	if opts.Ephemeral {
		cfg.StorageBackend = string(storage.BackendMemory)
	}

	backend, err := storage.ParseBackend(cfg.StorageBackend)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logging.New(logging.Options{
			Path:   cfg.LogPath(),
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})
		if err != nil {
			return nil, fmt.Errorf("init logging: %w", err)
		}
	}

	store, err := storage.Open(ctx, backend, cfg.DataFile())
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	list := readinglist.New(store, readinglist.WithLogger(logger))
	if err := list.Initialize(ctx); err != nil {
		_ = store.Close()
		_ = logger.Sync()
		return nil, err
	}

	catalog, err := openlibrary.NewClient(openlibrary.ClientConfig{
		BaseURL:           cfg.CatalogURL,
		PageSize:          cfg.PageSize,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		_ = store.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	logger.Info("reading list opened",
		zap.String("backend", string(backend)),
		zap.String("path", cfg.DataFile()),
		zap.Int("books", list.Snapshot().Len()),
	)

	return &Env{
		Config:  cfg,
		Backend: backend,
		Logger:  logger,
		Store:   store,
		List:    list,
		Catalog: catalog,
	}, nil
}

// Close releases storage and flushes the logger.
func (e *Env) Close() error {
	err := e.Store.Close()
	_ = e.Logger.Sync()
	return err
}

// Run boots the shelf TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn("preferences unreadable, using defaults", zap.Error(err))
	}

	// Keep the list in sync with edits from other shelf processes.
	var warnings chan error
	if fs, ok := env.Store.(*storage.FileStore); ok {
		if w, err := startWatcher(fs.Path()); err != nil {
			env.Logger.Warn("file watcher unavailable", zap.Error(err))
		} else {
			defer w.Stop()
			warnings = make(chan error, 1)
			StartReloader(ctx, env.List, w.Changes, fs, env.Logger, func(err error) {
				select {
				case warnings <- err:
				default:
				}
			})
		}
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		List:      env.List,
		Catalog:   env.Catalog,
		Store:     &state.Store{},
		Logger:    env.Logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LastQuery: userPrefs.LastQuery,
		DataPath:  displayPath(env),
		Warnings:  warnings,
	})
}

func startWatcher(path string) (*storage.Watcher, error) {
	w, err := storage.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

func displayPath(env *Env) string {
	if env.Backend == storage.BackendMemory {
		return "in memory"
	}
	return env.Config.DataFile()
}
