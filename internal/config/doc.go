// Package config loads shelf's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelf/config.toml
//  3. If the file doesn't exist, fall back to Default
//  4. Missing or blank fields keep their defaults
//
// # TOML Format
//
//	storage_backend = "file"        # file, sqlite or memory
//	data_path = "~/books/list.json" # optional, depends on backend
//	log_dir = "~/.local/share/shelf/logs"
//	log_level = "info"
//	log_format = "console"          # console or json
//	catalog_url = "https://openlibrary.org"
//	page_size = 20
//	requests_per_second = 2
//
// Tilde paths are expanded and relative paths made absolute.
//
// # Overrides
//
// The command line layers flags and SHELF_* environment variables on top of
// the file through Apply. Only non-empty override fields win:
//
//	cfg, err := config.Load(path)
//	cfg = cfg.Apply(config.Overrides{StorageBackend: "sqlite"})
//	store, err := storage.Open(ctx, backend, cfg.DataFile())
//
// Missing config files are not an error; shelf works without one.
package config
