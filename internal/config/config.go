package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures shelf's runtime settings.
type Config struct {
	StorageBackend    string
	DataPath          string // empty selects a default per backend, see DataFile
	LogDir            string
	LogLevel          string
	LogFormat         string
	CatalogURL        string
	PageSize          int
	RequestsPerSecond float64
}

// Overrides carries values from flags or environment. Empty fields leave
// the loaded value alone.
type Overrides struct {
	StorageBackend string
	DataPath       string
	LogLevel       string
	CatalogURL     string
}

const (
	defaultConfigPath = "~/.config/shelf/config.toml"
	defaultDataDir    = "~/.local/share/shelf"
	defaultLogDir     = "~/.local/share/shelf/logs"
	defaultBackend    = "file"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultCatalogURL = "https://openlibrary.org"
	defaultPageSize   = 20
	defaultRPS        = 2.0
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		StorageBackend:    defaultBackend,
		LogDir:            mustExpand(defaultLogDir),
		LogLevel:          defaultLogLevel,
		LogFormat:         defaultLogFormat,
		CatalogURL:        defaultCatalogURL,
		PageSize:          defaultPageSize,
		RequestsPerSecond: defaultRPS,
	}
}

// Load locates and parses the shelf config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		StorageBackend    string  `toml:"storage_backend"`
		DataPath          string  `toml:"data_path"`
		LogDir            string  `toml:"log_dir"`
		LogLevel          string  `toml:"log_level"`
		LogFormat         string  `toml:"log_format"`
		CatalogURL        string  `toml:"catalog_url"`
		PageSize          int     `toml:"page_size"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.ToLower(strings.TrimSpace(raw.StorageBackend)); v != "" {
		cfg.StorageBackend = v
	}
	if v := strings.TrimSpace(raw.DataPath); v != "" {
		cfg.DataPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogFormat)); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(raw.CatalogURL); v != "" {
		cfg.CatalogURL = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	return cfg, nil
}

// Apply returns c with the non-empty overrides applied.
func (c Config) Apply(o Overrides) Config {
	if v := strings.ToLower(strings.TrimSpace(o.StorageBackend)); v != "" {
		c.StorageBackend = v
	}
	if v := strings.TrimSpace(o.DataPath); v != "" {
		c.DataPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(o.LogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(o.CatalogURL); v != "" {
		c.CatalogURL = v
	}
	return c
}

// DataFile returns where the reading list is stored. Without an explicit
// data_path the file name depends on the backend.
func (c Config) DataFile() string {
	if strings.TrimSpace(c.DataPath) != "" {
		return c.DataPath
	}
	name := "reading-list.json"
	if c.StorageBackend == "sqlite" {
		name = "shelf.db"
	}
	return filepath.Join(mustExpand(defaultDataDir), name)
}

// LogPath returns the path to shelf's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/shelf.log")
	}
	return filepath.Join(c.LogDir, "shelf.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
