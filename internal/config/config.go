// Package config loads hanzidrill settings from YAML and the environment.
package config

import (
	"time"

	"github.com/abhisek/hanzidrill/internal/llm"
)

// Config is the root configuration.
type Config struct {
	Data  DataConfig  `yaml:"data"`
	Store StoreConfig `yaml:"store"`
	LLM   llm.Config  `yaml:"llm"`
	Check CheckConfig `yaml:"check"`
	Log   LogConfig   `yaml:"log"`
}

// DataConfig locates the dataset catalog and the files it names.
type DataConfig struct {
	// Catalog is a YAML dataset list; empty means the built-in catalog.
	Catalog string `yaml:"catalog"  env:"HANZIDRILL_CATALOG"`
	BaseDir string `yaml:"base_dir" env:"HANZIDRILL_DATA_DIR" env-default:"."`
	// BaseURL, when set, resolves relative dataset paths over HTTP instead
	// of BaseDir.
	BaseURL string        `yaml:"base_url" env:"HANZIDRILL_DATA_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"HANZIDRILL_FETCH_TIMEOUT" env-default:"15s"`
}

// StoreConfig holds the database location. An empty DBPath means
// store.DefaultDBPath.
type StoreConfig struct {
	DBPath string `yaml:"db_path" env:"HANZIDRILL_DB"`
}

// CheckConfig controls the sentence checker.
type CheckConfig struct {
	Enabled bool          `yaml:"enabled" env:"HANZIDRILL_CHECK_ENABLED" env-default:"true"`
	Timeout time.Duration `yaml:"timeout" env:"HANZIDRILL_CHECK_TIMEOUT" env-default:"10s"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"  env:"HANZIDRILL_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"HANZIDRILL_LOG_FORMAT" env-default:"text"`
	// File receives logs while the TUI owns the terminal. Empty means
	// hanzidrill.log next to the database.
	File string `yaml:"file" env:"HANZIDRILL_LOG_FILE"`
}
