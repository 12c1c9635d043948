package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when HANZIDRILL_CONFIG is not set.
const DefaultPath = "./hanzidrill.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is HANZIDRILL_CONFIG, falling back to DefaultPath. A missing
// fallback file is fine; a missing explicit file is an error.
func Load() (*Config, error) {
	path := os.Getenv("HANZIDRILL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	return load(path, explicit)
}

// LoadFile reads configuration from path and the environment.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, explicit bool) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
