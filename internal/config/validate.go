package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks values the tags cannot express. Load calls it.
func (c *Config) Validate() error {
	if c.Data.BaseURL != "" {
		u, err := url.Parse(c.Data.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("data.base_url must be an http(s) URL (got %q)", c.Data.BaseURL)
		}
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("data.timeout must be > 0 (got %s)", c.Data.Timeout)
	}
	if c.Check.Timeout <= 0 {
		return fmt.Errorf("check.timeout must be > 0 (got %s)", c.Check.Timeout)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}
