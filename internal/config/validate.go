package config

import (
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.RateLimit.MaxPerMinute < 0 {
		return fmt.Errorf("rate_limit.max_per_minute must be >= 0 (got %d)", c.RateLimit.MaxPerMinute)
	}
	if c.RateLimit.MaxPerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 when rate limiting is enabled")
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if !s.Ephemeral && s.Path == "" {
		return fmt.Errorf("path is required unless ephemeral is set")
	}
	if s.GCInterval <= 0 {
		return fmt.Errorf("gc_interval must be > 0 (got %v)", s.GCInterval)
	}
	if s.GCDiscardRatio <= 0 || s.GCDiscardRatio > 1 {
		return fmt.Errorf("gc_discard_ratio must be in (0, 1] (got %v)", s.GCDiscardRatio)
	}
	return nil
}
