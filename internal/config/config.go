// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir              string // Base directory for the persistent cache (always absolute)
	CacheDB              string // Persistent static-context cache path, empty disables it
	VSOP87Dir            string // VSOP87B planetary files, empty uses mean orbital elements
	LogLevel             string
	Port                 int
	DevMode              bool
	StaticCacheSize      int
	DynamicCacheSize     int
	StaticTTL            time.Duration
	TransitStepDays      int
	TransitHorizonMonths int
	BuildTimeout         time.Duration
	CleanupSchedule      string // cron spec for expired cache rows
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("JYOTISH_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		CacheDB:              getEnv("JYOTISH_CACHE_DB", ""),
		VSOP87Dir:            getEnv("JYOTISH_VSOP87_DIR", ""),
		LogLevel:             getEnv("JYOTISH_LOG_LEVEL", "info"),
		Port:                 getEnvAsInt("JYOTISH_PORT", 8080),
		DevMode:              getEnvAsBool("JYOTISH_DEV_MODE", false),
		StaticCacheSize:      getEnvAsInt("JYOTISH_STATIC_CACHE_SIZE", 2048),
		DynamicCacheSize:     getEnvAsInt("JYOTISH_DYNAMIC_CACHE_SIZE", 2048),
		StaticTTL:            getEnvAsDuration("JYOTISH_STATIC_TTL", 720*time.Hour),
		TransitStepDays:      getEnvAsInt("JYOTISH_TRANSIT_STEP_DAYS", 5),
		TransitHorizonMonths: getEnvAsInt("JYOTISH_TRANSIT_HORIZON_MONTHS", 24),
		BuildTimeout:         getEnvAsDuration("JYOTISH_BUILD_TIMEOUT", 20*time.Second),
		CleanupSchedule:      getEnv("JYOTISH_CACHE_CLEANUP_SCHEDULE", "@hourly"),
	}

	// Relative cache paths live under the data directory
	if cfg.CacheDB != "" && !filepath.IsAbs(cfg.CacheDB) {
		cfg.CacheDB = filepath.Join(cfg.DataDir, cfg.CacheDB)
	}
	if cfg.VSOP87Dir != "" && !filepath.IsAbs(cfg.VSOP87Dir) {
		cfg.VSOP87Dir = filepath.Join(cfg.DataDir, cfg.VSOP87Dir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.CacheDB != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.CacheDB), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.StaticCacheSize <= 0 {
		return fmt.Errorf("invalid static cache size %d: must be positive", c.StaticCacheSize)
	}
	if c.DynamicCacheSize <= 0 {
		return fmt.Errorf("invalid dynamic cache size %d: must be positive", c.DynamicCacheSize)
	}
	if c.TransitStepDays < 1 || c.TransitStepDays > 30 {
		return fmt.Errorf("invalid transit step %d days: must be between 1 and 30", c.TransitStepDays)
	}
	if c.TransitHorizonMonths <= 0 {
		return fmt.Errorf("invalid transit horizon %d months: must be positive", c.TransitHorizonMonths)
	}
	if c.StaticTTL <= 0 {
		return fmt.Errorf("invalid static TTL %s: must be positive", c.StaticTTL)
	}
	if c.BuildTimeout <= 0 {
		return fmt.Errorf("invalid build timeout %s: must be positive", c.BuildTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
