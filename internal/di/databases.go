// Package di provides dependency injection for database connections.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/cache"
	"github.com/aristath/jyotish/internal/config"
	"github.com/aristath/jyotish/internal/database"
)

// InitializeDatabases opens the optional persistent cache and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	if cfg.CacheDB == "" {
		log.Info().Msg("Persistent static cache disabled")
		return container, nil
	}

	// cache.db - recomputable static contexts, no fsync
	cacheDB, err := database.New(database.Config{
		Path:    cfg.CacheDB,
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	if err := cacheDB.Migrate(); err != nil {
		cacheDB.Close()
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	container.CacheDB = cacheDB
	container.StaticStore = cache.NewStore(cacheDB.Conn(), log)
	container.CacheCleanup = cache.NewCleanupJob(container.StaticStore, log)

	log.Info().Str("path", cacheDB.Path()).Msg("Persistent static cache ready")
	return container, nil
}
