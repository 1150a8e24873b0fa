/**
 * Package di provides dependency injection type definitions.
 *
 * The Container holds every engine instance. It is created by Wire() and
 * handed to the HTTP server, the CLI and the scheduled cache cleanup.
 */
package di

import (
	"github.com/aristath/jyotish/internal/cache"
	"github.com/aristath/jyotish/internal/database"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/internal/modules/houses"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	"github.com/aristath/jyotish/internal/modules/transit"
	"github.com/aristath/jyotish/internal/modules/varshphal"
	"github.com/aristath/jyotish/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Persistent static tier; all three are nil when JYOTISH_CACHE_DB is empty
	CacheDB      *database.DB
	StaticStore  *cache.Store
	CacheCleanup *cache.CleanupJob

	// Engines
	Ephemeris ephemeris.Ephemeris
	Charts    *chart.Calculator
	Shadbala  *shadbala.Engine
	Derived   *derived.Builder
	Planets   *planets.Analyzer
	Houses    *houses.Analyzer
	Dashas    *dasha.Engine
	Transits  *transit.Engine
	Varshphal *varshphal.Engine

	// Integration point
	ContextBuilder *services.ContextBuilder
}

// Close releases the cache database if one was opened
func (c *Container) Close() error {
	if c == nil || c.CacheDB == nil {
		return nil
	}
	return c.CacheDB.Close()
}
