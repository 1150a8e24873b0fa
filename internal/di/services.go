// Package di provides dependency injection for the computation engines.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/config"
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

// InitializeServices creates the engines and the context builder.
// Engines are stateless apart from the builder's cache tiers, so one set serves all requests.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// Layer 1: ephemeris and natal chart
	eph := ephemeris.NewMeeus(log)
	if cfg.VSOP87Dir != "" {
		if err := eph.LoadVSOP87(cfg.VSOP87Dir); err != nil {
			return fmt.Errorf("failed to initialize ephemeris: %w", err)
		}
	}
	container.Ephemeris = eph
	container.Charts = chart.NewCalculator(container.Ephemeris, log)

	// Layer 2: derived values
	container.Shadbala = shadbala.NewEngine(container.Ephemeris, log)
	container.Derived = derived.NewBuilder(container.Shadbala, log)

	// Layer 3: synthesis and timing
	container.Planets = planets.NewAnalyzer(log)
	container.Houses = houses.NewAnalyzer(log)
	container.Dashas = dasha.NewEngine(log)
	container.Transits = transit.NewEngine(container.Ephemeris, cfg.TransitStepDays, log)
	container.Varshphal = varshphal.NewEngine(container.Ephemeris, container.Charts, container.Derived, log)

	// Layer 4: context builder with its cache tiers
	static, dynamic, err := services.NewTiers(cfg.StaticCacheSize, cfg.DynamicCacheSize)
	if err != nil {
		return err
	}

	// A nil *cache.Store must not become a non-nil interface
	var store services.StaticStore
	if container.StaticStore != nil {
		store = container.StaticStore
	}

	container.ContextBuilder = services.NewContextBuilder(services.Engines{
		Ephemeris: container.Ephemeris,
		Charts:    container.Charts,
		Derived:   container.Derived,
		Planets:   container.Planets,
		Houses:    container.Houses,
		Dashas:    container.Dashas,
		Transits:  container.Transits,
		Varshphal: container.Varshphal,
	}, static, dynamic, store, services.BuilderConfig{
		StaticTTL:     cfg.StaticTTL,
		HorizonMonths: cfg.TransitHorizonMonths,
		Timeout:       cfg.BuildTimeout,
	}, log)

	return nil
}
