// Package derived holds the chart-derived cache: every L2 record computed once per
// nativity and shared read-only by the planet and house analyzers.
package derived

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ashtakavarga"
	"github.com/aristath/jyotish/internal/modules/aspects"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	"github.com/aristath/jyotish/internal/modules/specialpoints"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/varga"
)

// Set is immutable after Build
type Set struct {
	Chart        *chart.Chart
	Vargas       varga.Bundle
	Dignities    dignity.Table
	Friendship   dignity.Matrix
	Aspects      aspects.Table
	Shadbala     *shadbala.Result
	Points       specialpoints.Set
	Ashtakavarga *ashtakavarga.Result
}

// Builder computes derived sets
type Builder struct {
	shadbala *shadbala.Engine
	log      zerolog.Logger
}

// NewBuilder creates a builder around a Shadbala engine
func NewBuilder(engine *shadbala.Engine, log zerolog.Logger) *Builder {
	return &Builder{
		shadbala: engine,
		log:      log.With().Str("component", "derived_builder").Logger(),
	}
}

// Build computes every L2 record of a natal chart. Any failure is fatal: analyzers
// downstream must never see a partially derived chart.
func (b *Builder) Build(c *chart.Chart) (*Set, error) {
	if c == nil {
		return nil, domain.Invariant("derived.Build", "chart", "nil chart")
	}

	// Step 1: divisional charts
	bundle, err := varga.Build(c)
	if err != nil {
		return nil, fmt.Errorf("failed to build divisional charts: %w", err)
	}

	// Step 2: dignities and friendship
	dig, err := dignity.Build(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dignities: %w", err)
	}

	// Step 3: strength
	sb, err := b.shadbala.Calculate(shadbala.Input{Chart: c, Bundle: bundle, Dignities: dig})
	if err != nil {
		return nil, fmt.Errorf("failed to compute shadbala: %w", err)
	}

	// Step 4: special points and ashtakavarga
	points, err := specialpoints.Build(c)
	if err != nil {
		return nil, fmt.Errorf("failed to compute special points: %w", err)
	}
	av, err := ashtakavarga.Calculate(c)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ashtakavarga: %w", err)
	}

	s := &Set{
		Chart:        c,
		Vargas:       bundle,
		Dignities:    dig,
		Friendship:   dignity.BuildMatrix(c),
		Aspects:      aspects.Build(c),
		Shadbala:     sb,
		Points:       points,
		Ashtakavarga: av,
	}

	b.log.Debug().
		Int("vargas", len(bundle)).
		Str("strongest", sb.Records.Strongest().String()).
		Msg("Derived set built")

	return s, nil
}

// Dignity returns the D1 dignity record of p
func (s *Set) Dignity(p domain.Planet) dignity.Record {
	return s.Dignities[1][p]
}

// Strength returns the Shadbala record of p, or the default for nodes
func (s *Set) Strength(p domain.Planet) shadbala.Record {
	return s.Shadbala.Records.Get(p)
}

// Nature returns the benefic/malefic nature of p in this chart
func (s *Set) Nature(p domain.Planet) tables.Nature {
	return tables.NatureOf(p, s.Chart.Planet(domain.Sun).Longitude, s.Chart.Planet(domain.Moon).Longitude)
}

// IsBenefic reports whether p is benefic in this chart
func (s *Set) IsBenefic(p domain.Planet) bool {
	return s.Nature(p) == tables.Benefic
}

// Connected reports conjunction or aspect between p and q
func (s *Set) Connected(p, q domain.Planet) bool {
	return aspects.Connected(s.Chart, s.Aspects, p, q)
}

// IsVargottama reports same sign in D1 and D9
func (s *Set) IsVargottama(p domain.Planet) bool {
	return s.Vargas.IsVargottama(p)
}
