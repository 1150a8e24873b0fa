package shadbala

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/varga"
)

// Engine computes Shadbala
type Engine struct {
	eph ephemeris.Ephemeris
	log zerolog.Logger
}

// NewEngine creates a Shadbala engine
func NewEngine(eph ephemeris.Ephemeris, log zerolog.Logger) *Engine {
	return &Engine{
		eph: eph,
		log: log.With().Str("engine", "shadbala").Logger(),
	}
}

// Input is everything the engine reads
type Input struct {
	Chart     *chart.Chart
	Bundle    varga.Bundle
	Dignities dignity.Table
}

// Result is the per-planet strength plus the time lords used for Kala Bala
type Result struct {
	Records   Records   `json:"records"`
	TimeLords TimeLords `json:"time_lords"`
}

// Calculate computes the Shadbala of the seven classical planets. A planet that fails
// gets the default record without affecting the others.
func (e *Engine) Calculate(in Input) (*Result, error) {
	if in.Chart == nil {
		return nil, domain.Invariant("shadbala.Calculate", "chart", "nil chart")
	}
	lords, err := ResolveTimeLords(e.eph, in.Chart)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve time lords: %w", err)
	}

	res := &Result{Records: make(Records, len(domain.ClassicalPlanets)), TimeLords: lords}
	for _, p := range domain.ClassicalPlanets {
		r, err := e.planet(p, in, lords)
		if err != nil {
			e.log.Warn().Err(err).Str("planet", p.String()).Msg("Falling back to default strength")
			r = Default(p)
		}
		res.Records[p] = r
	}
	return res, nil
}

// Planet returns the record of a single planet. Nodes and unknown planets get the default.
func (e *Engine) Planet(p domain.Planet, in Input) Record {
	if !p.Valid() || p.IsNode() {
		return Default(p)
	}
	lords, err := ResolveTimeLords(e.eph, in.Chart)
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to resolve time lords")
		return Default(p)
	}
	r, err := e.planet(p, in, lords)
	if err != nil {
		e.log.Warn().Err(err).Str("planet", p.String()).Msg("Falling back to default strength")
		return Default(p)
	}
	return r
}

func (e *Engine) planet(p domain.Planet, in Input, lords TimeLords) (Record, error) {
	c := in.Chart
	pos, ok := c.Lookup(p)
	if !ok {
		return Record{}, domain.Invariant("shadbala.planet", p.String(), "planet missing from chart")
	}
	sun, okSun := c.Lookup(domain.Sun)
	moon, okMoon := c.Lookup(domain.Moon)
	if !okSun || !okMoon {
		return Record{}, domain.Invariant("shadbala.planet", p.String(), "luminaries missing from chart")
	}

	sthana, err := sthanaBala(p, pos, in.Bundle, in.Dignities)
	if err != nil {
		return Record{}, err
	}
	kala := kalaBala(p, lords, sun.Longitude, moon.Longitude, pos.Declination)

	r := Record{
		Planet:        p,
		Sthana:        sthana.Total(),
		SthanaDetail:  sthana,
		Dig:           digBala(p, c, pos.Longitude),
		Kala:          kala.Total(),
		KalaDetail:    kala,
		Chesta:        chestaBala(p, pos.Speed),
		Naisargika:    tables.NaisargikaBala[p],
		Drik:          drikBala(p, c),
		RequiredRupas: tables.RequiredRupas[p],
	}
	r.IshtaPhala = math.Sqrt(sthana.Uccha*r.Chesta) / 2
	r.KashtaPhala = 60 - r.IshtaPhala
	r.finalize()
	return r, nil
}
