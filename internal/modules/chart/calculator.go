package chart

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
)

// Calculator computes natal charts from birth data
type Calculator struct {
	eph ephemeris.Ephemeris
	log zerolog.Logger
}

// NewCalculator creates a chart calculator over an ephemeris
func NewCalculator(eph ephemeris.Ephemeris, log zerolog.Logger) *Calculator {
	return &Calculator{
		eph: eph,
		log: log.With().Str("component", "chart_calculator").Logger(),
	}
}

// Calculate builds the D1 chart for a birth
func (c *Calculator) Calculate(in domain.BirthInput) (*Chart, error) {
	return c.CalculateAt(ephemeris.JulianDay(in.UTC()), in.Latitude(), in.Longitude())
}

// CalculateAt builds a D1 chart for an arbitrary instant and place
func (c *Calculator) CalculateAt(jd, lat, lon float64) (*Chart, error) {
	frame, err := c.eph.Houses(jd, lat, lon, ephemeris.FlagSidereal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute houses: %w", err)
	}

	bodies := make(map[domain.Planet]Body, len(domain.AllPlanets))
	for _, p := range domain.AllPlanets {
		pos, err := c.eph.Position(jd, p, ephemeris.FlagSidereal|ephemeris.FlagSpeed|ephemeris.FlagEquatorial)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", p, err)
		}
		bodies[p] = Body{
			Longitude:   pos.Longitude,
			Latitude:    pos.Latitude,
			Speed:       pos.Speed,
			Declination: pos.Declination,
		}
	}

	chart, err := Assemble(Frame{
		Division:    1,
		JulianDay:   jd,
		Latitude:    lat,
		Longitude:   lon,
		Ayanamsa:    c.eph.Ayanamsa(jd),
		HouseSystem: frame.System,
		Ascendant:   frame.Ascendant,
		MC:          frame.MC,
		Cusps:       frame.Cusps[:],
		Bodies:      bodies,
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Float64("jd", jd).
		Str("ascendant", chart.AscendantSignName).
		Str("house_system", chart.HouseSystem).
		Msg("Chart computed")

	return chart, nil
}
