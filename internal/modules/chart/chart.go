// Package chart builds the natal (D1) chart and defines the chart shape shared by
// every divisional chart.
package chart

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// PlanetPosition is one graha's placement in a chart
type PlanetPosition struct {
	Planet        domain.Planet    `json:"planet"`
	Longitude     float64          `json:"longitude"`
	Latitude      float64          `json:"latitude"`
	Sign          domain.Sign      `json:"sign"`
	SignName      string           `json:"sign_name"`
	SignDegree    float64          `json:"sign_degree"`
	Nakshatra     domain.Nakshatra `json:"nakshatra"`
	NakshatraName string           `json:"nakshatra_name"`
	NakshatraLord domain.Planet    `json:"nakshatra_lord"`
	Pada          int              `json:"pada"`
	House         int              `json:"house"`      // bhava house from cusp intervals
	SignHouse     int              `json:"sign_house"` // whole-sign house from the ascendant sign
	Retrograde    bool             `json:"retrograde"`
	Speed         float64          `json:"speed"`
	Declination   float64          `json:"declination"`
}

// House is one of the twelve bhavas
type House struct {
	Number   int             `json:"number"`
	Sign     domain.Sign     `json:"sign"`
	SignName string          `json:"sign_name"`
	Lord     domain.Planet   `json:"lord"`
	Cusp     float64         `json:"cusp"`
	Midpoint float64         `json:"midpoint"`
	Planets  []domain.Planet `json:"planets"` // occupants by whole sign
}

// Chart is the common shape of D1 and every varga
type Chart struct {
	Division          int                              `json:"division"`
	JulianDay         float64                          `json:"julian_day"`
	Latitude          float64                          `json:"latitude"`
	Longitude         float64                          `json:"longitude"`
	Ayanamsa          float64                          `json:"ayanamsa"`
	HouseSystem       string                           `json:"house_system"`
	Ascendant         float64                          `json:"ascendant"`
	AscendantSign     domain.Sign                      `json:"ascendant_sign"`
	AscendantSignName string                           `json:"ascendant_sign_name"`
	MC                float64                          `json:"mc"`
	Planets           map[domain.Planet]PlanetPosition `json:"planets"`
	Houses            []House                          `json:"houses"`
}

// Planet returns the placement of p; the zero value if absent
func (c *Chart) Planet(p domain.Planet) PlanetPosition {
	return c.Planets[p]
}

// Lookup returns the placement of p and whether it is present
func (c *Chart) Lookup(p domain.Planet) (PlanetPosition, bool) {
	pos, ok := c.Planets[p]
	return pos, ok
}

// House returns house n (1-based)
func (c *Chart) House(n int) House {
	return c.Houses[normHouse(n)-1]
}

// HouseSign returns the whole-sign rashi of house n
func (c *Chart) HouseSign(n int) domain.Sign {
	return c.AscendantSign.House(normHouse(n))
}

// HouseLord returns the sign lord of house n, counted from the ascendant sign
func (c *Chart) HouseLord(n int) domain.Planet {
	return c.HouseSign(n).Lord()
}

// HouseOfSign returns the whole-sign house number occupied by a sign
func (c *Chart) HouseOfSign(s domain.Sign) int {
	return domain.HouseDistance(c.AscendantSign, s)
}

// LordedHouses returns the houses ruled by p in ascending order
func (c *Chart) LordedHouses(p domain.Planet) []int {
	var out []int
	for n := 1; n <= 12; n++ {
		if c.HouseLord(n) == p {
			out = append(out, n)
		}
	}
	return out
}

// PlanetsInSignHouse lists the planets in whole-sign house n, in canonical order
func (c *Chart) PlanetsInSignHouse(n int) []domain.Planet {
	return c.PlanetsInSign(c.HouseSign(n))
}

// PlanetsInSign lists the planets occupying a sign, in canonical order
func (c *Chart) PlanetsInSign(s domain.Sign) []domain.Planet {
	var out []domain.Planet
	for _, p := range domain.AllPlanets {
		if pos, ok := c.Planets[p]; ok && pos.Sign == s {
			out = append(out, p)
		}
	}
	return out
}

// HouseFrom counts whole-sign houses from one planet to another (same sign = 1)
func (c *Chart) HouseFrom(from, to domain.Planet) int {
	return domain.HouseDistance(c.Planets[from].Sign, c.Planets[to].Sign)
}

// Midpoints returns the twelve bhava madhyas
func (c *Chart) Midpoints() []float64 {
	out := make([]float64, len(c.Houses))
	for i, h := range c.Houses {
		out[i] = h.Midpoint
	}
	return out
}

// Validate checks the structural invariants of a chart
func (c *Chart) Validate() error {
	const op = "chart.Validate"
	if len(c.Houses) != 12 {
		return domain.Invariant(op, domain.DivisionCode(c.Division), "%d houses", len(c.Houses))
	}
	for _, pos := range c.Planets {
		if domain.SignOf(pos.Longitude) != pos.Sign {
			return domain.Invariant(op, pos.Planet.String(), "sign %s does not match longitude %.4f", pos.Sign, pos.Longitude)
		}
		if pos.House < 1 || pos.House > 12 || pos.SignHouse < 1 || pos.SignHouse > 12 {
			return domain.Invariant(op, pos.Planet.String(), "house %d / sign house %d", pos.House, pos.SignHouse)
		}
	}
	total := 0.0
	for i := range c.Houses {
		next := c.Houses[(i+1)%12].Cusp
		total += formulas.Arc(c.Houses[i].Cusp, next)
	}
	if math.Abs(total-360) > 1e-6 {
		return domain.Invariant(op, domain.DivisionCode(c.Division), "house cusps span %.6f degrees", total)
	}
	return nil
}

func normHouse(n int) int {
	return ((n-1)%12+12)%12 + 1
}
