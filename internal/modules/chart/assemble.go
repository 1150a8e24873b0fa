package chart

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Body is the raw input for one planet
type Body struct {
	Longitude   float64 // sidereal
	Latitude    float64
	Speed       float64
	Declination float64
}

// Frame is everything needed to assemble a chart from explicit longitudes
type Frame struct {
	Division    int
	JulianDay   float64
	Latitude    float64
	Longitude   float64
	Ayanamsa    float64
	HouseSystem string
	Ascendant   float64
	MC          float64
	Cusps       []float64 // twelve sidereal cusps; nil means equal houses from the ascendant
	Bodies      map[domain.Planet]Body
}

// Assemble builds a chart from a frame. All nine grahas must be present.
func Assemble(f Frame) (*Chart, error) {
	const op = "chart.Assemble"

	for _, p := range domain.AllPlanets {
		if _, ok := f.Bodies[p]; !ok {
			return nil, domain.Malformed(op, p.String(), "missing planet")
		}
	}

	division := f.Division
	if division == 0 {
		division = 1
	}

	cusps := f.Cusps
	system := f.HouseSystem
	if cusps == nil {
		cusps = make([]float64, 12)
		for i := range cusps {
			cusps[i] = formulas.Norm360(f.Ascendant + 30*float64(i))
		}
		if system == "" {
			system = "equal"
		}
	}
	if len(cusps) != 12 {
		return nil, domain.Malformed(op, "cusps", "expected 12 cusps, got %d", len(cusps))
	}

	asc := formulas.Norm360(f.Ascendant)
	ascSign := domain.SignOf(asc)

	c := &Chart{
		Division:          division,
		JulianDay:         f.JulianDay,
		Latitude:          f.Latitude,
		Longitude:         f.Longitude,
		Ayanamsa:          f.Ayanamsa,
		HouseSystem:       system,
		Ascendant:         asc,
		AscendantSign:     ascSign,
		AscendantSignName: ascSign.String(),
		MC:                formulas.Norm360(f.MC),
		Planets:           make(map[domain.Planet]PlanetPosition, len(f.Bodies)),
		Houses:            make([]House, 12),
	}

	for i := 0; i < 12; i++ {
		cusp := formulas.Norm360(cusps[i])
		next := formulas.Norm360(cusps[(i+1)%12])
		sign := ascSign.House(i + 1)
		c.Houses[i] = House{
			Number:   i + 1,
			Sign:     sign,
			SignName: sign.String(),
			Lord:     sign.Lord(),
			Cusp:     cusp,
			Midpoint: formulas.Norm360(cusp + formulas.Arc(cusp, next)/2),
		}
	}

	for _, p := range domain.AllPlanets {
		b := f.Bodies[p]
		lon := formulas.Norm360(b.Longitude)
		sign := domain.SignOf(lon)
		nak, pada := domain.NakshatraOf(lon)

		house, ok := bhavaOf(lon, c.Houses)
		if !ok {
			return nil, domain.Invariant(op, p.String(), "longitude %.4f not inside any house", lon)
		}

		c.Planets[p] = PlanetPosition{
			Planet:        p,
			Longitude:     lon,
			Latitude:      b.Latitude,
			Sign:          sign,
			SignName:      sign.String(),
			SignDegree:    lon - float64(sign)*30,
			Nakshatra:     nak,
			NakshatraName: nak.String(),
			NakshatraLord: nak.Lord(),
			Pada:          pada,
			House:         house,
			SignHouse:     domain.HouseDistance(ascSign, sign),
			Retrograde:    b.Speed < 0,
			Speed:         b.Speed,
			Declination:   b.Declination,
		}
	}

	for i := range c.Houses {
		c.Houses[i].Planets = c.PlanetsInSign(c.Houses[i].Sign)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// bhavaOf finds the cusp interval containing lon
func bhavaOf(lon float64, houses []House) (int, bool) {
	for i := range houses {
		from := houses[i].Cusp
		to := houses[(i+1)%len(houses)].Cusp
		if formulas.InArc(lon, from, to) {
			return houses[i].Number, true
		}
	}
	return 0, false
}
