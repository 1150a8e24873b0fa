package shadbala

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/aspects"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/varga"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Uccha is 60 at the exaltation degree falling linearly to 0 at debilitation
func Uccha(p domain.Planet, lon float64) float64 {
	return 60 * (1 - formulas.AngularDistance(lon, tables.ExaltationDegree[p])/180)
}

func ojhaYugma(p domain.Planet, signs ...domain.Sign) float64 {
	prefersEven := p == domain.Moon || p == domain.Venus
	total := 0.0
	for _, s := range signs {
		if prefersEven != s.IsOdd() {
			total += OjhaYugmaPoints
		}
	}
	return total
}

// kendradi uses the bhava house
func kendradi(house int) float64 {
	switch {
	case tables.IsKendra(house):
		return KendraPoints
	case tables.InHouses(house, tables.Panaphara):
		return PanapharaPoints
	default:
		return ApoklimaPoints
	}
}

func drekkana(p domain.Planet, signDegree float64) float64 {
	decanate := int(signDegree / 10)
	if decanate > 2 {
		decanate = 2
	}
	want := map[tables.Gender]int{tables.Male: 0, tables.Neuter: 1, tables.Female: 2}[tables.PlanetGender[p]]
	if decanate == want {
		return DrekkanaPoints
	}
	return 0
}

func sthanaBala(p domain.Planet, pos chart.PlanetPosition, bundle varga.Bundle, dig dignity.Table) (Sthana, error) {
	d9, ok := bundle.SignOf(p, 9)
	if !ok {
		return Sthana{}, domain.Invariant("shadbala.sthana", p.String(), "navamsa missing")
	}
	return Sthana{
		Uccha:        Uccha(p, pos.Longitude),
		Saptavargaja: dig.Saptavargaja(p),
		OjhaYugma:    ojhaYugma(p, pos.Sign, d9),
		Kendradi:     kendradi(pos.House),
		Drekkana:     drekkana(p, pos.SignDegree),
	}, nil
}

// digBala is the distance from the madhya of the planet's house of weakness, over 3
func digBala(p domain.Planet, c *chart.Chart, lon float64) float64 {
	weak := c.House(tables.DigBalaWeakHouse[p]).Midpoint
	return formulas.AngularDistance(lon, weak) / 3
}

// chestaBala grades speed. The luminaries are strong when fast; the others by their
// speed relative to the fastest direct or retrograde motion, so stations score 0.
func chestaBala(p domain.Planet, speed float64) float64 {
	r := tables.ChestaSpeeds[p]
	if p == domain.Sun || p == domain.Moon {
		return 60 * formulas.Clamp((speed-r.Min)/(r.Max-r.Min), 0, 1)
	}
	limit := r.Max
	if speed < 0 {
		limit = r.MaxRetro
	}
	return 60 * math.Min(1, math.Abs(speed)/limit)
}

// drikBala adds a quarter of every benefic aspect and subtracts a quarter of every
// malefic one, measured from each aspecting planet to p.
func drikBala(p domain.Planet, c *chart.Chart) float64 {
	target := c.Planet(p).Longitude
	sun, moon := c.Planet(domain.Sun).Longitude, c.Planet(domain.Moon).Longitude
	total := 0.0
	for _, q := range domain.ClassicalPlanets {
		if q == p {
			continue
		}
		v := aspects.Value(q, target-c.Planet(q).Longitude) / 4
		if tables.NatureOf(q, sun, moon) == tables.Malefic {
			v = -v
		}
		total += v
	}
	return total
}
