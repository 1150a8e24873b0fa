// Package kp computes Krishnamurti Paddhati lordships: each longitude is described by
// its sign lord, star lord, sub lord and sub-sub lord, with subs proportional to the
// Vimshottari periods.
package kp

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Lords is the four-level lordship chain of a longitude
type Lords struct {
	Sign   domain.Planet `json:"sign_lord"`
	Star   domain.Planet `json:"star_lord"`
	Sub    domain.Planet `json:"sub_lord"`
	SubSub domain.Planet `json:"sub_sub_lord"`
}

// Point is a planet or cusp with its KP chain
type Point struct {
	Longitude     float64 `json:"longitude"`
	SignName      string  `json:"sign_name"`
	NakshatraName string  `json:"nakshatra_name"`
	Lords
}

// Cusp is a bhava cusp
type Cusp struct {
	House int `json:"house"`
	Point
}

// Analysis is the KP view of a chart
type Analysis struct {
	Planets map[domain.Planet]Point `json:"planets"`
	Cusps   []Cusp                  `json:"cusps"`
	// Significators lists, per house, the planets signifying it from strongest to weakest
	Significators map[int][]domain.Planet `json:"significators"`
}

// split locates offset inside a span divided among the nine lords starting at first,
// each share proportional to its Vimshottari years. It returns the lord and the
// offset and length of its share.
func split(first domain.Planet, span, offset float64) (domain.Planet, float64, float64) {
	start := 0
	for i, p := range domain.VimshottariOrder {
		if p == first {
			start = i
		}
	}
	var acc float64
	var lord domain.Planet
	var length float64
	for k := 0; k < len(domain.VimshottariOrder); k++ {
		lord = domain.VimshottariOrder[(start+k)%len(domain.VimshottariOrder)]
		length = span * tables.VimshottariYears[lord] / tables.VimshottariTotal
		if offset < acc+length {
			return lord, offset - acc, length
		}
		acc += length
	}
	// rounding at the very end of the span
	return lord, length, length
}

// LordsOf computes the KP chain of a sidereal longitude
func LordsOf(lon float64) Lords {
	lon = formulas.Norm360(lon)
	n, _ := domain.NakshatraOf(lon)
	star := n.Lord()

	sub, inSub, subSpan := split(star, domain.NakshatraSpan, lon-n.Start())
	subSub, _, _ := split(sub, subSpan, inSub)

	return Lords{
		Sign:   domain.SignOf(lon).Lord(),
		Star:   star,
		Sub:    sub,
		SubSub: subSub,
	}
}

// PointOf describes a longitude
func PointOf(lon float64) Point {
	lon = formulas.Norm360(lon)
	n, _ := domain.NakshatraOf(lon)
	return Point{
		Longitude:     lon,
		SignName:      domain.SignOf(lon).String(),
		NakshatraName: n.String(),
		Lords:         LordsOf(lon),
	}
}

// Analyze computes planet and cusp chains plus house significators
func Analyze(c *chart.Chart) Analysis {
	a := Analysis{
		Planets:       make(map[domain.Planet]Point, len(c.Planets)),
		Cusps:         make([]Cusp, 0, len(c.Houses)),
		Significators: make(map[int][]domain.Planet, len(c.Houses)),
	}
	for p, pos := range c.Planets {
		a.Planets[p] = PointOf(pos.Longitude)
	}
	for _, h := range c.Houses {
		a.Cusps = append(a.Cusps, Cusp{House: h.Number, Point: PointOf(h.Cusp)})
	}
	for _, cusp := range a.Cusps {
		a.Significators[cusp.House] = significators(c, a, cusp)
	}
	return a
}

// significators ranks the four classical levels: planets in the star of occupants,
// occupants, planets in the star of the cusp's sign lord, the sign lord itself
func significators(c *chart.Chart, a Analysis, cusp Cusp) []domain.Planet {
	var occupants []domain.Planet
	for _, p := range domain.AllPlanets {
		if pos, ok := c.Lookup(p); ok && pos.House == cusp.House {
			occupants = append(occupants, p)
		}
	}

	seen := make(map[domain.Planet]bool)
	var out []domain.Planet
	add := func(p domain.Planet) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	inStarOf := func(q domain.Planet) {
		for _, p := range domain.AllPlanets {
			if pt, ok := a.Planets[p]; ok && pt.Star == q {
				add(p)
			}
		}
	}

	for _, o := range occupants {
		inStarOf(o)
	}
	for _, o := range occupants {
		add(o)
	}
	inStarOf(cusp.Sign)
	add(cusp.Sign)
	return out
}
