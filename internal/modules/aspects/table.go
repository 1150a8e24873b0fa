package aspects

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Aspect is one graha drishti between two planets of a chart
type Aspect struct {
	From     domain.Planet `json:"from"`
	To       domain.Planet `json:"to"`
	Offset   int           `json:"offset"`   // house counted from the aspecting planet
	Angle    float64       `json:"angle"`    // arc from the aspecting planet to the target
	Strength float64       `json:"strength"` // virupas on the Drishti Pinda scale
}

// Table is the graha drishti picture of a chart
type Table struct {
	Cast     map[domain.Planet][]Aspect `json:"cast"`
	Received map[domain.Planet][]Aspect `json:"received"`
	Houses   map[int][]domain.Planet    `json:"houses"` // planets aspecting each whole-sign house
}

// Build computes every sign-based planetary aspect in c
func Build(c *chart.Chart) Table {
	t := Table{
		Cast:     make(map[domain.Planet][]Aspect),
		Received: make(map[domain.Planet][]Aspect),
		Houses:   make(map[int][]domain.Planet, 12),
	}

	for _, p := range domain.AllPlanets {
		pp, ok := c.Lookup(p)
		if !ok {
			continue
		}
		for _, off := range grahaOffsets[p] {
			h := (pp.SignHouse+off-2)%12 + 1
			t.Houses[h] = append(t.Houses[h], p)
		}
		for _, q := range domain.AllPlanets {
			qp, ok := c.Lookup(q)
			if !ok || p == q {
				continue
			}
			off := domain.HouseDistance(pp.Sign, qp.Sign)
			if !HasOffset(p, off) {
				continue
			}
			angle := formulas.Norm360(qp.Longitude - pp.Longitude)
			a := Aspect{From: p, To: q, Offset: off, Angle: angle, Strength: Value(p, angle)}
			t.Cast[p] = append(t.Cast[p], a)
			t.Received[q] = append(t.Received[q], a)
		}
	}
	return t
}

// Aspects reports whether p aspects q
func (t Table) Aspects(p, q domain.Planet) bool {
	for _, a := range t.Cast[p] {
		if a.To == q {
			return true
		}
	}
	return false
}

// Mutual reports whether p and q aspect each other
func (t Table) Mutual(p, q domain.Planet) bool {
	return t.Aspects(p, q) && t.Aspects(q, p)
}

// AspectsHouse reports whether p aspects whole-sign house n
func (t Table) AspectsHouse(p domain.Planet, n int) bool {
	for _, x := range t.Houses[n] {
		if x == p {
			return true
		}
	}
	return false
}

// Connected reports conjunction (same sign) or any aspect between p and q
func Connected(c *chart.Chart, t Table, p, q domain.Planet) bool {
	if p == q {
		return false
	}
	pp, ok1 := c.Lookup(p)
	qp, ok2 := c.Lookup(q)
	if !ok1 || !ok2 {
		return false
	}
	return pp.Sign == qp.Sign || t.Aspects(p, q) || t.Aspects(q, p)
}
