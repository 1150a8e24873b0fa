package varga

import (
	"fmt"
	"sort"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
)

// Shadvarga and Saptavarga sets used by the strength model
var (
	Saptavarga = []int{1, 2, 3, 7, 9, 12, 30}
	Shadvarga  = []int{1, 2, 3, 9, 12, 30}
)

// Calculate derives the Dn chart from a natal chart. Houses in a varga are whole signs
// counted from the varga ascendant.
func Calculate(d1 *chart.Chart, n int) (*chart.Chart, error) {
	if n == 1 {
		return d1, nil
	}

	_, asc, err := Position(d1.Ascendant, n)
	if err != nil {
		return nil, err
	}

	bodies := make(map[domain.Planet]chart.Body, len(d1.Planets))
	for p, pos := range d1.Planets {
		_, lon, err := Position(pos.Longitude, n)
		if err != nil {
			return nil, err
		}
		bodies[p] = chart.Body{
			Longitude:   lon,
			Latitude:    pos.Latitude,
			Speed:       pos.Speed,
			Declination: pos.Declination,
		}
	}

	ascSign := domain.SignOf(asc)
	cusps := make([]float64, 12)
	for i := range cusps {
		cusps[i] = float64(ascSign.Add(i)) * 30
	}

	dn, err := chart.Assemble(chart.Frame{
		Division:    n,
		JulianDay:   d1.JulianDay,
		Latitude:    d1.Latitude,
		Longitude:   d1.Longitude,
		Ayanamsa:    d1.Ayanamsa,
		HouseSystem: "whole_sign",
		Ascendant:   asc,
		MC:          d1.MC,
		Cusps:       cusps,
		Bodies:      bodies,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", domain.DivisionCode(n), err)
	}
	return dn, nil
}

// Bundle holds every divisional chart of a nativity keyed by division number
type Bundle map[int]*chart.Chart

// Build computes all supported divisions
func Build(d1 *chart.Chart) (Bundle, error) {
	b := make(Bundle, len(domain.SupportedDivisions))
	for _, n := range domain.SupportedDivisions {
		dn, err := Calculate(d1, n)
		if err != nil {
			return nil, err
		}
		b[n] = dn
	}
	return b, nil
}

// Get returns Dn, or nil when absent
func (b Bundle) Get(n int) *chart.Chart {
	return b[n]
}

// D1 returns the natal chart
func (b Bundle) D1() *chart.Chart {
	return b[1]
}

// Divisions lists the divisions present, ascending
func (b Bundle) Divisions() []int {
	out := make([]int, 0, len(b))
	for n := range b {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// SignOf returns the varga sign of a planet in Dn
func (b Bundle) SignOf(p domain.Planet, n int) (domain.Sign, bool) {
	dn := b[n]
	if dn == nil {
		return 0, false
	}
	pos, ok := dn.Lookup(p)
	return pos.Sign, ok
}

// IsVargottama reports whether p occupies the same sign in D1 and D9
func (b Bundle) IsVargottama(p domain.Planet) bool {
	s1, ok1 := b.SignOf(p, 1)
	s9, ok9 := b.SignOf(p, 9)
	return ok1 && ok9 && s1 == s9
}
