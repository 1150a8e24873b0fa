// Package ashtakavarga computes Bhinnashtakavarga (per-planet bindus by sign) and the
// Sarvashtakavarga totals.
package ashtakavarga

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// Signs is a bindu count per sign, indexed by domain.Sign
type Signs [12]int

// Total sums the twelve signs
func (s Signs) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Result holds the BAV of the seven planets and the SAV
type Result struct {
	BAV map[domain.Planet]Signs `json:"bav"`
	SAV Signs                   `json:"sav"`
}

// Calculate computes the ashtakavarga of a natal chart
func Calculate(c *chart.Chart) (*Result, error) {
	const op = "ashtakavarga.Calculate"

	// contributor signs: the seven planets then the ascendant
	var from [8]domain.Sign
	for i, p := range domain.ClassicalPlanets {
		pos, ok := c.Lookup(p)
		if !ok {
			return nil, domain.Invariant(op, p.String(), "planet missing from chart")
		}
		from[i] = pos.Sign
	}
	from[tables.AscendantContributor] = c.AscendantSign

	r := &Result{BAV: make(map[domain.Planet]Signs, len(domain.ClassicalPlanets))}
	for _, p := range domain.ClassicalPlanets {
		var bav Signs
		for i, houses := range tables.BinduPlaces[p] {
			for _, h := range houses {
				bav[from[i].House(h)]++
			}
		}
		r.BAV[p] = bav
		for s, v := range bav {
			r.SAV[s] += v
		}
	}

	if total := r.SAV.Total(); total != tables.BinduTotal {
		return nil, domain.Invariant(op, "sav", "total %d, expected %d", total, tables.BinduTotal)
	}
	return r, nil
}

// BAVPoints returns the bindus of p in sign s. Rahu and Ketu have no Bhinnashtakavarga.
func (r *Result) BAVPoints(p domain.Planet, s domain.Sign) (int, bool) {
	bav, ok := r.BAV[p]
	if !ok {
		return 0, false
	}
	return bav[s], true
}

// SAVPoints returns the Sarvashtakavarga total of sign s
func (r *Result) SAVPoints(s domain.Sign) int {
	return r.SAV[s]
}

// HouseSAV returns the SAV by whole-sign house of c, 1..12
func (r *Result) HouseSAV(c *chart.Chart) [12]int {
	var out [12]int
	for h := 1; h <= 12; h++ {
		out[h-1] = r.SAV[c.HouseSign(h)]
	}
	return out
}

// StrongSAV is the threshold above which a sign is considered supportive
const StrongSAV = 28

// WeakBAV is the threshold below which a planet's own bindus override a strong SAV
const WeakBAV = 3
