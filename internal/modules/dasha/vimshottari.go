package dasha

import (
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// Vimshottari is the 120-year nakshatra dasha anchored at the natal Moon
type Vimshottari struct{}

func (Vimshottari) Name() string { return "vimshottari" }

func (Vimshottari) Levels() []string {
	return []string{"mahadasha", "antardasha", "pratyantardasha", "sookshma", "prana"}
}

func planetShare(p domain.Planet) share {
	return share{
		ruler:   int(p),
		lord:    p.String(),
		planets: []domain.Planet{p},
		weight:  tables.VimshottariYears[p],
	}
}

// Balance returns the first mahadasha lord and the years of it remaining at birth
func (Vimshottari) Balance(moonLon float64) (domain.Planet, float64) {
	n, _ := domain.NakshatraOf(moonLon)
	lord := n.Lord()
	return lord, (1 - domain.NakshatraFraction(moonLon)) * tables.VimshottariYears[lord]
}

func (v Vimshottari) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	moon, err := moonOf(c, "dasha.Vimshottari")
	if err != nil {
		return nil, err
	}
	first, remaining := v.Balance(moon.Longitude)
	elapsed := tables.VimshottariYears[first] - remaining

	lords := rotate(domain.VimshottariOrder, first)
	start := birth.Add(-YearsToDuration(elapsed))
	horizon := birth.Add(YearsToDuration(HorizonYears))
	return sequence(v, start, horizon, func(k int) share {
		return planetShare(lords[k%len(lords)])
	}), nil
}

func (v Vimshottari) Subdivide(parent Period) []Period {
	if parent.Level >= len(v.Levels()) {
		return nil
	}
	lords := rotate(domain.VimshottariOrder, domain.Planet(parent.ruler))
	shares := make([]share, len(lords))
	for i, p := range lords {
		shares[i] = planetShare(p)
	}
	return partition(v, parent, shares)
}

// Yogini is the 36-year cycle of the eight yoginis
type Yogini struct{}

func (Yogini) Name() string { return "yogini" }

func (Yogini) Levels() []string {
	return []string{"mahadasha", "antardasha", "pratyantardasha"}
}

func yoginiShare(i int) share {
	y := tables.Yoginis[i%len(tables.Yoginis)]
	return share{
		ruler:   i % len(tables.Yoginis),
		lord:    y.Name,
		planets: []domain.Planet{y.Lord},
		note:    y.Vibe,
		weight:  y.Years,
	}
}

func (y Yogini) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	moon, err := moonOf(c, "dasha.Yogini")
	if err != nil {
		return nil, err
	}
	n, _ := domain.NakshatraOf(moon.Longitude)
	first := tables.YoginiStart(n)
	elapsed := domain.NakshatraFraction(moon.Longitude) * tables.Yoginis[first].Years

	start := birth.Add(-YearsToDuration(elapsed))
	horizon := birth.Add(YearsToDuration(HorizonYears))
	return sequence(y, start, horizon, func(k int) share {
		return yoginiShare(first + k)
	}), nil
}

func (y Yogini) Subdivide(parent Period) []Period {
	if parent.Level >= len(y.Levels()) {
		return nil
	}
	shares := make([]share, len(tables.Yoginis))
	for k := range shares {
		shares[k] = yoginiShare(parent.ruler + k)
	}
	return partition(y, parent, shares)
}
