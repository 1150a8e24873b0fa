package dasha

import (
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// savyaSigns are the odd-footed signs counted zodiacally in Jaimini dashas
var savyaSigns = map[domain.Sign]bool{
	domain.Aries: true, domain.Taurus: true, domain.Gemini: true,
	domain.Libra: true, domain.Scorpio: true, domain.Sagittarius: true,
}

// coLords are the node co-rulers of Scorpio and Aquarius
var coLords = map[domain.Sign]domain.Planet{
	domain.Scorpio:  domain.Ketu,
	domain.Aquarius: domain.Rahu,
}

func signShare(s domain.Sign, years float64) share {
	return share{
		ruler:   int(s),
		lord:    s.String(),
		planets: []domain.Planet{s.Lord()},
		weight:  years,
	}
}

func step(forward bool) int {
	if forward {
		return 1
	}
	return -1
}

// Chara is the Jaimini sign dasha starting from the ascendant
type Chara struct{}

func (Chara) Name() string { return "chara" }

func (Chara) Levels() []string { return []string{"mahadasha", "antardasha"} }

// charaLord picks the stronger ruler of a dual-lord sign: if one co-lord occupies the
// sign the other rules; otherwise the one with more companions, then the more advanced.
func charaLord(c *chart.Chart, s domain.Sign) domain.Planet {
	lord := s.Lord()
	co, dual := coLords[s]
	if !dual {
		return lord
	}
	lp, cp := c.Planet(lord), c.Planet(co)
	switch {
	case lp.Sign == s && cp.Sign != s:
		return co
	case cp.Sign == s && lp.Sign != s:
		return lord
	}
	ln, cn := len(c.PlanetsInSign(lp.Sign)), len(c.PlanetsInSign(cp.Sign))
	switch {
	case cn > ln:
		return co
	case ln > cn:
		return lord
	case cp.SignDegree > lp.SignDegree:
		return co
	}
	return lord
}

// CharaYears is the mahadasha length of a sign: the count to its lord, less one
func CharaYears(c *chart.Chart, s domain.Sign) float64 {
	lord := charaLord(c, s)
	at := c.Planet(lord).Sign
	var count int
	if savyaSigns[s] {
		count = domain.HouseDistance(s, at)
	} else {
		count = domain.HouseDistance(at, s)
	}
	years := count - 1
	if years == 0 {
		years = 12
	}
	if !lord.IsNode() {
		switch at {
		case tables.ExaltationSign(lord):
			years++
		case tables.DebilitationSign(lord):
			years--
		}
	}
	if years < 1 {
		years = 1
	}
	return float64(years)
}

func (ch Chara) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	if c == nil {
		return nil, domain.Invariant("dasha.Chara", "chart", "nil chart")
	}
	asc := c.AscendantSign
	dir := step(savyaSigns[asc.House(9)])

	var first [12]float64
	for i := range first {
		first[i] = CharaYears(c, asc.Add(i*dir))
	}
	horizon := birth.Add(YearsToDuration(HorizonYears))
	return sequence(ch, birth, horizon, func(k int) share {
		i := k % 12
		years := first[i]
		if (k/12)%2 == 1 {
			years = 12 - years
		}
		return signShare(asc.Add(i*dir), years)
	}), nil
}

// Subdivide yields twelve equal antardashas beginning with the sign after the
// mahadasha sign, counted in that sign's own direction
func (ch Chara) Subdivide(parent Period) []Period {
	if parent.Level >= len(ch.Levels()) {
		return nil
	}
	s := domain.Sign(parent.ruler)
	dir := step(savyaSigns[s])
	shares := make([]share, 12)
	for k := range shares {
		shares[k] = signShare(s.Add((k+1)*dir), 1)
	}
	return partition(ch, parent, shares)
}

// shoolaYears is the fixed mahadasha length of Shoola dasha
const shoolaYears = 9

// Shoola is the nine-year sign dasha from the stronger of the 1st and 7th
type Shoola struct{}

func (Shoola) Name() string { return "shoola" }

func (Shoola) Levels() []string { return []string{"mahadasha", "antardasha"} }

// ShoolaStart returns the stronger of the ascendant and 7th sign by occupants,
// falling back to the ascendant
func ShoolaStart(c *chart.Chart) domain.Sign {
	asc, seventh := c.AscendantSign, c.AscendantSign.House(7)
	if len(c.PlanetsInSign(seventh)) > len(c.PlanetsInSign(asc)) {
		return seventh
	}
	return asc
}

func (sh Shoola) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	if c == nil {
		return nil, domain.Invariant("dasha.Shoola", "chart", "nil chart")
	}
	start := ShoolaStart(c)
	dir := step(start.IsOdd())
	horizon := birth.Add(YearsToDuration(HorizonYears))
	return sequence(sh, birth, horizon, func(k int) share {
		return signShare(start.Add(k*dir), shoolaYears)
	}), nil
}

func (sh Shoola) Subdivide(parent Period) []Period {
	if parent.Level >= len(sh.Levels()) {
		return nil
	}
	s := domain.Sign(parent.ruler)
	dir := step(s.IsOdd())
	shares := make([]share, 12)
	for k := range shares {
		shares[k] = signShare(s.Add(k*dir), 1)
	}
	return partition(sh, parent, shares)
}
