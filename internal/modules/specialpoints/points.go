// Package specialpoints computes the closed-form sensitive points of a chart: Yogi and
// Avayogi, tithi and its void signs, gandanta zones, pushkara placements, and the
// badhaka and maraka lords.
package specialpoints

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/varga"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Point is a sensitive longitude with its sign and nakshatra rulers
type Point struct {
	Longitude     float64          `json:"longitude"`
	Sign          domain.Sign      `json:"sign"`
	SignName      string           `json:"sign_name"`
	SignLord      domain.Planet    `json:"sign_lord"`
	Nakshatra     domain.Nakshatra `json:"nakshatra"`
	NakshatraName string           `json:"nakshatra_name"`
	NakshatraLord domain.Planet    `json:"nakshatra_lord"`
}

// NewPoint describes a longitude
func NewPoint(lon float64) Point {
	lon = formulas.Norm360(lon)
	s := domain.SignOf(lon)
	n, _ := domain.NakshatraOf(lon)
	return Point{
		Longitude:     lon,
		Sign:          s,
		SignName:      s.String(),
		SignLord:      s.Lord(),
		Nakshatra:     n,
		NakshatraName: n.String(),
		NakshatraLord: n.Lord(),
	}
}

// Paksha is the lunar fortnight
type Paksha string

const (
	Shukla  Paksha = "shukla"
	Krishna Paksha = "krishna"
)

// Tithi is the lunar day
type Tithi struct {
	Number      int             `json:"number"`       // 1..30
	Paksha      Paksha          `json:"paksha"`       // waxing or waning half
	PakshaTithi int             `json:"paksha_tithi"` // 1..15 within the paksha
	ShunyaSigns []domain.Sign   `json:"shunya_signs"`
	ShunyaLords []domain.Planet `json:"shunya_lords"`
}

// TithiOf computes the tithi from Sun and Moon longitudes
func TithiOf(sunLon, moonLon float64) Tithi {
	arc := formulas.Arc(sunLon, moonLon)
	n := int(arc/12) + 1
	if n > 30 {
		n = 30
	}
	t := Tithi{Number: n, Paksha: Shukla, PakshaTithi: n}
	if n > 15 {
		t.Paksha = Krishna
		t.PakshaTithi = n - 15
	}
	t.ShunyaSigns = tables.TithiShunyaSigns[t.PakshaTithi]
	seen := make(map[domain.Planet]bool)
	for _, s := range t.ShunyaSigns {
		if l := s.Lord(); !seen[l] {
			seen[l] = true
			t.ShunyaLords = append(t.ShunyaLords, l)
		}
	}
	return t
}

// Intensity grades how deep a placement sits in a gandanta zone
type Intensity string

const (
	IntensityExtreme Intensity = "Extreme"
	IntensityHigh    Intensity = "High"
	IntensityMedium  Intensity = "Medium"
	IntensityLow     Intensity = "Low"
)

// Gandanta describes a placement inside a water/fire junction zone
type Gandanta struct {
	Junction  string    `json:"junction"`
	Side      string    `json:"side"`     // "water" before the junction, "fire" after it
	Distance  float64   `json:"distance"` // degrees from the junction
	Intensity Intensity `json:"intensity"`
}

// GandantaOf reports whether a longitude lies in one of the three gandanta zones
func GandantaOf(lon float64) (Gandanta, bool) {
	lon = formulas.Norm360(lon)
	for _, j := range tables.GandantaJunctions {
		d := formulas.Norm180(lon - j.Longitude)
		if math.Abs(d) > tables.GandantaHalfWidth {
			continue
		}
		g := Gandanta{Junction: j.Name, Distance: math.Abs(d)}
		if d < 0 {
			g.Side = "water"
			g.Intensity = IntensityHigh
			if g.Distance <= 1 {
				g.Intensity = IntensityExtreme
			}
		} else {
			g.Side = "fire"
			switch {
			case g.Distance <= 1:
				g.Intensity = IntensityHigh
			case g.Distance <= 2:
				g.Intensity = IntensityMedium
			default:
				g.Intensity = IntensityLow
			}
		}
		return g, true
	}
	return Gandanta{}, false
}

// Pushkara marks blessed navamsa and bhaga placements
type Pushkara struct {
	Navamsa bool `json:"navamsa"`
	Bhaga   bool `json:"bhaga"`
}

// PushkaraOf evaluates a longitude. Pushkara bhaga is taken within one degree of the
// blessed degree of the sign.
func PushkaraOf(lon float64) Pushkara {
	s := domain.SignOf(lon)
	nav, _, _ := varga.Position(lon, 9)
	var p Pushkara
	for _, ns := range tables.PushkaraNavamsaSigns[s.Element()] {
		if ns == nav {
			p.Navamsa = true
		}
	}
	deg := formulas.Norm360(lon) - float64(s)*30
	p.Bhaga = math.Abs(deg-tables.PushkaraBhaga[s]) <= 1
	return p
}

// Badhaka is the obstruction house and its lord
type Badhaka struct {
	House    int           `json:"house"`
	Sign     domain.Sign   `json:"sign"`
	SignName string        `json:"sign_name"`
	Lord     domain.Planet `json:"lord"`
}

// Maraka lists the death-inflicting lords
type Maraka struct {
	Primary   []domain.Planet `json:"primary"`   // lords of the 2nd and 7th
	Secondary []domain.Planet `json:"secondary"` // lord of the 12th
}

// Set is every special point of a chart
type Set struct {
	Yogi      Point                      `json:"yogi"`
	Avayogi   Point                      `json:"avayogi"`
	Dagdha    Point                      `json:"dagdha"`
	Tithi     Tithi                      `json:"tithi"`
	Badhaka   Badhaka                    `json:"badhaka"`
	Maraka    Maraka                     `json:"maraka"`
	Gandanta  map[domain.Planet]Gandanta `json:"gandanta"`
	Pushkara  map[domain.Planet]Pushkara `json:"pushkara"`
	CuspZones map[int]Gandanta           `json:"cusp_gandanta"`
}

// Build computes the special points of a natal chart
func Build(c *chart.Chart) (Set, error) {
	sun, ok1 := c.Lookup(domain.Sun)
	moon, ok2 := c.Lookup(domain.Moon)
	if !ok1 || !ok2 {
		return Set{}, domain.Invariant("specialpoints.Build", "luminaries", "Sun and Moon are required")
	}

	yogi := formulas.Norm360(sun.Longitude + moon.Longitude)
	avayogi := formulas.Norm360(yogi + tables.YogiOffset)

	s := Set{
		Yogi:      NewPoint(yogi),
		Avayogi:   NewPoint(avayogi),
		Dagdha:    NewPoint(avayogi + tables.DagdhaOffset),
		Tithi:     TithiOf(sun.Longitude, moon.Longitude),
		Gandanta:  make(map[domain.Planet]Gandanta),
		Pushkara:  make(map[domain.Planet]Pushkara),
		CuspZones: make(map[int]Gandanta),
	}

	bh := tables.BadhakaHouse(c.AscendantSign)
	s.Badhaka = Badhaka{
		House:    bh,
		Sign:     c.HouseSign(bh),
		SignName: c.HouseSign(bh).String(),
		Lord:     c.HouseLord(bh),
	}
	s.Maraka = Maraka{
		Primary:   unique(c.HouseLord(2), c.HouseLord(7)),
		Secondary: []domain.Planet{c.HouseLord(12)},
	}

	for _, p := range domain.AllPlanets {
		pos, ok := c.Lookup(p)
		if !ok {
			continue
		}
		if g, ok := GandantaOf(pos.Longitude); ok {
			s.Gandanta[p] = g
		}
		if pk := PushkaraOf(pos.Longitude); pk.Navamsa || pk.Bhaga {
			s.Pushkara[p] = pk
		}
	}
	for _, h := range c.Houses {
		if g, ok := GandantaOf(h.Cusp); ok {
			s.CuspZones[h.Number] = g
		}
	}
	return s, nil
}

func unique(ps ...domain.Planet) []domain.Planet {
	var out []domain.Planet
	for _, p := range ps {
		dup := false
		for _, q := range out {
			if q == p {
				dup = true
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Lordships are the special-lord flags of one planet
type Lordships struct {
	YogiLord        bool `json:"is_yogi_lord"`
	AvayogiLord     bool `json:"is_avayogi_lord"`
	BadhakaLord     bool `json:"is_badhaka_lord"`
	DagdhaLord      bool `json:"is_dagdha_lord"`
	TithiShunyaLord bool `json:"is_tithi_shunya_lord"`
	MarakaLord      bool `json:"is_maraka_lord"`
}

// LordshipsOf returns the special lordships held by p. The Yogi and Avayogi planets are
// the nakshatra lords of their points; the Dagdha lord rules the Dagdha rashi.
func (s Set) LordshipsOf(p domain.Planet) Lordships {
	l := Lordships{
		YogiLord:    s.Yogi.NakshatraLord == p,
		AvayogiLord: s.Avayogi.NakshatraLord == p,
		BadhakaLord: s.Badhaka.Lord == p,
		DagdhaLord:  s.Dagdha.SignLord == p,
	}
	for _, q := range s.Tithi.ShunyaLords {
		if q == p {
			l.TithiShunyaLord = true
		}
	}
	for _, q := range s.Maraka.Primary {
		if q == p {
			l.MarakaLord = true
		}
	}
	return l
}

// YogiHouse returns the whole-sign house of the Yogi point in c
func (s Set) YogiHouse(c *chart.Chart) int {
	return c.HouseOfSign(s.Yogi.Sign)
}
