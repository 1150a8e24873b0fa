package dasha

import (
	"fmt"
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// Kalachakra runs the nine-sign sequence of the natal Moon's pada
type Kalachakra struct{}

func (Kalachakra) Name() string { return "kalachakra" }

func (Kalachakra) Levels() []string { return []string{"mahadasha", "antardasha"} }

// padaKey numbers the 108 padas from Ashwini 1
func padaKey(n domain.Nakshatra, pada int) int {
	return int(n)*4 + pada - 1
}

func padaOfKey(key int) (domain.Nakshatra, int) {
	key = ((key % 108) + 108) % 108
	return domain.Nakshatra(key / 4), key%4 + 1
}

// kalachakraShare encodes the pada and position so antardashas can find the sequence
func kalachakraShare(key, pos int) share {
	n, pada := padaOfKey(key)
	signs, savya := tables.KalachakraSequence(n, pada)
	s := signs[pos]
	direction := "apasavya"
	if savya {
		direction = "savya"
	}
	return share{
		ruler:   key*9 + pos,
		lord:    s.String(),
		planets: []domain.Planet{s.Lord()},
		note:    fmt.Sprintf("%s, %s pada %d", direction, n, pada),
		weight:  tables.KalachakraYears[s],
	}
}

func sequenceYears(n domain.Nakshatra, pada int) float64 {
	signs, _ := tables.KalachakraSequence(n, pada)
	var total float64
	for _, s := range signs {
		total += tables.KalachakraYears[s]
	}
	return total
}

func (k Kalachakra) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	moon, err := moonOf(c, "dasha.Kalachakra")
	if err != nil {
		return nil, err
	}
	n, pada := domain.NakshatraOf(moon.Longitude)
	inPada := (moon.Longitude - n.Start() - float64(pada-1)*domain.PadaSpan) / domain.PadaSpan
	elapsed := inPada * sequenceYears(n, pada)

	key := padaKey(n, pada)
	start := birth.Add(-YearsToDuration(elapsed))
	horizon := birth.Add(YearsToDuration(HorizonYears))
	return sequence(k, start, horizon, func(i int) share {
		return kalachakraShare(key+i/9, i%9)
	}), nil
}

// Subdivide distributes the parent over its own sequence starting at the parent's sign
func (k Kalachakra) Subdivide(parent Period) []Period {
	if parent.Level >= len(k.Levels()) {
		return nil
	}
	key, pos := parent.ruler/9, parent.ruler%9
	shares := make([]share, 9)
	for i := range shares {
		shares[i] = kalachakraShare(key, (pos+i)%9)
	}
	return partition(k, parent, shares)
}

// Sudarshana advances one sign a year from the ascendant, Moon and Sun together
type Sudarshana struct{}

func (Sudarshana) Name() string { return "sudarshana" }

func (Sudarshana) Levels() []string { return []string{"year", "month"} }

// sudarshanaShare encodes the three reference signs of a year or month
func sudarshanaShare(lagna, moon, sun domain.Sign) share {
	planets := []domain.Planet{lagna.Lord()}
	for _, s := range []domain.Sign{moon, sun} {
		seen := false
		for _, p := range planets {
			seen = seen || p == s.Lord()
		}
		if !seen {
			planets = append(planets, s.Lord())
		}
	}
	return share{
		ruler:   int(lagna) + 12*int(moon) + 144*int(sun),
		lord:    lagna.String(),
		planets: planets,
		note:    fmt.Sprintf("Moon: %s, Sun: %s", moon, sun),
		weight:  1,
	}
}

func decodeSudarshana(ruler int) (lagna, moon, sun domain.Sign) {
	return domain.Sign(ruler % 12), domain.Sign(ruler / 12 % 12), domain.Sign(ruler / 144)
}

func (s Sudarshana) Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error) {
	moon, err := moonOf(c, "dasha.Sudarshana")
	if err != nil {
		return nil, err
	}
	sun, ok := c.Lookup(domain.Sun)
	if !ok {
		return nil, domain.Invariant("dasha.Sudarshana", "Sun", "natal Sun missing")
	}

	// years follow birthdays rather than fixed 365.25-day steps
	out := make([]Period, 0, HorizonYears+1)
	for age := 0; age <= HorizonYears; age++ {
		sh := sudarshanaShare(c.AscendantSign.Add(age), moon.Sign.Add(age), sun.Sign.Add(age))
		out = append(out, newPeriod(s, 1, sh, birth.AddDate(age, 0, 0), birth.AddDate(age+1, 0, 0)))
	}
	return out, nil
}

func (s Sudarshana) Subdivide(parent Period) []Period {
	if parent.Level >= len(s.Levels()) {
		return nil
	}
	lagna, moon, sun := decodeSudarshana(parent.ruler)
	shares := make([]share, 12)
	for m := range shares {
		shares[m] = sudarshanaShare(lagna.Add(m), moon.Add(m), sun.Add(m))
	}
	return partition(s, parent, shares)
}
