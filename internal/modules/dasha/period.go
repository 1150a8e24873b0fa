// Package dasha implements the planetary period systems. Every system produces
// mahadashas covering the supported window and subdivides any period into an
// ordered partition of its span.
package dasha

import (
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// HorizonYears is the span after birth every system must cover
const HorizonYears = 120

// maxSteps bounds mahadasha generation
const maxSteps = 1000

// Period is one dasha period at some level
type Period struct {
	System    string          `json:"system"`
	Level     int             `json:"level"`
	LevelName string          `json:"level_name"`
	Lord      string          `json:"lord"`
	Planets   []domain.Planet `json:"planets,omitempty"` // rulers used for significance checks
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Note      string          `json:"note,omitempty"`
	Sub       []Period        `json:"sub_periods,omitempty"`

	// ruler identifies the period for its system's subdivision rule
	ruler int
}

// Contains reports whether t falls in [Start, End)
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether the period intersects [from, to)
func (p Period) Overlaps(from, to time.Time) bool {
	return p.Start.Before(to) && p.End.After(from)
}

// HasPlanet reports whether p rules this period
func (p Period) HasPlanet(planet domain.Planet) bool {
	for _, q := range p.Planets {
		if q == planet {
			return true
		}
	}
	return false
}

// Years returns the period length in dasha years
func (p Period) Years() float64 {
	return p.End.Sub(p.Start).Hours() / 24 / tables.DaysPerYear
}

// Stack is the chain of active periods, mahadasha first
type Stack []Period

// HasPlanet reports whether p rules any level of the stack
func (s Stack) HasPlanet(p domain.Planet) bool {
	for _, period := range s {
		if period.HasPlanet(p) {
			return true
		}
	}
	return false
}

// Lords lists the lord of each level
func (s Stack) Lords() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Lord
	}
	return out
}

// System is one dasha scheme
type System interface {
	Name() string
	// Levels names the supported levels, mahadasha first
	Levels() []string
	// Mahadashas returns ascending, contiguous mahadashas covering birth..birth+HorizonYears
	Mahadashas(c *chart.Chart, birth time.Time) ([]Period, error)
	// Subdivide partitions a period into its next-level periods
	Subdivide(parent Period) []Period
}

// share is one slice of a period being generated or subdivided
type share struct {
	ruler   int
	lord    string
	planets []domain.Planet
	note    string
	weight  float64
}

// YearsToDuration converts dasha years to a duration
func YearsToDuration(years float64) time.Duration {
	return time.Duration(years * tables.DaysPerYear * float64(24*time.Hour))
}

func newPeriod(sys System, level int, s share, start, end time.Time) Period {
	name := ""
	if levels := sys.Levels(); level >= 1 && level <= len(levels) {
		name = levels[level-1]
	}
	return Period{
		System:    sys.Name(),
		Level:     level,
		LevelName: name,
		Lord:      s.lord,
		Planets:   s.planets,
		Start:     start,
		End:       end,
		Note:      s.note,
		ruler:     s.ruler,
	}
}

// sequence lays shares end to end from start, weights in years, until horizon is passed.
// next returns the share for step k.
func sequence(sys System, start, horizon time.Time, next func(k int) share) []Period {
	var out []Period
	for k := 0; start.Before(horizon) && k < maxSteps; k++ {
		s := next(k)
		if s.weight <= 0 {
			continue
		}
		end := start.Add(YearsToDuration(s.weight))
		out = append(out, newPeriod(sys, 1, s, start, end))
		start = end
	}
	return out
}

// partition splits parent proportionally to the share weights. The last child ends
// exactly at the parent's end so siblings tile the parent without gaps.
func partition(sys System, parent Period, shares []share) []Period {
	var total float64
	for _, s := range shares {
		total += s.weight
	}
	if total <= 0 {
		return nil
	}
	span := float64(parent.End.Sub(parent.Start))
	out := make([]Period, 0, len(shares))
	start := parent.Start
	var acc float64
	for i, s := range shares {
		acc += s.weight
		end := parent.Start.Add(time.Duration(span * acc / total))
		if i == len(shares)-1 {
			end = parent.End
		}
		if !end.After(start) {
			continue
		}
		out = append(out, newPeriod(sys, parent.Level+1, s, start, end))
		start = end
	}
	return out
}

func inWindow(sys System, birth, at time.Time) error {
	horizon := birth.Add(YearsToDuration(HorizonYears))
	if at.Before(birth) || !at.Before(horizon) {
		return domain.Malformed("dasha.Active", sys.Name(), "%s is outside %s..%s",
			at.Format(time.RFC3339), birth.Format("2006-01-02"), horizon.Format("2006-01-02"))
	}
	return nil
}

// Active returns the periods running at instant at, down to depth levels (0 = all)
func Active(sys System, c *chart.Chart, birth, at time.Time, depth int) (Stack, error) {
	if err := inWindow(sys, birth, at); err != nil {
		return nil, err
	}
	if depth <= 0 || depth > len(sys.Levels()) {
		depth = len(sys.Levels())
	}
	mahas, err := sys.Mahadashas(c, birth)
	if err != nil {
		return nil, err
	}

	var stack Stack
	periods := mahas
	for level := 1; level <= depth; level++ {
		found := false
		for _, p := range periods {
			if p.Contains(at) {
				stack = append(stack, p)
				periods = sys.Subdivide(p)
				found = true
				break
			}
		}
		if !found {
			return nil, domain.Invariant("dasha.Active", sys.Name(), "no level-%d period contains %s", level, at.Format(time.RFC3339))
		}
	}
	return stack, nil
}

// Timeline returns the mahadashas overlapping [from, to), nested depth levels deep.
// Sub-periods outside the window are dropped.
func Timeline(sys System, c *chart.Chart, birth, from, to time.Time, depth int) ([]Period, error) {
	if !to.After(from) {
		return nil, domain.Malformed("dasha.Timeline", sys.Name(), "empty window")
	}
	if depth <= 0 || depth > len(sys.Levels()) {
		depth = len(sys.Levels())
	}
	mahas, err := sys.Mahadashas(c, birth)
	if err != nil {
		return nil, err
	}
	return expand(sys, mahas, from, to, depth), nil
}

func expand(sys System, periods []Period, from, to time.Time, depth int) []Period {
	var out []Period
	for _, p := range periods {
		if !p.Overlaps(from, to) {
			continue
		}
		if p.Level < depth {
			p.Sub = expand(sys, sys.Subdivide(p), from, to, depth)
		}
		out = append(out, p)
	}
	return out
}

// rotate returns the nine Vimshottari-ordered lords starting at first
func rotate(order []domain.Planet, first domain.Planet) []domain.Planet {
	start := 0
	for i, p := range order {
		if p == first {
			start = i
		}
	}
	out := make([]domain.Planet, len(order))
	for k := range order {
		out[k] = order[(start+k)%len(order)]
	}
	return out
}

func moonOf(c *chart.Chart, op string) (chart.PlanetPosition, error) {
	moon, ok := c.Lookup(domain.Moon)
	if !ok {
		return chart.PlanetPosition{}, domain.Invariant(op, "Moon", "natal Moon missing")
	}
	return moon, nil
}
