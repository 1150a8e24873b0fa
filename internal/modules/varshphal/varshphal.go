// Package varshphal casts the annual (solar return) chart and selects its year lord.
package varshphal

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
)

// triRashiLords gives the day and night Tri-rashi pati of each annual ascendant
var triRashiLords = [12][2]domain.Planet{
	domain.Aries:       {domain.Sun, domain.Jupiter},
	domain.Taurus:      {domain.Venus, domain.Moon},
	domain.Gemini:      {domain.Saturn, domain.Mercury},
	domain.Cancer:      {domain.Venus, domain.Mars},
	domain.Leo:         {domain.Jupiter, domain.Sun},
	domain.Virgo:       {domain.Moon, domain.Venus},
	domain.Libra:       {domain.Mercury, domain.Saturn},
	domain.Scorpio:     {domain.Mars, domain.Venus},
	domain.Sagittarius: {domain.Saturn, domain.Saturn},
	domain.Capricorn:   {domain.Mars, domain.Moon},
	domain.Aquarius:    {domain.Jupiter, domain.Mercury},
	domain.Pisces:      {domain.Moon, domain.Mars},
}

// Role names a Panchadhikari office
type Role string

const (
	RoleMunthaLord  Role = "muntha_lord"
	RoleJanmaLagna  Role = "janma_lagna_lord"
	RoleVarshaLagna Role = "varsha_lagna_lord"
	RoleTriRashi    Role = "tri_rashi_pati"
	RoleDinaRatri   Role = "dina_ratri_pati"
)

// Candidate is one of the five office bearers
type Candidate struct {
	Role             Role          `json:"role"`
	Planet           domain.Planet `json:"planet"`
	Rupas            float64       `json:"rupas"`
	AspectsAscendant bool          `json:"aspects_ascendant"`
}

// Muntha is the progressed ascendant of the year
type Muntha struct {
	Sign     domain.Sign   `json:"sign"`
	SignName string        `json:"sign_name"`
	Lord     domain.Planet `json:"lord"`
	House    int           `json:"house"` // in the annual chart
}

// Result is the annual chart of one focus year
type Result struct {
	Year       int           `json:"year"`
	Age        int           `json:"age"`
	ReturnTime time.Time     `json:"return_time"`
	DayChart   bool          `json:"day_chart"`
	Chart      *chart.Chart  `json:"chart"`
	Muntha     Muntha        `json:"muntha"`
	Candidates []Candidate   `json:"panchadhikari"`
	YearLord   domain.Planet `json:"year_lord"`
}

// Engine builds annual charts
type Engine struct {
	eph     ephemeris.Ephemeris
	charts  *chart.Calculator
	derived *derived.Builder
	log     zerolog.Logger
}

// NewEngine creates a Varshphal engine
func NewEngine(eph ephemeris.Ephemeris, charts *chart.Calculator, builder *derived.Builder, log zerolog.Logger) *Engine {
	return &Engine{
		eph:     eph,
		charts:  charts,
		derived: builder,
		log:     log.With().Str("engine", "varshphal").Logger(),
	}
}

// Calculate casts the annual chart for year at the birth place
func (e *Engine) Calculate(natal *chart.Chart, birth domain.BirthInput, year int) (*Result, error) {
	const op = "varshphal.Calculate"
	if natal == nil {
		return nil, domain.Invariant(op, "chart", "nil natal chart")
	}
	age := year - birth.UTC().Year()
	if age < 0 {
		return nil, domain.Malformed(op, "year", "%d precedes the birth year", year)
	}

	// Step 1: solar return nearest the birthday of the focus year
	around := ephemeris.JulianDay(birth.UTC().AddDate(age, 0, 0))
	jd, err := ephemeris.SolarReturn(e.eph, natal.Planet(domain.Sun).Longitude, around)
	if err != nil {
		return nil, fmt.Errorf("failed to find solar return: %w", err)
	}

	// Step 2: annual chart and its derived records
	annual, err := e.charts.CalculateAt(jd, birth.Latitude(), birth.Longitude())
	if err != nil {
		return nil, fmt.Errorf("failed to cast annual chart: %w", err)
	}
	set, err := e.derived.Build(annual)
	if err != nil {
		return nil, fmt.Errorf("failed to derive annual chart: %w", err)
	}

	// Step 3: muntha advances one sign per year from the natal ascendant
	munthaSign := natal.AscendantSign.Add(age)
	res := &Result{
		Year:       year,
		Age:        age,
		ReturnTime: ephemeris.TimeFromJulian(jd),
		DayChart:   IsDayChart(annual),
		Chart:      annual,
		Muntha: Muntha{
			Sign:     munthaSign,
			SignName: munthaSign.String(),
			Lord:     munthaSign.Lord(),
			House:    annual.HouseOfSign(munthaSign),
		},
	}

	// Step 4: office bearers and the year lord
	res.Candidates = candidates(set, natal, res.Muntha, res.DayChart)
	res.YearLord = YearLord(res.Candidates)

	e.log.Debug().
		Int("year", year).
		Str("muntha", res.Muntha.SignName).
		Str("year_lord", res.YearLord.String()).
		Msg("Annual chart cast")
	return res, nil
}

// IsDayChart reports whether the Sun is above the horizon (whole-sign houses 7-12)
func IsDayChart(c *chart.Chart) bool {
	return c.Planet(domain.Sun).SignHouse >= 7
}

func candidates(s *derived.Set, natal *chart.Chart, m Muntha, day bool) []Candidate {
	annual := s.Chart
	night := 1
	if day {
		night = 0
	}
	dinaRatri := annual.Planet(domain.Moon).Sign.Lord()
	if day {
		dinaRatri = annual.Planet(domain.Sun).Sign.Lord()
	}

	offices := []struct {
		role   Role
		planet domain.Planet
	}{
		{RoleMunthaLord, m.Lord},
		{RoleJanmaLagna, natal.AscendantSign.Lord()},
		{RoleVarshaLagna, annual.AscendantSign.Lord()},
		{RoleTriRashi, triRashiLords[annual.AscendantSign][night]},
		{RoleDinaRatri, dinaRatri},
	}
	out := make([]Candidate, len(offices))
	for i, o := range offices {
		pos := annual.Planet(o.planet)
		out[i] = Candidate{
			Role:             o.role,
			Planet:           o.planet,
			Rupas:            s.Strength(o.planet).TotalRupas,
			AspectsAscendant: pos.SignHouse == 1 || s.Aspects.AspectsHouse(o.planet, 1),
		}
	}
	return out
}

// YearLord picks the strongest candidate that aspects the annual ascendant, or the
// strongest overall when none does
func YearLord(cs []Candidate) domain.Planet {
	if len(cs) == 0 {
		return domain.Sun
	}
	ranked := append([]Candidate(nil), cs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AspectsAscendant != ranked[j].AspectsAscendant {
			return ranked[i].AspectsAscendant
		}
		return ranked[i].Rupas > ranked[j].Rupas
	})
	return ranked[0].Planet
}
