package testing

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
)

// SilentLogger returns a logger that discards everything
func SilentLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

// NewEphemeris returns the built-in ephemeris with a silent logger
func NewEphemeris() *ephemeris.Meeus {
	return ephemeris.NewMeeus(SilentLogger())
}

// S1BirthData is the reference nativity: 1980-04-02 14:55 IST, Hisar
func S1BirthData() domain.BirthData {
	return domain.BirthData{
		Date:      "1980-04-02",
		Time:      "14:55",
		Latitude:  29.2397,
		Longitude: 75.8175,
		Timezone:  "+05:30",
	}
}

// S1Birth parses S1BirthData
func S1Birth(t testing.TB) domain.BirthInput {
	t.Helper()
	in, err := domain.NewBirthInput(S1BirthData(), domain.LongitudeResolver{})
	if err != nil {
		t.Fatalf("failed to parse S1 birth: %v", err)
	}
	return in
}

// S1Chart computes the D1 chart of the reference nativity
func S1Chart(t testing.TB) *chart.Chart {
	t.Helper()
	c, err := chart.NewCalculator(NewEphemeris(), SilentLogger()).Calculate(S1Birth(t))
	if err != nil {
		t.Fatalf("failed to compute S1 chart: %v", err)
	}
	return c
}

// Placement is a synthetic planet position
type Placement struct {
	Longitude   float64
	Speed       float64
	Declination float64
}

// defaultLongitudes are the S1 sidereal longitudes, used for planets a test does not place
var defaultLongitudes = map[domain.Planet]float64{
	domain.Sun:     349.22,
	domain.Moon:    188.43,
	domain.Mars:    122.39,
	domain.Mercury: 321.45,
	domain.Jupiter: 127.55,
	domain.Venus:   35.0,
	domain.Saturn:  148.56,
	domain.Rahu:    123.42,
	domain.Ketu:    303.42,
}

// MeanSpeeds are typical direct daily motions
var MeanSpeeds = map[domain.Planet]float64{
	domain.Sun:     0.9856,
	domain.Moon:    13.18,
	domain.Mars:    0.524,
	domain.Mercury: 1.383,
	domain.Jupiter: 0.083,
	domain.Venus:   1.2,
	domain.Saturn:  0.034,
	domain.Rahu:    -0.053,
	domain.Ketu:    -0.053,
}

// NewChart assembles an equal-house chart from an ascendant and longitudes. Planets not
// named keep the S1 longitudes; speeds default to MeanSpeeds.
func NewChart(t testing.TB, asc float64, lons map[domain.Planet]float64) *chart.Chart {
	t.Helper()
	placements := make(map[domain.Planet]Placement, len(lons))
	for p, l := range lons {
		placements[p] = Placement{Longitude: l, Speed: MeanSpeeds[p]}
	}
	return NewChartWith(t, asc, placements)
}

// NewChartWith assembles an equal-house chart with explicit speeds and declinations
func NewChartWith(t testing.TB, asc float64, placements map[domain.Planet]Placement) *chart.Chart {
	t.Helper()
	bodies := make(map[domain.Planet]chart.Body, len(domain.AllPlanets))
	for _, p := range domain.AllPlanets {
		pl, ok := placements[p]
		if !ok {
			pl = Placement{Longitude: defaultLongitudes[p], Speed: MeanSpeeds[p]}
		}
		bodies[p] = chart.Body{Longitude: pl.Longitude, Speed: pl.Speed, Declination: pl.Declination}
	}
	c, err := chart.Assemble(chart.Frame{
		Division:  1,
		JulianDay: ephemeris.J2000,
		Latitude:  29.2397,
		Longitude: 75.8175,
		Ascendant: asc,
		MC:        asc + 270,
		Bodies:    bodies,
	})
	if err != nil {
		t.Fatalf("failed to assemble chart: %v", err)
	}
	return c
}
