package shadbala

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/varga"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func inputFor(t *testing.T, c *chart.Chart) Input {
	t.Helper()
	b, err := varga.Build(c)
	require.NoError(t, err)
	d, err := dignity.Build(b)
	require.NoError(t, err)
	return Input{Chart: c, Bundle: b, Dignities: d}
}

func newEngine() *Engine {
	return NewEngine(testingpkg.NewEphemeris(), testingpkg.SilentLogger())
}

func TestCalculate_ReferenceChart(t *testing.T) {
	res, err := newEngine().Calculate(inputFor(t, testingpkg.S1Chart(t)))
	require.NoError(t, err)
	require.Len(t, res.Records, 7)

	for _, p := range domain.ClassicalPlanets {
		r := res.Records[p]
		t.Run(p.String(), func(t *testing.T) {
			assert.False(t, r.Default)
			assert.GreaterOrEqual(t, r.TotalPoints, 240.0)
			assert.LessOrEqual(t, r.TotalPoints, 720.0)

			sum := r.Sthana + r.Dig + r.Kala + r.Chesta + r.Naisargika + r.Drik
			assert.InDelta(t, sum, r.TotalPoints, 1e-9)
			assert.InDelta(t, r.TotalPoints/60, r.TotalRupas, 1e-9)
			assert.InDelta(t, r.SthanaDetail.Total(), r.Sthana, 1e-9)
			assert.InDelta(t, r.KalaDetail.Total(), r.Kala, 1e-9)
			assert.InDelta(t, 60, r.IshtaPhala+r.KashtaPhala, 1e-9)
			assert.Equal(t, GradeOf(r.TotalRupas), r.Grade)
		})
	}
}

func TestResolveTimeLords_ReferenceChart(t *testing.T) {
	lords, err := ResolveTimeLords(testingpkg.NewEphemeris(), testingpkg.S1Chart(t))
	require.NoError(t, err)

	assert.True(t, lords.Daytime)
	assert.Equal(t, domain.Mercury, lords.DinaLord)
	assert.Equal(t, 8, lords.HoraIndex)
	assert.Equal(t, domain.Moon, lords.HoraLord)
	assert.Equal(t, domain.Saturn, lords.Tribhaga)
	assert.Equal(t, domain.Saturn, lords.VarshaLord)
	assert.Equal(t, domain.Jupiter, lords.MaasaLord)
	assert.Greater(t, lords.Noonness, 0.5)
	assert.Less(t, lords.Noonness, 1.0)
}

func TestUccha(t *testing.T) {
	assert.InDelta(t, 60, Uccha(domain.Sun, 10), 0.1)
	assert.InDelta(t, 60, Uccha(domain.Moon, 33), 0.1)
	assert.InDelta(t, 0, Uccha(domain.Sun, 190), 1e-9)
	assert.InDelta(t, 30, Uccha(domain.Saturn, 110), 1e-9)
}

func TestCalculate_ExaltedLuminaries(t *testing.T) {
	c := testingpkg.NewChart(t, 0, map[domain.Planet]float64{domain.Sun: 10, domain.Moon: 33})
	res, err := newEngine().Calculate(inputFor(t, c))
	require.NoError(t, err)

	assert.InDelta(t, 60, res.Records[domain.Sun].SthanaDetail.Uccha, 0.1)
	assert.InDelta(t, 60, res.Records[domain.Moon].SthanaDetail.Uccha, 0.1)
}

func TestChestaBala(t *testing.T) {
	assert.Equal(t, 0.0, chestaBala(domain.Saturn, 0))
	assert.InDelta(t, 60, chestaBala(domain.Mars, -0.41), 1e-9)
	assert.InDelta(t, 30, chestaBala(domain.Jupiter, 0.125), 1e-9)
	assert.Equal(t, 0.0, chestaBala(domain.Sun, 0.95))
	assert.Equal(t, 60.0, chestaBala(domain.Moon, 15.5))
}

func TestKalaHelpers(t *testing.T) {
	assert.Equal(t, 60.0, nathonnata(domain.Mercury, 0))
	assert.Equal(t, 60.0, nathonnata(domain.Sun, 1))
	assert.Equal(t, 60.0, nathonnata(domain.Saturn, 0))

	// full Moon: benefics get 60, the malefic Sun/Mars/Saturn get 0
	assert.InDelta(t, 60, paksha(domain.Jupiter, 0, 180), 1e-9)
	assert.InDelta(t, 0, paksha(domain.Mars, 0, 180), 1e-9)

	assert.InDelta(t, 120, ayana(domain.Sun, 24), 1e-9)
	assert.InDelta(t, 60, ayana(domain.Moon, -24), 1e-9)
	assert.InDelta(t, 45, ayana(domain.Mercury, -12), 1e-9)
}

func TestSthanaHelpers(t *testing.T) {
	assert.Equal(t, 30.0, ojhaYugma(domain.Sun, domain.Aries, domain.Leo))
	assert.Equal(t, 15.0, ojhaYugma(domain.Moon, domain.Aries, domain.Taurus))
	assert.Equal(t, 60.0, kendradi(10))
	assert.Equal(t, 30.0, kendradi(11))
	assert.Equal(t, 15.0, kendradi(12))
	assert.Equal(t, 15.0, drekkana(domain.Sun, 5))
	assert.Equal(t, 15.0, drekkana(domain.Saturn, 15))
	assert.Equal(t, 15.0, drekkana(domain.Venus, 29.99))
	assert.Equal(t, 0.0, drekkana(domain.Venus, 5))
}

func TestCalculate_PerPlanetFailureIsolated(t *testing.T) {
	c := testingpkg.S1Chart(t)
	in := Input{Chart: c, Bundle: varga.Bundle{1: c}}

	res, err := newEngine().Calculate(in)
	require.NoError(t, err)
	for _, p := range domain.ClassicalPlanets {
		assert.True(t, res.Records[p].Default, p.String())
	}
}

func TestPlanet_NodesGetDefault(t *testing.T) {
	r := newEngine().Planet(domain.Rahu, inputFor(t, testingpkg.S1Chart(t)))
	assert.True(t, r.Default)
	assert.Equal(t, Average, r.Grade)
	assert.InDelta(t, 4, r.TotalRupas, 1e-9)
}

func TestGradeOf(t *testing.T) {
	assert.Equal(t, Excellent, GradeOf(6))
	assert.Equal(t, Good, GradeOf(5.5))
	assert.Equal(t, Average, GradeOf(4))
	assert.Equal(t, Weak, GradeOf(3.99))
}

func TestRecords_Strongest(t *testing.T) {
	rs := Records{
		domain.Sun:     {TotalRupas: 5},
		domain.Jupiter: {TotalRupas: 9},
	}
	assert.Equal(t, domain.Jupiter, rs.Strongest())
	assert.True(t, rs.Get(domain.Mars).Default)
}
