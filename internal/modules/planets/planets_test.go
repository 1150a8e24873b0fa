package planets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func buildSet(t *testing.T, c *chart.Chart) *derived.Set {
	t.Helper()
	log := testingpkg.SilentLogger()
	s, err := derived.NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log).Build(c)
	require.NoError(t, err)
	return s
}

func TestCombustionOf(t *testing.T) {
	tests := []struct {
		name     string
		venus    float64
		expected CombustionStatus
	}{
		{"cazimi", 100.5, Cazimi},
		{"combust", 108, Combust},
		{"edge of orb", 110, Combust},
		{"clear", 111, NotCombust},
		{"behind the sun", 92, Combust},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CombustionOf(domain.Venus, tt.venus, 100, false).Status)
		})
	}

	assert.Equal(t, NotCombust, CombustionOf(domain.Sun, 100, 100, false).Status)
	assert.Equal(t, NotCombust, CombustionOf(domain.Rahu, 100, 100, false).Status)
	// retrograde Venus keeps the 10° orb
	retro := CombustionOf(domain.Venus, 19, 10, true)
	assert.Equal(t, Combust, retro.Status)
	assert.InDelta(t, 10, retro.Orb, 1e-9)
	assert.Equal(t, NotCombust, CombustionOf(domain.Venus, 21, 10, true).Status)
	// Mercury's orb narrows when retrograde
	assert.Equal(t, NotCombust, CombustionOf(domain.Mercury, 113, 100, true).Status)
	assert.Equal(t, Combust, CombustionOf(domain.Mercury, 113, 100, false).Status)
}

func TestAnalyze_CombustVenus(t *testing.T) {
	c := testingpkg.NewChart(t, 0, map[domain.Planet]float64{domain.Sun: 100, domain.Venus: 108})
	s := buildSet(t, c)

	an, err := NewAnalyzer(testingpkg.SilentLogger()).Analyze(s, domain.Venus)
	require.NoError(t, err)
	assert.Equal(t, Combust, an.Combustion.Status)
	assert.InDelta(t, 8, an.Combustion.Distance, 1e-9)

	require.NotEmpty(t, an.Conjunctions)
	assert.Equal(t, domain.Sun, an.Conjunctions[0].Planet)
}

func TestBaladi(t *testing.T) {
	assert.Equal(t, Bala, Baladi(domain.Aries, 3))
	assert.Equal(t, Yuva, Baladi(domain.Aries, 15))
	assert.Equal(t, Mrita, Baladi(domain.Aries, 29.9))
	assert.Equal(t, Mrita, Baladi(domain.Taurus, 3))
	assert.Equal(t, Bala, Baladi(domain.Taurus, 29))
	assert.Equal(t, Yuva, Baladi(domain.Taurus, 12))
}

func TestGradeFor(t *testing.T) {
	assert.Equal(t, Uttama, GradeFor(domain.Sun, 75))
	assert.Equal(t, Madhyama, GradeFor(domain.Sun, 72))
	assert.Equal(t, Adhama, GradeFor(domain.Sun, 49))
	assert.Equal(t, Uttama, GradeFor(domain.Rahu, 72))
	assert.Equal(t, Madhyama, GradeFor(domain.Ketu, 46))
	assert.Equal(t, Adhama, GradeFor(domain.Ketu, 44))
}

func TestScores_WeightsSumToOne(t *testing.T) {
	s := Scores{100, 100, 100, 100, 100, 100}
	assert.InDelta(t, 100, s.Overall(), 1e-9)
}

func TestAnalyzeAll_ReferenceChart(t *testing.T) {
	s := buildSet(t, testingpkg.S1Chart(t))
	all := NewAnalyzer(testingpkg.SilentLogger()).AnalyzeAll(s)
	require.Len(t, all, 9)

	for p, an := range all {
		assert.False(t, an.Fallback, p.String())
		for _, v := range an.Assessment.Scores.vector() {
			assert.GreaterOrEqual(t, v, ScoreMin, p.String())
			assert.LessOrEqual(t, v, ScoreMax, p.String())
		}
		assert.Equal(t, GradeFor(p, an.Assessment.Overall), an.Assessment.Grade)
		assert.Equal(t, an.Basic.Sign.String(), an.Basic.SignName)
		assert.GreaterOrEqual(t, an.Basic.Pada, 1)
		assert.LessOrEqual(t, an.Basic.Pada, 4)
	}

	mars := all[domain.Mars]
	assert.True(t, mars.Retrograde)
	assert.Equal(t, []int{5, 10}, mars.Position.Lordships)
	assert.True(t, all[domain.Rahu].Strength.Default)
	assert.Equal(t, "Swati", all[domain.Moon].Basic.NakshatraName)
}

func TestAnalyzeAll_FallbackOnMissingDerivedData(t *testing.T) {
	s := buildSet(t, testingpkg.S1Chart(t))
	broken := *s
	broken.Dignities = nil

	all := NewAnalyzer(testingpkg.SilentLogger()).AnalyzeAll(&broken)
	for _, an := range all {
		assert.True(t, an.Fallback)
		assert.InDelta(t, NeutralScore, an.Assessment.Overall, 1e-9)
	}
}
