package houses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func analyze(t *testing.T, c *chart.Chart) (*derived.Set, []Analysis) {
	t.Helper()
	log := testingpkg.SilentLogger()
	s, err := derived.NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log).Build(c)
	require.NoError(t, err)
	pl := planets.NewAnalyzer(log).AnalyzeAll(s)
	return s, NewAnalyzer(log).AnalyzeAll(s, pl)
}

func TestAnalyzeAll_ReferenceChart(t *testing.T) {
	c := testingpkg.S1Chart(t)
	s, all := analyze(t, c)
	require.Len(t, all, 12)

	for i, h := range all {
		assert.Equal(t, i+1, h.Number)
		assert.Equal(t, c.HouseLord(h.Number), h.Lord.Planet)
		assert.Equal(t, h.Sign.String(), h.SignName)
		assert.GreaterOrEqual(t, h.Strength.Total, StrengthMin)
		assert.LessOrEqual(t, h.Strength.Total, StrengthMax)
		assert.Equal(t, LetterGrade(h.Strength.Total), h.Strength.Grade)
	}

	// Leo (2nd) holds Mars, Jupiter, Saturn and Rahu
	assert.Len(t, all[1].Residents, 4)
	// Taurus is the badhaka house for a Cancer ascendant
	assert.True(t, all[10].Flags.BadhakaHouse)
	assert.Equal(t, s.Points.YogiHouse(c), houseWithYogi(all))
	assert.Contains(t, all[8].Relatives, "grandchild")
	assert.Contains(t, all[2].Relatives, "father_in_law")
}

func houseWithYogi(all []Analysis) int {
	for _, h := range all {
		if h.Flags.YogiHouse {
			return h.Number
		}
	}
	return 0
}

func TestAnalyze_ViparitaCancellation(t *testing.T) {
	// Aries ascendant: the 6th (Virgo) is ruled by Mercury; place Mercury in the 8th (Scorpio)
	c := testingpkg.NewChart(t, 5, map[domain.Planet]float64{domain.Mercury: 215})
	_, all := analyze(t, c)

	sixth := all[5]
	assert.Equal(t, domain.Mercury, sixth.Lord.Planet)
	assert.True(t, sixth.Flags.ViparitaCancellation)
	assert.GreaterOrEqual(t, sixth.Strength.Modifiers, ViparitaBonus-BadhakaPenalty-10)
}

func TestLetterGrade(t *testing.T) {
	assert.Equal(t, "A", LetterGrade(80))
	assert.Equal(t, "B", LetterGrade(70))
	assert.Equal(t, "C", LetterGrade(50))
	assert.Equal(t, "D", LetterGrade(40))
	assert.Equal(t, "F", LetterGrade(25))
}

func TestPositional(t *testing.T) {
	assert.Equal(t, 90.0, positional(1))
	assert.Equal(t, 85.0, positional(4))
	assert.Equal(t, 30.0, positional(8))
	assert.Equal(t, 65.0, positional(11))
	assert.Equal(t, 55.0, positional(2))
}
