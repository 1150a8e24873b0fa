package ashtakavarga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/tables"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func TestCalculate_Totals(t *testing.T) {
	c := testingpkg.NewChart(t, 119.88, nil)
	r, err := Calculate(c)
	require.NoError(t, err)

	assert.Equal(t, tables.BinduTotal, r.SAV.Total())
	expected := map[domain.Planet]int{
		domain.Sun: 48, domain.Moon: 49, domain.Mars: 39, domain.Mercury: 54,
		domain.Jupiter: 56, domain.Venus: 52, domain.Saturn: 39,
	}
	for p, want := range expected {
		assert.Equal(t, want, r.BAV[p].Total(), p.String())
		for _, v := range r.BAV[p] {
			assert.LessOrEqual(t, v, 8)
		}
	}

	_, ok := r.BAVPoints(domain.Rahu, domain.Aries)
	assert.False(t, ok)

	houses := r.HouseSAV(c)
	sum := 0
	for _, v := range houses {
		sum += v
	}
	assert.Equal(t, tables.BinduTotal, sum)
	assert.Equal(t, r.SAVPoints(domain.Cancer), houses[0])
}

func TestCalculate_SunBAV(t *testing.T) {
	// Everything in Aries with an Aries ascendant: the Sun's BAV in sign s equals the
	// number of contributors whose table includes house s+1.
	lons := map[domain.Planet]float64{}
	for _, p := range domain.AllPlanets {
		lons[p] = 10
	}
	c := testingpkg.NewChart(t, 5, lons)
	r, err := Calculate(c)
	require.NoError(t, err)

	bav := r.BAV[domain.Sun]
	// house 1 appears for Sun, Mars and Saturn
	assert.Equal(t, 3, bav[domain.Aries])
	// house 11 appears for every contributor except Venus
	assert.Equal(t, 7, bav[domain.Aquarius])
}
