package varshphal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	testingpkg "github.com/aristath/jyotish/internal/testing"
	"github.com/aristath/jyotish/pkg/formulas"
)

func newEngine() *Engine {
	log := testingpkg.SilentLogger()
	eph := testingpkg.NewEphemeris()
	return NewEngine(eph, chart.NewCalculator(eph, log), derived.NewBuilder(shadbala.NewEngine(eph, log), log), log)
}

func TestCalculate_ReferenceYear(t *testing.T) {
	natal := testingpkg.S1Chart(t)
	birth := testingpkg.S1Birth(t)

	res, err := newEngine().Calculate(natal, birth, 2025)
	require.NoError(t, err)

	assert.Equal(t, 45, res.Age)
	assert.WithinDuration(t, time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC), res.ReturnTime, 72*time.Hour)
	assert.InDelta(t, 0, formulas.AngularDistance(natal.Planet(domain.Sun).Longitude, res.Chart.Planet(domain.Sun).Longitude), 0.01)

	// Cancer advanced 45 signs
	assert.Equal(t, domain.Aries, res.Muntha.Sign)
	assert.Equal(t, domain.Mars, res.Muntha.Lord)
	assert.Equal(t, res.Chart.HouseOfSign(domain.Aries), res.Muntha.House)
	assert.Equal(t, IsDayChart(res.Chart), res.DayChart)

	require.Len(t, res.Candidates, 5)
	assert.Equal(t, RoleJanmaLagna, res.Candidates[1].Role)
	assert.Equal(t, domain.Moon, res.Candidates[1].Planet)
	var planets []domain.Planet
	for _, c := range res.Candidates {
		planets = append(planets, c.Planet)
		assert.Greater(t, c.Rupas, 0.0)
	}
	assert.Contains(t, planets, res.YearLord)
}

func TestCalculate_YearBeforeBirth(t *testing.T) {
	_, err := newEngine().Calculate(testingpkg.S1Chart(t), testingpkg.S1Birth(t), 1970)
	assert.True(t, errors.Is(err, domain.ErrInputMalformed))
}

func TestYearLord(t *testing.T) {
	tests := []struct {
		name string
		cs   []Candidate
		want domain.Planet
	}{
		{
			name: "aspecting candidate beats stronger one",
			cs: []Candidate{
				{Planet: domain.Jupiter, Rupas: 8},
				{Planet: domain.Mars, Rupas: 5, AspectsAscendant: true},
			},
			want: domain.Mars,
		},
		{
			name: "strongest when none aspects",
			cs: []Candidate{
				{Planet: domain.Venus, Rupas: 6},
				{Planet: domain.Saturn, Rupas: 7},
			},
			want: domain.Saturn,
		},
		{name: "empty", want: domain.Sun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearLord(tt.cs))
		})
	}
}
