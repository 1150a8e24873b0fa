package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/transit"
)

func TestTaraOf(t *testing.T) {
	swati := domain.Nakshatra(14)
	tests := []struct {
		name      string
		transit   domain.Nakshatra
		wantTara  int
		wantCycle int
	}{
		{"janma", swati, 1, 1},
		{"vipat", swati + 2, 3, 1},
		{"wraps to ashwini", 0, 5, 2},
		{"third round", swati + 18, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tara, cycle := TaraOf(swati, tt.transit)
			assert.Equal(t, tt.wantTara, tara)
			assert.Equal(t, tt.wantCycle, cycle)
		})
	}
}

func TestNavatara(t *testing.T) {
	// natal Moon in Swati; Saturn in Anuradha (Vipat), Jupiter in Swati (Janma)
	taras := Navatara(188.43, map[domain.Planet]float64{
		domain.Saturn:  215,
		domain.Jupiter: 190,
	})
	require.Len(t, taras, 2)
	assert.Equal(t, domain.Jupiter, taras[0].Planet)
	assert.Equal(t, "Janma", taras[0].Name)

	warnings := NavataraWarnings(taras)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.Saturn, warnings[0].Planet)
	assert.Equal(t, "Vipat", warnings[0].Name)
}

func TestNadi(t *testing.T) {
	a := Nadi(25)
	assert.Equal(t, []domain.Planet{domain.Venus}, a.Maturing)
	assert.ElementsMatch(t, []domain.Planet{domain.Sun, domain.Moon, domain.Jupiter, domain.Venus}, a.Matured)
	require.NotNil(t, a.Next)
	assert.Equal(t, domain.Mars, a.Next.Planet)
	assert.Equal(t, 28, a.Next.Age)

	assert.Nil(t, Nadi(60).Next)
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1980, 4, 2, 9, 25, 0, 0, time.UTC)
	assert.Equal(t, 45, AgeAt(birth, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 44, AgeAt(birth, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeAt(birth, birth.AddDate(-1, 0, 0)))
}

func period(level, lord string, p domain.Planet) dasha.Period {
	return dasha.Period{LevelName: level, Lord: lord, Planets: []domain.Planet{p}}
}

func TestConflicts(t *testing.T) {
	vim := dasha.Stack{
		period("mahadasha", "Saturn", domain.Saturn),
		period("antardasha", "Moon", domain.Moon),
		period("pratyantardasha", "Mars", domain.Mars),
	}
	yog := dasha.Stack{
		period("mahadasha", "Pingala", domain.Sun),
		period("antardasha", "Mangala", domain.Moon),
		period("pratyantardasha", "Dhanya", domain.Jupiter),
	}

	got := Conflicts(vim, yog)
	require.Len(t, got, 2)

	assert.Equal(t, "mahadasha", got[0].Level)
	assert.Equal(t, tables.Enemy, got[0].Relation)
	assert.False(t, got[0].NatureClash)
	assert.Equal(t, "medium", got[0].Severity)

	assert.Equal(t, "pratyantardasha", got[1].Level)
	assert.True(t, got[1].NatureClash)
	assert.Equal(t, "low", got[1].Severity)
}

func TestPredictionMatrix(t *testing.T) {
	acts := []transit.Activation{
		{Planet: domain.Saturn, Target: domain.Mars, KarmicTrigger: []domain.Planet{domain.Rahu}, SAV: 30, Significance: transit.Maximum},
		{Planet: domain.Saturn, Target: domain.Moon, KarmicTrigger: []domain.Planet{domain.Venus}, SAV: 30, Paradox: true, Significance: transit.Maximum},
		{Planet: domain.Jupiter, Target: domain.Sun, SAV: 22, Significance: transit.High},
	}
	m := PredictionMatrix(acts)
	require.Len(t, m, 3)
	assert.True(t, m[0].Critical)
	assert.Equal(t, 3, m[0].Score)
	assert.False(t, m[1].HighSAV)
	assert.Equal(t, 2, m[1].Score)
	assert.Equal(t, 0, m[2].Score)

	crit := Critical(m)
	require.Len(t, crit, 1)
	assert.Equal(t, domain.Mars, crit[0].Target)
}
