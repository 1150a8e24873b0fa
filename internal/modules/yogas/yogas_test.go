package yogas

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

func derive(t *testing.T, c *chart.Chart) *derived.Set {
	t.Helper()
	log := testingpkg.SilentLogger()
	s, err := derived.NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log).Build(c)
	require.NoError(t, err)
	return s
}

func TestDetect_ReferenceChart(t *testing.T) {
	s := derive(t, testingpkg.S1Chart(t))
	b := Detect(s)

	assert.Len(t, b, len(matchers))
	assert.Len(t, b.All(), b.Count())

	t.Run("raj", func(t *testing.T) {
		var pairs [][]domain.Planet
		var karakas []domain.Planet
		for _, y := range b[FamilyRaj] {
			if y.Name == "Yogakaraka" {
				karakas = append(karakas, y.Planets...)
				continue
			}
			pairs = append(pairs, y.Planets)
		}
		assert.ElementsMatch(t, [][]domain.Planet{
			{domain.Moon, domain.Saturn},
			{domain.Mars, domain.Saturn},
			{domain.Jupiter, domain.Saturn},
			{domain.Mars, domain.Jupiter},
		}, pairs)
		assert.Equal(t, []domain.Planet{domain.Mars}, karakas)
	})

	t.Run("dhana", func(t *testing.T) {
		require.Len(t, b[FamilyDhana], 1)
		assert.Equal(t, "Lakshmi Dhana Yoga", b[FamilyDhana][0].Name)
		assert.Equal(t, []domain.Planet{domain.Sun, domain.Mars}, b[FamilyDhana][0].Planets)
	})

	t.Run("absent families", func(t *testing.T) {
		for _, f := range []Family{FamilyMahapurusha, FamilyNeechaBhanga, FamilyGajaKesari, FamilyAmala, FamilyKaalSarp, FamilyEducation} {
			assert.Empty(t, b[f], f)
		}
	})

	t.Run("placements", func(t *testing.T) {
		assert.Equal(t, []string{"Vimala Yoga"}, b.Names(FamilyViparita))
		require.Len(t, b[FamilyParivartana], 1)
		assert.Equal(t, "Parivartana Yoga", b[FamilyParivartana][0].Name)
		assert.Equal(t, []int{2, 9}, b[FamilyParivartana][0].Houses)
		assert.Equal(t, []string{"Pasha Yoga"}, b.Names(FamilyNabhasa))
		assert.Equal(t, []string{"Vosi Yoga"}, b.Names(FamilySurya))
		assert.Equal(t, []domain.Planet{domain.Sun, domain.Mercury}, b[FamilySurya][0].Planets)
		assert.Equal(t, []string{"Lagnadhi Bala Yoga"}, b.Names(FamilyHealth))
		assert.Equal(t, []string{"Dharma Karmadhipati Yoga"}, b.Names(FamilyCareer))
	})

	t.Run("kemadruma", func(t *testing.T) {
		require.Len(t, b[FamilyChandra], 1)
		y := b[FamilyChandra][0]
		assert.Equal(t, "Kemadruma Yoga", y.Name)
		assert.True(t, y.Dosha)
		assert.False(t, y.Cancelled)
	})

	t.Run("mangal dosha cancelled by Jupiter", func(t *testing.T) {
		require.Len(t, b[FamilyMarriage], 1)
		y := b[FamilyMarriage][0]
		assert.Equal(t, "Mangal Dosha", y.Name)
		assert.Equal(t, Moderate, y.Strength)
		assert.True(t, y.Cancelled)
		assert.Contains(t, y.Cancellations, "Jupiter conjoins or aspects Mars")
	})

	t.Run("pitra dosha", func(t *testing.T) {
		require.Len(t, b[FamilyPitraDosha], 1)
		y := b[FamilyPitraDosha][0]
		assert.Equal(t, Strong, y.Strength)
		assert.False(t, y.Cancelled)
		assert.Equal(t, []domain.Planet{domain.Sun, domain.Saturn, domain.Mars, domain.Rahu, domain.Ketu}, y.Planets)
		assert.Contains(t, y.Description, "Mars aspects the 9th house")
	})

	var active []string
	for _, y := range b.Doshas() {
		active = append(active, y.Name)
	}
	assert.ElementsMatch(t, []string{"Kemadruma Yoga", "Pitra Dosha"}, active)
}

func TestMahapurushaAndGajaKesari(t *testing.T) {
	// Cancer ascendant with Jupiter exalted in the 1st; Moon in Libra sees it in the 10th
	s := derive(t, testingpkg.NewChart(t, 95, map[domain.Planet]float64{domain.Jupiter: 95}))

	assert.Equal(t, []string{"Hamsa Yoga"}, Detect(s).Names(FamilyMahapurusha))
	gk := GajaKesari(s)
	require.Len(t, gk, 1)
	assert.Contains(t, gk[0].Description, "house 10")
}

func TestNeechaBhanga(t *testing.T) {
	// Sun debilitated in Libra, Saturn exalted there too and in kendra
	s := derive(t, testingpkg.NewChart(t, 95, map[domain.Planet]float64{
		domain.Sun:    185,
		domain.Saturn: 200,
	}))

	ys := NeechaBhanga(s)
	require.Len(t, ys, 1)
	assert.Equal(t, []domain.Planet{domain.Sun}, ys[0].Planets)
	assert.Len(t, ys[0].Cancellations, 2)
	assert.Equal(t, Moderate, ys[0].Strength)
	assert.Contains(t, ys[0].Cancellations[0], "Saturn")
}

func TestKaalSarp(t *testing.T) {
	t.Run("all planets between Rahu and Ketu", func(t *testing.T) {
		s := derive(t, testingpkg.NewChart(t, 95, map[domain.Planet]float64{
			domain.Sun:     155,
			domain.Moon:    160,
			domain.Mars:    180,
			domain.Mercury: 150,
			domain.Jupiter: 215,
			domain.Venus:   170,
			domain.Saturn:  250,
		}))
		ys := KaalSarp(s)
		require.Len(t, ys, 1)
		assert.Equal(t, "Kulik Kaal Sarp Dosha", ys[0].Name)
		assert.Contains(t, ys[0].Description, "Rahu to Ketu")
		assert.False(t, ys[0].Cancelled)
		assert.Equal(t, Strong, ys[0].Strength)
	})

	t.Run("planets on both sides", func(t *testing.T) {
		assert.Empty(t, KaalSarp(derive(t, testingpkg.S1Chart(t))))
	})
}

func TestNabhasa_MovableKendras(t *testing.T) {
	s := derive(t, testingpkg.NewChart(t, 95, map[domain.Planet]float64{
		domain.Sun:     5,
		domain.Moon:    95,
		domain.Mars:    185,
		domain.Mercury: 10,
		domain.Jupiter: 275,
		domain.Venus:   20,
		domain.Saturn:  190,
	}))

	var names []string
	for _, y := range Nabhasa(s) {
		names = append(names, y.Name)
	}
	assert.Equal(t, []string{"Rajju Yoga", "Kamala Yoga", "Kedara Yoga"}, names)
}

func TestAkritiMatches(t *testing.T) {
	tests := []struct {
		name     string
		occupied []int
		want     []string
	}{
		{"sakata", []int{1, 7}, []string{"Sakata"}},
		{"gada", []int{4, 7}, []string{"Gada"}},
		{"vapi panaphara", []int{2, 5, 11}, []string{"Vapi"}},
		{"yupa", []int{1, 2, 3, 4}, []string{"Yupa"}},
		{"samudra", []int{2, 4, 6, 8, 10, 12}, []string{"Samudra"}},
		{"scattered", []int{1, 2, 6}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, a := range akritis {
				if a.matches(tt.occupied) {
					got = append(got, a.name)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
