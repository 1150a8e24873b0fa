package specialpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func TestGandantaOf(t *testing.T) {
	tests := []struct {
		name      string
		lon       float64
		inZone    bool
		junction  string
		intensity Intensity
	}{
		{"moon at 26°50' cancer", 116 + 50.0/60, true, "Cancer-Leo", IntensityHigh},
		{"last degree of cancer", 119.5, true, "Cancer-Leo", IntensityExtreme},
		{"first degree of leo", 120.5, true, "Cancer-Leo", IntensityHigh},
		{"second degree of leo", 121.5, true, "Cancer-Leo", IntensityMedium},
		{"third degree of leo", 122.5, true, "Cancer-Leo", IntensityLow},
		{"outside the zone", 123.5, false, "", ""},
		{"end of pisces", 359.5, true, "Pisces-Aries", IntensityExtreme},
		{"start of sagittarius", 241, true, "Scorpio-Sagittarius", IntensityHigh},
		{"middle of virgo", 165, false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := GandantaOf(tt.lon)
			assert.Equal(t, tt.inZone, ok)
			assert.Equal(t, tt.junction, g.Junction)
			assert.Equal(t, tt.intensity, g.Intensity)
		})
	}
}

func TestTithiOf(t *testing.T) {
	tithi := TithiOf(349.22, 188.43)
	assert.Equal(t, 17, tithi.Number)
	assert.Equal(t, Krishna, tithi.Paksha)
	assert.Equal(t, 2, tithi.PakshaTithi)
	assert.Equal(t, []domain.Sign{domain.Sagittarius, domain.Pisces}, tithi.ShunyaSigns)
	assert.Equal(t, []domain.Planet{domain.Jupiter}, tithi.ShunyaLords)

	first := TithiOf(100, 105)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, Shukla, first.Paksha)

	last := TithiOf(100, 99.9)
	assert.Equal(t, 30, last.Number)
	assert.Empty(t, last.ShunyaSigns)
}

func TestPushkaraOf(t *testing.T) {
	p := PushkaraOf(21)
	assert.True(t, p.Navamsa)
	assert.True(t, p.Bhaga)

	assert.Equal(t, Pushkara{}, PushkaraOf(5))
}

func TestBuild_ReferenceChart(t *testing.T) {
	c := testingpkg.NewChart(t, 119.88, nil)
	s, err := Build(c)
	require.NoError(t, err)

	assert.InDelta(t, 177.65, s.Yogi.Longitude, 1e-9)
	assert.Equal(t, domain.Virgo, s.Yogi.Sign)
	assert.Equal(t, domain.Mars, s.Yogi.NakshatraLord)
	assert.Equal(t, domain.Aries, s.Avayogi.Sign)
	assert.Equal(t, domain.Ketu, s.Avayogi.NakshatraLord)
	assert.InDelta(t, s.Avayogi.Longitude+12, s.Dagdha.Longitude, 1e-9)

	assert.Equal(t, 11, s.Badhaka.House)
	assert.Equal(t, domain.Taurus, s.Badhaka.Sign)
	assert.Equal(t, domain.Venus, s.Badhaka.Lord)
	assert.Equal(t, []domain.Planet{domain.Sun, domain.Saturn}, s.Maraka.Primary)
	assert.Equal(t, []domain.Planet{domain.Mercury}, s.Maraka.Secondary)

	venus := s.LordshipsOf(domain.Venus)
	assert.True(t, venus.BadhakaLord)
	assert.False(t, venus.YogiLord)
	assert.True(t, s.LordshipsOf(domain.Mars).YogiLord)
	assert.True(t, s.LordshipsOf(domain.Mars).DagdhaLord)
	assert.True(t, s.LordshipsOf(domain.Jupiter).TithiShunyaLord)
	assert.True(t, s.LordshipsOf(domain.Saturn).MarakaLord)
	assert.Equal(t, 3, s.YogiHouse(c))
}

func TestBuild_GandantaMoon(t *testing.T) {
	c := testingpkg.NewChart(t, 0, map[domain.Planet]float64{domain.Moon: 116 + 50.0/60})
	s, err := Build(c)
	require.NoError(t, err)

	g, ok := s.Gandanta[domain.Moon]
	require.True(t, ok)
	assert.Equal(t, "Cancer-Leo", g.Junction)
	assert.Contains(t, []Intensity{IntensityHigh, IntensityExtreme}, g.Intensity)
}
