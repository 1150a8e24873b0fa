package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBasics(t *testing.T) {
	assert.Equal(t, Mars, Aries.Lord())
	assert.Equal(t, Jupiter, Pisces.Lord())
	assert.Equal(t, Movable, Cancer.Modality())
	assert.Equal(t, Fixed, Scorpio.Modality())
	assert.Equal(t, Dual, Pisces.Modality())
	assert.Equal(t, Water, Cancer.Element())
	assert.Equal(t, Fire, Sagittarius.Element())
	assert.True(t, Aries.IsOdd())
	assert.False(t, Taurus.IsOdd())
	assert.Equal(t, Aries, Pisces.Add(1))
	assert.Equal(t, Pisces, Aries.Add(-1))
	assert.Equal(t, Capricorn, Cancer.House(7))
}

func TestSignOfAndDistance(t *testing.T) {
	assert.Equal(t, Aries, SignOf(0))
	assert.Equal(t, Pisces, SignOf(359.999))
	assert.Equal(t, Aries, SignOf(360))
	assert.Equal(t, Pisces, SignOf(-1))
	assert.Equal(t, 1, HouseDistance(Leo, Leo))
	assert.Equal(t, 7, HouseDistance(Leo, Aquarius))
	assert.Equal(t, 12, HouseDistance(Aries, Pisces))
}

func TestNakshatraOf(t *testing.T) {
	tests := []struct {
		name     string
		lon      float64
		expected Nakshatra
		pada     int
		lord     Planet
	}{
		{"start of zodiac", 0, 0, 1, Ketu},
		{"swati pada 1", 188.43, 14, 1, Rahu},
		{"revati end", 359.99, 26, 4, Mercury},
		{"rohini", 45, 3, 2, Moon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, pada := NakshatraOf(tt.lon)
			assert.Equal(t, tt.expected, n)
			assert.Equal(t, tt.pada, pada)
			assert.Equal(t, tt.lord, n.Lord())
		})
	}
	assert.Equal(t, "Swati", Nakshatra(14).String())
}

func TestPlanetText(t *testing.T) {
	m := map[Planet]int{Sun: 1, Ketu: 9}
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Sun":1,"Ketu":9}`, string(out))

	var back map[Planet]int
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, m, back)

	p, err := ParsePlanet("saturn")
	require.NoError(t, err)
	assert.Equal(t, Saturn, p)
	_, err = ParsePlanet("Pluto")
	assert.Error(t, err)
	assert.True(t, Rahu.IsNode())
}
