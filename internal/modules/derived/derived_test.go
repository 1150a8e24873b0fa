package derived

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func TestBuild(t *testing.T) {
	log := testingpkg.SilentLogger()
	b := NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log)

	s, err := b.Build(testingpkg.S1Chart(t))
	require.NoError(t, err)

	assert.Len(t, s.Vargas, len(domain.SupportedDivisions))
	assert.Len(t, s.Shadbala.Records, 7)
	assert.Equal(t, 337, s.Ashtakavarga.SAV.Total())
	assert.Equal(t, domain.Venus, s.Points.Badhaka.Lord)
	assert.Equal(t, 1, s.Dignity(domain.Sun).Division)
	assert.True(t, s.Strength(domain.Ketu).Default)
	assert.True(t, s.Connected(domain.Mars, domain.Jupiter))
	assert.True(t, s.IsBenefic(domain.Jupiter))
	assert.False(t, s.IsBenefic(domain.Saturn))
	// waning Moon
	assert.False(t, s.IsBenefic(domain.Moon))
}

func TestBuild_NilChart(t *testing.T) {
	log := testingpkg.SilentLogger()
	_, err := NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log).Build(nil)
	assert.ErrorIs(t, err, domain.ErrComputationInvariant)
}
