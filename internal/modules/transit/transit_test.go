package transit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ashtakavarga"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

func natal(t *testing.T) *derived.Set {
	t.Helper()
	log := testingpkg.SilentLogger()
	s, err := derived.NewBuilder(shadbala.NewEngine(testingpkg.NewEphemeris(), log), log).Build(testingpkg.S1Chart(t))
	require.NoError(t, err)
	return s
}

func jupiterRequest(t *testing.T) Request {
	return Request{
		Natal:   natal(t),
		Birth:   testingpkg.S1Birth(t).UTC(),
		From:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2028, 12, 31, 0, 0, 0, 0, time.UTC),
		Planets: []domain.Planet{domain.Jupiter},
	}
}

func TestSweep_JupiterWindow(t *testing.T) {
	e := NewEngine(testingpkg.NewEphemeris(), DefaultStepDays, testingpkg.SilentLogger())
	req := jupiterRequest(t)

	acts, err := e.Sweep(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, acts)

	last := map[activationKey]time.Time{}
	for i, a := range acts {
		assert.Equal(t, domain.Jupiter, a.Planet)
		assert.Contains(t, []int{1, 5, 7, 9}, a.Aspect)
		assert.False(t, a.Peak.Before(a.Start), "peak before start")
		assert.False(t, a.Peak.After(a.End), "peak after end")
		assert.Equal(t, a.Aspect, domain.HouseDistance(a.TransitSign, a.TargetSign))
		assert.Equal(t, a.TransitSign.String(), a.TransitSignName)
		assert.NotEmpty(t, a.Significance)
		assert.NotEmpty(t, a.Support)
		if i > 0 {
			assert.False(t, a.Start.Before(acts[i-1].Start), "activations out of order")
		}

		key := activationKey{a.Target, a.Aspect}
		if prev, ok := last[key]; ok {
			assert.False(t, a.Start.Before(prev), "overlapping activations for %s", a.Target)
		}
		last[key] = a.End
	}

	// Jupiter passes through Gemini, aspecting the natal Moon in Libra by its 5th
	var moon bool
	for _, a := range acts {
		if a.Target == domain.Moon && a.Aspect == 5 {
			moon = true
			assert.Equal(t, domain.Gemini, a.TransitSign)
			assert.Equal(t, 12, a.TransitHouse)
		}
	}
	assert.True(t, moon)
}

func TestSweep_Errors(t *testing.T) {
	req := jupiterRequest(t)

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewEngine(testingpkg.NewEphemeris(), DefaultStepDays, testingpkg.SilentLogger())
		acts, err := e.Sweep(ctx, req)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, acts)
	})

	t.Run("ephemeris failure", func(t *testing.T) {
		eph := testingpkg.NewMockEphemeris()
		eph.SetError(domain.OutOfRange("test", "Jupiter", "boom"))
		_, err := NewEngine(eph, DefaultStepDays, testingpkg.SilentLogger()).Sweep(context.Background(), req)
		assert.True(t, errors.Is(err, domain.ErrEphemerisRange))
	})

	t.Run("empty window", func(t *testing.T) {
		bad := req
		bad.To = bad.From
		_, err := NewEngine(testingpkg.NewEphemeris(), 0, testingpkg.SilentLogger()).Sweep(context.Background(), bad)
		assert.True(t, errors.Is(err, domain.ErrInputMalformed))
	})

	t.Run("missing natal", func(t *testing.T) {
		bad := req
		bad.Natal = nil
		_, err := NewEngine(testingpkg.NewEphemeris(), 0, testingpkg.SilentLogger()).Sweep(context.Background(), bad)
		assert.True(t, errors.Is(err, domain.ErrComputationInvariant))
	})
}

func TestDecorateAshtakavarga(t *testing.T) {
	var sav ashtakavarga.Signs
	sav[domain.Aries] = 30
	sav[domain.Taurus] = 26
	sav[domain.Gemini] = 20
	var bav ashtakavarga.Signs
	bav[domain.Aries] = 2
	bav[domain.Taurus] = 5
	av := &ashtakavarga.Result{BAV: map[domain.Planet]ashtakavarga.Signs{domain.Saturn: bav}, SAV: sav}

	tests := []struct {
		name    string
		planet  domain.Planet
		sign    domain.Sign
		want    Support
		paradox bool
	}{
		{"weak bav overrides strong sav", domain.Saturn, domain.Aries, SupportParadox, true},
		{"node has no bav", domain.Rahu, domain.Aries, SupportStrong, false},
		{"average", domain.Saturn, domain.Taurus, SupportAverage, false},
		{"weak", domain.Saturn, domain.Gemini, SupportWeak, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Activation{Planet: tt.planet, TransitSign: tt.sign}
			decorateAshtakavarga(&a, av)
			assert.Equal(t, tt.want, a.Support)
			assert.Equal(t, tt.paradox, a.Paradox)
		})
	}
}

func TestKarmicTrigger(t *testing.T) {
	s := natal(t)
	// Mars 122.39 and Rahu 123.42 sit together in Leo; Jupiter at 127.55 is within 5 degrees of both
	got := karmicTrigger(s, domain.Mars)
	assert.Contains(t, got, domain.Rahu)
	assert.NotContains(t, got, domain.Saturn)
}

func TestSignificanceOf_NestedPeriod(t *testing.T) {
	day := func(m, d int) time.Time { return time.Date(2026, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
	// Venus antardasha runs only mid-interval inside a Saturn mahadasha
	periods := []dasha.Period{{
		Level:   1,
		Planets: []domain.Planet{domain.Saturn},
		Start:   day(1, 1),
		End:     day(12, 31),
		Sub: []dasha.Period{
			{Level: 2, Planets: []domain.Planet{domain.Mercury}, Start: day(1, 1), End: day(4, 1)},
			{Level: 2, Planets: []domain.Planet{domain.Venus}, Start: day(4, 1), End: day(8, 1)},
			{Level: 2, Planets: []domain.Planet{domain.Sun}, Start: day(8, 1), End: day(12, 31)},
		},
	}}

	tests := []struct {
		name       string
		transiting domain.Planet
		natal      domain.Planet
		want       Significance
	}{
		{"both in nested levels", domain.Saturn, domain.Venus, Maximum},
		{"natal antardasha only", domain.Jupiter, domain.Venus, High},
		{"transiting mahadasha only", domain.Saturn, domain.Moon, High},
		{"neither", domain.Jupiter, domain.Moon, Moderate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, significanceOf(periods, tt.transiting, tt.natal))
		})
	}
}
