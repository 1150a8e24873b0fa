package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/jyotish/internal/cache"
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/internal/modules/houses"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	"github.com/aristath/jyotish/internal/modules/transit"
	"github.com/aristath/jyotish/internal/modules/varshphal"
	testingpkg "github.com/aristath/jyotish/internal/testing"
)

var asOf = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newBuilder(t *testing.T, eph ephemeris.Ephemeris, store StaticStore) *ContextBuilder {
	t.Helper()
	log := testingpkg.SilentLogger()
	charts := chart.NewCalculator(eph, log)
	builder := derived.NewBuilder(shadbala.NewEngine(eph, log), log)

	static, dynamic, err := NewTiers(16, 16)
	require.NoError(t, err)

	return NewContextBuilder(Engines{
		Ephemeris: eph,
		Charts:    charts,
		Derived:   builder,
		Planets:   planets.NewAnalyzer(log),
		Houses:    houses.NewAnalyzer(log),
		Dashas:    dasha.NewEngine(log),
		Transits:  transit.NewEngine(eph, transit.DefaultStepDays, log),
		Varshphal: varshphal.NewEngine(eph, charts, builder, log),
	}, static, dynamic, store, BuilderConfig{Timeout: 30 * time.Second}, log)
}

func section(t *testing.T, f Fragment, name string) map[string]interface{} {
	t.Helper()
	m, ok := f[name].(map[string]interface{})
	require.True(t, ok, "section %s", name)
	return m
}

func TestBuild_ReferenceChart(t *testing.T) {
	b := newBuilder(t, testingpkg.NewEphemeris(), nil)

	intent := &domain.Intent{DivisionalCharts: []string{"d10", "D99"}}
	got, err := b.Build(context.Background(), Request{Birth: testingpkg.S1Birth(t), Intent: intent, AsOf: asOf})
	require.NoError(t, err)

	assert.NotEmpty(t, got.BuildID)
	assert.Equal(t, "2025-06-15T12:00:00Z", got.AsOf)
	assert.Empty(t, got.AnalysisErrors)
	assert.Equal(t, []string{"D10"}, got.Intent.DivisionalCharts, "unsupported codes are dropped")

	// Rule 4: only the requested division plus D1 and D9
	vargas := section(t, got.Static, "divisional_charts")
	assert.ElementsMatch(t, []string{"D1", "D9", "D10"}, keys(vargas))
	assert.ElementsMatch(t, []string{"D1", "D9", "D10"}, keys(section(t, got.Static, "dignities")))

	// Rule 1: SAV kept, per-planet BAV dropped
	av := section(t, got.Static, "ashtakavarga")
	assert.Contains(t, av, "sav")
	assert.NotContains(t, av, "bav")

	// Rule 2: methodology narration dropped
	sun := section(t, section(t, got.Static, "planets"), "Sun")
	assert.NotContains(t, sun, "methodology")

	// Rule 5: two decimals
	asc, ok := section(t, got.Static, "chart")["ascendant"].(float64)
	require.True(t, ok)
	assert.InDelta(t, math.Round(asc*100), asc*100, 1e-6)
	assert.Equal(t, "Cancer", section(t, got.Static, "chart")["ascendant_sign_name"])

	// Dynamic tier: an intent without transits skips the sweep but keeps the list
	assert.Equal(t, []interface{}{}, got.Dynamic["transits"])
	assert.NotContains(t, got.Dynamic, "transit_window")
	vim := section(t, got.Dynamic, "current_dashas")["vimshottari"].([]interface{})
	require.Len(t, vim, 5)
	assert.Equal(t, "Saturn", vim[0].(map[string]interface{})["lord"])
	assert.ElementsMatch(t, []string{"chara", "yogini"}, keys(section(t, got.Dynamic, "dasha_timelines")))
	assert.EqualValues(t, 45, section(t, got.Dynamic, "nadi")["age"])
	assert.Len(t, got.Dynamic["navatara"], 9)

	doshas, ok := got.Static["active_doshas"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, doshas, "Kemadruma Yoga")
}

func TestBuild_CachesBothTiers(t *testing.T) {
	b := newBuilder(t, testingpkg.NewEphemeris(), nil)
	req := Request{Birth: testingpkg.S1Birth(t), Intent: &domain.Intent{}, AsOf: asOf}

	first, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.BuildID, second.BuildID)
	assert.Equal(t, first.Static, second.Static)
	assert.Equal(t, first.Dynamic, second.Dynamic)

	stats := b.Stats()
	assert.EqualValues(t, 1, stats["static"].Hits)
	assert.EqualValues(t, 1, stats["dynamic"].Hits)
	assert.Equal(t, 1, stats["static"].Size)

	// Another day is a new dynamic entry over the same static one
	req.AsOf = asOf.AddDate(0, 0, 1)
	_, err = b.Build(context.Background(), req)
	require.NoError(t, err)
	stats = b.Stats()
	assert.Equal(t, 1, stats["static"].Size)
	assert.Equal(t, 2, stats["dynamic"].Size)
}

func TestBuild_DynamicFailureDegrades(t *testing.T) {
	eph := testingpkg.NewMockEphemeris()
	eph.FailFrom(ephemeris.JulianDay(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), errors.New("ephemeris offline"))
	b := newBuilder(t, eph, nil)

	intent := &domain.Intent{TransitRequest: &domain.TransitRequest{StartYear: 2025, EndYear: 2025}}
	got, err := b.Build(context.Background(), Request{Birth: testingpkg.S1Birth(t), Intent: intent, AsOf: asOf})
	require.NoError(t, err, "dynamic failures never abort the context")

	features := make(map[string]domain.ErrorKind)
	for _, e := range got.AnalysisErrors {
		features[e.Feature] = e.Kind
	}
	assert.Equal(t, domain.KindFeatureUnavailable, features["transits"])
	assert.Contains(t, features, "varshphal")
	assert.Contains(t, features, "navatara")

	assert.Equal(t, []interface{}{}, got.Dynamic["transits"])
	assert.NotContains(t, got.Dynamic, "varshphal")
	assert.Contains(t, got.Dynamic, "current_dashas", "dashas need no ephemeris")
	assert.Equal(t, 0, b.Stats()["dynamic"].Size, "degraded builds are not cached")
}

func TestBuild_StaticFailurePropagates(t *testing.T) {
	eph := testingpkg.NewMockEphemeris()
	eph.SetError(domain.OutOfRange("Position", "Sun", "no data"))
	b := newBuilder(t, eph, nil)

	_, err := b.Build(context.Background(), Request{Birth: testingpkg.S1Birth(t), AsOf: asOf})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEphemerisRange)

	_, err = b.Build(context.Background(), Request{AsOf: asOf})
	assert.ErrorIs(t, err, domain.ErrInputMalformed)
}

func TestBuild_PersistentTier(t *testing.T) {
	db := testingpkg.NewTestDB(t, "cache")
	store := cache.NewStore(db.Conn(), testingpkg.SilentLogger())

	first := newBuilder(t, testingpkg.NewEphemeris(), store)
	a, err := first.Static(context.Background(), testingpkg.S1Birth(t))
	require.NoError(t, err)

	n, err := store.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// A fresh process reads the fragment back from sqlite
	second := newBuilder(t, testingpkg.NewEphemeris(), store)
	b2, err := second.Static(context.Background(), testingpkg.S1Birth(t))
	require.NoError(t, err)

	assert.Equal(t, a.Key, b2.Key)
	assert.Equal(t, section(t, a.Fragment, "chart")["ascendant"], section(t, b2.Fragment, "chart")["ascendant"])
	assert.Equal(t, section(t, a.Fragment, "chart")["ascendant_sign_name"], section(t, b2.Fragment, "chart")["ascendant_sign_name"])
	assert.NotNil(t, b2.Natal)
}

func TestBuild_TransitWindowAndVarshphal(t *testing.T) {
	if testing.Short() {
		t.Skip("sweeps a full year")
	}
	b := newBuilder(t, testingpkg.NewEphemeris(), nil)

	intent := &domain.Intent{TransitRequest: &domain.TransitRequest{
		StartYear:    2025,
		EndYear:      2025,
		YearMonthMap: map[string][]int{"2025": {6, 7}},
	}}
	got, err := b.Build(context.Background(), Request{Birth: testingpkg.S1Birth(t), Intent: intent, AsOf: asOf})
	require.NoError(t, err)
	require.Empty(t, got.AnalysisErrors)

	w := section(t, got.Dynamic, "transit_window")
	assert.Equal(t, "2025-01-01T00:00:00Z", w["from"])
	assert.Equal(t, "2026-01-01T00:00:00Z", w["to"])

	vp := section(t, got.Dynamic, "varshphal")
	assert.EqualValues(t, 2025, vp["year"])

	acts := got.Dynamic["transits"].([]interface{})
	for _, a := range acts {
		act := a.(map[string]interface{})
		start, err := time.Parse(time.RFC3339, act["start"].(string))
		require.NoError(t, err)
		end, err := time.Parse(time.RFC3339, act["end"].(string))
		require.NoError(t, err)
		assert.True(t, start.Before(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)), "starts before August")
		assert.True(t, end.After(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), "ends after June began")
	}
	assert.Len(t, got.Dynamic["prediction_matrix"], len(acts))
}

func TestTransitWindow(t *testing.T) {
	w, sweep := transitWindow(asOf, nil, 24)
	assert.True(t, sweep)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC), w.To)

	_, sweep = transitWindow(asOf, &domain.Intent{}, 24)
	assert.False(t, sweep)

	_, sweep = transitWindow(asOf, &domain.Intent{NeedsTransits: true}, 24)
	assert.True(t, sweep)

	w, sweep = transitWindow(asOf, &domain.Intent{TransitRequest: &domain.TransitRequest{StartYear: 2026, EndYear: 2027}}, 24)
	assert.True(t, sweep)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestOverlapsRequestedMonth(t *testing.T) {
	tr := domain.TransitRequest{StartYear: 2025, EndYear: 2026, YearMonthMap: map[string][]int{"2025": {3}}}
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside march", d(2025, 3, 5), d(2025, 3, 20), true},
		{"spans into march", d(2025, 2, 10), d(2025, 3, 2), true},
		{"february only", d(2025, 2, 1), d(2025, 2, 28), false},
		{"year without months keeps all", d(2026, 9, 1), d(2026, 9, 10), true},
		{"outside the request", d(2027, 3, 1), d(2027, 3, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlapsRequestedMonth(tt.start, tt.end, tr))
		})
	}
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestNewContextBuilder_Defaults(t *testing.T) {
	static, dynamic, err := NewTiers(4, 4)
	require.NoError(t, err)

	b := NewContextBuilder(Engines{}, static, dynamic, nil, BuilderConfig{}, testingpkg.SilentLogger())
	assert.Equal(t, DefaultTimeout, b.cfg.Timeout)
	assert.Equal(t, 24, b.cfg.HorizonMonths)
	assert.Equal(t, 720*time.Hour, b.cfg.StaticTTL)

	b = NewContextBuilder(Engines{}, static, dynamic, nil, BuilderConfig{Timeout: time.Second}, testingpkg.SilentLogger())
	assert.Equal(t, time.Second, b.cfg.Timeout)
}
