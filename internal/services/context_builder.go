package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/aristath/jyotish/internal/cache"
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/internal/modules/houses"
	"github.com/aristath/jyotish/internal/modules/kp"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/timing"
	"github.com/aristath/jyotish/internal/modules/transit"
	"github.com/aristath/jyotish/internal/modules/varshphal"
	"github.com/aristath/jyotish/internal/modules/yogas"
	"github.com/aristath/jyotish/internal/utils"
)

// BuilderConfig tunes the context builder
type BuilderConfig struct {
	StaticTTL     time.Duration // persistent tier expiry
	HorizonMonths int           // default transit window when the intent names none
	Timeout       time.Duration // bound on one dynamic build
}

// Engines groups the computation layers the builder integrates
type Engines struct {
	Ephemeris ephemeris.Ephemeris
	Charts    *chart.Calculator
	Derived   *derived.Builder
	Planets   *planets.Analyzer
	Houses    *houses.Analyzer
	Dashas    *dasha.Engine
	Transits  *transit.Engine
	Varshphal *varshphal.Engine
}

// ContextBuilder assembles the static and dynamic context of a birth.
// This is the single integration point of the engine.
type ContextBuilder struct {
	engines Engines
	static  *cache.Memory[*StaticEntry]
	dynamic *cache.Memory[*DynamicEntry]
	store   StaticStore // optional persistent static tier
	group   singleflight.Group
	cfg     BuilderConfig
	log     zerolog.Logger
}

// DefaultTimeout bounds a dynamic build when none is configured
const DefaultTimeout = 20 * time.Second

// NewContextBuilder creates a builder. store may be nil.
func NewContextBuilder(
	engines Engines,
	static *cache.Memory[*StaticEntry],
	dynamic *cache.Memory[*DynamicEntry],
	store StaticStore,
	cfg BuilderConfig,
	log zerolog.Logger,
) *ContextBuilder {
	if cfg.HorizonMonths <= 0 {
		cfg.HorizonMonths = 24
	}
	if cfg.StaticTTL <= 0 {
		cfg.StaticTTL = 720 * time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &ContextBuilder{
		engines: engines,
		static:  static,
		dynamic: dynamic,
		store:   store,
		cfg:     cfg,
		log:     log.With().Str("service", "context_builder").Logger(),
	}
}

// NewTiers creates the two in-memory tiers with the given capacities
func NewTiers(staticSize, dynamicSize int) (*cache.Memory[*StaticEntry], *cache.Memory[*DynamicEntry], error) {
	static, err := cache.NewMemory[*StaticEntry](staticSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create static tier: %w", err)
	}
	dynamic, err := cache.NewMemory[*DynamicEntry](dynamicSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dynamic tier: %w", err)
	}
	return static, dynamic, nil
}

// Stats reports both in-memory tiers
func (b *ContextBuilder) Stats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"static":  b.static.Stats(),
		"dynamic": b.dynamic.Stats(),
	}
}

// Build returns the full context. Static failures are returned; dynamic features that
// fail become empty and are listed in analysis_errors.
func (b *ContextBuilder) Build(ctx context.Context, req Request) (*Context, error) {
	buildID := uuid.New().String()
	log := b.log.With().Str("build_id", buildID).Str("birth", req.Birth.Hash()[:12]).Logger()
	defer utils.NewTimer("context_build", log).Stop()

	if req.Birth.IsZero() {
		return nil, domain.Malformed("ContextBuilder.Build", "birth", "missing birth input")
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	// Step 1: normalize the intent; bad fields are dropped
	intent := b.normalizeIntent(req.Intent, log)

	// Step 2: static tier
	entry, err := b.Static(ctx, req.Birth)
	if err != nil {
		return nil, err
	}

	// Step 3: dynamic tier
	dyn := b.dynamicFor(ctx, entry, req.Birth, intent, asOf, log)

	// Step 4: assemble
	errs := dyn.Errors
	if errs == nil {
		errs = []domain.AnalysisError{}
	}
	out := &Context{
		BuildID:        buildID,
		Birth:          req.Birth,
		AsOf:           asOf.Format(time.RFC3339),
		Intent:         intent,
		Static:         forIntent(entry.Fragment, intent),
		Dynamic:        dyn.Fragment,
		AnalysisErrors: errs,
	}

	log.Info().
		Int("analysis_errors", len(errs)).
		Int("divisional_charts", lenOf(out.Static["divisional_charts"])).
		Msg("Context built")

	return out, nil
}

func (b *ContextBuilder) normalizeIntent(in *domain.Intent, log zerolog.Logger) *domain.Intent {
	if in == nil {
		return nil
	}
	intent, warnings := in.Normalize()
	for _, w := range warnings {
		log.Info().Err(w).Msg("Ignoring part of the intent")
	}
	return &intent
}

// Static returns the cached static entry of a birth, building it at most once
// concurrently. Failures propagate: nothing dynamic can be built without it.
func (b *ContextBuilder) Static(ctx context.Context, birth domain.BirthInput) (*StaticEntry, error) {
	key := birth.Hash()
	if e, ok := b.static.Get(key); ok {
		b.log.Debug().Str("key", key[:12]).Msg("Static context cache hit")
		return e, nil
	}

	ch := b.group.DoChan("static:"+key, func() (interface{}, error) {
		return b.buildStatic(birth, key)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("static build interrupted: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		entry := res.Val.(*StaticEntry)
		b.static.Add(key, entry)
		return entry, nil
	}
}

func (b *ContextBuilder) buildStatic(birth domain.BirthInput, key string) (*StaticEntry, error) {
	timer := utils.NewTimer("static_build", b.log).WithThreshold(5 * time.Second)

	// Step 1: natal chart
	c, err := b.engines.Charts.Calculate(birth)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate natal chart: %w", err)
	}

	// Step 2: every L2 record
	natal, err := b.engines.Derived.Build(c)
	if err != nil {
		return nil, fmt.Errorf("failed to derive natal chart: %w", err)
	}

	// Step 3: serialized fragment, from the persistent tier when available
	if frag, ok := b.loadFragment(key); ok {
		timer.StopWithContext(map[string]interface{}{"source": "store"})
		return &StaticEntry{Key: key, Natal: natal, Fragment: frag}, nil
	}

	frag, err := b.synthesize(natal)
	if err != nil {
		return nil, err
	}
	b.saveFragment(key, frag)

	timer.StopWithContext(map[string]interface{}{"source": "computed"})
	return &StaticEntry{Key: key, Natal: natal, Fragment: frag}, nil
}

// synthesize runs the L3 analyzers and renders the static fragment
func (b *ContextBuilder) synthesize(natal *derived.Set) (Fragment, error) {
	pl := b.engines.Planets.AnalyzeAll(natal)
	bundle := yogas.Detect(natal)

	var doshas []string
	for _, y := range bundle.Doshas() {
		doshas = append(doshas, y.Name)
	}

	sc := StaticContext{
		Chart:            natal.Chart,
		DivisionalCharts: make(map[string]*chart.Chart, len(natal.Vargas)),
		Dignities:        make(map[string]map[domain.Planet]dignity.Record, len(natal.Dignities)),
		Friendship:       natal.Friendship,
		Aspects:          natal.Aspects,
		Shadbala:         natal.Shadbala,
		SpecialPoints:    natal.Points,
		Ashtakavarga:     natal.Ashtakavarga,
		Yogas:            bundle,
		ActiveDoshas:     doshas,
		KP:               kp.Analyze(natal.Chart),
		Planets:          pl,
		Houses:           b.engines.Houses.AnalyzeAll(natal, pl),
	}
	for _, n := range natal.Vargas.Divisions() {
		sc.DivisionalCharts[domain.DivisionCode(n)] = natal.Vargas.Get(n)
	}
	for n, records := range natal.Dignities {
		sc.Dignities[domain.DivisionCode(n)] = records
	}

	frag, err := normalize(sc)
	if err != nil {
		return nil, domain.Invariant("ContextBuilder.synthesize", "static", "%v", err)
	}
	pruneStatic(frag)
	return frag, nil
}

func (b *ContextBuilder) loadFragment(key string) (Fragment, bool) {
	if b.store == nil {
		return nil, false
	}
	var frag Fragment
	ok, err := b.store.GetIfFresh(key, &frag)
	if err != nil {
		b.log.Warn().Err(err).Msg("Failed to read persistent static tier, recomputing")
		return nil, false
	}
	return frag, ok
}

func (b *ContextBuilder) saveFragment(key string, frag Fragment) {
	if b.store == nil {
		return
	}
	if err := b.store.Put(key, frag, b.cfg.StaticTTL); err != nil {
		b.log.Warn().Err(err).Msg("Failed to persist static context")
	}
}

// dynamicFor returns the cached dynamic fragment or builds it. Entries that carry
// analysis errors are not cached so a transient failure is retried next time.
func (b *ContextBuilder) dynamicFor(ctx context.Context, entry *StaticEntry, birth domain.BirthInput, intent *domain.Intent, asOf time.Time, log zerolog.Logger) *DynamicEntry {
	key := dynamicKey(entry.Key, asOf, intent)
	if d, ok := b.dynamic.Get(key); ok {
		log.Debug().Msg("Dynamic context cache hit")
		return d
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	d := b.buildDynamic(ctx, entry.Natal, birth, intent, asOf, log)
	if len(d.Errors) == 0 {
		b.dynamic.Add(key, d)
	}
	return d
}

func dynamicKey(staticKey string, asOf time.Time, intent *domain.Intent) string {
	intentKey := "-"
	if intent != nil {
		intentKey = intent.Key()
	}
	return strings.Join([]string{staticKey, asOf.UTC().Format("2006-01-02"), intentKey}, "|")
}

func (b *ContextBuilder) buildDynamic(ctx context.Context, natal *derived.Set, birth domain.BirthInput, intent *domain.Intent, asOf time.Time, log zerolog.Logger) *DynamicEntry {
	defer utils.NewTimer("dynamic_build", log).Stop()

	var errs []domain.AnalysisError
	fail := func(feature string, err error) {
		log.Warn().Err(err).Str("feature", feature).Msg("Dynamic feature unavailable")
		errs = append(errs, domain.NewAnalysisError(feature, err))
	}

	c := natal.Chart
	born := birth.UTC()
	dc := DynamicContext{
		Transits:         []transit.Activation{},
		Navatara:         []timing.Tara{},
		NavataraWarnings: []timing.Tara{},
		Conflicts:        []timing.Conflict{},
		PredictionMatrix: []timing.MatrixEntry{},
		CriticalWindows:  []timing.MatrixEntry{},
	}

	// Step 1: running periods of every system
	snapshot, dashaErrs := b.engines.Dashas.Current(c, born, asOf)
	for _, err := range dashaErrs {
		fail("dasha", err)
	}
	dc.Dashas = snapshot

	// Step 2: sequences over the requested window
	window, sweep := transitWindow(asOf, intent, b.cfg.HorizonMonths)
	dc.Timelines = b.timelines(c, born, window, intent, fail)

	// Step 3: transit activations
	if sweep {
		dc.TransitWindow = &window
		acts, err := b.engines.Transits.Sweep(ctx, transit.Request{
			Natal: natal,
			Birth: born,
			From:  window.From,
			To:    window.To,
		})
		if err != nil {
			fail("transits", domain.Unavailable("transits", err))
		} else {
			dc.Transits = filterMonths(acts, intent)
		}
	}

	// Step 4: annual chart when a year is in focus
	if intent != nil {
		if year, ok := intent.FocusYear(); ok {
			vp, err := b.engines.Varshphal.Calculate(c, birth, year)
			if err != nil {
				fail("varshphal", domain.Unavailable("varshphal", err))
			} else {
				dc.Varshphal = vp
			}
		}
	}

	// Step 5: navatara of the current sky
	if taras, err := b.navatara(c, asOf); err != nil {
		fail("navatara", domain.Unavailable("navatara", err))
	} else {
		dc.Navatara = taras
		if w := timing.NavataraWarnings(taras); w != nil {
			dc.NavataraWarnings = w
		}
	}

	// Step 6: maturity ages and period conflicts
	dc.Nadi = timing.Nadi(timing.AgeAt(born, asOf))
	if vim, ok := snapshot["vimshottari"]; ok {
		if yog, ok := snapshot["yogini"]; ok {
			if cs := timing.Conflicts(vim, yog); cs != nil {
				dc.Conflicts = cs
			}
		}
	}

	// Step 7: prediction matrix over the activations
	dc.PredictionMatrix = timing.PredictionMatrix(dc.Transits)
	if crit := timing.Critical(dc.PredictionMatrix); crit != nil {
		dc.CriticalWindows = crit
	}

	frag, err := normalize(dc)
	if err != nil {
		fail("dynamic", domain.Invariant("ContextBuilder.buildDynamic", "dynamic", "%v", err))
		frag = Fragment{}
	}
	collapseSections(frag)

	return &DynamicEntry{Fragment: frag, Errors: errs}
}

// timelines keeps Chara and Yogini, plus every other system when detailed dashas are
// requested. Detailed requests also expand one level further.
func (b *ContextBuilder) timelines(c *chart.Chart, born time.Time, w TransitWindow, intent *domain.Intent, fail func(string, error)) map[string][]dasha.Period {
	detailed := intent != nil && intent.DetailedDashas
	depth := 1
	if detailed {
		depth = 2
	}

	all, errs := b.engines.Dashas.Timelines(c, born, w.From, w.To, depth)
	for _, err := range errs {
		fail("dasha_timelines", err)
	}
	if detailed {
		return all
	}

	out := make(map[string][]dasha.Period, 2)
	for _, name := range []string{"chara", "yogini"} {
		if ps, ok := all[name]; ok {
			out[name] = ps
		}
	}
	return out
}

func (b *ContextBuilder) navatara(c *chart.Chart, at time.Time) ([]timing.Tara, error) {
	jd := ephemeris.JulianDay(at)
	lons := make(map[domain.Planet]float64, len(domain.AllPlanets))
	for _, p := range domain.AllPlanets {
		pos, err := b.engines.Ephemeris.Position(jd, p, ephemeris.FlagSidereal)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s position: %w", p, err)
		}
		lons[p] = pos.Longitude
	}
	return timing.Navatara(c.Planet(domain.Moon).Longitude, lons), nil
}

// transitWindow resolves the sweep window. An intent that neither needs transits nor
// names a transit request disables the sweep; no intent sweeps the default horizon.
func transitWindow(asOf time.Time, intent *domain.Intent, horizonMonths int) (TransitWindow, bool) {
	if intent != nil && intent.TransitRequest != nil {
		tr := intent.TransitRequest
		return TransitWindow{
			From: time.Date(tr.StartYear, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(tr.EndYear+1, 1, 1, 0, 0, 0, 0, time.UTC),
		}, true
	}

	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	w := TransitWindow{From: day, To: day.AddDate(0, horizonMonths, 0)}
	if intent != nil && !intent.NeedsTransits {
		return w, false
	}
	return w, true
}

// filterMonths keeps activations that overlap a requested month. Years absent from
// the month map keep all twelve months.
func filterMonths(acts []transit.Activation, intent *domain.Intent) []transit.Activation {
	if intent == nil || intent.TransitRequest == nil || intent.TransitRequest.YearMonthMap == nil {
		return acts
	}
	tr := intent.TransitRequest

	out := make([]transit.Activation, 0, len(acts))
	for _, a := range acts {
		if overlapsRequestedMonth(a.Start, a.End, *tr) {
			out = append(out, a)
		}
	}
	return out
}

func overlapsRequestedMonth(start, end time.Time, tr domain.TransitRequest) bool {
	for y := start.Year(); y <= end.Year(); y++ {
		if y < tr.StartYear || y > tr.EndYear {
			continue
		}
		months := tr.Months(y)
		if months == nil {
			return true
		}
		for _, m := range months {
			from := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
			to := from.AddDate(0, 1, 0)
			if start.Before(to) && end.After(from) {
				return true
			}
		}
	}
	return false
}

func lenOf(v interface{}) int {
	if m, ok := v.(map[string]interface{}); ok {
		return len(m)
	}
	return 0
}
