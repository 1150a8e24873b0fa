// Package transit finds the intervals during which slow planets aspect natal planets,
// decorated with Ashtakavarga support and Vimshottari significance.
package transit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ashtakavarga"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/pkg/formulas"
)

// SlowPlanets are swept by default
var SlowPlanets = []domain.Planet{domain.Jupiter, domain.Saturn, domain.Rahu, domain.Ketu, domain.Mars}

// AspectSets are the sign aspects each transiting planet casts; 1 is the conjunction
var AspectSets = map[domain.Planet][]int{
	domain.Jupiter: {1, 5, 7, 9},
	domain.Saturn:  {1, 3, 7, 10},
	domain.Mars:    {1, 4, 7, 8},
	domain.Rahu:    {1, 3, 7, 11},
	domain.Ketu:    {1, 3, 7, 11},
}

// KarmicOrb is the arc within which a natal companion of the target joins the trigger
const KarmicOrb = 5.0

// DefaultStepDays is the coarse sampling interval
const DefaultStepDays = 5

// Significance classifies how strongly the running Vimshottari periods involve a transit
type Significance string

const (
	Maximum  Significance = "maximum"
	High     Significance = "high"
	Moderate Significance = "moderate"
)

// Support is the Ashtakavarga verdict for the transited sign
type Support string

const (
	SupportStrong  Support = "strong"
	SupportAverage Support = "average"
	SupportWeak    Support = "weak"
	SupportParadox Support = "paradox"
)

// weakSAV is the SAV below which a sign gives poor results
const weakSAV = 25

// Hit is one exact aspect inside an activation
type Hit struct {
	Date       time.Time `json:"date"`
	Longitude  float64   `json:"longitude"`
	Retrograde bool      `json:"retrograde"`
}

// Activation is an interval during which a transiting planet aspects a natal planet
type Activation struct {
	Planet           domain.Planet   `json:"planet"`
	Target           domain.Planet   `json:"target"`
	Aspect           int             `json:"aspect"`
	Start            time.Time       `json:"start"`
	Peak             time.Time       `json:"peak"`
	End              time.Time       `json:"end"`
	Exact            bool            `json:"exact"`
	Hits             []Hit           `json:"hits,omitempty"`
	R2Hit            bool            `json:"r2_hit"`
	TransitSign      domain.Sign     `json:"transit_sign"`
	TransitSignName  string          `json:"transit_sign_name"`
	TransitHouse     int             `json:"transit_house"`
	RetrogradeAtPeak bool            `json:"retrograde_at_peak"`
	TargetSign       domain.Sign     `json:"target_sign"`
	TargetSignName   string          `json:"target_sign_name"`
	TargetHouse      int             `json:"target_house"`
	KarmicTrigger    []domain.Planet `json:"karmic_trigger,omitempty"`
	SAV              int             `json:"sav"`
	BAV              int             `json:"bav"`
	HasBAV           bool            `json:"has_bav"`
	Paradox          bool            `json:"paradox"`
	Support          Support         `json:"support"`
	Significance     Significance    `json:"dasha_significance"`
}

// Engine sweeps transits against a natal chart
type Engine struct {
	eph  ephemeris.Ephemeris
	step float64
	log  zerolog.Logger
}

// NewEngine creates a transit engine sampling every stepDays days
func NewEngine(eph ephemeris.Ephemeris, stepDays int, log zerolog.Logger) *Engine {
	if stepDays <= 0 {
		stepDays = DefaultStepDays
	}
	return &Engine{
		eph:  eph,
		step: float64(stepDays),
		log:  log.With().Str("engine", "transit").Logger(),
	}
}

// Request names the natal context and window of a sweep
type Request struct {
	Natal   *derived.Set
	Birth   time.Time
	From    time.Time
	To      time.Time
	Planets []domain.Planet // defaults to SlowPlanets
}

// Sweep returns every activation in the window sorted by start. Cancellation is
// checked between planets and every few dozen samples; activations of the planets
// completed before cancellation are returned with the error.
func (e *Engine) Sweep(ctx context.Context, req Request) ([]Activation, error) {
	if req.Natal == nil || req.Natal.Chart == nil {
		return nil, domain.Invariant("transit.Sweep", "natal", "missing natal chart")
	}
	if !req.To.After(req.From) {
		return nil, domain.Malformed("transit.Sweep", "window", "end %s is not after start %s",
			req.To.Format("2006-01-02"), req.From.Format("2006-01-02"))
	}
	from, to := ephemeris.JulianDay(req.From), ephemeris.JulianDay(req.To)
	for _, jd := range []float64{from, to} {
		if err := ephemeris.CheckRange("transit.Sweep", jd, "window"); err != nil {
			return nil, err
		}
	}
	planets := req.Planets
	if len(planets) == 0 {
		planets = SlowPlanets
	}

	var out []Activation
	for _, p := range planets {
		if err := ctx.Err(); err != nil {
			sortActivations(out)
			return out, fmt.Errorf("transit sweep interrupted before %s: %w", p, err)
		}
		acts, err := e.planet(ctx, req, p, from, to)
		if err != nil {
			sortActivations(out)
			return out, fmt.Errorf("failed to sweep %s: %w", p, err)
		}
		out = append(out, acts...)
	}
	sortActivations(out)

	e.log.Debug().
		Int("activations", len(out)).
		Str("from", req.From.Format("2006-01-02")).
		Str("to", req.To.Format("2006-01-02")).
		Msg("Transit sweep complete")
	return out, nil
}

func sortActivations(acts []Activation) {
	sort.SliceStable(acts, func(i, j int) bool {
		a, b := acts[i], acts[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Planet != b.Planet {
			return a.Planet < b.Planet
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Aspect < b.Aspect
	})
}

type activationKey struct {
	target domain.Planet
	aspect int
}

func (e *Engine) planet(ctx context.Context, req Request, p domain.Planet, from, to float64) ([]Activation, error) {
	aspectSet, ok := AspectSets[p]
	if !ok {
		return nil, domain.Malformed("transit.Sweep", p.String(), "no transit aspects defined")
	}
	segs, err := segments(ctx, e.eph, p, from, to, e.step)
	if err != nil {
		return nil, err
	}

	natal := req.Natal.Chart
	seen := make(map[activationKey]bool)
	var out []Activation
	for _, seg := range segs {
		for _, target := range domain.AllPlanets {
			tp, ok := natal.Lookup(target)
			if !ok {
				continue
			}
			k := domain.HouseDistance(seg.sign, tp.Sign)
			if !containsInt(aspectSet, k) {
				continue
			}
			a, err := e.activation(req, p, target, k, seg)
			if err != nil {
				return nil, err
			}
			key := activationKey{target, k}
			a.R2Hit = seen[key] || len(a.Hits) > 1
			seen[key] = true
			out = append(out, a)
		}
	}
	return out, nil
}

func (e *Engine) activation(req Request, p, target domain.Planet, k int, seg segment) (Activation, error) {
	natal := req.Natal.Chart
	tp := natal.Planet(target)
	point := formulas.Norm360(tp.Longitude + float64(k-1)*30)

	found, err := hits(e.eph, p, seg, point)
	if err != nil {
		return Activation{}, err
	}
	var peak sample
	if len(found) > 0 {
		peak = found[0]
	} else if peak, err = closest(e.eph, p, seg, point); err != nil {
		return Activation{}, err
	}

	a := Activation{
		Planet:           p,
		Target:           target,
		Aspect:           k,
		Start:            ephemeris.TimeFromJulian(seg.start),
		Peak:             ephemeris.TimeFromJulian(peak.jd),
		End:              ephemeris.TimeFromJulian(seg.end),
		Exact:            len(found) > 0,
		TransitSign:      seg.sign,
		TransitSignName:  seg.sign.String(),
		TransitHouse:     natal.HouseOfSign(seg.sign),
		RetrogradeAtPeak: peak.speed < 0,
		TargetSign:       tp.Sign,
		TargetSignName:   tp.Sign.String(),
		TargetHouse:      tp.SignHouse,
		KarmicTrigger:    karmicTrigger(req.Natal, target),
	}
	for _, h := range found {
		a.Hits = append(a.Hits, Hit{
			Date:       ephemeris.TimeFromJulian(h.jd),
			Longitude:  formulas.Round2(h.lon),
			Retrograde: h.speed < 0,
		})
	}
	decorateAshtakavarga(&a, req.Natal.Ashtakavarga)
	a.Significance = e.significance(req, a)
	return a, nil
}

// karmicTrigger lists the natal companions of target within KarmicOrb
func karmicTrigger(s *derived.Set, target domain.Planet) []domain.Planet {
	tp := s.Chart.Planet(target)
	var out []domain.Planet
	for _, q := range domain.AllPlanets {
		if q == target {
			continue
		}
		qp, ok := s.Chart.Lookup(q)
		if ok && qp.Sign == tp.Sign && formulas.AngularDistance(qp.Longitude, tp.Longitude) <= KarmicOrb {
			out = append(out, q)
		}
	}
	return out
}

// decorateAshtakavarga applies the SAV/BAV filter: a weak BAV overrides a strong SAV
func decorateAshtakavarga(a *Activation, av *ashtakavarga.Result) {
	if av == nil {
		a.Support = SupportAverage
		return
	}
	a.SAV = av.SAVPoints(a.TransitSign)
	a.BAV, a.HasBAV = av.BAVPoints(a.Planet, a.TransitSign)
	a.Paradox = a.HasBAV && a.BAV < ashtakavarga.WeakBAV && a.SAV >= ashtakavarga.StrongSAV
	switch {
	case a.Paradox:
		a.Support = SupportParadox
	case a.SAV >= ashtakavarga.StrongSAV:
		a.Support = SupportStrong
	case a.SAV < weakSAV:
		a.Support = SupportWeak
	default:
		a.Support = SupportAverage
	}
}

// significanceDepth walks Vimshottari down to sookshma
const significanceDepth = 4

// significance checks every Vimshottari period running during the interval
func (e *Engine) significance(req Request, a Activation) Significance {
	periods, err := dasha.Timeline(dasha.Vimshottari{}, req.Natal.Chart, req.Birth, a.Start, a.End, significanceDepth)
	if err != nil {
		e.log.Debug().Err(err).Msg("No dasha timeline for transit significance")
		return Moderate
	}
	return significanceOf(periods, a.Planet, a.Target)
}

// significanceOf grades an interval by whether the transiting and natal planets rule
// any of its periods at any level
func significanceOf(periods []dasha.Period, transiting, natal domain.Planet) Significance {
	transitIn := rulesAny(periods, transiting)
	natalIn := rulesAny(periods, natal)
	switch {
	case transitIn && natalIn:
		return Maximum
	case transitIn || natalIn:
		return High
	default:
		return Moderate
	}
}

func rulesAny(periods []dasha.Period, p domain.Planet) bool {
	for _, period := range periods {
		if period.HasPlanet(p) || rulesAny(period.Sub, p) {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
