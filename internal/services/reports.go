package services

import (
	"context"
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/transit"
)

// ChartReport returns the static fragment narrowed to the intent
func (b *ContextBuilder) ChartReport(ctx context.Context, birth domain.BirthInput, intent *domain.Intent) (Fragment, error) {
	entry, err := b.Static(ctx, birth)
	if err != nil {
		return nil, err
	}
	return forIntent(entry.Fragment, b.normalizeIntent(intent, b.log)), nil
}

// DashaReport returns the active stacks at asOf and the sequences over [from, to)
type DashaReport struct {
	AsOf      time.Time                 `json:"as_of"`
	Current   dasha.Snapshot            `json:"current"`
	Timelines map[string][]dasha.Period `json:"timelines"`
}

// Dashas resolves every dasha system for a birth. Systems that fail are omitted and
// reported as analysis errors.
func (b *ContextBuilder) Dashas(ctx context.Context, birth domain.BirthInput, asOf, from, to time.Time, depth int) (Fragment, []domain.AnalysisError, error) {
	entry, err := b.Static(ctx, birth)
	if err != nil {
		return nil, nil, err
	}
	c := entry.Natal.Chart

	var errs []domain.AnalysisError
	current, cerrs := b.engines.Dashas.Current(c, birth.UTC(), asOf)
	timelines, terrs := b.engines.Dashas.Timelines(c, birth.UTC(), from, to, depth)
	for _, err := range append(cerrs, terrs...) {
		errs = append(errs, domain.NewAnalysisError("dasha", err))
	}

	frag, err := normalize(DashaReport{AsOf: asOf, Current: current, Timelines: timelines})
	if err != nil {
		return nil, nil, err
	}
	return frag, errs, nil
}

// TransitReport wraps a sweep with its window
type TransitReport struct {
	Window      TransitWindow        `json:"window"`
	Activations []transit.Activation `json:"activations"`
}

// Transits sweeps the slow planets over [from, to) against the natal chart.
// Unlike the context, a failed sweep is an error here.
func (b *ContextBuilder) Transits(ctx context.Context, birth domain.BirthInput, from, to time.Time) (Fragment, error) {
	entry, err := b.Static(ctx, birth)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	acts, err := b.engines.Transits.Sweep(ctx, transit.Request{
		Natal: entry.Natal,
		Birth: birth.UTC(),
		From:  from,
		To:    to,
	})
	if err != nil {
		return nil, err
	}
	if acts == nil {
		acts = []transit.Activation{}
	}
	return normalize(TransitReport{Window: TransitWindow{From: from, To: to}, Activations: acts})
}
