package dasha

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
)

// Engine runs every registered dasha system
type Engine struct {
	systems []System
	log     zerolog.Logger
}

// NewEngine creates an engine with all supported systems
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		systems: []System{Vimshottari{}, Yogini{}, Chara{}, Kalachakra{}, Shoola{}, Sudarshana{}},
		log:     log.With().Str("engine", "dasha").Logger(),
	}
}

// Systems returns the registered systems in order
func (e *Engine) Systems() []System {
	return e.systems
}

// System looks a system up by name
func (e *Engine) System(name string) (System, bool) {
	for _, s := range e.systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Snapshot holds the active stack of each system
type Snapshot map[string]Stack

// Current returns the active stack of every system at instant at. A failing system
// is logged and reported but does not stop the others.
func (e *Engine) Current(c *chart.Chart, birth, at time.Time) (Snapshot, []error) {
	out := make(Snapshot, len(e.systems))
	var errs []error
	for _, sys := range e.systems {
		stack, err := Active(sys, c, birth, at, 0)
		if err != nil {
			e.log.Warn().Err(err).Str("system", sys.Name()).Msg("Failed to resolve active dasha")
			errs = append(errs, domain.Unavailable("dasha."+sys.Name(), err))
			continue
		}
		out[sys.Name()] = stack
	}
	return out, errs
}

// Vimshottari returns the five-level Vimshottari stack at instant at
func (e *Engine) Vimshottari(c *chart.Chart, birth, at time.Time) (Stack, error) {
	stack, err := Active(Vimshottari{}, c, birth, at, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vimshottari stack: %w", err)
	}
	return stack, nil
}

// Timelines returns each system's periods over [from, to), depth levels deep
func (e *Engine) Timelines(c *chart.Chart, birth, from, to time.Time, depth int) (map[string][]Period, []error) {
	out := make(map[string][]Period, len(e.systems))
	var errs []error
	for _, sys := range e.systems {
		periods, err := Timeline(sys, c, birth, from, to, depth)
		if err != nil {
			e.log.Warn().Err(err).Str("system", sys.Name()).Msg("Failed to build dasha timeline")
			errs = append(errs, domain.Unavailable("dasha."+sys.Name(), err))
			continue
		}
		out[sys.Name()] = periods
	}
	return out, errs
}
