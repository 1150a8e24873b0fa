package services

import (
	"time"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/ashtakavarga"
	"github.com/aristath/jyotish/internal/modules/aspects"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/dasha"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/houses"
	"github.com/aristath/jyotish/internal/modules/kp"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	"github.com/aristath/jyotish/internal/modules/specialpoints"
	"github.com/aristath/jyotish/internal/modules/timing"
	"github.com/aristath/jyotish/internal/modules/transit"
	"github.com/aristath/jyotish/internal/modules/varshphal"
	"github.com/aristath/jyotish/internal/modules/yogas"
)

// Request asks for the context of one birth as of a moment
type Request struct {
	Birth  domain.BirthInput
	Intent *domain.Intent
	AsOf   time.Time // zero means now
}

// Fragment is a rounded, pruned, JSON-shaped section of the context
type Fragment = map[string]interface{}

// Context is what callers receive
type Context struct {
	BuildID        string                 `json:"build_id"`
	Birth          domain.BirthInput      `json:"birth"`
	AsOf           string                 `json:"as_of"`
	Intent         *domain.Intent         `json:"intent,omitempty"`
	Static         Fragment               `json:"static"`
	Dynamic        Fragment               `json:"dynamic"`
	AnalysisErrors []domain.AnalysisError `json:"analysis_errors"`
}

// StaticContext is everything derived from the birth alone
type StaticContext struct {
	Chart            *chart.Chart                                `json:"chart"`
	DivisionalCharts map[string]*chart.Chart                     `json:"divisional_charts"`
	Dignities        map[string]map[domain.Planet]dignity.Record `json:"dignities"`
	Friendship       dignity.Matrix                              `json:"friendship"`
	Aspects          aspects.Table                               `json:"aspects"`
	Shadbala         *shadbala.Result                            `json:"shadbala"`
	SpecialPoints    specialpoints.Set                           `json:"special_points"`
	Ashtakavarga     *ashtakavarga.Result                        `json:"ashtakavarga"`
	Yogas            yogas.Bundle                                `json:"yogas"`
	ActiveDoshas     []string                                    `json:"active_doshas"`
	KP               kp.Analysis                                 `json:"kp"`
	Planets          map[domain.Planet]planets.Analysis          `json:"planets"`
	Houses           []houses.Analysis                           `json:"houses"`
}

// TransitWindow is the inclusive-exclusive span swept for activations
type TransitWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DynamicContext is everything that depends on the current date or the intent
type DynamicContext struct {
	Dashas           dasha.Snapshot            `json:"current_dashas"`
	Timelines        map[string][]dasha.Period `json:"dasha_timelines"`
	TransitWindow    *TransitWindow            `json:"transit_window,omitempty"`
	Transits         []transit.Activation      `json:"transits"`
	Varshphal        *varshphal.Result         `json:"varshphal,omitempty"`
	Navatara         []timing.Tara             `json:"navatara"`
	NavataraWarnings []timing.Tara             `json:"navatara_warnings"`
	Nadi             timing.NadiActivation     `json:"nadi"`
	Conflicts        []timing.Conflict         `json:"dasha_conflicts"`
	PredictionMatrix []timing.MatrixEntry      `json:"prediction_matrix"`
	CriticalWindows  []timing.MatrixEntry      `json:"critical_windows"`
}

// StaticEntry is one cached static build. Natal is kept for the dynamic tier and
// is never serialized.
type StaticEntry struct {
	Key      string
	Natal    *derived.Set
	Fragment Fragment
}

// DynamicEntry is one cached dynamic build
type DynamicEntry struct {
	Fragment Fragment
	Errors   []domain.AnalysisError
}
