// Package shadbala computes the six-fold planetary strength of the seven classical
// planets: positional, directional, temporal, motional, natural and aspectual.
package shadbala

import "github.com/aristath/jyotish/internal/domain"

// =============================================================================
// GRADES AND CONSTANTS
// =============================================================================

const (
	VirupasPerRupa = 60.0

	// Rupa thresholds for grades
	GradeExcellentRupas = 6.0
	GradeGoodRupas      = 5.0
	GradeAverageRupas   = 4.0

	// Sthana sub-components
	OjhaYugmaPoints = 15.0 // per chart (D1, D9) in the preferred parity
	DrekkanaPoints  = 15.0 // in the decanate of the planet's gender
	KendraPoints    = 60.0
	PanapharaPoints = 30.0
	ApoklimaPoints  = 15.0

	// Kala sub-components
	VarshaLordPoints = 15.0
	MaasaLordPoints  = 30.0
	DinaLordPoints   = 45.0
	HoraLordPoints   = 60.0
	TribhagaPoints   = 60.0

	// defaultComponent is used for every component of a default record
	defaultComponent = 40.0
)

// Grade is the qualitative band of a planet's total strength
type Grade string

const (
	Excellent Grade = "Excellent"
	Good      Grade = "Good"
	Average   Grade = "Average"
	Weak      Grade = "Weak"
)

// GradeOf maps rupas to a grade
func GradeOf(rupas float64) Grade {
	switch {
	case rupas >= GradeExcellentRupas:
		return Excellent
	case rupas >= GradeGoodRupas:
		return Good
	case rupas >= GradeAverageRupas:
		return Average
	default:
		return Weak
	}
}

// Sthana is the positional strength broken down
type Sthana struct {
	Uccha        float64 `json:"uccha"`
	Saptavargaja float64 `json:"saptavargaja"`
	OjhaYugma    float64 `json:"ojha_yugma"`
	Kendradi     float64 `json:"kendradi"`
	Drekkana     float64 `json:"drekkana"`
}

// Total sums the sub-components
func (s Sthana) Total() float64 {
	return s.Uccha + s.Saptavargaja + s.OjhaYugma + s.Kendradi + s.Drekkana
}

// Kala is the temporal strength broken down
type Kala struct {
	Nathonnata float64 `json:"nathonnata"`
	Paksha     float64 `json:"paksha"`
	Tribhaga   float64 `json:"tribhaga"`
	Varsha     float64 `json:"varsha"`
	Maasa      float64 `json:"maasa"`
	Dina       float64 `json:"dina"`
	Hora       float64 `json:"hora"`
	Ayana      float64 `json:"ayana"`
}

// Total sums the sub-components
func (k Kala) Total() float64 {
	return k.Nathonnata + k.Paksha + k.Tribhaga + k.Varsha + k.Maasa + k.Dina + k.Hora + k.Ayana
}

// Record is the Shadbala of one planet, in virupas unless noted
type Record struct {
	Planet        domain.Planet `json:"planet"`
	Sthana        float64       `json:"sthana_bala"`
	SthanaDetail  Sthana        `json:"sthana_detail"`
	Dig           float64       `json:"dig_bala"`
	Kala          float64       `json:"kala_bala"`
	KalaDetail    Kala          `json:"kala_detail"`
	Chesta        float64       `json:"chesta_bala"`
	Naisargika    float64       `json:"naisargika_bala"`
	Drik          float64       `json:"drik_bala"`
	TotalPoints   float64       `json:"total_points"`
	TotalRupas    float64       `json:"total_rupas"`
	RequiredRupas float64       `json:"required_rupas"`
	StrengthRatio float64       `json:"strength_ratio"`
	Grade         Grade         `json:"grade"`
	IshtaPhala    float64       `json:"ishta_phala"`
	KashtaPhala   float64       `json:"kashta_phala"`
	Default       bool          `json:"is_default,omitempty"`
}

// finalize fills the totals from the six components
func (r *Record) finalize() {
	r.TotalPoints = r.Sthana + r.Dig + r.Kala + r.Chesta + r.Naisargika + r.Drik
	r.TotalRupas = r.TotalPoints / VirupasPerRupa
	if r.RequiredRupas > 0 {
		r.StrengthRatio = r.TotalRupas / r.RequiredRupas
	}
	r.Grade = GradeOf(r.TotalRupas)
}

// Default returns the neutral record used when a planet cannot be evaluated
func Default(p domain.Planet) Record {
	r := Record{
		Planet:        p,
		Sthana:        defaultComponent,
		Dig:           defaultComponent,
		Kala:          defaultComponent,
		Chesta:        defaultComponent,
		Naisargika:    defaultComponent,
		Drik:          defaultComponent,
		RequiredRupas: 5,
		IshtaPhala:    30,
		KashtaPhala:   30,
		Default:       true,
	}
	r.finalize()
	return r
}

// Records maps each classical planet to its strength
type Records map[domain.Planet]Record

// Get returns the record of p, falling back to the default record
func (rs Records) Get(p domain.Planet) Record {
	if r, ok := rs[p]; ok {
		return r
	}
	return Default(p)
}

// Strongest returns the classical planet with the most rupas
func (rs Records) Strongest() domain.Planet {
	best, bestRupas := domain.Sun, -1.0
	for _, p := range domain.ClassicalPlanets {
		if r, ok := rs[p]; ok && r.TotalRupas > bestRupas {
			best, bestRupas = p, r.TotalRupas
		}
	}
	return best
}
