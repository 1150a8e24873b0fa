// Package planets synthesizes the per-planet assessment from the chart-derived cache.
package planets

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/shadbala"
	"github.com/aristath/jyotish/internal/modules/specialpoints"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Basic is the placement summary
type Basic struct {
	Longitude     float64          `json:"longitude"`
	Sign          domain.Sign      `json:"sign"`
	SignName      string           `json:"sign_name"`
	Degree        float64          `json:"degree"`
	Nakshatra     domain.Nakshatra `json:"nakshatra"`
	NakshatraName string           `json:"nakshatra_name"`
	NakshatraLord domain.Planet    `json:"nakshatra_lord"`
	Pada          int              `json:"pada"`
	House         int              `json:"house"`
	SignHouse     int              `json:"sign_house"`
	Avastha       Avastha          `json:"baladi_avastha"`
}

// DignityAnalysis summarizes sign dignity
type DignityAnalysis struct {
	Dignity      dignity.Dignity `json:"dignity"`
	SignLord     domain.Planet   `json:"sign_lord"`
	Relation     tables.Relation `json:"relation_to_lord"`
	Navamsa      dignity.Dignity `json:"navamsa_dignity"`
	Vargottama   bool            `json:"vargottama"`
	StrongVargas int             `json:"strong_vargas"`
}

// StrengthAnalysis summarizes Shadbala
type StrengthAnalysis struct {
	Rupas    float64        `json:"rupas"`
	Required float64        `json:"required_rupas"`
	Ratio    float64        `json:"ratio"`
	Grade    shadbala.Grade `json:"grade"`
	Ishta    float64        `json:"ishta_phala"`
	Kashta   float64        `json:"kashta_phala"`
	Default  bool           `json:"is_default,omitempty"`
}

// HousePosition describes the house held and the houses ruled
type HousePosition struct {
	House          int      `json:"house"`
	Kendra         bool     `json:"kendra"`
	Trikona        bool     `json:"trikona"`
	Dusthana       bool     `json:"dusthana"`
	Upachaya       bool     `json:"upachaya"`
	Lordships      []int    `json:"lordships"`
	Significations []string `json:"significations"`
}

// Conjunction is a co-tenant of the same sign
type Conjunction struct {
	Planet domain.Planet `json:"planet"`
	Nature tables.Nature `json:"nature"`
	Orb    float64       `json:"orb"`
}

// CombustionStatus is the planet's state relative to the Sun
type CombustionStatus string

const (
	NotCombust CombustionStatus = "none"
	Combust    CombustionStatus = "combust"
	Cazimi     CombustionStatus = "cazimi"
)

// Combustion is the distance-based solar affliction
type Combustion struct {
	Status   CombustionStatus `json:"status"`
	Distance float64          `json:"distance"`
	Orb      float64          `json:"orb"`
}

// AspectReceived is a drishti cast on the planet
type AspectReceived struct {
	From     domain.Planet `json:"from"`
	Offset   int           `json:"offset"`
	Nature   tables.Nature `json:"nature"`
	Strength float64       `json:"strength"`
}

// Assessment is the weighted overall verdict
type Assessment struct {
	Scores  Scores         `json:"scores"`
	Overall float64        `json:"overall_score"`
	Grade   ClassicalGrade `json:"grade"`
}

// Analysis is the full record of one planet
type Analysis struct {
	Planet       domain.Planet                     `json:"planet"`
	Basic        Basic                             `json:"basic"`
	Dignity      DignityAnalysis                   `json:"dignity"`
	Strength     StrengthAnalysis                  `json:"strength"`
	Position     HousePosition                     `json:"house_position"`
	Friendship   map[domain.Planet]tables.Relation `json:"friendship"`
	Lordships    specialpoints.Lordships           `json:"special_lordships"`
	Conjunctions []Conjunction                     `json:"conjunctions"`
	Combustion   Combustion                        `json:"combustion"`
	Retrograde   bool                              `json:"retrograde"`
	Aspects      []AspectReceived                  `json:"aspects_received"`
	Gandanta     *specialpoints.Gandanta           `json:"gandanta,omitempty"`
	Assessment   Assessment                        `json:"overall_assessment"`
	Methodology  string                            `json:"methodology,omitempty"`
	Fallback     bool                              `json:"is_fallback,omitempty"`
}

const methodology = "Overall = 0.25 dignity + 0.20 shadbala + 0.20 house placement + 0.15 aspects + " +
	"0.10 conjunctions + 0.10 avastha; sub-scores bounded to 10..100."

// Analyzer produces planet analyses from a derived set
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a planet analyzer
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{log: log.With().Str("component", "planet_analyzer").Logger()}
}

// AnalyzeAll analyzes the nine grahas. A planet that fails gets a neutral record.
func (a *Analyzer) AnalyzeAll(s *derived.Set) map[domain.Planet]Analysis {
	out := make(map[domain.Planet]Analysis, len(domain.AllPlanets))
	for _, p := range domain.AllPlanets {
		an, err := a.Analyze(s, p)
		if err != nil {
			a.log.Warn().Err(err).Str("planet", p.String()).Msg("Using neutral planet analysis")
			an = Neutral(p)
		}
		out[p] = an
	}
	return out
}

// Neutral is the fallback analysis
func Neutral(p domain.Planet) Analysis {
	scores := Scores{NeutralScore, NeutralScore, NeutralScore, NeutralScore, NeutralScore, NeutralScore}
	overall := scores.Overall()
	return Analysis{
		Planet:     p,
		Combustion: Combustion{Status: NotCombust},
		Assessment: Assessment{Scores: scores, Overall: overall, Grade: GradeFor(p, overall)},
		Fallback:   true,
	}
}

// Analyze builds the analysis of one planet
func (a *Analyzer) Analyze(s *derived.Set, p domain.Planet) (Analysis, error) {
	if s == nil || s.Chart == nil {
		return Analysis{}, domain.Invariant("planets.Analyze", p.String(), "no derived set")
	}
	c := s.Chart
	pos, ok := c.Lookup(p)
	if !ok {
		return Analysis{}, domain.Invariant("planets.Analyze", p.String(), "planet missing from chart")
	}
	dig, ok := s.Dignities.Get(1, p)
	if !ok {
		return Analysis{}, fmt.Errorf("no D1 dignity for %s", p)
	}

	an := Analysis{
		Planet: p,
		Basic: Basic{
			Longitude:     pos.Longitude,
			Sign:          pos.Sign,
			SignName:      pos.SignName,
			Degree:        pos.SignDegree,
			Nakshatra:     pos.Nakshatra,
			NakshatraName: pos.NakshatraName,
			NakshatraLord: pos.NakshatraLord,
			Pada:          pos.Pada,
			House:         pos.House,
			SignHouse:     pos.SignHouse,
			Avastha:       Baladi(pos.Sign, pos.SignDegree),
		},
		Retrograde:  pos.Retrograde,
		Lordships:   s.Points.LordshipsOf(p),
		Friendship:  make(map[domain.Planet]tables.Relation),
		Methodology: methodology,
	}

	// Step 1: dignity
	an.Dignity = DignityAnalysis{
		Dignity:      dig.Dignity,
		SignLord:     dig.SignLord,
		Relation:     dig.Relation,
		Vargottama:   s.IsVargottama(p),
		StrongVargas: s.Dignities.VargaScore(p),
	}
	if d9, ok := s.Dignities.Get(9, p); ok {
		an.Dignity.Navamsa = d9.Dignity
	}
	for q, f := range s.Friendship[p] {
		an.Friendship[q] = f.Compound
	}

	// Step 2: strength
	sb := s.Strength(p)
	an.Strength = StrengthAnalysis{
		Rupas:    sb.TotalRupas,
		Required: sb.RequiredRupas,
		Ratio:    sb.StrengthRatio,
		Grade:    sb.Grade,
		Ishta:    sb.IshtaPhala,
		Kashta:   sb.KashtaPhala,
		Default:  sb.Default,
	}

	// Step 3: house position, using whole-sign houses
	h := pos.SignHouse
	an.Position = HousePosition{
		House:          h,
		Kendra:         tables.IsKendra(h),
		Trikona:        tables.IsTrikona(h),
		Dusthana:       tables.IsDusthana(h),
		Upachaya:       tables.InHouses(h, tables.Upachayas),
		Lordships:      c.LordedHouses(p),
		Significations: tables.HouseSignifications[h],
	}

	// Step 4: company, combustion and drishti received
	an.Conjunctions = conjunctions(s, p)
	an.Combustion = CombustionOf(p, pos.Longitude, c.Planet(domain.Sun).Longitude, pos.Retrograde)
	for _, asp := range s.Aspects.Received[p] {
		an.Aspects = append(an.Aspects, AspectReceived{
			From:     asp.From,
			Offset:   asp.Offset,
			Nature:   s.Nature(asp.From),
			Strength: asp.Strength,
		})
	}
	if g, ok := s.Points.Gandanta[p]; ok {
		an.Gandanta = &g
	}

	// Step 5: overall assessment
	scores := Scores{
		Dignity:     dignityScore(an.Dignity),
		Shadbala:    shadbalaScore(p, sb),
		House:       houseScore(p, h),
		Aspectual:   aspectScore(an.Aspects),
		Conjunction: conjunctionScore(an.Conjunctions, an.Combustion),
		Avastha:     an.Basic.Avastha.Score(),
	}
	overall := scores.Overall()
	an.Assessment = Assessment{Scores: scores, Overall: overall, Grade: GradeFor(p, overall)}

	return an, nil
}

func conjunctions(s *derived.Set, p domain.Planet) []Conjunction {
	pos := s.Chart.Planet(p)
	var out []Conjunction
	for _, q := range s.Chart.PlanetsInSign(pos.Sign) {
		if q == p {
			continue
		}
		out = append(out, Conjunction{
			Planet: q,
			Nature: s.Nature(q),
			Orb:    formulas.AngularDistance(pos.Longitude, s.Chart.Planet(q).Longitude),
		})
	}
	return out
}

// CombustionOf classifies closeness to the Sun. The Sun and nodes are never combust.
func CombustionOf(p domain.Planet, lon, sunLon float64, retrograde bool) Combustion {
	orb := tables.CombustionOrb(p, retrograde)
	if p == domain.Sun || orb == 0 {
		return Combustion{Status: NotCombust}
	}
	d := formulas.AngularDistance(lon, sunLon)
	c := Combustion{Status: NotCombust, Distance: d, Orb: orb}
	switch {
	case d <= tables.CazimiOrb:
		c.Status = Cazimi
	case d <= orb:
		c.Status = Combust
	}
	return c
}

func dignityScore(d DignityAnalysis) float64 {
	score := d.Dignity.Score()
	if d.Vargottama {
		score += VargottamaBonus
	}
	return bound(score)
}

func shadbalaScore(p domain.Planet, r shadbala.Record) float64 {
	if p.IsNode() || r.Default {
		return NodeShadbalaScore
	}
	return formulas.Scale(r.StrengthRatio, ShadbalaRatioLow, ShadbalaRatioHigh, ScoreMin, ScoreMax)
}

// houseScore: nodes thrive in upachayas, everything else in trikonas and kendras
func houseScore(p domain.Planet, h int) float64 {
	switch {
	case p.IsNode() && tables.InHouses(h, tables.Upachayas):
		return HouseScoreTrikona
	case tables.IsTrikona(h):
		return HouseScoreTrikona
	case tables.IsKendra(h):
		return HouseScoreKendra
	case tables.IsDusthana(h):
		return HouseScoreDusthana
	case tables.InHouses(h, tables.Upachayas):
		return HouseScoreUpachaya
	default:
		return HouseScoreNeutral
	}
}

func aspectScore(received []AspectReceived) float64 {
	score := NeutralScore
	for _, a := range received {
		swing := AspectSwing * math.Max(a.Strength, 15) / 60
		if a.Nature == tables.Benefic {
			score += swing
		} else {
			score -= swing
		}
	}
	return bound(score)
}

func conjunctionScore(conj []Conjunction, comb Combustion) float64 {
	score := NeutralScore
	for _, c := range conj {
		if c.Nature == tables.Benefic {
			score += ConjunctionBenefic
		} else {
			score -= ConjunctionMalefic
		}
	}
	switch comb.Status {
	case Combust:
		score -= CombustPenalty
	case Cazimi:
		score += CazimiBonus
	}
	return bound(score)
}
