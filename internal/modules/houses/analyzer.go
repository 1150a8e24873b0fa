// Package houses assesses the twelve bhavas from their lords, residents and aspects.
package houses

import (
	"github.com/rs/zerolog"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/planets"
	"github.com/aristath/jyotish/internal/modules/specialpoints"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/pkg/formulas"
)

// =============================================================================
// HOUSE STRENGTH WEIGHTS
// =============================================================================

const (
	WeightLord       = 0.35 // Overall assessment of the house lord
	WeightResidents  = 0.25 // Mean assessment of occupants
	WeightAspects    = 0.20 // Benefic minus malefic drishti on the house
	WeightSign       = 0.10 // Sarvashtakavarga support of the house sign
	WeightPositional = 0.10 // Kendra, trikona, upachaya or dusthana

	ViparitaBonus  = 20.0
	YogiBonus      = 15.0
	BadhakaPenalty = 8.0

	StrengthMin = 25.0
	StrengthMax = 100.0

	EmptyHouseScore = 50.0
	AspectStep      = 10.0

	// SAV range mapped onto the sign score
	SAVLow  = 20.0
	SAVHigh = 36.0
)

// lord dignity adjustments applied after weighting
var lordDignityBonus = map[dignity.Dignity]float64{
	dignity.Exalted:      10,
	dignity.Moolatrikona: 8,
	dignity.OwnSign:      6,
	dignity.Debilitated:  -10,
}

var positionalScores = []struct {
	houses []int
	score  float64
}{
	{tables.Trikonas, 90},
	{tables.Kendras, 85},
	{tables.Dusthanas, 30},
	{tables.Upachayas, 65},
}

// Resident is an occupant of the house
type Resident struct {
	Planet  domain.Planet          `json:"planet"`
	Nature  tables.Nature          `json:"nature"`
	Overall float64                `json:"overall_score"`
	Grade   planets.ClassicalGrade `json:"grade"`
}

// AspectOnHouse is a planet casting drishti on the house
type AspectOnHouse struct {
	From   domain.Planet `json:"from"`
	Nature tables.Nature `json:"nature"`
}

// LordAnalysis summarizes the lord via the planet analyzer
type LordAnalysis struct {
	Planet   domain.Planet          `json:"planet"`
	House    int                    `json:"placed_in_house"`
	SignName string                 `json:"sign_name"`
	Dignity  dignity.Dignity        `json:"dignity"`
	Overall  float64                `json:"overall_score"`
	Grade    planets.ClassicalGrade `json:"grade"`
}

// Flags are the special conditions of a house
type Flags struct {
	YogiHouse            bool `json:"yogi_house"`
	BadhakaHouse         bool `json:"badhaka_house"`
	ViparitaCancellation bool `json:"viparita_cancellation"`
}

// Strength is the weighted strength of a house
type Strength struct {
	Lord       float64 `json:"lord"`
	Residents  float64 `json:"residents"`
	Aspects    float64 `json:"aspects"`
	Sign       float64 `json:"sign"`
	Positional float64 `json:"positional"`
	Modifiers  float64 `json:"modifiers"`
	Total      float64 `json:"total"`
	Grade      string  `json:"grade"`
}

// Analysis is the assessment of one house
type Analysis struct {
	Number         int                     `json:"number"`
	Sign           domain.Sign             `json:"sign"`
	SignName       string                  `json:"sign_name"`
	Lord           LordAnalysis            `json:"lord"`
	Residents      []Resident              `json:"residents"`
	Aspects        []AspectOnHouse         `json:"aspects_received"`
	Flags          Flags                   `json:"flags"`
	CuspGandanta   *specialpoints.Gandanta `json:"cusp_gandanta,omitempty"`
	Karakas        []domain.Planet         `json:"karakas"`
	Significations []string                `json:"significations"`
	Relatives      []string                `json:"relatives,omitempty"`
	SAV            int                     `json:"sav"`
	Strength       Strength                `json:"strength"`
}

// Analyzer assesses houses
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a house analyzer
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{log: log.With().Str("component", "house_analyzer").Logger()}
}

// AnalyzeAll assesses the twelve houses against precomputed planet analyses
func (a *Analyzer) AnalyzeAll(s *derived.Set, pl map[domain.Planet]planets.Analysis) []Analysis {
	out := make([]Analysis, 0, 12)
	for n := 1; n <= 12; n++ {
		out = append(out, a.Analyze(s, pl, n))
	}
	return out
}

// Analyze assesses house n (1..12)
func (a *Analyzer) Analyze(s *derived.Set, pl map[domain.Planet]planets.Analysis, n int) Analysis {
	c := s.Chart
	sign := c.HouseSign(n)
	lord := sign.Lord()

	an := Analysis{
		Number:         n,
		Sign:           sign,
		SignName:       sign.String(),
		Karakas:        tables.HouseKarakas[n],
		Significations: tables.HouseSignifications[n],
		Relatives:      tables.RelativesOf(n),
		SAV:            s.Ashtakavarga.SAVPoints(sign),
	}

	// Step 1: the lord, as seen by the planet analyzer
	la := analysisOf(pl, lord)
	lordPos := c.Planet(lord)
	an.Lord = LordAnalysis{
		Planet:   lord,
		House:    lordPos.SignHouse,
		SignName: lordPos.SignName,
		Dignity:  la.Dignity.Dignity,
		Overall:  la.Assessment.Overall,
		Grade:    la.Assessment.Grade,
	}

	// Step 2: residents
	var residentScores []float64
	for _, p := range c.PlanetsInSignHouse(n) {
		ra := analysisOf(pl, p)
		an.Residents = append(an.Residents, Resident{
			Planet:  p,
			Nature:  s.Nature(p),
			Overall: ra.Assessment.Overall,
			Grade:   ra.Assessment.Grade,
		})
		residentScores = append(residentScores, ra.Assessment.Overall)
	}

	// Step 3: aspects on the house
	aspectScore := EmptyHouseScore
	for _, p := range s.Aspects.Houses[n] {
		nature := s.Nature(p)
		an.Aspects = append(an.Aspects, AspectOnHouse{From: p, Nature: nature})
		if nature == tables.Benefic {
			aspectScore += AspectStep
		} else {
			aspectScore -= AspectStep
		}
	}

	// Step 4: flags
	an.Flags = Flags{
		YogiHouse:            s.Points.YogiHouse(c) == n,
		BadhakaHouse:         s.Points.Badhaka.House == n,
		ViparitaCancellation: tables.IsDusthana(n) && tables.IsDusthana(lordPos.SignHouse),
	}
	if g, ok := s.Points.CuspZones[n]; ok {
		an.CuspGandanta = &g
	}

	// Step 5: weighted strength
	st := Strength{
		Lord:       la.Assessment.Overall,
		Residents:  EmptyHouseScore,
		Aspects:    formulas.Clamp(aspectScore, planets.ScoreMin, planets.ScoreMax),
		Sign:       formulas.Scale(float64(an.SAV), SAVLow, SAVHigh, planets.ScoreMin, planets.ScoreMax),
		Positional: positional(n),
	}
	if len(residentScores) > 0 {
		st.Residents = formulas.Mean(residentScores)
	}
	st.Modifiers = lordDignityBonus[an.Lord.Dignity]
	if an.Flags.ViparitaCancellation {
		st.Modifiers += ViparitaBonus
	}
	if an.Flags.YogiHouse {
		st.Modifiers += YogiBonus
	}
	if an.Flags.BadhakaHouse {
		st.Modifiers -= BadhakaPenalty
	}
	weighted := formulas.WeightedSum(
		[]float64{st.Lord, st.Residents, st.Aspects, st.Sign, st.Positional},
		[]float64{WeightLord, WeightResidents, WeightAspects, WeightSign, WeightPositional},
	)
	st.Total = formulas.Clamp(weighted+st.Modifiers, StrengthMin, StrengthMax)
	st.Grade = LetterGrade(st.Total)
	an.Strength = st

	return an
}

func analysisOf(pl map[domain.Planet]planets.Analysis, p domain.Planet) planets.Analysis {
	if a, ok := pl[p]; ok {
		return a
	}
	return planets.Neutral(p)
}

func positional(n int) float64 {
	for _, ps := range positionalScores {
		if tables.InHouses(n, ps.houses) {
			return ps.score
		}
	}
	return 55
}

// LetterGrade maps a house strength to A..F
func LetterGrade(total float64) string {
	switch {
	case total >= 80:
		return "A"
	case total >= 65:
		return "B"
	case total >= 50:
		return "C"
	case total >= 35:
		return "D"
	default:
		return "F"
	}
}
