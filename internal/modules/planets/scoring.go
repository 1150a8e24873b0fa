package planets

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// =============================================================================
// OVERALL ASSESSMENT WEIGHTS
// =============================================================================
// Every sub-score lives on [10..100]. Weights sum to 1.0.

const (
	WeightDignity     = 0.25 // Sign dignity in D1, vargottama bonus
	WeightShadbala    = 0.20 // Six-fold strength against the required rupas
	WeightHouse       = 0.20 // Kendra, trikona, upachaya or dusthana placement
	WeightAspectual   = 0.15 // Benefic minus malefic drishti received
	WeightConjunction = 0.10 // Company kept in the same sign, combustion
	WeightAvastha     = 0.10 // Baladi age state

	ScoreMin = 10.0
	ScoreMax = 100.0
)

// =============================================================================
// CLASSICAL GRADE THRESHOLDS
// =============================================================================

const (
	UttamaThreshold       = 75.0
	MadhyamaThreshold     = 50.0
	NodeUttamaThreshold   = 70.0
	NodeMadhyamaThreshold = 45.0
)

// =============================================================================
// SUB-SCORE CONSTANTS
// =============================================================================

const (
	VargottamaBonus = 10.0

	// Shadbala ratio (rupas / required) mapped linearly onto the score range
	ShadbalaRatioLow  = 0.5
	ShadbalaRatioHigh = 1.5
	NodeShadbalaScore = 50.0

	HouseScoreTrikona  = 90.0
	HouseScoreKendra   = 85.0
	HouseScoreUpachaya = 70.0
	HouseScoreNeutral  = 55.0
	HouseScoreDusthana = 30.0

	// Per aspect, scaled by its Drishti Pinda strength out of 60
	AspectSwing = 20.0

	ConjunctionBenefic = 10.0
	ConjunctionMalefic = 10.0
	CombustPenalty     = 25.0
	CazimiBonus        = 10.0

	NeutralScore = 50.0
)

// ClassicalGrade is the Uttama/Madhyama/Adhama band
type ClassicalGrade string

const (
	Uttama   ClassicalGrade = "Uttama"
	Madhyama ClassicalGrade = "Madhyama"
	Adhama   ClassicalGrade = "Adhama"
)

// GradeFor maps an overall score to a grade; nodes use lower thresholds
func GradeFor(p domain.Planet, score float64) ClassicalGrade {
	high, mid := UttamaThreshold, MadhyamaThreshold
	if p.IsNode() {
		high, mid = NodeUttamaThreshold, NodeMadhyamaThreshold
	}
	switch {
	case score >= high:
		return Uttama
	case score >= mid:
		return Madhyama
	default:
		return Adhama
	}
}

// Scores are the six bounded sub-scores
type Scores struct {
	Dignity     float64 `json:"dignity"`
	Shadbala    float64 `json:"shadbala"`
	House       float64 `json:"house_placement"`
	Aspectual   float64 `json:"aspectual"`
	Conjunction float64 `json:"conjunctions"`
	Avastha     float64 `json:"avasthas"`
}

func (s Scores) vector() []float64 {
	return []float64{s.Dignity, s.Shadbala, s.House, s.Aspectual, s.Conjunction, s.Avastha}
}

var weights = []float64{WeightDignity, WeightShadbala, WeightHouse, WeightAspectual, WeightConjunction, WeightAvastha}

// Overall is the weighted sum of the sub-scores
func (s Scores) Overall() float64 {
	return formulas.WeightedSum(s.vector(), weights)
}

func bound(x float64) float64 {
	return formulas.Clamp(x, ScoreMin, ScoreMax)
}
