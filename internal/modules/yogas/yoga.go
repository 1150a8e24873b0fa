// Package yogas detects named planetary combinations and doshas. Every matcher is a
// pure function of the chart-derived cache.
package yogas

import (
	"sort"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// Family groups related yogas
type Family string

const (
	FamilyRaj          Family = "raj"
	FamilyDhana        Family = "dhana"
	FamilyMahapurusha  Family = "mahapurusha"
	FamilyNeechaBhanga Family = "neecha_bhanga"
	FamilyGajaKesari   Family = "gaja_kesari"
	FamilyAmala        Family = "amala"
	FamilyViparita     Family = "viparita_raja"
	FamilyParivartana  Family = "parivartana"
	FamilyNabhasa      Family = "nabhasa"
	FamilyChandra      Family = "chandra"
	FamilySurya        Family = "surya"
	FamilyMarriage     Family = "marriage"
	FamilyHealth       Family = "health"
	FamilyEducation    Family = "education"
	FamilyCareer       Family = "career"
	FamilyKaalSarp     Family = "kaal_sarp"
	FamilyPitraDosha   Family = "pitra_dosha"
)

// Strength is a coarse qualitative weight
type Strength string

const (
	Strong   Strength = "strong"
	Moderate Strength = "moderate"
	Weak     Strength = "weak"
)

// Yoga is one detected combination
type Yoga struct {
	Name          string          `json:"name"`
	Family        Family          `json:"family"`
	Planets       []domain.Planet `json:"planets"`
	Houses        []int           `json:"houses,omitempty"`
	Description   string          `json:"description"`
	Strength      Strength        `json:"strength"`
	Dosha         bool            `json:"is_dosha,omitempty"`
	Cancelled     bool            `json:"cancelled,omitempty"`
	Cancellations []string        `json:"cancellations,omitempty"`
}

// Matcher finds the yogas of one family
type Matcher func(s *derived.Set) []Yoga

// Bundle holds every family's matches
type Bundle map[Family][]Yoga

// matchers in evaluation order
var matchers = []struct {
	family Family
	match  Matcher
}{
	{FamilyRaj, RajYogas},
	{FamilyDhana, DhanaYogas},
	{FamilyMahapurusha, Mahapurusha},
	{FamilyNeechaBhanga, NeechaBhanga},
	{FamilyGajaKesari, GajaKesari},
	{FamilyAmala, Amala},
	{FamilyViparita, ViparitaRaja},
	{FamilyParivartana, Parivartana},
	{FamilyNabhasa, Nabhasa},
	{FamilyChandra, ChandraYogas},
	{FamilySurya, SuryaYogas},
	{FamilyMarriage, MarriageYogas},
	{FamilyHealth, HealthYogas},
	{FamilyEducation, EducationYogas},
	{FamilyCareer, CareerYogas},
	{FamilyKaalSarp, KaalSarp},
	{FamilyPitraDosha, PitraDosha},
}

// Detect runs every matcher
func Detect(s *derived.Set) Bundle {
	b := make(Bundle, len(matchers))
	for _, m := range matchers {
		b[m.family] = m.match(s)
	}
	return b
}

// All flattens the bundle in family order
func (b Bundle) All() []Yoga {
	var out []Yoga
	for _, m := range matchers {
		out = append(out, b[m.family]...)
	}
	return out
}

// Count returns the number of yogas found
func (b Bundle) Count() int {
	n := 0
	for _, ys := range b {
		n += len(ys)
	}
	return n
}

// Doshas returns the active (uncancelled) afflictions
func (b Bundle) Doshas() []Yoga {
	var out []Yoga
	for _, y := range b.All() {
		if y.Dosha && !y.Cancelled {
			out = append(out, y)
		}
	}
	return out
}

// Names lists the names of a family's yogas
func (b Bundle) Names(f Family) []string {
	var out []string
	for _, y := range b[f] {
		out = append(out, y.Name)
	}
	return out
}

// helpers shared by the matchers

func houseOf(s *derived.Set, p domain.Planet) int {
	return s.Chart.Planet(p).SignHouse
}

func houseFromPlanet(s *derived.Set, from, to domain.Planet) int {
	return s.Chart.HouseFrom(from, to)
}

func isStrongDignity(s *derived.Set, p domain.Planet) bool {
	return s.Dignity(p).Dignity.IsStrong()
}

func isMalefic(p domain.Planet) bool {
	return tables.NaturalNature[p] == tables.Malefic
}

func sortedPair(a, b domain.Planet) [2]domain.Planet {
	if a > b {
		a, b = b, a
	}
	return [2]domain.Planet{a, b}
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

func planetsInHouseFromSign(s *derived.Set, base domain.Sign, n int, exclude ...domain.Planet) []domain.Planet {
	var out []domain.Planet
	for _, p := range s.Chart.PlanetsInSign(base.House(n)) {
		skip := false
		for _, x := range exclude {
			if x == p {
				skip = true
			}
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out
}

func strengthFromRupas(s *derived.Set, ps ...domain.Planet) Strength {
	strong := 0
	for _, p := range ps {
		if p.IsNode() {
			continue
		}
		if r := s.Strength(p); r.StrengthRatio >= 1 {
			strong++
		}
	}
	switch {
	case strong == len(ps):
		return Strong
	case strong > 0:
		return Moderate
	default:
		return Weak
	}
}
