package yogas

import (
	"fmt"
	"sort"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/tables"
)

var ashrayaNames = map[domain.Modality]string{
	domain.Movable: "Rajju",
	domain.Fixed:   "Musala",
	domain.Dual:    "Nala",
}

// sankhyaNames is indexed by the number of occupied signs
var sankhyaNames = [...]string{1: "Gola", 2: "Yuga", 3: "Shula", 4: "Kedara", 5: "Pasha", 6: "Dama", 7: "Veena"}

type akriti struct {
	name   string
	houses []int
	subset bool // occupied may be any subset of houses, else exactly houses
}

var akritis = []akriti{
	{name: "Kamala", houses: []int{1, 4, 7, 10}},
	{name: "Sakata", houses: []int{1, 7}},
	{name: "Vihaga", houses: []int{4, 10}},
	{name: "Gada", houses: []int{1, 4}},
	{name: "Gada", houses: []int{4, 7}},
	{name: "Gada", houses: []int{7, 10}},
	{name: "Gada", houses: []int{1, 10}},
	{name: "Yupa", houses: []int{1, 2, 3, 4}},
	{name: "Ishu", houses: []int{4, 5, 6, 7}},
	{name: "Shakti", houses: []int{7, 8, 9, 10}},
	{name: "Danda", houses: []int{1, 10, 11, 12}},
	{name: "Vapi", houses: tables.Panaphara, subset: true},
	{name: "Vapi", houses: tables.Apoklima, subset: true},
	{name: "Chakra", houses: []int{1, 3, 5, 7, 9, 11}},
	{name: "Samudra", houses: []int{2, 4, 6, 8, 10, 12}},
}

func (a akriti) matches(occupied []int) bool {
	if !a.subset && len(occupied) != len(a.houses) {
		return false
	}
	for _, h := range occupied {
		if !tables.InHouses(h, a.houses) {
			return false
		}
	}
	return true
}

// Nabhasa derives the Ashraya, Akriti and Sankhya yogas from the distribution of
// the seven classical planets
func Nabhasa(s *derived.Set) []Yoga {
	var out []Yoga
	planets := domain.ClassicalPlanets

	modalities := make(map[domain.Modality]bool)
	signs := make(map[domain.Sign]bool)
	houseSet := make(map[int]bool)
	for _, p := range planets {
		pos := s.Chart.Planet(p)
		modalities[pos.Sign.Modality()] = true
		signs[pos.Sign] = true
		houseSet[pos.SignHouse] = true
	}

	// Ashraya: all planets in one modality
	if len(modalities) == 1 {
		for m := range modalities {
			out = append(out, Yoga{
				Name:        ashrayaNames[m] + " Yoga",
				Family:      FamilyNabhasa,
				Planets:     planets,
				Description: fmt.Sprintf("All seven planets occupy %s signs", m),
				Strength:    Moderate,
			})
		}
	}

	// Akriti: shapes of the occupied houses
	occupied := make([]int, 0, len(houseSet))
	for h := range houseSet {
		occupied = append(occupied, h)
	}
	sort.Ints(occupied)
	for _, a := range akritis {
		if !a.matches(occupied) {
			continue
		}
		out = append(out, Yoga{
			Name:        a.name + " Yoga",
			Family:      FamilyNabhasa,
			Planets:     planets,
			Houses:      occupied,
			Description: fmt.Sprintf("Planets confined to houses %v", occupied),
			Strength:    Moderate,
		})
	}

	// Sankhya: number of occupied signs
	out = append(out, Yoga{
		Name:        sankhyaNames[len(signs)] + " Yoga",
		Family:      FamilyNabhasa,
		Planets:     planets,
		Description: fmt.Sprintf("Planets occupy %d signs", len(signs)),
		Strength:    Weak,
	})
	return out
}
