package tables

import (
	"sort"

	"github.com/aristath/jyotish/internal/domain"
)

// House classes
var (
	Kendras   = []int{1, 4, 7, 10}
	Trikonas  = []int{1, 5, 9}
	Dusthanas = []int{6, 8, 12}
	Upachayas = []int{3, 6, 10, 11}
	Panaphara = []int{2, 5, 8, 11}
	Apoklima  = []int{3, 6, 9, 12}
)

// InHouses reports whether h is one of the listed houses
func InHouses(h int, set []int) bool {
	for _, x := range set {
		if x == h {
			return true
		}
	}
	return false
}

// IsKendra reports whether h is an angular house
func IsKendra(h int) bool { return InHouses(h, Kendras) }

// IsTrikona reports whether h is a trinal house
func IsTrikona(h int) bool { return InHouses(h, Trikonas) }

// IsDusthana reports whether h is 6, 8 or 12
func IsDusthana(h int) bool { return InHouses(h, Dusthanas) }

// HouseFrom counts house n from base, both 1-based: HouseFrom(5, 5) == 9
func HouseFrom(base, n int) int {
	return ((base-1)+(n-1))%12 + 1
}

// HouseKarakas are the natural significators of each house
var HouseKarakas = map[int][]domain.Planet{
	1:  {domain.Sun},
	2:  {domain.Jupiter},
	3:  {domain.Mars},
	4:  {domain.Moon},
	5:  {domain.Jupiter},
	6:  {domain.Mars, domain.Saturn},
	7:  {domain.Venus},
	8:  {domain.Saturn},
	9:  {domain.Jupiter, domain.Sun},
	10: {domain.Sun, domain.Mercury, domain.Jupiter, domain.Saturn},
	11: {domain.Jupiter},
	12: {domain.Saturn},
}

// HouseSignifications is a short description of each bhava
var HouseSignifications = map[int][]string{
	1:  {"self", "body", "temperament", "vitality"},
	2:  {"wealth", "family", "speech", "food"},
	3:  {"courage", "siblings", "communication", "short journeys"},
	4:  {"mother", "home", "property", "happiness"},
	5:  {"children", "intelligence", "creativity", "past merit"},
	6:  {"enemies", "debts", "illness", "service"},
	7:  {"marriage", "partnerships", "public dealings"},
	8:  {"longevity", "transformation", "hidden matters", "inheritance"},
	9:  {"fortune", "dharma", "father", "higher learning"},
	10: {"career", "status", "authority", "actions"},
	11: {"gains", "income", "elder siblings", "aspirations"},
	12: {"losses", "expenses", "foreign lands", "liberation"},
}

// Relatives maps a relation to the pair (base house, house counted from base).
// Derived houses use the bhavat-bhavam method throughout.
var Relatives = map[string][2]int{
	"self":           {1, 1},
	"sibling":        {3, 1},
	"mother":         {4, 1},
	"child":          {5, 1},
	"spouse":         {7, 1},
	"father":         {9, 1},
	"elder_sibling":  {11, 1},
	"grandchild":     {5, 5},
	"spouse_sibling": {7, 3},
	"maternal_uncle": {4, 3},
	"paternal_uncle": {9, 3},
	"mother_in_law":  {7, 4},
	"father_in_law":  {7, 9},
	"child_spouse":   {5, 7},
}

// RelativeHouse resolves a relation to its natal house
func RelativeHouse(relation string) (int, bool) {
	pair, ok := Relatives[relation]
	if !ok {
		return 0, false
	}
	return HouseFrom(pair[0], pair[1]), true
}

// RelativesOf lists, sorted, the relations whose derived house is h
func RelativesOf(h int) []string {
	var out []string
	for rel := range Relatives {
		if n, _ := RelativeHouse(rel); n == h {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}
