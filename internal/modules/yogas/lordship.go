package yogas

import (
	"fmt"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// lordPairs yields each unordered pair of distinct lords, one from each house set,
// that are connected by conjunction or aspect
func lordPairs(s *derived.Set, left, right []int) [][2]domain.Planet {
	seen := make(map[[2]domain.Planet]bool)
	var out [][2]domain.Planet
	for _, a := range left {
		for _, b := range right {
			p, q := s.Chart.HouseLord(a), s.Chart.HouseLord(b)
			if p == q {
				continue
			}
			key := sortedPair(p, q)
			if seen[key] || !s.Connected(p, q) {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

func housesOf(s *derived.Set, ps ...domain.Planet) []int {
	var out []int
	for _, p := range ps {
		out = append(out, houseOf(s, p))
	}
	return sortedInts(out)
}

// RajYogas finds kendra-trikona lord connections and yogakarakas
func RajYogas(s *derived.Set) []Yoga {
	var out []Yoga
	for _, pair := range lordPairs(s, tables.Kendras, tables.Trikonas) {
		out = append(out, Yoga{
			Name:        "Raj Yoga",
			Family:      FamilyRaj,
			Planets:     pair[:],
			Houses:      housesOf(s, pair[0], pair[1]),
			Description: fmt.Sprintf("Kendra and trikona lords %s and %s are connected", pair[0], pair[1]),
			Strength:    strengthFromRupas(s, pair[0], pair[1]),
		})
	}

	// a single planet ruling both a kendra and a trikona (the ascendant excluded)
	for _, p := range domain.ClassicalPlanets {
		var kendra, trikona bool
		for _, h := range s.Chart.LordedHouses(p) {
			if h == 1 {
				continue
			}
			kendra = kendra || tables.IsKendra(h)
			trikona = trikona || tables.IsTrikona(h)
		}
		if kendra && trikona {
			out = append(out, Yoga{
				Name:        "Yogakaraka",
				Family:      FamilyRaj,
				Planets:     []domain.Planet{p},
				Houses:      s.Chart.LordedHouses(p),
				Description: fmt.Sprintf("%s rules both a kendra and a trikona", p),
				Strength:    strengthFromRupas(s, p),
			})
		}
	}
	return out
}

// DhanaYogas finds connections among the wealth lords (2, 11) and with the trine lords (5, 9)
func DhanaYogas(s *derived.Set) []Yoga {
	var out []Yoga
	for _, pair := range lordPairs(s, []int{2}, []int{11}) {
		out = append(out, Yoga{
			Name:        "Dhana Yoga",
			Family:      FamilyDhana,
			Planets:     pair[:],
			Houses:      []int{2, 11},
			Description: fmt.Sprintf("2nd and 11th lords %s and %s are connected", pair[0], pair[1]),
			Strength:    strengthFromRupas(s, pair[0], pair[1]),
		})
	}
	for _, pair := range lordPairs(s, []int{2, 11}, []int{5, 9}) {
		out = append(out, Yoga{
			Name:        "Lakshmi Dhana Yoga",
			Family:      FamilyDhana,
			Planets:     pair[:],
			Houses:      housesOf(s, pair[0], pair[1]),
			Description: fmt.Sprintf("Wealth lord and trine lord %s and %s are connected", pair[0], pair[1]),
			Strength:    strengthFromRupas(s, pair[0], pair[1]),
		})
	}
	return out
}

var mahapurushaNames = map[domain.Planet]string{
	domain.Mars:    "Ruchaka",
	domain.Mercury: "Bhadra",
	domain.Jupiter: "Hamsa",
	domain.Venus:   "Malavya",
	domain.Saturn:  "Sasa",
}

// Mahapurusha finds the five great-person yogas: the planet in own or exaltation
// sign in a kendra from the ascendant
func Mahapurusha(s *derived.Set) []Yoga {
	var out []Yoga
	for _, p := range []domain.Planet{domain.Mars, domain.Mercury, domain.Jupiter, domain.Venus, domain.Saturn} {
		pos := s.Chart.Planet(p)
		if !tables.IsKendra(pos.SignHouse) {
			continue
		}
		d := s.Dignity(p).Dignity
		if !d.IsStrong() {
			continue
		}
		out = append(out, Yoga{
			Name:        mahapurushaNames[p] + " Yoga",
			Family:      FamilyMahapurusha,
			Planets:     []domain.Planet{p},
			Houses:      []int{pos.SignHouse},
			Description: fmt.Sprintf("%s is %s in house %d", p, d, pos.SignHouse),
			Strength:    strengthFromRupas(s, p),
		})
	}
	return out
}

var viparitaNames = map[int]string{6: "Harsha", 8: "Sarala", 12: "Vimala"}

// ViparitaRaja finds dusthana lords placed in dusthanas
func ViparitaRaja(s *derived.Set) []Yoga {
	var out []Yoga
	for _, h := range tables.Dusthanas {
		lord := s.Chart.HouseLord(h)
		at := houseOf(s, lord)
		if !tables.IsDusthana(at) {
			continue
		}
		out = append(out, Yoga{
			Name:        viparitaNames[h] + " Yoga",
			Family:      FamilyViparita,
			Planets:     []domain.Planet{lord},
			Houses:      []int{h, at},
			Description: fmt.Sprintf("Lord of house %d (%s) sits in house %d", h, lord, at),
			Strength:    Moderate,
		})
	}
	return out
}

func isGoodHouse(h int) bool {
	return tables.IsKendra(h) || tables.IsTrikona(h)
}

// Parivartana finds sign exchanges between house lords
func Parivartana(s *derived.Set) []Yoga {
	var out []Yoga
	for i := 1; i <= 12; i++ {
		for j := i + 1; j <= 12; j++ {
			a, b := s.Chart.HouseLord(i), s.Chart.HouseLord(j)
			if a == b || houseOf(s, a) != j || houseOf(s, b) != i {
				continue
			}
			name, strength := "Parivartana Yoga", Moderate
			switch {
			case tables.IsDusthana(i) || tables.IsDusthana(j):
				name, strength = "Dainya Parivartana Yoga", Weak
			case i == 3 || j == 3:
				name, strength = "Khala Parivartana Yoga", Weak
			case isGoodHouse(i) && isGoodHouse(j):
				name, strength = "Maha Parivartana Yoga", Strong
			}
			out = append(out, Yoga{
				Name:        name,
				Family:      FamilyParivartana,
				Planets:     []domain.Planet{a, b},
				Houses:      []int{i, j},
				Description: fmt.Sprintf("Lords of houses %d and %d (%s, %s) exchange signs", i, j, a, b),
				Strength:    strength,
			})
		}
	}
	return out
}

// CareerYogas covers the 10th lord's placement and its link with the 9th lord
func CareerYogas(s *derived.Set) []Yoga {
	var out []Yoga
	tenth := s.Chart.HouseLord(10)
	if h := houseOf(s, tenth); isGoodHouse(h) && s.Dignity(tenth).Dignity != dignity.Debilitated {
		out = append(out, Yoga{
			Name:        "Karma Yoga",
			Family:      FamilyCareer,
			Planets:     []domain.Planet{tenth},
			Houses:      []int{10, h},
			Description: fmt.Sprintf("10th lord %s is well placed in house %d", tenth, h),
			Strength:    strengthFromRupas(s, tenth),
		})
	}
	for _, pair := range lordPairs(s, []int{9}, []int{10}) {
		out = append(out, Yoga{
			Name:        "Dharma Karmadhipati Yoga",
			Family:      FamilyCareer,
			Planets:     pair[:],
			Houses:      []int{9, 10},
			Description: fmt.Sprintf("9th and 10th lords %s and %s are connected", pair[0], pair[1]),
			Strength:    strengthFromRupas(s, pair[0], pair[1]),
		})
	}
	return out
}
