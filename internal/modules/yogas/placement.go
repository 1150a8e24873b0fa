package yogas

import (
	"fmt"
	"strings"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/dignity"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// inKendraFromLagnaOrMoon reports whether p occupies a kendra counted from the
// ascendant or from the Moon
func inKendraFromLagnaOrMoon(s *derived.Set, p domain.Planet) bool {
	return tables.IsKendra(houseOf(s, p)) || tables.IsKendra(houseFromPlanet(s, domain.Moon, p))
}

// NeechaBhanga checks every debilitated planet against the six cancellation rules
func NeechaBhanga(s *derived.Set) []Yoga {
	var out []Yoga
	for _, p := range domain.ClassicalPlanets {
		if s.Dignity(p).Dignity != dignity.Debilitated {
			continue
		}
		debSign := tables.DebilitationSign(p)
		debLord := debSign.Lord()
		exLord := tables.ExaltationSign(p).Lord()

		var rules []string
		if debLord != p && inKendraFromLagnaOrMoon(s, debLord) {
			rules = append(rules, fmt.Sprintf("debilitation lord %s in kendra", debLord))
		}
		if exLord != p && inKendraFromLagnaOrMoon(s, exLord) {
			rules = append(rules, fmt.Sprintf("exaltation lord %s in kendra", exLord))
		}
		for _, q := range domain.ClassicalPlanets {
			if q != p && tables.ExaltationSign(q) == debSign && inKendraFromLagnaOrMoon(s, q) {
				rules = append(rules, fmt.Sprintf("%s, exalted in %s, in kendra", q, debSign))
			}
		}
		if debLord != p && s.Connected(debLord, p) {
			rules = append(rules, fmt.Sprintf("debilitation lord %s conjoins or aspects", debLord))
		}
		if d9, ok := s.Dignities.Get(9, p); ok && d9.Dignity == dignity.Exalted {
			rules = append(rules, "exalted in navamsa")
		} else if s.IsVargottama(p) {
			rules = append(rules, "vargottama")
		}
		if debLord != exLord && tables.IsKendra(houseFromPlanet(s, debLord, exLord)) {
			rules = append(rules, fmt.Sprintf("%s and %s in mutual kendra", debLord, exLord))
		}
		if len(rules) == 0 {
			continue
		}

		strength := Weak
		switch {
		case len(rules) >= 3:
			strength = Strong
		case len(rules) == 2:
			strength = Moderate
		}
		out = append(out, Yoga{
			Name:          "Neecha Bhanga Raja Yoga",
			Family:        FamilyNeechaBhanga,
			Planets:       []domain.Planet{p},
			Houses:        []int{houseOf(s, p)},
			Description:   fmt.Sprintf("Debilitation of %s is cancelled: %s", p, strings.Join(rules, "; ")),
			Strength:      strength,
			Cancellations: rules,
		})
	}
	return out
}

// GajaKesari finds Jupiter in a kendra from the Moon
func GajaKesari(s *derived.Set) []Yoga {
	h := houseFromPlanet(s, domain.Moon, domain.Jupiter)
	if !tables.IsKendra(h) {
		return nil
	}
	strength := strengthFromRupas(s, domain.Jupiter, domain.Moon)
	if s.Dignity(domain.Jupiter).Dignity == dignity.Debilitated {
		strength = Weak
	}
	return []Yoga{{
		Name:        "Gaja Kesari Yoga",
		Family:      FamilyGajaKesari,
		Planets:     []domain.Planet{domain.Jupiter, domain.Moon},
		Houses:      housesOf(s, domain.Jupiter, domain.Moon),
		Description: fmt.Sprintf("Jupiter is in house %d from the Moon", h),
		Strength:    strength,
	}}
}

// Amala finds a natural benefic in the 10th from the ascendant or the Moon
func Amala(s *derived.Set) []Yoga {
	var out []Yoga
	seen := make(map[domain.Planet]bool)
	bases := []struct {
		name string
		sign domain.Sign
	}{
		{"ascendant", s.Chart.AscendantSign},
		{"Moon", s.Chart.Planet(domain.Moon).Sign},
	}
	for _, b := range bases {
		for _, p := range s.Chart.PlanetsInSign(b.sign.House(10)) {
			if seen[p] || p.IsNode() || !s.IsBenefic(p) {
				continue
			}
			seen[p] = true
			out = append(out, Yoga{
				Name:        "Amala Yoga",
				Family:      FamilyAmala,
				Planets:     []domain.Planet{p},
				Houses:      []int{houseOf(s, p)},
				Description: fmt.Sprintf("Benefic %s occupies the 10th from the %s", p, b.name),
				Strength:    strengthFromRupas(s, p),
			})
		}
	}
	return out
}

// flankers lists planets in the 2nd and 12th from a luminary, skipping the given planets
func flankers(s *derived.Set, from domain.Planet, skip ...domain.Planet) (second, twelfth []domain.Planet) {
	base := s.Chart.Planet(from).Sign
	second = planetsInHouseFromSign(s, base, 2, skip...)
	twelfth = planetsInHouseFromSign(s, base, 12, skip...)
	return second, twelfth
}

func joinPlanets(ps []domain.Planet) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

// ChandraYogas covers Sunapha, Anapha, Durudhara and Kemadruma
func ChandraYogas(s *derived.Set) []Yoga {
	second, twelfth := flankers(s, domain.Moon, domain.Moon, domain.Sun, domain.Rahu, domain.Ketu)
	moonHouse := []int{houseOf(s, domain.Moon)}
	switch {
	case len(second) > 0 && len(twelfth) > 0:
		return []Yoga{{
			Name:        "Durudhara Yoga",
			Family:      FamilyChandra,
			Planets:     append(append([]domain.Planet{domain.Moon}, second...), twelfth...),
			Houses:      moonHouse,
			Description: fmt.Sprintf("Moon flanked by %s and %s", joinPlanets(second), joinPlanets(twelfth)),
			Strength:    Strong,
		}}
	case len(second) > 0:
		return []Yoga{{
			Name:        "Sunapha Yoga",
			Family:      FamilyChandra,
			Planets:     append([]domain.Planet{domain.Moon}, second...),
			Houses:      moonHouse,
			Description: fmt.Sprintf("%s in the 2nd from the Moon", joinPlanets(second)),
			Strength:    Moderate,
		}}
	case len(twelfth) > 0:
		return []Yoga{{
			Name:        "Anapha Yoga",
			Family:      FamilyChandra,
			Planets:     append([]domain.Planet{domain.Moon}, twelfth...),
			Houses:      moonHouse,
			Description: fmt.Sprintf("%s in the 12th from the Moon", joinPlanets(twelfth)),
			Strength:    Moderate,
		}}
	}

	y := Yoga{
		Name:        "Kemadruma Yoga",
		Family:      FamilyChandra,
		Planets:     []domain.Planet{domain.Moon},
		Houses:      moonHouse,
		Description: "No planet in the 2nd or 12th from the Moon",
		Strength:    Moderate,
		Dosha:       true,
	}
	for _, p := range []domain.Planet{domain.Mars, domain.Mercury, domain.Jupiter, domain.Venus, domain.Saturn} {
		if inKendraFromLagnaOrMoon(s, p) {
			y.Cancellations = append(y.Cancellations, fmt.Sprintf("%s in kendra from ascendant or Moon", p))
		}
	}
	y.Cancelled = len(y.Cancellations) > 0
	return []Yoga{y}
}

// SuryaYogas covers Vesi, Vosi and Ubhayachari
func SuryaYogas(s *derived.Set) []Yoga {
	second, twelfth := flankers(s, domain.Sun, domain.Sun, domain.Moon, domain.Rahu, domain.Ketu)
	sunHouse := []int{houseOf(s, domain.Sun)}
	switch {
	case len(second) > 0 && len(twelfth) > 0:
		return []Yoga{{
			Name:        "Ubhayachari Yoga",
			Family:      FamilySurya,
			Planets:     append(append([]domain.Planet{domain.Sun}, second...), twelfth...),
			Houses:      sunHouse,
			Description: fmt.Sprintf("Sun flanked by %s and %s", joinPlanets(second), joinPlanets(twelfth)),
			Strength:    Strong,
		}}
	case len(second) > 0:
		return []Yoga{{
			Name:        "Vesi Yoga",
			Family:      FamilySurya,
			Planets:     append([]domain.Planet{domain.Sun}, second...),
			Houses:      sunHouse,
			Description: fmt.Sprintf("%s in the 2nd from the Sun", joinPlanets(second)),
			Strength:    Moderate,
		}}
	case len(twelfth) > 0:
		return []Yoga{{
			Name:        "Vosi Yoga",
			Family:      FamilySurya,
			Planets:     append([]domain.Planet{domain.Sun}, twelfth...),
			Houses:      sunHouse,
			Description: fmt.Sprintf("%s in the 12th from the Sun", joinPlanets(twelfth)),
			Strength:    Moderate,
		}}
	}
	return nil
}

// mangalHouses are the houses from which Mars produces Kuja dosha
var mangalHouses = []int{1, 2, 4, 7, 8, 12}

// MarriageYogas covers Mangal dosha and the 7th lord's placement
func MarriageYogas(s *derived.Set) []Yoga {
	var out []Yoga

	var refs []string
	if tables.InHouses(houseOf(s, domain.Mars), mangalHouses) {
		refs = append(refs, fmt.Sprintf("house %d from ascendant", houseOf(s, domain.Mars)))
	}
	for _, ref := range []domain.Planet{domain.Moon, domain.Venus} {
		if h := houseFromPlanet(s, ref, domain.Mars); tables.InHouses(h, mangalHouses) {
			refs = append(refs, fmt.Sprintf("house %d from %s", h, ref))
		}
	}
	if len(refs) > 0 {
		y := Yoga{
			Name:        "Mangal Dosha",
			Family:      FamilyMarriage,
			Planets:     []domain.Planet{domain.Mars},
			Houses:      []int{houseOf(s, domain.Mars)},
			Description: "Mars in " + strings.Join(refs, ", "),
			Strength:    Weak,
			Dosha:       true,
		}
		if len(refs) == 3 {
			y.Strength = Strong
		} else if len(refs) == 2 {
			y.Strength = Moderate
		}
		if s.Dignity(domain.Mars).Dignity.IsStrong() {
			y.Cancellations = append(y.Cancellations, "Mars in own or exaltation sign")
		}
		if s.Connected(domain.Jupiter, domain.Mars) {
			y.Cancellations = append(y.Cancellations, "Jupiter conjoins or aspects Mars")
		}
		y.Cancelled = len(y.Cancellations) > 0
		out = append(out, y)
	}

	seventh := s.Chart.HouseLord(7)
	if h := houseOf(s, seventh); isGoodHouse(h) && s.Dignity(seventh).Dignity != dignity.Debilitated {
		out = append(out, Yoga{
			Name:        "Kalatra Yoga",
			Family:      FamilyMarriage,
			Planets:     []domain.Planet{seventh},
			Houses:      []int{7, h},
			Description: fmt.Sprintf("7th lord %s is well placed in house %d", seventh, h),
			Strength:    strengthFromRupas(s, seventh),
		})
	}
	return out
}

// HealthYogas judges the ascendant lord's placement
func HealthYogas(s *derived.Set) []Yoga {
	lord := s.Chart.HouseLord(1)
	h := houseOf(s, lord)
	switch {
	case tables.IsDusthana(h):
		return []Yoga{{
			Name:        "Arishta Yoga",
			Family:      FamilyHealth,
			Planets:     []domain.Planet{lord},
			Houses:      []int{1, h},
			Description: fmt.Sprintf("Ascendant lord %s sits in dusthana %d", lord, h),
			Strength:    Moderate,
			Dosha:       true,
		}}
	case isGoodHouse(h) && s.Dignity(lord).Dignity != dignity.Debilitated:
		return []Yoga{{
			Name:        "Lagnadhi Bala Yoga",
			Family:      FamilyHealth,
			Planets:     []domain.Planet{lord},
			Houses:      []int{1, h},
			Description: fmt.Sprintf("Ascendant lord %s is well placed in house %d", lord, h),
			Strength:    strengthFromRupas(s, lord),
		}}
	}
	return nil
}

// EducationYogas covers Saraswati and Budha-Aditya
func EducationYogas(s *derived.Set) []Yoga {
	var out []Yoga
	if s.Connected(domain.Mercury, domain.Jupiter) &&
		s.Connected(domain.Mercury, domain.Venus) &&
		s.Connected(domain.Jupiter, domain.Venus) {
		out = append(out, Yoga{
			Name:        "Saraswati Yoga",
			Family:      FamilyEducation,
			Planets:     []domain.Planet{domain.Mercury, domain.Jupiter, domain.Venus},
			Houses:      housesOf(s, domain.Mercury, domain.Jupiter, domain.Venus),
			Description: "Mercury, Jupiter and Venus are linked by conjunction or aspect",
			Strength:    strengthFromRupas(s, domain.Mercury, domain.Jupiter, domain.Venus),
		})
	}
	if s.Chart.Planet(domain.Sun).Sign == s.Chart.Planet(domain.Mercury).Sign {
		out = append(out, Yoga{
			Name:        "Budha Aditya Yoga",
			Family:      FamilyEducation,
			Planets:     []domain.Planet{domain.Sun, domain.Mercury},
			Houses:      []int{houseOf(s, domain.Sun)},
			Description: "Sun and Mercury share a sign",
			Strength:    strengthFromRupas(s, domain.Sun, domain.Mercury),
		})
	}
	return out
}
