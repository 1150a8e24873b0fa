package yogas

import (
	"fmt"
	"strings"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/derived"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/pkg/formulas"
)

// kaalSarpNames is indexed by Rahu's whole-sign house
var kaalSarpNames = [...]string{
	1: "Anant", 2: "Kulik", 3: "Vasuki", 4: "Shankhpal", 5: "Padma", 6: "Mahapadma",
	7: "Takshak", 8: "Karkotak", 9: "Shankhachur", 10: "Ghatak", 11: "Vishdhar", 12: "Sheshnag",
}

// KaalSarp reports whether all seven classical planets lie strictly on one side of
// the Rahu-Ketu axis
func KaalSarp(s *derived.Set) []Yoga {
	rahu, ok1 := s.Chart.Lookup(domain.Rahu)
	_, ok2 := s.Chart.Lookup(domain.Ketu)
	if !ok1 || !ok2 {
		return nil
	}

	var ahead, behind int
	for _, p := range domain.ClassicalPlanets {
		arc := formulas.Arc(rahu.Longitude, s.Chart.Planet(p).Longitude)
		switch {
		case arc > 0 && arc < 180:
			ahead++
		case arc > 180:
			behind++
		}
	}
	n := len(domain.ClassicalPlanets)
	if ahead != n && behind != n {
		return nil
	}

	direction := "Rahu to Ketu"
	if behind == n {
		direction = "Ketu to Rahu"
	}
	y := Yoga{
		Name:        kaalSarpNames[rahu.SignHouse] + " Kaal Sarp Dosha",
		Family:      FamilyKaalSarp,
		Planets:     []domain.Planet{domain.Rahu, domain.Ketu},
		Houses:      []int{rahu.SignHouse, s.Chart.Planet(domain.Ketu).SignHouse},
		Description: fmt.Sprintf("All planets hemmed from %s", direction),
		Strength:    Strong,
		Dosha:       true,
	}

	// classical cancellations
	for _, node := range []domain.Planet{domain.Rahu, domain.Ketu} {
		if others := s.Chart.PlanetsInSign(s.Chart.Planet(node).Sign); len(others) > 1 {
			y.Cancellations = append(y.Cancellations, fmt.Sprintf("a planet shares the sign of %s", node))
		}
	}
	if tables.IsKendra(houseOf(s, domain.Jupiter)) {
		y.Cancellations = append(y.Cancellations, "Jupiter in kendra")
	}
	if tables.InHouses(rahu.SignHouse, []int{3, 6, 11}) {
		y.Cancellations = append(y.Cancellations, "Rahu in an upachaya house")
	}
	y.Cancelled = len(y.Cancellations) > 0
	if y.Cancelled {
		y.Strength = Weak
	}
	return []Yoga{y}
}

var pitraMalefics = []domain.Planet{domain.Saturn, domain.Mars, domain.Rahu, domain.Ketu}

// pitraCore afflictors make the dosha; Mars only adds severity
var pitraCore = map[domain.Planet]bool{domain.Saturn: true, domain.Rahu: true, domain.Ketu: true}

// PitraDosha collects malefic afflictions of the 9th house, its lord, the Sun and the Moon
func PitraDosha(s *derived.Set) []Yoga {
	ninthLord := s.Chart.HouseLord(9)
	ninthSign := s.Chart.HouseSign(9)

	var afflictions []string
	involved := map[domain.Planet]bool{}
	core := false
	note := func(m domain.Planet, how, target string) {
		afflictions = append(afflictions, fmt.Sprintf("%s %s %s", m, how, target))
		involved[m] = true
		core = core || pitraCore[m]
	}

	for _, m := range pitraMalefics {
		if s.Chart.Planet(m).Sign == ninthSign {
			note(m, "occupies", "the 9th house")
		} else if s.Aspects.AspectsHouse(m, 9) {
			note(m, "aspects", "the 9th house")
		}
		for _, target := range []domain.Planet{ninthLord, domain.Sun, domain.Moon} {
			if m == target {
				continue
			}
			label := target.String()
			if target == ninthLord {
				label = "9th lord " + label
			}
			switch {
			case s.Chart.Planet(m).Sign == s.Chart.Planet(target).Sign:
				note(m, "conjoins", label)
			case s.Aspects.Aspects(m, target):
				note(m, "aspects", label)
			}
		}
	}
	if !core {
		return nil
	}

	planets := []domain.Planet{domain.Sun}
	for _, m := range pitraMalefics {
		if involved[m] {
			planets = append(planets, m)
		}
	}
	strength := Weak
	switch {
	case len(afflictions) >= 4:
		strength = Strong
	case len(afflictions) >= 2:
		strength = Moderate
	}
	y := Yoga{
		Name:        "Pitra Dosha",
		Family:      FamilyPitraDosha,
		Planets:     planets,
		Houses:      []int{9},
		Description: strings.Join(afflictions, "; "),
		Strength:    strength,
		Dosha:       true,
	}
	if s.Chart.Planet(domain.Jupiter).Sign == ninthSign || s.Aspects.AspectsHouse(domain.Jupiter, 9) {
		y.Cancellations = append(y.Cancellations, "Jupiter occupies or aspects the 9th house")
		y.Cancelled = true
	}
	return []Yoga{y}
}
