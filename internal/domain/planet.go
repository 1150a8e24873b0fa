// Package domain provides the core astrological types shared by every engine layer:
// planets, signs, nakshatras, birth input, intent and error kinds.
package domain

import (
	"fmt"
	"strings"
)

// Planet identifies one of the nine grahas
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

var planetNames = [...]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

// AllPlanets lists the nine grahas in canonical order
var AllPlanets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// ClassicalPlanets lists the seven visible grahas (no lunar nodes)
var ClassicalPlanets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

func (p Planet) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetNames[p]
}

// Valid reports whether p is one of the nine grahas
func (p Planet) Valid() bool {
	return p >= Sun && p <= Ketu
}

// IsNode reports whether p is Rahu or Ketu
func (p Planet) IsNode() bool {
	return p == Rahu || p == Ketu
}

// MarshalText renders planets by name, which also makes them usable as JSON map keys
func (p Planet) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid planet %d", int(p))
	}
	return []byte(planetNames[p]), nil
}

// UnmarshalText parses a planet name
func (p *Planet) UnmarshalText(b []byte) error {
	parsed, err := ParsePlanet(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlanet parses a planet name case-insensitively
func ParsePlanet(name string) (Planet, error) {
	n := strings.TrimSpace(name)
	for i, pn := range planetNames {
		if strings.EqualFold(pn, n) {
			return Planet(i), nil
		}
	}
	return 0, Malformed("ParsePlanet", name, "unknown planet")
}
