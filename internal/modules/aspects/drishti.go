// Package aspects implements graha drishti (planetary aspects), Jaimini rashi drishti
// and the Drishti Pinda strength curve used by Drik Bala.
package aspects

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Rahu and Ketu cast the 3rd and 11th in addition to the 7th
var grahaOffsets = map[domain.Planet][]int{
	domain.Sun:     {7},
	domain.Moon:    {7},
	domain.Mercury: {7},
	domain.Venus:   {7},
	domain.Mars:    {4, 7, 8},
	domain.Jupiter: {5, 7, 9},
	domain.Saturn:  {3, 7, 10},
	domain.Rahu:    {3, 7, 11},
	domain.Ketu:    {3, 7, 11},
}

// Offsets returns the house offsets (counted inclusively, same house = 1) aspected by p
func Offsets(p domain.Planet) []int {
	return grahaOffsets[p]
}

// HasOffset reports whether p aspects the house n places away
func HasOffset(p domain.Planet, n int) bool {
	for _, o := range grahaOffsets[p] {
		if o == n {
			return true
		}
	}
	return false
}

// Casts reports whether a planet in sign from aspects sign to
func Casts(p domain.Planet, from, to domain.Sign) bool {
	return HasOffset(p, domain.HouseDistance(from, to))
}

// IsSpecial reports a non-7th aspect
func IsSpecial(n int) bool {
	return n != 7
}

// PindaValue is the classical Drishti Pinda curve in virupas for an aspect angle measured
// from the aspecting planet to the aspected point.
func PindaValue(angle float64) float64 {
	a := formulas.Norm360(angle)
	switch {
	case a < 30:
		return 0
	case a < 60:
		return (a - 30) / 2
	case a < 90:
		return a - 60 + 15
	case a < 120:
		return (120-a)/2 + 30
	case a < 150:
		return 150 - a
	case a < 180:
		return (a - 150) * 2
	case a < 300:
		return (300 - a) / 2
	default:
		return 0
	}
}

// special aspect arcs that earn the full 60 virupas
var specialArcs = map[domain.Planet][][2]float64{
	domain.Mars:    {{90, 120}, {210, 240}},
	domain.Jupiter: {{120, 150}, {240, 270}},
	domain.Saturn:  {{60, 90}, {270, 300}},
}

// Value returns the aspect strength of p across the given angle, with the special aspects
// of Mars, Jupiter and Saturn counted in full.
func Value(p domain.Planet, angle float64) float64 {
	a := formulas.Norm360(angle)
	for _, arc := range specialArcs[p] {
		if a >= arc[0] && a < arc[1] {
			return 60
		}
	}
	return PindaValue(a)
}
