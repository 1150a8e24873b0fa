package domain

import (
	"fmt"
	"math"
)

// Sign is a rashi, 0 = Aries .. 11 = Pisces
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signLords = [...]Planet{Mars, Venus, Mercury, Moon, Sun, Mercury, Venus, Mars, Jupiter, Saturn, Saturn, Jupiter}

// Modality of a sign
type Modality string

const (
	Movable Modality = "movable"
	Fixed   Modality = "fixed"
	Dual    Modality = "dual"
)

// Element of a sign
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Lord returns the traditional ruler of the sign
func (s Sign) Lord() Planet {
	return signLords[s.norm()]
}

// Modality returns movable, fixed or dual
func (s Sign) Modality() Modality {
	switch s.norm() % 3 {
	case 0:
		return Movable
	case 1:
		return Fixed
	default:
		return Dual
	}
}

// Element returns fire, earth, air or water
func (s Sign) Element() Element {
	switch s.norm() % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// IsOdd reports whether the sign is odd-numbered (Aries, Gemini, ...)
func (s Sign) IsOdd() bool {
	return s.norm()%2 == 0
}

// Add moves n signs forward (negative n moves backward)
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// House returns the sign occupying house n (1-based) counted from s
func (s Sign) House(n int) Sign {
	return s.Add(n - 1)
}

func (s Sign) norm() Sign {
	return Sign((int(s)%12 + 12) % 12)
}

// SignOf returns the sign containing a sidereal longitude
func SignOf(lon float64) Sign {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	return Sign(int(l/30) % 12)
}

// HouseDistance counts inclusively from one sign to another: same sign is 1, next sign is 2
func HouseDistance(from, to Sign) int {
	return ((int(to)-int(from))%12+12)%12 + 1
}

// AllSigns lists the twelve signs in order
var AllSigns = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}
