package domain

import (
	"fmt"
	"math"
)

// NakshatraSpan is the arc of one lunar mansion in degrees
const NakshatraSpan = 360.0 / 27

// PadaSpan is the arc of one quarter of a nakshatra
const PadaSpan = NakshatraSpan / 4

// Nakshatra is a lunar mansion, 0 = Ashwini .. 26 = Revati
type Nakshatra int

var nakshatraNames = [...]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
	"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
	"Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
	"Uttara Bhadrapada", "Revati",
}

// VimshottariOrder is the repeating lord sequence starting at Ashwini
var VimshottariOrder = []Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

func (n Nakshatra) String() string {
	if n < 0 || n > 26 {
		return fmt.Sprintf("Nakshatra(%d)", int(n))
	}
	return nakshatraNames[n]
}

// Lord returns the Vimshottari lord of the nakshatra
func (n Nakshatra) Lord() Planet {
	return VimshottariOrder[(int(n)%27+27)%27%9]
}

// Start returns the sidereal longitude where the nakshatra begins
func (n Nakshatra) Start() float64 {
	return float64(n) * NakshatraSpan
}

// NakshatraOf returns the nakshatra and pada (1..4) of a sidereal longitude
func NakshatraOf(lon float64) (Nakshatra, int) {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	n := int(l / NakshatraSpan)
	if n > 26 {
		n = 26
	}
	pada := int((l-float64(n)*NakshatraSpan)/PadaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	return Nakshatra(n), pada
}

// NakshatraFraction returns how much of the current nakshatra has been traversed, in [0, 1)
func NakshatraFraction(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	n, _ := NakshatraOf(l)
	return (l - n.Start()) / NakshatraSpan
}
