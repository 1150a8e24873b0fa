package tables

import "github.com/aristath/jyotish/internal/domain"

// VimshottariYears is the mahadasha length of each lord; the cycle totals 120 years
var VimshottariYears = map[domain.Planet]float64{
	domain.Ketu:    7,
	domain.Venus:   20,
	domain.Sun:     6,
	domain.Moon:    10,
	domain.Mars:    7,
	domain.Rahu:    18,
	domain.Jupiter: 16,
	domain.Saturn:  19,
	domain.Mercury: 17,
}

// VimshottariTotal is the full cycle in years
const VimshottariTotal = 120.0

// DaysPerYear converts dasha years to days
const DaysPerYear = 365.25

// Yogini is one of the eight yogini dasha rulers
type Yogini struct {
	Name  string        `json:"name"`
	Lord  domain.Planet `json:"lord"`
	Years float64       `json:"years"`
	Vibe  string        `json:"vibe"`
}

// Yoginis in cycle order; the cycle totals 36 years
var Yoginis = []Yogini{
	{"Mangala", domain.Moon, 1, "auspicious beginnings, emotional nourishment"},
	{"Pingala", domain.Sun, 2, "heat, ambition and conflict with authority"},
	{"Dhanya", domain.Jupiter, 3, "prosperity, learning and grace"},
	{"Bhramari", domain.Mars, 4, "restless travel and disputes"},
	{"Bhadrika", domain.Mercury, 5, "success through intellect and commerce"},
	{"Ulka", domain.Saturn, 6, "hard labour, losses and delays"},
	{"Siddha", domain.Venus, 7, "accomplishment, comfort and relationships"},
	{"Sankata", domain.Rahu, 8, "crisis, upheaval and sudden change"},
}

// YoginiTotal is the full cycle in years
const YoginiTotal = 36.0

// YoginiStart returns the index into Yoginis of the first mahadasha for a Moon nakshatra
func YoginiStart(n domain.Nakshatra) int {
	// (nakshatra number + 3) mod 8, with 0 meaning the eighth yogini
	return ((int(n)+1+3)%8 + 7) % 8
}

// KalachakraYears is the period of each sign in Kalachakra dasha
var KalachakraYears = map[domain.Sign]float64{
	domain.Aries:       7,
	domain.Taurus:      16,
	domain.Gemini:      9,
	domain.Cancer:      21,
	domain.Leo:         5,
	domain.Virgo:       9,
	domain.Libra:       16,
	domain.Scorpio:     7,
	domain.Sagittarius: 10,
	domain.Capricorn:   4,
	domain.Aquarius:    4,
	domain.Pisces:      10,
}

// Savya pada sequences; each nakshatra group repeats every four padas
var kalachakraSavya = [4][9]domain.Sign{
	{domain.Aries, domain.Taurus, domain.Gemini, domain.Cancer, domain.Leo, domain.Virgo, domain.Libra, domain.Scorpio, domain.Sagittarius},
	{domain.Capricorn, domain.Aquarius, domain.Pisces, domain.Scorpio, domain.Libra, domain.Virgo, domain.Cancer, domain.Leo, domain.Gemini},
	{domain.Taurus, domain.Aries, domain.Pisces, domain.Aquarius, domain.Capricorn, domain.Sagittarius, domain.Aries, domain.Taurus, domain.Gemini},
	{domain.Cancer, domain.Leo, domain.Virgo, domain.Libra, domain.Scorpio, domain.Sagittarius, domain.Capricorn, domain.Aquarius, domain.Pisces},
}

// Apasavya sequences mirror the savya ones in reverse
var kalachakraApasavya = [4][9]domain.Sign{
	{domain.Scorpio, domain.Libra, domain.Virgo, domain.Cancer, domain.Leo, domain.Gemini, domain.Taurus, domain.Aries, domain.Pisces},
	{domain.Aquarius, domain.Capricorn, domain.Sagittarius, domain.Aries, domain.Taurus, domain.Gemini, domain.Cancer, domain.Leo, domain.Virgo},
	{domain.Libra, domain.Scorpio, domain.Sagittarius, domain.Capricorn, domain.Aquarius, domain.Pisces, domain.Scorpio, domain.Libra, domain.Virgo},
	{domain.Leo, domain.Cancer, domain.Gemini, domain.Taurus, domain.Aries, domain.Pisces, domain.Aquarius, domain.Capricorn, domain.Sagittarius},
}

// KalachakraSequence returns the nine signs ruling the pada of a nakshatra
func KalachakraSequence(n domain.Nakshatra, pada int) (signs [9]domain.Sign, savya bool) {
	// savya and apasavya nakshatras alternate in triplets from Ashwini
	group := int(n) % 6
	savya = group < 3
	idx := (pada - 1) % 4
	if savya {
		return kalachakraSavya[idx], true
	}
	return kalachakraApasavya[idx], false
}
