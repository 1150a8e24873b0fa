package tables

import "github.com/aristath/jyotish/internal/domain"

// Nature is the benefic/malefic classification
type Nature string

const (
	Benefic Nature = "benefic"
	Malefic Nature = "malefic"
)

// NaturalNature is the fixed classification. The Moon is resolved per chart by
// MoonNature; Mercury is treated as benefic.
var NaturalNature = map[domain.Planet]Nature{
	domain.Sun:     Malefic,
	domain.Moon:    Benefic,
	domain.Mars:    Malefic,
	domain.Mercury: Benefic,
	domain.Jupiter: Benefic,
	domain.Venus:   Benefic,
	domain.Saturn:  Malefic,
	domain.Rahu:    Malefic,
	domain.Ketu:    Malefic,
}

// MoonNature returns malefic for a waning Moon, i.e. when arc(Sun→Moon) exceeds 180°
func MoonNature(sunLon, moonLon float64) Nature {
	arc := moonLon - sunLon
	for arc < 0 {
		arc += 360
	}
	for arc >= 360 {
		arc -= 360
	}
	if arc > 180 {
		return Malefic
	}
	return Benefic
}

// NatureOf resolves the nature of p, using the Sun and Moon longitudes for the Moon
func NatureOf(p domain.Planet, sunLon, moonLon float64) Nature {
	if p == domain.Moon {
		return MoonNature(sunLon, moonLon)
	}
	return NaturalNature[p]
}

// Gender classes drive Drekkana bala
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Neuter Gender = "neuter"
)

// PlanetGender of the classical planets
var PlanetGender = map[domain.Planet]Gender{
	domain.Sun:     Male,
	domain.Mars:    Male,
	domain.Jupiter: Male,
	domain.Moon:    Female,
	domain.Venus:   Female,
	domain.Mercury: Neuter,
	domain.Saturn:  Neuter,
}

// NaisargikaBala is the fixed natural strength in virupas
var NaisargikaBala = map[domain.Planet]float64{
	domain.Sun:     60.00,
	domain.Moon:    51.43,
	domain.Venus:   42.86,
	domain.Jupiter: 34.29,
	domain.Mercury: 25.71,
	domain.Mars:    17.14,
	domain.Saturn:  8.57,
}

// RequiredRupas is the minimum Shadbala for a planet to be considered strong
var RequiredRupas = map[domain.Planet]float64{
	domain.Sun:     5.0,
	domain.Moon:    6.0,
	domain.Mars:    5.0,
	domain.Mercury: 7.0,
	domain.Jupiter: 6.5,
	domain.Venus:   5.5,
	domain.Saturn:  5.0,
}

// DigBalaWeakHouse is the house whose madhya gives zero directional strength
var DigBalaWeakHouse = map[domain.Planet]int{
	domain.Sun:     4,
	domain.Mars:    4,
	domain.Jupiter: 7,
	domain.Mercury: 7,
	domain.Moon:    10,
	domain.Venus:   10,
	domain.Saturn:  1,
}

// ChestaRange is the speed envelope used for motional strength, in degrees per day
type ChestaRange struct {
	Min      float64 // slowest direct speed (Sun/Moon only)
	Max      float64 // fastest direct speed
	MaxRetro float64 // fastest retrograde speed, as a positive number
}

// ChestaSpeeds per planet
var ChestaSpeeds = map[domain.Planet]ChestaRange{
	domain.Sun:     {Min: 0.9528, Max: 1.0194},
	domain.Moon:    {Min: 11.75, Max: 15.40},
	domain.Mercury: {Max: 2.2, MaxRetro: 1.4},
	domain.Venus:   {Max: 1.26, MaxRetro: 0.64},
	domain.Mars:    {Max: 0.79, MaxRetro: 0.41},
	domain.Jupiter: {Max: 0.25, MaxRetro: 0.14},
	domain.Saturn:  {Max: 0.13, MaxRetro: 0.08},
}

// CombustionOrb returns the distance from the Sun within which p is combust
func CombustionOrb(p domain.Planet, retrograde bool) float64 {
	switch p {
	case domain.Moon:
		return 12
	case domain.Mars:
		return 17
	case domain.Mercury:
		if retrograde {
			return 12
		}
		return 14
	case domain.Jupiter:
		return 11
	case domain.Venus:
		return 10
	case domain.Saturn:
		return 15
	default:
		return 0
	}
}

// CazimiOrb is the heart-of-the-Sun distance
const CazimiOrb = 1.0

// DayLords indexed by time.Weekday (Sunday = 0)
var DayLords = [7]domain.Planet{domain.Sun, domain.Moon, domain.Mars, domain.Mercury, domain.Jupiter, domain.Venus, domain.Saturn}

// ChaldeanOrder is the descending orbital-period order used for horas
var ChaldeanOrder = []domain.Planet{domain.Saturn, domain.Jupiter, domain.Mars, domain.Sun, domain.Venus, domain.Mercury, domain.Moon}

// HoraLord returns the lord of the n-th hora (0-based) of a day ruled by dayLord
func HoraLord(dayLord domain.Planet, n int) domain.Planet {
	start := 0
	for i, p := range ChaldeanOrder {
		if p == dayLord {
			start = i
			break
		}
	}
	return ChaldeanOrder[((start+n)%7+7)%7]
}
