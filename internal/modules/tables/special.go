package tables

import "github.com/aristath/jyotish/internal/domain"

// YogiOffset is the arc from Yogi to Avayogi (186°40′)
const YogiOffset = 186.0 + 40.0/60.0

// DagdhaOffset is the arc from Avayogi to the Dagdha point
const DagdhaOffset = 12.0

// TithiShunyaSigns are the signs rendered void by each tithi of a paksha (1..15)
var TithiShunyaSigns = map[int][]domain.Sign{
	1:  {domain.Libra, domain.Capricorn},
	2:  {domain.Sagittarius, domain.Pisces},
	3:  {domain.Leo, domain.Capricorn},
	4:  {domain.Taurus, domain.Aquarius},
	5:  {domain.Gemini, domain.Virgo},
	6:  {domain.Aries, domain.Leo},
	7:  {domain.Cancer, domain.Sagittarius},
	8:  {domain.Gemini, domain.Virgo},
	9:  {domain.Leo, domain.Scorpio},
	10: {domain.Leo, domain.Scorpio},
	11: {domain.Sagittarius, domain.Pisces},
	12: {domain.Libra, domain.Capricorn},
	13: {domain.Taurus, domain.Leo},
	14: {domain.Gemini, domain.Virgo, domain.Sagittarius, domain.Pisces},
	15: nil,
}

// GandantaJunction is a water/fire sign boundary
type GandantaJunction struct {
	Name      string
	Longitude float64
}

// GandantaJunctions and the half-width of each zone (one navamsa on either side)
var GandantaJunctions = []GandantaJunction{
	{"Pisces-Aries", 0},
	{"Cancer-Leo", 120},
	{"Scorpio-Sagittarius", 240},
}

// GandantaHalfWidth is 3°20′
const GandantaHalfWidth = 10.0 / 3.0

// PushkaraNavamsaSigns are the navamsa signs that are blessed, keyed by the element of the rashi
var PushkaraNavamsaSigns = map[domain.Element][]domain.Sign{
	domain.Fire:  {domain.Libra, domain.Sagittarius},
	domain.Earth: {domain.Pisces, domain.Taurus},
	domain.Air:   {domain.Pisces, domain.Taurus},
	domain.Water: {domain.Cancer, domain.Virgo},
}

// PushkaraBhaga is the single most auspicious degree of each sign
var PushkaraBhaga = map[domain.Sign]float64{
	domain.Aries:       21,
	domain.Taurus:      14,
	domain.Gemini:      18,
	domain.Cancer:      8,
	domain.Leo:         19,
	domain.Virgo:       9,
	domain.Libra:       24,
	domain.Scorpio:     11,
	domain.Sagittarius: 23,
	domain.Capricorn:   14,
	domain.Aquarius:    19,
	domain.Pisces:      9,
}

// BadhakaHouse returns the obstruction house for an ascendant sign
func BadhakaHouse(asc domain.Sign) int {
	switch asc.Modality() {
	case domain.Movable:
		return 11
	case domain.Fixed:
		return 9
	default:
		return 7
	}
}

// NavataraNames are the nine taras counted from the birth nakshatra
var NavataraNames = []string{
	"Janma", "Sampat", "Vipat", "Kshema", "Pratyak", "Sadhana", "Naidhana", "Mitra", "Parama Mitra",
}

// MaleficTaras are the 1-based tara numbers considered harmful
var MaleficTaras = map[int]bool{3: true, 5: true, 7: true}

// NadiAges are the classical ages at which planets mature and deliver results
var NadiAges = map[domain.Planet]int{
	domain.Jupiter: 16,
	domain.Sun:     22,
	domain.Moon:    24,
	domain.Venus:   25,
	domain.Mars:    28,
	domain.Mercury: 32,
	domain.Saturn:  36,
	domain.Rahu:    42,
	domain.Ketu:    48,
}
