// Package tables holds the classical constants every layer of the engine reads:
// dignity tables, friendships, natural strengths, dasha years and bindu tables.
package tables

import "github.com/aristath/jyotish/internal/domain"

// ExaltationDegree is the sidereal longitude of deepest exaltation
var ExaltationDegree = map[domain.Planet]float64{
	domain.Sun:     10,  // 10° Aries
	domain.Moon:    33,  // 3° Taurus
	domain.Mars:    298, // 28° Capricorn
	domain.Mercury: 165, // 15° Virgo
	domain.Jupiter: 95,  // 5° Cancer
	domain.Venus:   357, // 27° Pisces
	domain.Saturn:  200, // 20° Libra
	domain.Rahu:    50,  // 20° Taurus
	domain.Ketu:    230, // 20° Scorpio
}

// ExaltationSign returns the sign of exaltation
func ExaltationSign(p domain.Planet) domain.Sign {
	return domain.SignOf(ExaltationDegree[p])
}

// DebilitationSign is the sign opposite exaltation
func DebilitationSign(p domain.Planet) domain.Sign {
	return ExaltationSign(p).Add(6)
}

// DebilitationDegree is the longitude of deepest debilitation
func DebilitationDegree(p domain.Planet) float64 {
	d := ExaltationDegree[p] + 180
	if d >= 360 {
		d -= 360
	}
	return d
}

// MoolatrikonaRange is the sign and degree span of a planet's moolatrikona
type MoolatrikonaRange struct {
	Sign domain.Sign
	From float64
	To   float64
}

// Moolatrikona ranges for the seven classical planets
var Moolatrikona = map[domain.Planet]MoolatrikonaRange{
	domain.Sun:     {domain.Leo, 0, 20},
	domain.Moon:    {domain.Taurus, 3, 30},
	domain.Mars:    {domain.Aries, 0, 12},
	domain.Mercury: {domain.Virgo, 15, 20},
	domain.Jupiter: {domain.Sagittarius, 0, 10},
	domain.Venus:   {domain.Libra, 0, 15},
	domain.Saturn:  {domain.Aquarius, 0, 20},
}

// InMoolatrikona reports whether a longitude falls in the planet's moolatrikona span
func InMoolatrikona(p domain.Planet, lon float64) bool {
	mt, ok := Moolatrikona[p]
	if !ok || domain.SignOf(lon) != mt.Sign {
		return false
	}
	deg := lon - float64(mt.Sign)*30
	return deg >= mt.From && deg < mt.To
}

// OwnSigns lists the signs ruled by each planet. Nodes follow the co-lordship convention.
var OwnSigns = map[domain.Planet][]domain.Sign{
	domain.Sun:     {domain.Leo},
	domain.Moon:    {domain.Cancer},
	domain.Mars:    {domain.Aries, domain.Scorpio},
	domain.Mercury: {domain.Gemini, domain.Virgo},
	domain.Jupiter: {domain.Sagittarius, domain.Pisces},
	domain.Venus:   {domain.Taurus, domain.Libra},
	domain.Saturn:  {domain.Capricorn, domain.Aquarius},
	domain.Rahu:    {domain.Aquarius},
	domain.Ketu:    {domain.Scorpio},
}

// IsOwnSign reports whether s is ruled by p
func IsOwnSign(p domain.Planet, s domain.Sign) bool {
	for _, own := range OwnSigns[p] {
		if own == s {
			return true
		}
	}
	return false
}

// Relation is a friendship degree, -2 (great enemy) .. +2 (great friend)
type Relation int

const (
	GreatEnemy  Relation = -2
	Enemy       Relation = -1
	Neutral     Relation = 0
	Friend      Relation = 1
	GreatFriend Relation = 2
)

func (r Relation) String() string {
	switch r {
	case GreatEnemy:
		return "great_enemy"
	case Enemy:
		return "enemy"
	case Friend:
		return "friend"
	case GreatFriend:
		return "great_friend"
	default:
		return "neutral"
	}
}

// MarshalText renders the relation name
func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type friendship struct {
	friends []domain.Planet
	enemies []domain.Planet
}

var naturalFriendship = map[domain.Planet]friendship{
	domain.Sun:     {[]domain.Planet{domain.Moon, domain.Mars, domain.Jupiter}, []domain.Planet{domain.Venus, domain.Saturn, domain.Rahu, domain.Ketu}},
	domain.Moon:    {[]domain.Planet{domain.Sun, domain.Mercury}, []domain.Planet{domain.Rahu, domain.Ketu}},
	domain.Mars:    {[]domain.Planet{domain.Sun, domain.Moon, domain.Jupiter}, []domain.Planet{domain.Mercury, domain.Rahu}},
	domain.Mercury: {[]domain.Planet{domain.Sun, domain.Venus, domain.Rahu}, []domain.Planet{domain.Moon}},
	domain.Jupiter: {[]domain.Planet{domain.Sun, domain.Moon, domain.Mars}, []domain.Planet{domain.Mercury, domain.Venus}},
	domain.Venus:   {[]domain.Planet{domain.Mercury, domain.Saturn, domain.Rahu, domain.Ketu}, []domain.Planet{domain.Sun, domain.Moon}},
	domain.Saturn:  {[]domain.Planet{domain.Mercury, domain.Venus, domain.Rahu, domain.Ketu}, []domain.Planet{domain.Sun, domain.Moon, domain.Mars}},
	domain.Rahu:    {[]domain.Planet{domain.Mercury, domain.Venus, domain.Saturn}, []domain.Planet{domain.Sun, domain.Moon, domain.Mars}},
	domain.Ketu:    {[]domain.Planet{domain.Mars, domain.Venus, domain.Saturn}, []domain.Planet{domain.Sun, domain.Moon}},
}

// Natural returns the naisargika relationship of p toward q: friend, neutral or enemy
func Natural(p, q domain.Planet) Relation {
	if p == q {
		return Neutral
	}
	f := naturalFriendship[p]
	for _, x := range f.friends {
		if x == q {
			return Friend
		}
	}
	for _, x := range f.enemies {
		if x == q {
			return Enemy
		}
	}
	return Neutral
}

// Temporal returns the tatkalika relationship: friend when q sits 2,3,4,10,11 or 12 signs from p
func Temporal(pSign, qSign domain.Sign) Relation {
	switch domain.HouseDistance(pSign, qSign) {
	case 2, 3, 4, 10, 11, 12:
		return Friend
	default:
		return Enemy
	}
}

// Compound combines natural and temporal into the five-fold (Panchadha) relationship
func Compound(natural, temporal Relation) Relation {
	return natural + temporal
}
