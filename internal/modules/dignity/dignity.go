// Package dignity classifies planets in their signs across the divisional charts and
// builds the five-fold (Panchadha) friendship matrix.
package dignity

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/internal/modules/varga"
)

// Dignity is the planet-in-sign strength category
type Dignity string

const (
	Exalted      Dignity = "exalted"
	Moolatrikona Dignity = "moolatrikona"
	OwnSign      Dignity = "own_sign"
	GreatFriend  Dignity = "great_friend"
	Friend       Dignity = "friend"
	Neutral      Dignity = "neutral"
	Enemy        Dignity = "enemy"
	GreatEnemy   Dignity = "great_enemy"
	Debilitated  Dignity = "debilitated"
)

// Score maps a dignity onto the [10..100] scale used by the planet analyzer
func (d Dignity) Score() float64 {
	switch d {
	case Exalted:
		return 100
	case Moolatrikona:
		return 90
	case OwnSign:
		return 80
	case GreatFriend:
		return 70
	case Friend:
		return 60
	case Neutral:
		return 50
	case Enemy:
		return 35
	case GreatEnemy:
		return 25
	case Debilitated:
		return 10
	default:
		return 50
	}
}

// IsStrong reports exalted, moolatrikona or own sign
func (d Dignity) IsStrong() bool {
	return d == Exalted || d == Moolatrikona || d == OwnSign
}

// Saptavargaja points on the cumulative Sripati scale
var saptavargajaPoints = map[tables.Relation]float64{
	tables.GreatFriend: 22.5,
	tables.Friend:      15,
	tables.Neutral:     7.5,
	tables.Enemy:       3.75,
	tables.GreatEnemy:  1.875,
}

const (
	moolatrikonaPoints = 45.0
	ownSignPoints      = 30.0
)

// Record is the dignity of one planet in one division
type Record struct {
	Planet   domain.Planet   `json:"planet"`
	Division int             `json:"division"`
	Sign     domain.Sign     `json:"sign"`
	SignName string          `json:"sign_name"`
	SignLord domain.Planet   `json:"sign_lord"`
	Dignity  Dignity         `json:"dignity"`
	Relation tables.Relation `json:"relation"` // compound relation toward the sign lord
	Points   float64         `json:"points"`   // Saptavargaja contribution
}

// Classify returns the dignity of p at sign s. Exaltation and debilitation take
// precedence; moolatrikona is only considered in D1 where the degree is meaningful.
func Classify(p domain.Planet, s domain.Sign, lon float64, division int, rel tables.Relation) Dignity {
	switch {
	case s == tables.ExaltationSign(p):
		return Exalted
	case s == tables.DebilitationSign(p):
		return Debilitated
	case division == 1 && tables.InMoolatrikona(p, lon):
		return Moolatrikona
	case tables.IsOwnSign(p, s):
		return OwnSign
	}
	return fromRelation(rel)
}

func fromRelation(rel tables.Relation) Dignity {
	switch rel {
	case tables.GreatFriend:
		return GreatFriend
	case tables.Friend:
		return Friend
	case tables.Enemy:
		return Enemy
	case tables.GreatEnemy:
		return GreatEnemy
	default:
		return Neutral
	}
}

// Of computes the dignity record of p in chart c
func Of(c *chart.Chart, p domain.Planet) (Record, error) {
	pos, ok := c.Lookup(p)
	if !ok {
		return Record{}, domain.Invariant("dignity.Of", p.String(), "planet missing from %s", domain.DivisionCode(c.Division))
	}
	lord := pos.Sign.Lord()
	rel := tables.Natural(p, lord)
	if lordPos, ok := c.Lookup(lord); ok && lord != p {
		rel = tables.Compound(rel, tables.Temporal(pos.Sign, lordPos.Sign))
	}

	r := Record{
		Planet:   p,
		Division: c.Division,
		Sign:     pos.Sign,
		SignName: pos.SignName,
		SignLord: lord,
		Relation: rel,
		Dignity:  Classify(p, pos.Sign, pos.Longitude, c.Division, rel),
	}

	switch {
	case c.Division == 1 && tables.InMoolatrikona(p, pos.Longitude):
		r.Points = moolatrikonaPoints
	case tables.IsOwnSign(p, pos.Sign):
		r.Points = ownSignPoints
	default:
		r.Points = saptavargajaPoints[rel]
	}
	return r, nil
}

// Table holds dignity records for every planet in every computed division
type Table map[int]map[domain.Planet]Record

// Build computes dignities for all planets across the bundle
func Build(b varga.Bundle) (Table, error) {
	t := make(Table, len(b))
	for _, n := range b.Divisions() {
		c := b[n]
		row := make(map[domain.Planet]Record, len(c.Planets))
		for _, p := range domain.AllPlanets {
			if _, ok := c.Lookup(p); !ok {
				continue
			}
			r, err := Of(c, p)
			if err != nil {
				return nil, err
			}
			row[p] = r
		}
		t[n] = row
	}
	return t, nil
}

// Get returns the record of p in Dn
func (t Table) Get(n int, p domain.Planet) (Record, bool) {
	r, ok := t[n][p]
	return r, ok
}

// Saptavargaja sums the Saptavarga points of p
func (t Table) Saptavargaja(p domain.Planet) float64 {
	total := 0.0
	for _, n := range varga.Saptavarga {
		total += t[n][p].Points
	}
	return total
}

// VargaScore counts the vargas of the Shadvarga in which p is strong (own, MT or exalted)
func (t Table) VargaScore(p domain.Planet) int {
	count := 0
	for _, n := range varga.Shadvarga {
		if r, ok := t[n][p]; ok && r.Dignity.IsStrong() {
			count++
		}
	}
	return count
}
