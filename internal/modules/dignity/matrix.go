package dignity

import (
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/tables"
)

// Friendship is one cell of the Panchadha matrix
type Friendship struct {
	Natural  tables.Relation `json:"natural"`
	Temporal tables.Relation `json:"temporal"`
	Compound tables.Relation `json:"compound"`
}

// Matrix is the Panchadha relation of every planet toward every other planet
type Matrix map[domain.Planet]map[domain.Planet]Friendship

// BuildMatrix computes the five-fold friendship matrix from the sign placements of c
func BuildMatrix(c *chart.Chart) Matrix {
	m := make(Matrix, len(c.Planets))
	for _, p := range domain.AllPlanets {
		pp, ok := c.Lookup(p)
		if !ok {
			continue
		}
		row := make(map[domain.Planet]Friendship, len(c.Planets)-1)
		for _, q := range domain.AllPlanets {
			qp, ok := c.Lookup(q)
			if !ok || p == q {
				continue
			}
			f := Friendship{
				Natural:  tables.Natural(p, q),
				Temporal: tables.Temporal(pp.Sign, qp.Sign),
			}
			f.Compound = tables.Compound(f.Natural, f.Temporal)
			row[q] = f
		}
		m[p] = row
	}
	return m
}

// Relation returns the compound relation of p toward q
func (m Matrix) Relation(p, q domain.Planet) tables.Relation {
	return m[p][q].Compound
}

// Friends lists the planets p regards as friend or great friend, in canonical order
func (m Matrix) Friends(p domain.Planet) []domain.Planet {
	var out []domain.Planet
	for _, q := range domain.AllPlanets {
		if f, ok := m[p][q]; ok && f.Compound > tables.Neutral {
			out = append(out, q)
		}
	}
	return out
}

// Enemies lists the planets p regards as enemy or great enemy
func (m Matrix) Enemies(p domain.Planet) []domain.Planet {
	var out []domain.Planet
	for _, q := range domain.AllPlanets {
		if f, ok := m[p][q]; ok && f.Compound < tables.Neutral {
			out = append(out, q)
		}
	}
	return out
}
