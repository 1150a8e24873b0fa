package tables

import "github.com/aristath/jyotish/internal/domain"

// Contributor is a point that donates bindus: the seven planets plus the ascendant
type Contributor int

// Ascendant contributor follows the seven planets
const AscendantContributor Contributor = 7

// BinduPlaces lists, for each target planet's Bhinnashtakavarga and each contributor,
// the houses counted from the contributor that receive a bindu.
// Rows follow domain.ClassicalPlanets then the ascendant.
var BinduPlaces = map[domain.Planet][8][]int{
	domain.Sun: {
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 6, 10, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 5, 6, 9, 10, 11, 12},
		{5, 6, 9, 11},
		{6, 7, 12},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{3, 4, 6, 10, 11, 12},
	},
	domain.Moon: {
		{3, 6, 7, 8, 10, 11},
		{1, 3, 6, 7, 10, 11},
		{2, 3, 5, 6, 9, 10, 11},
		{1, 3, 4, 5, 7, 8, 10, 11},
		{1, 4, 7, 8, 10, 11, 12},
		{3, 4, 5, 7, 9, 10, 11},
		{3, 5, 6, 11},
		{3, 6, 10, 11},
	},
	domain.Mars: {
		{3, 5, 6, 10, 11},
		{3, 6, 11},
		{1, 2, 4, 7, 8, 10, 11},
		{3, 5, 6, 11},
		{6, 10, 11, 12},
		{6, 8, 11, 12},
		{1, 4, 7, 8, 9, 10, 11},
		{1, 3, 6, 10, 11},
	},
	domain.Mercury: {
		{5, 6, 9, 11, 12},
		{2, 4, 6, 8, 10, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{1, 3, 5, 6, 9, 10, 11, 12},
		{6, 8, 11, 12},
		{1, 2, 3, 4, 5, 8, 9, 11},
		{1, 2, 4, 7, 8, 9, 10, 11},
		{1, 2, 4, 6, 8, 10, 11},
	},
	domain.Jupiter: {
		{1, 2, 3, 4, 7, 8, 9, 10, 11},
		{2, 5, 7, 9, 11},
		{1, 2, 4, 7, 8, 10, 11},
		{1, 2, 4, 5, 6, 9, 10, 11},
		{1, 2, 3, 4, 7, 8, 10, 11},
		{2, 5, 6, 9, 10, 11},
		{3, 5, 6, 12},
		{1, 2, 4, 5, 6, 7, 9, 10, 11},
	},
	domain.Venus: {
		{8, 11, 12},
		{1, 2, 3, 4, 5, 8, 9, 11, 12},
		{3, 5, 6, 9, 11, 12},
		{3, 5, 6, 9, 11},
		{5, 8, 9, 10, 11},
		{1, 2, 3, 4, 5, 8, 9, 10, 11},
		{3, 4, 5, 8, 9, 10, 11},
		{1, 2, 3, 4, 5, 8, 9, 11},
	},
	domain.Saturn: {
		{1, 2, 4, 7, 8, 10, 11},
		{3, 6, 11},
		{3, 5, 6, 10, 11, 12},
		{6, 8, 9, 10, 11, 12},
		{5, 6, 11, 12},
		{6, 11, 12},
		{3, 5, 6, 11},
		{1, 3, 4, 6, 10, 11},
	},
}

// BinduTotal is the fixed number of bindus in every Sarvashtakavarga
const BinduTotal = 337
