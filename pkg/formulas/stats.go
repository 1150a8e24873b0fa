package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// WeightedSum returns the dot product of values and weights.
// Mismatched lengths yield 0.
func WeightedSum(values, weights []float64) float64 {
	if len(values) == 0 || len(values) != len(weights) {
		return 0
	}
	return floats.Dot(values, weights)
}

// Sum of a slice
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Sum(data)
}

// Round2 rounds to two decimal places
func Round2(x float64) float64 {
	return Round(x, 2)
}

// Round rounds half away from zero to prec decimal places
func Round(x float64, prec int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return scalar.Round(x, prec)
}

// Clamp restricts x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Scale linearly maps x from [inLo, inHi] onto [outLo, outHi], clamped
func Scale(x, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	f := Clamp((x-inLo)/(inHi-inLo), 0, 1)
	return outLo + f*(outHi-outLo)
}
