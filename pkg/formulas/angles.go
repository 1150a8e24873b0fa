package formulas

import "math"

// Deg is the radians-per-degree factor
const Deg = math.Pi / 180

// Norm360 normalizes an angle to [0, 360)
func Norm360(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}
	if x >= 360 {
		x = 0
	}
	return x
}

// Norm180 normalizes an angle to [-180, 180)
func Norm180(x float64) float64 {
	return Norm360(x+180) - 180
}

// Arc returns the forward (zodiacal) arc from a to b in [0, 360)
func Arc(from, to float64) float64 {
	return Norm360(to - from)
}

// AngularDistance returns the shortest separation between two longitudes in [0, 180]
func AngularDistance(a, b float64) float64 {
	d := Arc(a, b)
	if d > 180 {
		return 360 - d
	}
	return d
}

// InArc reports whether x lies on the forward arc [from, to)
func InArc(x, from, to float64) bool {
	span := Arc(from, to)
	if span == 0 {
		return false
	}
	return Arc(from, x) < span
}

// Sin, Cos and Tan take degrees
func Sin(x float64) float64 { return math.Sin(x * Deg) }
func Cos(x float64) float64 { return math.Cos(x * Deg) }
func Tan(x float64) float64 { return math.Tan(x * Deg) }

// Atan2 returns degrees
func Atan2(y, x float64) float64 { return math.Atan2(y, x) / Deg }

// Asin returns degrees; the argument is clamped to [-1, 1]
func Asin(x float64) float64 { return math.Asin(Clamp(x, -1, 1)) / Deg }
