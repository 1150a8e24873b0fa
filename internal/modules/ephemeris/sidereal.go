package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/aristath/jyotish/pkg/formulas"
)

// Lahiri anchor: 23°14′43.9″ at JD 2435553.5 (1956-03-21), moved by general precession
const (
	lahiriEpochJD = 2435553.5
	lahiriAtEpoch = 23.245524743
)

func precessionArcsec(t float64) float64 {
	return 5028.796195*t + 1.1054348*t*t
}

// LahiriAyanamsa returns the ayanamsa in degrees for a UT Julian day
func LahiriAyanamsa(jd float64) float64 {
	t := julianCenturies(jd)
	t0 := julianCenturies(lahiriEpochJD)
	return lahiriAtEpoch + (precessionArcsec(t)-precessionArcsec(t0))/3600
}

// Obliquity returns the true obliquity of the ecliptic (mean plus nutation) in degrees
func Obliquity(jd float64) float64 {
	jde := terrestrial(jd)
	_, dEps := nutation.Nutation(jde)
	return (nutation.MeanObliquity(jde) + dEps).Deg()
}

// SiderealTime returns Greenwich apparent sidereal time in degrees for a UT Julian day
func SiderealTime(jd float64) float64 {
	return formulas.Norm360(sidereal.Apparent(jd).Sec() / 240)
}

// EclipticToEquatorial converts ecliptic longitude/latitude into right ascension and declination
func EclipticToEquatorial(lon, lat, obliquity float64) (ra, dec float64) {
	eps := obliquity * math.Pi / 180
	alpha, delta := coord.EclToEq(unit.AngleFromDeg(lon), unit.AngleFromDeg(lat), math.Sin(eps), math.Cos(eps))
	return formulas.Norm360(unit.Angle(alpha).Deg()), delta.Deg()
}
