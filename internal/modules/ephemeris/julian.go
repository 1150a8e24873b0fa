package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
)

// J2000 is the Julian day of 2000-01-01 12:00 TT
const J2000 = base.J2000

// jd1620 is where the tabulated ΔT values begin
const jd1620 = 2312752.5

// JulianDay converts an instant to a UT Julian day
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// TimeFromJulian converts a UT Julian day back to a UTC instant, to the millisecond
func TimeFromJulian(jd float64) time.Time {
	return julian.JDToTime(jd).UTC().Round(time.Millisecond)
}

// centuries since J2000
func julianCenturies(jd float64) float64 {
	return base.J2000Century(jd)
}

// terrestrial converts a UT Julian day to Terrestrial Time. Dates before 1620 reuse
// the first tabulated ΔT.
func terrestrial(jd float64) float64 {
	switch {
	case jd < jd1620:
		return jd + deltat.Interp10A(jd1620).Sec()/86400
	case jd < J2000:
		return jd + deltat.Interp10A(jd).Sec()/86400
	default:
		year := 2000 + (jd-J2000)/365.25
		return jd + deltat.PolyAfter2000(year).Sec()/86400
	}
}
