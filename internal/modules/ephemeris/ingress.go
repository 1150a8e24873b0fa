package ephemeris

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// meanSolarMotion in degrees per day
const meanSolarMotion = 0.9856

func siderealSun(eph Ephemeris, jd float64) (float64, error) {
	pos, err := eph.Position(jd, domain.Sun, FlagSidereal)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

// bisectSun finds the instant in [lo, hi] where the sidereal Sun reaches target
func bisectSun(eph Ephemeris, lo, hi, target float64) (float64, error) {
	for i := 0; i < 50; i++ {
		mid := (lo + hi) / 2
		lon, err := siderealSun(eph, mid)
		if err != nil {
			return 0, err
		}
		if formulas.Norm180(lon-target) >= 0 {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo < 1e-7 {
			break
		}
	}
	return (lo + hi) / 2, nil
}

// SolarIngress returns the latest instant at or before jd when the sidereal Sun stood at target
func SolarIngress(eph Ephemeris, jd, target float64) (float64, error) {
	lon, err := siderealSun(eph, jd)
	if err != nil {
		return 0, err
	}
	back := formulas.Arc(target, lon) / meanSolarMotion
	guess := jd - back
	return bisectSun(eph, guess-3, math.Min(jd, guess+3), target)
}

// SignIngress returns the instant the Sun entered the sign it occupies at jd
func SignIngress(eph Ephemeris, jd float64) (float64, error) {
	lon, err := siderealSun(eph, jd)
	if err != nil {
		return 0, err
	}
	return SolarIngress(eph, jd, math.Floor(lon/30)*30)
}

// SolarReturn returns the instant closest to around when the sidereal Sun returns to target
func SolarReturn(eph Ephemeris, target, around float64) (float64, error) {
	lon, err := siderealSun(eph, around)
	if err != nil {
		return 0, err
	}
	guess := around - formulas.Norm180(lon-target)/meanSolarMotion
	return bisectSun(eph, guess-3, guess+3, target)
}
