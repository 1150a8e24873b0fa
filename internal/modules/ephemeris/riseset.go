package ephemeris

import (
	"errors"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/aristath/jyotish/pkg/formulas"
)

// Apparent altitude of the Sun's upper limb at rise/set, including refraction
const sunriseAltitude = -0.8333

const (
	scanStep  = 1.0 / 144 // ten minutes
	scanSteps = 2 * 144   // two days
)

func sunAltitude(jd, lat, lon float64) float64 {
	alpha, delta := solar.ApparentEquatorial(terrestrial(jd))
	ra, dec := unit.Angle(alpha).Deg(), delta.Deg()
	ha := formulas.Norm360(SiderealTime(jd) + lon - ra)
	return formulas.Asin(formulas.Sin(lat)*formulas.Sin(dec) + formulas.Cos(lat)*formulas.Cos(dec)*formulas.Cos(ha))
}

// findHorizonCrossing scans forward from jd in ten-minute steps for the next rising
// (or setting) of the Sun and refines it by bisection
func findHorizonCrossing(jd, lat, lon float64, rising bool) (float64, bool) {
	prev := sunAltitude(jd, lat, lon) - sunriseAltitude
	for i := 1; i <= scanSteps; i++ {
		t := jd + float64(i)*scanStep
		cur := sunAltitude(t, lat, lon) - sunriseAltitude
		crossed := (rising && prev < 0 && cur >= 0) || (!rising && prev >= 0 && cur < 0)
		if crossed {
			lo, hi := t-scanStep, t
			for k := 0; k < 40; k++ {
				mid := (lo + hi) / 2
				v := sunAltitude(mid, lat, lon) - sunriseAltitude
				if (v >= 0) == rising {
					hi = mid
				} else {
					lo = mid
				}
			}
			return (lo + hi) / 2, true
		}
		prev = cur
	}
	return 0, false
}

// VedicDay is the sunrise-to-sunrise day containing an instant
type VedicDay struct {
	Sunrise     float64      `json:"sunrise"`
	Sunset      float64      `json:"sunset"`
	NextSunrise float64      `json:"next_sunrise"`
	Weekday     time.Weekday `json:"weekday"`
	Approximate bool         `json:"approximate"` // true when the Sun did not rise and 06:00/18:00 local mean time was used
}

// IsDaytime reports whether jd falls between sunrise and sunset
func (d VedicDay) IsDaytime(jd float64) bool {
	return jd >= d.Sunrise && jd < d.Sunset
}

// VedicDayAt returns the Vedic day containing jd. The weekday belongs to the most
// recent sunrise, so moments before local sunrise fall on the previous weekday.
func VedicDayAt(eph Ephemeris, jd, lat, lon float64) (VedicDay, error) {
	rise, err := latestSunrise(eph, jd, lat, lon)
	if errors.Is(err, ErrNoRiseSet) {
		return approximateDay(jd, lon), nil
	}
	if err != nil {
		return VedicDay{}, err
	}

	next, err := eph.SunRiseSet(rise.Rise+scanStep, lat, lon)
	if err != nil {
		if errors.Is(err, ErrNoRiseSet) {
			return approximateDay(jd, lon), nil
		}
		return VedicDay{}, err
	}

	return VedicDay{
		Sunrise:     rise.Rise,
		Sunset:      rise.Set,
		NextSunrise: next.Rise,
		Weekday:     localMeanTime(rise.Rise, lon).Weekday(),
	}, nil
}

// VedicWeekday returns the sunrise-anchored weekday of jd
func VedicWeekday(eph Ephemeris, jd, lat, lon float64) (time.Weekday, error) {
	day, err := VedicDayAt(eph, jd, lat, lon)
	if err != nil {
		return 0, err
	}
	return day.Weekday, nil
}

func latestSunrise(eph Ephemeris, jd, lat, lon float64) (RiseSet, error) {
	start := jd - 1.0
	var rs RiseSet
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		rs, err = eph.SunRiseSet(start, lat, lon)
		if err != nil {
			return RiseSet{}, err
		}
		if rs.Rise <= jd {
			break
		}
		start -= 1.0
	}
	if rs.Rise > jd {
		return RiseSet{}, ErrNoRiseSet
	}

	// a later sunrise may still precede jd when the first search started early
	for {
		next, err := eph.SunRiseSet(rs.Rise+scanStep, lat, lon)
		if err != nil || next.Rise > jd {
			return rs, nil
		}
		rs = next
	}
}

func localMeanTime(jd, lon float64) time.Time {
	return TimeFromJulian(jd + lon/360)
}

func approximateDay(jd, lon float64) VedicDay {
	offset := lon / 360
	localMidnight := math.Floor(jd+offset-0.5) + 0.5 - offset
	rise := localMidnight + 0.25
	if rise > jd {
		rise -= 1
	}
	return VedicDay{
		Sunrise:     rise,
		Sunset:      rise + 0.5,
		NextSunrise: rise + 1,
		Weekday:     localMeanTime(rise, lon).Weekday(),
		Approximate: true,
	}
}
