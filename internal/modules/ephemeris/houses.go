package ephemeris

import (
	"math"

	"github.com/aristath/jyotish/pkg/formulas"
)

// placidusMaxLatitude is where Placidus cusps stop being defined for some degrees
const placidusMaxLatitude = 66.0

// angles computes the tropical ascendant, MC and RAMC
func angles(jd, lat, lon float64) HouseFrame {
	ramc := formulas.Norm360(SiderealTime(jd) + lon)
	eps := Obliquity(jd)

	asc := formulas.Norm360(formulas.Atan2(
		formulas.Cos(ramc),
		-(formulas.Sin(ramc)*formulas.Cos(eps) + formulas.Tan(lat)*formulas.Sin(eps)),
	))
	mc := formulas.Norm360(formulas.Atan2(formulas.Sin(ramc), formulas.Cos(ramc)*formulas.Cos(eps)))

	return HouseFrame{Ascendant: asc, MC: mc, RAMC: ramc, Obliquity: eps}
}

// placidusCusps trisects the diurnal and nocturnal semi-arcs iteratively
func placidusCusps(frame HouseFrame, lat float64) ([12]float64, bool) {
	var cusps [12]float64
	if math.Abs(lat) > placidusMaxLatitude {
		return cusps, false
	}

	cusps[0] = frame.Ascendant
	cusps[9] = frame.MC
	cusps[6] = formulas.Norm360(frame.Ascendant + 180)
	cusps[3] = formulas.Norm360(frame.MC + 180)

	var ok11, ok12, ok2, ok3 bool
	cusps[10], ok11 = semiArcCusp(frame, lat, 1.0/3, false)
	cusps[11], ok12 = semiArcCusp(frame, lat, 2.0/3, false)
	cusps[1], ok2 = semiArcCusp(frame, lat, 1.0/3, true)
	cusps[2], ok3 = semiArcCusp(frame, lat, 2.0/3, true)
	if !(ok11 && ok12 && ok2 && ok3) {
		return cusps, false
	}

	cusps[4] = formulas.Norm360(cusps[10] + 180)
	cusps[5] = formulas.Norm360(cusps[11] + 180)
	cusps[7] = formulas.Norm360(cusps[1] + 180)
	cusps[8] = formulas.Norm360(cusps[2] + 180)
	return cusps, true
}

func semiArcCusp(frame HouseFrame, lat, fraction float64, below bool) (float64, bool) {
	eps := frame.Obliquity
	lam := formulas.Norm360(frame.RAMC + 30)
	if below {
		lam = formulas.Norm360(frame.RAMC + 120)
	}

	for i := 0; i < 60; i++ {
		dec := formulas.Asin(formulas.Sin(eps) * formulas.Sin(lam))
		ad := formulas.Asin(formulas.Tan(lat) * formulas.Tan(dec))
		dsa := 90 + ad

		var ra float64
		if below {
			ra = frame.RAMC + dsa + fraction*(180-dsa)
		} else {
			ra = frame.RAMC + fraction*dsa
		}

		next := formulas.Norm360(formulas.Atan2(formulas.Sin(ra), formulas.Cos(ra)*formulas.Cos(eps)))
		if math.IsNaN(next) {
			return 0, false
		}
		if formulas.AngularDistance(next, lam) < 1e-9 {
			return next, true
		}
		lam = next
	}
	return lam, true
}

// porphyryCusps trisects each quadrant in ecliptic longitude
func porphyryCusps(frame HouseFrame) [12]float64 {
	var cusps [12]float64
	asc := frame.Ascendant
	ic := formulas.Norm360(frame.MC + 180)
	dsc := formulas.Norm360(asc + 180)

	q1 := formulas.Arc(asc, ic)
	q2 := formulas.Arc(ic, dsc)

	cusps[0] = asc
	cusps[1] = formulas.Norm360(asc + q1/3)
	cusps[2] = formulas.Norm360(asc + 2*q1/3)
	cusps[3] = ic
	cusps[4] = formulas.Norm360(ic + q2/3)
	cusps[5] = formulas.Norm360(ic + 2*q2/3)
	for i := 6; i < 12; i++ {
		cusps[i] = formulas.Norm360(cusps[i-6] + 180)
	}
	return cusps
}
