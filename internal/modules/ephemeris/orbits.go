package ephemeris

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// Orbital elements of date, d days from 1999-12-31 0h UT
type elements struct {
	node    float64 // N, longitude of ascending node
	incl    float64 // i, inclination
	peri    float64 // w, argument of perihelion
	axis    float64 // a, semi-major axis (AU)
	ecc     float64 // e
	anomaly float64 // M, mean anomaly
}

const elementEpochJD = 2451543.5

func orbitalElements(body domain.Planet, d float64) elements {
	switch body {
	case domain.Sun:
		return elements{0, 0, 282.9404 + 4.70935e-5*d, 1.0, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
	case domain.Mercury:
		return elements{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	case domain.Venus:
		return elements{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	case domain.Mars:
		return elements{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	case domain.Jupiter:
		return elements{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	case domain.Saturn:
		return elements{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	}
	return elements{}
}

// eccentricAnomaly solves Kepler's equation by Newton iteration, in degrees
func eccentricAnomaly(m, e float64) float64 {
	m = formulas.Norm360(m)
	ed := e / formulas.Deg
	E := m + ed*formulas.Sin(m)*(1+e*formulas.Cos(m))
	for i := 0; i < 30; i++ {
		next := E - (E-ed*formulas.Sin(E)-m)/(1-e*formulas.Cos(E))
		if math.Abs(next-E) < 1e-9 {
			return next
		}
		E = next
	}
	return E
}

type vec3 struct{ x, y, z float64 }

// orbitPosition returns rectangular coordinates in the orbit's reference frame
// (heliocentric)
func orbitPosition(el elements) vec3 {
	E := eccentricAnomaly(el.anomaly, el.ecc)
	xv := el.axis * (formulas.Cos(E) - el.ecc)
	yv := el.axis * math.Sqrt(1-el.ecc*el.ecc) * formulas.Sin(E)
	v := formulas.Atan2(yv, xv)
	r := math.Hypot(xv, yv)

	vw := v + el.peri
	return vec3{
		x: r * (formulas.Cos(el.node)*formulas.Cos(vw) - formulas.Sin(el.node)*formulas.Sin(vw)*formulas.Cos(el.incl)),
		y: r * (formulas.Sin(el.node)*formulas.Cos(vw) + formulas.Cos(el.node)*formulas.Sin(vw)*formulas.Cos(el.incl)),
		z: r * formulas.Sin(vw) * formulas.Sin(el.incl),
	}
}

func spherical(v vec3) (lon, lat, r float64) {
	lon = formulas.Norm360(formulas.Atan2(v.y, v.x))
	lat = formulas.Atan2(v.z, math.Hypot(v.x, v.y))
	r = math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	return lon, lat, r
}

func rectangular(lon, lat, r float64) vec3 {
	return vec3{
		x: r * formulas.Cos(lat) * formulas.Cos(lon),
		y: r * formulas.Cos(lat) * formulas.Sin(lon),
		z: r * formulas.Sin(lat),
	}
}

// keplerPosition returns geometric geocentric tropical coordinates of Mercury..Saturn from
// mean orbital elements with the main Jupiter/Saturn perturbations. It serves when no
// VSOP87 files are loaded.
func keplerPosition(body domain.Planet, jde float64) (lon, lat, dist float64) {
	d := jde - elementEpochJD

	sun := orbitalElements(domain.Sun, d)
	Es := eccentricAnomaly(sun.anomaly, sun.ecc)
	xv := formulas.Cos(Es) - sun.ecc
	yv := math.Sqrt(1-sun.ecc*sun.ecc) * formulas.Sin(Es)
	sunLon := formulas.Norm360(formulas.Atan2(yv, xv) + sun.peri)
	sunDist := math.Hypot(xv, yv)

	el := orbitalElements(body, d)
	lon, lat, r := spherical(orbitPosition(el))

	mj := orbitalElements(domain.Jupiter, d).anomaly
	ms := orbitalElements(domain.Saturn, d).anomaly
	switch body {
	case domain.Jupiter:
		lon += -0.332*formulas.Sin(2*mj-5*ms-67.6) -
			0.056*formulas.Sin(2*mj-2*ms+21) +
			0.042*formulas.Sin(3*mj-5*ms+21) -
			0.036*formulas.Sin(mj-2*ms) +
			0.022*formulas.Cos(mj-ms) +
			0.023*formulas.Sin(2*mj-3*ms+52) -
			0.016*formulas.Sin(mj-5*ms-69)
	case domain.Saturn:
		lon += 0.812*formulas.Sin(2*mj-5*ms-67.6) -
			0.229*formulas.Cos(2*mj-4*ms-2) +
			0.119*formulas.Sin(mj-2*ms-3) +
			0.046*formulas.Sin(2*mj-6*ms-69) +
			0.014*formulas.Sin(mj-3*ms+32)
		lat += -0.020*formulas.Cos(2*mj-4*ms-2) + 0.018*formulas.Sin(2*mj-6*ms-49)
	}

	helio := rectangular(lon, lat, r)
	geo := vec3{
		x: helio.x + sunDist*formulas.Cos(sunLon),
		y: helio.y + sunDist*formulas.Sin(sunLon),
		z: helio.z,
	}
	return spherical(geo)
}

