package ephemeris

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// speedHalfStep is half the central-difference interval used for daily speeds
const speedHalfStep = 0.5

const (
	kmPerAU = 149597870.7
	// light travel time for one AU, in days
	lightDaysPerAU = 0.0057755183
)

var vsopBodies = map[domain.Planet]int{
	domain.Mercury: pp.Mercury,
	domain.Venus:   pp.Venus,
	domain.Mars:    pp.Mars,
	domain.Jupiter: pp.Jupiter,
	domain.Saturn:  pp.Saturn,
}

// Meeus computes apparent positions with the algorithms of Meeus' Astronomical
// Algorithms: ELP-2000 terms for the Moon, the mean lunar node for Rahu, and the solar
// theory for the Sun. Mercury..Saturn use VSOP87 when its files are loaded, mean
// orbital elements otherwise. Instants are UT; ΔT is applied internally.
// After LoadVSOP87 it holds no mutable state.
type Meeus struct {
	log     zerolog.Logger
	earth   *pp.V87Planet
	planets map[domain.Planet]*pp.V87Planet
}

// NewMeeus creates the ephemeris without VSOP87 data
func NewMeeus(log zerolog.Logger) *Meeus {
	return &Meeus{
		log: log.With().Str("component", "ephemeris").Logger(),
	}
}

// LoadVSOP87 reads the VSOP87B files (VSOP87B.ear, VSOP87B.mer, ...) from dir.
// It must be called before the ephemeris is shared.
func (m *Meeus) LoadVSOP87(dir string) error {
	earth, err := pp.LoadPlanetPath(pp.Earth, dir)
	if err != nil {
		return fmt.Errorf("failed to load VSOP87 for Earth: %w", err)
	}
	planets := make(map[domain.Planet]*pp.V87Planet, len(vsopBodies))
	for body, idx := range vsopBodies {
		v, err := pp.LoadPlanetPath(idx, dir)
		if err != nil {
			return fmt.Errorf("failed to load VSOP87 for %s: %w", body, err)
		}
		planets[body] = v
	}
	m.earth, m.planets = earth, planets
	m.log.Info().Str("dir", dir).Msg("Loaded VSOP87 planetary theory")
	return nil
}

// HasVSOP87 reports whether planets come from VSOP87
func (m *Meeus) HasVSOP87() bool {
	return m.earth != nil
}

// Position implements Ephemeris
func (m *Meeus) Position(jd float64, body domain.Planet, flags Flag) (Position, error) {
	if !body.Valid() {
		return Position{}, domain.Malformed("ephemeris.Position", body.String(), "unknown body")
	}
	if err := CheckRange("ephemeris.Position", jd, bodySubject(body, jd)); err != nil {
		return Position{}, err
	}

	lon, lat, dist := m.tropical(body, jd)
	pos := Position{Body: body, Longitude: lon, Latitude: lat, Distance: dist}

	if flags&FlagEquatorial != 0 {
		pos.RightAscension, pos.Declination = EclipticToEquatorial(lon, lat, Obliquity(jd))
	}

	if flags&FlagSidereal != 0 {
		pos.Longitude = formulas.Norm360(lon - LahiriAyanamsa(jd))
	}

	if flags&FlagSpeed != 0 {
		pos.Speed = m.speed(jd, body, flags&FlagSidereal != 0)
	}

	return pos, nil
}

// tropical returns apparent geocentric ecliptic coordinates of date, distance in AU.
// Nodes carry no latitude or distance.
func (m *Meeus) tropical(body domain.Planet, jd float64) (lon, lat, dist float64) {
	jde := terrestrial(jd)

	switch body {
	case domain.Sun:
		if m.earth != nil {
			l, b, r := solar.ApparentVSOP87(m.earth, jde)
			return formulas.Norm360(l.Deg()), b.Deg(), r
		}
		t := base.J2000Century(jde)
		return formulas.Norm360(solar.ApparentLongitude(t).Deg()), 0, solar.Radius(t)
	case domain.Rahu:
		return formulas.Norm360(moonposition.Node(jde).Deg()), 0, 0
	case domain.Ketu:
		return formulas.Norm360(moonposition.Node(jde).Deg() + 180), 0, 0
	}

	switch {
	case body == domain.Moon:
		l, b, d := moonposition.Position(jde)
		lon, lat, dist = l.Deg(), b.Deg(), d/kmPerAU
	case m.earth != nil:
		lon, lat, dist = m.vsop87(body, jde)
	default:
		lon, lat, dist = keplerPosition(body, jde)
	}

	dPsi, _ := nutation.Nutation(jde)
	return formulas.Norm360(lon + dPsi.Deg()), lat, dist
}

// vsop87 returns geometric geocentric coordinates corrected for light time
func (m *Meeus) vsop87(body domain.Planet, jde float64) (lon, lat, dist float64) {
	l0, b0, r0 := m.earth.Position(jde)
	earth := rectangular(l0.Deg(), b0.Deg(), r0)
	planet := m.planets[body]

	tau := 0.0
	var geo vec3
	for i := 0; i < 3; i++ {
		l, b, r := planet.Position(jde - tau)
		helio := rectangular(l.Deg(), b.Deg(), r)
		geo = vec3{x: helio.x - earth.x, y: helio.y - earth.y, z: helio.z - earth.z}
		_, _, dist = spherical(geo)
		tau = dist * lightDaysPerAU
	}
	return spherical(geo)
}

func (m *Meeus) speed(jd float64, body domain.Planet, sidereal bool) float64 {
	before, _, _ := m.tropical(body, jd-speedHalfStep)
	after, _, _ := m.tropical(body, jd+speedHalfStep)
	if sidereal {
		before -= LahiriAyanamsa(jd - speedHalfStep)
		after -= LahiriAyanamsa(jd + speedHalfStep)
	}
	return formulas.Norm180(after-before) / (2 * speedHalfStep)
}

// Ayanamsa implements Ephemeris
func (m *Meeus) Ayanamsa(jd float64) float64 {
	return LahiriAyanamsa(jd)
}

// Houses implements Ephemeris. Placidus is used below 66° latitude, Porphyry above it
// or whenever the semi-arc iteration does not converge.
func (m *Meeus) Houses(jd, lat, lon float64, flags Flag) (HouseFrame, error) {
	if err := CheckRange("ephemeris.Houses", jd, "houses"); err != nil {
		return HouseFrame{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return HouseFrame{}, domain.Malformed("ephemeris.Houses", "coordinates", "lat %.4f lon %.4f", lat, lon)
	}

	frame := angles(jd, lat, lon)
	cusps, ok := placidusCusps(frame, lat)
	if ok {
		frame.System = "placidus"
	} else {
		m.log.Debug().Float64("latitude", lat).Msg("Placidus undefined, using Porphyry cusps")
		cusps = porphyryCusps(frame)
		frame.System = "porphyry"
	}
	frame.Cusps = cusps

	if flags&FlagSidereal != 0 {
		ayan := LahiriAyanamsa(jd)
		frame.Ascendant = formulas.Norm360(frame.Ascendant - ayan)
		frame.MC = formulas.Norm360(frame.MC - ayan)
		for i := range frame.Cusps {
			frame.Cusps[i] = formulas.Norm360(frame.Cusps[i] - ayan)
		}
	}
	return frame, nil
}

// SunRiseSet implements Ephemeris
func (m *Meeus) SunRiseSet(jd, lat, lon float64) (RiseSet, error) {
	if err := CheckRange("ephemeris.SunRiseSet", jd, "sunrise"); err != nil {
		return RiseSet{}, err
	}
	rise, ok := findHorizonCrossing(jd, lat, lon, true)
	if !ok {
		return RiseSet{}, ErrNoRiseSet
	}
	set, ok := findHorizonCrossing(rise, lat, lon, false)
	if !ok {
		return RiseSet{}, ErrNoRiseSet
	}
	return RiseSet{Rise: rise, Set: set}, nil
}
