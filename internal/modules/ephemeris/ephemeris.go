// Package ephemeris converts instants and places into sidereal planetary positions,
// house frames and sunrise/sunset times.
package ephemeris

import (
	"errors"
	"fmt"

	"github.com/aristath/jyotish/internal/domain"
)

// Flag selects optional outputs of Position and Houses
type Flag uint8

const (
	// FlagSidereal subtracts the Lahiri ayanamsa from ecliptic longitudes
	FlagSidereal Flag = 1 << iota
	// FlagSpeed fills the daily speed
	FlagSpeed
	// FlagEquatorial fills right ascension and declination
	FlagEquatorial
)

// Supported span: 1600-01-01 .. 2100-01-01
const (
	MinJD = 2305447.5
	MaxJD = 2488069.5
)

// ErrNoRiseSet is returned when the Sun does not cross the horizon (polar day or night)
var ErrNoRiseSet = errors.New("sun does not rise or set")

// Position of a body at an instant
type Position struct {
	Body           domain.Planet `json:"body"`
	Longitude      float64       `json:"longitude"` // degrees, tropical unless FlagSidereal
	Latitude       float64       `json:"latitude"`  // ecliptic latitude, degrees
	Distance       float64       `json:"distance"`  // AU
	Speed          float64       `json:"speed"`     // degrees per day, negative when retrograde
	RightAscension float64       `json:"right_ascension"`
	Declination    float64       `json:"declination"`
}

// HouseFrame holds the angles and twelve cusps of a chart
type HouseFrame struct {
	System    string      `json:"system"` // placidus or porphyry
	Ascendant float64     `json:"ascendant"`
	MC        float64     `json:"mc"`
	RAMC      float64     `json:"ramc"`
	Obliquity float64     `json:"obliquity"`
	Cusps     [12]float64 `json:"cusps"`
}

// RiseSet holds a sunrise and the sunset that follows it, as Julian days (UT)
type RiseSet struct {
	Rise float64 `json:"rise"`
	Set  float64 `json:"set"`
}

// Ephemeris is the astronomical backend used by every layer above it.
// Implementations must be safe for concurrent use.
type Ephemeris interface {
	// Position returns the body's coordinates at a UT Julian day
	Position(jd float64, body domain.Planet, flags Flag) (Position, error)
	// Ayanamsa returns the Lahiri ayanamsa in degrees
	Ayanamsa(jd float64) float64
	// Houses returns ascendant, MC and cusps for a place
	Houses(jd, lat, lon float64, flags Flag) (HouseFrame, error)
	// SunRiseSet returns the first sunrise after jd and the sunset following it
	SunRiseSet(jd, lat, lon float64) (RiseSet, error)
}

// CheckRange fails with ErrEphemerisRange when jd is outside the supported span
func CheckRange(op string, jd float64, subject string) error {
	if jd < MinJD || jd > MaxJD {
		return domain.OutOfRange(op, subject, "%s outside supported span 1600-2100",
			TimeFromJulian(jd).Format("2006-01-02"))
	}
	return nil
}

func bodySubject(body domain.Planet, jd float64) string {
	return fmt.Sprintf("%s at JD %.4f", body, jd)
}
