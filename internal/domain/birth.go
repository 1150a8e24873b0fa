package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // IANA names must resolve on hosts without zoneinfo
)

// BirthData is the wire form of a birth moment, as received from callers
type BirthData struct {
	Date      string  `json:"date"`               // YYYY-MM-DD
	Time      string  `json:"time"`               // HH:MM or HH:MM:SS, local civil time
	Latitude  float64 `json:"latitude"`           // degrees, north positive
	Longitude float64 `json:"longitude"`          // degrees, east positive
	Timezone  string  `json:"timezone,omitempty"` // "+05:30", "UTC", "Asia/Kolkata"; empty resolves from coordinates
}

// TimezoneResolver resolves a UTC offset from coordinates when no timezone is given
type TimezoneResolver interface {
	Resolve(lat, lon float64, local time.Time) (offsetMinutes int, label string, err error)
}

// LongitudeResolver approximates the zone from longitude, rounded to the nearest half hour
type LongitudeResolver struct{}

// Resolve implements TimezoneResolver
func (LongitudeResolver) Resolve(_, lon float64, _ time.Time) (int, string, error) {
	halfHours := math.Round(lon / 7.5)
	offset := int(halfHours) * 30
	return offset, formatOffset(offset), nil
}

// BirthInput is a validated, immutable birth moment and place
type BirthInput struct {
	date      string
	clock     string
	latitude  float64
	longitude float64
	timezone  string
	offset    int // minutes east of UTC
	utc       time.Time
}

// NewBirthInput validates wire data. A nil resolver falls back to LongitudeResolver.
func NewBirthInput(data BirthData, resolver TimezoneResolver) (BirthInput, error) {
	const op = "NewBirthInput"

	day, err := time.Parse("2006-01-02", strings.TrimSpace(data.Date))
	if err != nil {
		return BirthInput{}, Malformed(op, "date", "expected YYYY-MM-DD, got %q", data.Date)
	}

	h, m, s, err := parseClock(data.Time)
	if err != nil {
		return BirthInput{}, Malformed(op, "time", "%v", err)
	}

	if math.IsNaN(data.Latitude) || data.Latitude < -90 || data.Latitude > 90 {
		return BirthInput{}, Malformed(op, "latitude", "%v not in [-90, 90]", data.Latitude)
	}
	if math.IsNaN(data.Longitude) || data.Longitude < -180 || data.Longitude > 180 {
		return BirthInput{}, Malformed(op, "longitude", "%v not in [-180, 180]", data.Longitude)
	}

	civil := time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, time.UTC)

	offset, label, err := resolveOffset(strings.TrimSpace(data.Timezone), civil, data.Latitude, data.Longitude, resolver)
	if err != nil {
		return BirthInput{}, err
	}

	return BirthInput{
		date:      civil.Format("2006-01-02"),
		clock:     civil.Format("15:04:05"),
		latitude:  data.Latitude,
		longitude: data.Longitude,
		timezone:  label,
		offset:    offset,
		utc:       civil.Add(-time.Duration(offset) * time.Minute),
	}, nil
}

// Date returns the local civil date
func (b BirthInput) Date() string { return b.date }

// Time returns the local civil time as HH:MM:SS
func (b BirthInput) Time() string { return b.clock }

// Latitude in degrees
func (b BirthInput) Latitude() float64 { return b.latitude }

// Longitude in degrees
func (b BirthInput) Longitude() float64 { return b.longitude }

// Timezone returns the normalized timezone label
func (b BirthInput) Timezone() string { return b.timezone }

// OffsetMinutes returns the UTC offset in minutes east
func (b BirthInput) OffsetMinutes() int { return b.offset }

// UTC returns the birth instant
func (b BirthInput) UTC() time.Time { return b.utc }

// Local returns the birth instant in its fixed civil offset
func (b BirthInput) Local() time.Time {
	return b.utc.In(time.FixedZone(b.timezone, b.offset*60))
}

// IsZero reports whether b was never constructed
func (b BirthInput) IsZero() bool { return b.utc.IsZero() }

// Hash identifies the birth for caching: SHA-256 over UTC date, UTC time, latitude and longitude
func (b BirthInput) Hash() string {
	key := fmt.Sprintf("%s|%s|%.6f|%.6f",
		b.utc.Format("2006-01-02"), b.utc.Format("15:04:05"), b.latitude, b.longitude)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Data returns the normalized wire form
func (b BirthInput) Data() BirthData {
	return BirthData{
		Date:      b.date,
		Time:      b.clock,
		Latitude:  b.latitude,
		Longitude: b.longitude,
		Timezone:  b.timezone,
	}
}

// MarshalJSON renders the normalized input together with the resolved UTC instant
func (b BirthInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BirthData
		UTC           string `json:"utc"`
		OffsetMinutes int    `json:"offset_minutes"`
	}{b.Data(), b.utc.Format(time.RFC3339), b.offset})
}

func parseClock(raw string) (int, int, int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("expected HH:MM or HH:MM:SS, got %q", raw)
	}
	vals := make([]int, 3)
	limits := []int{23, 59, 59}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return 0, 0, 0, fmt.Errorf("invalid time component %q in %q", p, raw)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

var offsetPattern = regexp.MustCompile(`^(?i:utc|gmt)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

func resolveOffset(tz string, civil time.Time, lat, lon float64, resolver TimezoneResolver) (int, string, error) {
	const op = "NewBirthInput"

	switch strings.ToUpper(tz) {
	case "":
		if resolver == nil {
			resolver = LongitudeResolver{}
		}
		offset, label, err := resolver.Resolve(lat, lon, civil)
		if err != nil {
			return 0, "", Malformed(op, "timezone", "cannot resolve from coordinates: %v", err)
		}
		return offset, label, nil
	case "Z", "UTC", "GMT":
		return 0, "UTC", nil
	}

	if m := offsetPattern.FindStringSubmatch(tz); m != nil {
		hours, _ := strconv.Atoi(m[2])
		mins := 0
		if m[3] != "" {
			mins, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || mins > 59 {
			return 0, "", Malformed(op, "timezone", "offset %q out of range", tz)
		}
		offset := hours*60 + mins
		if m[1] == "-" {
			offset = -offset
		}
		return offset, formatOffset(offset), nil
	}

	if hours, err := strconv.ParseFloat(tz, 64); err == nil {
		if math.Abs(hours) > 14 {
			return 0, "", Malformed(op, "timezone", "offset %q out of range", tz)
		}
		offset := int(math.Round(hours * 60))
		return offset, formatOffset(offset), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0, "", Malformed(op, "timezone", "unknown timezone %q", tz)
	}
	local := time.Date(civil.Year(), civil.Month(), civil.Day(), civil.Hour(), civil.Minute(), civil.Second(), 0, loc)
	_, secs := local.Zone()
	return secs / 60, tz, nil
}

func formatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
