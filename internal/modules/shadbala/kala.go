package shadbala

import (
	"fmt"
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/modules/chart"
	"github.com/aristath/jyotish/internal/modules/ephemeris"
	"github.com/aristath/jyotish/internal/modules/tables"
	"github.com/aristath/jyotish/pkg/formulas"
)

// day and night thirds are ruled in this order
var (
	dayTribhaga   = [3]domain.Planet{domain.Mercury, domain.Sun, domain.Saturn}
	nightTribhaga = [3]domain.Planet{domain.Moon, domain.Venus, domain.Mars}
)

// TimeLords are the sunrise-anchored rulers of the moment of birth
type TimeLords struct {
	Day         ephemeris.VedicDay `json:"vedic_day"`
	Daytime     bool               `json:"daytime"`
	Noonness    float64            `json:"noonness"` // 1 at local noon, 0.5 at sunrise and sunset, 0 at midnight
	Tribhaga    domain.Planet      `json:"tribhaga_lord"`
	VarshaLord  domain.Planet      `json:"varsha_lord"`
	MaasaLord   domain.Planet      `json:"maasa_lord"`
	DinaLord    domain.Planet      `json:"dina_lord"`
	HoraLord    domain.Planet      `json:"hora_lord"`
	HoraIndex   int                `json:"hora_index"`
	VarshaStart float64            `json:"varsha_start"`
	MaasaStart  float64            `json:"maasa_start"`
}

func weekdayLord(eph ephemeris.Ephemeris, jd, lat, lon float64) (domain.Planet, error) {
	wd, err := ephemeris.VedicWeekday(eph, jd, lat, lon)
	if err != nil {
		return 0, err
	}
	return tables.DayLords[wd], nil
}

// ResolveTimeLords computes the time lords of a chart's instant and place
func ResolveTimeLords(eph ephemeris.Ephemeris, c *chart.Chart) (TimeLords, error) {
	jd, lat, lon := c.JulianDay, c.Latitude, c.Longitude

	day, err := ephemeris.VedicDayAt(eph, jd, lat, lon)
	if err != nil {
		return TimeLords{}, fmt.Errorf("failed to resolve vedic day: %w", err)
	}
	t := TimeLords{Day: day, Daytime: day.IsDaytime(jd)}
	t.DinaLord = tables.DayLords[day.Weekday]

	// Step 1: position within the day or night
	var f float64
	if t.Daytime {
		f = (jd - day.Sunrise) / (day.Sunset - day.Sunrise)
		t.Noonness = 0.5 + 0.5*(1-math.Abs(2*f-1))
	} else {
		f = (jd - day.Sunset) / (day.NextSunrise - day.Sunset)
		t.Noonness = 0.5 - 0.5*(1-math.Abs(2*f-1))
	}
	third := int(formulas.Clamp(f, 0, 0.999999) * 3)
	if t.Daytime {
		t.Tribhaga = dayTribhaga[third]
	} else {
		t.Tribhaga = nightTribhaga[third]
	}

	// Step 2: hora counted in equal hours from sunrise
	t.HoraIndex = int(math.Max(0, (jd-day.Sunrise)*24))
	t.HoraLord = tables.HoraLord(t.DinaLord, t.HoraIndex)

	// Step 3: year and month lords from the preceding solar ingresses
	t.VarshaStart, err = ephemeris.SolarIngress(eph, jd, 0)
	if err != nil {
		return TimeLords{}, fmt.Errorf("failed to find Mesha Sankranti: %w", err)
	}
	if t.VarshaLord, err = weekdayLord(eph, t.VarshaStart, lat, lon); err != nil {
		return TimeLords{}, fmt.Errorf("failed to resolve varsha lord: %w", err)
	}
	t.MaasaStart, err = ephemeris.SignIngress(eph, jd)
	if err != nil {
		return TimeLords{}, fmt.Errorf("failed to find solar ingress: %w", err)
	}
	if t.MaasaLord, err = weekdayLord(eph, t.MaasaStart, lat, lon); err != nil {
		return TimeLords{}, fmt.Errorf("failed to resolve maasa lord: %w", err)
	}
	return t, nil
}

// nathonnata favours noon for diurnal planets and midnight for nocturnal ones
func nathonnata(p domain.Planet, noonness float64) float64 {
	switch p {
	case domain.Mercury:
		return 60
	case domain.Sun, domain.Jupiter, domain.Venus:
		return 60 * noonness
	default:
		return 60 * (1 - noonness)
	}
}

// paksha rewards benefics near full Moon and malefics near new Moon
func paksha(p domain.Planet, sunLon, moonLon float64) float64 {
	v := formulas.AngularDistance(sunLon, moonLon) / 3
	switch p {
	case domain.Sun, domain.Mars, domain.Saturn:
		return 60 - v
	default:
		return v
	}
}

// ayana is driven by declination: north for Sun, Mars, Jupiter and Venus, south for the
// Moon and Saturn, either for Mercury. The Sun's value is doubled.
func ayana(p domain.Planet, declination float64) float64 {
	d := formulas.Clamp(declination, -24, 24)
	var v float64
	switch p {
	case domain.Moon, domain.Saturn:
		v = 60 * (24 - d) / 48
	case domain.Mercury:
		v = 60 * (24 + math.Abs(d)) / 48
	default:
		v = 60 * (24 + d) / 48
	}
	if p == domain.Sun {
		v *= 2
	}
	return v
}

func kalaBala(p domain.Planet, t TimeLords, sunLon, moonLon, declination float64) Kala {
	k := Kala{
		Nathonnata: nathonnata(p, t.Noonness),
		Paksha:     paksha(p, sunLon, moonLon),
		Ayana:      ayana(p, declination),
	}
	if p == domain.Jupiter || p == t.Tribhaga {
		k.Tribhaga = TribhagaPoints
	}
	if p == t.VarshaLord {
		k.Varsha = VarshaLordPoints
	}
	if p == t.MaasaLord {
		k.Maasa = MaasaLordPoints
	}
	if p == t.DinaLord {
		k.Dina = DinaLordPoints
	}
	if p == t.HoraLord {
		k.Hora = HoraLordPoints
	}
	return k
}
