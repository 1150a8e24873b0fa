// Package varga derives the divisional charts D2..D60 from natal longitudes.
package varga

import (
	"math"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/formulas"
)

// trimsamsa segments: upper degree bound and ruling sign
type segment struct {
	upTo float64
	sign domain.Sign
}

var trimsamsaOdd = []segment{
	{5, domain.Aries},        // Mars
	{10, domain.Aquarius},    // Saturn
	{18, domain.Sagittarius}, // Jupiter
	{25, domain.Gemini},      // Mercury
	{30, domain.Libra},       // Venus
}

var trimsamsaEven = []segment{
	{5, domain.Taurus},     // Venus
	{12, domain.Virgo},     // Mercury
	{20, domain.Pisces},    // Jupiter
	{25, domain.Capricorn}, // Saturn
	{30, domain.Scorpio},   // Mars
}

// Position maps a sidereal longitude into division n, returning the varga sign and
// the varga longitude (the position within the part stretched over the varga sign)
func Position(lon float64, n int) (domain.Sign, float64, error) {
	if !domain.IsSupportedDivision(n) {
		return 0, 0, domain.Malformed("varga.Position", domain.DivisionCode(n), "unsupported division")
	}
	lon = formulas.Norm360(lon)
	if n == 1 {
		return domain.SignOf(lon), lon, nil
	}

	sign := domain.SignOf(lon)
	deg := lon - float64(sign)*30

	if n == 30 {
		return trimsamsa(sign, deg)
	}

	part := 30 / float64(n)
	k := int(deg / part)
	if k >= n {
		k = n - 1
	}
	frac := (deg - float64(k)*part) / part

	var target domain.Sign
	switch n {
	case 2:
		target = horaSign(sign, k)
	case 3:
		// 1st, 5th and 9th from the sign
		target = sign.Add(4 * k)
	case 4:
		// 1st, 4th, 7th and 10th from the sign
		target = sign.Add(3 * k)
	case 9:
		// continuous navamsa count from Aries
		target = domain.Sign(int(lon/part) % 12)
	default:
		target = startSign(sign, n).Add(k)
	}
	return target, float64(target)*30 + clampFrac(frac)*30, nil
}

// startSign is the sign from which the parts of a rashi are counted
func startSign(s domain.Sign, n int) domain.Sign {
	odd := s.IsOdd()
	switch n {
	case 7:
		if odd {
			return s
		}
		return s.Add(6)
	case 10:
		if odd {
			return s
		}
		return s.Add(8)
	case 16, 45:
		return byModality(s, domain.Aries, domain.Leo, domain.Sagittarius)
	case 20:
		return byModality(s, domain.Aries, domain.Sagittarius, domain.Leo)
	case 24:
		if odd {
			return domain.Leo
		}
		return domain.Cancer
	case 27:
		switch s.Element() {
		case domain.Fire:
			return domain.Aries
		case domain.Earth:
			return domain.Cancer
		case domain.Air:
			return domain.Libra
		default:
			return domain.Capricorn
		}
	case 40:
		if odd {
			return domain.Aries
		}
		return domain.Libra
	}
	// D12 and D60 count from the sign itself
	return s
}

// horaSign gives the Sun's hora (Leo) or the Moon's hora (Cancer)
func horaSign(s domain.Sign, half int) domain.Sign {
	if s.IsOdd() == (half == 0) {
		return domain.Leo
	}
	return domain.Cancer
}

func byModality(s domain.Sign, movable, fixed, dual domain.Sign) domain.Sign {
	switch s.Modality() {
	case domain.Movable:
		return movable
	case domain.Fixed:
		return fixed
	default:
		return dual
	}
}

func clampFrac(f float64) float64 {
	return math.Max(0, math.Min(f, math.Nextafter(1, 0)))
}

func trimsamsa(sign domain.Sign, deg float64) (domain.Sign, float64, error) {
	segments := trimsamsaEven
	if sign.IsOdd() {
		segments = trimsamsaOdd
	}
	from := 0.0
	for _, seg := range segments {
		if deg < seg.upTo {
			frac := (deg - from) / (seg.upTo - from)
			return seg.sign, float64(seg.sign)*30 + clampFrac(frac)*30, nil
		}
		from = seg.upTo
	}
	last := segments[len(segments)-1]
	return last.sign, float64(last.sign)*30 + clampFrac(1)*30, nil
}
